package model

import "time"

// HotspotCell 空间-时间聚合桶（城市 + 网格 + 小时窗口）
type HotspotCell struct {
    ID     string `gorm:"primaryKey;type:varchar(36)"`
    CityID string `gorm:"type:varchar(36);index:idx_hotspot_city;uniqueIndex:ux_hotspot_cell_window"`
    // CellID 经纬度按固定精度截断拼接（约 100m 网格）
    CellID      string    `gorm:"type:varchar(32);uniqueIndex:ux_hotspot_cell_window"`
    WindowStart time.Time `gorm:"uniqueIndex:ux_hotspot_cell_window"`
    WindowEnd   time.Time `gorm:"index"`
    // 并发自增累加，不覆盖
    PostCount       int64   `gorm:"not null;default:0"`
    EngagementScore int64   `gorm:"not null;default:0"`
    CenterLat       float64
    CenterLng       float64
    CreatedAt       time.Time
    UpdatedAt       time.Time
}

func (HotspotCell) TableName() string { return "hotspot_cells" }
