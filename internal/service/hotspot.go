package service

import (
    "context"
    "fmt"
    "math"
    "time"

    "go.uber.org/zap"

    "github.com/d60-Lab/party-feed/internal/model"
    "github.com/d60-Lab/party-feed/internal/repository"
    "github.com/d60-Lab/party-feed/pkg/logger"
)

// cellPrecision 经纬度截断精度：1e-3 度，约 100m 网格
const cellPrecision = 1000

// CellID 经纬度截断后拼接为确定性的空间桶（非 geohash）
func CellID(lat, lng float64) string {
    return fmt.Sprintf("%d_%d", int64(math.Trunc(lat*cellPrecision)), int64(math.Trunc(lng*cellPrecision)))
}

// HourWindow 当前所在的整点小时窗口 [start, end)
func HourWindow(at time.Time) (time.Time, time.Time) {
    start := at.UTC().Truncate(time.Hour)
    return start, start.Add(time.Hour)
}

// HotspotAggregator 现场活动热点聚合：
// 同一 (city, cell, window) 的并发写入必须累加而非覆盖。
type HotspotAggregator struct {
    repo repository.HotspotRepository
    now  func() time.Time
}

func NewHotspotAggregator(repo repository.HotspotRepository) *HotspotAggregator {
    return &HotspotAggregator{repo: repo, now: time.Now}
}

func (a *HotspotAggregator) Record(ctx context.Context, lat, lng float64, cityID string) error {
    windowStart, windowEnd := HourWindow(a.now())
    cellID := CellID(lat, lng)
    inserted, err := a.repo.UpsertSeed(ctx, &model.HotspotCell{
        CityID:          cityID,
        CellID:          cellID,
        WindowStart:     windowStart,
        WindowEnd:       windowEnd,
        PostCount:       1,
        EngagementScore: 1,
        CenterLat:       lat,
        CenterLng:       lng,
    })
    if err != nil {
        return fmt.Errorf("upsert hotspot cell: %w", err)
    }
    if inserted {
        return nil
    }
    // 已有桶则自增；该调用按 best-effort 对待，失败不拖垮主处理流程
    if err := a.repo.Increment(ctx, cityID, cellID, windowStart, 1); err != nil {
        logger.Warn("hotspot increment failed",
            zap.String("city_id", cityID),
            zap.String("cell_id", cellID),
            zap.Time("window_start", windowStart),
            zap.Error(err))
    }
    return nil
}
