package repository

import (
    "context"
    "time"

    "github.com/google/uuid"
    "gorm.io/gorm"
    "gorm.io/gorm/clause"

    "github.com/d60-Lab/party-feed/internal/model"
)

type HotspotRepository interface {
    // UpsertSeed 不存在则以种子值插入，已存在则忽略；返回是否实际插入
    UpsertSeed(ctx context.Context, cell *model.HotspotCell) (bool, error)
    // Increment 对已存在的桶自增 post_count / engagement_score。
    // 调用方按 best-effort 对待，失败不应导致主流程失败。
    Increment(ctx context.Context, cityID, cellID string, windowStart time.Time, engagementDelta int64) error
    ListActive(ctx context.Context, cityID string, at time.Time) ([]*model.HotspotCell, error)
    Get(ctx context.Context, cityID, cellID string, windowStart time.Time) (*model.HotspotCell, error)
}

type hotspotRepository struct{ db *gorm.DB }

func NewHotspotRepository(db *gorm.DB) HotspotRepository { return &hotspotRepository{db: db} }

func (r *hotspotRepository) UpsertSeed(ctx context.Context, cell *model.HotspotCell) (bool, error) {
    if cell.ID == "" {
        cell.ID = uuid.New().String()
    }
    res := r.db.WithContext(ctx).Clauses(clause.OnConflict{
        Columns:   []clause.Column{{Name: "city_id"}, {Name: "cell_id"}, {Name: "window_start"}},
        DoNothing: true,
    }).Create(cell)
    if res.Error != nil {
        return false, res.Error
    }
    return res.RowsAffected > 0, nil
}

func (r *hotspotRepository) Increment(ctx context.Context, cityID, cellID string, windowStart time.Time, engagementDelta int64) error {
    res := r.db.WithContext(ctx).Model(&model.HotspotCell{}).
        Where("city_id = ? AND cell_id = ? AND window_start = ?", cityID, cellID, windowStart).
        Updates(map[string]any{
            "post_count":       gorm.Expr("post_count + 1"),
            "engagement_score": gorm.Expr("engagement_score + ?", engagementDelta),
        })
    if res.Error != nil {
        return res.Error
    }
    if res.RowsAffected == 0 {
        return gorm.ErrRecordNotFound
    }
    return nil
}

func (r *hotspotRepository) ListActive(ctx context.Context, cityID string, at time.Time) ([]*model.HotspotCell, error) {
    var res []*model.HotspotCell
    err := r.db.WithContext(ctx).
        Where("city_id = ? AND window_start <= ? AND window_end > ?", cityID, at, at).
        Order("post_count DESC").
        Find(&res).Error
    return res, err
}

func (r *hotspotRepository) Get(ctx context.Context, cityID, cellID string, windowStart time.Time) (*model.HotspotCell, error) {
    var cell model.HotspotCell
    err := r.db.WithContext(ctx).
        Where("city_id = ? AND cell_id = ? AND window_start = ?", cityID, cellID, windowStart).
        First(&cell).Error
    if err != nil {
        return nil, err
    }
    return &cell, nil
}
