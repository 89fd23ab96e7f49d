package repository

import (
    "context"

    "github.com/google/uuid"
    "gorm.io/gorm"
    "gorm.io/gorm/clause"

    "github.com/d60-Lab/party-feed/internal/model"
)

// PointsRepository 积分账本。
// AddPoints 以 (profile, reason, ref_type, ref_id) 为幂等键：
// 同一逻辑事件重放只入账一次，用户积分总额只累加一次。
type PointsRepository interface {
    AddPoints(ctx context.Context, profileID string, delta int64, reason, refType, refID string) error
    TotalByProfile(ctx context.Context, profileID string) (int64, error)
}

type pointsRepository struct{ db *gorm.DB }

func NewPointsRepository(db *gorm.DB) PointsRepository { return &pointsRepository{db: db} }

func (r *pointsRepository) AddPoints(ctx context.Context, profileID string, delta int64, reason, refType, refID string) error {
    return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
        entry := &model.PointsEntry{
            ID:        uuid.New().String(),
            ProfileID: profileID,
            Delta:     delta,
            Reason:    reason,
            RefType:   refType,
            RefID:     refID,
        }
        res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(entry)
        if res.Error != nil {
            return res.Error
        }
        // 冲突即重放，总额不再累加
        if res.RowsAffected == 0 {
            return nil
        }
        return tx.Model(&model.User{}).
            Where("id = ?", profileID).
            Update("points", gorm.Expr("points + ?", delta)).Error
    })
}

func (r *pointsRepository) TotalByProfile(ctx context.Context, profileID string) (int64, error) {
    var user model.User
    err := r.db.WithContext(ctx).Select("points").Where("id = ?", profileID).First(&user).Error
    if err != nil {
        return 0, err
    }
    return user.Points, nil
}
