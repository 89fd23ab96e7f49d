package repository

import (
    "context"
    "time"

    "github.com/google/uuid"
    "gorm.io/gorm"
    "gorm.io/gorm/clause"

    "github.com/d60-Lab/party-feed/internal/model"
)

type TimelineRepository interface {
    // UpsertBatch 批量写入时间线项，(user_id, post_id) 冲突时忽略（幂等扇出）
    UpsertBatch(ctx context.Context, userIDs []string, postID string, score int64) error
    ListByUser(ctx context.Context, userID string, offset, limit int) ([]*model.TimelineItem, error)
    CountByPost(ctx context.Context, postID string) (int64, error)
}

type timelineRepository struct{ db *gorm.DB }

func NewTimelineRepository(db *gorm.DB) TimelineRepository { return &timelineRepository{db: db} }

func (r *timelineRepository) UpsertBatch(ctx context.Context, userIDs []string, postID string, score int64) error {
    if len(userIDs) == 0 {
        return nil
    }
    now := time.Now()
    records := make([]model.TimelineItem, 0, len(userIDs))
    for _, uid := range userIDs {
        records = append(records, model.TimelineItem{
            ID:        uuid.New().String(),
            UserID:    uid,
            PostID:    postID,
            Score:     score,
            CreatedAt: now,
        })
    }
    return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&records).Error
}

func (r *timelineRepository) ListByUser(ctx context.Context, userID string, offset, limit int) ([]*model.TimelineItem, error) {
    var res []*model.TimelineItem
    err := r.db.WithContext(ctx).
        Where("user_id = ?", userID).
        Order("score DESC").
        Offset(offset).Limit(limit).
        Find(&res).Error
    return res, err
}

func (r *timelineRepository) CountByPost(ctx context.Context, postID string) (int64, error) {
    var cnt int64
    err := r.db.WithContext(ctx).Model(&model.TimelineItem{}).
        Where("post_id = ?", postID).
        Count(&cnt).Error
    return cnt, err
}
