package repository

import (
    "context"
    "time"

    "github.com/google/uuid"
    "gorm.io/gorm"
    "gorm.io/gorm/clause"

    "github.com/d60-Lab/party-feed/internal/model"
)

// DefaultVisibilityTimeout 认领后的可见性超时：超时仍处于 processing 的行视为被遗弃，可重新认领
const DefaultVisibilityTimeout = 5 * time.Minute

type QueueRepository interface {
    Enqueue(ctx context.Context, eventType model.EventType, payload string) error
    // ClaimBatch 原子认领一批 pending 事件：置为 processing 并自增 attempts。
    // 并发调用互不重复认领。
    ClaimBatch(ctx context.Context, limit int) ([]*model.QueueEvent, error)
    MarkDone(ctx context.Context, id string) error
    // MarkRetry attempts 未达上限回退 pending，否则终态 failed，记录错误信息
    MarkRetry(ctx context.Context, id, errMsg string) error
    CountByStatus(ctx context.Context, status string) (int64, error)
}

type queueRepository struct {
    db                *gorm.DB
    visibilityTimeout time.Duration
}

func NewQueueRepository(db *gorm.DB) QueueRepository {
    return &queueRepository{db: db, visibilityTimeout: DefaultVisibilityTimeout}
}

func NewQueueRepositoryWithTimeout(db *gorm.DB, visibilityTimeout time.Duration) QueueRepository {
    if visibilityTimeout <= 0 {
        visibilityTimeout = DefaultVisibilityTimeout
    }
    return &queueRepository{db: db, visibilityTimeout: visibilityTimeout}
}

func (r *queueRepository) Enqueue(ctx context.Context, eventType model.EventType, payload string) error {
    ev := &model.QueueEvent{
        ID:          uuid.New().String(),
        EventType:   eventType,
        Payload:     payload,
        Status:      model.QueueStatusPending,
        MaxAttempts: model.DefaultMaxAttempts,
    }
    return r.db.WithContext(ctx).Create(ev).Error
}

func (r *queueRepository) ClaimBatch(ctx context.Context, limit int) ([]*model.QueueEvent, error) {
    if limit <= 0 {
        limit = 50
    }
    now := time.Now()
    reclaimBefore := now.Add(-r.visibilityTimeout)
    var claimed []*model.QueueEvent
    err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
        q := tx.
            Where("status = ? OR (status = ? AND claimed_at < ?)",
                model.QueueStatusPending, model.QueueStatusProcessing, reclaimBefore).
            Order("created_at").
            Limit(limit)
        if tx.Dialector.Name() == "postgres" {
            q = q.Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"})
        }
        var rows []*model.QueueEvent
        if err := q.Find(&rows).Error; err != nil {
            return err
        }
        if len(rows) == 0 {
            return nil
        }
        ids := make([]string, len(rows))
        for i, ev := range rows {
            ids[i] = ev.ID
        }
        if err := tx.Model(&model.QueueEvent{}).
            Where("id IN ?", ids).
            Updates(map[string]any{
                "status":     model.QueueStatusProcessing,
                "attempts":   gorm.Expr("attempts + 1"),
                "claimed_at": now,
            }).Error; err != nil {
            return err
        }
        for _, ev := range rows {
            ev.Status = model.QueueStatusProcessing
            ev.Attempts++
            t := now
            ev.ClaimedAt = &t
        }
        claimed = rows
        return nil
    })
    return claimed, err
}

func (r *queueRepository) MarkDone(ctx context.Context, id string) error {
    now := time.Now()
    return r.db.WithContext(ctx).Model(&model.QueueEvent{}).
        Where("id = ?", id).
        Updates(map[string]any{
            "status":        model.QueueStatusDone,
            "processed_at":  now,
            "error_message": "",
        }).Error
}

func (r *queueRepository) MarkRetry(ctx context.Context, id, errMsg string) error {
    now := time.Now()
    return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
        // attempts 在认领时已自增，达到上限即终态
        res := tx.Model(&model.QueueEvent{}).
            Where("id = ? AND attempts >= max_attempts", id).
            Updates(map[string]any{
                "status":        model.QueueStatusFailed,
                "processed_at":  now,
                "error_message": errMsg,
            })
        if res.Error != nil {
            return res.Error
        }
        if res.RowsAffected > 0 {
            return nil
        }
        return tx.Model(&model.QueueEvent{}).
            Where("id = ?", id).
            Updates(map[string]any{
                "status":        model.QueueStatusPending,
                "error_message": errMsg,
            }).Error
    })
}

func (r *queueRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
    var cnt int64
    err := r.db.WithContext(ctx).Model(&model.QueueEvent{}).
        Where("status = ?", status).
        Count(&cnt).Error
    return cnt, err
}
