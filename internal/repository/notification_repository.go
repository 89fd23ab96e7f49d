package repository

import (
    "context"

    "github.com/google/uuid"
    "gorm.io/gorm"

    "github.com/d60-Lab/party-feed/internal/model"
)

type NotificationRepository interface {
    Insert(ctx context.Context, n *model.Notification) error
    ListByRecipient(ctx context.Context, recipientID string, offset, limit int) ([]*model.Notification, error)
    MarkRead(ctx context.Context, id string) error
}

type notificationRepository struct{ db *gorm.DB }

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
    return &notificationRepository{db: db}
}

func (r *notificationRepository) Insert(ctx context.Context, n *model.Notification) error {
    if n.ID == "" {
        n.ID = uuid.New().String()
    }
    return r.db.WithContext(ctx).Create(n).Error
}

func (r *notificationRepository) ListByRecipient(ctx context.Context, recipientID string, offset, limit int) ([]*model.Notification, error) {
    var res []*model.Notification
    err := r.db.WithContext(ctx).
        Where("recipient_id = ?", recipientID).
        Order("created_at DESC").
        Offset(offset).Limit(limit).
        Find(&res).Error
    return res, err
}

func (r *notificationRepository) MarkRead(ctx context.Context, id string) error {
    return r.db.WithContext(ctx).Model(&model.Notification{}).
        Where("id = ?", id).
        Update("is_read", true).Error
}
