package model

import "time"

// Notification 通知类型
const (
    NotificationLike    = "like"
    NotificationComment = "comment"
    NotificationFollow  = "follow"
    NotificationRSVP    = "rsvp"
)

// Notification 站内通知（追加写，仅 is_read 可变）
type Notification struct {
    ID          string    `gorm:"primaryKey;type:varchar(36)"`
    RecipientID string    `gorm:"type:varchar(36);index:idx_notification_recipient;not null"`
    ActorID     string    `gorm:"type:varchar(36);not null"`
    Type        string    `gorm:"type:varchar(16);index;not null"`
    RefType     string    `gorm:"type:varchar(16)"` // post / comment / user / event
    RefID       string    `gorm:"type:varchar(36)"`
    Title       string    `gorm:"type:varchar(128)"`
    Body        string    `gorm:"type:text"`
    IsRead      bool      `gorm:"index;not null;default:false"`
    CreatedAt   time.Time `gorm:"index"`
}

func (Notification) TableName() string { return "notifications" }
