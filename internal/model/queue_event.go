package model

import "time"

// EventType 队列事件类型（封闭集合，未知类型按 no-op 处理）
type EventType string

const (
    EventPostCreated  EventType = "post_created"
    EventLikeAdded    EventType = "like_added"
    EventCommentAdded EventType = "comment_added"
    EventFollowAdded  EventType = "follow_added"
    EventRSVPChanged  EventType = "rsvp_changed"
)

// 队列状态机：pending → processing → {done | pending(重试) | failed}
const (
    QueueStatusPending    = "pending"
    QueueStatusProcessing = "processing"
    QueueStatusDone       = "done"
    QueueStatusFailed     = "failed"
)

// DefaultMaxAttempts 默认最大重试次数
const DefaultMaxAttempts = 3

// QueueEvent 事件外发盒：每个需要异步副作用的社交动作写一行
type QueueEvent struct {
    ID           string     `gorm:"primaryKey;type:varchar(36)"`
    EventType    EventType  `gorm:"type:varchar(32);index;not null"`
    // Payload 按 event_type 解释的 JSON 文档
    Payload      string     `gorm:"type:text"`
    Status       string     `gorm:"type:varchar(16);index:idx_queue_status_created;not null;default:pending"`
    Attempts     int        `gorm:"not null;default:0"`
    MaxAttempts  int        `gorm:"not null;default:3"`
    ErrorMessage string     `gorm:"type:text"`
    // ClaimedAt 本次被认领的时间，超过可见性超时后可被重新认领
    ClaimedAt    *time.Time
    CreatedAt    time.Time  `gorm:"index:idx_queue_status_created"`
    ProcessedAt  *time.Time
}

func (QueueEvent) TableName() string { return "queue_events" }
