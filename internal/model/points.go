package model

import "time"

// 固定积分规则
const (
    PointsPostCreated  = 10
    PointsLikeAdded    = 1
    PointsCommentAdded = 2
    PointsFollowAdded  = 5
    PointsRSVPAccepted = 3
)

// 积分事由
const (
    ReasonPostCreated  = "post_created"
    ReasonLikeAdded    = "like_added"
    ReasonCommentAdded = "comment_added"
    ReasonFollowAdded  = "follow_added"
    ReasonRSVPAccepted = "rsvp_accepted"
)

// PointsEntry 积分流水。
// (profile_id, reason, ref_type, ref_id) 为幂等键：同一逻辑事件重放不会重复入账。
type PointsEntry struct {
    ID        string    `gorm:"primaryKey;type:varchar(36)"`
    ProfileID string    `gorm:"type:varchar(36);index:idx_points_profile;uniqueIndex:ux_points_dedup;not null"`
    Delta     int64     `gorm:"not null"`
    Reason    string    `gorm:"type:varchar(32);uniqueIndex:ux_points_dedup;not null"`
    RefType   string    `gorm:"type:varchar(16);uniqueIndex:ux_points_dedup;not null"`
    RefID     string    `gorm:"type:varchar(36);uniqueIndex:ux_points_dedup;not null"`
    CreatedAt time.Time
}

func (PointsEntry) TableName() string { return "points_entries" }
