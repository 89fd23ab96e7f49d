package model

import "time"

// TimelineItem 推模式扇出物化的时间线项（按 user_id 切分）
type TimelineItem struct {
    ID     string `gorm:"primaryKey;type:varchar(36)"`
    UserID string `gorm:"type:varchar(36);index:idx_timeline_user;uniqueIndex:ux_timeline_user_post"`
    PostID string `gorm:"type:varchar(36);index:idx_timeline_post;uniqueIndex:ux_timeline_user_post"`
    // 复合唯一键，重复扇出不产生重复行
    // ux_timeline_user_post = (user_id, post_id)
    // Score 写入时的粗排序值（秒级时间戳），读路径由相关性打分重排
    Score     int64     `gorm:"index:idx_timeline_user_score"`
    CreatedAt time.Time `gorm:"index:idx_timeline_user_score"`
}

func (TimelineItem) TableName() string { return "timeline_items" }
