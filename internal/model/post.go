package model

import "time"

// Post 内容类型
const (
    PostTypeStandard   = "standard"
    PostTypeLiveMoment = "live_moment" // 现场瞬间，带坐标、限时可见
)

// Post 内容主体
type Post struct {
    ID           string     `gorm:"primaryKey;type:varchar(36)"`
    AuthorID     string     `gorm:"type:varchar(36);index:idx_post_author"`
    Content      string     `gorm:"type:text"`
    PostType     string     `gorm:"type:varchar(16);index;default:standard"`
    AudioTrackID string     `gorm:"type:varchar(36)"` // 附带音乐，可为空
    LocationName string     `gorm:"type:varchar(128)"`
    Latitude     *float64
    Longitude    *float64
    CityID       string     `gorm:"type:varchar(36);index"`
    LikeCount    int64      `gorm:"not null;default:0"`
    CommentCount int64      `gorm:"not null;default:0"`
    // ExpiresAt 限时内容过期时间，到期由清理任务删除
    ExpiresAt    *time.Time `gorm:"index"`
    CreatedAt    time.Time
    UpdatedAt    time.Time
}

func (Post) TableName() string { return "posts" }

// Like 点赞（user, post 唯一）
type Like struct {
    ID        string    `gorm:"primaryKey;type:varchar(36)"`
    UserID    string    `gorm:"type:varchar(36);index:idx_like_pair,unique;not null"`
    PostID    string    `gorm:"type:varchar(36);index:idx_like_pair,unique;index:idx_like_post;not null"`
    CreatedAt time.Time
}

func (Like) TableName() string { return "likes" }

// Comment 评论
type Comment struct {
    ID        string    `gorm:"primaryKey;type:varchar(36)"`
    PostID    string    `gorm:"type:varchar(36);index:idx_comment_post;not null"`
    UserID    string    `gorm:"type:varchar(36);not null"`
    Content   string    `gorm:"type:text"`
    CreatedAt time.Time
}

func (Comment) TableName() string { return "comments" }
