package service

import (
    "context"
    "encoding/json"
    "time"

    "github.com/google/uuid"
    "gorm.io/gorm"
    "gorm.io/gorm/clause"

    "github.com/d60-Lab/party-feed/internal/model"
)

// LiveMomentTTL 现场瞬间的可见时长，到期由清理任务删除
const LiveMomentTTL = 24 * time.Hour

// Publisher 负责事务内写主体行 + 队列事件（outbox 模式）：
// 主写落库即可保证副作用事件不丢。
type Publisher struct{ db *gorm.DB }

func NewPublisher(db *gorm.DB) *Publisher { return &Publisher{db: db} }

// PublishInput 发帖参数
type PublishInput struct {
    AuthorID     string
    Content      string
    PostType     string
    AudioTrackID string
    LocationName string
    Latitude     *float64
    Longitude    *float64
    CityID       string
}

// PublishPost 在一个事务内落地 Post 与 post_created 事件
func (p *Publisher) PublishPost(ctx context.Context, in PublishInput) (string, error) {
    if in.PostType == "" {
        in.PostType = model.PostTypeStandard
    }
    postID := uuid.New().String()
    now := time.Now()
    post := &model.Post{
        ID:           postID,
        AuthorID:     in.AuthorID,
        Content:      in.Content,
        PostType:     in.PostType,
        AudioTrackID: in.AudioTrackID,
        LocationName: in.LocationName,
        Latitude:     in.Latitude,
        Longitude:    in.Longitude,
        CityID:       in.CityID,
        CreatedAt:    now,
        UpdatedAt:    now,
    }
    if in.PostType == model.PostTypeLiveMoment {
        expires := now.Add(LiveMomentTTL)
        post.ExpiresAt = &expires
    }
    err := p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
        if err := tx.Create(post).Error; err != nil {
            return err
        }
        return p.enqueue(tx, model.EventPostCreated, model.PostCreatedPayload{
            PostID:    postID,
            AuthorID:  in.AuthorID,
            PostType:  in.PostType,
            Latitude:  in.Latitude,
            Longitude: in.Longitude,
            CityID:    in.CityID,
        })
    })
    if err != nil {
        return "", err
    }
    return postID, nil
}

// AddLike 点赞 + like_added 事件；重复点赞不产生新事件
func (p *Publisher) AddLike(ctx context.Context, userID, postID string) error {
    return p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
        like := &model.Like{ID: uuid.New().String(), UserID: userID, PostID: postID}
        res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(like)
        if res.Error != nil {
            return res.Error
        }
        if res.RowsAffected == 0 {
            return nil
        }
        if err := tx.Model(&model.Post{}).Where("id = ?", postID).
            Update("like_count", gorm.Expr("like_count + 1")).Error; err != nil {
            return err
        }
        return p.enqueue(tx, model.EventLikeAdded, model.LikeAddedPayload{PostID: postID, UserID: userID})
    })
}

// AddComment 评论 + comment_added 事件
func (p *Publisher) AddComment(ctx context.Context, userID, postID, content string) (string, error) {
    commentID := uuid.New().String()
    err := p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
        comment := &model.Comment{ID: commentID, PostID: postID, UserID: userID, Content: content}
        if err := tx.Create(comment).Error; err != nil {
            return err
        }
        if err := tx.Model(&model.Post{}).Where("id = ?", postID).
            Update("comment_count", gorm.Expr("comment_count + 1")).Error; err != nil {
            return err
        }
        return p.enqueue(tx, model.EventCommentAdded, model.CommentAddedPayload{
            PostID:    postID,
            CommentID: commentID,
            UserID:    userID,
        })
    })
    if err != nil {
        return "", err
    }
    return commentID, nil
}

// EnqueueFollow follow_added 事件（关注关系本身由 RelationshipService 落库）
func (p *Publisher) EnqueueFollow(ctx context.Context, followerID, followingID string) error {
    return p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
        return p.enqueue(tx, model.EventFollowAdded, model.FollowAddedPayload{
            FollowerID:  followerID,
            FollowingID: followingID,
        })
    })
}

// ChangeRSVP 报名状态翻转 + rsvp_changed 事件
func (p *Publisher) ChangeRSVP(ctx context.Context, userID, eventID, status string) error {
    return p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
        rsvp := &model.RSVP{ID: uuid.New().String(), EventID: eventID, UserID: userID, Status: status}
        if err := tx.Clauses(clause.OnConflict{
            Columns:   []clause.Column{{Name: "event_id"}, {Name: "user_id"}},
            DoUpdates: clause.AssignmentColumns([]string{"status", "updated_at"}),
        }).Create(rsvp).Error; err != nil {
            return err
        }
        return p.enqueue(tx, model.EventRSVPChanged, model.RSVPChangedPayload{
            EventID: eventID,
            UserID:  userID,
            Status:  status,
        })
    })
}

func (p *Publisher) enqueue(tx *gorm.DB, eventType model.EventType, payload any) error {
    raw, err := json.Marshal(payload)
    if err != nil {
        return err
    }
    ev := &model.QueueEvent{
        ID:          uuid.New().String(),
        EventType:   eventType,
        Payload:     string(raw),
        Status:      model.QueueStatusPending,
        MaxAttempts: model.DefaultMaxAttempts,
    }
    return tx.Create(ev).Error
}
