package service

import (
    "context"
    "fmt"

    "github.com/d60-Lab/party-feed/internal/model"
    "github.com/d60-Lab/party-feed/internal/repository"
)

// EngagementService like / comment / follow / rsvp 事件的处理器。
// 统一套路：定位对方档案 → 自己对自己的动作直接忽略 → 固定加分 → 写一条通知。
type EngagementService struct {
    postRepo         repository.PostRepository
    partyEventRepo   repository.PartyEventRepository
    pointsRepo       repository.PointsRepository
    notificationRepo repository.NotificationRepository
}

func NewEngagementService(
    postRepo repository.PostRepository,
    partyEventRepo repository.PartyEventRepository,
    pointsRepo repository.PointsRepository,
    notificationRepo repository.NotificationRepository,
) *EngagementService {
    return &EngagementService{
        postRepo:         postRepo,
        partyEventRepo:   partyEventRepo,
        pointsRepo:       pointsRepo,
        notificationRepo: notificationRepo,
    }
}

func (s *EngagementService) HandleLikeAdded(ctx context.Context, p *model.LikeAddedPayload) error {
    post, err := s.postRepo.GetByID(ctx, p.PostID)
    if err != nil {
        return fmt.Errorf("load post: %w", err)
    }
    // 自赞不加分不通知
    if post.AuthorID == p.UserID {
        return nil
    }
    refID := p.PostID + ":" + p.UserID
    if err := s.pointsRepo.AddPoints(ctx, post.AuthorID, model.PointsLikeAdded,
        model.ReasonLikeAdded, "like", refID); err != nil {
        return fmt.Errorf("credit author: %w", err)
    }
    return s.notificationRepo.Insert(ctx, &model.Notification{
        RecipientID: post.AuthorID,
        ActorID:     p.UserID,
        Type:        model.NotificationLike,
        RefType:     "post",
        RefID:       p.PostID,
        Title:       "收到新的赞",
        Body:        "你的动态收到了一个赞",
    })
}

func (s *EngagementService) HandleCommentAdded(ctx context.Context, p *model.CommentAddedPayload) error {
    post, err := s.postRepo.GetByID(ctx, p.PostID)
    if err != nil {
        return fmt.Errorf("load post: %w", err)
    }
    if post.AuthorID == p.UserID {
        return nil
    }
    if err := s.pointsRepo.AddPoints(ctx, post.AuthorID, model.PointsCommentAdded,
        model.ReasonCommentAdded, "comment", p.CommentID); err != nil {
        return fmt.Errorf("credit author: %w", err)
    }
    return s.notificationRepo.Insert(ctx, &model.Notification{
        RecipientID: post.AuthorID,
        ActorID:     p.UserID,
        Type:        model.NotificationComment,
        RefType:     "post",
        RefID:       p.PostID,
        Title:       "收到新的评论",
        Body:        "你的动态收到了一条评论",
    })
}

func (s *EngagementService) HandleFollowAdded(ctx context.Context, p *model.FollowAddedPayload) error {
    if p.FollowerID == p.FollowingID {
        return nil
    }
    if err := s.pointsRepo.AddPoints(ctx, p.FollowingID, model.PointsFollowAdded,
        model.ReasonFollowAdded, "follow", p.FollowerID); err != nil {
        return fmt.Errorf("credit followed profile: %w", err)
    }
    return s.notificationRepo.Insert(ctx, &model.Notification{
        RecipientID: p.FollowingID,
        ActorID:     p.FollowerID,
        Type:        model.NotificationFollow,
        RefType:     "user",
        RefID:       p.FollowerID,
        Title:       "新的关注者",
        Body:        "有人关注了你",
    })
}

// HandleRSVPChanged 接受与拒绝都通知活动创建者，但只有接受才加分
func (s *EngagementService) HandleRSVPChanged(ctx context.Context, p *model.RSVPChangedPayload) error {
    ev, err := s.partyEventRepo.GetByID(ctx, p.EventID)
    if err != nil {
        return fmt.Errorf("load party event: %w", err)
    }
    if ev.CreatorID == p.UserID {
        return nil
    }
    if p.Status == model.RSVPAccepted {
        refID := p.EventID + ":" + p.UserID
        if err := s.pointsRepo.AddPoints(ctx, ev.CreatorID, model.PointsRSVPAccepted,
            model.ReasonRSVPAccepted, "rsvp", refID); err != nil {
            return fmt.Errorf("credit event creator: %w", err)
        }
    }
    body := "有人报名参加你的活动"
    if p.Status != model.RSVPAccepted {
        body = "有人取消了你活动的报名"
    }
    return s.notificationRepo.Insert(ctx, &model.Notification{
        RecipientID: ev.CreatorID,
        ActorID:     p.UserID,
        Type:        model.NotificationRSVP,
        RefType:     "event",
        RefID:       p.EventID,
        Title:       "活动报名更新",
        Body:        body,
    })
}
