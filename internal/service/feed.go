package service

import (
    "context"
    "time"

    "github.com/d60-Lab/party-feed/internal/model"
    "github.com/d60-Lab/party-feed/internal/repository"
)

// FeedService 读路径：取物化的时间线候选集 → 相关性打分重排
type FeedService struct {
    timelineRepo repository.TimelineRepository
    postRepo     repository.PostRepository
    followRepo   repository.FollowRepository
    userRepo     repository.UserRepository
}

func NewFeedService(
    timelineRepo repository.TimelineRepository,
    postRepo repository.PostRepository,
    followRepo repository.FollowRepository,
    userRepo repository.UserRepository,
) *FeedService {
    return &FeedService{
        timelineRepo: timelineRepo,
        postRepo:     postRepo,
        followRepo:   followRepo,
        userRepo:     userRepo,
    }
}

// GetFeed 返回打分排序后的帖子
func (s *FeedService) GetFeed(ctx context.Context, userID string, limit int) ([]*model.Post, error) {
    if limit <= 0 {
        limit = 50
    }
    items, err := s.timelineRepo.ListByUser(ctx, userID, 0, limit)
    if err != nil {
        return nil, err
    }
    if len(items) == 0 {
        return []*model.Post{}, nil
    }
    postIDs := make([]string, len(items))
    for i, it := range items {
        postIDs[i] = it.PostID
    }
    posts, err := s.postRepo.ListByIDs(ctx, postIDs)
    if err != nil {
        return nil, err
    }
    authorIDs := make([]string, 0, len(posts))
    seen := make(map[string]struct{}, len(posts))
    for _, p := range posts {
        if _, ok := seen[p.AuthorID]; !ok {
            seen[p.AuthorID] = struct{}{}
            authorIDs = append(authorIDs, p.AuthorID)
        }
    }
    authorPoints, err := s.userRepo.PointsByIDs(ctx, authorIDs)
    if err != nil {
        return nil, err
    }
    followingIDs, err := s.followRepo.ListFollowingIDs(ctx, userID)
    if err != nil {
        return nil, err
    }

    candidates := make([]*FeedCandidate, len(posts))
    for i, p := range posts {
        candidates[i] = &FeedCandidate{Post: p, AuthorPoints: authorPoints[p.AuthorID]}
    }
    ranked := ScoreAndRank(time.Now(), candidates, followingIDs)
    out := make([]*model.Post, len(ranked))
    for i, c := range ranked {
        out[i] = c.Post
    }
    return out, nil
}
