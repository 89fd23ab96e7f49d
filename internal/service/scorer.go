package service

import (
    "sort"
    "strings"
    "time"

    "github.com/d60-Lab/party-feed/internal/model"
)

// 打分权重
const (
    recencyMax        = 50.0 // 刚发布满分，50 小时线性衰减到 0
    likeWeight        = 2.0
    commentWeight     = 3.0 // 评论视为更深的互动
    authorityCap      = 30.0
    affinityBoost     = 25.0
    locationBoost     = 15.0
    liveMomentBoost   = 20.0
    audioBoost        = 5.0
    locationThreshold = 2
)

// FeedCandidate 读路径打分候选：帖子加上作者当前积分
type FeedCandidate struct {
    Post         *model.Post
    AuthorPoints int64
    Score        float64
}

// ScoreAndRank 对一个观看者的候选集做多因子重排。
// 纯函数：不读写任何存储，同样输入产出同样顺序（稳定排序保序）。
func ScoreAndRank(now time.Time, candidates []*FeedCandidate, followingIDs []string) []*FeedCandidate {
    following := make(map[string]struct{}, len(followingIDs))
    for _, id := range followingIDs {
        following[id] = struct{}{}
    }
    // 候选集内出现 >= 2 次的地点名（大小写不敏感）
    locationCounts := make(map[string]int, len(candidates))
    for _, c := range candidates {
        name := strings.ToLower(strings.TrimSpace(c.Post.LocationName))
        if name != "" {
            locationCounts[name]++
        }
    }
    for _, c := range candidates {
        c.Score = scoreOne(now, c, following, locationCounts)
    }
    sort.SliceStable(candidates, func(i, j int) bool {
        return candidates[i].Score > candidates[j].Score
    })
    return candidates
}

func scoreOne(now time.Time, c *FeedCandidate, following map[string]struct{}, locationCounts map[string]int) float64 {
    post := c.Post
    score := 0.0

    // 时效：max(0, 50 - 分钟数/60)
    minutesOld := now.Sub(post.CreatedAt).Minutes()
    if recency := recencyMax - minutesOld/60; recency > 0 {
        score += recency
    }

    // 互动
    score += likeWeight*float64(post.LikeCount) + commentWeight*float64(post.CommentCount)

    // 作者权威，封顶防止高分作者霸榜
    authority := float64(c.AuthorPoints) / 10
    if authority > authorityCap {
        authority = authorityCap
    }
    score += authority

    // 关注关系
    if _, ok := following[post.AuthorID]; ok {
        score += affinityBoost
    }

    // 候选集内热门地点
    if name := strings.ToLower(strings.TrimSpace(post.LocationName)); name != "" {
        if locationCounts[name] >= locationThreshold {
            score += locationBoost
        }
    }

    // 内容类型
    if post.PostType == model.PostTypeLiveMoment {
        score += liveMomentBoost
    }
    if post.AudioTrackID != "" {
        score += audioBoost
    }
    return score
}
