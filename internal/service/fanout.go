package service

import (
    "context"
    "fmt"
    "time"

    "go.uber.org/zap"
    "golang.org/x/time/rate"

    "github.com/d60-Lab/party-feed/internal/model"
    "github.com/d60-Lab/party-feed/internal/repository"
    "github.com/d60-Lab/party-feed/pkg/logger"
)

// DefaultFanoutThreshold 粉丝数达到该值不再推模式物化，交给读时拉模式
const DefaultFanoutThreshold = 5000

// FollowerCounter 粉丝计数来源（可为带 Redis 缓存的实现）
type FollowerCounter interface {
    CountFans(ctx context.Context, userID string) (int64, error)
}

// FanoutEngine 扇出引擎：post_created 的处理器。
// 作者加分 → 按粉丝数选择推/拉 → 现场瞬间更新热点聚合。
type FanoutEngine struct {
    fanRepo      repository.FanRepository
    counter      FollowerCounter
    timelineRepo repository.TimelineRepository
    pointsRepo   repository.PointsRepository
    hotspot      *HotspotAggregator
    threshold    int64
    pageSize     int
    limiter      *rate.Limiter // 批量写限速，可为 nil
}

func NewFanoutEngine(
    fanRepo repository.FanRepository,
    counter FollowerCounter,
    timelineRepo repository.TimelineRepository,
    pointsRepo repository.PointsRepository,
    hotspot *HotspotAggregator,
    threshold int64,
    pageSize int,
    limiter *rate.Limiter,
) *FanoutEngine {
    if threshold <= 0 {
        threshold = DefaultFanoutThreshold
    }
    if pageSize <= 0 {
        pageSize = 500
    }
    if counter == nil {
        counter = fanRepo
    }
    return &FanoutEngine{
        fanRepo:      fanRepo,
        counter:      counter,
        timelineRepo: timelineRepo,
        pointsRepo:   pointsRepo,
        hotspot:      hotspot,
        threshold:    threshold,
        pageSize:     pageSize,
        limiter:      limiter,
    }
}

func (e *FanoutEngine) HandlePostCreated(ctx context.Context, p *model.PostCreatedPayload) error {
    // 发帖固定加 10 分（幂等键保证重放不重复入账）
    if err := e.pointsRepo.AddPoints(ctx, p.AuthorID, model.PointsPostCreated,
        model.ReasonPostCreated, "post", p.PostID); err != nil {
        return fmt.Errorf("credit author: %w", err)
    }

    fanCount, err := e.counter.CountFans(ctx, p.AuthorID)
    if err != nil {
        return fmt.Errorf("count fans: %w", err)
    }
    if fanCount < e.threshold {
        if err := e.pushFanout(ctx, p.AuthorID, p.PostID); err != nil {
            return err
        }
    } else {
        // 大 V 跳过物化，避免每帖 O(粉丝数) 写风暴
        logger.Info("skip push fanout for high-follower author",
            zap.String("author_id", p.AuthorID),
            zap.Int64("fan_count", fanCount))
    }

    if p.PostType == model.PostTypeLiveMoment && p.Latitude != nil && p.Longitude != nil && p.CityID != "" {
        if err := e.hotspot.Record(ctx, *p.Latitude, *p.Longitude, p.CityID); err != nil {
            return fmt.Errorf("record hotspot: %w", err)
        }
    }
    return nil
}

// pushFanout 分页枚举粉丝并批量 upsert 时间线项，作者本人也写一条
func (e *FanoutEngine) pushFanout(ctx context.Context, authorID, postID string) error {
    score := time.Now().Unix()
    if err := e.timelineRepo.UpsertBatch(ctx, []string{authorID}, postID, score); err != nil {
        return fmt.Errorf("upsert author timeline item: %w", err)
    }
    offset := 0
    for {
        fans, err := e.fanRepo.ListFans(ctx, authorID, offset, e.pageSize)
        if err != nil {
            return fmt.Errorf("list fans: %w", err)
        }
        if len(fans) == 0 {
            break
        }
        if e.limiter != nil {
            if err := e.limiter.Wait(ctx); err != nil {
                return err
            }
        }
        ids := make([]string, len(fans))
        for i, f := range fans {
            ids[i] = f.FanID
        }
        if err := e.timelineRepo.UpsertBatch(ctx, ids, postID, score); err != nil {
            return fmt.Errorf("upsert timeline items: %w", err)
        }
        if len(fans) < e.pageSize {
            break
        }
        offset += e.pageSize
    }
    return nil
}
