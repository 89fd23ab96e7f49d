package service

import (
    "context"
    "encoding/json"
    "fmt"

    "go.uber.org/zap"

    "github.com/d60-Lab/party-feed/internal/model"
    "github.com/d60-Lab/party-feed/internal/repository"
    "github.com/d60-Lab/party-feed/pkg/logger"
)

// DefaultClaimLimit 单批默认认领上限
const DefaultClaimLimit = 50

// Dispatcher 事件分发器：认领一批队列事件并逐个路由到对应处理器。
// 单个事件失败只影响自身（重试或终态 failed），不会中断整批。
type Dispatcher struct {
    queueRepo  repository.QueueRepository
    fanout     *FanoutEngine
    engagement *EngagementService
}

func NewDispatcher(queueRepo repository.QueueRepository, fanout *FanoutEngine, engagement *EngagementService) *Dispatcher {
    return &Dispatcher{queueRepo: queueRepo, fanout: fanout, engagement: engagement}
}

// ProcessBatch 处理一批事件，返回成功数与认领总数。
// processed < total 属于部分失败，只记日志不返回错误。
func (d *Dispatcher) ProcessBatch(ctx context.Context, limit int) (processed, total int, err error) {
    if limit <= 0 {
        limit = DefaultClaimLimit
    }
    events, err := d.queueRepo.ClaimBatch(ctx, limit)
    if err != nil {
        return 0, 0, fmt.Errorf("claim batch: %w", err)
    }
    for _, ev := range events {
        if hErr := d.handle(ctx, ev); hErr != nil {
            logger.Warn("event handler failed",
                zap.String("event_id", ev.ID),
                zap.String("event_type", string(ev.EventType)),
                zap.Int("attempts", ev.Attempts),
                zap.Error(hErr))
            if mErr := d.queueRepo.MarkRetry(ctx, ev.ID, hErr.Error()); mErr != nil {
                logger.Error("mark retry failed", zap.String("event_id", ev.ID), zap.Error(mErr))
            }
            continue
        }
        if mErr := d.queueRepo.MarkDone(ctx, ev.ID); mErr != nil {
            logger.Error("mark done failed", zap.String("event_id", ev.ID), zap.Error(mErr))
            continue
        }
        processed++
    }
    if processed < len(events) {
        logger.Warn("batch partially processed",
            zap.Int("processed", processed),
            zap.Int("total", len(events)))
    }
    return processed, len(events), nil
}

func (d *Dispatcher) handle(ctx context.Context, ev *model.QueueEvent) error {
    switch ev.EventType {
    case model.EventPostCreated:
        var p model.PostCreatedPayload
        if err := json.Unmarshal([]byte(ev.Payload), &p); err != nil {
            return fmt.Errorf("decode post_created payload: %w", err)
        }
        return d.fanout.HandlePostCreated(ctx, &p)
    case model.EventLikeAdded:
        var p model.LikeAddedPayload
        if err := json.Unmarshal([]byte(ev.Payload), &p); err != nil {
            return fmt.Errorf("decode like_added payload: %w", err)
        }
        return d.engagement.HandleLikeAdded(ctx, &p)
    case model.EventCommentAdded:
        var p model.CommentAddedPayload
        if err := json.Unmarshal([]byte(ev.Payload), &p); err != nil {
            return fmt.Errorf("decode comment_added payload: %w", err)
        }
        return d.engagement.HandleCommentAdded(ctx, &p)
    case model.EventFollowAdded:
        var p model.FollowAddedPayload
        if err := json.Unmarshal([]byte(ev.Payload), &p); err != nil {
            return fmt.Errorf("decode follow_added payload: %w", err)
        }
        return d.engagement.HandleFollowAdded(ctx, &p)
    case model.EventRSVPChanged:
        var p model.RSVPChangedPayload
        if err := json.Unmarshal([]byte(ev.Payload), &p); err != nil {
            return fmt.Errorf("decode rsvp_changed payload: %w", err)
        }
        return d.engagement.HandleRSVPChanged(ctx, &p)
    default:
        // 未知类型向前兼容：按 no-op 成功处理
        logger.Info("unknown event type, skipping", zap.String("event_type", string(ev.EventType)))
        return nil
    }
}
