package service

import (
    "context"
    "errors"
    "time"

    "go.uber.org/zap"
    "gorm.io/gorm"

    "github.com/d60-Lab/party-feed/internal/model"
    "github.com/d60-Lab/party-feed/pkg/logger"
)

// 默认保留期
const (
    DefaultHotspotRetention      = 24 * time.Hour
    DefaultQueueDoneRetention    = 7 * 24 * time.Hour
    DefaultNotificationRetention = 90 * 24 * time.Hour
)

// SweeperConfig 各类数据的保留期
type SweeperConfig struct {
    HotspotRetention      time.Duration
    QueueDoneRetention    time.Duration
    NotificationRetention time.Duration
}

// Sweeper 保留期清理任务：批量删除过期数据，返回各类别删除行数
type Sweeper struct {
    db  *gorm.DB
    cfg SweeperConfig
    now func() time.Time
}

func NewSweeper(db *gorm.DB, cfg SweeperConfig) *Sweeper {
    if cfg.HotspotRetention <= 0 {
        cfg.HotspotRetention = DefaultHotspotRetention
    }
    if cfg.QueueDoneRetention <= 0 {
        cfg.QueueDoneRetention = DefaultQueueDoneRetention
    }
    if cfg.NotificationRetention <= 0 {
        cfg.NotificationRetention = DefaultNotificationRetention
    }
    return &Sweeper{db: db, cfg: cfg, now: time.Now}
}

// RunCleanup 跑一轮清理。单类删除失败不阻断其它类别，错误合并返回。
func (s *Sweeper) RunCleanup(ctx context.Context) (map[string]int64, error) {
    now := s.now()
    out := make(map[string]int64, 4)
    var errs []error

    res := s.db.WithContext(ctx).
        Where("expires_at IS NOT NULL AND expires_at < ?", now).
        Delete(&model.Post{})
    out["expired_posts"] = res.RowsAffected
    if res.Error != nil {
        errs = append(errs, res.Error)
    }

    res = s.db.WithContext(ctx).
        Where("window_end < ?", now.Add(-s.cfg.HotspotRetention)).
        Delete(&model.HotspotCell{})
    out["stale_hotspots"] = res.RowsAffected
    if res.Error != nil {
        errs = append(errs, res.Error)
    }

    res = s.db.WithContext(ctx).
        Where("status = ? AND processed_at < ?", model.QueueStatusDone, now.Add(-s.cfg.QueueDoneRetention)).
        Delete(&model.QueueEvent{})
    out["completed_queue_events"] = res.RowsAffected
    if res.Error != nil {
        errs = append(errs, res.Error)
    }

    res = s.db.WithContext(ctx).
        Where("is_read = ? AND created_at < ?", true, now.Add(-s.cfg.NotificationRetention)).
        Delete(&model.Notification{})
    out["read_notifications"] = res.RowsAffected
    if res.Error != nil {
        errs = append(errs, res.Error)
    }

    if len(errs) > 0 {
        logger.Warn("cleanup finished with errors", zap.Int("failed_categories", len(errs)))
    }
    return out, errors.Join(errs...)
}
