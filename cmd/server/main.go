package main

import (
    "context"
    "errors"
    "net/http"
    "os"
    "os/signal"
    "syscall"
    "time"

    "github.com/getsentry/sentry-go"
    "go.uber.org/zap"
    "golang.org/x/time/rate"

    "github.com/d60-Lab/party-feed/config"
    "github.com/d60-Lab/party-feed/internal/api"
    "github.com/d60-Lab/party-feed/internal/api/handler"
    "github.com/d60-Lab/party-feed/internal/cache"
    "github.com/d60-Lab/party-feed/internal/repository"
    "github.com/d60-Lab/party-feed/internal/service"
    "github.com/d60-Lab/party-feed/pkg/database"
    "github.com/d60-Lab/party-feed/pkg/logger"
    "github.com/d60-Lab/party-feed/pkg/tracer"
)

func main() {
    cfg, err := config.Load()
    if err != nil {
        panic(err)
    }
    if err := logger.Init(cfg.Log.Level); err != nil {
        panic(err)
    }
    defer logger.Sync()

    if cfg.Sentry.DSN != "" {
        if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.Sentry.DSN}); err != nil {
            logger.Warn("sentry init failed", zap.Error(err))
        } else {
            defer sentry.Flush(2 * time.Second)
        }
    }

    ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
    defer stop()

    shutdownTracer, err := tracer.Init(ctx, cfg)
    if err != nil {
        logger.Warn("tracer init failed", zap.Error(err))
    } else {
        defer func() { _ = shutdownTracer(context.Background()) }()
    }

    db, err := database.InitDB(cfg)
    if err != nil {
        logger.Error("init database failed", zap.Error(err))
        os.Exit(1)
    }

    // 仓储
    queueRepo := repository.NewQueueRepositoryWithTimeout(db, cfg.Pipeline.VisibilityTimeout)
    followRepo := repository.NewFollowRepository(db)
    fanRepo := repository.NewFanRepository(db)
    timelineRepo := repository.NewTimelineRepository(db)
    hotspotRepo := repository.NewHotspotRepository(db)
    pointsRepo := repository.NewPointsRepository(db)
    notificationRepo := repository.NewNotificationRepository(db)
    postRepo := repository.NewPostRepository(db)
    partyEventRepo := repository.NewPartyEventRepository(db)
    userRepo := repository.NewUserRepository(db)

    // Redis 粉丝数缓存，连不上则直接查库
    var counter service.FollowerCounter = fanRepo
    var invalidator service.FollowerCountInvalidator
    if rdb, rErr := database.InitRedis(cfg); rErr != nil {
        logger.Warn("redis unavailable, follower counts served from db", zap.Error(rErr))
    } else {
        fc := cache.NewFollowerCountCache(fanRepo, rdb, 5*time.Minute)
        counter = fc
        invalidator = fc
    }

    // 服务
    var limiter *rate.Limiter
    if cfg.Pipeline.FanoutRateLimit > 0 {
        limiter = rate.NewLimiter(rate.Limit(cfg.Pipeline.FanoutRateLimit), 1)
    }
    hotspot := service.NewHotspotAggregator(hotspotRepo)
    fanout := service.NewFanoutEngine(fanRepo, counter, timelineRepo, pointsRepo, hotspot,
        cfg.Pipeline.FanoutThreshold, cfg.Pipeline.FanoutPageSize, limiter)
    engagement := service.NewEngagementService(postRepo, partyEventRepo, pointsRepo, notificationRepo)
    dispatcher := service.NewDispatcher(queueRepo, fanout, engagement)
    publisher := service.NewPublisher(db)
    relService := service.NewRelationshipService(followRepo, fanRepo, publisher, invalidator)
    feedService := service.NewFeedService(timelineRepo, postRepo, followRepo, userRepo)
    sweeper := service.NewSweeper(db, service.SweeperConfig{
        HotspotRetention:      cfg.Retention.Hotspot,
        QueueDoneRetention:    cfg.Retention.QueueDone,
        NotificationRetention: cfg.Retention.Notification,
    })

    // 调度：周期处理队列 + 周期清理
    go runDispatchLoop(ctx, dispatcher, cfg.Pipeline.ClaimLimit, cfg.Pipeline.PollInterval)
    go runSweepLoop(ctx, sweeper, cfg.Retention.SweepEvery)

    h := handler.New(cfg.JWT, userRepo, notificationRepo, partyEventRepo, hotspotRepo,
        queueRepo, relService, publisher, feedService, dispatcher, sweeper)
    srv := &http.Server{Addr: ":" + cfg.Server.Port, Handler: api.NewRouter(cfg, h)}

    go func() {
        logger.Info("server listening", zap.String("port", cfg.Server.Port))
        if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
            logger.Error("server error", zap.Error(err))
            stop()
        }
    }()

    <-ctx.Done()
    shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
    defer cancel()
    if err := srv.Shutdown(shutdownCtx); err != nil {
        logger.Error("shutdown failed", zap.Error(err))
    }
}

func runDispatchLoop(ctx context.Context, d *service.Dispatcher, claimLimit int, interval time.Duration) {
    if interval <= 0 {
        interval = time.Second
    }
    ticker := time.NewTicker(interval)
    defer ticker.Stop()
    for {
        select {
        case <-ctx.Done():
            return
        case <-ticker.C:
            if _, _, err := d.ProcessBatch(ctx, claimLimit); err != nil {
                logger.Error("process batch failed", zap.Error(err))
            }
        }
    }
}

func runSweepLoop(ctx context.Context, s *service.Sweeper, every time.Duration) {
    if every <= 0 {
        every = time.Hour
    }
    ticker := time.NewTicker(every)
    defer ticker.Stop()
    for {
        select {
        case <-ctx.Done():
            return
        case <-ticker.C:
            deleted, err := s.RunCleanup(ctx)
            if err != nil {
                logger.Warn("cleanup error", zap.Error(err))
            }
            logger.Info("cleanup finished",
                zap.Int64("expired_posts", deleted["expired_posts"]),
                zap.Int64("stale_hotspots", deleted["stale_hotspots"]),
                zap.Int64("completed_queue_events", deleted["completed_queue_events"]),
                zap.Int64("read_notifications", deleted["read_notifications"]))
        }
    }
}
