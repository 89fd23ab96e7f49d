package main

import (
    "context"
    "fmt"
    "math"
    "os"
    "sort"
    "strconv"
    "time"

    "github.com/google/uuid"

    "github.com/d60-Lab/party-feed/config"
    "github.com/d60-Lab/party-feed/internal/model"
    "github.com/d60-Lab/party-feed/internal/repository"
    "github.com/d60-Lab/party-feed/internal/service"
    "github.com/d60-Lab/party-feed/pkg/database"
    "github.com/d60-Lab/party-feed/pkg/logger"
)

func must[T any](v T, err error) T { if err != nil { panic(err) }; return v }

func pct(vs []time.Duration, p float64) time.Duration {
    if len(vs) == 0 { return 0 }
    xs := append([]time.Duration(nil), vs...)
    sort.Slice(xs, func(i, j int) bool { return xs[i] < xs[j] })
    k := int(math.Ceil(p*float64(len(xs)))) - 1
    if k < 0 { k = 0 }
    if k >= len(xs) { k = len(xs)-1 }
    return xs[k]
}

func envInt(name string, def int) int {
    if s := os.Getenv(name); s != "" {
        if v, e := strconv.Atoi(s); e == nil && v > 0 { return v }
    }
    return def
}

func main() {
    cfg := must(config.Load())
    _ = logger.Init("warn")
    db := must(database.InitDB(cfg))

    N := envInt("N", 20000)       // 作者粉丝数
    POSTS := envInt("POSTS", 100) // 发帖数
    CLAIM := envInt("CLAIM", 64)  // 单批认领上限

    // 清表保证可复现（仅限本地基准）
    _ = db.Exec("DELETE FROM timeline_items").Error
    _ = db.Exec("DELETE FROM queue_events").Error
    _ = db.Exec("DELETE FROM points_entries").Error
    _ = db.Exec("DELETE FROM posts").Error
    _ = db.Exec("DELETE FROM fans").Error
    _ = db.Exec("DELETE FROM users").Error

    ctx := context.Background()
    fanRepo := repository.NewFanRepository(db)
    queueRepo := repository.NewQueueRepository(db)
    timelineRepo := repository.NewTimelineRepository(db)
    hotspotRepo := repository.NewHotspotRepository(db)
    pointsRepo := repository.NewPointsRepository(db)
    notificationRepo := repository.NewNotificationRepository(db)
    postRepo := repository.NewPostRepository(db)
    partyEventRepo := repository.NewPartyEventRepository(db)
    publisher := service.NewPublisher(db)

    hotspot := service.NewHotspotAggregator(hotspotRepo)
    // 阈值抬高到 N 之上，保证基准测的是推模式扇出
    fanout := service.NewFanoutEngine(fanRepo, nil, timelineRepo, pointsRepo, hotspot, int64(N)+1, 0, nil)
    engagement := service.NewEngagementService(postRepo, partyEventRepo, pointsRepo, notificationRepo)
    dispatcher := service.NewDispatcher(queueRepo, fanout, engagement)

    // 造一个作者 + N 粉丝
    author := &model.User{ID: uuid.New().String(), Username: "author", Email: "author@example.com", Password: "p"}
    must(0, db.Create(author).Error)
    batch := make([]model.Fan, 0, 1000)
    for i := 0; i < N; i++ {
        batch = append(batch, model.Fan{ID: uuid.New().String(), UserID: author.ID, FanID: fmt.Sprintf("u%06d", i)})
        if len(batch) == cap(batch) {
            must(0, db.Create(&batch).Error)
            batch = batch[:0]
        }
    }
    if len(batch) > 0 {
        must(0, db.Create(&batch).Error)
    }

    // 发帖并排空队列
    start := time.Now()
    for i := 0; i < POSTS; i++ {
        must(publisher.PublishPost(ctx, service.PublishInput{AuthorID: author.ID, Content: fmt.Sprintf("post %d", i)}))
    }
    published := time.Since(start)

    latencies := make([]time.Duration, 0, POSTS)
    drainStart := time.Now()
    for {
        processed, total, err := dispatcher.ProcessBatch(ctx, CLAIM)
        if err != nil {
            panic(err)
        }
        if total == 0 {
            break
        }
        _ = processed
    }
    drained := time.Since(drainStart)

    var events []model.QueueEvent
    must(0, db.Where("status = ?", model.QueueStatusDone).Find(&events).Error)
    for _, ev := range events {
        if ev.ProcessedAt != nil {
            latencies = append(latencies, ev.ProcessedAt.Sub(ev.CreatedAt))
        }
    }

    var written int64
    must(0, db.Table("timeline_items").Count(&written).Error)

    fmt.Printf("N=%d POSTS=%d CLAIM=%d\n", N, POSTS, CLAIM)
    fmt.Printf("publish: %v (%.1f posts/s)\n", published, float64(POSTS)/published.Seconds())
    fmt.Printf("drain:   %v (%.0f timeline rows, %.0f rows/s)\n", drained, float64(written), float64(written)/drained.Seconds())
    fmt.Printf("event latency: p50=%v p95=%v p99=%v\n", pct(latencies, 0.50), pct(latencies, 0.95), pct(latencies, 0.99))
}
