package service

import (
    "context"
    "testing"
    "time"

    "github.com/stretchr/testify/require"

    "github.com/d60-Lab/party-feed/internal/model"
)

func TestRunCleanupDeletesExpiredByCategory(t *testing.T) {
    p := setupPipeline(t, 50)
    ctx := context.Background()
    now := time.Now()

    sweeper := NewSweeper(p.db, SweeperConfig{})
    sweeper.now = func() time.Time { return now }

    // 过期 / 未过期的限时帖
    expired := now.Add(-time.Hour)
    alive := now.Add(time.Hour)
    require.NoError(t, p.db.Create(&model.Post{ID: "p-old", AuthorID: "a", PostType: model.PostTypeLiveMoment, ExpiresAt: &expired}).Error)
    require.NoError(t, p.db.Create(&model.Post{ID: "p-new", AuthorID: "a", PostType: model.PostTypeLiveMoment, ExpiresAt: &alive}).Error)
    require.NoError(t, p.db.Create(&model.Post{ID: "p-perm", AuthorID: "a"}).Error)

    // 过期 / 活跃热点窗口
    require.NoError(t, p.db.Create(&model.HotspotCell{ID: "h-old", CityID: "sh", CellID: "1_1",
        WindowStart: now.Add(-50 * time.Hour), WindowEnd: now.Add(-49 * time.Hour)}).Error)
    require.NoError(t, p.db.Create(&model.HotspotCell{ID: "h-new", CityID: "sh", CellID: "2_2",
        WindowStart: now.Truncate(time.Hour), WindowEnd: now.Truncate(time.Hour).Add(time.Hour)}).Error)

    // 超过保留期的 done 事件 / 新鲜的 done 事件 / failed 事件不清理
    oldDone := now.Add(-8 * 24 * time.Hour)
    freshDone := now.Add(-time.Hour)
    require.NoError(t, p.db.Create(&model.QueueEvent{ID: "q-old", EventType: model.EventPostCreated,
        Status: model.QueueStatusDone, MaxAttempts: 3, ProcessedAt: &oldDone}).Error)
    require.NoError(t, p.db.Create(&model.QueueEvent{ID: "q-new", EventType: model.EventPostCreated,
        Status: model.QueueStatusDone, MaxAttempts: 3, ProcessedAt: &freshDone}).Error)
    require.NoError(t, p.db.Create(&model.QueueEvent{ID: "q-failed", EventType: model.EventPostCreated,
        Status: model.QueueStatusFailed, MaxAttempts: 3, ProcessedAt: &oldDone}).Error)

    // 已读且过保留期 / 已读但新鲜 / 未读且很旧
    require.NoError(t, p.db.Create(&model.Notification{ID: "n-old", RecipientID: "u", ActorID: "a",
        Type: model.NotificationLike, IsRead: true, CreatedAt: now.Add(-91 * 24 * time.Hour)}).Error)
    require.NoError(t, p.db.Create(&model.Notification{ID: "n-read", RecipientID: "u", ActorID: "a",
        Type: model.NotificationLike, IsRead: true, CreatedAt: now.Add(-time.Hour)}).Error)
    require.NoError(t, p.db.Create(&model.Notification{ID: "n-unread", RecipientID: "u", ActorID: "a",
        Type: model.NotificationLike, IsRead: false, CreatedAt: now.Add(-200 * 24 * time.Hour)}).Error)

    deleted, err := sweeper.RunCleanup(ctx)
    require.NoError(t, err)
    require.EqualValues(t, 1, deleted["expired_posts"])
    require.EqualValues(t, 1, deleted["stale_hotspots"])
    require.EqualValues(t, 1, deleted["completed_queue_events"])
    require.EqualValues(t, 1, deleted["read_notifications"])

    var posts, cells, events, notifs int64
    require.NoError(t, p.db.Model(&model.Post{}).Count(&posts).Error)
    require.NoError(t, p.db.Model(&model.HotspotCell{}).Count(&cells).Error)
    require.NoError(t, p.db.Model(&model.QueueEvent{}).Count(&events).Error)
    require.NoError(t, p.db.Model(&model.Notification{}).Count(&notifs).Error)
    require.EqualValues(t, 2, posts)
    require.EqualValues(t, 1, cells)
    require.EqualValues(t, 2, events)
    require.EqualValues(t, 2, notifs)
}

func TestRunCleanupIsIdempotent(t *testing.T) {
    p := setupPipeline(t, 50)
    ctx := context.Background()
    sweeper := NewSweeper(p.db, SweeperConfig{})

    deleted, err := sweeper.RunCleanup(ctx)
    require.NoError(t, err)
    for _, category := range []string{"expired_posts", "stale_hotspots", "completed_queue_events", "read_notifications"} {
        require.Contains(t, deleted, category)
        require.Zero(t, deleted[category])
    }
}
