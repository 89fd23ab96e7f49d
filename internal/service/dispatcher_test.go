package service

import (
    "context"
    "testing"

    "github.com/stretchr/testify/require"

    "github.com/d60-Lab/party-feed/internal/model"
)

func TestProcessBatchEndToEnd(t *testing.T) {
    p := setupPipeline(t, 50)
    ctx := context.Background()
    p.seedUser(t, "author")
    p.seedFans(t, "author", 3)

    _, err := p.publisher.PublishPost(ctx, PublishInput{AuthorID: "author", Content: "hello"})
    require.NoError(t, err)

    processed, total, err := p.dispatcher.ProcessBatch(ctx, 10)
    require.NoError(t, err)
    require.Equal(t, 1, total)
    require.Equal(t, 1, processed)

    var ev model.QueueEvent
    require.NoError(t, p.db.First(&ev).Error)
    require.Equal(t, model.QueueStatusDone, ev.Status)

    var posts []model.Post
    require.NoError(t, p.db.Find(&posts).Error)
    require.Len(t, posts, 1)
    require.EqualValues(t, 4, p.timelineCount(t, posts[0].ID))
}

func TestUnknownEventTypeIsNoOpDone(t *testing.T) {
    p := setupPipeline(t, 50)
    ctx := context.Background()

    require.NoError(t, p.queueRepo.Enqueue(ctx, model.EventType("story_expired"), `{}`))

    processed, total, err := p.dispatcher.ProcessBatch(ctx, 10)
    require.NoError(t, err)
    require.Equal(t, 1, total)
    require.Equal(t, 1, processed)

    var ev model.QueueEvent
    require.NoError(t, p.db.First(&ev).Error)
    require.Equal(t, model.QueueStatusDone, ev.Status)
}

func TestHandlerFailureDoesNotBlockBatch(t *testing.T) {
    p := setupPipeline(t, 50)
    ctx := context.Background()
    p.seedUser(t, "author")

    // 引用不存在帖子的 like 事件会失败，其余事件照常处理
    require.NoError(t, p.queueRepo.Enqueue(ctx, model.EventLikeAdded, `{"post_id":"missing","user_id":"u1"}`))
    _, err := p.publisher.PublishPost(ctx, PublishInput{AuthorID: "author", Content: "still works"})
    require.NoError(t, err)

    processed, total, err := p.dispatcher.ProcessBatch(ctx, 10)
    require.NoError(t, err)
    require.Equal(t, 2, total)
    require.Equal(t, 1, processed)

    var failed model.QueueEvent
    require.NoError(t, p.db.Where("event_type = ?", model.EventLikeAdded).First(&failed).Error)
    require.Equal(t, model.QueueStatusPending, failed.Status)
    require.NotEmpty(t, failed.ErrorMessage)
}

func TestRetryExhaustionEndsInFailed(t *testing.T) {
    p := setupPipeline(t, 50)
    ctx := context.Background()

    // 处理器永远失败：帖子不存在
    require.NoError(t, p.queueRepo.Enqueue(ctx, model.EventLikeAdded, `{"post_id":"missing","user_id":"u1"}`))

    for i := 0; i < model.DefaultMaxAttempts; i++ {
        processed, total, err := p.dispatcher.ProcessBatch(ctx, 10)
        require.NoError(t, err)
        require.Equal(t, 1, total)
        require.Zero(t, processed)
    }

    var ev model.QueueEvent
    require.NoError(t, p.db.First(&ev).Error)
    require.Equal(t, model.QueueStatusFailed, ev.Status)
    require.Equal(t, model.DefaultMaxAttempts, ev.Attempts)

    // 终态后不再被认领
    _, total, err := p.dispatcher.ProcessBatch(ctx, 10)
    require.NoError(t, err)
    require.Zero(t, total)
}

func TestMalformedPayloadGoesToRetry(t *testing.T) {
    p := setupPipeline(t, 50)
    ctx := context.Background()

    require.NoError(t, p.queueRepo.Enqueue(ctx, model.EventPostCreated, `{not json`))

    processed, total, err := p.dispatcher.ProcessBatch(ctx, 10)
    require.NoError(t, err)
    require.Equal(t, 1, total)
    require.Zero(t, processed)

    var ev model.QueueEvent
    require.NoError(t, p.db.First(&ev).Error)
    require.Equal(t, model.QueueStatusPending, ev.Status)
    require.Contains(t, ev.ErrorMessage, "decode post_created payload")
}
