package repository

import (
    "context"
    "testing"
    "time"

    "github.com/stretchr/testify/require"
    "gorm.io/driver/sqlite"
    "gorm.io/gorm"

    "github.com/d60-Lab/party-feed/internal/model"
    "github.com/d60-Lab/party-feed/pkg/database"
)

func setupTestDB(t *testing.T) *gorm.DB {
    t.Helper()
    db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
    require.NoError(t, err)
    require.NoError(t, database.AutoMigrate(db))
    return db
}

func TestClaimBatchTransitionsAndIncrementsAttempts(t *testing.T) {
    db := setupTestDB(t)
    repo := NewQueueRepository(db)
    ctx := context.Background()

    require.NoError(t, repo.Enqueue(ctx, model.EventPostCreated, `{"post_id":"p1"}`))
    require.NoError(t, repo.Enqueue(ctx, model.EventLikeAdded, `{"post_id":"p1","user_id":"u1"}`))

    claimed, err := repo.ClaimBatch(ctx, 10)
    require.NoError(t, err)
    require.Len(t, claimed, 2)
    for _, ev := range claimed {
        require.Equal(t, model.QueueStatusProcessing, ev.Status)
        require.Equal(t, 1, ev.Attempts)
        require.NotNil(t, ev.ClaimedAt)
    }

    // 已认领的行不会被再次认领
    again, err := repo.ClaimBatch(ctx, 10)
    require.NoError(t, err)
    require.Empty(t, again)
}

func TestClaimBatchOldestFirst(t *testing.T) {
    db := setupTestDB(t)
    repo := NewQueueRepository(db)
    ctx := context.Background()

    old := &model.QueueEvent{
        ID: "ev-old", EventType: model.EventPostCreated, Status: model.QueueStatusPending,
        MaxAttempts: 3, CreatedAt: time.Now().Add(-time.Hour),
    }
    newer := &model.QueueEvent{
        ID: "ev-new", EventType: model.EventPostCreated, Status: model.QueueStatusPending,
        MaxAttempts: 3, CreatedAt: time.Now(),
    }
    require.NoError(t, db.Create(newer).Error)
    require.NoError(t, db.Create(old).Error)

    claimed, err := repo.ClaimBatch(ctx, 1)
    require.NoError(t, err)
    require.Len(t, claimed, 1)
    require.Equal(t, "ev-old", claimed[0].ID)
}

func TestMarkRetryRequeuesUntilMaxAttempts(t *testing.T) {
    db := setupTestDB(t)
    repo := NewQueueRepository(db)
    ctx := context.Background()

    require.NoError(t, repo.Enqueue(ctx, model.EventLikeAdded, `{}`))

    // 前两轮失败回到 pending
    for i := 1; i <= 2; i++ {
        claimed, err := repo.ClaimBatch(ctx, 1)
        require.NoError(t, err)
        require.Len(t, claimed, 1)
        require.Equal(t, i, claimed[0].Attempts)
        require.NoError(t, repo.MarkRetry(ctx, claimed[0].ID, "boom"))

        var ev model.QueueEvent
        require.NoError(t, db.First(&ev, "id = ?", claimed[0].ID).Error)
        require.Equal(t, model.QueueStatusPending, ev.Status)
        require.Equal(t, "boom", ev.ErrorMessage)
    }

    // 第三轮达到 max_attempts，终态 failed
    claimed, err := repo.ClaimBatch(ctx, 1)
    require.NoError(t, err)
    require.Len(t, claimed, 1)
    require.Equal(t, 3, claimed[0].Attempts)
    require.NoError(t, repo.MarkRetry(ctx, claimed[0].ID, "boom again"))

    var ev model.QueueEvent
    require.NoError(t, db.First(&ev, "id = ?", claimed[0].ID).Error)
    require.Equal(t, model.QueueStatusFailed, ev.Status)
    require.Equal(t, "boom again", ev.ErrorMessage)

    // failed 不再被认领
    again, err := repo.ClaimBatch(ctx, 10)
    require.NoError(t, err)
    require.Empty(t, again)
}

func TestMarkDoneClearsError(t *testing.T) {
    db := setupTestDB(t)
    repo := NewQueueRepository(db)
    ctx := context.Background()

    require.NoError(t, repo.Enqueue(ctx, model.EventPostCreated, `{}`))
    claimed, err := repo.ClaimBatch(ctx, 1)
    require.NoError(t, err)
    require.NoError(t, repo.MarkRetry(ctx, claimed[0].ID, "transient"))

    claimed, err = repo.ClaimBatch(ctx, 1)
    require.NoError(t, err)
    require.NoError(t, repo.MarkDone(ctx, claimed[0].ID))

    var ev model.QueueEvent
    require.NoError(t, db.First(&ev, "id = ?", claimed[0].ID).Error)
    require.Equal(t, model.QueueStatusDone, ev.Status)
    require.Empty(t, ev.ErrorMessage)
    require.NotNil(t, ev.ProcessedAt)
}

func TestClaimBatchReclaimsStuckProcessing(t *testing.T) {
    db := setupTestDB(t)
    repo := NewQueueRepositoryWithTimeout(db, time.Minute)
    ctx := context.Background()

    stuckAt := time.Now().Add(-10 * time.Minute)
    stuck := &model.QueueEvent{
        ID: "ev-stuck", EventType: model.EventPostCreated, Status: model.QueueStatusProcessing,
        Attempts: 1, MaxAttempts: 3, ClaimedAt: &stuckAt, CreatedAt: stuckAt,
    }
    require.NoError(t, db.Create(stuck).Error)

    claimed, err := repo.ClaimBatch(ctx, 10)
    require.NoError(t, err)
    require.Len(t, claimed, 1)
    require.Equal(t, "ev-stuck", claimed[0].ID)
    require.Equal(t, 2, claimed[0].Attempts)
}
