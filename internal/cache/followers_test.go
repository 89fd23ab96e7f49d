package cache

import (
    "context"
    "testing"
    "time"

    "github.com/alicebob/miniredis/v2"
    "github.com/redis/go-redis/v9"
    "github.com/stretchr/testify/require"
    "gorm.io/driver/sqlite"
    "gorm.io/gorm"

    "github.com/d60-Lab/party-feed/internal/repository"
    "github.com/d60-Lab/party-feed/pkg/database"
)

func setupCache(t *testing.T) (*FollowerCountCache, repository.FanRepository, *miniredis.Miniredis) {
    t.Helper()
    db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
    require.NoError(t, err)
    require.NoError(t, database.AutoMigrate(db))

    mr := miniredis.RunT(t)
    client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
    fanRepo := repository.NewFanRepository(db)
    return NewFollowerCountCache(fanRepo, client, time.Minute), fanRepo, mr
}

func TestCountFansCachesDBValue(t *testing.T) {
    c, fanRepo, mr := setupCache(t)
    ctx := context.Background()

    require.NoError(t, fanRepo.Create(ctx, "author", "f1"))
    require.NoError(t, fanRepo.Create(ctx, "author", "f2"))

    cnt, err := c.CountFans(ctx, "author")
    require.NoError(t, err)
    require.EqualValues(t, 2, cnt)

    // 第二次读走缓存：库里加了粉丝但计数不变
    require.NoError(t, fanRepo.Create(ctx, "author", "f3"))
    cnt, err = c.CountFans(ctx, "author")
    require.NoError(t, err)
    require.EqualValues(t, 2, cnt)

    // 失效后回源
    require.NoError(t, c.Invalidate(ctx, "author"))
    cnt, err = c.CountFans(ctx, "author")
    require.NoError(t, err)
    require.EqualValues(t, 3, cnt)

    require.True(t, mr.Exists("fans:count:author"))
}

func TestCountFansFallsBackWhenRedisDown(t *testing.T) {
    c, fanRepo, mr := setupCache(t)
    ctx := context.Background()
    require.NoError(t, fanRepo.Create(ctx, "author", "f1"))

    mr.Close()

    cnt, err := c.CountFans(ctx, "author")
    require.NoError(t, err)
    require.EqualValues(t, 1, cnt)
}
