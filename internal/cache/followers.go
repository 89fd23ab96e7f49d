// Package cache provides Redis-backed read caches in front of the primary store.
package cache

import (
    "context"
    "fmt"
    "strconv"
    "time"

    "github.com/redis/go-redis/v9"

    "github.com/d60-Lab/party-feed/internal/repository"
)

// FollowerCountCache caches per-user follower counts so the fan-out policy
// switch does not hit the fans table on every post. Entries are invalidated
// on follow/unfollow and expire after ttl as a safety net.
type FollowerCountCache struct {
    fanRepo repository.FanRepository
    cache   *redis.Client
    ttl     time.Duration
}

func NewFollowerCountCache(fanRepo repository.FanRepository, cache *redis.Client, ttl time.Duration) *FollowerCountCache {
    if ttl <= 0 {
        ttl = 5 * time.Minute
    }
    return &FollowerCountCache{fanRepo: fanRepo, cache: cache, ttl: ttl}
}

func countKey(userID string) string { return fmt.Sprintf("fans:count:%s", userID) }

// CountFans returns the cached follower count, falling back to the DB on miss.
// Cache errors degrade to a DB read, never to a failure.
func (c *FollowerCountCache) CountFans(ctx context.Context, userID string) (int64, error) {
    if val, err := c.cache.Get(ctx, countKey(userID)).Result(); err == nil {
        if cnt, pErr := strconv.ParseInt(val, 10, 64); pErr == nil {
            return cnt, nil
        }
    }
    cnt, err := c.fanRepo.CountFans(ctx, userID)
    if err != nil {
        return 0, err
    }
    _ = c.cache.Set(ctx, countKey(userID), strconv.FormatInt(cnt, 10), c.ttl).Err()
    return cnt, nil
}

// Invalidate drops the cached count after a follow/unfollow.
func (c *FollowerCountCache) Invalidate(ctx context.Context, userID string) error {
    return c.cache.Del(ctx, countKey(userID)).Err()
}
