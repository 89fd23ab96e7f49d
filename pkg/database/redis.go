package database

import (
    "context"
    "time"

    "github.com/redis/go-redis/v9"

    "github.com/d60-Lab/party-feed/config"
)

// InitRedis 连接 Redis 并做一次 ping 探活
func InitRedis(cfg *config.Config) (*redis.Client, error) {
    client := redis.NewClient(&redis.Options{
        Addr:     cfg.Redis.Addr,
        Password: cfg.Redis.Password,
        DB:       cfg.Redis.DB,
    })
    ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
    defer cancel()
    if err := client.Ping(ctx).Err(); err != nil {
        return nil, err
    }
    return client, nil
}
