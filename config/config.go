package config

import (
    "strings"
    "time"

    "github.com/spf13/viper"
)

// Config 应用配置
type Config struct {
    Server    ServerConfig    `mapstructure:"server"`
    Database  DatabaseConfig  `mapstructure:"database"`
    Redis     RedisConfig     `mapstructure:"redis"`
    JWT       JWTConfig       `mapstructure:"jwt"`
    Log       LogConfig       `mapstructure:"log"`
    Sentry    SentryConfig    `mapstructure:"sentry"`
    Trace     TraceConfig     `mapstructure:"trace"`
    Pipeline  PipelineConfig  `mapstructure:"pipeline"`
    Retention RetentionConfig `mapstructure:"retention"`
}

type ServerConfig struct {
    Port string `mapstructure:"port"`
    Mode string `mapstructure:"mode"` // debug / release
}

type DatabaseConfig struct {
    Driver          string `mapstructure:"driver"` // postgres / sqlite
    DSN             string `mapstructure:"dsn"`
    MaxOpenConns    int    `mapstructure:"max_open_conns"`
    MaxIdleConns    int    `mapstructure:"max_idle_conns"`
    ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"` // 秒
}

type RedisConfig struct {
    Addr     string `mapstructure:"addr"`
    Password string `mapstructure:"password"`
    DB       int    `mapstructure:"db"`
}

type JWTConfig struct {
    Secret      string `mapstructure:"secret"`
    ExpireHours int    `mapstructure:"expire_hours"`
}

type LogConfig struct {
    Level string `mapstructure:"level"`
}

type SentryConfig struct {
    DSN string `mapstructure:"dsn"`
}

type TraceConfig struct {
    Enabled  bool   `mapstructure:"enabled"`
    Endpoint string `mapstructure:"endpoint"`
}

// PipelineConfig 异步扇出流水线参数
type PipelineConfig struct {
    ClaimLimit        int           `mapstructure:"claim_limit"`
    MaxAttempts       int           `mapstructure:"max_attempts"`
    FanoutThreshold   int64         `mapstructure:"fanout_threshold"`
    FanoutPageSize    int           `mapstructure:"fanout_page_size"`
    FanoutRateLimit   float64       `mapstructure:"fanout_rate_limit"` // 每秒批次数，0 不限速
    VisibilityTimeout time.Duration `mapstructure:"visibility_timeout"`
    PollInterval      time.Duration `mapstructure:"poll_interval"`
}

// RetentionConfig 清理任务保留期
type RetentionConfig struct {
    Hotspot      time.Duration `mapstructure:"hotspot"`
    QueueDone    time.Duration `mapstructure:"queue_done"`
    Notification time.Duration `mapstructure:"notification"`
    SweepEvery   time.Duration `mapstructure:"sweep_every"`
}

// Load 读取 config.yaml，环境变量 PARTYFEED_* 可覆盖
func Load() (*Config, error) {
    v := viper.New()
    v.SetConfigName("config")
    v.SetConfigType("yaml")
    v.AddConfigPath(".")
    v.AddConfigPath("./config")
    v.SetEnvPrefix("PARTYFEED")
    v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
    v.AutomaticEnv()

    setDefaults(v)

    if err := v.ReadInConfig(); err != nil {
        // 无配置文件时用默认值 + 环境变量
        if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
            return nil, err
        }
    }

    var cfg Config
    if err := v.Unmarshal(&cfg); err != nil {
        return nil, err
    }
    return &cfg, nil
}

func setDefaults(v *viper.Viper) {
    v.SetDefault("server.port", "8080")
    v.SetDefault("server.mode", "debug")
    v.SetDefault("database.driver", "sqlite")
    v.SetDefault("database.dsn", "party_feed.db")
    v.SetDefault("database.max_open_conns", 50)
    v.SetDefault("database.max_idle_conns", 10)
    v.SetDefault("database.conn_max_lifetime", 3600)
    v.SetDefault("redis.addr", "localhost:6379")
    v.SetDefault("redis.db", 0)
    v.SetDefault("jwt.secret", "change-me")
    v.SetDefault("jwt.expire_hours", 72)
    v.SetDefault("log.level", "info")
    v.SetDefault("trace.enabled", false)
    v.SetDefault("trace.endpoint", "localhost:4318")
    v.SetDefault("pipeline.claim_limit", 50)
    v.SetDefault("pipeline.max_attempts", 3)
    v.SetDefault("pipeline.fanout_threshold", 5000)
    v.SetDefault("pipeline.fanout_page_size", 500)
    v.SetDefault("pipeline.fanout_rate_limit", 0)
    v.SetDefault("pipeline.visibility_timeout", 5*time.Minute)
    v.SetDefault("pipeline.poll_interval", time.Second)
    v.SetDefault("retention.hotspot", 24*time.Hour)
    v.SetDefault("retention.queue_done", 7*24*time.Hour)
    v.SetDefault("retention.notification", 90*24*time.Hour)
    v.SetDefault("retention.sweep_every", time.Hour)
}
