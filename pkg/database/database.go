package database

import (
    "fmt"
    "time"

    "gorm.io/driver/postgres"
    "gorm.io/driver/sqlite"
    "gorm.io/gorm"

    "github.com/d60-Lab/party-feed/config"
    "github.com/d60-Lab/party-feed/internal/model"
)

// InitDB 按配置打开数据库并迁移表结构
func InitDB(cfg *config.Config) (*gorm.DB, error) {
    var dialector gorm.Dialector
    switch cfg.Database.Driver {
    case "postgres":
        dialector = postgres.Open(cfg.Database.DSN)
    case "sqlite":
        dialector = sqlite.Open(cfg.Database.DSN)
    default:
        return nil, fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
    }

    db, err := gorm.Open(dialector, &gorm.Config{})
    if err != nil {
        return nil, fmt.Errorf("open database: %w", err)
    }

    sqlDB, err := db.DB()
    if err != nil {
        return nil, err
    }
    sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
    sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
    sqlDB.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

    if err := AutoMigrate(db); err != nil {
        return nil, fmt.Errorf("migrate: %w", err)
    }
    return db, nil
}

// AutoMigrate 迁移全部业务表
func AutoMigrate(db *gorm.DB) error {
    return db.AutoMigrate(
        &model.User{},
        &model.Post{},
        &model.Like{},
        &model.Comment{},
        &model.Follow{},
        &model.Fan{},
        &model.PartyEvent{},
        &model.RSVP{},
        &model.QueueEvent{},
        &model.TimelineItem{},
        &model.HotspotCell{},
        &model.Notification{},
        &model.PointsEntry{},
    )
}
