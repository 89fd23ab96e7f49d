package handler

import (
    "github.com/d60-Lab/party-feed/config"
    "github.com/d60-Lab/party-feed/internal/repository"
    "github.com/d60-Lab/party-feed/internal/service"
)

// Handler 聚合全部 HTTP 处理依赖
type Handler struct {
    jwtCfg           config.JWTConfig
    userRepo         repository.UserRepository
    notificationRepo repository.NotificationRepository
    partyEventRepo   repository.PartyEventRepository
    hotspotRepo      repository.HotspotRepository
    queueRepo        repository.QueueRepository
    relService       service.RelationshipService
    publisher        *service.Publisher
    feedService      *service.FeedService
    dispatcher       *service.Dispatcher
    sweeper          *service.Sweeper
}

func New(
    jwtCfg config.JWTConfig,
    userRepo repository.UserRepository,
    notificationRepo repository.NotificationRepository,
    partyEventRepo repository.PartyEventRepository,
    hotspotRepo repository.HotspotRepository,
    queueRepo repository.QueueRepository,
    relService service.RelationshipService,
    publisher *service.Publisher,
    feedService *service.FeedService,
    dispatcher *service.Dispatcher,
    sweeper *service.Sweeper,
) *Handler {
    return &Handler{
        jwtCfg:           jwtCfg,
        userRepo:         userRepo,
        notificationRepo: notificationRepo,
        partyEventRepo:   partyEventRepo,
        hotspotRepo:      hotspotRepo,
        queueRepo:        queueRepo,
        relService:       relService,
        publisher:        publisher,
        feedService:      feedService,
        dispatcher:       dispatcher,
        sweeper:          sweeper,
    }
}
