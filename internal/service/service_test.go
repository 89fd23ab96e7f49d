package service

import (
    "context"
    "fmt"
    "testing"

    "github.com/stretchr/testify/require"
    "gorm.io/driver/sqlite"
    "gorm.io/gorm"

    "github.com/d60-Lab/party-feed/internal/model"
    "github.com/d60-Lab/party-feed/internal/repository"
    "github.com/d60-Lab/party-feed/pkg/database"
)

// 测试管线：内存 sqlite 上的完整扇出流水线
type testPipeline struct {
    db         *gorm.DB
    queueRepo  repository.QueueRepository
    fanRepo    repository.FanRepository
    followRepo repository.FollowRepository
    timeline   repository.TimelineRepository
    hotspot    repository.HotspotRepository
    points     repository.PointsRepository
    notifs     repository.NotificationRepository
    posts      repository.PostRepository
    events     repository.PartyEventRepository
    users      repository.UserRepository

    aggregator *HotspotAggregator
    fanout     *FanoutEngine
    engagement *EngagementService
    dispatcher *Dispatcher
    publisher  *Publisher
}

func setupPipeline(t *testing.T, fanoutThreshold int64) *testPipeline {
    t.Helper()
    db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
    require.NoError(t, err)
    require.NoError(t, database.AutoMigrate(db))

    p := &testPipeline{
        db:         db,
        queueRepo:  repository.NewQueueRepository(db),
        fanRepo:    repository.NewFanRepository(db),
        followRepo: repository.NewFollowRepository(db),
        timeline:   repository.NewTimelineRepository(db),
        hotspot:    repository.NewHotspotRepository(db),
        points:     repository.NewPointsRepository(db),
        notifs:     repository.NewNotificationRepository(db),
        posts:      repository.NewPostRepository(db),
        events:     repository.NewPartyEventRepository(db),
        users:      repository.NewUserRepository(db),
    }
    p.aggregator = NewHotspotAggregator(p.hotspot)
    p.fanout = NewFanoutEngine(p.fanRepo, nil, p.timeline, p.points, p.aggregator, fanoutThreshold, 100, nil)
    p.engagement = NewEngagementService(p.posts, p.events, p.points, p.notifs)
    p.dispatcher = NewDispatcher(p.queueRepo, p.fanout, p.engagement)
    p.publisher = NewPublisher(db)
    return p
}

func (p *testPipeline) seedUser(t *testing.T, id string) {
    t.Helper()
    u := &model.User{ID: id, Username: id, Email: id + "@example.com", Password: "p"}
    require.NoError(t, p.db.Create(u).Error)
}

func (p *testPipeline) seedFans(t *testing.T, authorID string, n int) {
    t.Helper()
    for i := 0; i < n; i++ {
        fanID := fmt.Sprintf("%s-fan-%03d", authorID, i)
        require.NoError(t, p.fanRepo.Create(context.Background(), authorID, fanID))
    }
}

func (p *testPipeline) timelineCount(t *testing.T, postID string) int64 {
    t.Helper()
    cnt, err := p.timeline.CountByPost(context.Background(), postID)
    require.NoError(t, err)
    return cnt
}
