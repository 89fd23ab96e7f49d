package service

import (
    "context"
    "testing"

    "github.com/stretchr/testify/require"

    "github.com/d60-Lab/party-feed/internal/model"
)

func seedPost(t *testing.T, p *testPipeline, id, authorID string) {
    t.Helper()
    require.NoError(t, p.db.Create(&model.Post{ID: id, AuthorID: authorID, Content: "x"}).Error)
}

func notificationCount(t *testing.T, p *testPipeline) int64 {
    t.Helper()
    var cnt int64
    require.NoError(t, p.db.Model(&model.Notification{}).Count(&cnt).Error)
    return cnt
}

func TestLikeCreditsAuthorAndNotifies(t *testing.T) {
    p := setupPipeline(t, 50)
    ctx := context.Background()
    p.seedUser(t, "author")
    p.seedUser(t, "liker")
    seedPost(t, p, "p1", "author")

    require.NoError(t, p.engagement.HandleLikeAdded(ctx, &model.LikeAddedPayload{PostID: "p1", UserID: "liker"}))

    total, err := p.points.TotalByProfile(ctx, "author")
    require.NoError(t, err)
    require.EqualValues(t, 1, total)

    notifs, err := p.notifs.ListByRecipient(ctx, "author", 0, 10)
    require.NoError(t, err)
    require.Len(t, notifs, 1)
    require.Equal(t, model.NotificationLike, notifs[0].Type)
    require.Equal(t, "liker", notifs[0].ActorID)
    require.False(t, notifs[0].IsRead)
}

func TestSelfActionEarnsNothing(t *testing.T) {
    p := setupPipeline(t, 50)
    ctx := context.Background()
    p.seedUser(t, "author")
    seedPost(t, p, "p1", "author")

    require.NoError(t, p.engagement.HandleLikeAdded(ctx, &model.LikeAddedPayload{PostID: "p1", UserID: "author"}))
    require.NoError(t, p.engagement.HandleCommentAdded(ctx, &model.CommentAddedPayload{PostID: "p1", CommentID: "c1", UserID: "author"}))

    total, err := p.points.TotalByProfile(ctx, "author")
    require.NoError(t, err)
    require.Zero(t, total)
    require.Zero(t, notificationCount(t, p))
}

func TestCommentCreditsTwoPoints(t *testing.T) {
    p := setupPipeline(t, 50)
    ctx := context.Background()
    p.seedUser(t, "author")
    seedPost(t, p, "p1", "author")

    require.NoError(t, p.engagement.HandleCommentAdded(ctx, &model.CommentAddedPayload{PostID: "p1", CommentID: "c1", UserID: "commenter"}))

    total, err := p.points.TotalByProfile(ctx, "author")
    require.NoError(t, err)
    require.EqualValues(t, 2, total)
}

func TestFollowScenario(t *testing.T) {
    p := setupPipeline(t, 50)
    ctx := context.Background()
    p.seedUser(t, "u1")
    p.seedUser(t, "u2")

    // u1 关注 u2 → u2 +5 分，一条 follow 通知，actor 为 u1
    require.NoError(t, p.engagement.HandleFollowAdded(ctx, &model.FollowAddedPayload{FollowerID: "u1", FollowingID: "u2"}))

    total, err := p.points.TotalByProfile(ctx, "u2")
    require.NoError(t, err)
    require.EqualValues(t, 5, total)

    notifs, err := p.notifs.ListByRecipient(ctx, "u2", 0, 10)
    require.NoError(t, err)
    require.Len(t, notifs, 1)
    require.Equal(t, model.NotificationFollow, notifs[0].Type)
    require.Equal(t, "u1", notifs[0].ActorID)
}

func TestPointsReplayIsDeduplicated(t *testing.T) {
    p := setupPipeline(t, 50)
    ctx := context.Background()
    p.seedUser(t, "author")
    seedPost(t, p, "p1", "author")

    payload := &model.LikeAddedPayload{PostID: "p1", UserID: "liker"}
    require.NoError(t, p.engagement.HandleLikeAdded(ctx, payload))
    require.NoError(t, p.engagement.HandleLikeAdded(ctx, payload))

    total, err := p.points.TotalByProfile(ctx, "author")
    require.NoError(t, err)
    require.EqualValues(t, 1, total)
}

func TestRSVPAcceptCreditsAndNotifies(t *testing.T) {
    p := setupPipeline(t, 50)
    ctx := context.Background()
    p.seedUser(t, "creator")
    p.seedUser(t, "guest")
    require.NoError(t, p.events.Create(ctx, &model.PartyEvent{ID: "e1", CreatorID: "creator", Title: "rooftop"}))

    require.NoError(t, p.engagement.HandleRSVPChanged(ctx, &model.RSVPChangedPayload{EventID: "e1", UserID: "guest", Status: model.RSVPAccepted}))

    total, err := p.points.TotalByProfile(ctx, "creator")
    require.NoError(t, err)
    require.EqualValues(t, 3, total)

    notifs, err := p.notifs.ListByRecipient(ctx, "creator", 0, 10)
    require.NoError(t, err)
    require.Len(t, notifs, 1)
    require.Equal(t, model.NotificationRSVP, notifs[0].Type)
}

func TestRSVPDeclineNotifiesWithoutPoints(t *testing.T) {
    p := setupPipeline(t, 50)
    ctx := context.Background()
    p.seedUser(t, "creator")
    p.seedUser(t, "guest")
    require.NoError(t, p.events.Create(ctx, &model.PartyEvent{ID: "e1", CreatorID: "creator", Title: "rooftop"}))

    require.NoError(t, p.engagement.HandleRSVPChanged(ctx, &model.RSVPChangedPayload{EventID: "e1", UserID: "guest", Status: model.RSVPDeclined}))

    total, err := p.points.TotalByProfile(ctx, "creator")
    require.NoError(t, err)
    require.Zero(t, total)

    notifs, err := p.notifs.ListByRecipient(ctx, "creator", 0, 10)
    require.NoError(t, err)
    require.Len(t, notifs, 1)
}
