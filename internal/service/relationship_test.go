package service

import (
    "context"
    "testing"

    "github.com/stretchr/testify/require"

    "github.com/d60-Lab/party-feed/internal/model"
)

func TestFollowSelfRejected(t *testing.T) {
    p := setupPipeline(t, 50)
    rel := NewRelationshipService(p.followRepo, p.fanRepo, p.publisher, nil)

    err := rel.Follow(context.Background(), "u1", "u1")
    require.ErrorIs(t, err, ErrFollowSelf)
}

func TestFollowWritesBothSidesAndEnqueues(t *testing.T) {
    p := setupPipeline(t, 50)
    ctx := context.Background()
    rel := NewRelationshipService(p.followRepo, p.fanRepo, p.publisher, nil)

    require.NoError(t, rel.Follow(ctx, "u1", "u2"))

    following, err := rel.ListFollowing(ctx, "u1", 1, 10)
    require.NoError(t, err)
    require.Equal(t, []string{"u2"}, following)

    fans, err := rel.ListFans(ctx, "u2", 1, 10)
    require.NoError(t, err)
    require.Equal(t, []string{"u1"}, fans)

    var ev model.QueueEvent
    require.NoError(t, p.db.First(&ev, "event_type = ?", model.EventFollowAdded).Error)
    require.Equal(t, model.QueueStatusPending, ev.Status)
}

func TestUnfollowRemovesBothSides(t *testing.T) {
    p := setupPipeline(t, 50)
    ctx := context.Background()
    rel := NewRelationshipService(p.followRepo, p.fanRepo, p.publisher, nil)

    require.NoError(t, rel.Follow(ctx, "u1", "u2"))
    require.NoError(t, rel.Unfollow(ctx, "u1", "u2"))

    following, err := rel.ListFollowing(ctx, "u1", 1, 10)
    require.NoError(t, err)
    require.Empty(t, following)

    cnt, err := p.fanRepo.CountFans(ctx, "u2")
    require.NoError(t, err)
    require.Zero(t, cnt)
}
