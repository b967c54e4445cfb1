package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"talentnet-backend/domain/graph"
	"talentnet-backend/domain/traversal"
	apperrors "talentnet-backend/pkg/errors"
	"talentnet-backend/pkg/observability"
)

func newNetworkFixture(t *testing.T, repo *fakeEdgeRepo, publisher *fakePublisher) (*graph.Store, *NetworkService) {
	t.Helper()
	store := graph.NewStore()
	svc := NewNetworkService(
		store,
		traversal.NewEngine(store),
		repo,
		publisher,
		observability.NewMetrics(nil, "", zap.NewNop()),
		zap.NewNop(),
	)
	return store, svc
}

func TestRecordEdgeChangeLifecycle(t *testing.T) {
	repo := newFakeEdgeRepo()
	publisher := &fakePublisher{}
	store, svc := newNetworkFixture(t, repo, publisher)
	ctx := context.Background()

	require.NoError(t, svc.RecordEdgeChange(ctx, "alice", "bob", graph.StatusPending, graph.ConnectionColleague))
	require.NoError(t, svc.RecordEdgeChange(ctx, "bob", "alice", graph.StatusAccepted, ""))

	edge, ok := store.GetEdge("alice", "bob")
	require.True(t, ok)
	assert.Equal(t, graph.StatusAccepted, edge.Status)

	saved, ok := repo.get("alice", "bob")
	require.True(t, ok, "every mutation writes through to the journal")
	assert.Equal(t, graph.StatusAccepted, saved.Status)

	require.Len(t, publisher.events, 2)
	assert.Equal(t, graph.StatusPending, publisher.events[0].NewStatus)
	assert.Equal(t, graph.StatusAccepted, publisher.events[1].NewStatus)
	assert.NotEmpty(t, publisher.events[0].EventID)
}

func TestRecordEdgeChangeDeclinedDeletesJournalEntry(t *testing.T) {
	repo := newFakeEdgeRepo()
	store, svc := newNetworkFixture(t, repo, &fakePublisher{})
	ctx := context.Background()

	require.NoError(t, svc.RecordEdgeChange(ctx, "alice", "bob", graph.StatusPending, graph.ConnectionColleague))
	require.NoError(t, svc.RecordEdgeChange(ctx, "bob", "alice", graph.StatusDeclined, ""))

	assert.False(t, store.HasEdge("alice", "bob"))
	_, ok := repo.get("alice", "bob")
	assert.False(t, ok, "a declined request leaves no journal entry")
}

func TestRecordEdgeChangeRequesterCannotAcceptOwnRequest(t *testing.T) {
	repo := newFakeEdgeRepo()
	store, svc := newNetworkFixture(t, repo, &fakePublisher{})
	ctx := context.Background()

	require.NoError(t, svc.RecordEdgeChange(ctx, "alice", "bob", graph.StatusPending, graph.ConnectionColleague))

	err := svc.RecordEdgeChange(ctx, "alice", "bob", graph.StatusAccepted, "")
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))

	status, ok := store.EdgeStatusOf("alice", "bob")
	require.True(t, ok)
	assert.Equal(t, graph.StatusPending, status, "the request stays pending")

	// the recipient accepts as usual
	require.NoError(t, svc.RecordEdgeChange(ctx, "bob", "alice", graph.StatusAccepted, ""))
}

func TestRecordEdgeChangeUnknownStatus(t *testing.T) {
	repo := newFakeEdgeRepo()
	publisher := &fakePublisher{}
	_, svc := newNetworkFixture(t, repo, publisher)

	err := svc.RecordEdgeChange(context.Background(), "alice", "bob", "FROZEN", "")
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Empty(t, publisher.events)
}

func TestRecordEdgeChangeDomainErrorSkipsSideEffects(t *testing.T) {
	repo := newFakeEdgeRepo()
	publisher := &fakePublisher{}
	_, svc := newNetworkFixture(t, repo, publisher)
	ctx := context.Background()

	err := svc.RecordEdgeChange(ctx, "alice", "alice", graph.StatusAccepted, "")
	require.Error(t, err)
	assert.Empty(t, repo.saved)
	assert.Empty(t, publisher.events)
}

func TestPublishFailureNeverFailsTheMutation(t *testing.T) {
	repo := newFakeEdgeRepo()
	publisher := &fakePublisher{err: errors.New("bus down")}
	store, svc := newNetworkFixture(t, repo, publisher)

	require.NoError(t, svc.RecordEdgeChange(context.Background(), "alice", "bob", graph.StatusAccepted, ""))

	assert.True(t, store.HasEdge("alice", "bob"))
	_, ok := repo.get("alice", "bob")
	assert.True(t, ok)
}

func TestJournalFailureSurfaces(t *testing.T) {
	repo := newFakeEdgeRepo()
	repo.failing = true
	store, svc := newNetworkFixture(t, repo, &fakePublisher{})

	err := svc.RecordEdgeChange(context.Background(), "alice", "bob", graph.StatusAccepted, "")
	require.Error(t, err)
	// the in-memory store already applied the edge; the journal is the
	// source of truth on restart, so the caller must see the failure
	assert.True(t, store.HasEdge("alice", "bob"))
}

func TestRemoveEdge(t *testing.T) {
	repo := newFakeEdgeRepo()
	store, svc := newNetworkFixture(t, repo, &fakePublisher{})
	ctx := context.Background()

	require.NoError(t, svc.RecordEdgeChange(ctx, "alice", "bob", graph.StatusAccepted, ""))
	require.NoError(t, svc.RemoveEdge(ctx, "alice", "bob"))

	assert.False(t, store.HasEdge("alice", "bob"))
	assert.Empty(t, repo.saved)
}

func TestRecordInteractionPersists(t *testing.T) {
	repo := newFakeEdgeRepo()
	_, svc := newNetworkFixture(t, repo, &fakePublisher{})
	ctx := context.Background()

	require.NoError(t, svc.RecordEdgeChange(ctx, "alice", "bob", graph.StatusAccepted, ""))
	require.NoError(t, svc.RecordInteraction(ctx, "bob", "alice"))

	saved, ok := repo.get("alice", "bob")
	require.True(t, ok)
	assert.Equal(t, 1, saved.InteractionCount)
	assert.False(t, saved.LastInteraction.IsZero())
}

func TestGetNetworkStats(t *testing.T) {
	repo := newFakeEdgeRepo()
	store, svc := newNetworkFixture(t, repo, &fakePublisher{})
	ctx := context.Background()

	require.NoError(t, store.AddEdge("seed", "a1"))
	require.NoError(t, store.AddEdge("seed", "a2"))
	require.NoError(t, store.AddEdge("a1", "c1"))
	require.NoError(t, store.RequestEdge("stranger", "seed", graph.ConnectionRecruiter))
	require.NoError(t, store.SetTopConnections("seed", []graph.UserID{"a1"}))

	stats, err := svc.GetNetworkStats(ctx, "seed", 0)
	require.NoError(t, err)

	assert.Equal(t, graph.UserID("seed"), stats.UserID)
	assert.Equal(t, 2, stats.Connections)
	assert.Equal(t, 1, stats.PendingRequests)
	assert.Equal(t, 1, stats.TwoHopReach)
	assert.False(t, stats.TwoHopReachPartial)
	assert.Equal(t, 1, stats.TopConnections)

	_, err = svc.GetNetworkStats(ctx, "", 0)
	assert.True(t, apperrors.IsValidation(err))
}
