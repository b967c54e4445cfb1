package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"talentnet-backend/domain/content"
	"talentnet-backend/domain/graph"
	"talentnet-backend/domain/traversal"
	apperrors "talentnet-backend/pkg/errors"
)

func newAggregatorFixture(t *testing.T, contentSvc *fakeContent, maxCandidates int) (*graph.Store, *traversal.Engine, *CandidateAggregator) {
	t.Helper()
	store := graph.NewStore()
	engine := traversal.NewEngine(store)
	agg := NewCandidateAggregator(store, contentSvc, AggregatorConfig{
		Window:        48 * time.Hour,
		MaxCandidates: maxCandidates,
	}, zap.NewNop())
	return store, engine, agg
}

func post(id string, author graph.UserID, vis content.Visibility, age time.Duration) content.Item {
	return content.Item{
		ID:         id,
		AuthorID:   author,
		Type:       content.TypePost,
		Visibility: vis,
		CreatedAt:  time.Now().Add(-age),
	}
}

func TestCollectCandidatesEmptyNeighborhood(t *testing.T) {
	contentSvc := &fakeContent{}
	_, engine, agg := newAggregatorFixture(t, contentSvc, 100)

	nbhd := engine.GetNeighborhood(context.Background(), "loner", 2, 100)
	items, err := agg.CollectCandidates(context.Background(), "loner", nbhd)

	require.NoError(t, err)
	assert.Nil(t, items)
	assert.Equal(t, 0, contentSvc.calls, "no authors means no content fetch")
}

func TestCollectCandidatesVisibilityTiers(t *testing.T) {
	contentSvc := &fakeContent{}
	store, engine, agg := newAggregatorFixture(t, contentSvc, 100)

	// seed -- alice -- carol: alice direct, carol second degree with one
	// mutual connection (alice)
	require.NoError(t, store.AddEdge("seed", "alice"))
	require.NoError(t, store.AddEdge("alice", "carol"))

	contentSvc.items = []content.Item{
		post("p-alice-conn", "alice", content.VisibilityConnections, time.Hour),
		post("p-carol-pub", "carol", content.VisibilityPublic, time.Hour),
		post("p-carol-conn", "carol", content.VisibilityConnections, time.Hour),
		post("p-carol-net", "carol", content.VisibilityNetwork, time.Hour),
		post("p-carol-priv", "carol", content.VisibilityPrivate, time.Hour),
	}

	nbhd := engine.GetNeighborhood(context.Background(), "seed", 2, 100)
	items, err := agg.CollectCandidates(context.Background(), "seed", nbhd)
	require.NoError(t, err)

	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	assert.ElementsMatch(t, []string{"p-alice-conn", "p-carol-pub", "p-carol-net"}, ids)
}

func TestCollectCandidatesNetworkTierNeedsMutual(t *testing.T) {
	contentSvc := &fakeContent{}
	store, engine, agg := newAggregatorFixture(t, contentSvc, 100)

	// carol is second degree: her network-tier post is visible through the
	// mutual (alice), her connections-only post is not
	require.NoError(t, store.AddEdge("seed", "alice"))
	require.NoError(t, store.AddEdge("alice", "carol"))

	contentSvc.items = []content.Item{
		post("net", "carol", content.VisibilityNetwork, time.Hour),
		post("conn", "carol", content.VisibilityConnections, time.Hour),
	}

	nbhd := engine.GetNeighborhood(context.Background(), "seed", 2, 100)
	items, err := agg.CollectCandidates(context.Background(), "seed", nbhd)
	require.NoError(t, err)

	require.Len(t, items, 1)
	assert.Equal(t, "net", items[0].ID)
}

func TestCollectCandidatesRetriesContentOnce(t *testing.T) {
	contentSvc := &fakeContent{failures: 1}
	store, engine, agg := newAggregatorFixture(t, contentSvc, 100)

	require.NoError(t, store.AddEdge("seed", "alice"))
	contentSvc.items = []content.Item{
		post("p1", "alice", content.VisibilityPublic, time.Hour),
	}

	nbhd := engine.GetNeighborhood(context.Background(), "seed", 1, 100)
	items, err := agg.CollectCandidates(context.Background(), "seed", nbhd)

	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, 2, contentSvc.calls)
}

func TestCollectCandidatesContentUnavailable(t *testing.T) {
	contentSvc := &fakeContent{failures: 2}
	store, engine, agg := newAggregatorFixture(t, contentSvc, 100)

	require.NoError(t, store.AddEdge("seed", "alice"))

	nbhd := engine.GetNeighborhood(context.Background(), "seed", 1, 100)
	_, err := agg.CollectCandidates(context.Background(), "seed", nbhd)

	require.Error(t, err)
	assert.True(t, apperrors.IsDependencyUnavailable(err))
	assert.Equal(t, 2, contentSvc.calls, "exactly one retry")
}

func TestCollectCandidatesCapsMostRecentFirst(t *testing.T) {
	contentSvc := &fakeContent{}
	store, engine, agg := newAggregatorFixture(t, contentSvc, 3)

	require.NoError(t, store.AddEdge("seed", "alice"))
	contentSvc.items = []content.Item{
		post("old-1", "alice", content.VisibilityPublic, 5*time.Hour),
		post("old-2", "alice", content.VisibilityPublic, 4*time.Hour),
		post("new-1", "alice", content.VisibilityPublic, time.Hour),
		post("new-2", "alice", content.VisibilityPublic, 2*time.Hour),
		post("new-3", "alice", content.VisibilityPublic, 3*time.Hour),
	}

	nbhd := engine.GetNeighborhood(context.Background(), "seed", 1, 100)
	items, err := agg.CollectCandidates(context.Background(), "seed", nbhd)
	require.NoError(t, err)

	require.Len(t, items, 3)
	assert.Equal(t, "new-1", items[0].ID)
	assert.Equal(t, "new-2", items[1].ID)
	assert.Equal(t, "new-3", items[2].ID)
}
