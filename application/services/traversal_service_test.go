package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"talentnet-backend/domain/graph"
	"talentnet-backend/domain/traversal"
	apperrors "talentnet-backend/pkg/errors"
)

func newTraversalFixture(t *testing.T, cache *fakeCache, maxVisited int) (*graph.Store, *TraversalService) {
	t.Helper()
	store := graph.NewStore()
	svc := NewTraversalService(traversal.NewEngine(store), cache, TraversalConfig{
		MaxDepth:        3,
		MaxVisited:      maxVisited,
		MaxHops:         4,
		NeighborhoodTTL: time.Minute,
	}, zap.NewNop())
	return store, svc
}

func TestGetNeighborhoodValidation(t *testing.T) {
	_, svc := newTraversalFixture(t, newFakeCache(), 1000)
	ctx := context.Background()

	_, err := svc.GetNeighborhood(ctx, "", 1)
	assert.True(t, apperrors.IsValidation(err))

	_, err = svc.GetNeighborhood(ctx, "alice", 0)
	assert.True(t, apperrors.IsValidation(err))

	_, err = svc.GetNeighborhood(ctx, "alice", 4)
	assert.True(t, apperrors.IsValidation(err))
}

func TestGetNeighborhoodCachesCompleteResults(t *testing.T) {
	cache := newFakeCache()
	store, svc := newTraversalFixture(t, cache, 1000)
	ctx := context.Background()

	require.NoError(t, store.AddEdge("seed", "alice"))
	require.NoError(t, store.AddEdge("alice", "carol"))

	first, err := svc.GetNeighborhood(ctx, "seed", 2)
	require.NoError(t, err)
	assert.Len(t, cache.entries, 1)

	// a second query is served from cache even after the graph changes
	require.NoError(t, store.AddEdge("seed", "bob"))
	second, err := svc.GetNeighborhood(ctx, "seed", 2)
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestGetNeighborhoodCacheIndexedByMembers(t *testing.T) {
	cache := newFakeCache()
	store, svc := newTraversalFixture(t, cache, 1000)
	ctx := context.Background()

	require.NoError(t, store.AddEdge("seed", "alice"))
	require.NoError(t, store.AddEdge("alice", "carol"))

	_, err := svc.GetNeighborhood(ctx, "seed", 2)
	require.NoError(t, err)

	// an edge mutation touching any member invalidates the entry; the
	// next query sees the new graph
	cache.InvalidateUser(ctx, "carol")
	require.NoError(t, store.AddEdge("seed", "bob"))

	nbhd, err := svc.GetNeighborhood(ctx, "seed", 2)
	require.NoError(t, err)
	assert.True(t, nbhd.Contains("bob"))
}

func TestGetNeighborhoodPartialNotCached(t *testing.T) {
	cache := newFakeCache()
	store, svc := newTraversalFixture(t, cache, 1)
	ctx := context.Background()

	for _, peer := range []graph.UserID{"a", "b", "c"} {
		require.NoError(t, store.AddEdge("seed", peer))
	}

	nbhd, err := svc.GetNeighborhood(ctx, "seed", 2)
	require.NoError(t, err)
	assert.True(t, nbhd.Partial)
	assert.Empty(t, cache.entries, "partial results stay out of the cache")
}

func TestGetShortestPath(t *testing.T) {
	store, svc := newTraversalFixture(t, newFakeCache(), 1000)
	ctx := context.Background()

	require.NoError(t, store.AddEdge("a", "b"))
	require.NoError(t, store.AddEdge("b", "c"))

	result, err := svc.GetShortestPath(ctx, "a", "c", 3)
	require.NoError(t, err)
	assert.True(t, result.Reachable)
	assert.Equal(t, 2, result.Hops)

	result, err = svc.GetShortestPath(ctx, "a", "z", 3)
	require.NoError(t, err)
	assert.False(t, result.Reachable)

	_, err = svc.GetShortestPath(ctx, "", "c", 3)
	assert.True(t, apperrors.IsValidation(err))
}

func TestGetShortestPathClampsBound(t *testing.T) {
	store, svc := newTraversalFixture(t, newFakeCache(), 1000)
	ctx := context.Background()

	// a five-hop chain; MaxHops of 4 bounds the search even when the
	// caller asks for more
	chain := []graph.UserID{"u1", "u2", "u3", "u4", "u5", "u6"}
	for i := 0; i+1 < len(chain); i++ {
		require.NoError(t, store.AddEdge(chain[i], chain[i+1]))
	}

	result, err := svc.GetShortestPath(ctx, "u1", "u6", 99)
	require.NoError(t, err)
	assert.Equal(t, 4, result.MaxHops)
	assert.False(t, result.Reachable, "five hops exceeds the clamped bound")
}
