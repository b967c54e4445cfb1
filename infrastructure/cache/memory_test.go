package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talentnet-backend/domain/graph"
)

func TestSetAndGet(t *testing.T) {
	c := NewInMemoryCache()
	ctx := context.Background()

	c.Set(ctx, "k1", "v1", time.Minute)
	got, ok := c.Get(ctx, "k1")
	require.True(t, ok)
	assert.Equal(t, "v1", got)

	_, ok = c.Get(ctx, "missing")
	assert.False(t, ok)
}

func TestGetExpired(t *testing.T) {
	c := NewInMemoryCache()
	ctx := context.Background()

	c.Set(ctx, "k1", "v1", -time.Second)
	_, ok := c.Get(ctx, "k1")
	assert.False(t, ok)

	// the expired read also dropped the entry and its index
	c.mu.Lock()
	_, exists := c.items["k1"]
	c.mu.Unlock()
	assert.False(t, exists)
}

func TestInvalidateUserDropsDependentEntries(t *testing.T) {
	c := NewInMemoryCache()
	ctx := context.Background()

	c.Set(ctx, "nbhd:alice:2", 1, time.Minute, "alice", "bob")
	c.Set(ctx, "nbhd:carol:1", 2, time.Minute, "carol")

	c.InvalidateUser(ctx, graph.UserID("bob"))

	_, ok := c.Get(ctx, "nbhd:alice:2")
	assert.False(t, ok, "entries indexed by the mutated user are dropped")
	_, ok = c.Get(ctx, "nbhd:carol:1")
	assert.True(t, ok, "unrelated entries survive")
}

func TestSetReplacesIndex(t *testing.T) {
	c := NewInMemoryCache()
	ctx := context.Background()

	c.Set(ctx, "k1", 1, time.Minute, "alice")
	c.Set(ctx, "k1", 2, time.Minute, "bob")

	// alice no longer owns k1
	c.InvalidateUser(ctx, graph.UserID("alice"))
	got, ok := c.Get(ctx, "k1")
	require.True(t, ok)
	assert.Equal(t, 2, got)

	c.InvalidateUser(ctx, graph.UserID("bob"))
	_, ok = c.Get(ctx, "k1")
	assert.False(t, ok)
}

func TestClear(t *testing.T) {
	c := NewInMemoryCache()
	ctx := context.Background()

	c.Set(ctx, "k1", 1, time.Minute, "alice")
	c.Set(ctx, "k2", 2, time.Minute)
	c.Clear(ctx)

	_, ok := c.Get(ctx, "k1")
	assert.False(t, ok)
	_, ok = c.Get(ctx, "k2")
	assert.False(t, ok)
}
