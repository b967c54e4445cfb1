package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"talentnet-backend/application/ports"
	"talentnet-backend/domain/content"
	"talentnet-backend/domain/graph"
	"talentnet-backend/domain/profile"
	apperrors "talentnet-backend/pkg/errors"
)

// fakeIdentity serves canned attribute records, optionally failing the
// first failures calls
type fakeIdentity struct {
	mu       sync.Mutex
	records  map[graph.UserID]*profile.AttributeRecord
	failures int
	calls    int
}

func newFakeIdentity() *fakeIdentity {
	return &fakeIdentity{records: make(map[graph.UserID]*profile.AttributeRecord)}
}

func (f *fakeIdentity) put(userID graph.UserID, skills []string, industry string) {
	f.records[userID] = &profile.AttributeRecord{
		SchemaVersion: profile.CurrentSchemaVersion,
		UserID:        userID.String(),
		Skills:        skills,
		Industry:      industry,
	}
}

func (f *fakeIdentity) GetUserAttributes(ctx context.Context, userID graph.UserID) (*profile.AttributeRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.failures > 0 {
		f.failures--
		return nil, errors.New("identity unavailable")
	}
	rec, ok := f.records[userID]
	if !ok {
		return nil, apperrors.NewNotFoundError("profile")
	}
	return rec, nil
}

// fakeContent serves canned items, optionally failing the first failures
// calls
type fakeContent struct {
	mu       sync.Mutex
	items    []content.Item
	failures int
	calls    int
}

func (f *fakeContent) GetRecentContent(ctx context.Context, authorIDs []graph.UserID, window time.Duration) ([]content.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.failures > 0 {
		f.failures--
		return nil, errors.New("content unavailable")
	}

	wanted := make(map[graph.UserID]bool, len(authorIDs))
	for _, a := range authorIDs {
		wanted[a] = true
	}
	cutoff := time.Now().Add(-window)

	var out []content.Item
	for _, item := range f.items {
		if wanted[item.AuthorID] && item.CreatedAt.After(cutoff) {
			out = append(out, item)
		}
	}
	return out, nil
}

// fakeEdgeRepo journals edges in memory
type fakeEdgeRepo struct {
	mu      sync.Mutex
	saved   map[string]graph.Edge
	deletes int
	failing bool
}

func newFakeEdgeRepo() *fakeEdgeRepo {
	return &fakeEdgeRepo{saved: make(map[string]graph.Edge)}
}

func pairKey(u, v graph.UserID) string {
	if u > v {
		u, v = v, u
	}
	return u.String() + "|" + v.String()
}

func (f *fakeEdgeRepo) Save(ctx context.Context, edge graph.Edge) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return errors.New("journal down")
	}
	f.saved[pairKey(edge.U, edge.V)] = edge
	return nil
}

func (f *fakeEdgeRepo) Delete(ctx context.Context, u, v graph.UserID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return errors.New("journal down")
	}
	delete(f.saved, pairKey(u, v))
	f.deletes++
	return nil
}

func (f *fakeEdgeRepo) LoadAll(ctx context.Context) ([]graph.Edge, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	edges := make([]graph.Edge, 0, len(f.saved))
	for _, e := range f.saved {
		edges = append(edges, e)
	}
	return edges, nil
}

func (f *fakeEdgeRepo) get(u, v graph.UserID) (graph.Edge, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.saved[pairKey(u, v)]
	return e, ok
}

// fakePublisher records published events
type fakePublisher struct {
	mu     sync.Mutex
	events []ports.EdgeChangeEvent
	err    error
}

func (f *fakePublisher) PublishEdgeChange(ctx context.Context, event ports.EdgeChangeEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, event)
	return nil
}

// fakeCache tracks sets and per-user invalidations
type fakeCache struct {
	mu          sync.Mutex
	entries     map[string]interface{}
	byUser      map[graph.UserID][]string
	invalidated []graph.UserID
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		entries: make(map[string]interface{}),
		byUser:  make(map[graph.UserID][]string),
	}
}

func (f *fakeCache) Get(ctx context.Context, key string) (interface{}, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.entries[key]
	return v, ok
}

func (f *fakeCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration, users ...graph.UserID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[key] = value
	for _, u := range users {
		f.byUser[u] = append(f.byUser[u], key)
	}
}

func (f *fakeCache) InvalidateUser(ctx context.Context, user graph.UserID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invalidated = append(f.invalidated, user)
	for _, key := range f.byUser[user] {
		delete(f.entries, key)
	}
	delete(f.byUser, user)
}

func (f *fakeCache) Clear(ctx context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = make(map[string]interface{})
	f.byUser = make(map[graph.UserID][]string)
}
