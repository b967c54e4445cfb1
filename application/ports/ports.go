package ports

import (
	"context"
	"time"

	"talentnet-backend/domain/content"
	"talentnet-backend/domain/graph"
	"talentnet-backend/domain/profile"
)

// IdentityService is the identity collaborator: the system of record for
// users and their profile attributes. Consumed read-only.
type IdentityService interface {
	GetUserAttributes(ctx context.Context, userID graph.UserID) (*profile.AttributeRecord, error)
}

// ContentService is the content collaborator: the system of record for
// posts and their engagement counters. Consumed read-only.
type ContentService interface {
	GetRecentContent(ctx context.Context, authorIDs []graph.UserID, window time.Duration) ([]content.Item, error)
}

// EdgeRepository is the durable journal behind the in-memory graph store.
// Every mutation is written through; LoadAll rebuilds the store at startup.
type EdgeRepository interface {
	Save(ctx context.Context, edge graph.Edge) error
	Delete(ctx context.Context, u, v graph.UserID) error
	LoadAll(ctx context.Context) ([]graph.Edge, error)
}

// EdgeChangeEvent notifies collaborator systems of a connection change
type EdgeChangeEvent struct {
	EventID   string           `json:"event_id"`
	UserA     graph.UserID     `json:"user_a"`
	UserB     graph.UserID     `json:"user_b"`
	NewStatus graph.EdgeStatus `json:"new_status"`
	Timestamp time.Time        `json:"timestamp"`
}

// EventPublisher publishes edge-change events. Publishing is best-effort:
// failures must never fail the mutation that triggered them.
type EventPublisher interface {
	PublishEdgeChange(ctx context.Context, event EdgeChangeEvent) error
}

// Cache stores computed results with a TTL, indexed by the users whose
// edges they depend on so that any mutation touching one of those users
// can invalidate them synchronously.
type Cache interface {
	Get(ctx context.Context, key string) (interface{}, bool)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration, users ...graph.UserID)
	InvalidateUser(ctx context.Context, user graph.UserID)
	Clear(ctx context.Context)
}
