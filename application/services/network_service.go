package services

import (
	"context"
	"time"

	"talentnet-backend/application/ports"
	"talentnet-backend/domain/graph"
	"talentnet-backend/domain/traversal"
	"talentnet-backend/pkg/errors"
	"talentnet-backend/pkg/observability"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// defaultStatsBudget bounds the 2-hop reach expansion when the caller
// does not supply a budget
const defaultStatsBudget = 10000

// NetworkService orchestrates edge mutations: the in-memory store is the
// authority, every change is written through to the journal, and a change
// event is published for collaborator systems. Cache invalidation happens
// synchronously via the store's mutation hook before any of this returns.
type NetworkService struct {
	store     *graph.Store
	engine    *traversal.Engine
	edgeRepo  ports.EdgeRepository
	publisher ports.EventPublisher
	metrics   *observability.Metrics
	logger    *zap.Logger
}

// NewNetworkService creates a network service
func NewNetworkService(
	store *graph.Store,
	engine *traversal.Engine,
	edgeRepo ports.EdgeRepository,
	publisher ports.EventPublisher,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *NetworkService {
	return &NetworkService{
		store:     store,
		engine:    engine,
		edgeRepo:  edgeRepo,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
	}
}

// RecordEdgeChange applies a connection change for the pair (a, b), with a
// the acting user. PENDING creates a request from a to b; ACCEPTED accepts
// (or idempotently creates) the connection; DECLINED removes the request;
// BLOCKED blocks the pair in both directions permanently. Only the
// recipient of a pending request may accept it.
func (s *NetworkService) RecordEdgeChange(ctx context.Context, a, b graph.UserID, newStatus graph.EdgeStatus, connType graph.ConnectionType) error {
	var err error
	switch newStatus {
	case graph.StatusPending:
		if connType == "" {
			connType = graph.ConnectionIndustryPeer
		}
		err = s.store.RequestEdge(a, b, connType)
	case graph.StatusAccepted:
		if edge, ok := s.store.GetEdge(a, b); ok && edge.Status == graph.StatusPending && edge.Requester == a {
			err = errors.NewConflictError("pending request can only be accepted by its recipient")
		} else {
			err = s.store.AddEdge(a, b)
		}
	case graph.StatusDeclined, graph.StatusBlocked:
		err = s.store.SetEdgeStatus(a, b, newStatus)
	default:
		err = errors.NewValidationError("unknown edge status: " + string(newStatus))
	}
	if err != nil {
		return err
	}

	if err := s.persistPair(ctx, a, b); err != nil {
		return err
	}

	s.metrics.RecordEdgeChange(ctx, string(newStatus))
	s.publishChange(ctx, a, b, newStatus)
	return nil
}

// RemoveEdge deletes the connection between a and b; no-op when absent
func (s *NetworkService) RemoveEdge(ctx context.Context, a, b graph.UserID) error {
	s.store.RemoveEdge(a, b)
	if err := s.edgeRepo.Delete(ctx, a, b); err != nil {
		return errors.Wrap(err, "failed to delete edge from journal")
	}
	return nil
}

// RecordInteraction bumps the interaction signals on the (a, b) edge
func (s *NetworkService) RecordInteraction(ctx context.Context, a, b graph.UserID) error {
	if err := s.store.RecordInteraction(a, b); err != nil {
		return err
	}
	return s.persistPair(ctx, a, b)
}

// SetTopConnections replaces user's curated top-connections list
func (s *NetworkService) SetTopConnections(ctx context.Context, user graph.UserID, peers []graph.UserID) error {
	return s.store.SetTopConnections(user, peers)
}

// NetworkStats summarizes a user's network
type NetworkStats struct {
	UserID             graph.UserID `json:"user_id"`
	Connections        int          `json:"connections"`
	PendingRequests    int          `json:"pending_requests"`
	TwoHopReach        int          `json:"two_hop_reach"`
	TwoHopReachPartial bool         `json:"two_hop_reach_partial"`
	TopConnections     int          `json:"top_connections"`
}

// GetNetworkStats computes summary statistics for a user's network. The
// 2-hop reach uses the same bounded traversal as everything else; on large
// networks it may be flagged partial.
func (s *NetworkService) GetNetworkStats(ctx context.Context, user graph.UserID, maxVisited int) (*NetworkStats, error) {
	if user == "" {
		return nil, errors.NewValidationError("user id required")
	}
	if maxVisited <= 0 {
		maxVisited = defaultStatsBudget
	}

	nbhd := s.engine.GetNeighborhood(ctx, user, 2, maxVisited)
	return &NetworkStats{
		UserID:             user,
		Connections:        s.store.Degree(user),
		PendingRequests:    len(s.store.Neighbors(user, graph.StatusPending)),
		TwoHopReach:        len(nbhd.Rings[2]),
		TwoHopReachPartial: nbhd.Partial,
		TopConnections:     len(s.store.TopConnections(user)),
	}, nil
}

// persistPair writes the current state of the (a, b) edge through to the
// journal. A removed edge (declined) becomes a delete.
func (s *NetworkService) persistPair(ctx context.Context, a, b graph.UserID) error {
	if s.edgeRepo == nil {
		return nil
	}
	edge, ok := s.store.GetEdge(a, b)
	if !ok {
		if err := s.edgeRepo.Delete(ctx, a, b); err != nil {
			return errors.Wrap(err, "failed to delete edge from journal")
		}
		return nil
	}
	if err := s.edgeRepo.Save(ctx, edge); err != nil {
		return errors.Wrap(err, "failed to persist edge")
	}
	return nil
}

// publishChange emits the edge-change event. Best-effort: a publish
// failure is logged and swallowed so it never fails the mutation.
func (s *NetworkService) publishChange(ctx context.Context, a, b graph.UserID, status graph.EdgeStatus) {
	if s.publisher == nil {
		return
	}
	event := ports.EdgeChangeEvent{
		EventID:   uuid.New().String(),
		UserA:     a,
		UserB:     b,
		NewStatus: status,
		Timestamp: time.Now(),
	}
	if err := s.publisher.PublishEdgeChange(ctx, event); err != nil {
		s.logger.Warn("Failed to publish edge change event",
			zap.Error(err),
			zap.String("userA", a.String()),
			zap.String("userB", b.String()),
			zap.String("status", string(status)),
		)
	}
}
