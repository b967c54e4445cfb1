package services

import (
	"context"
	"fmt"
	"time"

	"talentnet-backend/application/ports"
	"talentnet-backend/domain/graph"
	"talentnet-backend/domain/traversal"
	"talentnet-backend/pkg/errors"

	"go.uber.org/zap"
)

// TraversalConfig bounds the traversal service's work
type TraversalConfig struct {
	// MaxDepth is the deepest neighborhood expansion callers may request
	MaxDepth int
	// MaxVisited is the visited-node budget per expansion
	MaxVisited int
	// MaxHops bounds shortest-path searches
	MaxHops int
	// NeighborhoodTTL is how long cached neighborhoods live absent mutations
	NeighborhoodTTL time.Duration
}

// TraversalService serves neighborhood and path queries, caching
// neighborhoods with a TTL. Cached entries are indexed by every user they
// contain, so edge mutations drop them synchronously.
type TraversalService struct {
	engine *traversal.Engine
	cache  ports.Cache
	cfg    TraversalConfig
	logger *zap.Logger
}

// NewTraversalService creates a traversal service
func NewTraversalService(engine *traversal.Engine, cache ports.Cache, cfg TraversalConfig, logger *zap.Logger) *TraversalService {
	return &TraversalService{
		engine: engine,
		cache:  cache,
		cfg:    cfg,
		logger: logger,
	}
}

// GetNeighborhood returns user's neighborhood up to depth hops. Partial
// results (budget or deadline truncation) are valid flagged successes and
// are never cached, so a later call can do better.
func (s *TraversalService) GetNeighborhood(ctx context.Context, user graph.UserID, depth int) (*traversal.Neighborhood, error) {
	if user == "" {
		return nil, errors.NewValidationError("user id required")
	}
	if depth < 1 || depth > s.cfg.MaxDepth {
		return nil, errors.NewValidationError(fmt.Sprintf("depth must be between 1 and %d", s.cfg.MaxDepth))
	}

	key := neighborhoodKey(user, depth)
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, key); ok {
			if nbhd, ok := cached.(*traversal.Neighborhood); ok {
				return nbhd, nil
			}
		}
	}

	nbhd := s.engine.GetNeighborhood(ctx, user, depth, s.cfg.MaxVisited)

	if s.cache != nil && !nbhd.Partial {
		members := append(nbhd.Users(), user)
		s.cache.Set(ctx, key, nbhd, s.cfg.NeighborhoodTTL, members...)
	}
	if nbhd.Partial {
		s.logger.Debug("Neighborhood truncated",
			zap.String("user", user.String()),
			zap.Int("depth", depth),
			zap.Int("truncatedAt", nbhd.TruncatedAtDepth),
			zap.Int("visited", nbhd.Visited),
		)
	}

	return nbhd, nil
}

// PathResult is the outcome of a shortest-path query
type PathResult struct {
	From      graph.UserID `json:"from"`
	To        graph.UserID `json:"to"`
	Hops      int          `json:"hops"`
	Reachable bool         `json:"reachable"`
	MaxHops   int          `json:"max_hops"`
}

// GetShortestPath returns the degree of separation between a and b within
// maxHops. Reachable=false means "unreachable within bound" only; deeper
// paths are never explored.
func (s *TraversalService) GetShortestPath(ctx context.Context, a, b graph.UserID, maxHops int) (*PathResult, error) {
	if a == "" || b == "" {
		return nil, errors.NewValidationError("both user ids required")
	}
	if maxHops < 1 || maxHops > s.cfg.MaxHops {
		maxHops = s.cfg.MaxHops
	}

	hops, reachable := s.engine.ShortestPathLength(ctx, a, b, maxHops)
	return &PathResult{
		From:      a,
		To:        b,
		Hops:      hops,
		Reachable: reachable,
		MaxHops:   maxHops,
	}, nil
}

func neighborhoodKey(user graph.UserID, depth int) string {
	return fmt.Sprintf("nbhd:%s:%d", user, depth)
}
