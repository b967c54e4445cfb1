package services

import (
	"context"
	"sort"
	"time"

	"talentnet-backend/application/ports"
	"talentnet-backend/domain/graph"
	"talentnet-backend/domain/profile"
	"talentnet-backend/domain/recommend"
	"talentnet-backend/domain/traversal"
	"talentnet-backend/pkg/errors"

	"go.uber.org/zap"
)

// RecommendationConfig bounds candidate generation
type RecommendationConfig struct {
	// MaxVisited is the traversal budget for the 2-hop expansion
	MaxVisited int
	// DefaultLimit applies when the caller passes limit <= 0
	DefaultLimit int
	// MaxLimit caps what a caller may request
	MaxLimit int
	// InteractionHorizon is the window over which an interaction on a
	// connecting edge still counts as recent
	InteractionHorizon time.Duration
}

// RecommendationService generates connection recommendations from the
// 2-hop neighborhood (friends of friends), scored by mutual connections,
// attribute similarity and interaction recency, with per-seed adaptive
// weights.
type RecommendationService struct {
	store      *graph.Store
	engine     *traversal.Engine
	identity   ports.IdentityService
	similarity profile.Similarity
	weights    *recommend.WeightStore
	cfg        RecommendationConfig
	logger     *zap.Logger
}

// NewRecommendationService creates a recommendation service
func NewRecommendationService(
	store *graph.Store,
	engine *traversal.Engine,
	identity ports.IdentityService,
	similarity profile.Similarity,
	weights *recommend.WeightStore,
	cfg RecommendationConfig,
	logger *zap.Logger,
) *RecommendationService {
	return &RecommendationService{
		store:      store,
		engine:     engine,
		identity:   identity,
		similarity: similarity,
		weights:    weights,
		cfg:        cfg,
		logger:     logger,
	}
}

// Recommend returns up to limit ranked connection candidates for seed.
// The pool is the 2-hop ring minus anyone already connected, blocked,
// pending in either direction, or the seed itself. Results are ordered by
// score descending; ties fall to higher mutual-connection count, then to
// candidate id, so identical inputs always rank identically.
func (s *RecommendationService) Recommend(ctx context.Context, seed graph.UserID, limit int) ([]recommend.Result, error) {
	if seed == "" {
		return nil, errors.NewValidationError("seed user id required")
	}
	if limit <= 0 {
		limit = s.cfg.DefaultLimit
	}
	if limit > s.cfg.MaxLimit {
		limit = s.cfg.MaxLimit
	}

	nbhd := s.engine.GetNeighborhood(ctx, seed, 2, s.cfg.MaxVisited)
	pool := s.candidatePool(seed, nbhd)
	if len(pool) == 0 {
		return []recommend.Result{}, nil
	}

	seedAttrs, err := fetchAttributes(ctx, s.identity, seed)
	if err != nil {
		return nil, err
	}
	seedNeighbors := s.store.NeighborSet(seed)
	weights := s.weights.For(seed)
	now := time.Now()

	// Pool-relative normalization: the best-connected candidate anchors 1.0
	maxMutual := 0
	mutualCounts := make(map[graph.UserID]int, len(pool))
	for _, cand := range pool {
		m := s.mutualCount(seedNeighbors, cand)
		mutualCounts[cand] = m
		if m > maxMutual {
			maxMutual = m
		}
	}

	results := make([]recommend.Result, 0, len(pool))
	for _, cand := range pool {
		candAttrs, err := fetchAttributes(ctx, s.identity, cand)
		if err != nil {
			if errors.IsDependencyUnavailable(err) {
				return nil, err
			}
			// unknown candidate attributes degrade that candidate, not the call
			candAttrs = nil
		}

		breakdown := recommend.Breakdown{
			MutualConnections: mutualCounts[cand],
			Similarity:        s.similarity.Score(seedAttrs, candAttrs),
			RecentInteraction: s.recentInteraction(seed, cand, seedNeighbors, now),
		}
		if maxMutual > 0 {
			breakdown.MutualNorm = float64(breakdown.MutualConnections) / float64(maxMutual)
		}

		score := weights.Mutual*breakdown.MutualNorm +
			weights.Similarity*breakdown.Similarity +
			weights.RecentInteraction*breakdown.RecentInteraction

		results = append(results, recommend.Result{
			CandidateID: cand,
			Score:       score,
			Breakdown:   breakdown,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		if results[i].Breakdown.MutualConnections != results[j].Breakdown.MutualConnections {
			return results[i].Breakdown.MutualConnections > results[j].Breakdown.MutualConnections
		}
		return results[i].CandidateID < results[j].CandidateID
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// RecordFeedback nudges seed's weight vector toward (accepted) or away
// from (rejected) the factors that drove the recommendation of candidate.
func (s *RecommendationService) RecordFeedback(ctx context.Context, seed, candidate graph.UserID, accepted bool) error {
	if seed == "" || candidate == "" {
		return errors.NewValidationError("seed and candidate ids required")
	}
	if seed == candidate {
		return errors.NewValidationError("seed cannot give feedback on itself")
	}

	seedNeighbors := s.store.NeighborSet(seed)
	mutual := s.mutualCount(seedNeighbors, candidate)

	similarity := 0.0
	seedAttrs, err := fetchAttributes(ctx, s.identity, seed)
	if err == nil {
		if candAttrs, err := fetchAttributes(ctx, s.identity, candidate); err == nil {
			similarity = s.similarity.Score(seedAttrs, candAttrs)
		}
	}

	factors := recommend.Weights{
		Mutual:            saturate(float64(mutual), 10),
		Similarity:        similarity,
		RecentInteraction: s.recentInteraction(seed, candidate, seedNeighbors, time.Now()),
	}
	updated := s.weights.ApplyFeedback(seed, factors, accepted)

	s.logger.Debug("Applied recommendation feedback",
		zap.String("seed", seed.String()),
		zap.String("candidate", candidate.String()),
		zap.Bool("accepted", accepted),
		zap.Float64("wMutual", updated.Mutual),
		zap.Float64("wSimilarity", updated.Similarity),
		zap.Float64("wRecent", updated.RecentInteraction),
	)
	return nil
}

// candidatePool filters the 2-hop ring down to users the seed could
// actually connect with: no existing edge in any state, not the seed.
func (s *RecommendationService) candidatePool(seed graph.UserID, nbhd *traversal.Neighborhood) []graph.UserID {
	ring2 := nbhd.Rings[2]
	pool := make([]graph.UserID, 0, len(ring2))
	for _, cand := range ring2 {
		if cand == seed {
			continue
		}
		// BFS already excludes direct (ACCEPTED) neighbors; PENDING in
		// either direction and BLOCKED pairs still share an edge record
		if _, exists := s.store.EdgeStatusOf(seed, cand); exists {
			continue
		}
		pool = append(pool, cand)
	}
	return pool
}

func (s *RecommendationService) mutualCount(seedNeighbors map[graph.UserID]struct{}, candidate graph.UserID) int {
	count := 0
	for peer := range s.store.NeighborSet(candidate) {
		if _, ok := seedNeighbors[peer]; ok {
			count++
		}
	}
	return count
}

// recentInteraction scores how recently the seed interacted along the
// edges that connect them to the candidate: the fresher the seed's contact
// with a shared connection, the warmer the introduction path.
func (s *RecommendationService) recentInteraction(seed, candidate graph.UserID, seedNeighbors map[graph.UserID]struct{}, now time.Time) float64 {
	horizon := s.cfg.InteractionHorizon
	if horizon <= 0 {
		return 0
	}

	best := 0.0
	for peer := range s.store.NeighborSet(candidate) {
		if _, ok := seedNeighbors[peer]; !ok {
			continue
		}
		edge, ok := s.store.GetEdge(seed, peer)
		if !ok || edge.LastInteraction.IsZero() {
			continue
		}
		age := now.Sub(edge.LastInteraction)
		if age < 0 {
			age = 0
		}
		score := 1 - float64(age)/float64(horizon)
		if score > best {
			best = score
		}
	}
	if best < 0 {
		return 0
	}
	return best
}

func saturate(v, threshold float64) float64 {
	if threshold <= 0 {
		return 0
	}
	out := v / threshold
	if out > 1 {
		return 1
	}
	return out
}
