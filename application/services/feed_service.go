package services

import (
	"context"
	"sync"
	"time"

	"talentnet-backend/application/ports"
	"talentnet-backend/domain/content"
	"talentnet-backend/domain/feed"
	"talentnet-backend/domain/graph"
	"talentnet-backend/domain/profile"
	"talentnet-backend/domain/traversal"
	"talentnet-backend/pkg/errors"
	"talentnet-backend/pkg/observability"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// FeedConfig bounds feed generation
type FeedConfig struct {
	// Depth of the neighborhood content is pulled from
	Depth int
	// MaxVisited is the traversal budget
	MaxVisited int
	// DefaultLimit applies when the caller passes limit <= 0
	DefaultLimit int
	// MaxLimit caps what a caller may request
	MaxLimit int
	// ScoringWorkers bounds the parallel scoring fan-out
	ScoringWorkers int
}

// FeedService produces the personalized feed: bounded neighborhood, capped
// candidate pool, parallel relevance scoring, then sequential diversity
// selection. Under deadline pressure every stage degrades to a flagged
// partial result; only a feed with nothing behind it at all is an error.
type FeedService struct {
	store       *graph.Store
	engine      *traversal.Engine
	aggregator  *CandidateAggregator
	identity    ports.IdentityService
	scorer      *feed.Scorer
	selectorCfg feed.SelectorConfig
	cfg         FeedConfig
	metrics     *observability.Metrics
	logger      *zap.Logger
}

// NewFeedService creates a feed service
func NewFeedService(
	store *graph.Store,
	engine *traversal.Engine,
	aggregator *CandidateAggregator,
	identity ports.IdentityService,
	scorer *feed.Scorer,
	selectorCfg feed.SelectorConfig,
	cfg FeedConfig,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *FeedService {
	return &FeedService{
		store:       store,
		engine:      engine,
		aggregator:  aggregator,
		identity:    identity,
		scorer:      scorer,
		selectorCfg: selectorCfg,
		cfg:         cfg,
		metrics:     metrics,
		logger:      logger,
	}
}

// GenerateFeed assembles the ordered feed for user. Within the request,
// neighborhood retrieval and attribute fetch run concurrently, candidate
// scoring fans out across workers, and everything joins before the
// selector runs (cap bookkeeping is inherently sequential).
func (s *FeedService) GenerateFeed(ctx context.Context, user graph.UserID, limit int) (*feed.FeedResult, error) {
	if user == "" {
		return nil, errors.NewValidationError("user id required")
	}
	if limit <= 0 {
		limit = s.cfg.DefaultLimit
	}
	if limit > s.cfg.MaxLimit {
		limit = s.cfg.MaxLimit
	}

	start := time.Now()

	var nbhd *traversal.Neighborhood
	var attrs *profile.AttributeRecord

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		nbhd = s.engine.GetNeighborhood(gctx, user, s.cfg.Depth, s.cfg.MaxVisited)
		return nil
	})
	g.Go(func() error {
		var err error
		attrs, err = fetchAttributes(gctx, s.identity, user)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	items, err := s.aggregator.CollectCandidates(ctx, user, nbhd)
	if err != nil {
		return nil, err
	}

	candidates, scoringTruncated := s.scoreAll(ctx, user, attrs, items)
	if len(candidates) == 0 && scoringTruncated {
		// the deadline pre-empted scoring outright; not even a partial
		// result was assembled. A feed that is empty because the network
		// produced nothing is a complete result, not this error.
		return nil, errors.NewDeadlineExceededError("generate_feed")
	}

	result := feed.SelectFeed(candidates, limit, s.selectorCfg)
	result.Degraded = nbhd.Partial || scoringTruncated

	if s.metrics != nil {
		s.metrics.RecordFeedGenerated(ctx, time.Since(start), len(candidates), result.Degraded)
	}
	s.logger.Debug("Generated feed",
		zap.String("user", user.String()),
		zap.Int("candidates", len(candidates)),
		zap.Int("selected", len(result.ItemIDs)),
		zap.Bool("degraded", result.Degraded),
		zap.Duration("elapsed", time.Since(start)),
	)
	return &result, nil
}

// scoreAll scores candidates across a bounded worker pool. If the deadline
// arrives mid-scoring, whatever has been scored so far is returned with the
// truncation flag; a shorter feed beats no feed.
func (s *FeedService) scoreAll(ctx context.Context, user graph.UserID, attrs *profile.AttributeRecord, items []content.Item) ([]feed.Candidate, bool) {
	if len(items) == 0 {
		return nil, false
	}

	// one relationship snapshot per author, shared by that author's items
	signals := make(map[graph.UserID]feed.EdgeSignals)
	for _, item := range items {
		if _, ok := signals[item.AuthorID]; ok {
			continue
		}
		edge, _ := s.store.GetEdge(user, item.AuthorID)
		signals[item.AuthorID] = feed.SignalsFromEdge(edge, s.store.IsTopConnection(user, item.AuthorID))
	}

	var interests []float64
	if attrs != nil {
		interests = attrs.InterestVector
	}
	now := time.Now()

	workers := s.cfg.ScoringWorkers
	if workers < 1 {
		workers = 4
	}

	var mu sync.Mutex
	scored := make([]feed.Candidate, 0, len(items))
	truncated := false

	var wg sync.WaitGroup
	work := make(chan content.Item)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range work {
				c := s.scorer.Score(item, interests, signals[item.AuthorID], now)
				mu.Lock()
				scored = append(scored, c)
				mu.Unlock()
			}
		}()
	}

feeding:
	for _, item := range items {
		if ctx.Err() != nil {
			truncated = true
			break
		}
		select {
		case work <- item:
		case <-ctx.Done():
			truncated = true
			break feeding
		}
	}
	close(work)
	wg.Wait()

	return scored, truncated
}
