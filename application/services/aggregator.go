package services

import (
	"context"
	"sort"
	"time"

	"talentnet-backend/application/ports"
	"talentnet-backend/domain/content"
	"talentnet-backend/domain/graph"
	"talentnet-backend/domain/traversal"
	"talentnet-backend/pkg/errors"

	"go.uber.org/zap"
)

// AggregatorConfig bounds candidate collection
type AggregatorConfig struct {
	// Window is how far back content is collected
	Window time.Duration
	// MaxCandidates caps the pool handed to scoring, most-recent-first
	MaxCandidates int
}

// CandidateAggregator collects recent content from a user's neighborhood,
// filtered by visibility, capped before scoring so a prolific neighborhood
// cannot blow up downstream compute.
type CandidateAggregator struct {
	store      *graph.Store
	contentSvc ports.ContentService
	cfg        AggregatorConfig
	logger     *zap.Logger
}

// NewCandidateAggregator creates a candidate aggregator
func NewCandidateAggregator(store *graph.Store, contentSvc ports.ContentService, cfg AggregatorConfig, logger *zap.Logger) *CandidateAggregator {
	return &CandidateAggregator{
		store:      store,
		contentSvc: contentSvc,
		cfg:        cfg,
		logger:     logger,
	}
}

// CollectCandidates fetches content authored within the window by anyone in
// seed's neighborhood and visible to seed. The content collaborator gets
// exactly one retry on transient failure; after that the error surfaces as
// dependency unavailability and the caller decides whether to degrade.
func (a *CandidateAggregator) CollectCandidates(ctx context.Context, seed graph.UserID, nbhd *traversal.Neighborhood) ([]content.Item, error) {
	authors := nbhd.Users()
	if len(authors) == 0 {
		return nil, nil
	}

	items, err := a.fetchContent(ctx, authors)
	if err != nil {
		return nil, err
	}

	directSet := make(map[graph.UserID]struct{}, len(nbhd.Rings[1]))
	for _, u := range nbhd.Rings[1] {
		directSet[u] = struct{}{}
	}
	seedNeighbors := a.store.NeighborSet(seed)

	visible := make([]content.Item, 0, len(items))
	for _, item := range items {
		_, direct := directSet[item.AuthorID]

		// mutual count only matters for the NETWORK tier; skip the
		// intersection walk unless the item needs it
		mutualCount := 0
		if !direct && item.Visibility == content.VisibilityNetwork {
			for peer := range a.store.NeighborSet(item.AuthorID) {
				if _, ok := seedNeighbors[peer]; ok {
					mutualCount++
				}
			}
		}

		if item.VisibleTo(seed, direct, mutualCount) {
			visible = append(visible, item)
		}
	}

	// most-recent-first truncation before scoring; ties on timestamp fall
	// to item id so the cut is deterministic
	sort.Slice(visible, func(i, j int) bool {
		if !visible[i].CreatedAt.Equal(visible[j].CreatedAt) {
			return visible[i].CreatedAt.After(visible[j].CreatedAt)
		}
		return visible[i].ID < visible[j].ID
	})
	if len(visible) > a.cfg.MaxCandidates {
		visible = visible[:a.cfg.MaxCandidates]
	}

	a.logger.Debug("Collected feed candidates",
		zap.String("seed", seed.String()),
		zap.Int("authors", len(authors)),
		zap.Int("fetched", len(items)),
		zap.Int("visible", len(visible)),
	)
	return visible, nil
}

func (a *CandidateAggregator) fetchContent(ctx context.Context, authors []graph.UserID) ([]content.Item, error) {
	items, err := a.contentSvc.GetRecentContent(ctx, authors, a.cfg.Window)
	if err == nil {
		return items, nil
	}

	select {
	case <-ctx.Done():
		return nil, errors.NewDependencyUnavailableError("content", err)
	case <-time.After(retryBackoff):
	}

	items, retryErr := a.contentSvc.GetRecentContent(ctx, authors, a.cfg.Window)
	if retryErr != nil {
		return nil, errors.NewDependencyUnavailableError("content", retryErr)
	}
	return items, nil
}
