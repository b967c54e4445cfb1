package feed

import (
	"time"

	"talentnet-backend/domain/content"
	"talentnet-backend/domain/graph"
	"talentnet-backend/domain/profile"
)

// ScorerConfig holds the relevance weights and normalization knobs. All of
// these are tunable configuration; the defaults carry no product intent.
type ScorerConfig struct {
	ConnectionWeight float64
	SimilarityWeight float64
	RecencyWeight    float64
	EngagementWeight float64

	// RecencyHorizon is the age at which recency decays to zero
	RecencyHorizon time.Duration
	// EngagementThreshold saturates the engagement component
	EngagementThreshold float64
	// TopConnectionBonus is added to connection strength when the author
	// is in the viewer's curated top connections
	TopConnectionBonus float64
	// InteractionSaturation is the interaction count at which connection
	// strength from interaction frequency reaches 1
	InteractionSaturation int
}

// DefaultScorerConfig returns the standard weights
func DefaultScorerConfig() ScorerConfig {
	return ScorerConfig{
		ConnectionWeight:      0.3,
		SimilarityWeight:      0.4,
		RecencyWeight:         0.2,
		EngagementWeight:      0.1,
		RecencyHorizon:        7 * 24 * time.Hour,
		EngagementThreshold:   100,
		TopConnectionBonus:    0.25,
		InteractionSaturation: 50,
	}
}

// EdgeSignals is the per-author relationship input to scoring: interaction
// frequency from the edge plus curated top-connection membership.
type EdgeSignals struct {
	InteractionCount int
	TopConnection    bool
}

// Scorer computes relevance scores. It is a pure function of its inputs,
// has no side effects, and is re-executed per request.
type Scorer struct {
	cfg ScorerConfig
}

// NewScorer creates a scorer with the given configuration
func NewScorer(cfg ScorerConfig) *Scorer {
	return &Scorer{cfg: cfg}
}

// Score computes the weighted relevance of item for a viewer with the given
// interest vector and relationship to the author. now anchors recency so
// that identical calls produce identical scores.
//
// Holding all else equal, a strictly more recent item never scores below an
// otherwise identical older one.
func (s *Scorer) Score(item content.Item, interests []float64, signals EdgeSignals, now time.Time) Candidate {
	b := ScoreBreakdown{
		ConnectionStrength: s.connectionStrength(signals),
		ContentSimilarity:  profile.CosineVec(interests, item.Vector),
		RecencyDecay:       s.recencyDecay(item.CreatedAt, now),
		EngagementNorm:     s.engagementNorm(item.Engagement),
	}

	score := s.cfg.ConnectionWeight*b.ConnectionStrength +
		s.cfg.SimilarityWeight*b.ContentSimilarity +
		s.cfg.RecencyWeight*b.RecencyDecay +
		s.cfg.EngagementWeight*b.EngagementNorm

	return Candidate{Item: item, Breakdown: b, Score: score}
}

// connectionStrength derives a [0,1] strength from interaction frequency,
// with a bonus for curated top connections. Strength is a derived metric,
// recomputed here from interaction signals, never stored.
func (s *Scorer) connectionStrength(signals EdgeSignals) float64 {
	sat := s.cfg.InteractionSaturation
	if sat <= 0 {
		sat = 1
	}
	strength := float64(signals.InteractionCount) / float64(sat)
	if strength > 1 {
		strength = 1
	}
	if signals.TopConnection {
		strength += s.cfg.TopConnectionBonus
		if strength > 1 {
			strength = 1
		}
	}
	return strength
}

// recencyDecay is linear from 1.0 at age zero to 0.0 at the horizon,
// floored at zero beyond it.
func (s *Scorer) recencyDecay(createdAt, now time.Time) float64 {
	age := now.Sub(createdAt)
	if age <= 0 {
		return 1
	}
	horizon := s.cfg.RecencyHorizon
	if horizon <= 0 {
		return 0
	}
	decay := 1 - float64(age)/float64(horizon)
	if decay < 0 {
		return 0
	}
	return decay
}

func (s *Scorer) engagementNorm(e content.Engagement) float64 {
	threshold := s.cfg.EngagementThreshold
	if threshold <= 0 {
		return 0
	}
	norm := e.WeightedCount() / threshold
	if norm > 1 {
		return 1
	}
	return norm
}

// SignalsFromEdge builds scoring signals from a graph edge snapshot
func SignalsFromEdge(edge graph.Edge, topConnection bool) EdgeSignals {
	return EdgeSignals{
		InteractionCount: edge.InteractionCount,
		TopConnection:    topConnection,
	}
}
