package recommend

import (
	"sync"

	"talentnet-backend/domain/graph"
)

// Weights is the per-factor weight vector for recommendation scoring
type Weights struct {
	Mutual            float64 `json:"mutual"`
	Similarity        float64 `json:"similarity"`
	RecentInteraction float64 `json:"recent_interaction"`
}

// DefaultWeights returns the standard weight vector. Tunable configuration,
// not product truth.
func DefaultWeights() Weights {
	return Weights{Mutual: 0.5, Similarity: 0.35, RecentInteraction: 0.15}
}

// EMA feedback parameters: each accepted/rejected recommendation nudges the
// seed's weights by alpha toward (or away from) the factors that drove the
// suggestion, clamped so no factor collapses or dominates. This is local
// personalization, not a trained model.
const (
	feedbackAlpha = 0.1
	weightFloor   = 0.05
	weightCeil    = 0.85
)

// WeightStore keeps per-seed adaptive weight vectors. Seeds without
// feedback history use the defaults.
type WeightStore struct {
	mu       sync.RWMutex
	defaults Weights
	byUser   map[graph.UserID]Weights
}

// NewWeightStore creates a weight store with the given defaults
func NewWeightStore(defaults Weights) *WeightStore {
	return &WeightStore{
		defaults: defaults,
		byUser:   make(map[graph.UserID]Weights),
	}
}

// For returns the active weight vector for seed
func (ws *WeightStore) For(seed graph.UserID) Weights {
	ws.mu.RLock()
	defer ws.mu.RUnlock()
	if w, ok := ws.byUser[seed]; ok {
		return w
	}
	return ws.defaults
}

// ApplyFeedback nudges seed's weights via a bounded exponential moving
// average. breakdown carries the factor values of the recommendation being
// judged: on acceptance the strongest factors gain weight, on rejection
// they lose it. The vector is clamped per factor and renormalized to sum 1.
func (ws *WeightStore) ApplyFeedback(seed graph.UserID, factors Weights, accepted bool) Weights {
	ws.mu.Lock()
	defer ws.mu.Unlock()

	current, ok := ws.byUser[seed]
	if !ok {
		current = ws.defaults
	}

	direction := 1.0
	if !accepted {
		direction = -1.0
	}

	current.Mutual = clampWeight(current.Mutual + feedbackAlpha*direction*factors.Mutual)
	current.Similarity = clampWeight(current.Similarity + feedbackAlpha*direction*factors.Similarity)
	current.RecentInteraction = clampWeight(current.RecentInteraction + feedbackAlpha*direction*factors.RecentInteraction)

	sum := current.Mutual + current.Similarity + current.RecentInteraction
	current.Mutual /= sum
	current.Similarity /= sum
	current.RecentInteraction /= sum

	ws.byUser[seed] = current
	return current
}

func clampWeight(w float64) float64 {
	if w < weightFloor {
		return weightFloor
	}
	if w > weightCeil {
		return weightCeil
	}
	return w
}
