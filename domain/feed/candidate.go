package feed

import (
	"talentnet-backend/domain/content"
)

// ScoreBreakdown explains how a candidate's final score was assembled.
// Explainability is part of the contract, not a presentation nicety.
type ScoreBreakdown struct {
	ConnectionStrength float64 `json:"connection_strength"`
	ContentSimilarity  float64 `json:"content_similarity"`
	RecencyDecay       float64 `json:"recency_decay"`
	EngagementNorm     float64 `json:"engagement_norm"`
}

// Candidate pairs a content item with its computed score. Candidates are
// ephemeral: computed per request, never persisted.
type Candidate struct {
	Item      content.Item   `json:"item"`
	Breakdown ScoreBreakdown `json:"breakdown"`
	Score     float64        `json:"score"`
}

// FeedResult is the ordered outcome of feed selection with the metadata a
// caller needs to understand what it got.
type FeedResult struct {
	ItemIDs []string `json:"item_ids"`

	// AuthorCounts and TypeCounts record how the diversity caps were used
	AuthorCounts map[string]int `json:"author_counts"`
	TypeCounts   map[string]int `json:"type_counts"`

	// Truncated is set when the caps made the requested limit unreachable
	Truncated bool `json:"truncated"`
	// Degraded is set when upstream stages returned partial data (budget
	// or deadline truncation); the feed is best-effort but still valid
	Degraded bool `json:"degraded"`
}
