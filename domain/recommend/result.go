package recommend

import (
	"talentnet-backend/domain/graph"
)

// Breakdown explains a recommendation's score per factor, with the raw
// signals behind it. Part of the contract: every recommendation must be
// explainable.
type Breakdown struct {
	MutualConnections int     `json:"mutual_connections"`
	MutualNorm        float64 `json:"mutual_norm"`
	Similarity        float64 `json:"similarity"`
	RecentInteraction float64 `json:"recent_interaction"`
}

// Result is one ranked connection recommendation. Ephemeral, computed per
// request.
type Result struct {
	CandidateID graph.UserID `json:"candidate_id"`
	Score       float64      `json:"score"`
	Breakdown   Breakdown    `json:"breakdown"`
}
