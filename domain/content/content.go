package content

import (
	"time"

	"talentnet-backend/domain/graph"
)

// ContentType categorizes a piece of content for diversity capping
type ContentType string

const (
	TypePost        ContentType = "post"
	TypeArticle     ContentType = "article"
	TypeAchievement ContentType = "achievement"
	TypeProject     ContentType = "project"
)

// Visibility controls who may see a content item
type Visibility string

const (
	// VisibilityPublic is visible to everyone
	VisibilityPublic Visibility = "public"
	// VisibilityConnections is visible to direct (ACCEPTED) connections
	VisibilityConnections Visibility = "connections"
	// VisibilityNetwork is visible at second degree: viewers sharing at
	// least one mutual connection with the author
	VisibilityNetwork Visibility = "network"
	// VisibilityPrivate is visible to the author only
	VisibilityPrivate Visibility = "private"
)

// Engagement carries raw interaction counters for an item
type Engagement struct {
	Likes    int `json:"likes"`
	Comments int `json:"comments"`
	Shares   int `json:"shares"`
	Views    int `json:"views"`
}

// Weighted interaction values; a share says more than a view
const (
	likeWeight    = 1.0
	commentWeight = 2.0
	shareWeight   = 3.0
	viewWeight    = 0.1
)

// WeightedCount folds the raw counters into a single engagement figure
func (e Engagement) WeightedCount() float64 {
	return float64(e.Likes)*likeWeight +
		float64(e.Comments)*commentWeight +
		float64(e.Shares)*shareWeight +
		float64(e.Views)*viewWeight
}

// Item is a piece of content authored by a user. Items are owned by the
// content collaborator and consumed read-only here.
type Item struct {
	ID         string       `json:"id"`
	AuthorID   graph.UserID `json:"author_id"`
	Type       ContentType  `json:"type"`
	Visibility Visibility   `json:"visibility"`
	CreatedAt  time.Time    `json:"created_at"`
	Engagement Engagement   `json:"engagement"`

	// Vector is the item's opaque semantic representation used for
	// content similarity. May be empty.
	Vector []float64 `json:"vector,omitempty"`
}

// VisibleTo decides whether viewer may see the item. directConnection and
// mutualCount describe the viewer's relationship to the author and are
// supplied by the caller, which owns the graph.
func (i *Item) VisibleTo(viewer graph.UserID, directConnection bool, mutualCount int) bool {
	if viewer == i.AuthorID {
		return true
	}
	switch i.Visibility {
	case VisibilityPublic:
		return true
	case VisibilityConnections:
		return directConnection
	case VisibilityNetwork:
		return directConnection || mutualCount > 0
	default:
		return false
	}
}
