package graph

import (
	"time"
)

// UserID is an opaque identifier for a user. Users themselves are owned by
// the identity collaborator; the graph only ever sees their ids.
type UserID string

// String returns the string representation
func (id UserID) String() string {
	return string(id)
}

// EdgeStatus represents the lifecycle state of a connection
type EdgeStatus string

const (
	StatusPending  EdgeStatus = "PENDING"
	StatusAccepted EdgeStatus = "ACCEPTED"
	StatusDeclined EdgeStatus = "DECLINED"
	StatusBlocked  EdgeStatus = "BLOCKED"
)

// IsValid reports whether s is a known edge status
func (s EdgeStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusDeclined, StatusBlocked:
		return true
	}
	return false
}

// ConnectionType records the professional relationship behind an edge.
// Informational only; traversal and ranking never branch on it.
type ConnectionType string

const (
	ConnectionColleague       ConnectionType = "colleague"
	ConnectionFormerColleague ConnectionType = "former_colleague"
	ConnectionClassmate       ConnectionType = "classmate"
	ConnectionClient          ConnectionType = "client"
	ConnectionVendor          ConnectionType = "vendor"
	ConnectionPartner         ConnectionType = "partner"
	ConnectionMentor          ConnectionType = "mentor"
	ConnectionMentee          ConnectionType = "mentee"
	ConnectionRecruiter       ConnectionType = "recruiter"
	ConnectionCandidate       ConnectionType = "candidate"
	ConnectionIndustryPeer    ConnectionType = "industry_peer"
	ConnectionFriend          ConnectionType = "friend"
)

// Edge represents a connection between two users. The pair is unordered:
// U is always the lexically smaller id and V the larger, so there is at
// most one edge per pair regardless of who initiated it.
type Edge struct {
	U                UserID
	V                UserID
	Requester        UserID
	Type             ConnectionType
	Status           EdgeStatus
	CreatedAt        time.Time
	AcceptedAt       time.Time
	InteractionCount int
	LastInteraction  time.Time
}

// Other returns the endpoint opposite to u
func (e *Edge) Other(u UserID) UserID {
	if e.U == u {
		return e.V
	}
	return e.U
}

// canonicalPair orders an unordered pair deterministically
func canonicalPair(a, b UserID) (UserID, UserID) {
	if a > b {
		return b, a
	}
	return a, b
}

// canTransition encodes the edge state machine:
// PENDING may become ACCEPTED, DECLINED or BLOCKED; ACCEPTED may later be
// BLOCKED. DECLINED and BLOCKED are terminal (DECLINED removes the edge;
// re-connection after it requires a fresh PENDING edge).
func canTransition(from, to EdgeStatus) bool {
	switch from {
	case StatusPending:
		return to == StatusAccepted || to == StatusDeclined || to == StatusBlocked
	case StatusAccepted:
		return to == StatusBlocked
	default:
		return false
	}
}
