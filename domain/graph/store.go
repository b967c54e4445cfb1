package graph

import (
	"hash/fnv"
	"sync"
	"sync/atomic"
	"time"

	"talentnet-backend/pkg/errors"
)

// MaxTopConnections caps the curated top-connections list per user
const MaxTopConnections = 8

const shardCount = 64

// MutationHook is invoked synchronously after every successful edge
// mutation with both affected endpoints, before the mutating call returns.
// Used for cache invalidation: no stale read window wider than one request.
type MutationHook func(u, v UserID)

// Store owns the connection graph. It is the only shared mutable resource
// in the core and must sustain concurrent reads during writes, so the
// adjacency index is striped across shards keyed by user id: writes lock
// only the two endpoint shards, reads lock one.
type Store struct {
	shards    [shardCount]*shard
	edgeCount atomic.Int64

	hookMu sync.RWMutex
	hook   MutationHook
}

type shard struct {
	mu sync.RWMutex
	// adjacency: user -> peer -> shared edge record.
	// An edge record appears in both endpoint shards; mutations hold both
	// shard locks, so a reader holding either endpoint's lock is safe.
	adj map[UserID]map[UserID]*Edge
	// curated top connections, ordered, at most MaxTopConnections
	top map[UserID][]UserID
}

// NewStore creates an empty graph store
func NewStore() *Store {
	s := &Store{}
	for i := range s.shards {
		s.shards[i] = &shard{
			adj: make(map[UserID]map[UserID]*Edge),
			top: make(map[UserID][]UserID),
		}
	}
	return s
}

// SetMutationHook registers the invalidation hook. A nil hook disables it.
func (s *Store) SetMutationHook(hook MutationHook) {
	s.hookMu.Lock()
	s.hook = hook
	s.hookMu.Unlock()
}

func (s *Store) fireHook(u, v UserID) {
	s.hookMu.RLock()
	hook := s.hook
	s.hookMu.RUnlock()
	if hook != nil {
		hook(u, v)
	}
}

func shardIndexFor(id UserID) int {
	h := fnv.New32a()
	h.Write([]byte(id))
	return int(h.Sum32() % shardCount)
}

func (s *Store) shardFor(id UserID) *shard {
	return s.shards[shardIndexFor(id)]
}

// lockPair acquires both endpoint shards in index order so concurrent
// writers on overlapping pairs cannot deadlock. Returns the unlock func.
func (s *Store) lockPair(u, v UserID) func() {
	iu, iv := shardIndexFor(u), shardIndexFor(v)
	if iu == iv {
		sh := s.shards[iu]
		sh.mu.Lock()
		return sh.mu.Unlock
	}
	if iv < iu {
		iu, iv = iv, iu
	}
	first, second := s.shards[iu], s.shards[iv]
	first.mu.Lock()
	second.mu.Lock()
	return func() {
		second.mu.Unlock()
		first.mu.Unlock()
	}
}

func (sh *shard) peers(u UserID) map[UserID]*Edge {
	m, ok := sh.adj[u]
	if !ok {
		m = make(map[UserID]*Edge)
		sh.adj[u] = m
	}
	return m
}

// AddEdge creates an ACCEPTED edge between u and v, or idempotently no-ops
// if one already exists. An existing PENDING request is promoted to
// ACCEPTED. Fails with an invalid edge error when u == v, and with a
// conflict when the pair is blocked.
func (s *Store) AddEdge(u, v UserID) error {
	if u == v {
		return errors.NewInvalidEdgeError("cannot connect a user to themselves")
	}
	if u == "" || v == "" {
		return errors.NewInvalidEdgeError("edge endpoints must be non-empty")
	}

	unlock := s.lockPair(u, v)
	mutated := false

	if edge := s.edgeLocked(u, v); edge != nil {
		switch edge.Status {
		case StatusAccepted:
			// idempotent
		case StatusPending:
			edge.Status = StatusAccepted
			edge.AcceptedAt = time.Now()
			mutated = true
		case StatusBlocked:
			unlock()
			return errors.NewConflictError("pair is blocked")
		}
		unlock()
		if mutated {
			s.fireHook(u, v)
		}
		return nil
	}

	now := time.Now()
	lo, hi := canonicalPair(u, v)
	edge := &Edge{
		U:          lo,
		V:          hi,
		Requester:  u,
		Type:       ConnectionIndustryPeer,
		Status:     StatusAccepted,
		CreatedAt:  now,
		AcceptedAt: now,
	}
	s.insertLocked(edge)
	unlock()

	s.edgeCount.Add(1)
	s.fireHook(u, v)
	return nil
}

// RequestEdge creates a PENDING connection request from requester to
// recipient with the given relationship type. Duplicate requests conflict.
func (s *Store) RequestEdge(requester, recipient UserID, connType ConnectionType) error {
	if requester == recipient {
		return errors.NewInvalidEdgeError("cannot connect a user to themselves")
	}
	if requester == "" || recipient == "" {
		return errors.NewInvalidEdgeError("edge endpoints must be non-empty")
	}

	unlock := s.lockPair(requester, recipient)
	if edge := s.edgeLocked(requester, recipient); edge != nil {
		status := edge.Status
		unlock()
		if status == StatusBlocked {
			return errors.NewConflictError("pair is blocked")
		}
		return errors.NewConflictError("connection already exists with status " + string(status))
	}

	lo, hi := canonicalPair(requester, recipient)
	edge := &Edge{
		U:         lo,
		V:         hi,
		Requester: requester,
		Type:      connType,
		Status:    StatusPending,
		CreatedAt: time.Now(),
	}
	s.insertLocked(edge)
	unlock()

	s.edgeCount.Add(1)
	s.fireHook(requester, recipient)
	return nil
}

// SetEdgeStatus transitions an existing edge through the state machine.
// DECLINED removes the edge entirely. Fails with a not found error when no
// edge exists for the pair, and with an invalid edge error for u == v.
func (s *Store) SetEdgeStatus(u, v UserID, status EdgeStatus) error {
	if u == v {
		return errors.NewInvalidEdgeError("cannot connect a user to themselves")
	}
	if !status.IsValid() {
		return errors.NewValidationError("unknown edge status: " + string(status))
	}
	if status == StatusPending {
		return errors.NewValidationError("PENDING is an initial state; use RequestEdge")
	}

	unlock := s.lockPair(u, v)
	edge := s.edgeLocked(u, v)
	if edge == nil {
		unlock()
		return errors.NewNotFoundError("connection")
	}
	if !canTransition(edge.Status, status) {
		from := edge.Status
		unlock()
		return errors.NewConflictError("invalid transition " + string(from) + " -> " + string(status))
	}

	removed := false
	switch status {
	case StatusDeclined:
		s.removeLocked(u, v)
		removed = true
	case StatusAccepted:
		edge.Status = StatusAccepted
		edge.AcceptedAt = time.Now()
	case StatusBlocked:
		edge.Status = StatusBlocked
		dropTopLocked(s.shardFor(u), u, v)
		dropTopLocked(s.shardFor(v), v, u)
	}
	unlock()

	if removed {
		s.edgeCount.Add(-1)
	}
	s.fireHook(u, v)
	return nil
}

// RemoveEdge deletes the edge between u and v if present; no-op otherwise
func (s *Store) RemoveEdge(u, v UserID) {
	if u == v || u == "" || v == "" {
		return
	}
	unlock := s.lockPair(u, v)
	existed := s.edgeLocked(u, v) != nil
	if existed {
		s.removeLocked(u, v)
	}
	unlock()

	if existed {
		s.edgeCount.Add(-1)
		s.fireHook(u, v)
	}
}

// RecordInteraction bumps the interaction signals on an ACCEPTED edge.
// Connection strength is derived from these at scoring time, never stored.
func (s *Store) RecordInteraction(u, v UserID) error {
	if u == v {
		return errors.NewInvalidEdgeError("cannot connect a user to themselves")
	}
	unlock := s.lockPair(u, v)
	edge := s.edgeLocked(u, v)
	if edge == nil || edge.Status != StatusAccepted {
		unlock()
		return errors.NewNotFoundError("accepted connection")
	}
	edge.InteractionCount++
	edge.LastInteraction = time.Now()
	unlock()
	return nil
}

// Neighbors returns the peers of u whose edges match the status filter.
// With no filter, only ACCEPTED edges are considered.
func (s *Store) Neighbors(u UserID, statusFilter ...EdgeStatus) []UserID {
	if len(statusFilter) == 0 {
		statusFilter = []EdgeStatus{StatusAccepted}
	}
	allowed := make(map[EdgeStatus]bool, len(statusFilter))
	for _, st := range statusFilter {
		allowed[st] = true
	}

	sh := s.shardFor(u)
	sh.mu.RLock()
	defer sh.mu.RUnlock()

	var out []UserID
	for peer, edge := range sh.adj[u] {
		if allowed[edge.Status] {
			out = append(out, peer)
		}
	}
	return out
}

// NeighborSet returns the ACCEPTED peers of u as a set. Used by traversal,
// which needs O(1) membership checks per ring.
func (s *Store) NeighborSet(u UserID) map[UserID]struct{} {
	sh := s.shardFor(u)
	sh.mu.RLock()
	defer sh.mu.RUnlock()

	out := make(map[UserID]struct{}, len(sh.adj[u]))
	for peer, edge := range sh.adj[u] {
		if edge.Status == StatusAccepted {
			out[peer] = struct{}{}
		}
	}
	return out
}

// HasEdge reports whether any edge exists between u and v
func (s *Store) HasEdge(u, v UserID) bool {
	_, ok := s.GetEdge(u, v)
	return ok
}

// GetEdge returns a copy of the edge between u and v, if any
func (s *Store) GetEdge(u, v UserID) (Edge, bool) {
	if u == v {
		return Edge{}, false
	}
	sh := s.shardFor(u)
	sh.mu.RLock()
	defer sh.mu.RUnlock()

	edge, ok := sh.adj[u][v]
	if !ok {
		return Edge{}, false
	}
	return *edge, true
}

// EdgeStatusOf returns the status of the edge between u and v, if any
func (s *Store) EdgeStatusOf(u, v UserID) (EdgeStatus, bool) {
	edge, ok := s.GetEdge(u, v)
	if !ok {
		return "", false
	}
	return edge.Status, true
}

// IsBlocked reports whether the pair is excluded by a block in either direction
func (s *Store) IsBlocked(u, v UserID) bool {
	status, ok := s.EdgeStatusOf(u, v)
	return ok && status == StatusBlocked
}

// EdgeCount returns the total number of edges in the graph
func (s *Store) EdgeCount() int {
	return int(s.edgeCount.Load())
}

// Degree returns the number of ACCEPTED connections of u
func (s *Store) Degree(u UserID) int {
	sh := s.shardFor(u)
	sh.mu.RLock()
	defer sh.mu.RUnlock()

	n := 0
	for _, edge := range sh.adj[u] {
		if edge.Status == StatusAccepted {
			n++
		}
	}
	return n
}

// HasUser reports whether u has any edge in the graph
func (s *Store) HasUser(u UserID) bool {
	sh := s.shardFor(u)
	sh.mu.RLock()
	defer sh.mu.RUnlock()
	return len(sh.adj[u]) > 0
}

// SetTopConnections replaces u's curated top-connections list. Every member
// must be an ACCEPTED neighbor of u; the list is capped at MaxTopConnections.
func (s *Store) SetTopConnections(u UserID, peers []UserID) error {
	if len(peers) > MaxTopConnections {
		return errors.NewValidationError("top connections list exceeds maximum of 8")
	}
	seen := make(map[UserID]bool, len(peers))
	for _, p := range peers {
		if seen[p] {
			return errors.NewValidationError("top connections list contains duplicates")
		}
		seen[p] = true
		edge, ok := s.GetEdge(u, p)
		if !ok || edge.Status != StatusAccepted {
			return errors.NewValidationError("top connection " + p.String() + " is not an accepted connection")
		}
	}

	sh := s.shardFor(u)
	sh.mu.Lock()
	sh.top[u] = append([]UserID(nil), peers...)
	sh.mu.Unlock()

	s.fireHook(u, u)
	return nil
}

// TopConnections returns u's curated top-connections list in order
func (s *Store) TopConnections(u UserID) []UserID {
	sh := s.shardFor(u)
	sh.mu.RLock()
	defer sh.mu.RUnlock()
	return append([]UserID(nil), sh.top[u]...)
}

// IsTopConnection reports whether peer is in u's curated list
func (s *Store) IsTopConnection(u, peer UserID) bool {
	sh := s.shardFor(u)
	sh.mu.RLock()
	defer sh.mu.RUnlock()
	for _, p := range sh.top[u] {
		if p == peer {
			return true
		}
	}
	return false
}

// ApplyEdge installs an edge record directly, bypassing the state machine
// and the mutation hook. Used when rebuilding the store from the journal.
func (s *Store) ApplyEdge(e Edge) {
	if e.U == e.V || e.U == "" || e.V == "" {
		return
	}
	lo, hi := canonicalPair(e.U, e.V)
	e.U, e.V = lo, hi

	unlock := s.lockPair(e.U, e.V)
	fresh := s.edgeLocked(e.U, e.V) == nil
	stored := e
	s.insertLocked(&stored)
	unlock()

	if fresh {
		s.edgeCount.Add(1)
	}
}

// edgeLocked finds the edge for a pair; caller holds both shard locks
func (s *Store) edgeLocked(u, v UserID) *Edge {
	return s.shardFor(u).adj[u][v]
}

// insertLocked installs the edge into both endpoint shards; caller holds both locks
func (s *Store) insertLocked(edge *Edge) {
	s.shardFor(edge.U).peers(edge.U)[edge.V] = edge
	s.shardFor(edge.V).peers(edge.V)[edge.U] = edge
}

// removeLocked drops the edge from both endpoint shards and from either
// user's curated list; caller holds both locks
func (s *Store) removeLocked(u, v UserID) {
	delete(s.shardFor(u).adj[u], v)
	delete(s.shardFor(v).adj[v], u)
	dropTopLocked(s.shardFor(u), u, v)
	dropTopLocked(s.shardFor(v), v, u)
}

func dropTopLocked(sh *shard, owner, peer UserID) {
	list := sh.top[owner]
	for i, p := range list {
		if p == peer {
			sh.top[owner] = append(list[:i], list[i+1:]...)
			return
		}
	}
}
