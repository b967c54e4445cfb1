package traversal

import (
	"context"
	"sort"

	"talentnet-backend/domain/graph"
)

// Neighborhood is a depth-indexed view of the users reachable from a seed.
// Rings[d] holds the users exactly d hops away, for 1 <= d <= MaxDepth.
type Neighborhood struct {
	Seed     graph.UserID
	MaxDepth int
	Rings    map[int][]graph.UserID

	// Partial is set when expansion stopped before completing MaxDepth,
	// either because the visited-node budget ran out or the context
	// deadline arrived. TruncatedAtDepth is the ring being expanded when
	// truncation occurred. Truncation is a flagged success, not an error.
	Partial          bool
	TruncatedAtDepth int
	Visited          int
}

// Contains reports whether id appears in any ring
func (n *Neighborhood) Contains(id graph.UserID) bool {
	for _, ring := range n.Rings {
		for _, u := range ring {
			if u == id {
				return true
			}
		}
	}
	return false
}

// Users returns all users in the neighborhood, nearest rings first
func (n *Neighborhood) Users() []graph.UserID {
	var out []graph.UserID
	for d := 1; d <= n.MaxDepth; d++ {
		out = append(out, n.Rings[d]...)
	}
	return out
}

// Engine performs bounded breadth-first traversals over ACCEPTED edges.
// Hub users can carry degree in the tens of thousands, so every expansion
// takes explicit caller-visible bounds; nothing here runs to completion.
type Engine struct {
	store *graph.Store
}

// NewEngine creates a traversal engine over the given store
func NewEngine(store *graph.Store) *Engine {
	return &Engine{store: store}
}

// GetNeighborhood expands seed's neighborhood breadth-first up to maxDepth
// hops, visiting at most maxVisited nodes. If the budget or the context
// deadline is exhausted mid-ring the partially expanded result is returned
// with Partial set.
func (e *Engine) GetNeighborhood(ctx context.Context, seed graph.UserID, maxDepth, maxVisited int) *Neighborhood {
	result := &Neighborhood{
		Seed:     seed,
		MaxDepth: maxDepth,
		Rings:    make(map[int][]graph.UserID),
	}
	if maxDepth < 1 || maxVisited < 1 {
		return result
	}

	visited := map[graph.UserID]struct{}{seed: {}}
	frontier := []graph.UserID{seed}

	for depth := 1; depth <= maxDepth && len(frontier) > 0; depth++ {
		if ctx.Err() != nil {
			result.Partial = true
			result.TruncatedAtDepth = depth
			break
		}

		var next []graph.UserID
		truncated := false

	ring:
		for _, u := range frontier {
			for peer := range e.store.NeighborSet(u) {
				if _, seen := visited[peer]; seen {
					continue
				}
				if len(visited) >= maxVisited+1 { // +1: the seed does not consume budget
					truncated = true
					break ring
				}
				visited[peer] = struct{}{}
				next = append(next, peer)
			}
		}

		if len(next) > 0 {
			// deterministic ring order for reproducible results
			sort.Slice(next, func(i, j int) bool { return next[i] < next[j] })
			result.Rings[depth] = next
		}
		if truncated {
			result.Partial = true
			result.TruncatedAtDepth = depth
			break
		}
		frontier = next
	}

	result.Visited = len(visited) - 1
	return result
}

// ShortestPathLength returns the hop count of the shortest path between a
// and b over ACCEPTED edges, exploring at most maxHops hops. The second
// return value is false when no path was found within the bound; deeper
// paths are not explored, so this means "unreachable within bound", never
// "no path exists". ShortestPathLength(a, a) is 0.
func (e *Engine) ShortestPathLength(ctx context.Context, a, b graph.UserID, maxHops int) (int, bool) {
	if a == b {
		return 0, true
	}
	if maxHops < 1 {
		return 0, false
	}

	// Bidirectional BFS: expand the smaller frontier each step. Total
	// explored depth is bounded by maxHops across both directions.
	distA := map[graph.UserID]int{a: 0}
	distB := map[graph.UserID]int{b: 0}
	frontA := []graph.UserID{a}
	frontB := []graph.UserID{b}
	depthA, depthB := 0, 0

	for len(frontA) > 0 && len(frontB) > 0 && depthA+depthB < maxHops {
		if ctx.Err() != nil {
			return 0, false
		}

		if len(frontA) <= len(frontB) {
			var hit bool
			var total int
			frontA, hit, total = e.expand(frontA, distA, distB, depthA)
			depthA++
			if hit {
				return total, total <= maxHops
			}
		} else {
			var hit bool
			var total int
			frontB, hit, total = e.expand(frontB, distB, distA, depthB)
			depthB++
			if hit {
				return total, total <= maxHops
			}
		}
	}

	return 0, false
}

// expand advances one BFS ring. When a newly reached node already has a
// distance from the opposite direction, the meeting point yields the
// shortest path length.
func (e *Engine) expand(frontier []graph.UserID, dist, other map[graph.UserID]int, depth int) ([]graph.UserID, bool, int) {
	best := -1
	var next []graph.UserID

	for _, u := range frontier {
		for peer := range e.store.NeighborSet(u) {
			if _, seen := dist[peer]; seen {
				continue
			}
			dist[peer] = depth + 1
			if d, ok := other[peer]; ok {
				total := depth + 1 + d
				if best == -1 || total < best {
					best = total
				}
				continue
			}
			next = append(next, peer)
		}
	}

	if best >= 0 {
		return next, true, best
	}
	return next, false, 0
}
