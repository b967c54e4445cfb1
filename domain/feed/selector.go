package feed

import (
	"math"
	"sort"
)

// SelectorConfig holds the diversity caps. Zero values fall back to the
// standard defaults at selection time.
type SelectorConfig struct {
	// AuthorCap limits items per author in one feed
	AuthorCap int
	// TypeCap limits items per content type; 0 means ceil(limit/3)
	TypeCap int
}

// DefaultSelectorConfig returns the standard caps
func DefaultSelectorConfig() SelectorConfig {
	return SelectorConfig{AuthorCap: 3}
}

// SelectFeed orders candidates by score (descending, ties broken by item id
// for determinism) and greedily admits them under the per-author and
// per-type caps until limit is reached or candidates are exhausted.
//
// Guarantees: each candidate is considered at most once; the output never
// exceeds limit; author and type counts in the output never exceed their
// caps. If the caps make limit unreachable the result is shorter and
// Truncated is set; the caps are never violated to fill the feed.
func SelectFeed(candidates []Candidate, limit int, cfg SelectorConfig) FeedResult {
	result := FeedResult{
		AuthorCounts: make(map[string]int),
		TypeCounts:   make(map[string]int),
	}
	if limit <= 0 || len(candidates) == 0 {
		return result
	}

	authorCap := cfg.AuthorCap
	if authorCap <= 0 {
		authorCap = 3
	}
	typeCap := cfg.TypeCap
	if typeCap <= 0 {
		typeCap = int(math.Ceil(float64(limit) / 3))
	}

	ordered := append([]Candidate(nil), candidates...)
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].Score != ordered[j].Score {
			return ordered[i].Score > ordered[j].Score
		}
		return ordered[i].Item.ID < ordered[j].Item.ID
	})

	skippedByCap := false
	for _, c := range ordered {
		if len(result.ItemIDs) >= limit {
			break
		}
		author := c.Item.AuthorID.String()
		ctype := string(c.Item.Type)

		if result.AuthorCounts[author] >= authorCap || result.TypeCounts[ctype] >= typeCap {
			skippedByCap = true
			continue
		}

		result.ItemIDs = append(result.ItemIDs, c.Item.ID)
		result.AuthorCounts[author]++
		result.TypeCounts[ctype]++
	}

	result.Truncated = skippedByCap && len(result.ItemIDs) < limit
	return result
}
