package feed

import (
	"fmt"
	"testing"

	"talentnet-backend/domain/content"
	"talentnet-backend/domain/graph"

	"github.com/stretchr/testify/assert"
)

func candidate(id string, author graph.UserID, ctype content.ContentType, score float64) Candidate {
	return Candidate{
		Item:  content.Item{ID: id, AuthorID: author, Type: ctype},
		Score: score,
	}
}

func TestSelectFeedAuthorCap(t *testing.T) {
	// 15 high-scoring candidates from one author, filler from others
	var candidates []Candidate
	for i := 0; i < 15; i++ {
		candidates = append(candidates, candidate(fmt.Sprintf("loud-%02d", i), "loud", content.TypePost, 10-float64(i)*0.1))
	}
	fillerTypes := []content.ContentType{content.TypeArticle, content.TypeAchievement, content.TypeProject}
	for i := 0; i < 10; i++ {
		candidates = append(candidates, candidate(fmt.Sprintf("other-%02d", i), graph.UserID(fmt.Sprintf("author-%d", i)), fillerTypes[i%3], 1))
	}

	result := SelectFeed(candidates, 10, DefaultSelectorConfig())

	assert.Equal(t, 3, result.AuthorCounts["loud"], "exactly authorCap items from the dominant author")
	assert.Len(t, result.ItemIDs, 10)
}

func TestSelectFeedTypeCap(t *testing.T) {
	var candidates []Candidate
	for i := 0; i < 12; i++ {
		candidates = append(candidates, candidate(fmt.Sprintf("p-%02d", i), graph.UserID(fmt.Sprintf("a-%d", i)), content.TypePost, 10-float64(i)))
	}

	result := SelectFeed(candidates, 9, SelectorConfig{AuthorCap: 3})

	// typeCap defaults to ceil(9/3) = 3
	assert.Equal(t, 3, result.TypeCounts[string(content.TypePost)])
	assert.Len(t, result.ItemIDs, 3)
	assert.True(t, result.Truncated, "caps made the limit unreachable")
}

func TestSelectFeedOrdering(t *testing.T) {
	candidates := []Candidate{
		candidate("c", "a1", content.TypePost, 0.5),
		candidate("a", "a2", content.TypeArticle, 0.9),
		candidate("b", "a3", content.TypeProject, 0.9),
	}

	result := SelectFeed(candidates, 10, DefaultSelectorConfig())

	// score descending, score ties broken by item id ascending
	assert.Equal(t, []string{"a", "b", "c"}, result.ItemIDs)
}

func TestSelectFeedDeterministic(t *testing.T) {
	var candidates []Candidate
	for i := 0; i < 30; i++ {
		candidates = append(candidates, candidate(fmt.Sprintf("i-%02d", i), graph.UserID(fmt.Sprintf("a-%d", i%5)), content.TypePost, float64(i%7)))
	}

	first := SelectFeed(candidates, 10, DefaultSelectorConfig())
	for n := 0; n < 10; n++ {
		assert.Equal(t, first.ItemIDs, SelectFeed(candidates, 10, DefaultSelectorConfig()).ItemIDs)
	}
}

func TestSelectFeedEdgeCases(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		result := SelectFeed(nil, 10, DefaultSelectorConfig())
		assert.Empty(t, result.ItemIDs)
		assert.False(t, result.Truncated)
	})

	t.Run("zero limit", func(t *testing.T) {
		result := SelectFeed([]Candidate{candidate("a", "x", content.TypePost, 1)}, 0, DefaultSelectorConfig())
		assert.Empty(t, result.ItemIDs)
	})

	t.Run("fewer candidates than limit is not truncation", func(t *testing.T) {
		result := SelectFeed([]Candidate{candidate("a", "x", content.TypePost, 1)}, 10, DefaultSelectorConfig())
		assert.Len(t, result.ItemIDs, 1)
		assert.False(t, result.Truncated, "running out of candidates is exhaustion, not cap truncation")
	})

	t.Run("caps never violated to fill the feed", func(t *testing.T) {
		var candidates []Candidate
		for i := 0; i < 20; i++ {
			candidates = append(candidates, candidate(fmt.Sprintf("x-%02d", i), "solo", content.TypePost, float64(i)))
		}
		result := SelectFeed(candidates, 10, DefaultSelectorConfig())
		assert.Len(t, result.ItemIDs, 3)
		assert.True(t, result.Truncated)
	})
}
