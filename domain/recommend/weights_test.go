package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWeightStoreDefaults(t *testing.T) {
	ws := NewWeightStore(DefaultWeights())

	w := ws.For("seed")
	assert.Equal(t, DefaultWeights(), w)
	assert.InDelta(t, 1.0, w.Mutual+w.Similarity+w.RecentInteraction, 1e-9)
}

func TestApplyFeedbackDirection(t *testing.T) {
	factors := Weights{Mutual: 1, Similarity: 0.2, RecentInteraction: 0}

	t.Run("acceptance strengthens driving factors", func(t *testing.T) {
		ws := NewWeightStore(DefaultWeights())
		updated := ws.ApplyFeedback("seed", factors, true)
		assert.Greater(t, updated.Mutual, DefaultWeights().Mutual)
		assert.Equal(t, updated, ws.For("seed"))
	})

	t.Run("rejection weakens driving factors", func(t *testing.T) {
		ws := NewWeightStore(DefaultWeights())
		updated := ws.ApplyFeedback("seed", factors, false)
		assert.Less(t, updated.Mutual, DefaultWeights().Mutual)
	})
}

func TestApplyFeedbackNormalized(t *testing.T) {
	ws := NewWeightStore(DefaultWeights())

	factors := Weights{Mutual: 0.9, Similarity: 0.5, RecentInteraction: 0.1}
	for i := 0; i < 50; i++ {
		w := ws.ApplyFeedback("seed", factors, i%2 == 0)
		assert.InDelta(t, 1.0, w.Mutual+w.Similarity+w.RecentInteraction, 1e-9)
	}
}

func TestApplyFeedbackClamped(t *testing.T) {
	ws := NewWeightStore(DefaultWeights())

	// hammer one factor; it must never dominate completely nor crush
	// the others to zero
	factors := Weights{Mutual: 1}
	var w Weights
	for i := 0; i < 200; i++ {
		w = ws.ApplyFeedback("seed", factors, true)
	}
	assert.LessOrEqual(t, w.Mutual, 0.85)
	assert.GreaterOrEqual(t, w.Similarity, 0.04, "floor holds up to renormalization")
	assert.GreaterOrEqual(t, w.RecentInteraction, 0.04)

	for i := 0; i < 200; i++ {
		w = ws.ApplyFeedback("seed", factors, false)
	}
	assert.GreaterOrEqual(t, w.Mutual, 0.04)
}

func TestWeightStorePerSeedIsolation(t *testing.T) {
	ws := NewWeightStore(DefaultWeights())

	ws.ApplyFeedback("a", Weights{Mutual: 1}, true)
	assert.Equal(t, DefaultWeights(), ws.For("b"), "feedback for one seed never leaks to another")
}
