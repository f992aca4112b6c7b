package differ

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func units(texts ...string) []Unit {
	out := make([]Unit, len(texts))
	for i, text := range texts {
		out[i] = Unit{Index: i, Text: text}
	}
	return out
}

func TestGreedyAligner_Align(t *testing.T) {
	scorer := NewSimilarityScorer(NewSequenceAligner())

	t.Run("pairs by content across positions", func(t *testing.T) {
		g := NewGreedyAligner(scorer, DefaultSimilarityThreshold)
		residents := units("Mild cardiomegaly is present.", "No pleural effusion is seen.")
		attendings := units("Small pleural effusion is seen.", "Mild cardiomegaly is stable.")

		pairs := g.Align(residents, attendings)

		require.Len(t, pairs, 2)
		assert.Equal(t, 0, pairs[0].Source)
		assert.Equal(t, 1, pairs[0].Target)
		assert.InDelta(t, 0.75, pairs[0].Similarity, 1e-9)
		assert.Equal(t, 1, pairs[1].Source)
		assert.Equal(t, 0, pairs[1].Target)
		assert.InDelta(t, 0.8, pairs[1].Similarity, 1e-9)
	})

	t.Run("ties go to the earliest attending unit", func(t *testing.T) {
		g := NewGreedyAligner(scorer, 0.5)
		pairs := g.Align(units("a b"), units("a c", "a d"))

		require.Len(t, pairs, 1)
		assert.Equal(t, 0, pairs[0].Target)
	})

	t.Run("attending unit used once", func(t *testing.T) {
		g := NewGreedyAligner(scorer, 0.5)
		pairs := g.Align(units("x y z", "x y z"), units("x y z"))

		require.Len(t, pairs, 1)
		assert.Equal(t, 0, pairs[0].Source)
	})

	t.Run("below threshold leaves units unpaired", func(t *testing.T) {
		g := NewGreedyAligner(scorer, DefaultSimilarityThreshold)
		assert.Empty(t, g.Align(units("Heart normal."), units("Large hiatal hernia noted.")))
	})

	t.Run("empty pools", func(t *testing.T) {
		g := NewGreedyAligner(scorer, DefaultSimilarityThreshold)
		assert.Nil(t, g.Align(nil, units("x")))
		assert.Nil(t, g.Align(units("x"), nil))
		assert.Equal(t, DefaultSimilarityThreshold, g.Threshold())
	})
}

func TestValidatePairs(t *testing.T) {
	assert.NoError(t, validatePairs([]AlignedPair{{Source: 0, Target: 1, Similarity: 0.7}}, 0.6))
	assert.Error(t, validatePairs([]AlignedPair{{Source: 0, Target: 1, Similarity: 0.7}, {Source: 1, Target: 1, Similarity: 0.9}}, 0.6))
	assert.Error(t, validatePairs([]AlignedPair{{Source: 0, Target: 1, Similarity: 0.7}, {Source: 0, Target: 2, Similarity: 0.9}}, 0.6))
	assert.Error(t, validatePairs([]AlignedPair{{Source: 0, Target: 1, Similarity: 0.5}}, 0.6))
}
