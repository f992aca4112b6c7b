package differ

import (
	"fmt"
	"strings"
)

// GreedyAligner pairs leftover resident units with leftover attending units
// by content similarity, regardless of position.
type GreedyAligner struct {
	scorer    *SimilarityScorer
	threshold float64
}

// NewGreedyAligner creates a greedy aligner.
func NewGreedyAligner(scorer *SimilarityScorer, threshold float64) *GreedyAligner {
	return &GreedyAligner{scorer: scorer, threshold: threshold}
}

// Threshold returns the minimum score a pair must reach.
func (g *GreedyAligner) Threshold() float64 {
	return g.threshold
}

// Align visits residents in order and gives each one the best still-unused
// attending unit, provided the score reaches the threshold. On equal scores
// the attending unit that comes first wins. Every attending unit is used at
// most once.
func (g *GreedyAligner) Align(residents, attendings []Unit) []AlignedPair {
	if len(residents) == 0 || len(attendings) == 0 {
		return nil
	}

	attendingTokens := make([][]string, len(attendings))
	for i, u := range attendings {
		attendingTokens[i] = strings.Fields(u.Text)
	}
	used := make([]bool, len(attendings))

	var pairs []AlignedPair
	for _, r := range residents {
		residentTokens := strings.Fields(r.Text)
		best, bestScore := -1, -1.0
		for k := range attendings {
			if used[k] {
				continue
			}
			score := g.scorer.TokenRatio(residentTokens, attendingTokens[k])
			if score > bestScore {
				best, bestScore = k, score
			}
		}
		if best >= 0 && bestScore >= g.threshold {
			used[best] = true
			pairs = append(pairs, AlignedPair{
				Source:     r.Index,
				Target:     attendings[best].Index,
				Similarity: bestScore,
			})
		}
	}

	if err := validatePairs(pairs, g.threshold); err != nil {
		panic(fmt.Sprintf("differ: invalid greedy alignment: %v", err))
	}
	return pairs
}
