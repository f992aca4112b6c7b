package differ

import (
	"math"
	"strings"
)

// SimilarityScorer scores how much two texts have in common at word level.
type SimilarityScorer struct {
	aligner *SequenceAligner
}

// NewSimilarityScorer creates a scorer backed by the given aligner.
func NewSimilarityScorer(aligner *SequenceAligner) *SimilarityScorer {
	return &SimilarityScorer{aligner: aligner}
}

// Ratio returns 2*M/(la+lb) over whitespace tokens, where M is the number of
// tokens inside equal runs of the word alignment. Two empty texts score 1.
func (s *SimilarityScorer) Ratio(a, b string) float64 {
	return s.TokenRatio(strings.Fields(a), strings.Fields(b))
}

// TokenRatio is Ratio over pre-split tokens.
func (s *SimilarityScorer) TokenRatio(a, b []string) float64 {
	total := len(a) + len(b)
	if total == 0 {
		return 1
	}
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	matched := 0
	for _, op := range s.aligner.AlignStrings(a, b) {
		if op.Tag == OpEqual {
			matched += op.ALen()
		}
	}
	return 2 * float64(matched) / float64(total)
}

// ChangePercentage returns (1 - Ratio) * 100 rounded to two decimals.
func (s *SimilarityScorer) ChangePercentage(a, b string) float64 {
	return roundTo((1-s.Ratio(a, b))*100, 2)
}

func roundTo(x float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(x*scale) / scale
}
