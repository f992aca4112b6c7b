package differ

import (
	"fmt"
	"strings"
)

// Granularity is the unit size used when splitting text for alignment.
type Granularity string

const (
	GranularityParagraph Granularity = "paragraph"
	GranularitySentence  Granularity = "sentence"
	GranularityWord      Granularity = "word"
)

// ParseGranularity parses a granularity name, case-insensitively.
func ParseGranularity(s string) (Granularity, error) {
	switch g := Granularity(strings.ToLower(strings.TrimSpace(s))); g {
	case GranularityParagraph, GranularitySentence, GranularityWord:
		return g, nil
	default:
		return "", fmt.Errorf("unknown granularity %q", s)
	}
}

// IsAlignmentGranularity reports whether g can drive the block-level alignment.
// Word granularity is reserved for highlighting inside replacements.
func (g Granularity) IsAlignmentGranularity() bool {
	return g == GranularityParagraph || g == GranularitySentence
}

const (
	DefaultSimilarityThreshold = 0.60
	DefaultMaxInputBytes       = 1 << 20
)

// DiffConfig holds configuration for content diffing. It is copied into each
// ContentDiffer and never shared.
type DiffConfig struct {
	// Boilerplate lists literal lines dropped before comparison.
	Boilerplate []string
	// SimilarityThreshold is the minimum score for a greedy pairing.
	SimilarityThreshold float64
	// Granularity drives block-level alignment: paragraph or sentence.
	Granularity Granularity
	// MaxInputBytes bounds each input; zero or less disables the check.
	MaxInputBytes int
	// NormalizeUnicode applies NFC composition before comparison.
	NormalizeUnicode bool
}

// DefaultDiffConfig returns default configuration
func DefaultDiffConfig() DiffConfig {
	return DiffConfig{
		Boilerplate:         nil,
		SimilarityThreshold: DefaultSimilarityThreshold,
		Granularity:         GranularitySentence,
		MaxInputBytes:       DefaultMaxInputBytes,
		NormalizeUnicode:    true,
	}
}

func (c DiffConfig) clone() DiffConfig {
	out := c
	out.Boilerplate = append([]string(nil), c.Boilerplate...)
	return out
}
