package differ

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/aleister1102/reportdiff/internal/normalizer"
)

// Unit is one segment of a report. Index is the position in the sequence the
// segmenter produced; Paragraph is the zero-based paragraph it came from.
type Unit struct {
	Index     int
	Text      string
	Paragraph int
}

var numberedBullet = regexp.MustCompile(`^\d+\.$`)

// Segmenter splits normalized text into units of a fixed granularity.
type Segmenter struct {
	granularity Granularity
}

// NewSegmenter creates a segmenter. Unknown granularities fall back to
// sentence.
func NewSegmenter(granularity Granularity) *Segmenter {
	switch granularity {
	case GranularityParagraph, GranularitySentence, GranularityWord:
	default:
		granularity = GranularitySentence
	}
	return &Segmenter{granularity: granularity}
}

// Granularity returns the unit size of this segmenter.
func (s *Segmenter) Granularity() Granularity {
	return s.granularity
}

// Segment splits text into units in document order. Units never contain
// leading or trailing whitespace and are never empty.
func (s *Segmenter) Segment(text string) []Unit {
	var units []Unit
	for p, paragraph := range SplitParagraphs(text) {
		var parts []string
		switch s.granularity {
		case GranularityParagraph:
			parts = []string{paragraph}
		case GranularityWord:
			parts = strings.Fields(paragraph)
		default:
			parts = SplitSentences(paragraph)
		}
		for _, part := range parts {
			units = append(units, Unit{Index: len(units), Text: part, Paragraph: p})
		}
	}
	return units
}

// SplitParagraphs splits text on blank lines. Lines inside a paragraph are
// trimmed and joined with a single newline.
func SplitParagraphs(text string) []string {
	var paragraphs []string
	var lines []string
	flush := func() {
		if len(lines) > 0 {
			paragraphs = append(paragraphs, strings.Join(lines, "\n"))
			lines = lines[:0]
		}
	}
	for _, raw := range strings.Split(normalizer.UnifyLineEndings(text), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			flush()
			continue
		}
		lines = append(lines, line)
	}
	flush()
	return paragraphs
}

// SplitSentences splits one paragraph into sentences. A sentence ends after a
// token ending in '.', '!' or '?' when the next token starts with an uppercase
// letter or a digit. A bullet marker ("-", "*" or "12.") starts a new unit and
// stays attached to the text that follows it.
func SplitSentences(paragraph string) []string {
	tokens := strings.Fields(paragraph)
	var sentences []string
	var current []string
	flush := func() {
		if len(current) > 0 {
			sentences = append(sentences, strings.Join(current, " "))
			current = current[:0]
		}
	}

	for i, tok := range tokens {
		hasNext := i+1 < len(tokens)
		if isBulletMarker(tok) && len(current) > 0 && hasNext {
			flush()
		}
		current = append(current, tok)
		if !hasNext {
			break
		}
		if len(current) == 1 && isBulletMarker(current[0]) {
			continue
		}
		if endsSentence(tok) && startsSentence(tokens[i+1]) {
			flush()
		}
	}
	flush()
	return sentences
}

func isBulletMarker(tok string) bool {
	return tok == "-" || tok == "*" || numberedBullet.MatchString(tok)
}

func endsSentence(tok string) bool {
	switch tok[len(tok)-1] {
	case '.', '!', '?':
		return true
	}
	return false
}

func startsSentence(tok string) bool {
	r, _ := utf8.DecodeRuneInString(tok)
	return unicode.IsUpper(r) || unicode.IsDigit(r)
}
