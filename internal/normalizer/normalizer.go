// Package normalizer prepares report text for comparison.
package normalizer

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// TextNormalizer unifies line endings, trims lines, drops boilerplate lines and
// collapses blank lines while keeping paragraph boundaries. A TextNormalizer is
// immutable after construction and safe for concurrent use.
type TextNormalizer struct {
	boilerplate      map[string]struct{}
	normalizeUnicode bool
}

// NewTextNormalizer creates a normalizer that removes any line equal (after
// trimming) to one of the boilerplate literals.
func NewTextNormalizer(boilerplate []string, normalizeUnicode bool) *TextNormalizer {
	set := make(map[string]struct{}, len(boilerplate))
	for _, line := range boilerplate {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		set[trimmed] = struct{}{}
	}
	return &TextNormalizer{
		boilerplate:      set,
		normalizeUnicode: normalizeUnicode,
	}
}

// IsBoilerplate reports whether line is one of the excluded literals.
func (n *TextNormalizer) IsBoilerplate(line string) bool {
	_, ok := n.boilerplate[strings.TrimSpace(line)]
	return ok
}

// Normalize returns the comparable form of text. Paragraphs are separated by
// exactly one blank line; there are no leading or trailing blank lines.
func (n *TextNormalizer) Normalize(text string) string {
	if text == "" {
		return ""
	}
	if n.normalizeUnicode {
		text = norm.NFC.String(text)
	}
	text = UnifyLineEndings(text)

	var b strings.Builder
	b.Grow(len(text))
	pendingBreak := false
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			pendingBreak = b.Len() > 0
			continue
		}
		if n.IsBoilerplate(line) {
			continue
		}
		if b.Len() > 0 {
			if pendingBreak {
				b.WriteString("\n\n")
			} else {
				b.WriteByte('\n')
			}
		}
		pendingBreak = false
		b.WriteString(line)
	}
	return b.String()
}

// UnifyLineEndings converts CRLF and lone CR line endings to LF.
func UnifyLineEndings(text string) string {
	if !strings.ContainsRune(text, '\r') {
		return text
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}
