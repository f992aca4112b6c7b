package extractor

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/aleister1102/reportdiff/internal/common"
	"golang.org/x/net/html"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// paragraphElements end a paragraph; lineElements only end a line.
var (
	paragraphElements = map[string]bool{
		"p": true, "blockquote": true, "pre": true, "table": true,
		"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	}
	lineElements = map[string]bool{
		"div": true, "li": true, "tr": true, "ul": true, "ol": true, "section": true, "article": true,
	}
)

// HTMLToText converts HTML to plain text, turning block boundaries into line
// breaks and paragraph boundaries into blank lines. Script and style content is
// dropped and entities are decoded.
func HTMLToText(input string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(input))
	if err != nil {
		return "", common.WrapError(err, "failed to parse HTML input")
	}

	doc.Find("script, style, head, noscript").Remove()

	root := doc.Find("body")
	if root.Length() == 0 {
		root = doc.Selection
	}

	w := &textWriter{}
	root.Contents().Each(func(_ int, s *goquery.Selection) {
		w.writeSelection(s)
	})

	return tidyLines(w.sb.String()), nil
}

// textWriter defers line breaks until the next visible text so that nested
// and adjacent blocks yield a single boundary.
type textWriter struct {
	sb      strings.Builder
	pending int
}

func (w *textWriter) breakAtLeast(n int) {
	if w.pending < n {
		w.pending = n
	}
}

func (w *textWriter) writeText(data string) {
	text := whitespaceRun.ReplaceAllString(data, " ")
	if strings.TrimSpace(text) == "" && (w.pending > 0 || w.sb.Len() == 0) {
		return
	}
	if w.pending > 0 {
		if w.sb.Len() > 0 {
			w.sb.WriteString(strings.Repeat("\n", min(w.pending, 2)))
		}
		w.pending = 0
	}
	w.sb.WriteString(text)
}

func (w *textWriter) writeSelection(s *goquery.Selection) {
	node := s.Get(0)
	switch node.Type {
	case html.TextNode:
		w.writeText(node.Data)
	case html.ElementNode:
		name := goquery.NodeName(s)
		switch {
		case name == "br":
			w.pending++
			return
		case name == "td" || name == "th":
			w.writeText(" ")
		}

		boundary := 0
		if paragraphElements[name] {
			boundary = 2
		} else if lineElements[name] {
			boundary = 1
		}

		w.breakAtLeast(boundary)
		s.Contents().Each(func(_ int, child *goquery.Selection) {
			w.writeSelection(child)
		})
		w.breakAtLeast(boundary)
	}
}

// tidyLines trims every line and keeps at most one blank line in a row
func tidyLines(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	blank := true
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			if blank {
				continue
			}
			blank = true
		} else {
			blank = false
		}
		out = append(out, line)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
