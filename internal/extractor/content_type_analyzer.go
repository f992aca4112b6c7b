package extractor

import (
	"regexp"
	"strings"

	"github.com/rs/zerolog"
)

// htmlTagPattern matches the markup a reporting system or rich-text paste leaves behind
var htmlTagPattern = regexp.MustCompile(`(?i)</?(html|body|p|div|br|li|ul|ol|span|table|tr|td|h[1-6])\b[^>]*>`)

// ContentTypeAnalyzer determines if pasted input should be converted from HTML
type ContentTypeAnalyzer struct {
	logger   zerolog.Logger
	htmlMode string
}

// NewContentTypeAnalyzer creates a new content type analyzer
func NewContentTypeAnalyzer(htmlMode string, logger zerolog.Logger) *ContentTypeAnalyzer {
	mode := strings.ToLower(strings.TrimSpace(htmlMode))
	switch mode {
	case HTMLModeAlways, HTMLModeNever:
	default:
		mode = HTMLModeAuto
	}
	return &ContentTypeAnalyzer{
		logger:   logger.With().Str("component", "ContentTypeAnalyzer").Logger(),
		htmlMode: mode,
	}
}

// ShouldConvertHTML reports whether text goes through the HTML converter
func (cta *ContentTypeAnalyzer) ShouldConvertHTML(text string) bool {
	var isHTML bool
	switch cta.htmlMode {
	case HTMLModeAlways:
		isHTML = true
	case HTMLModeNever:
		isHTML = false
	default:
		isHTML = htmlTagPattern.MatchString(text)
	}

	cta.logger.Debug().
		Str("html_mode", cta.htmlMode).
		Bool("is_html", isHTML).
		Msg("Content type analysis for pasted input")

	return isHTML
}
