package extractor

import (
	"regexp"
	"sort"
	"strings"

	"github.com/aleister1102/reportdiff/internal/common"
	"github.com/aleister1102/reportdiff/internal/config"
	"github.com/aleister1102/reportdiff/internal/models"
	"github.com/aleister1102/reportdiff/internal/normalizer"
	"github.com/rs/zerolog"
)

var (
	caseHeaderPattern  = regexp.MustCompile(`(?im)^Case\s+(\d+)`)
	reportLabelPattern = regexp.MustCompile(`(?im)^\s*(Attending(?:\s+Report)?\s*:|Resident(?:\s+Report)?\s*:)`)
)

// CaseExtractor splits pasted text into resident/attending report pairs.
// Input looks like:
//
//	Case 1
//	Resident Report:
//	...
//	Attending Report:
//	...
type CaseExtractor struct {
	logger        zerolog.Logger
	analyzer      *ContentTypeAnalyzer
	maxInputBytes int64
}

// NewCaseExtractor creates a new CaseExtractor.
func NewCaseExtractor(extractorCfg config.ExtractorConfig, logger zerolog.Logger) *CaseExtractor {
	return &CaseExtractor{
		logger:        logger.With().Str("component", "CaseExtractor").Logger(),
		analyzer:      NewContentTypeAnalyzer(extractorCfg.HTMLMode, logger),
		maxInputBytes: extractorCfg.MaxInputBytes,
	}
}

// ValidateInput rejects pasted input over the configured size.
func (ce *CaseExtractor) ValidateInput(text string) error {
	if ce.maxInputBytes > 0 && int64(len(text)) > ce.maxInputBytes {
		return common.NewValidationError("input", len(text), "pasted input exceeds maximum size")
	}
	return nil
}

// Extract returns the complete cases and the cases missing a report, both
// ordered by case number. Text before the first case header is ignored, as is
// text inside a case before its first report label. A repeated label
// overrides the earlier one.
func (ce *CaseExtractor) Extract(text string) ([]models.Case, []models.SkippedCase) {
	text = normalizer.UnifyLineEndings(text)

	if ce.analyzer.ShouldConvertHTML(text) {
		converted, err := HTMLToText(text)
		if err != nil {
			ce.logger.Warn().Err(err).Msg("HTML conversion failed, using input as plain text")
		} else {
			text = converted
		}
	}

	var cases []models.Case
	var skipped []models.SkippedCase

	headers := caseHeaderPattern.FindAllStringSubmatchIndex(text, -1)
	for i, loc := range headers {
		number := text[loc[2]:loc[3]]
		end := len(text)
		if i+1 < len(headers) {
			end = headers[i+1][0]
		}

		resident, attending := splitReports(text[loc[1]:end])
		if reason := skipReason(resident, attending); reason != "" {
			ce.logger.Warn().Str("case_number", number).Str("reason", reason).Msg("Skipping incomplete case")
			skipped = append(skipped, models.SkippedCase{Number: number, Reason: reason})
			continue
		}

		cases = append(cases, models.Case{
			Number:    number,
			Resident:  resident,
			Attending: attending,
		})
	}

	sort.SliceStable(cases, func(i, j int) bool {
		return CompareCaseNumbers(cases[i].Number, cases[j].Number) < 0
	})
	sort.SliceStable(skipped, func(i, j int) bool {
		return CompareCaseNumbers(skipped[i].Number, skipped[j].Number) < 0
	})

	ce.logger.Debug().
		Int("case_headers", len(headers)).
		Int("cases", len(cases)).
		Int("skipped", len(skipped)).
		Msg("Extracted cases from input")

	return cases, skipped
}

// splitReports returns the trimmed text following the last resident label and
// the last attending label.
func splitReports(content string) (resident, attending string) {
	labels := reportLabelPattern.FindAllStringSubmatchIndex(content, -1)
	for j, loc := range labels {
		label := strings.ToLower(content[loc[2]:loc[3]])
		end := len(content)
		if j+1 < len(labels) {
			end = labels[j+1][0]
		}
		body := strings.TrimSpace(content[loc[1]:end])

		switch {
		case strings.Contains(label, "attending"):
			attending = body
		case strings.Contains(label, "resident"):
			resident = body
		}
	}
	return resident, attending
}

func skipReason(resident, attending string) string {
	switch {
	case resident == "" && attending == "":
		return ReasonMissingBoth
	case resident == "":
		return ReasonMissingResident
	case attending == "":
		return ReasonMissingAttending
	}
	return ""
}

// CompareCaseNumbers orders decimal case numbers numerically without
// overflowing on long digit strings. Non-digit input sorts by plain string.
func CompareCaseNumbers(a, b string) int {
	ta, tb := strings.TrimLeft(a, "0"), strings.TrimLeft(b, "0")
	if isDigits(ta) && isDigits(tb) {
		if len(ta) != len(tb) {
			if len(ta) < len(tb) {
				return -1
			}
			return 1
		}
		if c := strings.Compare(ta, tb); c != 0 {
			return c
		}
	}
	return strings.Compare(a, b)
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
