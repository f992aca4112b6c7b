package models

import "math"

// RunSummaryBuilder helps in constructing RunSummary objects.
type RunSummaryBuilder struct {
	cases   []CaseReport
	skipped int
}

// NewRunSummaryBuilder creates a new instance of RunSummaryBuilder.
func NewRunSummaryBuilder() *RunSummaryBuilder {
	return &RunSummaryBuilder{}
}

// WithCases sets the case reports the summary aggregates over.
func (b *RunSummaryBuilder) WithCases(cases []CaseReport) *RunSummaryBuilder {
	b.cases = cases
	return b
}

// WithSkippedCases sets the number of cases that could not be compared.
func (b *RunSummaryBuilder) WithSkippedCases(skipped int) *RunSummaryBuilder {
	b.skipped = skipped
	return b
}

// Build returns the constructed RunSummary. MajorSharePercent is the rounded
// share of major findings among all findings items; AverageChangePercentage
// covers only the cases that were diffed.
func (b *RunSummaryBuilder) Build() RunSummary {
	summary := RunSummary{
		TotalCases:   len(b.cases),
		SkippedCases: b.skipped,
	}

	var changeTotal float64
	diffed := 0
	for _, c := range b.cases {
		if c.Diff != nil {
			changeTotal += c.Diff.ChangePercentage
			diffed++
		}
		if c.Findings == nil {
			continue
		}
		major := len(c.Findings.MajorFindings)
		minor := len(c.Findings.MinorFindings)
		clar := len(c.Findings.Clarifications)
		summary.MajorFindings += major
		summary.MinorFindings += minor
		summary.Clarifications += clar
		if major+minor+clar > 0 {
			summary.CasesWithFindings++
		}
	}

	if items := summary.MajorFindings + summary.MinorFindings + summary.Clarifications; items > 0 {
		summary.MajorSharePercent = int(math.Floor(float64(summary.MajorFindings)*100/float64(items) + 0.5))
	}
	if diffed > 0 {
		summary.AverageChangePercentage = math.Round(changeTotal/float64(diffed)*100) / 100
	}

	return summary
}
