package models

import "time"

// Case is one resident/attending report pair extracted from pasted input.
type Case struct {
	Number    string `json:"case_number"`
	Resident  string `json:"resident_report"`
	Attending string `json:"attending_report"`
}

// SkippedCase records a case that could not be compared.
type SkippedCase struct {
	Number string `json:"case_number"`
	Reason string `json:"reason"`
}

// CaseReport is the per-case output of a run. Resident and Attending hold the
// untouched text for verbatim display.
type CaseReport struct {
	CaseNumber    string      `json:"case_number"`
	Resident      string      `json:"resident_report"`
	Attending     string      `json:"attending_report"`
	Diff          *DiffResult `json:"diff,omitempty"`
	DiffError     string      `json:"diff_error,omitempty"`
	Findings      *Findings   `json:"findings,omitempty"`
	FindingsError string      `json:"findings_error,omitempty"`
}

// RunSummary aggregates findings and change metrics over all cases of a run.
type RunSummary struct {
	TotalCases              int     `json:"total_cases"`
	SkippedCases            int     `json:"skipped_cases"`
	CasesWithFindings       int     `json:"cases_with_findings"`
	MajorFindings           int     `json:"major_findings"`
	MinorFindings           int     `json:"minor_findings"`
	Clarifications          int     `json:"clarifications"`
	MajorSharePercent       int     `json:"major_share_percent"`
	AverageChangePercentage float64 `json:"average_change_percentage"`
}

// RunReport is the full output of processing one pasted input.
type RunReport struct {
	ID           int64         `json:"id,omitempty"`
	StartedAt    time.Time     `json:"started_at"`
	FinishedAt   time.Time     `json:"finished_at"`
	Cases        []CaseReport  `json:"cases"`
	SkippedCases []SkippedCase `json:"skipped_cases,omitempty"`
	Summary      RunSummary    `json:"summary"`
}
