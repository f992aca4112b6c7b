package models

// Weights used when a findings record arrives without a score.
const (
	MajorFindingWeight = 3
	MinorFindingWeight = 1
)

// Findings is the severity classification of one case, produced outside this
// system and only paired with the diff for display.
type Findings struct {
	CaseNumber     string   `json:"case_number" yaml:"case_number"`
	MajorFindings  []string `json:"major_findings" yaml:"major_findings"`
	MinorFindings  []string `json:"minor_findings" yaml:"minor_findings"`
	Clarifications []string `json:"clarifications" yaml:"clarifications"`
	Score          *int     `json:"score,omitempty" yaml:"score,omitempty"`
}

// ComputeScore returns 3 points per major finding and 1 per minor finding.
func (f *Findings) ComputeScore() int {
	return MajorFindingWeight*len(f.MajorFindings) + MinorFindingWeight*len(f.MinorFindings)
}

// EnsureScore fills in a missing score and returns the effective one. A score
// supplied by the classifier is left untouched.
func (f *Findings) EnsureScore() int {
	if f.Score == nil {
		score := f.ComputeScore()
		f.Score = &score
	}
	return *f.Score
}
