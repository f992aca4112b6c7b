package differ

import (
	"github.com/aleister1102/reportdiff/internal/models"
)

// DiffResultBuilder builds DiffResult objects
type DiffResultBuilder struct {
	result models.DiffResult
}

// NewDiffResultBuilder creates a new result builder
func NewDiffResultBuilder() *DiffResultBuilder {
	return &DiffResultBuilder{}
}

// WithGranularity sets the alignment granularity
func (rb *DiffResultBuilder) WithGranularity(granularity Granularity) *DiffResultBuilder {
	rb.result.Granularity = string(granularity)
	return rb
}

// WithChangePercentage sets the change metric
func (rb *DiffResultBuilder) WithChangePercentage(pct float64) *DiffResultBuilder {
	rb.result.ChangePercentage = pct
	return rb
}

// WithBlocks sets the unified blocks and derives the side-by-side view
func (rb *DiffResultBuilder) WithBlocks(unified []models.DiffBlock) *DiffResultBuilder {
	if unified == nil {
		unified = []models.DiffBlock{}
	}
	rb.result.Unified = unified
	rb.result.SideBySide = SplitSides(unified)
	return rb
}

// WithAlignedPairs records how many pairs the greedy pass produced
func (rb *DiffResultBuilder) WithAlignedPairs(n int) *DiffResultBuilder {
	rb.result.Stats.AlignedPairs = n
	return rb
}

// countBlocks sets block statistics on the result
func (rb *DiffResultBuilder) countBlocks() {
	stats := &rb.result.Stats
	stats.EqualBlocks, stats.InsertBlocks, stats.DeleteBlocks, stats.ReplaceBlocks = 0, 0, 0, 0
	for _, block := range rb.result.Unified {
		switch block.Kind {
		case models.DiffEqual:
			stats.EqualBlocks++
		case models.DiffInsert:
			stats.InsertBlocks++
		case models.DiffDelete:
			stats.DeleteBlocks++
		case models.DiffReplace:
			stats.ReplaceBlocks++
		}
	}
	rb.result.IsIdentical = stats.InsertBlocks == 0 && stats.DeleteBlocks == 0 && stats.ReplaceBlocks == 0
}

// Build creates the final DiffResult
func (rb *DiffResultBuilder) Build() *models.DiffResult {
	if rb.result.Unified == nil {
		rb.WithBlocks(nil)
	}
	rb.countBlocks()
	result := rb.result
	return &result
}
