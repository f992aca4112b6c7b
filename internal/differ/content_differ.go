package differ

import (
	"sort"

	"github.com/aleister1102/reportdiff/internal/common"
	"github.com/aleister1102/reportdiff/internal/models"
	"github.com/aleister1102/reportdiff/internal/normalizer"
)

// ContentDiffer compares a resident report with an attending report. It holds
// no mutable state after Build and is safe for concurrent use.
type ContentDiffer struct {
	config        DiffConfig
	normalizer    *normalizer.TextNormalizer
	segmenter     *Segmenter
	aligner       *SequenceAligner
	scorer        *SimilarityScorer
	greedy        *GreedyAligner
	renderer      *DiffRenderer
	sizeValidator *ContentSizeValidator
}

// ContentDifferBuilder provides a fluent interface for creating ContentDiffer
type ContentDifferBuilder struct {
	diffCfg DiffConfig
}

// NewContentDifferBuilder creates a new builder
func NewContentDifferBuilder() *ContentDifferBuilder {
	return &ContentDifferBuilder{
		diffCfg: DefaultDiffConfig(),
	}
}

// WithDiffConfig sets the diff configuration
func (b *ContentDifferBuilder) WithDiffConfig(cfg DiffConfig) *ContentDifferBuilder {
	b.diffCfg = cfg.clone()
	return b
}

// Build creates a new ContentDiffer instance
func (b *ContentDifferBuilder) Build() (*ContentDiffer, error) {
	cfg := b.diffCfg.clone()
	if cfg.SimilarityThreshold <= 0 || cfg.SimilarityThreshold > 1 {
		return nil, common.NewValidationError("similarity_threshold", cfg.SimilarityThreshold, "must be in (0, 1]")
	}
	if !cfg.Granularity.IsAlignmentGranularity() {
		return nil, common.NewValidationError("granularity", cfg.Granularity, "must be paragraph or sentence")
	}

	aligner := NewSequenceAligner()
	scorer := NewSimilarityScorer(aligner)

	return &ContentDiffer{
		config:        cfg,
		normalizer:    normalizer.NewTextNormalizer(cfg.Boilerplate, cfg.NormalizeUnicode),
		segmenter:     NewSegmenter(cfg.Granularity),
		aligner:       aligner,
		scorer:        scorer,
		greedy:        NewGreedyAligner(scorer, cfg.SimilarityThreshold),
		renderer:      NewDiffRenderer(aligner),
		sizeValidator: NewContentSizeValidator(cfg.MaxInputBytes),
	}, nil
}

// NewContentDiffer creates a new instance of ContentDiffer
func NewContentDiffer(cfg DiffConfig) (*ContentDiffer, error) {
	return NewContentDifferBuilder().
		WithDiffConfig(cfg).
		Build()
}

// Config returns a copy of the configuration in use.
func (cd *ContentDiffer) Config() DiffConfig {
	return cd.config.clone()
}

// Diff compares the resident text with the attending text. The only error it
// returns is an *InputTooLargeError.
func (cd *ContentDiffer) Diff(residentText, attendingText string) (*models.DiffResult, error) {
	if err := cd.sizeValidator.ValidateSize(residentText, attendingText); err != nil {
		return nil, err
	}

	normResident := cd.normalizer.Normalize(residentText)
	normAttending := cd.normalizer.Normalize(attendingText)
	changePct := cd.scorer.ChangePercentage(normResident, normAttending)

	residentUnits := cd.segmenter.Segment(normResident)
	attendingUnits := cd.segmenter.Segment(normAttending)

	ops := cd.aligner.Align(residentUnits, attendingUnits)
	direct, leftoverResident, leftoverAttending := cd.resolveOpcodes(ops, residentUnits, attendingUnits)
	greedyPairs := cd.greedy.Align(leftoverResident, leftoverAttending)

	pairs := append(direct, greedyPairs...)
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].Source < pairs[j].Source })

	unified := cd.renderer.Render(residentUnits, attendingUnits, ops, pairs)

	result := NewDiffResultBuilder().
		WithGranularity(cd.config.Granularity).
		WithChangePercentage(changePct).
		WithBlocks(unified).
		WithAlignedPairs(len(greedyPairs)).
		Build()

	return result, nil
}

// resolveOpcodes turns every one-to-one replace into a direct pair and
// collects all other unmatched units for the greedy pass.
func (cd *ContentDiffer) resolveOpcodes(ops []Opcode, a, b []Unit) ([]AlignedPair, []Unit, []Unit) {
	var direct []AlignedPair
	var leftoverA, leftoverB []Unit
	for _, op := range ops {
		switch op.Tag {
		case OpEqual:
			continue
		case OpReplace:
			if op.ALen() == 1 && op.BLen() == 1 {
				direct = append(direct, AlignedPair{
					Source:     op.A1,
					Target:     op.B1,
					Similarity: cd.scorer.Ratio(a[op.A1].Text, b[op.B1].Text),
				})
				continue
			}
		}
		leftoverA = append(leftoverA, a[op.A1:op.A2]...)
		leftoverB = append(leftoverB, b[op.B1:op.B2]...)
	}
	return direct, leftoverA, leftoverB
}

// DiffWith compares two reports with a one-off configuration.
func DiffWith(residentText, attendingText string, cfg DiffConfig) (*models.DiffResult, error) {
	cd, err := NewContentDifferBuilder().WithDiffConfig(cfg).Build()
	if err != nil {
		return nil, common.WrapError(err, "failed to build content differ")
	}
	return cd.Diff(residentText, attendingText)
}
