package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/aleister1102/reportdiff/internal/common"
	"github.com/aleister1102/reportdiff/internal/common/batchprocessor"
	"github.com/aleister1102/reportdiff/internal/config"
	"github.com/aleister1102/reportdiff/internal/differ"
	"github.com/aleister1102/reportdiff/internal/extractor"
	"github.com/aleister1102/reportdiff/internal/models"
	"github.com/rs/zerolog"
)

// RunStore persists finished runs.
type RunStore interface {
	SaveRun(ctx context.Context, report *models.RunReport) (int64, error)
}

// FindingsSource supplies externally produced findings keyed by case number.
type FindingsSource interface {
	ReadFile(path string) (map[string]*models.Findings, error)
}

// RunOrchestrator handles the core logic of a run: extract cases, diff each
// case in a worker pool, attach findings, summarize and store.
type RunOrchestrator struct {
	globalConfig   *config.GlobalConfig
	logger         zerolog.Logger
	extractor      *extractor.CaseExtractor
	differ         *differ.ContentDiffer
	batchProcessor *batchprocessor.BatchProcessor
	store          RunStore
	findings       FindingsSource
	now            func() time.Time
}

// NewRunOrchestrator creates a new RunOrchestrator. store and findings may be
// nil to skip persistence and findings attachment.
func NewRunOrchestrator(
	cfg *config.GlobalConfig,
	logger zerolog.Logger,
	store RunStore,
	findings FindingsSource,
) (*RunOrchestrator, error) {
	if cfg == nil {
		return nil, common.NewValidationError("config", cfg, "global config cannot be nil")
	}

	differCfg, err := cfg.DiffConfig.ToDifferConfig()
	if err != nil {
		return nil, err
	}
	contentDiffer, err := differ.NewContentDiffer(differCfg)
	if err != nil {
		return nil, common.WrapError(err, "failed to create content differ")
	}

	orchestratorLogger := logger.With().Str("component", "RunOrchestrator").Logger()
	return &RunOrchestrator{
		globalConfig:   cfg,
		logger:         orchestratorLogger,
		extractor:      extractor.NewCaseExtractor(cfg.ExtractorConfig, logger),
		differ:         contentDiffer,
		batchProcessor: batchprocessor.NewBatchProcessor(cfg.BatchConfig.ToBatchProcessorConfig(), logger),
		store:          store,
		findings:       findings,
		now:            time.Now,
	}, nil
}

// Run processes one pasted input. Cases whose reports exceed the size limit
// carry a diff_error and the run continues. A cancelled context stops
// scheduling further cases and fails the run.
func (o *RunOrchestrator) Run(ctx context.Context, input string) (*models.RunReport, error) {
	if err := o.extractor.ValidateInput(input); err != nil {
		return nil, err
	}

	startedAt := o.now()
	cases, skipped := o.extractor.Extract(input)
	o.logger.Info().
		Int("cases", len(cases)).
		Int("skipped", len(skipped)).
		Msg("Starting run")

	reports, err := o.diffCases(ctx, cases)
	if err != nil {
		return nil, err
	}

	o.attachFindings(reports)

	sort.SliceStable(reports, func(i, j int) bool {
		return extractor.CompareCaseNumbers(reports[i].CaseNumber, reports[j].CaseNumber) < 0
	})

	report := &models.RunReport{
		StartedAt:    startedAt,
		Cases:        reports,
		SkippedCases: skipped,
		Summary: models.NewRunSummaryBuilder().
			WithCases(reports).
			WithSkippedCases(len(skipped)).
			Build(),
	}
	report.FinishedAt = o.now()

	o.persist(ctx, report)

	o.logger.Info().
		Int("cases", report.Summary.TotalCases).
		Float64("average_change_percentage", report.Summary.AverageChangePercentage).
		Dur("duration", report.FinishedAt.Sub(report.StartedAt)).
		Msg("Run completed")

	return report, nil
}

// diffCases diffs every case in the batch processor's worker pool. Reports
// are indexed like cases. An alignment invariant panic from the differ is not
// recovered and takes the run down.
func (o *RunOrchestrator) diffCases(ctx context.Context, cases []models.Case) ([]models.CaseReport, error) {
	reports := make([]models.CaseReport, len(cases))
	for i, c := range cases {
		reports[i] = models.CaseReport{
			CaseNumber: c.Number,
			Resident:   c.Resident,
			Attending:  c.Attending,
		}
	}

	results, err := o.batchProcessor.Process(ctx, len(cases), func(ctx context.Context, index int) error {
		if check := common.CheckCancellation(ctx); check.Cancelled {
			return check.Error
		}
		result, err := o.differ.Diff(cases[index].Resident, cases[index].Attending)
		if err != nil {
			return err
		}
		reports[index].Diff = result
		return nil
	})
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		return nil, common.WrapError(err, "run cancelled")
	}

	for _, r := range results {
		if r.Error == nil {
			continue
		}
		cr := &reports[r.Index]
		switch {
		case errors.Is(r.Error, differ.ErrInputTooLarge):
			o.logger.Warn().Err(r.Error).Str("case_number", cr.CaseNumber).Msg("Case too large to diff")
		default:
			o.logger.Error().Err(r.Error).Str("case_number", cr.CaseNumber).Msg("Case diff failed")
		}
		cr.DiffError = r.Error.Error()
	}

	return reports, nil
}

// attachFindings pairs each case with its findings record from the configured
// findings file. A missing file or record is reported on the case.
func (o *RunOrchestrator) attachFindings(reports []models.CaseReport) {
	path := o.globalConfig.ExtractorConfig.FindingsFile
	if o.findings == nil || path == "" || len(reports) == 0 {
		return
	}

	byCase, err := o.findings.ReadFile(path)
	if err != nil {
		o.logger.Error().Err(err).Str("path", path).Msg("Failed to load findings")
		for i := range reports {
			reports[i].FindingsError = err.Error()
		}
		return
	}

	for i := range reports {
		f, ok := byCase[reports[i].CaseNumber]
		if !ok {
			reports[i].FindingsError = fmt.Sprintf("no findings record for case %s", reports[i].CaseNumber)
			continue
		}
		copied := *f
		copied.EnsureScore()
		reports[i].Findings = &copied
	}
}

// persist stores the run when a store is configured. A storage failure is
// logged and leaves the report without an id.
func (o *RunOrchestrator) persist(ctx context.Context, report *models.RunReport) {
	if o.store == nil {
		return
	}
	if _, err := o.store.SaveRun(ctx, report); err != nil {
		o.logger.Error().Err(err).Msg("Failed to store run history")
	}
}
