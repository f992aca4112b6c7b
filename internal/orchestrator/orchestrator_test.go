package orchestrator

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aleister1102/reportdiff/internal/config"
	"github.com/aleister1102/reportdiff/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	mu    sync.Mutex
	saved []*models.RunReport
	err   error
}

func (s *fakeStore) SaveRun(_ context.Context, report *models.RunReport) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return 0, s.err
	}
	s.saved = append(s.saved, report)
	report.ID = int64(len(s.saved))
	return report.ID, nil
}

type fakeFindings struct {
	byCase map[string]*models.Findings
	err    error
}

func (f *fakeFindings) ReadFile(string) (map[string]*models.Findings, error) {
	return f.byCase, f.err
}

const sampleInput = `Case 10
Resident Report:
No pneumothorax.
Attending Report:
Small right pneumothorax.

Case 2
Resident Report:
Lungs are clear. Heart is normal.
Attending Report:
Lungs are clear. Heart is normal.
As the attending physician, I have personally reviewed the images, interpreted and/or supervised the study or procedure, and agree with the wording of the above report.

Case 7
Resident Report:
Normal abdomen.
`

func newTestOrchestrator(t *testing.T, cfg *config.GlobalConfig, store RunStore, findings FindingsSource) *RunOrchestrator {
	t.Helper()
	o, err := NewRunOrchestrator(cfg, zerolog.Nop(), store, findings)
	require.NoError(t, err)
	clock := time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)
	o.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return o
}

func TestRunOrchestrator_Run(t *testing.T) {
	store := &fakeStore{}
	o := newTestOrchestrator(t, config.NewDefaultGlobalConfig(), store, nil)

	report, err := o.Run(context.Background(), sampleInput)
	require.NoError(t, err)

	require.Len(t, report.Cases, 2)
	assert.Equal(t, "2", report.Cases[0].CaseNumber)
	assert.Equal(t, "10", report.Cases[1].CaseNumber)

	identical := report.Cases[0]
	require.NotNil(t, identical.Diff)
	assert.True(t, identical.Diff.IsIdentical, "attestation line is not a change")
	assert.Zero(t, identical.Diff.ChangePercentage)
	assert.Contains(t, identical.Attending, "As the attending physician", "display text is untouched")

	changed := report.Cases[1]
	require.NotNil(t, changed.Diff)
	assert.False(t, changed.Diff.IsIdentical)
	assert.Greater(t, changed.Diff.ChangePercentage, 0.0)
	assert.Empty(t, changed.DiffError)
	assert.Nil(t, changed.Findings)

	assert.Equal(t, []models.SkippedCase{{Number: "7", Reason: "missing attending report"}}, report.SkippedCases)
	assert.Equal(t, 2, report.Summary.TotalCases)
	assert.Equal(t, 1, report.Summary.SkippedCases)
	assert.True(t, report.FinishedAt.After(report.StartedAt))

	require.Len(t, store.saved, 1)
	assert.Equal(t, int64(1), report.ID)
}

func TestRunOrchestrator_TooLargeCaseContinues(t *testing.T) {
	cfg := config.NewDefaultGlobalConfig()
	cfg.DiffConfig.MaxInputBytes = 40

	input := "Case 1\nResident: " + strings.Repeat("Long sentence here. ", 5) + "\nAttending: Short.\n" +
		"Case 2\nResident: Lungs clear.\nAttending: Lungs clear.\n"

	report, err := newTestOrchestrator(t, cfg, nil, nil).Run(context.Background(), input)
	require.NoError(t, err)

	require.Len(t, report.Cases, 2)
	assert.Nil(t, report.Cases[0].Diff)
	assert.Contains(t, report.Cases[0].DiffError, "too large")
	require.NotNil(t, report.Cases[1].Diff)
	assert.True(t, report.Cases[1].Diff.IsIdentical)
	assert.Equal(t, 0.0, report.Summary.AverageChangePercentage)
}

func TestRunOrchestrator_Findings(t *testing.T) {
	cfg := config.NewDefaultGlobalConfig()
	cfg.ExtractorConfig.FindingsFile = "findings.json"
	findings := &fakeFindings{byCase: map[string]*models.Findings{
		"10": {CaseNumber: "10", MajorFindings: []string{"Missed pneumothorax"}, MinorFindings: []string{"Side omitted"}},
	}}

	report, err := newTestOrchestrator(t, cfg, nil, findings).Run(context.Background(), sampleInput)
	require.NoError(t, err)

	require.Len(t, report.Cases, 2)
	assert.Nil(t, report.Cases[0].Findings)
	assert.Equal(t, "no findings record for case 2", report.Cases[0].FindingsError)

	f := report.Cases[1].Findings
	require.NotNil(t, f)
	require.NotNil(t, f.Score)
	assert.Equal(t, 4, *f.Score)
	assert.Nil(t, findings.byCase["10"].Score, "source records are not mutated")

	assert.Equal(t, 1, report.Summary.MajorFindings)
	assert.Equal(t, 1, report.Summary.MinorFindings)
	assert.Equal(t, 50, report.Summary.MajorSharePercent)
	assert.Equal(t, 1, report.Summary.CasesWithFindings)
}

func TestRunOrchestrator_FindingsLoadError(t *testing.T) {
	cfg := config.NewDefaultGlobalConfig()
	cfg.ExtractorConfig.FindingsFile = "missing.json"

	report, err := newTestOrchestrator(t, cfg, nil, &fakeFindings{err: errors.New("boom")}).Run(context.Background(), sampleInput)
	require.NoError(t, err)

	for _, c := range report.Cases {
		assert.Equal(t, "boom", c.FindingsError)
		assert.NotNil(t, c.Diff)
	}
}

func TestRunOrchestrator_StoreErrorKeepsReport(t *testing.T) {
	report, err := newTestOrchestrator(t, config.NewDefaultGlobalConfig(), &fakeStore{err: errors.New("disk full")}, nil).
		Run(context.Background(), sampleInput)

	require.NoError(t, err)
	assert.Zero(t, report.ID)
	assert.Len(t, report.Cases, 2)
}

func TestRunOrchestrator_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := newTestOrchestrator(t, config.NewDefaultGlobalConfig(), nil, nil).Run(ctx, sampleInput)

	assert.Nil(t, report)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunOrchestrator_EmptyInput(t *testing.T) {
	store := &fakeStore{}
	report, err := newTestOrchestrator(t, config.NewDefaultGlobalConfig(), store, nil).Run(context.Background(), "no cases here")

	require.NoError(t, err)
	assert.Empty(t, report.Cases)
	assert.Equal(t, models.RunSummary{}, report.Summary)
	assert.Len(t, store.saved, 1)
}

func TestRunOrchestrator_InputTooLarge(t *testing.T) {
	cfg := config.NewDefaultGlobalConfig()
	cfg.ExtractorConfig.MaxInputBytes = 8

	_, err := newTestOrchestrator(t, cfg, nil, nil).Run(context.Background(), sampleInput)

	assert.Error(t, err)
}

func TestNewRunOrchestrator_Errors(t *testing.T) {
	_, err := NewRunOrchestrator(nil, zerolog.Nop(), nil, nil)
	assert.Error(t, err)

	cfg := config.NewDefaultGlobalConfig()
	cfg.DiffConfig.Granularity = "chapter"
	_, err = NewRunOrchestrator(cfg, zerolog.Nop(), nil, nil)
	assert.Error(t, err)

	cfg = config.NewDefaultGlobalConfig()
	cfg.DiffConfig.SimilarityThreshold = 2
	_, err = NewRunOrchestrator(cfg, zerolog.Nop(), nil, nil)
	assert.Error(t, err)
}
