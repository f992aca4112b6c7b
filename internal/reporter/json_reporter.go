package reporter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/aleister1102/reportdiff/internal/common"
	"github.com/aleister1102/reportdiff/internal/config"
	"github.com/aleister1102/reportdiff/internal/models"
	"github.com/rs/zerolog"
)

// JSONReporter writes run reports as JSON documents
type JSONReporter struct {
	cfg          config.ReporterConfig
	logger       zerolog.Logger
	directoryMgr *DirectoryManager
	stdout       io.Writer
}

// caseDocument adds the grouped presentation order next to the engine output
type caseDocument struct {
	models.CaseReport
	GroupedUnified []models.DiffBlock `json:"grouped_unified,omitempty"`
}

type runDocument struct {
	*models.RunReport
	Cases []caseDocument `json:"cases"`
}

// NewJSONReporter creates a new JSONReporter
func NewJSONReporter(cfg config.ReporterConfig, appLogger zerolog.Logger) *JSONReporter {
	moduleLogger := appLogger.With().Str("component", "JSONReporter").Logger()
	return &JSONReporter{
		cfg:          cfg,
		logger:       moduleLogger,
		directoryMgr: NewDirectoryManager(moduleLogger),
		stdout:       os.Stdout,
	}
}

// WithStdout redirects stdout output, mainly for tests
func (r *JSONReporter) WithStdout(w io.Writer) *JSONReporter {
	r.stdout = w
	return r
}

// Write encodes report to outputPath. An empty outputPath falls back to the
// configured path; "-" writes to stdout.
func (r *JSONReporter) Write(report *models.RunReport, outputPath string) error {
	if report == nil {
		return common.NewValidationError("report", report, "run report cannot be nil")
	}
	if outputPath == "" {
		outputPath = r.cfg.OutputPath
	}

	data, err := r.encode(report)
	if err != nil {
		return err
	}

	if outputPath == "" || outputPath == StdoutPath {
		if _, err := r.stdout.Write(data); err != nil {
			return common.WrapError(err, "failed to write report to stdout")
		}
		return nil
	}

	if err := r.directoryMgr.EnsureOutputDirectories(filepath.Dir(outputPath)); err != nil {
		return err
	}
	if err := os.WriteFile(outputPath, data, FilePermissions); err != nil {
		r.logger.Error().Err(err).Str("path", outputPath).Msg("Failed to write report file")
		return fmt.Errorf("failed to write report file '%s': %w", outputPath, err)
	}

	r.logger.Info().
		Str("path", outputPath).
		Int("cases", len(report.Cases)).
		Msg("Report written")
	return nil
}

func (r *JSONReporter) encode(report *models.RunReport) ([]byte, error) {
	doc := runDocument{
		RunReport: report,
		Cases:     make([]caseDocument, len(report.Cases)),
	}
	for i, cr := range report.Cases {
		doc.Cases[i] = caseDocument{CaseReport: cr}
		if r.cfg.GroupedOrder && cr.Diff != nil {
			doc.Cases[i].GroupedUnified = models.GroupedUnified(cr.Diff.Unified)
		}
	}

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	if r.cfg.Indent {
		encoder.SetIndent("", jsonIndent)
	}
	if err := encoder.Encode(doc); err != nil {
		return nil, common.WrapError(err, "failed to encode report")
	}
	return buf.Bytes(), nil
}
