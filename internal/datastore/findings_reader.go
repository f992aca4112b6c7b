package datastore

import (
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/aleister1102/reportdiff/internal/common"
	"github.com/aleister1102/reportdiff/internal/models"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

const maxFindingsFileSize = 50 * 1024 * 1024

// FindingsReader loads findings produced by an external classifier.
type FindingsReader struct {
	logger      zerolog.Logger
	fileManager *common.FileManager
}

// NewFindingsReader creates a new FindingsReader.
func NewFindingsReader(logger zerolog.Logger) *FindingsReader {
	return &FindingsReader{
		logger:      logger.With().Str("component", "FindingsReader").Logger(),
		fileManager: common.NewFileManager(logger),
	}
}

// ReadFile loads a .json, .yaml or .yml file holding an array of findings
// records and returns them keyed by case number. Every record gets a score.
// Records without a case number are dropped; a repeated case number keeps the
// last record.
func (fr *FindingsReader) ReadFile(path string) (map[string]*models.Findings, error) {
	data, err := fr.fileManager.ReadFile(path, common.FileReadOptions{MaxSize: maxFindingsFileSize})
	if err != nil {
		return nil, common.WrapError(err, "failed to read findings file")
	}

	var records []models.Findings
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &records)
	default:
		err = json.Unmarshal(data, &records)
	}
	if err != nil {
		return nil, common.WrapErrorf(err, "failed to parse findings from '%s'", path)
	}

	byCase := make(map[string]*models.Findings, len(records))
	for i := range records {
		f := records[i]
		f.CaseNumber = strings.TrimSpace(f.CaseNumber)
		if f.CaseNumber == "" {
			fr.logger.Warn().Int("record", i).Msg("Findings record without case number, skipping")
			continue
		}
		if _, dup := byCase[f.CaseNumber]; dup {
			fr.logger.Warn().Str("case_number", f.CaseNumber).Msg("Duplicate findings record, keeping the last one")
		}
		f.EnsureScore()
		byCase[f.CaseNumber] = &f
	}

	fr.logger.Info().Str("path", path).Int("records", len(byCase)).Msg("Loaded findings")
	return byCase, nil
}
