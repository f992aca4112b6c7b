package datastore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aleister1102/reportdiff/internal/models"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

const timeLayout = time.RFC3339Nano

// SQLiteStore keeps the history of runs and their per-case reports.
type SQLiteStore struct {
	db     *sql.DB
	logger zerolog.Logger
}

// RunRecord is the summary row of a stored run.
type RunRecord struct {
	ID         int64
	StartedAt  time.Time
	FinishedAt time.Time
	Summary    models.RunSummary
}

// NewSQLiteStore opens the database and ensures the schema is set up.
func NewSQLiteStore(dataSourceName string, logger zerolog.Logger) (*SQLiteStore, error) {
	logger = logger.With().Str("component", "SQLiteStore").Logger()
	logger.Info().Str("db_path", dataSourceName).Msg("Initializing run history database connection")

	dbDir := filepath.Dir(dataSourceName)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		logger.Error().Err(err).Str("directory", dbDir).Msg("Failed to create database directory")
		return nil, WrapError(err, fmt.Sprintf("failed to create database directory %s", dbDir))
	}

	dbInstance, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		logger.Error().Err(err).Str("db_path", dataSourceName).Msg("Failed to open database")
		return nil, WrapError(err, fmt.Sprintf("sql.Open failed for %s", dataSourceName))
	}
	// A single connection serializes writers on the sqlite file.
	dbInstance.SetMaxOpenConns(1)

	store := &SQLiteStore{
		db:     dbInstance,
		logger: logger,
	}

	if err := store.InitSchema(); err != nil {
		_ = store.Close()
		return nil, WrapError(err, "failed to initialize schema")
	}
	logger.Info().Str("path", dataSourceName).Msg("Database initialized and schema verified")
	return store, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// InitSchema creates the runs and case_reports tables if they don't already exist.
func (s *SQLiteStore) InitSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		started_at TEXT NOT NULL,
		finished_at TEXT NOT NULL,
		total_cases INTEGER NOT NULL DEFAULT 0,
		summary_json TEXT NOT NULL,
		skipped_json TEXT
	);
	CREATE TABLE IF NOT EXISTS case_reports (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		case_number TEXT NOT NULL,
		change_percentage REAL,
		report_json TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_case_reports_run ON case_reports(run_id, position);
	`
	if _, err := s.db.Exec(query); err != nil {
		s.logger.Error().Err(err).Msg("Failed to initialize schema")
		return err
	}
	s.logger.Debug().Msg("Schema initialized (runs and case_reports tables ensured)")
	return nil
}

// SaveRun stores the run and all of its case reports in one transaction and
// sets report.ID to the new row id.
func (s *SQLiteStore) SaveRun(ctx context.Context, report *models.RunReport) (int64, error) {
	if report == nil {
		return 0, NewError("run report cannot be nil")
	}

	summaryJSON, err := json.Marshal(report.Summary)
	if err != nil {
		return 0, WrapError(err, "failed to marshal run summary")
	}
	skippedJSON, err := json.Marshal(report.SkippedCases)
	if err != nil {
		return 0, WrapError(err, "failed to marshal skipped cases")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, WrapError(err, "failed to begin transaction")
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(ctx,
		`INSERT INTO runs (started_at, finished_at, total_cases, summary_json, skipped_json) VALUES (?, ?, ?, ?, ?)`,
		report.StartedAt.UTC().Format(timeLayout),
		report.FinishedAt.UTC().Format(timeLayout),
		len(report.Cases),
		string(summaryJSON),
		string(skippedJSON),
	)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to insert run record")
		return 0, WrapError(err, "failed to insert run record")
	}
	runID, err := result.LastInsertId()
	if err != nil {
		return 0, WrapError(err, "failed to get last insert ID")
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO case_reports (run_id, position, case_number, change_percentage, report_json) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, WrapError(err, "failed to prepare case report insert")
	}
	defer stmt.Close()

	for i, cr := range report.Cases {
		reportJSON, err := json.Marshal(cr)
		if err != nil {
			return 0, WrapError(err, fmt.Sprintf("failed to marshal case %s", cr.CaseNumber))
		}
		var changePct sql.NullFloat64
		if cr.Diff != nil {
			changePct = sql.NullFloat64{Float64: cr.Diff.ChangePercentage, Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, runID, i, cr.CaseNumber, changePct, string(reportJSON)); err != nil {
			return 0, WrapError(err, fmt.Sprintf("failed to insert case %s", cr.CaseNumber))
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, WrapError(err, "failed to commit run")
	}

	report.ID = runID
	s.logger.Info().Int64("run_id", runID).Int("cases", len(report.Cases)).Msg("Stored run in history")
	return runID, nil
}

// LoadRun returns a stored run with its case reports in their original order.
func (s *SQLiteStore) LoadRun(ctx context.Context, id int64) (*models.RunReport, error) {
	record, skippedJSON, err := s.scanRun(s.db.QueryRowContext(ctx,
		`SELECT id, started_at, finished_at, summary_json, skipped_json FROM runs WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("run %d: %w", id, ErrRunNotFound)
		}
		return nil, WrapError(err, fmt.Sprintf("failed to load run %d", id))
	}

	report := &models.RunReport{
		ID:         record.ID,
		StartedAt:  record.StartedAt,
		FinishedAt: record.FinishedAt,
		Summary:    record.Summary,
		Cases:      []models.CaseReport{},
	}
	if skippedJSON.Valid && skippedJSON.String != "null" {
		if err := json.Unmarshal([]byte(skippedJSON.String), &report.SkippedCases); err != nil {
			return nil, WrapError(err, "failed to decode skipped cases")
		}
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT report_json FROM case_reports WHERE run_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, WrapError(err, fmt.Sprintf("failed to query cases of run %d", id))
	}
	defer rows.Close()

	for rows.Next() {
		var reportJSON string
		if err := rows.Scan(&reportJSON); err != nil {
			return nil, WrapError(err, "failed to scan case report")
		}
		var cr models.CaseReport
		if err := json.Unmarshal([]byte(reportJSON), &cr); err != nil {
			return nil, WrapError(err, "failed to decode case report")
		}
		report.Cases = append(report.Cases, cr)
	}
	if err := rows.Err(); err != nil {
		return nil, WrapError(err, "failed to iterate case reports")
	}

	return report, nil
}

// ListRuns returns the most recent runs first. A non-positive limit returns all.
func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	query := `SELECT id, started_at, finished_at, summary_json, skipped_json FROM runs ORDER BY id DESC`
	args := []interface{}{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, WrapError(err, "failed to query runs")
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		record, _, err := s.scanRun(rows)
		if err != nil {
			return nil, WrapError(err, "failed to scan run")
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, WrapError(err, "failed to iterate runs")
	}
	return records, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (s *SQLiteStore) scanRun(row rowScanner) (RunRecord, sql.NullString, error) {
	var record RunRecord
	var startedAt, finishedAt, summaryJSON string
	var skippedJSON sql.NullString

	if err := row.Scan(&record.ID, &startedAt, &finishedAt, &summaryJSON, &skippedJSON); err != nil {
		return RunRecord{}, skippedJSON, err
	}

	var err error
	if record.StartedAt, err = time.Parse(timeLayout, startedAt); err != nil {
		return RunRecord{}, skippedJSON, err
	}
	if record.FinishedAt, err = time.Parse(timeLayout, finishedAt); err != nil {
		return RunRecord{}, skippedJSON, err
	}
	if err := json.Unmarshal([]byte(summaryJSON), &record.Summary); err != nil {
		return RunRecord{}, skippedJSON, err
	}
	return record, skippedJSON, nil
}
