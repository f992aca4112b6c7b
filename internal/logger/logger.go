// Package logger builds zerolog loggers with console and rotated file output.
package logger

import (
	"errors"
	"io"

	"github.com/rs/zerolog"
)

// Logger represents the main logger with configuration
type Logger struct {
	zerolog zerolog.Logger
	config  LoggerConfig
	closers []io.Closer
}

// GetZerolog returns the underlying zerolog instance
func (l *Logger) GetZerolog() *zerolog.Logger {
	return &l.zerolog
}

// GetConfig returns the effective configuration
func (l *Logger) GetConfig() LoggerConfig {
	return l.config
}

// Close releases file writers
func (l *Logger) Close() error {
	var errs []error
	for _, c := range l.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	l.closers = nil
	return errors.Join(errs...)
}

// New creates a logger from file configuration
func New(cfg FileLogConfig) (*Logger, error) {
	return NewLoggerBuilder().WithFileConfig(cfg).Build()
}

// NewWithRunID creates a logger whose file output is kept per run
func NewWithRunID(cfg FileLogConfig, runID string) (*Logger, error) {
	return NewLoggerBuilder().
		WithRunID(runID).
		WithFileConfig(cfg).
		Build()
}
