package logger

import (
	"io"
	stdlog "log"

	"github.com/aleister1102/reportdiff/internal/common"
	"github.com/rs/zerolog"
)

// LoggerBuilder provides fluent interface for building loggers
type LoggerBuilder struct {
	config    LoggerConfig
	factory   *WriterFactory
	converter *ConfigConverter
	err       error
}

// NewLoggerBuilder creates a new logger builder
func NewLoggerBuilder() *LoggerBuilder {
	return &LoggerBuilder{
		config:    DefaultLoggerConfig(),
		factory:   NewWriterFactory(),
		converter: NewConfigConverter(),
	}
}

// WithFileConfig applies settings loaded from the configuration file
func (lb *LoggerBuilder) WithFileConfig(cfg FileLogConfig) *LoggerBuilder {
	loggerConfig, err := lb.converter.ConvertFileConfig(cfg)
	if err != nil {
		lb.err = err
	}
	loggerConfig.RunID = lb.config.RunID
	lb.config = loggerConfig
	return lb
}

// WithLevel sets the minimum level
func (lb *LoggerBuilder) WithLevel(level zerolog.Level) *LoggerBuilder {
	lb.config.Level = level
	return lb
}

// WithFormat sets the output format
func (lb *LoggerBuilder) WithFormat(format LogFormat) *LoggerBuilder {
	lb.config.Format = format
	return lb
}

// WithConsole enables or disables console output
func (lb *LoggerBuilder) WithConsole(enabled bool) *LoggerBuilder {
	lb.config.EnableConsole = enabled
	return lb
}

// WithConsoleOutput redirects console output, stderr by default
func (lb *LoggerBuilder) WithConsoleOutput(w io.Writer) *LoggerBuilder {
	lb.factory.consoleOutput = w
	return lb
}

// WithFile enables rotated file output
func (lb *LoggerBuilder) WithFile(path string, maxSizeMB, maxBackups int) *LoggerBuilder {
	lb.config.EnableFile = path != ""
	lb.config.FilePath = path
	lb.config.MaxSizeMB = maxSizeMB
	lb.config.MaxBackups = maxBackups
	return lb
}

// WithRunID sets the run ID for organizing logs by run
func (lb *LoggerBuilder) WithRunID(runID string) *LoggerBuilder {
	lb.config.RunID = runID
	return lb
}

// Build creates the logger instance
func (lb *LoggerBuilder) Build() (*Logger, error) {
	if lb.err != nil {
		return nil, lb.err
	}
	if err := lb.validateConfig(); err != nil {
		return nil, err
	}

	writers, closers := lb.createWriters()
	if len(writers) == 0 {
		return nil, common.NewError("no output writers configured")
	}

	multiWriter := zerolog.MultiLevelWriter(writers...)
	zerologInstance := zerolog.New(multiWriter).
		Level(lb.config.Level).
		With().
		Timestamp().
		Logger()

	lb.configureStandardLog(zerologInstance)

	return &Logger{
		zerolog: zerologInstance,
		config:  lb.config,
		closers: closers,
	}, nil
}

// validateConfig validates the logger configuration
func (lb *LoggerBuilder) validateConfig() error {
	if lb.config.EnableFile && lb.config.FilePath == "" {
		return common.NewValidationError("file_path", lb.config.FilePath, "file path required when file logging enabled")
	}

	if lb.config.EnableFile && lb.config.MaxSizeMB <= 0 {
		return common.NewValidationError("max_size_mb", lb.config.MaxSizeMB, "max size must be positive")
	}

	return nil
}

// createWriters creates the appropriate writers based on configuration
func (lb *LoggerBuilder) createWriters() ([]io.Writer, []io.Closer) {
	var writers []io.Writer
	var closers []io.Closer

	if lb.config.EnableConsole {
		writers = append(writers, lb.factory.CreateConsoleWriter(lb.config.Format))
	}

	if lb.config.EnableFile {
		fileWriter, closer := lb.factory.CreateFileWriter(lb.config)
		writers = append(writers, fileWriter)
		closers = append(closers, closer)
	}

	return writers, closers
}

// configureStandardLog routes the standard log package through zerolog
func (lb *LoggerBuilder) configureStandardLog(logger zerolog.Logger) {
	stdlog.SetOutput(logger)
	stdlog.SetFlags(0)
}
