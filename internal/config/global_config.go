package config

import (
	"encoding/json"
	"path/filepath"

	"github.com/aleister1102/reportdiff/internal/common"
	"github.com/aleister1102/reportdiff/internal/logger"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// maxConfigFileSize bounds the config file read
const maxConfigFileSize = 10 * 1024 * 1024

// GlobalConfig contains all configuration sections for the application
type GlobalConfig struct {
	DiffConfig      DiffConfig           `json:"diff_config,omitempty" yaml:"diff_config,omitempty"`
	ExtractorConfig ExtractorConfig      `json:"extractor_config,omitempty" yaml:"extractor_config,omitempty"`
	BatchConfig     BatchConfig          `json:"batch_config,omitempty" yaml:"batch_config,omitempty"`
	StorageConfig   StorageConfig        `json:"storage_config,omitempty" yaml:"storage_config,omitempty"`
	ReporterConfig  ReporterConfig       `json:"reporter_config,omitempty" yaml:"reporter_config,omitempty"`
	LogConfig       logger.FileLogConfig `json:"log_config,omitempty" yaml:"log_config,omitempty"`
}

// NewDefaultGlobalConfig creates a new GlobalConfig with default values
func NewDefaultGlobalConfig() *GlobalConfig {
	return &GlobalConfig{
		DiffConfig:      NewDefaultDiffConfig(),
		ExtractorConfig: NewDefaultExtractorConfig(),
		BatchConfig:     NewDefaultBatchConfig(),
		StorageConfig:   NewDefaultStorageConfig(),
		ReporterConfig:  NewDefaultReporterConfig(),
		LogConfig:       logger.NewDefaultFileLogConfig(),
	}
}

// LoadGlobalConfig loads the configuration from a file or default locations.
// It determines the config file path using GetConfigPath, supports both JSON and YAML formats.
// YAML is used if the file extension is .yaml or .yml. Values absent from the
// file keep their defaults.
func LoadGlobalConfig(providedPath string, appLogger zerolog.Logger) (*GlobalConfig, error) {
	cfg := NewDefaultGlobalConfig()

	filePath := GetConfigPath(providedPath)
	if filePath == "" {
		if providedPath != "" {
			return nil, common.NewValidationError("config_file", providedPath, "config file does not exist")
		}
		return cfg, nil
	}

	fileManager := common.NewFileManager(appLogger)
	data, err := fileManager.ReadFile(filePath, common.FileReadOptions{MaxSize: maxConfigFileSize})
	if err != nil {
		return nil, common.WrapError(err, "failed to load config file content")
	}

	if err := parseConfigContent(data, filePath, cfg); err != nil {
		return nil, common.WrapError(err, "failed to parse config content")
	}

	return cfg, nil
}

// parseConfigContent parses the config content based on file extension
func parseConfigContent(data []byte, filePath string, cfg *GlobalConfig) error {
	if isYAMLFile(filepath.Ext(filePath)) {
		return parseYAMLConfig(data, filePath, cfg)
	}
	return parseJSONConfig(data, filePath, cfg)
}

// isYAMLFile checks if the file extension indicates a YAML file
func isYAMLFile(ext string) bool {
	return ext == ".yaml" || ext == ".yml"
}

// parseYAMLConfig parses YAML configuration
func parseYAMLConfig(data []byte, filePath string, cfg *GlobalConfig) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return common.NewError("failed to unmarshal YAML from '%s': %w", filePath, err)
	}
	return nil
}

// parseJSONConfig parses JSON configuration
func parseJSONConfig(data []byte, filePath string, cfg *GlobalConfig) error {
	if err := json.Unmarshal(data, cfg); err != nil {
		return common.NewError("failed to unmarshal JSON from '%s': %w", filePath, err)
	}
	return nil
}

// SaveGlobalConfig writes cfg to filePath, as YAML or JSON by extension
func SaveGlobalConfig(cfg *GlobalConfig, filePath string, appLogger zerolog.Logger) error {
	if cfg == nil {
		return common.NewValidationError("config", cfg, "config cannot be nil")
	}
	if filePath == "" {
		filePath = "config.yaml"
	}

	var data []byte
	var err error
	ext := filepath.Ext(filePath)
	if isYAMLFile(ext) {
		data, err = yaml.Marshal(cfg)
		if err != nil {
			return common.NewError("failed to marshal config to YAML: %w", err)
		}
	} else {
		data, err = json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return common.NewError("failed to marshal config to JSON: %w", err)
		}
	}

	fileManager := common.NewFileManager(appLogger)
	if err := fileManager.WriteFile(filePath, data, common.DefaultFileWriteOptions()); err != nil {
		return common.WrapError(err, "failed to write config file")
	}

	appLogger.Info().
		Str("path", filePath).
		Str("format", ext).
		Msg("Successfully saved config file")

	return nil
}
