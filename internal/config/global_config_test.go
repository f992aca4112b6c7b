package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aleister1102/reportdiff/internal/common"
	"github.com/aleister1102/reportdiff/internal/differ"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultGlobalConfig(t *testing.T) {
	cfg := NewDefaultGlobalConfig()

	require.NotNil(t, cfg)
	assert.Equal(t, DefaultDiffSimilarityThreshold, cfg.DiffConfig.SimilarityThreshold)
	assert.Equal(t, "sentence", cfg.DiffConfig.Granularity)
	assert.Equal(t, DefaultBoilerplate, cfg.DiffConfig.Boilerplate)
	assert.True(t, cfg.DiffConfig.NormalizeUnicode)
	assert.Equal(t, "auto", cfg.ExtractorConfig.HTMLMode)
	assert.Equal(t, DefaultBatchMaxConcurrent, cfg.BatchConfig.MaxConcurrent)
	assert.False(t, cfg.StorageConfig.Enabled)
	assert.Equal(t, "-", cfg.ReporterConfig.OutputPath)
	assert.Equal(t, "info", cfg.LogConfig.LogLevel)
	assert.NoError(t, ValidateConfig(cfg))
}

func TestLoadGlobalConfig_NoConfigFile(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, "")
	logger := zerolog.Nop()

	cfg, err := LoadGlobalConfig("", logger)

	require.NoError(t, err)
	assert.Equal(t, NewDefaultGlobalConfig(), cfg)
}

func TestLoadGlobalConfig_NonExistentFile(t *testing.T) {
	logger := zerolog.Nop()

	cfg, err := LoadGlobalConfig("/nonexistent/config.json", logger)

	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config file does not exist")
}

func TestLoadGlobalConfig_JSONFile(t *testing.T) {
	logger := zerolog.Nop()
	configFile := filepath.Join(t.TempDir(), "config.json")

	configData := `{
		"diff_config": {
			"similarity_threshold": 0.75,
			"granularity": "paragraph"
		},
		"batch_config": {
			"max_concurrent": 2
		}
	}`
	require.NoError(t, os.WriteFile(configFile, []byte(configData), 0644))

	cfg, err := LoadGlobalConfig(configFile, logger)

	require.NoError(t, err)
	assert.Equal(t, 0.75, cfg.DiffConfig.SimilarityThreshold)
	assert.Equal(t, "paragraph", cfg.DiffConfig.Granularity)
	assert.Equal(t, 2, cfg.BatchConfig.MaxConcurrent)
	// Untouched values keep their defaults
	assert.Equal(t, DefaultBoilerplate, cfg.DiffConfig.Boilerplate)
	assert.Equal(t, "auto", cfg.ExtractorConfig.HTMLMode)
}

func TestLoadGlobalConfig_YAMLFile(t *testing.T) {
	logger := zerolog.Nop()

	for _, ext := range []string{".yaml", ".yml"} {
		t.Run(ext, func(t *testing.T) {
			configFile := filepath.Join(t.TempDir(), "config"+ext)
			configData := `
diff_config:
  boilerplate:
    - "Electronically signed."
  normalize_unicode: false
storage_config:
  enabled: true
  sqlite_path: runs.db
log_config:
  log_level: debug
  log_format: json
`
			require.NoError(t, os.WriteFile(configFile, []byte(configData), 0644))

			cfg, err := LoadGlobalConfig(configFile, logger)

			require.NoError(t, err)
			assert.Equal(t, []string{"Electronically signed."}, cfg.DiffConfig.Boilerplate)
			assert.False(t, cfg.DiffConfig.NormalizeUnicode)
			assert.True(t, cfg.StorageConfig.Enabled)
			assert.Equal(t, "runs.db", cfg.StorageConfig.SQLitePath)
			assert.Equal(t, "debug", cfg.LogConfig.LogLevel)
			assert.Equal(t, "json", cfg.LogConfig.LogFormat)
		})
	}
}

func TestLoadGlobalConfig_InvalidJSON(t *testing.T) {
	logger := zerolog.Nop()
	configFile := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(configFile, []byte(`{"diff_config": {`), 0644))

	cfg, err := LoadGlobalConfig(configFile, logger)

	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config content")
}

func TestLoadGlobalConfig_FromEnvironment(t *testing.T) {
	logger := zerolog.Nop()
	configFile := filepath.Join(t.TempDir(), "env.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("reporter_config:\n  output_path: out.json\n"), 0644))
	t.Setenv(ConfigPathEnvVar, configFile)

	assert.Equal(t, configFile, GetConfigPath(""))

	cfg, err := LoadGlobalConfig("", logger)
	require.NoError(t, err)
	assert.Equal(t, "out.json", cfg.ReporterConfig.OutputPath)
}

func TestSaveGlobalConfig_RoundTrip(t *testing.T) {
	logger := zerolog.Nop()
	dir := t.TempDir()

	for _, name := range []string{"saved.yaml", "saved.json"} {
		t.Run(name, func(t *testing.T) {
			cfg := NewDefaultGlobalConfig()
			cfg.DiffConfig.SimilarityThreshold = 0.8
			path := filepath.Join(dir, "nested", name)

			require.NoError(t, SaveGlobalConfig(cfg, path, logger))

			loaded, err := LoadGlobalConfig(path, logger)
			require.NoError(t, err)
			assert.Equal(t, cfg, loaded)
		})
	}

	assert.Error(t, SaveGlobalConfig(nil, filepath.Join(dir, "nil.yaml"), logger))
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *GlobalConfig)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(cfg *GlobalConfig) {},
		},
		{
			name:    "word granularity rejected",
			mutate:  func(cfg *GlobalConfig) { cfg.DiffConfig.Granularity = "word" },
			wantErr: "rule 'granularity'",
		},
		{
			name:    "unknown granularity rejected",
			mutate:  func(cfg *GlobalConfig) { cfg.DiffConfig.Granularity = "chapter" },
			wantErr: "DiffConfig.Granularity",
		},
		{
			name:    "zero threshold rejected",
			mutate:  func(cfg *GlobalConfig) { cfg.DiffConfig.SimilarityThreshold = 0 },
			wantErr: "rule 'gt'",
		},
		{
			name:    "threshold above one rejected",
			mutate:  func(cfg *GlobalConfig) { cfg.DiffConfig.SimilarityThreshold = 1.5 },
			wantErr: "rule 'lte'",
		},
		{
			name:    "bad log level",
			mutate:  func(cfg *GlobalConfig) { cfg.LogConfig.LogLevel = "loud" },
			wantErr: "rule 'loglevel'",
		},
		{
			name:    "bad log format",
			mutate:  func(cfg *GlobalConfig) { cfg.LogConfig.LogFormat = "xml" },
			wantErr: "rule 'logformat'",
		},
		{
			name:    "bad html mode",
			mutate:  func(cfg *GlobalConfig) { cfg.ExtractorConfig.HTMLMode = "sometimes" },
			wantErr: "rule 'oneof'",
		},
		{
			name: "storage enabled without path",
			mutate: func(cfg *GlobalConfig) {
				cfg.StorageConfig.Enabled = true
				cfg.StorageConfig.SQLitePath = ""
			},
			wantErr: "rule 'required_if'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultGlobalConfig()
			tt.mutate(cfg)

			err := ValidateConfig(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), "configuration validation failed")
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	assert.Error(t, ValidateConfig(nil))
}

func TestDiffConfig_ToDifferConfig(t *testing.T) {
	dc := NewDefaultDiffConfig()
	dc.Granularity = "Paragraph"

	cfg, err := dc.ToDifferConfig()
	require.NoError(t, err)
	assert.Equal(t, differ.GranularityParagraph, cfg.Granularity)
	assert.Equal(t, DefaultDiffSimilarityThreshold, cfg.SimilarityThreshold)
	assert.Equal(t, DefaultBoilerplate, cfg.Boilerplate)

	cfg.Boilerplate[0] = "mutated"
	assert.NotEqual(t, "mutated", dc.Boilerplate[0])

	dc.Granularity = "chapter"
	_, err = dc.ToDifferConfig()
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrInvalidConfiguration)
}
