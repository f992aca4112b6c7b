package config

import "github.com/aleister1102/reportdiff/internal/common/batchprocessor"

// BatchConfig defines configuration for per-case worker pool processing
type BatchConfig struct {
	MaxConcurrent int `json:"max_concurrent,omitempty" yaml:"max_concurrent,omitempty" validate:"omitempty,min=1,max=256"`
}

// NewDefaultBatchConfig creates default batch configuration
func NewDefaultBatchConfig() BatchConfig {
	return BatchConfig{
		MaxConcurrent: DefaultBatchMaxConcurrent,
	}
}

// ToBatchProcessorConfig converts BatchConfig to batchprocessor.BatchProcessorConfig
func (bc BatchConfig) ToBatchProcessorConfig() batchprocessor.BatchProcessorConfig {
	return batchprocessor.BatchProcessorConfig{
		MaxConcurrent: bc.GetEffectiveMaxConcurrent(),
	}
}

// GetEffectiveMaxConcurrent returns the effective MaxConcurrent value
func (bc BatchConfig) GetEffectiveMaxConcurrent() int {
	if bc.MaxConcurrent <= 0 {
		return DefaultBatchMaxConcurrent
	}
	return bc.MaxConcurrent
}
