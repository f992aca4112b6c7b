package config

import (
	"github.com/aleister1102/reportdiff/internal/common"
	"github.com/aleister1102/reportdiff/internal/differ"
)

// DiffConfig defines configuration for report diffing
type DiffConfig struct {
	Boilerplate         []string `json:"boilerplate,omitempty" yaml:"boilerplate,omitempty"`
	SimilarityThreshold float64  `json:"similarity_threshold,omitempty" yaml:"similarity_threshold,omitempty" validate:"gt=0,lte=1"`
	Granularity         string   `json:"granularity,omitempty" yaml:"granularity,omitempty" validate:"granularity"`
	MaxInputBytes       int      `json:"max_input_bytes,omitempty" yaml:"max_input_bytes,omitempty" validate:"min=0"`
	NormalizeUnicode    bool     `json:"normalize_unicode" yaml:"normalize_unicode"`
}

// NewDefaultDiffConfig creates default diff configuration
func NewDefaultDiffConfig() DiffConfig {
	return DiffConfig{
		Boilerplate:         append([]string(nil), DefaultBoilerplate...),
		SimilarityThreshold: DefaultDiffSimilarityThreshold,
		Granularity:         DefaultDiffGranularity,
		MaxInputBytes:       DefaultDiffMaxInputBytes,
		NormalizeUnicode:    DefaultDiffNormalizeUnicode,
	}
}

// ToDifferConfig converts the file section into the engine configuration
func (dc DiffConfig) ToDifferConfig() (differ.DiffConfig, error) {
	granularity, err := differ.ParseGranularity(dc.Granularity)
	if err != nil {
		return differ.DiffConfig{}, common.NewConfigurationError("diff_config", "granularity", err.Error())
	}
	return differ.DiffConfig{
		Boilerplate:         append([]string(nil), dc.Boilerplate...),
		SimilarityThreshold: dc.SimilarityThreshold,
		Granularity:         granularity,
		MaxInputBytes:       dc.MaxInputBytes,
		NormalizeUnicode:    dc.NormalizeUnicode,
	}, nil
}
