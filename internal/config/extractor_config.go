package config

// ExtractorConfig defines configuration for case extraction
type ExtractorConfig struct {
	// HTMLMode controls HTML-to-text conversion: auto, always or never.
	HTMLMode      string `json:"html_mode,omitempty" yaml:"html_mode,omitempty" validate:"omitempty,oneof=auto always never"`
	MaxInputBytes int64  `json:"max_input_bytes,omitempty" yaml:"max_input_bytes,omitempty" validate:"min=0"`
	FindingsFile  string `json:"findings_file,omitempty" yaml:"findings_file,omitempty"`
}

// NewDefaultExtractorConfig creates default extractor configuration
func NewDefaultExtractorConfig() ExtractorConfig {
	return ExtractorConfig{
		HTMLMode:      DefaultExtractorHTMLMode,
		MaxInputBytes: DefaultExtractorMaxInputBytes,
	}
}
