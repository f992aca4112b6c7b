package config

// ReporterConfig defines configuration for writing run reports
type ReporterConfig struct {
	// OutputPath is the JSON report destination; "-" or empty means stdout.
	OutputPath string `json:"output_path,omitempty" yaml:"output_path,omitempty"`
	// GroupedOrder additionally emits each case's blocks grouped by kind.
	GroupedOrder bool `json:"grouped_order" yaml:"grouped_order"`
	Indent       bool `json:"indent" yaml:"indent"`
}

// NewDefaultReporterConfig creates default reporter configuration
func NewDefaultReporterConfig() ReporterConfig {
	return ReporterConfig{
		OutputPath:   DefaultReporterOutputPath,
		GroupedOrder: false,
		Indent:       true,
	}
}
