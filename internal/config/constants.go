package config

const (
	// Diff Defaults
	DefaultDiffSimilarityThreshold = 0.60
	DefaultDiffGranularity         = "sentence"
	DefaultDiffMaxInputBytes       = 1 << 20
	DefaultDiffNormalizeUnicode    = true

	// Extractor Defaults
	DefaultExtractorHTMLMode      = "auto"
	DefaultExtractorMaxInputBytes = 20 << 20

	// Batch Defaults
	DefaultBatchMaxConcurrent = 8

	// Storage Defaults
	DefaultStorageSQLitePath = "database/reportdiff.db"

	// Reporter Defaults
	DefaultReporterOutputPath = "-"

	// Config file environment override
	ConfigPathEnvVar = "REPORTDIFF_CONFIG_PATH"
)

// DefaultBoilerplate lists the attestation lines attending physicians append to
// finalized reports. They never count as a change.
var DefaultBoilerplate = []string{
	"As the attending physician, I have personally reviewed the images, interpreted and/or supervised the study or procedure, and agree with the wording of the above report.",
	"As the Attending radiologist, I have personally reviewed the images, interpreted the study, and agree with the wording of the above report by Sterling M. Jones",
}
