package extractor

// HTML conversion modes
const (
	HTMLModeAuto   = "auto"
	HTMLModeAlways = "always"
	HTMLModeNever  = "never"
)

// Skip reasons reported for incomplete cases
const (
	ReasonMissingResident  = "missing resident report"
	ReasonMissingAttending = "missing attending report"
	ReasonMissingBoth      = "missing resident and attending reports"
)
