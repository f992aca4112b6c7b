package reporter

const (
	// StdoutPath selects standard output as the report destination
	StdoutPath = "-"

	// File permissions
	DirPermissions  = 0755
	FilePermissions = 0644

	jsonIndent = "  "
)
