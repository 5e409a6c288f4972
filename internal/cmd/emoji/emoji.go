// Package emoji provides symbol constants for CLI output.
package emoji

// Status symbols used in report tables.
const (
	// Success marks an accepted row or a completed call.
	Success = "✓"

	// Error marks a failed call.
	Error = "✗"

	// Warning marks a dropped tag.
	Warning = "!"

	// Optional marks a skipped row.
	Optional = "-"
)
