package genome

import "errors"

// Error kinds surfaced by the pipeline. Callers classify with errors.Is.
var (
	// ErrInvalidArgument marks bad or missing CLI input. Fatal before any
	// network call.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrAuthentication marks a rejected token. Fatal.
	ErrAuthentication = errors.New("authentication failed")
	// ErrNotFound marks a narrative that does not resolve to an accessible
	// workspace. Fatal.
	ErrNotFound = errors.New("workspace not found")
	// ErrExport marks a single genome whose export call failed or returned
	// an unexpected payload. Non-fatal, the run continues.
	ErrExport = errors.New("export failed")
)
