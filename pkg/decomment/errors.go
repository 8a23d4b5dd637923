package decomment

import "errors"

// Fatal errors returned by Process before any file is touched. Check with
// errors.Is; per-file failures are never surfaced through these.
var (
	// ErrPathNotFound is returned when the input path does not exist.
	ErrPathNotFound = errors.New("path does not exist")

	// ErrInvalidPathType is returned when the input path is neither a
	// regular file nor a directory.
	ErrInvalidPathType = errors.New("path is neither a file nor a directory")

	// ErrOutputDir is returned when the output directory cannot be created.
	ErrOutputDir = errors.New("cannot create output directory")
)
