package config

import (
	"errors"
	"fmt"
)

// Exit codes. Usage and filesystem errors map to 255 (exit(-1) as seen by a
// shell); stage failures during a run map to 1.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 255
)

// Sentinel errors wrapped by [UsageError] and [FilesystemError].
var (
	ErrNoOperation       = errors.New("invalid input: specify a name to replace with -i, reverse order with -r, sharpen with -s or upscale with -u")
	ErrEmptySearch       = errors.New("search string (-i) must not be empty")
	ErrInvalidResolution = errors.New("invalid image dimensions")
	ErrDirNotFound       = errors.New("directory does not exist")
	ErrNotADirectory     = errors.New("not a directory")
)

// UsageError reports bad or missing command-line arguments. The caller
// prints usage and exits with [ExitUsage].
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string { return e.Err.Error() }
func (e *UsageError) Unwrap() error { return e.Err }

// FilesystemError reports a problem with the target directory or the files in it.
type FilesystemError struct {
	Path string
	Err  error
}

func (e *FilesystemError) Error() string { return fmt.Sprintf("%s: %v", e.Path, e.Err) }
func (e *FilesystemError) Unwrap() error { return e.Err }

// ExitCode maps an error returned from flag parsing or validation to a
// process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var ue *UsageError
	var fe *FilesystemError
	if errors.As(err, &ue) || errors.As(err, &fe) {
		return ExitUsage
	}
	return ExitFailure
}
