package ffx

import (
	"errors"
	"fmt"
	"os"
)

// MissingDependencyError reports that the FidelityFX CLI is not at the
// configured path. Operations return it without starting a process.
type MissingDependencyError struct {
	Path string
}

func (e *MissingDependencyError) Error() string {
	return "FidelityFX command line program doesn't exist: " + e.Path
}

// ToolError reports a tool run that failed to start or exited non-zero.
type ToolError struct {
	Mode     Mode
	ExitCode int    // -1 when the process never ran to completion.
	Output   string // Combined stdout/stderr.
	Err      error
}

func (e *ToolError) Error() string {
	if e.ExitCode >= 0 {
		return fmt.Sprintf("FidelityFX %s exited with status %d", e.Mode, e.ExitCode)
	}
	return fmt.Sprintf("FidelityFX %s: %v", e.Mode, e.Err)
}

func (e *ToolError) Unwrap() error { return e.Err }

// LookTool returns a MissingDependencyError unless path names an existing
// regular file.
func LookTool(path string) error {
	fi, err := os.Stat(path)
	if err != nil || fi.IsDir() {
		return &MissingDependencyError{Path: path}
	}
	return nil
}

// IsMissingTool reports whether err is (or wraps) a MissingDependencyError.
func IsMissingTool(err error) bool {
	var md *MissingDependencyError
	return errors.As(err, &md)
}
