// Package config holds runtime configuration: defaults, the optional JSONC
// config file, CLI flag parsing, and validation.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	// DefaultSearch is the search string used when -i is not given.
	DefaultSearch = "Frame"
	// DefaultToolName is the FidelityFX CLI executable expected in the working directory.
	DefaultToolName = "FidelityFX_CLI.exe"
	// DefaultConfigFile is read from the working directory when --config is not given.
	DefaultConfigFile = "ffxrename.jsonc"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stderr is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Resolution is a target image size in pixels.
type Resolution struct {
	Width  int
	Height int
}

// String renders r in the WIDTHxHEIGHT form accepted by -u.
func (r Resolution) String() string {
	return fmt.Sprintf("%dx%d", r.Width, r.Height)
}

// IsZero reports whether r is unset.
func (r Resolution) IsZero() bool { return r.Width == 0 && r.Height == 0 }

// ParseResolution parses "WIDTHxHEIGHT". Both parts must be positive base-10
// integers; anything else yields an error wrapping [ErrInvalidResolution].
func ParseResolution(s string) (Resolution, error) {
	tokens := strings.Split(s, "x")
	if len(tokens) != 2 {
		return Resolution{}, fmt.Errorf("%w %q (use WIDTHxHEIGHT, e.g. 3840x2160)", ErrInvalidResolution, s)
	}
	w, errW := strconv.Atoi(tokens[0])
	h, errH := strconv.Atoi(tokens[1])
	if errW != nil || errH != nil || w <= 0 || h <= 0 {
		return Resolution{}, fmt.Errorf("%w %q (width and height must be positive whole numbers)", ErrInvalidResolution, s)
	}
	return Resolution{Width: w, Height: h}, nil
}

// Config holds all runtime settings. It is populated by [DefaultConfig], then
// the config file, then CLI flags, and is read-only once [Config.Validate]
// has passed.
type Config struct {
	// Target directory (-d). Defaults to the working directory.
	Dir string

	// Rename.
	Search     string // -i; default "Frame".
	Replace    string // -o; default "".
	SearchSet  bool   // -i was given.
	ReplaceSet bool   // -o was given.
	Reverse    bool   // -r

	// Filters.
	Sharpen           bool    // -s was given.
	SharpenAmount     float64 // CAS sharpness; also drives RCAS after upscale.
	Upscale           bool    // -u was given.
	UpscaleResolution string  // Raw -u value, kept for the upscale invocation.
	Resolution        Resolution

	// External FidelityFX CLI. Default: <cwd>/FidelityFX_CLI.exe.
	ToolPath string

	// Behavior, display and logging.
	DryRun     bool
	Verbose    bool
	ColorMode  ColorMode
	LogFile    string
	CheckOnly  bool
	ConfigFile string
}

// DefaultConfig returns a Config with the built-in defaults, resolved
// against the current working directory.
func DefaultConfig() Config {
	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}
	return Config{
		Dir:       wd,
		Search:    DefaultSearch,
		Replace:   "",
		ToolPath:  filepath.Join(wd, DefaultToolName),
		ColorMode: ColorAuto,
	}
}

// Renames reports whether the rename stage was requested (-i or -r).
func (c *Config) Renames() bool { return c.SearchSet || c.Reverse }

// Filters reports whether an external filter was requested (-s or -u).
func (c *Config) Filters() bool { return c.Sharpen || c.Upscale }

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// Validate checks that at least one operation was requested and that the
// upscale resolution parses. Reverse without -i keeps the matched names and
// only reverses their order, so the replacement defaults to the search string.
// In CheckOnly mode no operation is required.
func (c *Config) Validate() error {
	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return &UsageError{Err: fmt.Errorf("invalid color mode %q (use auto, always or never)", c.ColorMode)}
	}

	if c.CheckOnly {
		return nil
	}
	if !c.Renames() && !c.Filters() {
		return &UsageError{Err: ErrNoOperation}
	}
	if c.SearchSet && c.Search == "" {
		return &UsageError{Err: ErrEmptySearch}
	}
	if c.Upscale {
		res, err := ParseResolution(c.UpscaleResolution)
		if err != nil {
			return &UsageError{Err: err}
		}
		c.Resolution = res
	}
	if c.Reverse && !c.SearchSet && !c.ReplaceSet {
		c.Replace = c.Search
	}
	return nil
}

// ValidateDir ensures the target directory exists and is a directory.
func (c *Config) ValidateDir() error {
	fi, err := os.Stat(c.Dir)
	if err != nil {
		return &FilesystemError{Path: c.Dir, Err: ErrDirNotFound}
	}
	if !fi.IsDir() {
		return &FilesystemError{Path: c.Dir, Err: ErrNotADirectory}
	}
	return nil
}
