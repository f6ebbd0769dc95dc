// Package term provides color state, shared lipgloss styles and terminal
// detection.
//
// Styles are package-level variables because multiple packages (logging,
// display) need them for output formatting. [Configure] resolves the color
// mode once during startup; when colors are disabled the lipgloss color
// profile is set to ASCII, making every Render a plain passthrough.
package term

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/backmassage/ffxrename/internal/config"
)

// Shared styles. Colors are ANSI indices so they degrade with the profile.
var (
	Red     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	Green   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	Yellow  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	Blue    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	Magenta = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
	Cyan    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	Dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

var enabled bool

// isTerminal is swapped out by tests.
var isTerminal = IsTerminal

// Configure resolves the color mode and sets the lipgloss color profile.
// Call once during startup (from [logging.NewLogger]).
func Configure(mode config.ColorMode) {
	enabled = resolve(mode)
	switch {
	case !enabled:
		lipgloss.SetColorProfile(termenv.Ascii)
	case mode == config.ColorAlways:
		lipgloss.SetColorProfile(termenv.ANSI256)
	}
}

// Enabled reports whether colors are currently active.
func Enabled() bool { return enabled }

// resolve determines whether colors should be enabled based on the configured
// mode, TTY detection, and the NO_COLOR env var (https://no-color.org).
// Auto mode looks at stderr, where the console log goes.
func resolve(mode config.ColorMode) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default: // ColorAuto
		return isTerminal(os.Stderr) &&
			os.Getenv("NO_COLOR") == "" &&
			strings.ToLower(os.Getenv("TERM")) != "dumb"
	}
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
