package display

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/backmassage/ffxrename/internal/naming"
)

// FormatBytes returns a human-readable size (B, KiB, MiB, GiB, TiB, PiB).
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	suffixes := []string{"KiB", "MiB", "GiB", "TiB", "PiB", "EiB"}
	if exp >= len(suffixes) {
		exp = len(suffixes) - 1
		div = 1
		for i := 0; i <= exp; i++ {
			div *= unit
		}
	}
	return fmt.Sprintf("%.1f %s", float64(bytes)/float64(div), suffixes[exp])
}

// FormatDuration formats a duration for the run summary (e.g. "234ms", "1.2s", "2m05s").
func FormatDuration(d time.Duration) string {
	switch {
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	default:
		m := int(d / time.Minute)
		s := int((d % time.Minute) / time.Second)
		return fmt.Sprintf("%dm%02ds", m, s)
	}
}

// SlashPath renders a path with forward slashes on every platform.
func SlashPath(p string) string {
	return filepath.ToSlash(p)
}

// TaskLine renders one task as "source -> target". The text is left
// unstyled because it also goes to the log file.
func TaskLine(t naming.FileTask) string {
	return SlashPath(t.Source) + " -> " + SlashPath(t.Target)
}

// RenderTasks renders tasks one line each, source names padded to a common
// width so the arrows line up.
func RenderTasks(tasks []naming.FileTask) []string {
	width := 0
	for _, t := range tasks {
		if n := len(SlashPath(t.Source)); n > width {
			width = n
		}
	}
	lines := make([]string, len(tasks))
	for i, t := range tasks {
		lines[i] = fmt.Sprintf("%-*s -> %s", width, SlashPath(t.Source), SlashPath(t.Target))
	}
	return lines
}
