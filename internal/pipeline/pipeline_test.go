package pipeline

import (
	"context"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/backmassage/ffxrename/internal/config"
	"github.com/backmassage/ffxrename/internal/logging"
	"github.com/backmassage/ffxrename/internal/naming"
	"github.com/backmassage/ffxrename/internal/term"
)

// --- Rename branch ---

func TestRun_Rename(t *testing.T) {
	dir := frames(t, "Frame_0001.png", "Frame_0002.png", "notes.txt")
	cfg := testConfig(dir)
	cfg.SearchSet, cfg.Search, cfg.Replace = true, "Frame", "Shot"

	stats, err := Run(context.Background(), cfg, testLogger(t, cfg))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.Renamed != 2 || stats.Failed != 0 {
		t.Errorf("stats = %+v, want 2 renamed", stats)
	}
	assertDir(t, dir, map[string]string{
		"Shot_0001.png": "Frame_0001.png",
		"Shot_0002.png": "Frame_0002.png",
		"notes.txt":     "notes.txt",
	})
}

func TestRun_ReverseInPlace(t *testing.T) {
	dir := frames(t, "Frame_0001.png", "Frame_0002.png", "Frame_0003.png")
	cfg := testConfig(dir)
	cfg.Reverse = true
	cfg.Replace = cfg.Search // what Validate does for -r alone

	stats, err := Run(context.Background(), cfg, testLogger(t, cfg))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.Renamed != 2 {
		t.Errorf("Renamed = %d, want 2 (middle frame keeps its name)", stats.Renamed)
	}
	assertDir(t, dir, map[string]string{
		"Frame_0001.png": "Frame_0003.png",
		"Frame_0002.png": "Frame_0002.png",
		"Frame_0003.png": "Frame_0001.png",
	})
}

func TestRun_RenameCollisionTouchesNothing(t *testing.T) {
	dir := frames(t, "Frame_0001.png", "Frame_0002.png", "Shot_0002.png")
	cfg := testConfig(dir)
	cfg.SearchSet, cfg.Search, cfg.Replace = true, "Frame", "Shot"

	_, err := Run(context.Background(), cfg, testLogger(t, cfg))
	var fe *config.FilesystemError
	if !errors.As(err, &fe) || !errors.Is(err, naming.ErrTargetExists) {
		t.Fatalf("err = %v, want FilesystemError wrapping ErrTargetExists", err)
	}
	if config.ExitCode(err) != config.ExitUsage {
		t.Errorf("ExitCode = %d, want %d", config.ExitCode(err), config.ExitUsage)
	}
	assertDir(t, dir, map[string]string{
		"Frame_0001.png": "Frame_0001.png",
		"Frame_0002.png": "Frame_0002.png",
		"Shot_0002.png":  "Shot_0002.png",
	})
}

func TestRun_EmptyNewNameTouchesNothing(t *testing.T) {
	dir := frames(t, "A_Frame.png", "Frame")
	cfg := testConfig(dir)
	cfg.SearchSet, cfg.Search, cfg.Replace = true, "Frame", ""

	stats, err := Run(context.Background(), cfg, testLogger(t, cfg))
	var fe *config.FilesystemError
	if !errors.As(err, &fe) || !errors.Is(err, naming.ErrInvalidName) {
		t.Fatalf("err = %v, want FilesystemError wrapping ErrInvalidName", err)
	}
	if stats.Renamed != 0 {
		t.Errorf("Renamed = %d, want 0", stats.Renamed)
	}
	assertDir(t, dir, map[string]string{
		"A_Frame.png": "A_Frame.png",
		"Frame":       "Frame",
	})
}

func TestRun_TargetIsDirectoryTouchesNothing(t *testing.T) {
	dir := frames(t, "Frame_0001.png")
	if err := os.Mkdir(filepath.Join(dir, "Shot_0001.png"), 0o755); err != nil {
		t.Fatal(err)
	}
	cfg := testConfig(dir)
	cfg.SearchSet, cfg.Search, cfg.Replace = true, "Frame", "Shot"

	_, err := Run(context.Background(), cfg, testLogger(t, cfg))
	if !errors.Is(err, naming.ErrTargetExists) {
		t.Fatalf("err = %v, want ErrTargetExists", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "Frame_0001.png")); err != nil {
		t.Errorf("source was moved: %v", err)
	}
}

func TestRun_PartialRenameCountsCompleted(t *testing.T) {
	dir := frames(t, "Frame_0001.png", "Frame_0002.png", "Frame_0003.png")
	tool, argsLog := fakeTool(t)
	cfg := testConfig(dir)
	cfg.SearchSet, cfg.Search, cfg.Replace = true, "Frame", "Shot"
	cfg.Sharpen, cfg.SharpenAmount = true, 0.5
	cfg.ToolPath = tool
	cfg.LogFile = filepath.Join(t.TempDir(), "run.log")

	failOn := filepath.Join(dir, "Frame_0003.png")
	rename = func(from, to string) error {
		if from == failOn {
			return &os.LinkError{Op: "rename", Old: from, New: to, Err: os.ErrPermission}
		}
		return os.Rename(from, to)
	}
	t.Cleanup(func() { rename = os.Rename })

	stats, err := Run(context.Background(), cfg, testLogger(t, cfg))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.Renamed != 2 || stats.Failed != 1 || stats.Processed != 0 {
		t.Errorf("stats = %+v, want 2 renamed, 1 failed, nothing processed", stats)
	}
	assertDir(t, dir, map[string]string{
		"Shot_0001.png":  "Frame_0001.png",
		"Shot_0002.png":  "Frame_0002.png",
		"Frame_0003.png": "Frame_0003.png",
	})
	if runs := toolRuns(t, argsLog); len(runs) != 0 {
		t.Errorf("filter ran after a failed rename: %v", runs)
	}
	b, _ := os.ReadFile(cfg.LogFile)
	for _, want := range []string{"Frame_0001.png -> ", "Frame_0002.png -> ", "Rename failed"} {
		if !strings.Contains(string(b), want) {
			t.Errorf("log missing %q:\n%s", want, b)
		}
	}
}

func TestRun_PartialSwapReportsParkedFiles(t *testing.T) {
	dir := frames(t, "a.png", "b.png")
	cfg := testConfig(dir)
	cfg.Reverse = true
	cfg.SearchSet, cfg.Search, cfg.Replace = true, ".png", ".png"
	cfg.LogFile = filepath.Join(t.TempDir(), "run.log")

	// Fail the first move out of a temporary name.
	rename = func(from, to string) error {
		if strings.HasPrefix(filepath.Base(from), naming.TempPrefix) {
			return &os.LinkError{Op: "rename", Old: from, New: to, Err: os.ErrPermission}
		}
		return os.Rename(from, to)
	}
	t.Cleanup(func() { rename = os.Rename })

	stats, err := Run(context.Background(), cfg, testLogger(t, cfg))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.Renamed != 0 || stats.Failed != 1 {
		t.Errorf("stats = %+v, want 0 renamed and 1 failed", stats)
	}
	b, _ := os.ReadFile(cfg.LogFile)
	if !strings.Contains(string(b), "2 file(s) left under temporary") {
		t.Errorf("parked files not reported:\n%s", b)
	}
}

func TestRun_LogFileIsPlainWithColors(t *testing.T) {
	dir := frames(t, "Frame_0001.png")
	cfg := testConfig(dir)
	cfg.SearchSet, cfg.Search, cfg.Replace = true, "Frame", "Shot"
	cfg.ColorMode = config.ColorAlways
	cfg.LogFile = filepath.Join(t.TempDir(), "run.log")
	t.Cleanup(func() { term.Configure(config.ColorNever) })

	if _, err := Run(context.Background(), cfg, testLogger(t, cfg)); err != nil {
		t.Fatalf("Run: %v", err)
	}
	b, err := os.ReadFile(cfg.LogFile)
	if err != nil {
		t.Fatal(err)
	}
	got := string(b)
	if strings.Contains(got, "\x1b") || strings.Contains(got, `\x1b`) {
		t.Errorf("log file contains escape codes:\n%s", got)
	}
	if !strings.Contains(got, "Frame_0001.png -> ") {
		t.Errorf("log file missing rename line:\n%s", got)
	}
}

func TestRun_DryRunTouchesNothing(t *testing.T) {
	dir := frames(t, "Frame_0001.png", "Frame_0002.png")
	tool, argsLog := fakeTool(t)
	cfg := testConfig(dir)
	cfg.SearchSet, cfg.Search, cfg.Replace = true, "Frame", "Shot"
	cfg.Sharpen, cfg.SharpenAmount = true, 0.5
	cfg.ToolPath = tool
	cfg.DryRun = true
	cfg.LogFile = filepath.Join(t.TempDir(), "run.log")

	stats, err := Run(context.Background(), cfg, testLogger(t, cfg))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	b, _ := os.ReadFile(cfg.LogFile)
	if !strings.Contains(string(b), "[DRY] "+filepath.ToSlash(filepath.Join(dir, "Frame_0002.png"))+" -> ") {
		t.Errorf("dry-run preview missing:\n%s", b)
	}
	if stats.Renamed != 2 || stats.Processed != 2 {
		t.Errorf("stats = %+v, want 2 planned renames and 2 planned outputs", stats)
	}
	assertDir(t, dir, map[string]string{
		"Frame_0001.png": "Frame_0001.png",
		"Frame_0002.png": "Frame_0002.png",
	})
	if runs := toolRuns(t, argsLog); len(runs) != 0 {
		t.Errorf("dry run started the tool: %v", runs)
	}
}

func TestRun_RenameThenSharpen(t *testing.T) {
	dir := frames(t, "Frame_0001.png", "Frame_0002.png")
	tool, argsLog := fakeTool(t)
	cfg := testConfig(dir)
	cfg.SearchSet, cfg.Search, cfg.Replace = true, "Frame", "Shot"
	cfg.Sharpen, cfg.SharpenAmount = true, 0.8
	cfg.ToolPath = tool

	stats, err := Run(context.Background(), cfg, testLogger(t, cfg))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	runs := toolRuns(t, argsLog)
	if len(runs) != 1 {
		t.Fatalf("got %d tool runs, want 1", len(runs))
	}
	want := []string{"-Sharpness", "0.8",
		filepath.Join(dir, "Shot_0001.png"), filepath.Join(dir, "_Shot_0001.png"),
		filepath.Join(dir, "Shot_0002.png"), filepath.Join(dir, "_Shot_0002.png")}
	if strings.Join(runs[0], "|") != strings.Join(want, "|") {
		t.Errorf("args = %q, want %q", runs[0], want)
	}
	if stats.Processed != 2 || stats.OutputBytes == 0 {
		t.Errorf("stats = %+v", stats)
	}
}

// --- Filter branch ---

func TestRun_NoMatchSharpensAllImages(t *testing.T) {
	dir := frames(t, "Frame_0001.png", "Frame_0002.png", "notes.txt")
	tool, argsLog := fakeTool(t)
	cfg := testConfig(dir)
	cfg.SearchSet, cfg.Search, cfg.Replace = true, "Shot", "Take"
	cfg.Sharpen, cfg.SharpenAmount = true, 0.8
	cfg.ToolPath = tool

	stats, err := Run(context.Background(), cfg, testLogger(t, cfg))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.Renamed != 0 || stats.Processed != 2 {
		t.Errorf("stats = %+v, want 0 renamed and 2 processed", stats)
	}
	want := []string{"-Sharpness", "0.8",
		filepath.Join(dir, "Frame_0001.png"), filepath.Join(dir, "_Frame_0001.png"),
		filepath.Join(dir, "Frame_0002.png"), filepath.Join(dir, "_Frame_0002.png")}
	runs := toolRuns(t, argsLog)
	if len(runs) != 1 || strings.Join(runs[0], "|") != strings.Join(want, "|") {
		t.Errorf("runs = %q, want one run %q", runs, want)
	}
}

func TestRun_Upscale(t *testing.T) {
	dir := frames(t, "Frame_0001.png", "Frame_0002.png")
	tool, argsLog := fakeTool(t)
	cfg := testConfig(dir)
	cfg.Upscale, cfg.UpscaleResolution = true, "1920x1080"
	cfg.ToolPath = tool

	stats, err := Run(context.Background(), cfg, testLogger(t, cfg))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := []string{"-Scale", "1920", "1080", "-Mode", "EASU",
		filepath.Join(dir, "Frame_0001.png"), filepath.Join(dir, "_Frame_0001.png"),
		filepath.Join(dir, "Frame_0002.png"), filepath.Join(dir, "_Frame_0002.png")}
	runs := toolRuns(t, argsLog)
	if len(runs) != 1 || strings.Join(runs[0], "|") != strings.Join(want, "|") {
		t.Errorf("runs = %q, want one run %q", runs, want)
	}
	if stats.Failed != 0 || stats.Processed != 2 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestRun_UpscaleStatusReadsDimensions(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "big.png"), 64, 48)
	writePNG(t, filepath.Join(dir, "small.png"), 16, 12)
	tool, _ := fakeTool(t)
	cfg := testConfig(dir)
	cfg.Upscale, cfg.UpscaleResolution = true, "32x24"
	cfg.ToolPath = tool
	cfg.DryRun = true
	cfg.LogFile = filepath.Join(t.TempDir(), "run.log")

	if _, err := Run(context.Background(), cfg, testLogger(t, cfg)); err != nil {
		t.Fatalf("Run: %v", err)
	}
	b, _ := os.ReadFile(cfg.LogFile)
	got := string(b)
	// os.ReadDir sorts by name, so big.png is the first input.
	if !strings.Contains(got, "64x48 -> 32x24") {
		t.Errorf("status line missing:\n%s", got)
	}
	if !strings.Contains(got, "1 image(s) already at or above 32x24: big.png") {
		t.Errorf("covered warning missing:\n%s", got)
	}
}

func TestRun_MissingToolCountsAsFailure(t *testing.T) {
	dir := frames(t, "Frame_0001.png")
	cfg := testConfig(dir)
	cfg.Sharpen, cfg.SharpenAmount = true, 1
	cfg.ToolPath = filepath.Join(dir, "FidelityFX_CLI.exe")

	stats, err := Run(context.Background(), cfg, testLogger(t, cfg))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.Failed != 1 || stats.OK() {
		t.Errorf("stats = %+v, want 1 failure", stats)
	}
	if _, err := os.Stat(filepath.Join(dir, "_Frame_0001.png")); !os.IsNotExist(err) {
		t.Error("no output should exist when the tool is missing")
	}
}

func TestRun_ToolFailure(t *testing.T) {
	dir := frames(t, "Frame_0001.png")
	tool, _ := fakeTool(t)
	t.Setenv("FFX_EXIT", "2")
	cfg := testConfig(dir)
	cfg.Sharpen, cfg.SharpenAmount = true, 1
	cfg.ToolPath = tool

	stats, err := Run(context.Background(), cfg, testLogger(t, cfg))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.Failed != 1 {
		t.Errorf("Failed = %d, want 1", stats.Failed)
	}
}

func TestRun_MissingDirectory(t *testing.T) {
	cfg := testConfig(filepath.Join(t.TempDir(), "missing"))
	cfg.SearchSet = true
	_, err := Run(context.Background(), cfg, testLogger(t, cfg))
	var fe *config.FilesystemError
	if !errors.As(err, &fe) {
		t.Errorf("err = %v, want FilesystemError", err)
	}
}

// --- Helpers ---

// fakeToolScript stands in for the FidelityFX CLI: it records its argument
// vector to $FFX_ARGS_LOG (one per line, "--" after each run), copies each
// input to its output and exits with $FFX_EXIT.
const fakeToolScript = `#!/bin/sh
for a in "$@"; do printf '%s\n' "$a" >> "$FFX_ARGS_LOG"; done
echo -- >> "$FFX_ARGS_LOG"
while [ $# -gt 0 ]; do
  case "$1" in
    -Sharpness|-Mode) shift 2 ;;
    -Scale) shift 3 ;;
    *) cp "$1" "$2" || exit 3; shift 2 ;;
  esac
done
exit ${FFX_EXIT:-0}
`

func fakeTool(t *testing.T) (tool, argsLog string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake tool is a POSIX shell script")
	}
	dir := t.TempDir()
	tool = filepath.Join(dir, "FidelityFX_CLI")
	if err := os.WriteFile(tool, []byte(fakeToolScript), 0o755); err != nil {
		t.Fatal(err)
	}
	argsLog = filepath.Join(dir, "args.log")
	t.Setenv("FFX_ARGS_LOG", argsLog)
	t.Setenv("FFX_EXIT", "0")
	return tool, argsLog
}

func toolRuns(t *testing.T, argsLog string) [][]string {
	t.Helper()
	b, err := os.ReadFile(argsLog)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		t.Fatal(err)
	}
	var runs [][]string
	var cur []string
	for _, line := range strings.Split(strings.TrimSuffix(string(b), "\n"), "\n") {
		if line == "--" {
			runs = append(runs, cur)
			cur = nil
			continue
		}
		cur = append(cur, line)
	}
	return runs
}

func testConfig(dir string) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Dir = dir
	cfg.ColorMode = config.ColorNever
	return &cfg
}

func testLogger(t *testing.T, cfg *config.Config) *logging.Logger {
	t.Helper()
	log, err := logging.NewLogger(cfg)
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	t.Cleanup(func() { log.Close() })
	return log
}

// frames creates a directory holding files whose content is their own name.
func frames(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, n := range names {
		if err := os.WriteFile(filepath.Join(dir, n), []byte(n), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

// assertDir checks dir holds exactly the given name -> content entries.
func assertDir(t *testing.T, dir string, want map[string]string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != len(want) {
		var got []string
		for _, e := range entries {
			got = append(got, e.Name())
		}
		t.Fatalf("directory has %v, want %d entries", got, len(want))
	}
	for name, content := range want {
		b, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Errorf("%s: %v", name, err)
			continue
		}
		if string(b) != content {
			t.Errorf("%s holds %q, want %q", name, b, content)
		}
	}
}

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, image.NewGray(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
}
