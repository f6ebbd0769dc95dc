package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/backmassage/ffxrename/internal/config"
	"github.com/backmassage/ffxrename/internal/display"
	"github.com/backmassage/ffxrename/internal/ffx"
	"github.com/backmassage/ffxrename/internal/logging"
	"github.com/backmassage/ffxrename/internal/naming"
	"github.com/backmassage/ffxrename/internal/planner"
	"github.com/backmassage/ffxrename/internal/probe"
	"github.com/backmassage/ffxrename/internal/term"
)

// tailLines is how much captured tool output is replayed on failure.
const tailLines = 20

// rename is swapped out by tests.
var rename = os.Rename

// Run is the top-level batch entry point. It lists the directory, builds
// the plan, renames, runs the selected filter and returns aggregate stats.
//
// The returned error is non-nil only when the run could not start or had to
// stop before touching disk: an unreadable directory or a rename plan that
// would overwrite files (*config.FilesystemError). Failures of individual
// stages are counted in RunStats.Failed.
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger) (RunStats, error) {
	var stats RunStats
	start := time.Now()

	logParameters(cfg, log)

	listing, err := naming.ReadListing(cfg.Dir)
	if err != nil {
		return stats, &config.FilesystemError{Path: cfg.Dir, Err: err}
	}
	stats.Listed = len(listing.Files)
	log.Info("Files in directory: %d", stats.Listed)

	plan := planner.Build(cfg, listing.Files)
	stats.Candidates = len(plan.Candidates)
	if cfg.Renames() {
		log.Info("Files to rename: %d", stats.Candidates)
	}
	log.Debug("Plan: %s branch (%s), filter: %s", plan.Branch, plan.Reason, plan.Filter)
	for _, note := range plan.Notes {
		log.Warn("%s", note)
	}

	// --- Rename branch ---
	renamed := true
	switch {
	case plan.Branch == planner.BranchRename:
		renamed, err = renameFiles(cfg, log, plan, listing, &stats)
		if err != nil {
			return stats, err
		}
	case cfg.Renames():
		log.Warn("No matching files found to rename, skipping renaming.")
	}

	// --- Filter ---
	switch {
	case plan.Filter == planner.OpNone:
	case !renamed:
		log.Warn("Skipping %s: renaming did not complete", plan.Filter)
	case ctx.Err() != nil:
		log.Warn("Interrupted")
	case len(plan.FilterInputs) == 0:
		log.Warn("No %s images found in %s, nothing to %s", naming.ImageExt, cfg.Dir, plan.Filter)
	default:
		runFilter(ctx, cfg, log, plan, &stats)
	}

	stats.Elapsed = time.Since(start)
	logSummary(cfg, log, &stats)
	return stats, nil
}

// renameFiles executes plan.Renames collision-free. Each task is logged and
// counted as soon as its file reaches its final name. It returns false when
// a rename failed part-way; files already moved keep their new names.
func renameFiles(cfg *config.Config, log *logging.Logger, plan *planner.Plan, listing *naming.Listing, stats *RunStats) (bool, error) {
	steps, err := naming.Schedule(plan.Renames, listing.Paths())
	if err != nil {
		return false, &config.FilesystemError{Path: cfg.Dir, Err: err}
	}

	log.Info("Renaming...")
	if len(steps) > len(plan.Renames) {
		log.Debug("Targets overlap sources; renaming through %d temporary names", len(steps)/2)
	}

	final := make(map[string]naming.FileTask, len(plan.Renames)) // target -> task
	var moves []naming.FileTask
	for _, t := range plan.Renames {
		if t.Noop() {
			log.Debug("Unchanged: %s", display.SlashPath(t.Source))
			continue
		}
		final[t.Target] = t
		moves = append(moves, t)
	}

	if cfg.DryRun {
		for _, line := range display.RenderTasks(moves) {
			log.Info("[DRY] %s", line)
		}
		stats.Renamed += len(moves)
		return true, nil
	}

	parked := make(map[string]bool) // temporary names currently holding a file
	for _, s := range steps {
		if err := rename(s.Source, s.Target); err != nil {
			log.Error("Rename failed: %v", err)
			if len(parked) > 0 {
				log.Warn("%d file(s) left under temporary %s* names in %s", len(parked), naming.TempPrefix, cfg.Dir)
			}
			stats.Failed++
			return false, nil
		}
		delete(parked, s.Source)
		if t, ok := final[s.Target]; ok {
			log.Info("%s", display.TaskLine(t))
			stats.Renamed++
		} else {
			parked[s.Target] = true
		}
	}
	return true, nil
}

// runFilter hands plan.FilterInputs to the FidelityFX CLI.
func runFilter(ctx context.Context, cfg *config.Config, log *logging.Logger, plan *planner.Plan, stats *RunStats) {
	opts := execOptions(cfg, log)
	inputs := plan.FilterInputs

	var batch *ffx.Batch
	var err error
	switch plan.Filter {
	case planner.OpSharpen:
		log.Info("Running AMD FidelityFX Contrast Adaptive Sharpening...")
		batch, err = ffx.Sharpen(ctx, cfg.ToolPath, inputs, cfg.SharpenAmount, opts)
	case planner.OpUpscale:
		log.Info("Running AMD FidelityFX Super Resolution...")
		logUpscaleStatus(cfg, log, inputs)
		batch, err = ffx.Upscale(ctx, cfg.ToolPath, inputs, cfg.UpscaleResolution, cfg.SharpenAmount, opts)
	}

	if err != nil {
		stats.Failed++
		var te *ffx.ToolError
		switch {
		case ffx.IsMissingTool(err):
			log.Error("%v", err)
		case errors.Is(err, config.ErrInvalidResolution):
			log.Error("FidelityFX Super Resolution: %v", err)
		case errors.As(err, &te):
			if ctx.Err() != nil {
				log.Warn("Interrupted")
				return
			}
			log.Error("%v", err)
			if !cfg.Verbose {
				logOutputTail(log, te.Output)
			}
		default:
			log.Error("%s failed: %v", plan.Filter, err)
		}
		return
	}

	stats.Processed = len(batch.Outputs)
	if cfg.DryRun {
		log.Success("[DRY] Would write %d image(s)", len(batch.Outputs))
		return
	}
	for _, o := range batch.Outputs {
		if fi, err := os.Stat(o.Target); err == nil {
			stats.OutputBytes += fi.Size()
		} else {
			log.Warn("Expected output missing: %s", display.SlashPath(o.Target))
		}
	}
	log.Success("Wrote %d image(s) (%s)", len(batch.Outputs), display.FormatBytes(stats.OutputBytes))
}

// execOptions wires tool invocations into the logger and terminal. Verbose
// runs stream tool output; otherwise a spinner covers the wait and the
// output is only replayed on failure.
func execOptions(cfg *config.Config, log *logging.Logger) ffx.ExecOptions {
	opts := ffx.ExecOptions{
		DryRun: cfg.DryRun,
		Announce: func(inv ffx.Invocation) {
			log.Info("%s", inv.CommandLine())
			for _, p := range inv.Pairs {
				log.Info("    %s", display.TaskLine(p))
			}
		},
	}
	if cfg.Verbose {
		opts.Output = os.Stderr
	} else if term.IsTerminal(os.Stdout) {
		opts.Wait = display.RunWithSpinner
	}
	return opts
}

// logUpscaleStatus prints "<in> -> <out>" using the first image's header
// and warns about inputs that already cover the target resolution.
func logUpscaleStatus(cfg *config.Config, log *logging.Logger, inputs []string) {
	res, err := config.ParseResolution(cfg.UpscaleResolution)
	if err != nil || len(inputs) == 0 {
		return
	}

	in := "unknown"
	if w, h, err := probe.Dimensions(inputs[0]); err == nil {
		in = config.Resolution{Width: w, Height: h}.String()
	} else {
		log.Debug("Cannot read image header: %v", err)
	}
	log.Info("    %s -> %s", in, res)
	if cfg.SharpenAmount != 0 {
		log.Info("    Sharpness=%s | RCAS Sharpness=%s",
			ffx.FormatSharpness(cfg.SharpenAmount),
			ffx.FormatSharpness(ffx.RCASSharpness(cfg.SharpenAmount)))
	}

	var covered []string
	for _, p := range inputs {
		if w, h, err := probe.Dimensions(p); err == nil && w >= res.Width && h >= res.Height {
			covered = append(covered, filepath.Base(p))
		}
	}
	if len(covered) > 0 {
		log.Warn("%d image(s) already at or above %s: %s", len(covered), res, strings.Join(covered, ", "))
	}
}

func logOutputTail(log *logging.Logger, output string) {
	if strings.TrimSpace(output) == "" {
		return
	}
	log.Error("Last FidelityFX output:")
	lines := strings.Split(strings.TrimSpace(output), "\n")
	start := 0
	if len(lines) > tailLines {
		start = len(lines) - tailLines
	}
	for _, l := range lines[start:] {
		log.Error("  %s", strings.TrimRight(l, "\r"))
	}
}

// --- Logging helpers ---

func logParameters(cfg *config.Config, log *logging.Logger) {
	log.Info("PARAMETERS")
	log.Info("    InputDirectory  = %s", cfg.Dir)
	if cfg.Renames() {
		log.Info("    StringToSearch  = %s", cfg.Search)
		log.Info("    StringToReplace = %s", cfg.Replace)
	}
	if cfg.Reverse {
		log.Info("    Reverse Order   = true")
	}
	if cfg.Sharpen {
		log.Info("    FFX_CAS Sharpen = %s", ffx.FormatSharpness(cfg.SharpenAmount))
	}
	if cfg.Upscale {
		log.Info("    FSR Upscale     = %s", cfg.UpscaleResolution)
	}
	if cfg.Filters() {
		log.Debug("    Tool            = %s", cfg.ToolPath)
	}
	if cfg.DryRun {
		log.Info("    Dry run         = true")
	}
}

func logSummary(cfg *config.Config, log *logging.Logger, stats *RunStats) {
	log.Info("==============================")
	summary := fmt.Sprintf("Done in %s: %d renamed, %d processed, %d failed",
		display.FormatDuration(stats.Elapsed), stats.Renamed, stats.Processed, stats.Failed)
	switch {
	case !stats.OK():
		log.Warn("%s", summary)
	case cfg.DryRun:
		log.Info("%s (dry run)", summary)
	default:
		log.Success("%s", summary)
	}
}
