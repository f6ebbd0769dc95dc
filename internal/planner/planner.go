package planner

import (
	"fmt"

	"github.com/backmassage/ffxrename/internal/config"
	"github.com/backmassage/ffxrename/internal/naming"
)

// Build produces the Plan for a directory listing. This is the central
// decision point the pipeline calls once per run.
//
// Flow:
//  1. Match the search string when renaming was requested
//  2. Any match: BranchRename, build tasks, reverse targets if asked,
//     sharpen the renamed targets if asked
//  3. No match or no rename: BranchFilter over every image, upscale taking
//     precedence over sharpen
func Build(cfg *config.Config, names []string) *Plan {
	plan := &Plan{}

	// --- 1. Rename candidates ---
	if cfg.Renames() {
		plan.Candidates = naming.MatchSearch(names, cfg.Search)
	}

	// --- 2. Rename branch ---
	if len(plan.Candidates) > 0 {
		plan.Branch = BranchRename
		plan.Reason = fmt.Sprintf("%d file(s) match %q", len(plan.Candidates), cfg.Search)
		plan.Renames = naming.PlanRenames(cfg.Dir, plan.Candidates, cfg.Search, cfg.Replace)
		if cfg.Reverse {
			plan.Renames = naming.ReverseTargets(plan.Renames)
		}
		if cfg.Sharpen {
			plan.Filter = OpSharpen
			plan.FilterInputs = naming.Targets(plan.Renames)
		}
		if cfg.Upscale {
			plan.Notes = append(plan.Notes, "Upscale is not run on renamed files; run again without -i/-r to upscale.")
		}
		return plan
	}

	// --- 3. Filter branch ---
	plan.Branch = BranchFilter
	switch {
	case cfg.Renames():
		plan.Reason = fmt.Sprintf("no file matches %q", cfg.Search)
	default:
		plan.Reason = "no rename requested"
	}
	if cfg.Reverse {
		plan.Notes = append(plan.Notes, "Reverse order applies only to renamed files; ignored.")
	}
	switch {
	case cfg.Upscale:
		plan.Filter = OpUpscale
	case cfg.Sharpen:
		plan.Filter = OpSharpen
	}
	if plan.Filter != OpNone {
		plan.FilterInputs = naming.ImagePaths(cfg.Dir, names)
	}
	return plan
}
