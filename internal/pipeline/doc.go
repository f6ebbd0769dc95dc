// Package pipeline runs one batch: list the directory, build the plan,
// rename, then hand the selected images to the FidelityFX CLI and report a
// summary.
//
// Types:
//   - RunStats (Listed, Renamed, Processed, Failed, OutputBytes, Elapsed)
//
// Functions:
//   - Run(ctx, cfg, log) → RunStats, error
//     naming.ReadListing → planner.Build → rename (collision-checked,
//     logged per file) → sharpen or upscale → summary.
package pipeline
