// Package naming turns directory listings into rename and output plans.
//
// Types:
//   - FileTask (one rename, or one processed-image production)
//
// Functions:
//   - MatchSearch / Substitute / PlanRenames: literal find & replace on
//     file names (no regex), every occurrence replaced.
//   - ReverseTargets: reassigns targets in reverse positional order so
//     frame sequences are renumbered back to front.
//   - ProcessedTasks: "name.png" -> "_name.png" beside the input.
//   - Schedule: orders renames so no existing file is overwritten, using
//     temporary names when targets and sources overlap.
package naming
