// Package ffx builds and executes FidelityFX CLI invocations.
//
// The CLI takes flag-style options followed by repeated input/output path
// pairs, so every operation is a single batched process per stage:
//
//	CAS:  <tool> -Sharpness <s> <in> <out> ...
//	EASU: <tool> -Scale <w> <h> -Mode EASU <in> <out> ...
//	RCAS: <tool> -Sharpness <r> -Mode RCAS <in> <out> ...
//
// The tool is run from an argument vector (never through a shell) and its
// output is treated as opaque: it is streamed or captured for display, and
// only the exit status decides success.
package ffx
