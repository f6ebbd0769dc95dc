package ffx

import (
	"bytes"
	"context"
	"io"
	"os/exec"
)

// ExecResult holds the outcome of a single tool invocation.
type ExecResult struct {
	ExitCode int
	Output   string
	Err      error
}

// ExecOptions controls how invocations are run and reported.
type ExecOptions struct {
	// DryRun announces invocations without starting any process.
	DryRun bool
	// Output, when set, receives the tool's stdout and stderr as they are
	// produced; they are always captured as well.
	Output io.Writer
	// Announce is called before each invocation runs.
	Announce func(inv Invocation)
	// Wait wraps the blocking wait on the process, e.g. with a spinner.
	Wait func(title string, run func() error) error
}

// Execute runs inv and waits for it to exit. stdin is closed; stdout and
// stderr are merged into the captured output and tee'd to opts.Output. There
// is no timeout; ctx only cancels the process on interrupt.
func Execute(ctx context.Context, inv Invocation, opts ExecOptions) ExecResult {
	cmd := exec.CommandContext(ctx, inv.Tool, inv.Args()...)

	var buf bytes.Buffer
	var w io.Writer = &buf
	if opts.Output != nil {
		w = io.MultiWriter(&buf, opts.Output)
	}
	cmd.Stdout = w
	cmd.Stderr = w

	err := cmd.Run()
	res := ExecResult{ExitCode: -1, Output: buf.String()}
	if cmd.ProcessState != nil {
		res.ExitCode = cmd.ProcessState.ExitCode()
	}
	if err != nil {
		res.Err = &ToolError{Mode: inv.Mode, ExitCode: res.ExitCode, Output: res.Output, Err: err}
	}
	return res
}

// run announces inv and, unless dry-running, executes it under opts.Wait.
func (opts ExecOptions) run(ctx context.Context, inv Invocation, title string) error {
	if opts.Announce != nil {
		opts.Announce(inv)
	}
	if opts.DryRun {
		return nil
	}
	do := func() error { return Execute(ctx, inv, opts).Err }
	if opts.Wait != nil {
		return opts.Wait(title, do)
	}
	return do()
}
