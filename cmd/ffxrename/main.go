// Command ffxrename is the CLI entrypoint for the batch image renamer.
//
// It parses flags, validates the options and target directory, and either
// runs diagnostics (--check) or the rename / sharpen / upscale pipeline.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/backmassage/ffxrename/internal/check"
	"github.com/backmassage/ffxrename/internal/config"
	"github.com/backmassage/ffxrename/internal/display"
	"github.com/backmassage/ffxrename/internal/logging"
	"github.com/backmassage/ffxrename/internal/pipeline"
)

// version and commit are injected at build time via -ldflags.
var (
	version = "1.0.0"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Cancel the context on SIGINT/SIGTERM so a running tool process is
	// killed instead of orphaned.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	code := config.ExitOK
	cfg := config.DefaultConfig()
	cmd := config.NewCommand(&cfg, version, commit, func(ctx context.Context) error {
		log, err := logging.NewLogger(&cfg)
		if err != nil {
			return err
		}
		defer log.Close()

		// Logger available: all output goes through log from here on.
		display.PrintBanner(os.Stdout)

		if cfg.CheckOnly {
			check.RunCheck(&cfg, log)
			return nil
		}

		if cfg.DryRun {
			log.Warn("DRY RUN: no files will be renamed or written")
		}
		if err := check.CheckDeps(&cfg); err != nil {
			log.Warn("%v", err)
		}

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigCh)
		go func() {
			<-sigCh
			log.Warn("Received interrupt, stopping FidelityFX...")
			cancel()
		}()

		stats, err := pipeline.Run(ctx, &cfg, log)
		if err != nil {
			log.Error("%v", err)
			code = config.ExitCode(err)
			return nil
		}
		if !stats.OK() {
			code = config.ExitFailure
		}
		return nil
	})

	if err := cmd.ExecuteContext(ctx); err != nil {
		// The logger may not exist yet, so errors go straight to stderr.
		fmt.Fprintf(os.Stderr, "ffxrename: %v\n", err)
		var ue *config.UsageError
		if errors.As(err, &ue) {
			cmd.SetOut(os.Stderr)
			cmd.Usage()
		}
		return config.ExitCode(err)
	}
	return code
}
