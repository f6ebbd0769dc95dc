// Package check provides system diagnostics (--check mode) and pre-pipeline
// dependency validation (CheckDeps) for the FidelityFX command line program.
package check

import (
	"os"
	"path/filepath"

	"github.com/backmassage/ffxrename/internal/config"
	"github.com/backmassage/ffxrename/internal/ffx"
	"github.com/backmassage/ffxrename/internal/naming"
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(string, ...interface{})
}

// RunCheck runs the --check flow: prints where the FidelityFX CLI is
// expected and whether it is there, the working directory, and how many
// images the target directory holds. Informational only; it does not stop
// on failure.
func RunCheck(cfg *config.Config, log Logger) {
	log.Info("=== System Check ===")

	checkTool(cfg.ToolPath, log)
	checkWorkingDir(log)
	checkTargetDir(cfg.Dir, log)
}

// checkTool reports whether the configured tool path is a regular file.
func checkTool(path string, log Logger) {
	log.Info("FidelityFX CLI: %s", path)
	fi, err := os.Stat(path)
	switch {
	case err != nil:
		log.Error("FidelityFX CLI not found (sharpen and upscale will fail)")
	case fi.IsDir():
		log.Error("FidelityFX CLI path is a directory")
	default:
		log.Success("FidelityFX CLI present (%d bytes)", fi.Size())
	}
}

func checkWorkingDir(log Logger) {
	wd, err := os.Getwd()
	if err != nil {
		log.Warn("Could not determine working directory: %v", err)
		return
	}
	log.Info("Working directory: %s", wd)
}

// checkTargetDir counts the images a filter run would pick up in dir.
func checkTargetDir(dir string, log Logger) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = dir
	}
	log.Info("Target directory: %s", abs)
	listing, err := naming.ReadListing(dir)
	if err != nil {
		log.Error("Cannot read target directory: %v", err)
		return
	}
	n := len(naming.ImagePaths(dir, listing.Files))
	if n == 0 {
		log.Warn("No %s images in target directory", naming.ImageExt)
		return
	}
	log.Success("%d %s image(s) in target directory", n, naming.ImageExt)
}

// CheckDeps is the pre-pipeline validation: when sharpen or upscale was
// requested the FidelityFX CLI must exist at cfg.ToolPath. Rename-only runs
// need nothing external. Returns a *ffx.MissingDependencyError on failure.
func CheckDeps(cfg *config.Config) error {
	if !cfg.Filters() {
		return nil
	}
	return ffx.LookTool(cfg.ToolPath)
}
