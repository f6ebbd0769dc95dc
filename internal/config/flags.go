package config

// This file implements the cobra command, CLI flags and help text.
// The short flags -h -d -i -o -r -s -u are the stable interface; the rest
// are long-form additions. Whether -i, -o, -s and -u were given is read from
// pflag's Changed state after parsing, so zero values stay meaningful.

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const examples = `  ffxrename -i 'OldName' -o 'NewName'
  ffxrename -d C:/FileDirectory -i 'OldName' -o 'NewName'
  ffxrename -d C:/FileDirectory -i 'OldName' -o 'NewName' -r
  ffxrename -d C:/FileDirectory -s 0.8
  ffxrename -d C:/FileDirectory -u 3840x2160
  ffxrename -d C:/FileDirectory -u 3840x2160 -s 0.6`

// negatedFlags holds flags that are applied to cfg after parsing.
type negatedFlags struct {
	noColor bool
}

// NewCommand builds the root command. Flags bind directly into cfg; the
// config file is layered beneath explicitly set flags in PreRunE, and cfg is
// validated before run is called with the command's context.
func NewCommand(cfg *Config, version, commit string, run func(ctx context.Context) error) *cobra.Command {
	var negated negatedFlags

	cmd := &cobra.Command{
		Use:   "ffxrename",
		Short: "Batch-rename image sequences and run FidelityFX CAS / FSR over them",
		Long: `Batch-rename image files in a directory, optionally reversing their frame
order, and run the FidelityFX command line tool over them for Contrast
Adaptive Sharpening (CAS) or Super Resolution 1.0 upscaling (EASU + RCAS).`,
		Example:       examples,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) > 0 {
				return &UsageError{Err: fmt.Errorf("unexpected argument %q", args[0])}
			}
			return nil
		},
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return finishFlags(cmd.Flags(), cfg, &negated)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}
			if !cfg.CheckOnly {
				if err := cfg.ValidateDir(); err != nil {
					return err
				}
			}
			return run(cmd.Context())
		},
	}
	cmd.SetVersionTemplate("ffxrename {{.Version}} (" + commit + ")\n")
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &UsageError{Err: err}
	})

	fs := cmd.Flags()
	fs.SortFlags = false
	defineRenameFlags(fs, cfg)
	defineFilterFlags(fs, cfg)
	defineDisplayFlags(fs, cfg, &negated)
	return cmd
}

// defineRenameFlags registers -d, -i, -o, -r.
func defineRenameFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.StringVarP(&cfg.Dir, "dir", "d", cfg.Dir, "directory to search & replace in")
	fs.StringVarP(&cfg.Search, "search", "i", cfg.Search, "input search string")
	fs.StringVarP(&cfg.Replace, "replace", "o", cfg.Replace, "string to be replaced with")
	fs.BoolVarP(&cfg.Reverse, "reverse", "r", false, "invert the file order, assuming FileName_FrameNumber.png, e.g. Frame_0001.png")
}

// defineFilterFlags registers -s, -u and --tool.
func defineFilterFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.Float64VarP(&cfg.SharpenAmount, "sharpen", "s", 0, "run FidelityFX Contrast Adaptive Sharpening (CAS) with the given sharpness on each image")
	fs.VarP(&resolutionValue{raw: &cfg.UpscaleResolution, res: &cfg.Resolution}, "upscale", "u", "run FidelityFX Super Resolution 1.0 to upscale to the given resolution, e.g. 2560x1440")
	fs.StringVar(&cfg.ToolPath, "tool", cfg.ToolPath, "path to the FidelityFX CLI executable")
}

// defineDisplayFlags registers dry-run, verbose, color, log, check, config and version.
func defineDisplayFlags(fs *pflag.FlagSet, cfg *Config, n *negatedFlags) {
	fs.BoolVarP(&cfg.DryRun, "dry-run", "n", false, "preview renames and tool invocations; change nothing")
	fs.BoolVarP(&cfg.Verbose, "verbose", "v", false, "verbose output; stream the tool's output")
	color := fs.VarPF(&colorModeValue{p: &cfg.ColorMode}, "color", "", "colored logs: auto | always | never")
	color.NoOptDefVal = string(ColorAlways)
	fs.BoolVar(&n.noColor, "no-color", false, "disable colored logs")
	fs.StringVarP(&cfg.LogFile, "log", "l", "", "append logs to file")
	fs.BoolVarP(&cfg.CheckOnly, "check", "c", false, "report whether the FidelityFX CLI is usable and exit")
	fs.StringVar(&cfg.ConfigFile, "config", "", "JSONC config file (default: ./"+DefaultConfigFile+" when present)")
	fs.BoolP("version", "V", false, "print version and exit")
}

// finishFlags records which operations were requested, applies negated
// flags, and layers the config file beneath anything set on the command line.
func finishFlags(fs *pflag.FlagSet, cfg *Config, n *negatedFlags) error {
	cfg.SearchSet = fs.Changed("search")
	cfg.ReplaceSet = fs.Changed("replace")
	cfg.Sharpen = fs.Changed("sharpen")
	cfg.Upscale = fs.Changed("upscale")
	if n.noColor {
		cfg.ColorMode = ColorNever
	}

	path, required := cfg.ConfigFile, true
	if path == "" {
		path, required = DefaultConfigFile, false
	}
	fc, err := loadFile(path, required)
	if err != nil {
		return &UsageError{Err: err}
	}
	if err := fc.apply(cfg, fs.Changed); err != nil {
		return &UsageError{Err: err}
	}

	cfg.Dir = NormalizeDirArg(cfg.Dir)
	return nil
}

// pflag.Value adapters for typed fields.

type resolutionValue struct {
	raw *string
	res *Resolution
}

func (r *resolutionValue) String() string {
	if r.raw == nil {
		return ""
	}
	return *r.raw
}

func (r *resolutionValue) Set(s string) error {
	res, err := ParseResolution(s)
	if err != nil {
		return err
	}
	*r.raw = s
	*r.res = res
	return nil
}

func (r *resolutionValue) Type() string { return "WIDTHxHEIGHT" }

type colorModeValue struct{ p *ColorMode }

func (c *colorModeValue) String() string {
	if c.p == nil {
		return ""
	}
	return string(*c.p)
}

func (c *colorModeValue) Set(s string) error {
	switch strings.ToLower(s) {
	case "auto":
		*c.p = ColorAuto
	case "always":
		*c.p = ColorAlways
	case "never":
		*c.p = ColorNever
	default:
		return fmt.Errorf("invalid color mode %q (use auto, always or never)", s)
	}
	return nil
}

func (c *colorModeValue) Type() string { return "mode" }
