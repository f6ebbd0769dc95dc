package ffx

import (
	"strconv"
	"strings"

	"github.com/backmassage/ffxrename/internal/config"
	"github.com/backmassage/ffxrename/internal/naming"
)

// Mode names the FidelityFX pass an invocation runs.
type Mode string

const (
	ModeCAS  Mode = "CAS"  // Contrast Adaptive Sharpening (the CLI's default mode).
	ModeEASU Mode = "EASU" // FSR 1.0 Edge-Adaptive Spatial Upsampling.
	ModeRCAS Mode = "RCAS" // FSR 1.0 Robust Contrast Adaptive Sharpening.
)

// Invocation is one batched run of the FidelityFX CLI.
type Invocation struct {
	Tool      string
	Mode      Mode
	Sharpness float64           // CAS and RCAS only.
	Scale     config.Resolution // EASU only.
	Pairs     []naming.FileTask // Source is read, Target is written.
}

// CASInvocation sharpens every pair's source into its target.
func CASInvocation(tool string, pairs []naming.FileTask, sharpness float64) Invocation {
	return Invocation{Tool: tool, Mode: ModeCAS, Sharpness: sharpness, Pairs: pairs}
}

// EASUInvocation upscales every pair's source to res.
func EASUInvocation(tool string, pairs []naming.FileTask, res config.Resolution) Invocation {
	return Invocation{Tool: tool, Mode: ModeEASU, Scale: res, Pairs: pairs}
}

// RCASInvocation runs the FSR sharpening pass with an attenuation in stops.
func RCASInvocation(tool string, pairs []naming.FileTask, stops float64) Invocation {
	return Invocation{Tool: tool, Mode: ModeRCAS, Sharpness: stops, Pairs: pairs}
}

// Args returns the argument vector (without the tool path): options first,
// then every input/output pair.
func (inv Invocation) Args() []string {
	args := make([]string, 0, 6+2*len(inv.Pairs))

	// --- Options ---
	switch inv.Mode {
	case ModeCAS:
		args = append(args, "-Sharpness", FormatSharpness(inv.Sharpness))
	case ModeEASU:
		args = append(args,
			"-Scale", strconv.Itoa(inv.Scale.Width), strconv.Itoa(inv.Scale.Height),
			"-Mode", string(ModeEASU),
		)
	case ModeRCAS:
		args = append(args,
			"-Sharpness", FormatSharpness(inv.Sharpness),
			"-Mode", string(ModeRCAS),
		)
	}

	// --- I/O pairs ---
	for _, p := range inv.Pairs {
		args = append(args, p.Source, p.Target)
	}
	return args
}

// CommandLine renders the tool and its options (not the file pairs) for
// display. Arguments containing spaces are quoted.
func (inv Invocation) CommandLine() string {
	args := inv.Args()
	opts := args[:len(args)-2*len(inv.Pairs)]
	parts := make([]string, 0, 1+len(opts))
	for _, a := range append([]string{inv.Tool}, opts...) {
		if strings.ContainsAny(a, " \t") {
			a = strconv.Quote(a)
		}
		parts = append(parts, a)
	}
	return strings.Join(parts, " ")
}

// FormatSharpness renders a sharpness value with the shortest exact form.
func FormatSharpness(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// RCASSharpness converts a CAS-style amount (0 = soft, 1 = sharpest) into
// the RCAS attenuation in stops the CLI expects (0 = sharpest, 2 = soft).
func RCASSharpness(amount float64) float64 {
	switch {
	case amount < 0:
		amount = 0
	case amount > 1:
		amount = 1
	}
	return 2 * (1 - amount)
}
