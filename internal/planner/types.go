package planner

import "github.com/backmassage/ffxrename/internal/naming"

// Branch is one of the two mutually exclusive run paths.
type Branch int

const (
	// BranchRename renames the matched files and optionally sharpens the
	// renamed results.
	BranchRename Branch = iota
	// BranchFilter runs upscale or sharpen over every image in the directory.
	BranchFilter
)

func (b Branch) String() string {
	if b == BranchRename {
		return "rename"
	}
	return "filter"
}

// Operation is the filter a plan runs after (or instead of) renaming.
type Operation int

const (
	OpNone Operation = iota
	OpSharpen
	OpUpscale
)

func (o Operation) String() string {
	switch o {
	case OpSharpen:
		return "sharpen"
	case OpUpscale:
		return "upscale"
	default:
		return "none"
	}
}

// Plan holds every decision for one run. It is produced by Build and
// consumed by the pipeline; nothing in it has touched disk yet.
type Plan struct {
	Branch Branch
	Reason string

	// Rename branch.
	Candidates []string          // matched names, listing order
	Renames    []naming.FileTask // after reversal when requested

	// Filter stage.
	Filter       Operation
	FilterInputs []string // full paths handed to the tool

	// Requests the chosen branch does not honor, logged as warnings.
	Notes []string
}

// HasFilter reports whether the plan runs the external tool.
func (p *Plan) HasFilter() bool {
	return p.Filter != OpNone && len(p.FilterInputs) > 0
}
