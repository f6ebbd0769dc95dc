package pipeline

import "time"

// RunStats tracks what a batch run did.
type RunStats struct {
	Listed      int // regular files in the directory
	Candidates  int // files matching the search string
	Renamed     int
	Processed   int // images handed to the FidelityFX CLI
	Failed      int // stages that failed (rename, missing tool, tool exit)
	OutputBytes int64
	Elapsed     time.Duration
}

// OK reports whether every stage that ran succeeded.
func (s *RunStats) OK() bool {
	return s.Failed == 0
}
