package naming

// FileTask pairs a source path with the path it will be renamed to, or the
// path a processed copy of it will be written to. It is built once by a
// planner and consumed once by whichever stage executes it.
type FileTask struct {
	Source string
	Target string
}

// Noop reports whether executing the task would leave the file where it is.
func (t FileTask) Noop() bool { return t.Source == t.Target }

// Targets returns the target paths of tasks in order.
func Targets(tasks []FileTask) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Target
	}
	return out
}
