package naming

// ReverseTargets returns a copy of tasks in which task i takes the target
// originally computed for task n-1-i. Sources keep their positions, so for
// files named Name_####.png the frame contents are relabeled back to front.
// Applying it twice restores the original mapping.
func ReverseTargets(tasks []FileTask) []FileTask {
	n := len(tasks)
	out := make([]FileTask, n)
	for i, t := range tasks {
		out[i] = FileTask{Source: t.Source, Target: tasks[n-1-i].Target}
	}
	return out
}
