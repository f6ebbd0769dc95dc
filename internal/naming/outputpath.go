package naming

import "path/filepath"

// ProcessedPrefix is prepended to the base name of every filter output.
const ProcessedPrefix = "_"

// ProcessedPath returns the output path for a filtered image: the same
// directory, with the base name prefixed.
//
//	frames/Frame_0001.png -> frames/_Frame_0001.png
func ProcessedPath(path string) string {
	return ProcessedPathIn(filepath.Dir(path), path)
}

// ProcessedPathIn is ProcessedPath with the output placed in dir instead.
func ProcessedPathIn(dir, path string) string {
	return filepath.Join(dir, ProcessedPrefix+filepath.Base(path))
}

// ProcessedTasks maps each input onto its processed output path.
func ProcessedTasks(files []string) []FileTask {
	tasks := make([]FileTask, len(files))
	for i, f := range files {
		tasks[i] = FileTask{Source: f, Target: ProcessedPath(f)}
	}
	return tasks
}
