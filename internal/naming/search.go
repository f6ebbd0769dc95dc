package naming

import (
	"path/filepath"
	"strings"
)

// ImageExt is the extension (lowercase) of files handed to the filters when
// nothing was renamed.
const ImageExt = ".png"

// MatchSearch returns the names that contain search as a literal substring,
// preserving listing order.
func MatchSearch(names []string, search string) []string {
	var out []string
	for _, n := range names {
		if strings.Contains(n, search) {
			out = append(out, n)
		}
	}
	return out
}

// Substitute replaces every literal occurrence of search in name.
func Substitute(name, search, replace string) string {
	return strings.ReplaceAll(name, search, replace)
}

// PlanRenames builds one task per candidate name in dir. Callers pass the
// output of [MatchSearch]; names not containing search map onto themselves.
func PlanRenames(dir string, candidates []string, search, replace string) []FileTask {
	tasks := make([]FileTask, 0, len(candidates))
	for _, name := range candidates {
		tasks = append(tasks, FileTask{
			Source: filepath.Join(dir, name),
			Target: filepath.Join(dir, Substitute(name, search, replace)),
		})
	}
	return tasks
}

// IsImage reports whether name has the image extension, case-insensitively.
func IsImage(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ImageExt)
}

// ImagePaths returns dir-joined paths of the image files in names.
func ImagePaths(dir string, names []string) []string {
	var out []string
	for _, n := range names {
		if IsImage(n) {
			out = append(out, filepath.Join(dir, n))
		}
	}
	return out
}
