package naming

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
)

// Sentinel errors carried by [CollisionError].
var (
	ErrDuplicateTarget = errors.New("another file is already being renamed to this name")
	ErrTargetExists    = errors.New("a file with this name already exists")
	ErrInvalidName     = errors.New("new name is empty or leaves the directory")
)

// CollisionError describes a rename that cannot be carried out without
// destroying or misplacing a file.
type CollisionError struct {
	Task  FileTask
	Other string // the competing source, or the existing file
	Err   error
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("%s -> %s: %v (%s)",
		filepath.Base(e.Task.Source), filepath.Base(e.Task.Target), e.Err, filepath.Base(e.Other))
}

func (e *CollisionError) Unwrap() error { return e.Err }

// Schedule returns the rename steps that carry out tasks without
// overwriting any file. existing lists every path currently in the directory.
//
// A target owned by two tasks, equal to an existing entry that is not itself
// being renamed, or outside the source's directory (an empty substituted
// name yields the directory itself) is rejected before anything is touched. No-op tasks
// are dropped. When some target is also another task's source (chains and
// cycles, e.g. reversing a sequence in place) every file is first moved to a
// unique temporary name and then to its target.
func Schedule(tasks []FileTask, existing []string) ([]FileTask, error) {
	owners := make(map[string]string, len(tasks)) // target path -> source that claims it
	sources := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		sources[t.Source] = true
	}
	onDisk := make(map[string]bool, len(existing))
	for _, p := range existing {
		onDisk[p] = true
	}

	var pending []FileTask
	overlap := false
	for _, t := range tasks {
		if filepath.Dir(t.Target) != filepath.Dir(t.Source) {
			return nil, &CollisionError{Task: t, Other: t.Target, Err: ErrInvalidName}
		}
		if owner, claimed := owners[t.Target]; claimed {
			return nil, &CollisionError{Task: t, Other: owner, Err: ErrDuplicateTarget}
		}
		owners[t.Target] = t.Source
		if t.Noop() {
			continue
		}
		switch {
		case sources[t.Target]:
			overlap = true
		case onDisk[t.Target]:
			return nil, &CollisionError{Task: t, Other: t.Target, Err: ErrTargetExists}
		}
		pending = append(pending, t)
	}

	if !overlap {
		return pending, nil
	}

	taken := make(map[string]bool, len(onDisk)+len(owners))
	for p := range onDisk {
		taken[p] = true
	}
	for p := range owners {
		taken[p] = true
	}

	steps := make([]FileTask, 0, 2*len(pending))
	temps := make([]string, len(pending))
	for i, t := range pending {
		temps[i] = tempName(t.Source, i, taken)
		taken[temps[i]] = true
		steps = append(steps, FileTask{Source: t.Source, Target: temps[i]})
	}
	for i, t := range pending {
		steps = append(steps, FileTask{Source: temps[i], Target: t.Target})
	}
	return steps, nil
}

// TempPrefix starts the hidden names used by two-phase renames.
const TempPrefix = ".ffxrename-"

// tempName returns a hidden sibling of source that is not in taken.
func tempName(source string, i int, taken map[string]bool) string {
	dir, base := filepath.Dir(source), filepath.Base(source)
	name := filepath.Join(dir, TempPrefix+strconv.Itoa(i)+"-"+base)
	for n := 1; taken[name]; n++ {
		name = filepath.Join(dir, TempPrefix+strconv.Itoa(i)+"-"+strconv.Itoa(n)+"-"+base)
	}
	return name
}
