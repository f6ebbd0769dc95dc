package naming

import (
	"os"
	"path/filepath"
)

// Listing is one read of the entries directly inside a directory.
type Listing struct {
	Dir   string
	Files []string // regular files, in os.ReadDir order
	Other []string // subdirectories, symlinks and special entries
}

// ReadListing reads dir without recursing. Only Files take part in renaming
// and filtering; Other is kept so renames never land on those names.
func ReadListing(dir string) (*Listing, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	l := &Listing{Dir: dir, Files: make([]string, 0, len(entries))}
	for _, e := range entries {
		if e.Type().IsRegular() {
			l.Files = append(l.Files, e.Name())
		} else {
			l.Other = append(l.Other, e.Name())
		}
	}
	return l, nil
}

// Paths returns every entry joined with Dir, files first.
func (l *Listing) Paths() []string {
	out := make([]string, 0, len(l.Files)+len(l.Other))
	for _, n := range l.Files {
		out = append(out, filepath.Join(l.Dir, n))
	}
	for _, n := range l.Other {
		out = append(out, filepath.Join(l.Dir, n))
	}
	return out
}
