package dust

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"
)

const (
	// WorkDirName is the tool's own working directory inside a swept root.
	WorkDirName = ".kic"
	// KeepMarkerName is a file sweep never relocates. Its presence also keeps
	// the enclosing directory in place, since the directory is never empty.
	KeepMarkerName = "kic.keep"
)

// PinnedNames are never walked nor relocated, hidden or not. A pinned entry
// disqualifies its directory from the emptiness analysis.
var PinnedNames = []string{WorkDirName, KeepMarkerName}

// IsHidden reports whether a base name is a dot entry other than "." and "..".
func IsHidden(name string) bool {
	return strings.HasPrefix(name, ".") && len(name) > 1 && name != ".."
}

func isPinned(name string) bool {
	return slices.Contains(PinnedNames, name)
}

// Walk returns every terminal file under root as a root-relative path.
// Hidden and pinned entries are skipped, and so is everything below them.
// Directories are traversed but not emitted; symlinks are not followed and
// count as files. Any read error aborts the walk.
func Walk(root string) (PathSet, error) {
	if root == "" {
		root = "."
	}
	var files PathSet
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}
		if name := d.Name(); IsHidden(name) || isPinned(name) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files.Add(rel)
		return nil
	})
	if err != nil {
		return PathSet{}, fmt.Errorf("%w %s: %w", ErrRootUnreadable, root, err)
	}
	return files, nil
}

// Exclude returns the walked paths that are not ignored.
func Exclude(walked, ignored PathSet) PathSet {
	return walked.Difference(ignored)
}
