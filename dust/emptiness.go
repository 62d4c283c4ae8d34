package dust

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// PotentiallyEmptyDirs returns the directories under root, root itself
// included as ".", that hold no file and no hidden entry once every path in
// phantoms is treated as already removed. A directory whose only children
// are such directories qualifies too.
//
// The tree is visited breadth first. Every non-hidden, non-pinned subdirectory is a
// candidate until a disqualifying entry is found in it or below it; finding
// one removes the directory and climbs through its ancestors until one is
// already gone. A directory that cannot be listed is disqualified.
func PotentiallyEmptyDirs(root string, phantoms PathSet) PathSet {
	if root == "" {
		root = "."
	}
	candidates := NewPathSet(".")
	queue := []string{"."}

	for len(queue) > 0 {
		dir := queue[0]
		queue = queue[1:]

		entries, err := os.ReadDir(filepath.Join(root, dir))
		if err != nil {
			disqualify(&candidates, dir)
			continue
		}
		for _, entry := range entries {
			rel := filepath.Join(dir, entry.Name())
			if phantoms.Contains(rel) {
				continue
			}
			if IsHidden(entry.Name()) || isPinned(entry.Name()) || !entry.IsDir() {
				disqualify(&candidates, dir)
				continue
			}
			candidates.Add(rel)
			queue = append(queue, rel)
		}
	}
	return candidates
}

// disqualify drops dir and then each ancestor until one is already absent.
func disqualify(candidates *PathSet, dir string) {
	for candidates.Remove(dir) && dir != "." {
		dir = filepath.Dir(dir)
	}
}

// Depth is the number of path elements in a root-relative path; "." is 0.
func Depth(path string) int {
	path = Normalize(path)
	if path == "." {
		return 0
	}
	return strings.Count(path, string(filepath.Separator)) + 1
}

// ByDescendingDepth orders dirs deepest first, so every directory comes
// before its ancestors. Ties are broken lexically.
func ByDescendingDepth(dirs PathSet) []string {
	out := dirs.Sorted()
	slices.SortStableFunc(out, func(a, b string) int {
		return Depth(b) - Depth(a)
	})
	return out
}
