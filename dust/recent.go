package dust

import (
	"os"
	"path/filepath"
	"time"
)

// RecentlyAccessed returns the members of files, relative to root, that were
// accessed at or after since. A file that cannot be inspected is treated as
// recent so that a sweep leaves it alone.
func RecentlyAccessed(root string, files PathSet, since time.Time) PathSet {
	if root == "" {
		root = "."
	}
	var recent PathSet
	for rel := range files.Iterate {
		info, err := os.Lstat(filepath.Join(root, rel))
		if err != nil || !accessTime(info).Before(since) {
			recent.Add(rel)
		}
	}
	return recent
}
