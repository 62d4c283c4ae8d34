package setting

import (
	"fmt"
	"path/filepath"
	"slices"
)

// CheckRunningPlace refuses system directories. The match is exact: a
// directory below a banned one is allowed.
func CheckRunningPlace(dir string) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", dir, err)
	}
	if slices.Contains(bannedDirs, filepath.Clean(abs)) {
		return fmt.Errorf("%w: %s", ErrBannedDir, abs)
	}
	return nil
}
