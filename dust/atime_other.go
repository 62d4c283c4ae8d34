//go:build !linux && !darwin

package dust

import (
	"io/fs"
	"time"
)

// Access times are not portable; fall back to the modification time.
func accessTime(info fs.FileInfo) time.Time {
	return info.ModTime()
}
