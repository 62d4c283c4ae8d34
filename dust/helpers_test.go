package dust

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// makeTree creates the given root-relative entries. Names ending in "/" are
// directories; anything else is a file whose content is its own path.
func makeTree(t *testing.T, root string, entries ...string) {
	t.Helper()
	for _, e := range entries {
		p := filepath.Join(root, filepath.FromSlash(e))
		if strings.HasSuffix(e, "/") {
			require.NoError(t, os.MkdirAll(p, 0o755))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(e), 0o644))
	}
}

// recordingExecutor wraps Apply and records the order of directory removals.
type recordingExecutor struct {
	Apply
	removed []string
	failOn  map[string]error
}

func (r *recordingExecutor) Rename(src, dst string) error {
	if err, ok := r.failOn[src]; ok {
		return err
	}
	return r.Apply.Rename(src, dst)
}

func (r *recordingExecutor) RemoveDir(path string) error {
	r.removed = append(r.removed, path)
	return r.Apply.RemoveDir(path)
}

func (r *recordingExecutor) RemoveAll(path string) error {
	if err, ok := r.failOn[path]; ok {
		return err
	}
	return r.Apply.RemoveAll(path)
}
