package dust

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecentlyAccessed(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, "old", "new")

	past := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(root, "old"), past, past))

	since := time.Now().Add(-time.Hour)
	recent := RecentlyAccessed(root, NewPathSet("old", "new", "gone"), since)

	assert.True(t, recent.Contains("new"))
	assert.True(t, recent.Contains("gone"), "uninspectable files are kept")
	assert.False(t, recent.Contains("old"))
}
