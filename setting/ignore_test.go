package setting

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ttokutake/kic/dust"
)

func TestReadIgnoreTrimsAndDropsBlankLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), IgnoreFileName)
	require.NoError(t, os.WriteFile(path, []byte("  b/c \n\n./a\na\n"), 0o644))

	ig, err := ReadIgnore(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", filepath.Join("b", "c")}, ig.Entries())
}

func TestIgnoreSaveIsSorted(t *testing.T) {
	path := filepath.Join(t.TempDir(), IgnoreFileName)
	require.NoError(t, NewIgnore(dust.NewPathSet("z", "a", "m/n")).Save(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a\nm/n\nz\n", string(content))
}

func TestIgnoreAddOnlyFiles(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "dir"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "dir", "f"), nil, 0o644))
	require.NoError(t, os.Symlink(filepath.Join(root, "dir"), filepath.Join(root, "link")))

	ig := NewIgnore(dust.PathSet{})
	skipped := ig.Add(root, "./dir/f", "dir", "missing", "../outside", filepath.Join(root, "dir", "f"), "link")

	assert.Equal(t, []string{filepath.Join("dir", "f"), "link"}, ig.Entries())
	assert.Equal(t, []string{"dir", "missing", "../outside"}, skipped)
}

func TestIgnoreRemoveAndClear(t *testing.T) {
	ig := NewIgnore(dust.NewPathSet("a", "b"))

	missing := ig.Remove(".", "./a", "c")
	assert.Equal(t, []string{"b"}, ig.Entries())
	assert.Equal(t, []string{"c"}, missing)

	ig.Replace(dust.NewPathSet("x", "y"))
	assert.Equal(t, 2, ig.Len())

	ig.Clear()
	assert.Equal(t, 0, ig.Len())
}
