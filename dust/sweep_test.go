package dust

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sweepNow = time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)

func sweepFixture(t *testing.T, entries ...string) (root, warehouse string) {
	t.Helper()
	root = t.TempDir()
	warehouse = filepath.Join(root, WorkDirName, "warehouse")
	makeTree(t, root, append([]string{".kic/warehouse/"}, entries...)...)
	return root, warehouse
}

func TestSweepScenario(t *testing.T) {
	root, warehouse := sweepFixture(t, "a/f1", "a/b/f2")

	res, err := Sweep(SweepOptions{
		Root:      root,
		Warehouse: warehouse,
		Ignore:    NewPathSet("a/f1"),
		Now:       sweepNow,
		Executor:  Apply{},
	})
	require.NoError(t, err)

	box := NewBox(warehouse, sweepNow)
	assert.Equal(t, []string{"a/b/f2"}, res.MovedFiles)
	assert.Equal(t, []string{"a/b"}, res.MovedDirs)
	assert.Empty(t, res.Failures)
	assert.NotEmpty(t, res.RunID)

	assert.FileExists(t, filepath.Join(root, "a", "f1"))
	assert.FileExists(t, box.Mirror("a/b/f2"))
	assert.NoDirExists(t, filepath.Join(root, "a", "b"))
	assert.DirExists(t, box.Mirror("a/b"))
	assert.DirExists(t, filepath.Join(root, "a"))

	content, err := os.ReadFile(box.Mirror("a/b/f2"))
	require.NoError(t, err)
	assert.Equal(t, "a/b/f2", string(content))

	log, err := os.ReadFile(box.LogPath(SweepLogName))
	require.NoError(t, err)
	assert.Contains(t, string(log), "==== sweep indeed run="+res.RunID)
	assert.Contains(t, string(log), `MOVE_FILE "a/b/f2"`)
	assert.Contains(t, string(log), `MOVE_DIR "a/b"`)
}

func TestSweepEmptiesWholeTree(t *testing.T) {
	root, warehouse := sweepFixture(t, "a/f1", "a/b/f2", "c/")

	res, err := Sweep(SweepOptions{Root: root, Warehouse: warehouse, Now: sweepNow, Executor: Apply{}})
	require.NoError(t, err)

	assert.Equal(t, []string{"a/b/f2", "a/f1"}, res.MovedFiles)
	assert.Equal(t, []string{"a/b", "a", "c"}, res.MovedDirs)

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, WorkDirName, entries[0].Name())
}

func TestSweepIsIdempotent(t *testing.T) {
	root, warehouse := sweepFixture(t, "a/f1", "a/b/f2", "keep/kic.keep", "x/.hidden")

	opts := SweepOptions{Root: root, Warehouse: warehouse, Now: sweepNow, Executor: Apply{}}
	first, err := Sweep(opts)
	require.NoError(t, err)
	require.NotEmpty(t, first.MovedFiles)

	second, err := Sweep(opts)
	require.NoError(t, err)
	assert.Empty(t, second.Targets)
	assert.Empty(t, second.MovedFiles)
	assert.Empty(t, second.MovedDirs)
	assert.FileExists(t, filepath.Join(root, "keep", "kic.keep"))
	assert.FileExists(t, filepath.Join(root, "x", ".hidden"))
}

func TestSweepDryRunMatchesRealRun(t *testing.T) {
	entries := []string{"a/f1", "a/b/f2", "c/d/", "e/f3", "e/.keepme"}
	planRoot, planWarehouse := sweepFixture(t, entries...)
	realRoot, realWarehouse := sweepFixture(t, entries...)

	var echo bytes.Buffer
	planned, err := Sweep(SweepOptions{
		Root: planRoot, Warehouse: planWarehouse, Now: sweepNow, Executor: Plan{}, Echo: &echo,
	})
	require.NoError(t, err)
	assert.True(t, planned.DryRun)

	// Nothing changed on disk, not even the box.
	assert.FileExists(t, filepath.Join(planRoot, "a", "b", "f2"))
	assert.NoDirExists(t, NewBox(planWarehouse, sweepNow).RootPath)
	assert.Contains(t, echo.String(), `MOVE_DIR "a/b"`)

	done, err := Sweep(SweepOptions{Root: realRoot, Warehouse: realWarehouse, Now: sweepNow, Executor: Apply{}})
	require.NoError(t, err)

	assert.Equal(t, done.Targets, planned.Targets)
	assert.Equal(t, done.MovedFiles, planned.MovedFiles)
	assert.Equal(t, done.MovedDirs, planned.MovedDirs)
}

func TestSweepRemovesDeepestFirst(t *testing.T) {
	root, warehouse := sweepFixture(t, "a/b/c/f", "a/x/")

	exec := &recordingExecutor{}
	_, err := Sweep(SweepOptions{Root: root, Warehouse: warehouse, Now: sweepNow, Executor: exec})
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(root, "a", "b", "c"),
		filepath.Join(root, "a", "b"),
		filepath.Join(root, "a", "x"),
		filepath.Join(root, "a"),
	}, exec.removed)
}

func TestSweepContinuesPastFailures(t *testing.T) {
	root, warehouse := sweepFixture(t, "a/stuck", "b/f")

	exec := &recordingExecutor{failOn: map[string]error{
		filepath.Join(root, "a", "stuck"): errors.New("permission denied"),
	}}
	res, err := Sweep(SweepOptions{Root: root, Warehouse: warehouse, Now: sweepNow, Executor: exec})
	require.NoError(t, err)

	assert.Equal(t, []string{"b/f"}, res.MovedFiles)
	assert.Equal(t, []string{"b"}, res.MovedDirs)
	require.Len(t, res.Failures, 1)
	assert.Equal(t, EventSkip, res.Failures[0].Kind)
	assert.Equal(t, "a/stuck", res.Failures[0].Path)
	assert.FileExists(t, filepath.Join(root, "a", "stuck"))
}

func TestSweepOverwritesStagedFile(t *testing.T) {
	root, warehouse := sweepFixture(t, "a/f")
	box := NewBox(warehouse, sweepNow)
	makeTree(t, box.DustPath, "a/f")
	require.NoError(t, os.WriteFile(box.Mirror("a/f"), []byte("old"), 0o644))

	_, err := Sweep(SweepOptions{Root: root, Warehouse: warehouse, Now: sweepNow, Executor: Apply{}})
	require.NoError(t, err)

	content, err := os.ReadFile(box.Mirror("a/f"))
	require.NoError(t, err)
	assert.Equal(t, "a/f", string(content))
}

func TestSweepBoxCreateFailure(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, "blocker")

	_, err := Sweep(SweepOptions{
		Root:      root,
		Warehouse: filepath.Join(root, "blocker"),
		Now:       sweepNow,
		Executor:  Apply{},
	})
	assert.ErrorIs(t, err, ErrBoxCreate)
}

func TestSweepRequiresExecutor(t *testing.T) {
	_, err := Sweep(SweepOptions{Root: t.TempDir()})
	assert.ErrorIs(t, err, ErrNoExecutor)
}
