package dust

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBurnScenario(t *testing.T) {
	warehouse := t.TempDir()
	makeTree(t, warehouse, "2024-01-01/dusts/f", "2024-06-01/dusts/", "not-a-date/", "2024-03-03")

	now := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	res, err := Burn(BurnOptions{
		Warehouse:  warehouse,
		Moratorium: 30 * 24 * time.Hour,
		Now:        now,
		Executor:   Apply{},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"2024-01-01", "2024-06-01"}, res.Boxes)
	assert.Equal(t, []string{"2024-01-01"}, res.Burned)
	assert.NoDirExists(t, filepath.Join(warehouse, "2024-01-01"))
	assert.DirExists(t, filepath.Join(warehouse, "2024-06-01"))
	assert.DirExists(t, filepath.Join(warehouse, "not-a-date"))
	assert.FileExists(t, filepath.Join(warehouse, "2024-03-03"))
}

func TestBurnDryRun(t *testing.T) {
	warehouse := t.TempDir()
	makeTree(t, warehouse, "2020-01-01/dusts/f")

	res, err := Burn(BurnOptions{
		Warehouse:  warehouse,
		Moratorium: 24 * time.Hour,
		Now:        time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
		Executor:   Plan{},
	})
	require.NoError(t, err)
	assert.True(t, res.DryRun)
	assert.Equal(t, []string{"2020-01-01"}, res.Burned)
	assert.DirExists(t, filepath.Join(warehouse, "2020-01-01"))
}

func TestBurnContinuesPastFailures(t *testing.T) {
	warehouse := t.TempDir()
	makeTree(t, warehouse, "2020-01-01/", "2020-01-02/")

	exec := &recordingExecutor{failOn: map[string]error{
		filepath.Join(warehouse, "2020-01-01"): errors.New("busy"),
	}}
	res, err := Burn(BurnOptions{
		Warehouse:  warehouse,
		Moratorium: 24 * time.Hour,
		Now:        time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
		Executor:   exec,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"2020-01-01", "2020-01-02"}, res.Expired)
	assert.Equal(t, []string{"2020-01-02"}, res.Burned)
	require.Len(t, res.Failures, 1)
	assert.Equal(t, EventSkip, res.Failures[0].Kind)
}

func TestBurnLogsIntoTodaysBox(t *testing.T) {
	warehouse := t.TempDir()
	now := time.Date(2024, 7, 1, 8, 0, 0, 0, time.UTC)
	makeTree(t, warehouse, "2024-07-01/dusts/", "2024-01-01/")

	res, err := Burn(BurnOptions{Warehouse: warehouse, Moratorium: 24 * time.Hour, Now: now, Executor: Apply{}})
	require.NoError(t, err)

	log, err := os.ReadFile(NewBox(warehouse, now).LogPath(BurnLogName))
	require.NoError(t, err)
	assert.Contains(t, string(log), "==== burn indeed run="+res.RunID)
	assert.Contains(t, string(log), "BURN")
}

func TestBurnUnreadableWarehouse(t *testing.T) {
	_, err := Burn(BurnOptions{
		Warehouse: filepath.Join(t.TempDir(), "missing"),
		Now:       time.Now(),
		Executor:  Apply{},
	})
	assert.ErrorIs(t, err, ErrWarehouseUnreadable)
}
