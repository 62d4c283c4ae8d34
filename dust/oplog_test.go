package dust

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventString(t *testing.T) {
	assert.Equal(t, `MOVE_FILE "a/f" -> "/w/a/f"`, Event{Kind: EventMoveFile, Path: "a/f", Dest: "/w/a/f"}.String())
	assert.Equal(t, `SKIP "a/f": denied`, Event{Kind: EventSkip, Path: "a/f", Err: "denied"}.String())
}

func TestOpLogAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sweep.log")
	clock := func() time.Time { return time.Date(2024, 6, 1, 1, 2, 3, 0, time.UTC) }

	for range 2 {
		var echo bytes.Buffer
		l := OpenOpLog(path, false, &echo, clock)
		l.Start("sweep", "run-1", false)
		l.Record(Event{Kind: EventMoveFile, Path: "f"})
		require.NoError(t, l.Close())
		assert.Equal(t, "MOVE_FILE \"f\"\n", echo.String())
	}

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "2024-06-01T01:02:03Z ==== sweep indeed run=run-1 ====", lines[0])
	assert.Equal(t, `2024-06-01T01:02:03Z MOVE_FILE "f"`, lines[1])
}

func TestOpLogMissingDirIsAdvisory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "burn.log")

	var echo bytes.Buffer
	l := OpenOpLog(path, true, &echo, nil)
	l.Start("burn", "r", true)
	l.Record(Event{Kind: EventBurn, Path: "x"})
	assert.NoError(t, l.Close())

	assert.Equal(t, "BURN \"x\"\n", echo.String())
	assert.NoFileExists(t, path)
}
