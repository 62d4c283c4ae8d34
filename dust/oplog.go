package dust

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/ttokutake/kic/internal/log"
)

// EventKind classifies one line of an operation log.
type EventKind string

const (
	EventMoveFile EventKind = "MOVE_FILE"
	EventMoveDir  EventKind = "MOVE_DIR"
	EventBurn     EventKind = "BURN"
	EventSkip     EventKind = "SKIP"
)

// Event is one meaningful thing a run did, or would do in a dry run.
type Event struct {
	Kind EventKind `json:"kind" yaml:"kind"`
	Path string    `json:"path" yaml:"path"`
	Dest string    `json:"dest,omitempty" yaml:"dest,omitempty"`
	Err  string    `json:"error,omitempty" yaml:"error,omitempty"`
}

// String renders the event without a timestamp, so a dry run and a real run
// over the same tree produce identical messages.
func (e Event) String() string {
	msg := fmt.Sprintf("%s %q", e.Kind, e.Path)
	if e.Dest != "" {
		msg += fmt.Sprintf(" -> %q", e.Dest)
	}
	if e.Err != "" {
		msg += ": " + e.Err
	}
	return msg
}

// OpLog appends the events of one run to a per-operation log file and
// echoes them to an optional writer. It is advisory: a log that cannot be
// opened or written is reported once and otherwise ignored.
type OpLog struct {
	file   *os.File
	echo   io.Writer
	now    func() time.Time
	logger *slog.Logger
	failed bool
}

// OpenOpLog opens path for appending, creating the file if absent. When
// optional is set, a missing parent directory silently reduces the log to its
// echo; that is the normal case for a dry run, or a burn, on a day without a box.
func OpenOpLog(path string, optional bool, echo io.Writer, now func() time.Time) *OpLog {
	if now == nil {
		now = time.Now
	}
	l := &OpLog{
		echo:   echo,
		now:    now,
		logger: log.WithComponent("dust.oplog"),
	}
	if path == "" {
		return l
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	switch {
	case err == nil:
		l.file = f
	case optional && errors.Is(err, fs.ErrNotExist):
		l.logger.Debug("operation log skipped", "path", path)
	default:
		l.report(err)
	}
	return l
}

// Start writes the run's start marker.
func (l *OpLog) Start(op, runID string, dryRun bool) {
	mode := "indeed"
	if dryRun {
		mode = "dry-run"
	}
	l.writeFile(fmt.Sprintf("%s ==== %s %s run=%s ====\n", l.stamp(), op, mode, runID))
}

// Record appends ev to the log and the echo writer.
func (l *OpLog) Record(ev Event) {
	line := ev.String()
	l.writeFile(l.stamp() + " " + line + "\n")
	if l.echo != nil {
		fmt.Fprintln(l.echo, line)
	}
}

// Close releases the log file.
func (l *OpLog) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

func (l *OpLog) stamp() string {
	return l.now().Format(time.RFC3339)
}

func (l *OpLog) writeFile(s string) {
	if l.file == nil {
		return
	}
	if _, err := io.WriteString(l.file, s); err != nil {
		l.report(err)
	}
}

func (l *OpLog) report(err error) {
	if l.failed {
		return
	}
	l.failed = true
	l.logger.Warn("operation log unavailable", "error", err)
}
