package dust

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/ttokutake/kic/internal/log"
)

// SweepOptions configures one sweep run.
type SweepOptions struct {
	Root      string           // working tree to sweep
	Warehouse string           // directory holding the dated boxes
	Ignore    PathSet          // root-relative files to keep in place
	Now       time.Time        // selects today's box
	Executor  Executor         // Apply or Plan
	Echo      io.Writer        // optional mirror of the operation log
	RunID     string           // generated when empty
	Clock     func() time.Time // timestamps in the log file; time.Now when nil
}

// SweepResult summarizes a sweep. A result with failures is still a
// successful run; the failures are in the log.
type SweepResult struct {
	RunID      string   `json:"run_id" yaml:"run_id"`
	DryRun     bool     `json:"dry_run" yaml:"dry_run"`
	Box        Box      `json:"box" yaml:"box"`
	Targets    []string `json:"targets" yaml:"targets"`
	MovedFiles []string `json:"moved_files" yaml:"moved_files"`
	MovedDirs  []string `json:"moved_dirs" yaml:"moved_dirs"`
	Failures   []Event  `json:"failures,omitempty" yaml:"failures,omitempty"`
	Events     []Event  `json:"events" yaml:"events"`
}

// Sweep relocates every walked, non-ignored file under Root into today's box,
// then relocates the directories that became empty, deepest first.
//
// Under Plan nothing is touched: the box is not created and the emptiness
// analysis treats the targets as phantoms, so the reported directories are
// the ones a real run would empty. A file already staged at the same place
// in the box is overwritten.
func Sweep(opts SweepOptions) (SweepResult, error) {
	if opts.Executor == nil {
		return SweepResult{}, ErrNoExecutor
	}
	if opts.Root == "" {
		opts.Root = "."
	}
	if opts.RunID == "" {
		opts.RunID = uuid.NewString()
	}
	exec := opts.Executor
	logger := log.WithRun("dust.sweep", opts.RunID)

	box := NewBox(opts.Warehouse, opts.Now)
	if err := exec.MkdirAll(box.DustPath); err != nil {
		return SweepResult{}, fmt.Errorf("%w %s: %w", ErrBoxCreate, box.DustPath, err)
	}

	result := SweepResult{
		RunID:  opts.RunID,
		DryRun: exec.DryRun(),
		Box:    box,
	}

	oplog := OpenOpLog(box.LogPath(SweepLogName), exec.DryRun(), opts.Echo, opts.Clock)
	defer oplog.Close()
	oplog.Start("sweep", opts.RunID, exec.DryRun())

	record := func(ev Event) {
		result.Events = append(result.Events, ev)
		if ev.Kind == EventSkip {
			result.Failures = append(result.Failures, ev)
			logger.Warn("skipped", "path", ev.Path, "error", ev.Err)
		}
		oplog.Record(ev)
	}

	walked, err := Walk(opts.Root)
	if err != nil {
		return result, err
	}
	targets := Exclude(walked, opts.Ignore)
	result.Targets = targets.Sorted()
	logger.Debug("targets computed", "walked", walked.Len(), "targets", targets.Len())

	for _, rel := range result.Targets {
		destDir := box.Mirror(filepath.Dir(rel))
		dest := filepath.Join(destDir, filepath.Base(rel))
		if err := exec.MkdirAll(destDir); err != nil {
			record(Event{Kind: EventSkip, Path: rel, Err: err.Error()})
			continue
		}
		if err := exec.Rename(filepath.Join(opts.Root, rel), dest); err != nil {
			record(Event{Kind: EventSkip, Path: rel, Err: err.Error()})
			continue
		}
		result.MovedFiles = append(result.MovedFiles, rel)
		record(Event{Kind: EventMoveFile, Path: rel, Dest: dest})
	}

	var phantoms PathSet
	if exec.DryRun() {
		phantoms = targets
	}
	empties := PotentiallyEmptyDirs(opts.Root, phantoms)
	empties.Remove(".")

	for _, rel := range ByDescendingDepth(empties) {
		dest := box.Mirror(rel)
		if err := exec.RemoveDir(filepath.Join(opts.Root, rel)); err != nil {
			record(Event{Kind: EventSkip, Path: rel, Err: err.Error()})
			continue
		}
		if err := exec.MkdirAll(dest); err != nil {
			record(Event{Kind: EventSkip, Path: rel, Dest: dest, Err: err.Error()})
			continue
		}
		result.MovedDirs = append(result.MovedDirs, rel)
		record(Event{Kind: EventMoveDir, Path: rel, Dest: dest})
	}

	logger.Info("sweep finished",
		"dry_run", result.DryRun,
		"files", len(result.MovedFiles),
		"dirs", len(result.MovedDirs),
		"failures", len(result.Failures),
	)
	return result, nil
}
