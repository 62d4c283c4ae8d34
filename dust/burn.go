package dust

import (
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/ttokutake/kic/internal/log"
)

// BurnOptions configures one burn run.
type BurnOptions struct {
	Warehouse  string
	Moratorium time.Duration
	Now        time.Time // box dates are read in Now's location
	Executor   Executor
	Echo       io.Writer
	RunID      string
	Clock      func() time.Time
}

// BurnResult summarizes a burn.
type BurnResult struct {
	RunID    string   `json:"run_id" yaml:"run_id"`
	DryRun   bool     `json:"dry_run" yaml:"dry_run"`
	Boxes    []string `json:"boxes" yaml:"boxes"`
	Expired  []string `json:"expired" yaml:"expired"`
	Burned   []string `json:"burned" yaml:"burned"`
	Failures []Event  `json:"failures,omitempty" yaml:"failures,omitempty"`
	Events   []Event  `json:"events" yaml:"events"`
}

// ListBoxes returns the boxes found directly under warehouse, oldest first.
// Entries whose names are not dates are not boxes and are left out.
func ListBoxes(warehouse string, loc *time.Location) ([]Box, error) {
	entries, err := os.ReadDir(warehouse)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrWarehouseUnreadable, warehouse, err)
	}
	var boxes []Box
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if box, ok := ParseBox(warehouse, entry.Name(), loc); ok {
			boxes = append(boxes, box)
		}
	}
	slices.SortFunc(boxes, func(a, b Box) int { return a.Date.Compare(b.Date) })
	return boxes, nil
}

// Burn deletes every box whose date plus the moratorium lies strictly before
// Now. Failing to delete one box is recorded and the others are still
// evaluated. The log goes to today's box when it exists; a burn never
// creates a box.
func Burn(opts BurnOptions) (BurnResult, error) {
	if opts.Executor == nil {
		return BurnResult{}, ErrNoExecutor
	}
	if opts.RunID == "" {
		opts.RunID = uuid.NewString()
	}
	exec := opts.Executor
	logger := log.WithRun("dust.burn", opts.RunID)

	boxes, err := ListBoxes(opts.Warehouse, opts.Now.Location())
	if err != nil {
		return BurnResult{}, err
	}

	result := BurnResult{RunID: opts.RunID, DryRun: exec.DryRun()}

	today := NewBox(opts.Warehouse, opts.Now)
	oplog := OpenOpLog(today.LogPath(BurnLogName), true, opts.Echo, opts.Clock)
	defer oplog.Close()
	oplog.Start("burn", opts.RunID, exec.DryRun())

	for _, box := range boxes {
		result.Boxes = append(result.Boxes, box.Name)
		if !box.Expired(opts.Moratorium, opts.Now) {
			continue
		}
		result.Expired = append(result.Expired, box.Name)

		var ev Event
		if err := exec.RemoveAll(box.RootPath); err != nil {
			ev = Event{Kind: EventSkip, Path: box.RootPath, Err: err.Error()}
			result.Failures = append(result.Failures, ev)
			logger.Warn("box not burned", "box", box.Name, "error", err)
		} else {
			ev = Event{Kind: EventBurn, Path: box.RootPath}
			result.Burned = append(result.Burned, box.Name)
		}
		result.Events = append(result.Events, ev)
		oplog.Record(ev)
	}

	logger.Info("burn finished",
		"dry_run", result.DryRun,
		"boxes", len(result.Boxes),
		"burned", len(result.Burned),
		"failures", len(result.Failures),
	)
	return result, nil
}
