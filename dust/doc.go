// Package dust implements the staging and expiry engine of kic.
//
// A sweep walks a working tree, subtracts the ignore list, and relocates the
// remaining files ("dust") into a dated box under the warehouse while keeping
// their relative paths. Directories that become empty once their dust is gone
// are moved too: they are removed from the tree and recreated, empty, inside
// the box. A burn later deletes whole boxes once their date is older than a
// moratorium.
//
// Key Components:
//
// Tree walking:
//   - Walk lists terminal files under a root, skipping hidden and pinned names
//   - Exclude subtracts the ignore set from the walk
//   - PathSet is the deduplicated, deterministically ordered set of paths
//
// Emptiness analysis:
//   - PotentiallyEmptyDirs answers "which directories would be empty" under a
//     phantom set of files treated as already removed, so a dry run reports
//     the same directories a real run empties
//
// Execution:
//   - Executor is the strategy that performs (Apply) or only plans (Plan) the
//     filesystem mutations; Sweep and Burn never branch on a dry-run flag
//   - Sweep and Burn take "now" explicitly and return a result with every
//     event and per-item failure
//   - OpLog appends the events of a run to the box's sweep.log or burn.log
//
// The engine is single-threaded and run-to-completion. Per-item failures are
// logged and skipped; only an unreadable root or warehouse and a box that
// cannot be created abort a run.
package dust
