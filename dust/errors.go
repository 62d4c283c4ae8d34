package dust

import "errors"

// Sentinel errors for package dust.
// These errors can be checked with errors.Is() for specific error handling.
var (
	// Walk errors
	ErrRootUnreadable = errors.New("cannot read sweep root")

	// Box errors
	ErrBoxCreate           = errors.New("cannot create dust box")
	ErrWarehouseUnreadable = errors.New("cannot read warehouse")

	// Executor errors
	ErrNoExecutor = errors.New("no executor given")
)
