package setting

import (
	"errors"
	"fmt"
)

// Sentinel errors for package setting.
var (
	// Layout errors
	ErrNotInitialized = errors.New("working directory is not initialized")
	ErrBannedDir      = errors.New("refusing to run in a system directory")

	// Config errors
	ErrInvalidKey   = errors.New("invalid config key")
	ErrInvalidValue = errors.New("invalid config value")

	// Cron errors
	ErrCrontab = errors.New("crontab failed")
)

// ValueError describes a config value that does not satisfy its key's grammar.
type ValueError struct {
	Key    Key
	Value  string
	Reason string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("%v: %s = %q: %s", ErrInvalidValue, e.Key, e.Value, e.Reason)
}

func (e *ValueError) Unwrap() error {
	return ErrInvalidValue
}
