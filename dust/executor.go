package dust

import "os"

// Executor carries out the filesystem mutations of a run. Apply performs
// them; Plan accepts every request and changes nothing, which is how a dry
// run walks exactly the same code path as a real one.
type Executor interface {
	DryRun() bool
	MkdirAll(path string) error
	Rename(src, dst string) error
	RemoveDir(path string) error
	RemoveAll(path string) error
}

// Apply mutates the filesystem.
type Apply struct{}

var _ Executor = Apply{}

func (Apply) DryRun() bool { return false }

func (Apply) MkdirAll(path string) error { return os.MkdirAll(path, 0o755) }

// Rename moves src onto dst, replacing a file already at dst.
func (Apply) Rename(src, dst string) error { return os.Rename(src, dst) }

// RemoveDir removes an empty directory only.
func (Apply) RemoveDir(path string) error { return os.Remove(path) }

func (Apply) RemoveAll(path string) error { return os.RemoveAll(path) }

// Plan records nothing and mutates nothing.
type Plan struct{}

var _ Executor = Plan{}

func (Plan) DryRun() bool                 { return true }
func (Plan) MkdirAll(path string) error   { return nil }
func (Plan) Rename(src, dst string) error { return nil }
func (Plan) RemoveDir(path string) error  { return nil }
func (Plan) RemoveAll(path string) error  { return nil }

// ExecutorFor returns Apply when indeed is set and Plan otherwise.
func ExecutorFor(indeed bool) Executor {
	if indeed {
		return Apply{}
	}
	return Plan{}
}
