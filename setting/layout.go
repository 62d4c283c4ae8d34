package setting

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ttokutake/kic/dust"
	"github.com/ttokutake/kic/internal/log"
)

const (
	WarehouseDirName = "warehouse"
	ConfigFileName   = "config.toml"
	IgnoreFileName   = "ignore"
)

// Layout locates the files kic keeps under <Root>/.kic.
type Layout struct {
	Root string
}

// NewLayout returns the layout for root, made absolute so it can be written
// into a crontab.
func NewLayout(root string) (Layout, error) {
	if root == "" {
		root = "."
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return Layout{}, fmt.Errorf("resolve %s: %w", root, err)
	}
	return Layout{Root: abs}, nil
}

func (l Layout) WorkDir() string    { return filepath.Join(l.Root, dust.WorkDirName) }
func (l Layout) Warehouse() string  { return filepath.Join(l.WorkDir(), WarehouseDirName) }
func (l Layout) ConfigPath() string { return filepath.Join(l.WorkDir(), ConfigFileName) }
func (l Layout) IgnorePath() string { return filepath.Join(l.WorkDir(), IgnoreFileName) }

// Check returns ErrNotInitialized naming the first missing piece.
func (l Layout) Check() error {
	for _, item := range []struct {
		path string
		dir  bool
	}{
		{l.WorkDir(), true},
		{l.Warehouse(), true},
		{l.ConfigPath(), false},
		{l.IgnorePath(), false},
	} {
		info, err := os.Stat(item.path)
		if err != nil || info.IsDir() != item.dir {
			return fmt.Errorf("%w: %s is missing, run \"kic init\"", ErrNotInitialized, item.path)
		}
	}
	return nil
}

// Initialized reports whether Check passes.
func (l Layout) Initialized() bool {
	return l.Check() == nil
}

// Init creates whatever part of the layout is missing and returns the paths
// it created. Existing files are left untouched. A new ignore list is seeded
// with every file currently in the tree.
func (l Layout) Init() ([]string, error) {
	logger := log.WithComponent("setting.layout")
	var created []string

	for _, dir := range []string{l.WorkDir(), l.Warehouse()} {
		if _, err := os.Stat(dir); err == nil {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return created, fmt.Errorf("create %s: %w", dir, err)
		}
		created = append(created, dir)
	}

	if !exists(l.ConfigPath()) {
		if err := Default().Save(l.ConfigPath()); err != nil {
			return created, err
		}
		created = append(created, l.ConfigPath())
	}

	if !exists(l.IgnorePath()) {
		files, err := dust.Walk(l.Root)
		if err != nil {
			return created, err
		}
		if err := NewIgnore(files).Save(l.IgnorePath()); err != nil {
			return created, err
		}
		created = append(created, l.IgnorePath())
		logger.Debug("ignore list seeded", "files", files.Len())
	}

	logger.Info("initialized", "root", l.Root, "created", len(created))
	return created, nil
}

// Destroy removes the whole .kic directory, warehouse included.
func (l Layout) Destroy() error {
	if err := os.RemoveAll(l.WorkDir()); err != nil {
		return fmt.Errorf("remove %s: %w", l.WorkDir(), err)
	}
	return nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, fs.ErrNotExist)
}
