package setting

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ttokutake/kic/dust"
)

// Issue is one inconsistency found by Validate.
type Issue struct {
	Path     string `json:"path" yaml:"path"`
	Problem  string `json:"problem" yaml:"problem"`
	Repaired bool   `json:"repaired" yaml:"repaired"`
}

func (i Issue) String() string {
	s := fmt.Sprintf("%s: %s", i.Path, i.Problem)
	if i.Repaired {
		s += " (repaired)"
	}
	return s
}

// Validate checks the settings and the warehouse for things kic would
// silently skip: invalid config values, ignore entries whose file is gone,
// warehouse entries that are not boxes, and boxes without a dusts
// directory. With repair, stale ignore entries are dropped from the list.
func (l Layout) Validate(repair bool) ([]Issue, error) {
	if err := l.Check(); err != nil {
		return nil, err
	}
	var issues []Issue

	cfg, err := LoadConfig(l.ConfigPath())
	if err != nil {
		issues = append(issues, Issue{Path: l.ConfigPath(), Problem: err.Error()})
	} else {
		for _, key := range Keys {
			if _, err := cfg.Get(key); err != nil {
				issues = append(issues, Issue{Path: l.ConfigPath(), Problem: err.Error()})
			}
		}
	}

	ig, err := ReadIgnore(l.IgnorePath())
	if err != nil {
		return issues, err
	}
	var stale []string
	for _, rel := range ig.Entries() {
		info, err := os.Lstat(filepath.Join(l.Root, rel))
		if err == nil && !info.IsDir() {
			continue
		}
		stale = append(stale, rel)
		issues = append(issues, Issue{Path: rel, Problem: "ignored but not a file in the tree", Repaired: repair})
	}
	if repair && len(stale) > 0 {
		ig.Remove(l.Root, stale...)
		if err := ig.Save(l.IgnorePath()); err != nil {
			return issues, err
		}
	}

	entries, err := os.ReadDir(l.Warehouse())
	if err != nil {
		return issues, fmt.Errorf("%w %s: %w", dust.ErrWarehouseUnreadable, l.Warehouse(), err)
	}
	for _, entry := range entries {
		path := filepath.Join(l.Warehouse(), entry.Name())
		box, ok := dust.ParseBox(l.Warehouse(), entry.Name(), time.Local)
		if !ok || !entry.IsDir() {
			issues = append(issues, Issue{Path: path, Problem: "not a box, burn never deletes it"})
			continue
		}
		if info, err := os.Stat(box.DustPath); err != nil || !info.IsDir() {
			issues = append(issues, Issue{Path: path, Problem: "box has no " + dust.DustsDirName + " directory"})
		}
	}
	return issues, nil
}
