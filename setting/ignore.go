package setting

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ttokutake/kic/dust"
)

// Ignore is the list of root-relative files a sweep leaves in place.
type Ignore struct {
	files dust.PathSet
}

// NewIgnore wraps files.
func NewIgnore(files dust.PathSet) *Ignore {
	return &Ignore{files: files.Clone()}
}

// ReadIgnore reads one path per line. Lines are trimmed and normalized;
// blank lines are dropped.
func ReadIgnore(path string) (*Ignore, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var files dust.PathSet
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		files.Add(filepath.FromSlash(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return &Ignore{files: files}, nil
}

// Files returns the ignored paths.
func (ig *Ignore) Files() dust.PathSet {
	return ig.files.Clone()
}

// Entries returns the ignored paths in sorted order.
func (ig *Ignore) Entries() []string {
	return ig.files.Sorted()
}

// Save writes the list sorted, one path per line.
func (ig *Ignore) Save(path string) error {
	var buf bytes.Buffer
	for p := range ig.files.Iterate {
		buf.WriteString(filepath.ToSlash(p))
		buf.WriteByte('\n')
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Add ignores the given paths, relative to root or absolute inside it.
// Anything a walk would not list as a file (a missing path or a directory)
// is skipped and returned. Symlinks are files.
func (ig *Ignore) Add(root string, paths ...string) (skipped []string) {
	for _, p := range paths {
		rel, ok := relativeTo(root, p)
		if !ok {
			skipped = append(skipped, p)
			continue
		}
		info, err := os.Lstat(filepath.Join(root, rel))
		if err != nil || info.IsDir() {
			skipped = append(skipped, p)
			continue
		}
		ig.files.Add(rel)
	}
	return skipped
}

// Remove stops ignoring the given paths and returns those that were not
// in the list.
func (ig *Ignore) Remove(root string, paths ...string) (missing []string) {
	for _, p := range paths {
		rel, ok := relativeTo(root, p)
		if !ok || !ig.files.Remove(rel) {
			missing = append(missing, p)
		}
	}
	return missing
}

// Replace swaps the whole list for files.
func (ig *Ignore) Replace(files dust.PathSet) {
	ig.files = files.Clone()
}

// Clear empties the list.
func (ig *Ignore) Clear() {
	ig.files = dust.PathSet{}
}

func (ig *Ignore) Len() int {
	return ig.files.Len()
}

func relativeTo(root, p string) (string, bool) {
	if filepath.IsAbs(p) {
		absRoot, err := filepath.Abs(root)
		if err != nil {
			return "", false
		}
		rel, err := filepath.Rel(absRoot, p)
		if err != nil {
			return "", false
		}
		p = rel
	}
	p = dust.Normalize(p)
	if p == "." || p == ".." || strings.HasPrefix(p, ".."+string(filepath.Separator)) {
		return "", false
	}
	return p, true
}
