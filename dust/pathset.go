package dust

import (
	"path/filepath"
	"slices"
)

// PathSet is a deduplicated collection of normalized, root-relative paths.
// The zero value is an empty set ready to use.
type PathSet struct {
	paths map[string]struct{}
}

// NewPathSet builds a set from paths, normalizing each one.
func NewPathSet(paths ...string) PathSet {
	var s PathSet
	for _, p := range paths {
		s.Add(p)
	}
	return s
}

// Normalize cleans a relative path so equal locations compare equal:
// "./a//b/" becomes "a/b" and the empty string becomes ".".
func Normalize(path string) string {
	return filepath.Clean(path)
}

func (s *PathSet) Add(path string) {
	if s.paths == nil {
		s.paths = make(map[string]struct{})
	}
	s.paths[Normalize(path)] = struct{}{}
}

// Remove deletes path and reports whether it was present.
func (s *PathSet) Remove(path string) bool {
	path = Normalize(path)
	if _, ok := s.paths[path]; !ok {
		return false
	}
	delete(s.paths, path)
	return true
}

func (s PathSet) Contains(path string) bool {
	_, ok := s.paths[Normalize(path)]
	return ok
}

func (s PathSet) Len() int {
	return len(s.paths)
}

// Sorted returns the members in lexical order.
func (s PathSet) Sorted() []string {
	out := make([]string, 0, len(s.paths))
	for p := range s.paths {
		out = append(out, p)
	}
	slices.Sort(out)
	return out
}

// Iterate yields the members in lexical order.
func (s PathSet) Iterate(yield func(string) bool) {
	for _, p := range s.Sorted() {
		if !yield(p) {
			return
		}
	}
}

// Difference returns the members of s that are not in other.
func (s PathSet) Difference(other PathSet) PathSet {
	var out PathSet
	for p := range s.paths {
		if !other.Contains(p) {
			out.Add(p)
		}
	}
	return out
}

// Union returns the members of either set.
func (s PathSet) Union(other PathSet) PathSet {
	var out PathSet
	for p := range s.paths {
		out.Add(p)
	}
	for p := range other.paths {
		out.Add(p)
	}
	return out
}

// Clone returns an independent copy of s.
func (s PathSet) Clone() PathSet {
	return s.Union(PathSet{})
}
