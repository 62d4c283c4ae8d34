package dust

import (
	"path/filepath"
	"time"
)

const (
	// DateLayout names a box after the calendar day of its sweep.
	DateLayout = "2006-01-02"

	DustsDirName = "dusts"
	SweepLogName = "sweep.log"
	BurnLogName  = "burn.log"
)

// Box is one dated staging batch under the warehouse.
type Box struct {
	Name     string    `json:"name" yaml:"name"`
	Date     time.Time `json:"date" yaml:"date"`
	RootPath string    `json:"root_path" yaml:"root_path"`
	DustPath string    `json:"dust_path" yaml:"dust_path"`
}

// NewBox returns the box for the calendar day of now, in now's location.
// It does not touch the filesystem.
func NewBox(warehouse string, now time.Time) Box {
	date := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	name := date.Format(DateLayout)
	root := filepath.Join(warehouse, name)
	return Box{
		Name:     name,
		Date:     date,
		RootPath: root,
		DustPath: filepath.Join(root, DustsDirName),
	}
}

// LogPath returns the path of an operation log inside the box.
func (b Box) LogPath(name string) string {
	return filepath.Join(b.RootPath, name)
}

// Mirror maps a root-relative path to its place inside the box.
func (b Box) Mirror(rel string) string {
	return filepath.Join(b.DustPath, rel)
}

// Expired reports whether date + moratorium lies strictly before now.
// A box exactly moratorium old is not yet expired.
func (b Box) Expired(moratorium time.Duration, now time.Time) bool {
	return b.Date.Add(moratorium).Before(now)
}

// ParseBox interprets a warehouse entry name as a box, midnight in loc.
// Names that are not YYYY-MM-DD dates are not boxes.
func ParseBox(warehouse, name string, loc *time.Location) (Box, bool) {
	if loc == nil {
		loc = time.Local
	}
	date, err := time.ParseInLocation(DateLayout, name, loc)
	if err != nil || date.Format(DateLayout) != name {
		return Box{}, false
	}
	root := filepath.Join(warehouse, name)
	return Box{
		Name:     name,
		Date:     date,
		RootPath: root,
		DustPath: filepath.Join(root, DustsDirName),
	}, true
}
