package setting

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"slices"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/ttokutake/kic/internal/log"
)

const bannerRule = "###################################\n"

var (
	regionStart = bannerRule + "# \"kic\" uses the lines from this.\n# Please don't touch them and me!\n" + bannerRule
	regionEnd   = bannerRule + "# \"kic\" uses the lines up to here.\n# Please don't touch them and me!\n" + bannerRule
)

// CrontabRunner reads and replaces the current user's crontab.
type CrontabRunner interface {
	Read(ctx context.Context) (string, error)
	Write(ctx context.Context, content string) error
}

// SystemCrontab drives the crontab(1) command.
type SystemCrontab struct {
	Command string // defaults to "crontab"
}

var _ CrontabRunner = SystemCrontab{}

func (s SystemCrontab) command() string {
	if s.Command == "" {
		return "crontab"
	}
	return s.Command
}

// Read returns the crontab, or "" when the user has none yet.
func (s SystemCrontab) Read(ctx context.Context) (string, error) {
	out, err := exec.CommandContext(ctx, s.command(), "-l").Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			log.WithComponent("setting.cron").Debug("no crontab", "stderr", strings.TrimSpace(string(exitErr.Stderr)))
			return "", nil
		}
		return "", fmt.Errorf("%w: %w", ErrCrontab, err)
	}
	return string(out), nil
}

// Write installs content as the new crontab.
func (s SystemCrontab) Write(ctx context.Context, content string) error {
	cmd := exec.CommandContext(ctx, s.command(), "-")
	cmd.Stdin = strings.NewReader(content)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%w: %w: %s", ErrCrontab, err, strings.TrimSpace(stderr.String()))
	}
	return nil
}

// Schedule is when cron runs the sweep and burn of a directory.
type Schedule struct {
	Hour   int
	Minute int
	Weekly bool // Sundays only
}

// Spec renders the five-field cron expression and checks it parses.
func (s Schedule) Spec() (string, error) {
	dow := "*"
	if s.Weekly {
		dow = "0"
	}
	spec := fmt.Sprintf("%d %d * * %s", s.Minute, s.Hour, dow)
	if _, err := cron.ParseStandard(spec); err != nil {
		return "", fmt.Errorf("%w: schedule %q: %w", ErrCrontab, spec, err)
	}
	return spec, nil
}

const patrolSpec = "0 * * * *"

// NextRun returns the first activation of spec strictly after the given time.
func NextRun(spec string, after time.Time) (time.Time, error) {
	sched, err := cron.ParseStandard(spec)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: schedule %q: %w", ErrCrontab, spec, err)
	}
	return sched.Next(after), nil
}

// CronEntry is one line of the kic region. Dir is empty for the patrol line.
type CronEntry struct {
	Spec    string
	Dir     string
	Command string
}

func (e CronEntry) String() string {
	if e.Dir == "" {
		return e.Spec + "\t" + e.Command
	}
	return e.Spec + "\tcd " + shellQuote(e.Dir) + " && " + e.Command
}

func (e CronEntry) isPatrol() bool {
	return e.Dir == "" && strings.HasSuffix(e.Command, " patrol")
}

// Crontab is a user crontab split around the kic region. Lines outside the
// region are preserved byte for byte.
type Crontab struct {
	upper   string
	lower   string
	entries []CronEntry
}

// ParseCrontab splits content around the kic region. Without a complete
// region the whole content is kept as the upper part.
func ParseCrontab(content string) *Crontab {
	start := strings.Index(content, regionStart)
	if start < 0 {
		return &Crontab{upper: content}
	}
	bodyStart := start + len(regionStart)
	end := strings.Index(content[bodyStart:], regionEnd)
	if end < 0 {
		return &Crontab{upper: content}
	}
	c := &Crontab{
		upper: content[:start],
		lower: content[bodyStart+end+len(regionEnd):],
	}
	for line := range strings.Lines(content[bodyStart : bodyStart+end]) {
		if entry, ok := parseCronEntry(strings.TrimRight(line, "\n")); ok {
			c.entries = append(c.entries, entry)
		}
	}
	return c
}

func parseCronEntry(line string) (CronEntry, bool) {
	spec, rest, ok := strings.Cut(line, "\t")
	if !ok || strings.TrimSpace(spec) == "" {
		return CronEntry{}, false
	}
	if !strings.HasPrefix(rest, "cd ") {
		return CronEntry{Spec: spec, Command: rest}, true
	}
	dir, command, ok := cutQuoted(strings.TrimPrefix(rest, "cd "))
	if !ok {
		return CronEntry{}, false
	}
	command, ok = strings.CutPrefix(command, " && ")
	if !ok {
		return CronEntry{}, false
	}
	return CronEntry{Spec: spec, Dir: dir, Command: command}, true
}

// LoadCrontab reads the current crontab through r.
func LoadCrontab(ctx context.Context, r CrontabRunner) (*Crontab, error) {
	content, err := r.Read(ctx)
	if err != nil {
		return nil, err
	}
	return ParseCrontab(content), nil
}

// Save installs the crontab through r.
func (c *Crontab) Save(ctx context.Context, r CrontabRunner) error {
	return r.Write(ctx, c.String())
}

// String reassembles the crontab. An empty region is dropped together with
// its markers.
func (c *Crontab) String() string {
	if len(c.entries) == 0 {
		return c.upper + c.lower
	}
	var b strings.Builder
	b.WriteString(c.upper)
	if c.upper != "" && !strings.HasSuffix(c.upper, "\n") {
		b.WriteByte('\n')
	}
	b.WriteString(regionStart)
	for _, e := range c.entries {
		b.WriteString(e.String())
		b.WriteByte('\n')
	}
	b.WriteString(regionEnd)
	b.WriteString(c.lower)
	return b.String()
}

// Entries returns the lines of the kic region.
func (c *Crontab) Entries() []CronEntry {
	return slices.Clone(c.entries)
}

// Register replaces the lines of dir with a sweep and a burn on sched, run by
// the kic binary at bin, and makes sure the hourly patrol line exists.
func (c *Crontab) Register(dir, bin string, sched Schedule) error {
	spec, err := sched.Spec()
	if err != nil {
		return err
	}
	c.drop(dir)
	c.entries = append(c.entries,
		CronEntry{Spec: spec, Dir: dir, Command: shellQuote(bin) + " sweep indeed"},
		CronEntry{Spec: spec, Dir: dir, Command: shellQuote(bin) + " burn indeed"},
	)
	if !slices.ContainsFunc(c.entries, CronEntry.isPatrol) {
		c.entries = append(c.entries, CronEntry{Spec: patrolSpec, Command: shellQuote(bin) + " patrol"})
	}
	log.WithComponent("setting.cron").Debug("registered", "dir", dir, "spec", spec)
	return nil
}

// Unregister drops the lines of dir and reports whether there were any.
// The patrol line goes away with the last directory.
func (c *Crontab) Unregister(dir string) bool {
	removed := c.drop(dir)
	c.dropPatrolIfIdle()
	return removed
}

// Patrol unregisters every directory for which alive reports false and
// returns them.
func (c *Crontab) Patrol(alive func(dir string) bool) []string {
	var stale []string
	for _, dir := range c.Dirs() {
		if !alive(dir) {
			c.drop(dir)
			stale = append(stale, dir)
		}
	}
	c.dropPatrolIfIdle()
	return stale
}

// Dirs returns the registered directories, sorted.
func (c *Crontab) Dirs() []string {
	var dirs []string
	for _, e := range c.entries {
		if e.Dir != "" && !slices.Contains(dirs, e.Dir) {
			dirs = append(dirs, e.Dir)
		}
	}
	slices.Sort(dirs)
	return dirs
}

// SpecFor returns the schedule registered for dir.
func (c *Crontab) SpecFor(dir string) (string, bool) {
	for _, e := range c.entries {
		if e.Dir == dir {
			return e.Spec, true
		}
	}
	return "", false
}

func (c *Crontab) drop(dir string) bool {
	n := len(c.entries)
	c.entries = slices.DeleteFunc(c.entries, func(e CronEntry) bool { return e.Dir == dir })
	return len(c.entries) != n
}

func (c *Crontab) dropPatrolIfIdle() {
	if len(c.Dirs()) == 0 {
		c.entries = slices.DeleteFunc(c.entries, CronEntry.isPatrol)
	}
}

// shellQuote wraps s in single quotes for /bin/sh.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// cutQuoted reads one single-quoted word as written by shellQuote and
// returns it unquoted with the remainder.
func cutQuoted(s string) (word, rest string, ok bool) {
	if !strings.HasPrefix(s, "'") {
		return "", "", false
	}
	var b strings.Builder
	s = s[1:]
	for {
		i := strings.IndexByte(s, '\'')
		if i < 0 {
			return "", "", false
		}
		b.WriteString(s[:i])
		s = s[i+1:]
		if next, found := strings.CutPrefix(s, `\''`); found {
			b.WriteByte('\'')
			s = next
			continue
		}
		return b.String(), s, true
	}
}
