package setting

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var unitDurations = map[string]time.Duration{
	"minute": time.Minute,
	"hour":   time.Hour,
	"day":    24 * time.Hour,
	"week":   7 * 24 * time.Hour,
}

var (
	burnMoratoriumPattern  = regexp.MustCompile(`^(\d+)\s?(days?|weeks?)$`)
	sweepMoratoriumPattern = regexp.MustCompile(`^(\d+)\s?(minutes?|hours?|days?|weeks?)$`)
)

// Moratorium is a count of calendar-free units: a day is always 24 hours.
type Moratorium struct {
	Count uint32
	Unit  string // as written, singular or plural
}

// String renders the normalized "N unit" form.
func (m Moratorium) String() string {
	return fmt.Sprintf("%d %s", m.Count, m.Unit)
}

// Duration converts m, failing when the result does not fit a time.Duration.
func (m Moratorium) Duration() (time.Duration, error) {
	base, ok := unitDurations[strings.TrimSuffix(m.Unit, "s")]
	if !ok {
		return 0, fmt.Errorf("unknown unit %q", m.Unit)
	}
	if int64(m.Count) > math.MaxInt64/int64(base) {
		return 0, fmt.Errorf("%s is too long", m)
	}
	return time.Duration(m.Count) * base, nil
}

func parseMoratorium(key Key, value string, pattern *regexp.Regexp, allowZero bool) (Moratorium, error) {
	value = strings.TrimSpace(value)
	fail := func(reason string) (Moratorium, error) {
		return Moratorium{}, &ValueError{Key: key, Value: value, Reason: reason}
	}

	m := pattern.FindStringSubmatch(value)
	if m == nil {
		return fail(fmt.Sprintf("expected a count and a unit matching %s", pattern))
	}
	count, err := strconv.ParseUint(m[1], 10, 32)
	if err != nil {
		return fail("count is out of range")
	}
	if count == 0 && !allowZero {
		return fail("count must be positive")
	}
	mor := Moratorium{Count: uint32(count), Unit: m[2]}
	if _, err := mor.Duration(); err != nil {
		return fail(err.Error())
	}
	return mor, nil
}

// ParseBurnMoratorium accepts "N day(s)" or "N week(s)" with N > 0.
func ParseBurnMoratorium(value string) (Moratorium, error) {
	return parseMoratorium(KeyBurnMoratorium, value, burnMoratoriumPattern, false)
}

// ParseSweepMoratorium accepts minutes, hours, days or weeks, zero included.
func ParseSweepMoratorium(value string) (Moratorium, error) {
	return parseMoratorium(KeySweepMoratorium, value, sweepMoratoriumPattern, true)
}
