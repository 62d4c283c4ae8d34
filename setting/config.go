package setting

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Key names one config entry as "section.name".
type Key string

const (
	KeyBurnMoratorium  Key = "burn.moratorium"
	KeySweepMoratorium Key = "sweep.moratorium"
	KeySweepPeriod     Key = "sweep.period"
	KeySweepTime       Key = "sweep.time"
)

// Keys lists every config key in display order.
var Keys = []Key{KeyBurnMoratorium, KeySweepMoratorium, KeySweepPeriod, KeySweepTime}

const (
	PeriodDaily  = "daily"
	PeriodWeekly = "weekly"
)

var sweepTimePattern = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)$`)

// ParseKey trims s and checks it names a known key.
func ParseKey(s string) (Key, error) {
	key := Key(strings.TrimSpace(s))
	if !slices.Contains(Keys, key) {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, s)
	}
	return key, nil
}

type BurnSection struct {
	Moratorium string `toml:"moratorium"`
}

type SweepSection struct {
	Moratorium string `toml:"moratorium"`
	Period     string `toml:"period"`
	Time       string `toml:"time"`
}

// Config mirrors config.toml. Values are kept as text and validated when
// read through Get or the typed accessors, so a broken value can still be
// repaired with Set.
type Config struct {
	Burn  BurnSection  `toml:"burn"`
	Sweep SweepSection `toml:"sweep"`
}

// Default returns the configuration written by init.
func Default() Config {
	return Config{
		Burn: BurnSection{Moratorium: "2 weeks"},
		Sweep: SweepSection{
			Moratorium: "10 minutes",
			Period:     PeriodDaily,
			Time:       "00:00",
		},
	}
}

// LoadConfig decodes path over the defaults, so missing keys keep their
// default value.
func LoadConfig(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("%w: %w", ErrNotInitialized, err)
		}
		return cfg, fmt.Errorf("decode %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path.
func (c Config) Save(path string) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func (c *Config) field(key Key) *string {
	switch key {
	case KeyBurnMoratorium:
		return &c.Burn.Moratorium
	case KeySweepMoratorium:
		return &c.Sweep.Moratorium
	case KeySweepPeriod:
		return &c.Sweep.Period
	case KeySweepTime:
		return &c.Sweep.Time
	}
	return nil
}

// Get returns the normalized value of key.
func (c Config) Get(key Key) (string, error) {
	field := c.field(key)
	if field == nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return Normalize(key, *field)
}

// Set validates value and stores its normalized form.
func (c *Config) Set(key Key, value string) error {
	field := c.field(key)
	if field == nil {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	normalized, err := Normalize(key, value)
	if err != nil {
		return err
	}
	*field = normalized
	return nil
}

// Validate checks every key and joins the failures.
func (c Config) Validate() error {
	var errs []error
	for _, key := range Keys {
		if _, err := c.Get(key); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Normalize validates value against the grammar of key and returns the
// trimmed canonical form.
func Normalize(key Key, value string) (string, error) {
	value = strings.TrimSpace(value)
	switch key {
	case KeyBurnMoratorium:
		m, err := ParseBurnMoratorium(value)
		if err != nil {
			return "", err
		}
		return m.String(), nil
	case KeySweepMoratorium:
		m, err := ParseSweepMoratorium(value)
		if err != nil {
			return "", err
		}
		return m.String(), nil
	case KeySweepPeriod:
		if value != PeriodDaily && value != PeriodWeekly {
			return "", &ValueError{Key: key, Value: value, Reason: "expected daily or weekly"}
		}
		return value, nil
	case KeySweepTime:
		if !sweepTimePattern.MatchString(value) {
			return "", &ValueError{Key: key, Value: value, Reason: "expected HH:MM between 00:00 and 23:59"}
		}
		return value, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
}

// BurnMoratorium returns the configured burn moratorium.
func (c Config) BurnMoratorium() (time.Duration, error) {
	m, err := ParseBurnMoratorium(c.Burn.Moratorium)
	if err != nil {
		return 0, err
	}
	return m.Duration()
}

// SweepMoratorium returns the configured sweep moratorium.
func (c Config) SweepMoratorium() (time.Duration, error) {
	m, err := ParseSweepMoratorium(c.Sweep.Moratorium)
	if err != nil {
		return 0, err
	}
	return m.Duration()
}

// SweepSchedule returns when cron should run sweeps and burns.
func (c Config) SweepSchedule() (Schedule, error) {
	period, err := Normalize(KeySweepPeriod, c.Sweep.Period)
	if err != nil {
		return Schedule{}, err
	}
	at, err := Normalize(KeySweepTime, c.Sweep.Time)
	if err != nil {
		return Schedule{}, err
	}
	hour, _ := strconv.Atoi(at[:2])
	minute, _ := strconv.Atoi(at[3:])
	return Schedule{Hour: hour, Minute: minute, Weekly: period == PeriodWeekly}, nil
}
