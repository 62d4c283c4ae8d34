package setting

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKey(t *testing.T) {
	key, err := ParseKey(" sweep.time ")
	require.NoError(t, err)
	assert.Equal(t, KeySweepTime, key)

	_, err = ParseKey("sweep.color")
	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		key   Key
		value string
		want  string
		ok    bool
	}{
		{KeyBurnMoratorium, "2 weeks", "2 weeks", true},
		{KeyBurnMoratorium, " 3days ", "3 days", true},
		{KeyBurnMoratorium, "1 day", "1 day", true},
		{KeyBurnMoratorium, "007 days", "7 days", true},
		{KeyBurnMoratorium, "0 days", "", false},
		{KeyBurnMoratorium, "5 hours", "", false},
		{KeyBurnMoratorium, "-1 days", "", false},
		{KeyBurnMoratorium, "99999999999 days", "", false},
		{KeySweepMoratorium, "0 minutes", "0 minutes", true},
		{KeySweepMoratorium, "10 minutes", "10 minutes", true},
		{KeySweepMoratorium, "1 hour", "1 hour", true},
		{KeySweepMoratorium, "4294967295 weeks", "", false},
		{KeySweepMoratorium, "ten minutes", "", false},
		{KeySweepPeriod, "weekly", "weekly", true},
		{KeySweepPeriod, " daily ", "daily", true},
		{KeySweepPeriod, "monthly", "", false},
		{KeySweepTime, "00:00", "00:00", true},
		{KeySweepTime, "23:59", "23:59", true},
		{KeySweepTime, "24:00", "", false},
		{KeySweepTime, "9:30", "", false},
		{KeySweepTime, "12:60", "", false},
	}
	for _, tt := range tests {
		t.Run(string(tt.key)+"="+tt.value, func(t *testing.T) {
			got, err := Normalize(tt.key, tt.value)
			if !tt.ok {
				assert.ErrorIs(t, err, ErrInvalidValue)
				var ve *ValueError
				assert.ErrorAs(t, err, &ve)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMoratoriumDuration(t *testing.T) {
	m, err := ParseBurnMoratorium("2 weeks")
	require.NoError(t, err)
	d, err := m.Duration()
	require.NoError(t, err)
	assert.Equal(t, 14*24*time.Hour, d)

	m, err = ParseSweepMoratorium("90 minutes")
	require.NoError(t, err)
	d, err = m.Duration()
	require.NoError(t, err)
	assert.Equal(t, 90*time.Minute, d)
}

func TestConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	cfg := Default()
	require.NoError(t, cfg.Set(KeySweepPeriod, "weekly"))
	require.NoError(t, cfg.Set(KeySweepTime, "03:15"))
	require.NoError(t, cfg.Save(path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)

	sched, err := loaded.SweepSchedule()
	require.NoError(t, err)
	assert.Equal(t, Schedule{Hour: 3, Minute: 15, Weekly: true}, sched)
}

func TestLoadConfigFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("[burn]\nmoratorium = \"3 days\"\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	burn, err := cfg.BurnMoratorium()
	require.NoError(t, err)
	assert.Equal(t, 72*time.Hour, burn)

	got, err := cfg.Get(KeySweepMoratorium)
	require.NoError(t, err)
	assert.Equal(t, "10 minutes", got)
}

func TestSetRejectsInvalidValue(t *testing.T) {
	cfg := Default()
	err := cfg.Set(KeyBurnMoratorium, "0 weeks")
	assert.ErrorIs(t, err, ErrInvalidValue)
	assert.Equal(t, "2 weeks", cfg.Burn.Moratorium)
}

func TestValidateJoinsErrors(t *testing.T) {
	cfg := Default()
	cfg.Sweep.Period = "hourly"
	cfg.Sweep.Time = "noon"

	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidValue)
	assert.Contains(t, err.Error(), "sweep.period")
	assert.Contains(t, err.Error(), "sweep.time")
	assert.NoError(t, Default().Validate())
}

func TestLoadConfigMissing(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, ErrNotInitialized)
}
