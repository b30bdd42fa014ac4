package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.False(t, cfg.Store.ForceCookies)
	assert.False(t, cfg.Store.Persistent)
	assert.Equal(t, float64(1), cfg.Store.ExpirationMultiplier)
	assert.Equal(t, DefaultSweepSchedule, cfg.Sweep.Schedule)
	assert.False(t, cfg.Sweep.Enabled)
}

func TestLoad_YAML(t *testing.T) {
	path := writeConfig(t, `
store:
  force_cookies: true
  persistent: true
  expiration_multiplier: 1000
area:
  url: " /var/lib/app/area.json "
sweep:
  enabled: true
  schedule: "*/5 * * * *"
logging:
  level: debug
  format: json
  compress: true
unknown_section:
  ignored: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.Store.ForceCookies)
	assert.True(t, cfg.Store.Persistent)
	assert.Equal(t, float64(1000), cfg.Store.ExpirationMultiplier)
	assert.Equal(t, "/var/lib/app/area.json", cfg.Area.URL)
	assert.True(t, cfg.Sweep.Enabled)
	assert.Equal(t, "*/5 * * * *", cfg.Sweep.Schedule)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Compress)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
store:
  expiration_multiplier: 1000
sweep:
  schedule: "@every 10s"
`)
	t.Setenv("CLIENTSTORE_STORE_FORCE_COOKIES", "true")
	t.Setenv("CLIENTSTORE_STORE_EXPIRATION_MULTIPLIER", "60000")
	t.Setenv("CLIENTSTORE_LOG_LEVEL", "warn")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.Store.ForceCookies)
	assert.Equal(t, float64(60000), cfg.Store.ExpirationMultiplier)
	assert.Equal(t, "@every 10s", cfg.Sweep.Schedule)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoad_NoFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, float64(1), cfg.Store.ExpirationMultiplier)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "store: [not, a, map"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "sweep:\n  schedule: \"every now and then\"\n"))
	assert.True(t, errors.Is(err, ErrInvalidSchedule), "got %v", err)

	_, err = Load(writeConfig(t, "logging:\n  format: xml\n"))
	assert.Error(t, err)
}

func TestOptions_Normalize(t *testing.T) {
	for _, m := range []float64{0, -5, math.NaN(), math.Inf(1), math.Inf(-1)} {
		o := Options{ExpirationMultiplier: m}
		o.Normalize()
		assert.Equal(t, float64(1), o.ExpirationMultiplier, "multiplier %v", m)
	}

	o := Options{ExpirationMultiplier: 0.5}
	o.Normalize()
	assert.Equal(t, 0.5, o.ExpirationMultiplier)
}

func TestOptionsFromMap(t *testing.T) {
	tests := []struct {
		name string
		in   map[string]any
		want Options
	}{
		{
			name: "defaults",
			in:   map[string]any{},
			want: Options{ExpirationMultiplier: 1},
		},
		{
			name: "camel case",
			in: map[string]any{
				"forceCookies":         true,
				"persistent":           true,
				"expirationMultiplier": 1000,
			},
			want: Options{ForceCookies: true, Persistent: true, ExpirationMultiplier: 1000},
		},
		{
			name: "snake case and strings",
			in: map[string]any{
				"force_cookies":         "true",
				"expiration_multiplier": "60",
			},
			want: Options{ForceCookies: true, ExpirationMultiplier: 60},
		},
		{
			name: "unrecognized keys ignored",
			in: map[string]any{
				"domain":     "example.com",
				"maxEntries": 10,
				"persistent": false,
			},
			want: Options{ExpirationMultiplier: 1},
		},
		{
			name: "nil values ignored",
			in:   map[string]any{"expirationMultiplier": nil},
			want: Options{ExpirationMultiplier: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OptionsFromMap(tt.in))
		})
	}
}
