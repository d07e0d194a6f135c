package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "statblob.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv("STATBLOB_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("STATBLOB_DB", "")
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, 10.0, cfg.Limits.MinStat)
	assert.Equal(t, 100.0, cfg.Limits.MaxStat)
	assert.Equal(t, 120.0, cfg.Limits.MaxTotal)
	assert.Equal(t, 5.0, cfg.Limits.Step)
	assert.Len(t, cfg.Catalog.Majors, 9)
	assert.Equal(t, 40, cfg.Catalog.Giants.Count)
	assert.Equal(t, 300, cfg.Catalog.Stars.Count)
	assert.Equal(t, 90, cfg.Plot.OutlineSamples)
	assert.Equal(t, "data/statblob.db", cfg.Store.Path)
	assert.False(t, cfg.Headless)
}

func TestLoadFileThenFlags(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
limits:
  min_stat: 5
  max_stat: 90
  max_total: 100
  step: 1
catalog:
  seed: 11
  stars:
    count: 10
    cost: 1
    min_radius_ratio: 0.1
store:
  path: from-file.db
log:
  level: debug
`)

	cfg, err := Load([]string{"-config", path, "-seed", "77", "-headless", "-find", " monk "})
	require.NoError(t, err)

	assert.Equal(t, 90.0, cfg.Limits.MaxStat)
	assert.Equal(t, 1.0, cfg.Limits.Step)
	assert.Equal(t, int64(77), cfg.Catalog.Seed)
	assert.Equal(t, 10, cfg.Catalog.Stars.Count)
	assert.Equal(t, 40, cfg.Catalog.Giants.Count, "unset sections keep defaults")
	assert.Equal(t, "from-file.db", cfg.Store.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Headless)
	assert.Equal(t, "monk", cfg.Find)

	gen := cfg.GenConfig()
	assert.Equal(t, int64(77), gen.Seed)
	assert.Equal(t, 5.0, gen.Limits.MinStat)
}

func TestLoadEnvironmentDatabase(t *testing.T) {
	clearEnv(t)
	t.Setenv("STATBLOB_DB", "env.db")

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "env.db", cfg.Store.Path)

	cfg, err = Load([]string{"-db", "flag.db"})
	require.NoError(t, err)
	assert.Equal(t, "flag.db", cfg.Store.Path)
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "limits:\n  min_stats: 5\n")

	_, err := Load([]string{"-config", path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config yaml")
}

func TestLoadMissingExplicitFile(t *testing.T) {
	clearEnv(t)
	_, err := Load([]string{"-config", filepath.Join(t.TempDir(), "nope.yaml")})
	assert.Error(t, err)
}

func TestLoadEmptyFile(t *testing.T) {
	clearEnv(t)
	cfg, err := Load([]string{"-config", writeConfig(t, "")})
	require.NoError(t, err)
	assert.Equal(t, Default().Limits, cfg.Limits)
}

func TestLoadBadFlag(t *testing.T) {
	clearEnv(t)
	_, err := Load([]string{"-seed", "many"})
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"budget below floor", func(c *Config) { c.Limits.MaxTotal = 20 }},
		{"budget cannot reach ceiling", func(c *Config) { c.Limits.MaxTotal = 110 }},
		{"negative count", func(c *Config) { c.Catalog.Giants.Count = -1 }},
		{"ratio at one", func(c *Config) { c.Catalog.Stars.MinRadiusRatio = 1 }},
		{"major beyond ceiling", func(c *Config) { c.Catalog.Majors[0].Radius = 150 }},
		{"unnamed major", func(c *Config) { c.Catalog.Majors[1].Name = " " }},
		{"too few samples", func(c *Config) { c.Plot.OutlineSamples = 2 }},
		{"empty store path", func(c *Config) { c.Store.Path = "" }},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	cfg := Default()
	cfg.Store = StoreConfig{Disabled: true}
	assert.NoError(t, cfg.Validate())
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("WARN")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, lvl)

	lvl, err = ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, lvl)
}

func TestFingerprintTracksGeneratorSettings(t *testing.T) {
	a := Default()
	b := Default()
	b.Catalog.Seed = 99
	assert.Equal(t, a.Fingerprint(), b.Fingerprint(), "seed is keyed separately")

	b.Catalog.Stars.Count = 12
	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())

	c := Default()
	c.Log.Level = "debug"
	c.Limits.Step = 1
	assert.Equal(t, a.Fingerprint(), c.Fingerprint(), "step size does not move perks")

	c.Limits.MaxTotal = 150
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())
}
