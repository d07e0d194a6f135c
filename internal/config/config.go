// Package config loads statblob settings from an optional YAML file, then
// overlays command-line flags. Defaults reproduce the stock 10/100/120 build
// and the 9/40/300 perk catalog.
package config

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"hash/fnv"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/talgya/statblob/internal/build"
	"github.com/talgya/statblob/internal/perks"
	"github.com/talgya/statblob/internal/reach"
)

// DefaultPath is the config file read when neither -config nor
// STATBLOB_CONFIG names one. A missing file is not an error.
const DefaultPath = "statblob.yaml"

// Config is the resolved configuration for one run.
type Config struct {
	Limits  build.Limits  `yaml:"limits"`
	Catalog CatalogConfig `yaml:"catalog"`
	Plot    PlotConfig    `yaml:"plot"`
	Store   StoreConfig   `yaml:"store"`
	Log     LogConfig     `yaml:"log"`

	// Run mode, set by flags only.
	Headless   bool   `yaml:"-"`
	Find       string `yaml:"-"`
	Regenerate bool   `yaml:"-"`
}

// CatalogConfig controls perk generation.
type CatalogConfig struct {
	Seed      int64            `yaml:"seed"` // 0 picks a fresh seed
	MajorCost float64          `yaml:"major_cost"`
	Majors    []perks.Landmark `yaml:"majors"`
	Giants    perks.TierSpec   `yaml:"giants"`
	Stars     perks.TierSpec   `yaml:"stars"`
}

// PlotConfig controls the blob outline.
type PlotConfig struct {
	OutlineSamples int `yaml:"outline_samples"`
}

// StoreConfig controls the catalog database.
type StoreConfig struct {
	Path     string `yaml:"path"`
	Disabled bool   `yaml:"disabled"`
}

// LogConfig controls slog output.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // Log destination while the TUI owns the terminal
}

// Default returns the stock configuration.
func Default() Config {
	gen := perks.DefaultGenConfig()
	return Config{
		Limits: build.DefaultLimits(),
		Catalog: CatalogConfig{
			MajorCost: gen.MajorCost,
			Majors:    gen.Majors,
			Giants:    gen.Giants,
			Stars:     gen.Stars,
		},
		Plot:  PlotConfig{OutlineSamples: reach.DefaultSamples},
		Store: StoreConfig{Path: "data/statblob.db"},
		Log:   LogConfig{Level: "info"},
	}
}

// GenConfig converts the catalog section into generator parameters.
func (c Config) GenConfig() perks.GenConfig {
	return perks.GenConfig{
		Limits:    c.Limits,
		Seed:      c.Catalog.Seed,
		MajorCost: c.Catalog.MajorCost,
		Majors:    c.Catalog.Majors,
		Giants:    c.Catalog.Giants,
		Stars:     c.Catalog.Stars,
	}
}

// Fingerprint identifies the generator settings. Two configs with the same
// fingerprint and seed produce the same catalog.
func (c Config) Fingerprint() string {
	gen := c.GenConfig()
	gen.Seed = 0
	gen.Limits.Step = 0 // placement never reads it
	b, err := yaml.Marshal(gen)
	if err != nil {
		return ""
	}
	h := fnv.New64a()
	h.Write(b)
	return strconv.FormatUint(h.Sum64(), 16)
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := c.Limits.Validate(); err != nil {
		return fmt.Errorf("limits: %w", err)
	}
	if c.Catalog.MajorCost < 0 {
		return fmt.Errorf("catalog: major_cost must be non-negative, got %v", c.Catalog.MajorCost)
	}
	for _, m := range c.Catalog.Majors {
		if strings.TrimSpace(m.Name) == "" {
			return errors.New("catalog: major perk with empty name")
		}
		if m.Radius < 0 || m.Radius > c.Limits.MaxStat {
			return fmt.Errorf("catalog: major %q radius %v outside [0, %v]", m.Name, m.Radius, c.Limits.MaxStat)
		}
	}
	for name, spec := range map[string]perks.TierSpec{"giants": c.Catalog.Giants, "stars": c.Catalog.Stars} {
		if spec.Count < 0 {
			return fmt.Errorf("catalog: %s count must be non-negative, got %d", name, spec.Count)
		}
		if spec.MinRadiusRatio < 0 || spec.MinRadiusRatio >= 1 {
			return fmt.Errorf("catalog: %s min_radius_ratio must be in [0, 1), got %v", name, spec.MinRadiusRatio)
		}
		if spec.Cost < 0 {
			return fmt.Errorf("catalog: %s cost must be non-negative, got %v", name, spec.Cost)
		}
	}
	if c.Plot.OutlineSamples < 3 {
		return fmt.Errorf("plot: outline_samples must be at least 3, got %d", c.Plot.OutlineSamples)
	}
	if !c.Store.Disabled && strings.TrimSpace(c.Store.Path) == "" {
		return errors.New("store: path is empty (set store.disabled to run without a database)")
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	return nil
}

// ParseLevel maps a level name to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

type stringOpt struct {
	v   string
	set bool
}

func (o *stringOpt) String() string { return o.v }
func (o *stringOpt) Set(v string) error {
	o.v = v
	o.set = true
	return nil
}

type int64Opt struct {
	v   int64
	set bool
}

func (o *int64Opt) String() string { return strconv.FormatInt(o.v, 10) }
func (o *int64Opt) Set(v string) error {
	n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil {
		return err
	}
	o.v = n
	o.set = true
	return nil
}

// Load resolves the configuration: defaults, then the YAML file, then
// environment, then flags.
func Load(args []string) (Config, error) {
	fs := flag.NewFlagSet("statblob", flag.ContinueOnError)
	fs.SetOutput(io.Discard) // suppress default usage noise; return errors instead

	var configPath, dbOpt, levelOpt, logFileOpt stringOpt
	var seedOpt int64Opt
	var noStore, headless, regenerate bool
	var find string

	fs.Var(&configPath, "config", "path to config yaml (default: $STATBLOB_CONFIG or statblob.yaml)")
	fs.Var(&seedOpt, "seed", "catalog seed (0 picks a fresh one)")
	fs.Var(&dbOpt, "db", "catalog database path (default: $STATBLOB_DB or data/statblob.db)")
	fs.BoolVar(&noStore, "no-store", false, "do not load or save catalogs")
	fs.Var(&levelOpt, "log-level", "debug, info, warn or error")
	fs.Var(&logFileOpt, "log-file", "write logs here while the terminal view is running")
	fs.BoolVar(&headless, "headless", false, "print a catalog report instead of opening the terminal view")
	fs.StringVar(&find, "find", "", "look up perks by (approximate) name and exit")
	fs.BoolVar(&regenerate, "regenerate", false, "ignore any stored catalog for the seed")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	path := strings.TrimSpace(configPath.v)
	if !configPath.set {
		path = envOrDefault("STATBLOB_CONFIG", DefaultPath)
	}

	cfg := Default()
	if err := loadFile(path, &cfg, configPath.set); err != nil {
		return Config{}, err
	}

	cfg.Store.Path = envOrDefault("STATBLOB_DB", cfg.Store.Path)

	if seedOpt.set {
		cfg.Catalog.Seed = seedOpt.v
	}
	if dbOpt.set {
		cfg.Store.Path = strings.TrimSpace(dbOpt.v)
	}
	if noStore {
		cfg.Store.Disabled = true
	}
	if levelOpt.set {
		cfg.Log.Level = strings.TrimSpace(levelOpt.v)
	}
	if logFileOpt.set {
		cfg.Log.File = strings.TrimSpace(logFileOpt.v)
	}
	cfg.Headless = headless
	cfg.Find = strings.TrimSpace(find)
	cfg.Regenerate = regenerate

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// loadFile decodes path over cfg. A missing file is only an error when the
// caller named it explicitly.
func loadFile(path string, cfg *Config, required bool) error {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return nil
		}
		return fmt.Errorf("read config yaml %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil // empty file
		}
		return fmt.Errorf("parse config yaml %s: %w", path, err)
	}
	return nil
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}
