// Command statblob plots a three-stat character build as a blob over a
// field of perks and lets you reshape it from the keyboard.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/talgya/statblob/internal/config"
	"github.com/talgya/statblob/internal/engine"
	"github.com/talgya/statblob/internal/entropy"
	"github.com/talgya/statblob/internal/perks"
	"github.com/talgya/statblob/internal/persistence"
	"github.com/talgya/statblob/internal/tui"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "statblob:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Load(args)
	if err != nil {
		return err
	}

	interactive := !cfg.Headless && cfg.Find == ""
	closeLog, err := setupLogging(cfg.Log, interactive)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg.Catalog.Seed = entropy.ResolveSeed(cfg.Catalog.Seed)
	slog.Info("statblob starting",
		"seed", cfg.Catalog.Seed,
		"min_stat", cfg.Limits.MinStat,
		"max_stat", cfg.Limits.MaxStat,
		"max_total", cfg.Limits.MaxTotal,
	)

	// ── Database ──────────────────────────────────────────────────────
	var db *persistence.DB
	if !cfg.Store.Disabled {
		db, err = persistence.Open(cfg.Store.Path)
		if err != nil {
			return err
		}
		defer db.Close()
		slog.Info("database opened", "path", cfg.Store.Path)
	}

	// ── Catalog (restored per seed, or generated) ─────────────────────
	catalog, err := loadCatalog(cfg, db)
	if err != nil {
		return err
	}

	var previousSeed string
	if db != nil {
		previousSeed = rememberSeed(db, catalog.Seed())
	}

	session := engine.NewSession(cfg.Limits, catalog)

	switch {
	case cfg.Find != "":
		return printFind(os.Stdout, session, cfg.Find)
	case cfg.Headless:
		return printReport(os.Stdout, session, previousSeed)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := tui.NewApp(session, cfg.Plot.OutlineSamples).Run(ctx); err != nil {
		return err
	}
	slog.Info("statblob stopped", "events", len(session.Events))
	return nil
}

// loadCatalog restores the stored catalog for the seed, or generates and
// stores a fresh one.
func loadCatalog(cfg config.Config, db *persistence.DB) (*perks.Catalog, error) {
	seed := cfg.Catalog.Seed
	fingerprint := cfg.Fingerprint()

	if db != nil && !cfg.Regenerate {
		catalog, err := db.LoadCatalog(seed, fingerprint)
		switch {
		case err == nil:
			slog.Info("catalog restored", "seed", seed, "perks", catalog.Len())
			return catalog, nil
		case !errors.Is(err, persistence.ErrCatalogNotFound):
			return nil, fmt.Errorf("load catalog: %w", err)
		}
	}

	slog.Info("generating catalog", "seed", seed)
	catalog := perks.Generate(cfg.GenConfig(), entropy.NewSeeded(seed))

	if db != nil {
		if err := db.SaveCatalog(catalog, fingerprint); err != nil {
			return nil, fmt.Errorf("save catalog: %w", err)
		}
	}
	return catalog, nil
}

// rememberSeed records seed as the last one used and returns the seed of the
// run before, or "" on a fresh database.
func rememberSeed(db *persistence.DB, seed int64) string {
	previous, err := db.GetMeta("last_seed")
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		slog.Warn("read meta failed", "error", err)
	}
	if err := db.SaveMeta("last_seed", strconv.FormatInt(seed, 10)); err != nil {
		slog.Warn("save meta failed", "error", err)
	}
	return previous
}

// setupLogging installs the default slog logger. While the terminal view owns
// the screen, logs go to the configured file or nowhere.
func setupLogging(lc config.LogConfig, interactive bool) (func(), error) {
	level, err := config.ParseLevel(lc.Level)
	if err != nil {
		return nil, err
	}

	var out io.Writer = os.Stderr
	closer := func() {}
	switch {
	case lc.File != "":
		f, err := os.OpenFile(lc.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		out = f
		closer = func() { f.Close() }
	case interactive:
		out = io.Discard
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})))
	return closer, nil
}
