package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/statblob/internal/config"
	"github.com/talgya/statblob/internal/engine"
	"github.com/talgya/statblob/internal/entropy"
	"github.com/talgya/statblob/internal/geometry"
	"github.com/talgya/statblob/internal/perks"
	"github.com/talgya/statblob/internal/persistence"
)

func testSession(t *testing.T) *engine.Session {
	t.Helper()
	cfg := perks.DefaultGenConfig()
	cfg.Seed = 21
	return engine.NewSession(cfg.Limits, perks.Generate(cfg, entropy.NewSeeded(cfg.Seed)))
}

func TestPrintReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printReport(&buf, testSession(t), "4"))

	out := buf.String()
	assert.Contains(t, out, "seed       21")
	assert.Contains(t, out, "last run   4")
	assert.Contains(t, out, "perks      349")
	assert.Contains(t, out, "Supernova 9")
	assert.Contains(t, out, "Red Giant 40")
	assert.Contains(t, out, "Star      300")
	assert.Contains(t, out, "(30 of 120)")
	assert.Contains(t, out, " 135.0°  Strength")
	assert.Contains(t, out, " 337.5°  INT-DEX midpoint")
}

func TestPrintFind(t *testing.T) {
	s := testSession(t)
	s.AdjustAxis(geometry.Strength, 70)

	var buf bytes.Buffer
	require.NoError(t, printFind(&buf, s, "warior"))
	out := buf.String()
	assert.Contains(t, out, "Warrior")
	assert.Contains(t, out, "80 STR")
	assert.Contains(t, out, "unlocked")

	buf.Reset()
	require.NoError(t, printFind(&buf, s, "zzzzzzzzzz"))
	assert.Equal(t, "no perk matches \"zzzzzzzzzz\"\n", buf.String())
}

func TestLoadCatalogRestoresStoredSeed(t *testing.T) {
	db, err := persistence.Open(filepath.Join(t.TempDir(), "statblob.db"))
	require.NoError(t, err)
	defer db.Close()

	cfg := config.Default()
	cfg.Catalog.Seed = 5

	first, err := loadCatalog(cfg, db)
	require.NoError(t, err)
	_, err = db.LoadCatalog(5, cfg.Fingerprint())
	require.NoError(t, err)

	second, err := loadCatalog(cfg, db)
	require.NoError(t, err)
	assert.Equal(t, first.All(), second.All())

	cfg.Regenerate = true
	third, err := loadCatalog(cfg, db)
	require.NoError(t, err)
	assert.Equal(t, first.All(), third.All())
}

func TestLoadCatalogWithoutStore(t *testing.T) {
	cfg := config.Default()
	cfg.Catalog.Seed = 8
	c, err := loadCatalog(cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, 349, c.Len())
	assert.Equal(t, int64(8), c.Seed())
}

func TestRememberSeedReturnsPreviousRun(t *testing.T) {
	db, err := persistence.Open(filepath.Join(t.TempDir(), "statblob.db"))
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, "", rememberSeed(db, 5))
	assert.Equal(t, "5", rememberSeed(db, 9))
	assert.Equal(t, "9", rememberSeed(db, 9))

	var buf bytes.Buffer
	require.NoError(t, printReport(&buf, testSession(t), ""))
	assert.NotContains(t, buf.String(), "last run")
}
