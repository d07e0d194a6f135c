package persistence

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/statblob/internal/entropy"
	"github.com/talgya/statblob/internal/perks"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "nested", "statblob.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func generate(seed int64) *perks.Catalog {
	cfg := perks.DefaultGenConfig()
	cfg.Seed = seed
	return perks.Generate(cfg, entropy.NewSeeded(seed))
}

func TestSaveAndLoadCatalog(t *testing.T) {
	db := openTestDB(t)
	want := generate(7)

	assert.False(t, db.hasCatalog(7, "v1"))
	require.NoError(t, db.SaveCatalog(want, "v1"))
	assert.True(t, db.hasCatalog(7, "v1"))

	got, err := db.LoadCatalog(7, "v1")
	require.NoError(t, err)
	assert.Equal(t, want.Seed(), got.Seed())
	assert.Equal(t, want.All(), got.All())
}

func TestLoadCatalogMissing(t *testing.T) {
	db := openTestDB(t)
	_, err := db.LoadCatalog(99, "v1")
	assert.ErrorIs(t, err, ErrCatalogNotFound)
}

func TestLoadCatalogFingerprintMismatch(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.SaveCatalog(generate(3), "old"))

	assert.False(t, db.hasCatalog(3, "new"))
	_, err := db.LoadCatalog(3, "new")
	assert.ErrorIs(t, err, ErrCatalogNotFound)
}

func TestSaveCatalogReplacesSameSeed(t *testing.T) {
	db := openTestDB(t)
	full := generate(5)
	require.NoError(t, db.SaveCatalog(full, "a"))

	small := perks.NewCatalog(5, full.All()[:9])
	require.NoError(t, db.SaveCatalog(small, "b"))

	got, err := db.LoadCatalog(5, "b")
	require.NoError(t, err)
	assert.Equal(t, 9, got.Len())
}

func TestCatalogsAreKeptPerSeed(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.SaveCatalog(generate(1), "v1"))
	require.NoError(t, db.SaveCatalog(generate(2), "v1"))

	one, err := db.LoadCatalog(1, "v1")
	require.NoError(t, err)
	two, err := db.LoadCatalog(2, "v1")
	require.NoError(t, err)

	assert.Equal(t, 349, one.Len())
	assert.Equal(t, 349, two.Len())
	assert.NotEqual(t, one.At(100).Angle, two.At(100).Angle)
}

func TestMeta(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.SaveMeta("last_seed", "42"))
	require.NoError(t, db.SaveMeta("last_seed", "43"))

	v, err := db.GetMeta("last_seed")
	require.NoError(t, err)
	assert.Equal(t, "43", v)

	_, err = db.GetMeta("absent")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}
