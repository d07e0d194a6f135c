// Package persistence provides SQLite-based catalog storage. Catalogs are
// keyed by seed so a restart with the same seed restores the same perks.
package persistence

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/statblob/internal/perks"
)

// ErrCatalogNotFound is returned when no catalog matches the seed and
// fingerprint.
var ErrCatalogNotFound = errors.New("catalog not found")

// DB wraps a SQLite connection for catalog persistence.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	conn, err := sqlx.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS catalogs (
		seed INTEGER PRIMARY KEY,
		fingerprint TEXT NOT NULL,
		perk_count INTEGER NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS perks (
		id TEXT PRIMARY KEY,
		seed INTEGER NOT NULL,
		ordinal INTEGER NOT NULL,
		tier INTEGER NOT NULL,
		name TEXT NOT NULL,
		description TEXT NOT NULL,
		theme TEXT NOT NULL,
		angle REAL NOT NULL,
		radius REAL NOT NULL,
		cost REAL NOT NULL
	);

	CREATE TABLE IF NOT EXISTS catalog_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE UNIQUE INDEX IF NOT EXISTS idx_perks_seed_ordinal ON perks(seed, ordinal);
	`
	_, err := db.conn.Exec(schema)
	return err
}

type perkRow struct {
	ID          string  `db:"id"`
	Seed        int64   `db:"seed"`
	Ordinal     int     `db:"ordinal"`
	Tier        int     `db:"tier"`
	Name        string  `db:"name"`
	Description string  `db:"description"`
	Theme       string  `db:"theme"`
	Angle       float64 `db:"angle"`
	Radius      float64 `db:"radius"`
	Cost        float64 `db:"cost"`
}

// SaveCatalog replaces whatever is stored for the catalog's seed.
// fingerprint identifies the generator settings that produced it.
func (db *DB) SaveCatalog(c *perks.Catalog, fingerprint string) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	seed := c.Seed()
	if _, err := tx.Exec("DELETE FROM perks WHERE seed = ?", seed); err != nil {
		return err
	}

	stmt, err := tx.PrepareNamed(`INSERT INTO perks
		(id, seed, ordinal, tier, name, description, theme, angle, radius, cost)
		VALUES (:id, :seed, :ordinal, :tier, :name, :description, :theme, :angle, :radius, :cost)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, p := range c.All() {
		row := perkRow{
			ID:          p.ID.String(),
			Seed:        seed,
			Ordinal:     p.Ordinal,
			Tier:        int(p.Tier),
			Name:        p.Name,
			Description: p.Description,
			Theme:       p.Theme,
			Angle:       p.Angle,
			Radius:      p.Radius,
			Cost:        p.Cost,
		}
		if _, err := stmt.Exec(row); err != nil {
			return fmt.Errorf("insert perk %q: %w", p.Name, err)
		}
	}

	_, err = tx.Exec(`INSERT OR REPLACE INTO catalogs (seed, fingerprint, perk_count, created_at)
		VALUES (?, ?, ?, ?)`,
		seed, fingerprint, c.Len(), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert catalog header: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	slog.Info("catalog saved", "seed", seed, "perks", c.Len())
	return nil
}

// hasCatalog reports whether a catalog generated with fingerprint is stored
// for seed.
func (db *DB) hasCatalog(seed int64, fingerprint string) bool {
	var count int
	err := db.conn.Get(&count,
		"SELECT COUNT(*) FROM catalogs WHERE seed = ? AND fingerprint = ?",
		seed, fingerprint,
	)
	return err == nil && count > 0
}

// LoadCatalog restores the catalog stored for seed. A catalog saved under a
// different fingerprint counts as missing.
func (db *DB) LoadCatalog(seed int64, fingerprint string) (*perks.Catalog, error) {
	var header struct {
		Fingerprint string `db:"fingerprint"`
		PerkCount   int    `db:"perk_count"`
	}
	err := db.conn.Get(&header, "SELECT fingerprint, perk_count FROM catalogs WHERE seed = ?", seed)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCatalogNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load catalog header: %w", err)
	}
	if header.Fingerprint != fingerprint {
		slog.Info("stored catalog was generated with other settings", "seed", seed)
		return nil, ErrCatalogNotFound
	}

	var rows []perkRow
	err = db.conn.Select(&rows, `SELECT id, seed, ordinal, tier, name, description, theme, angle, radius, cost
		FROM perks WHERE seed = ? ORDER BY ordinal`, seed)
	if err != nil {
		return nil, fmt.Errorf("load perks: %w", err)
	}
	if len(rows) != header.PerkCount {
		return nil, fmt.Errorf("catalog %d: expected %d perks, found %d", seed, header.PerkCount, len(rows))
	}

	list := make([]perks.Perk, 0, len(rows))
	for _, r := range rows {
		id, err := uuid.Parse(r.ID)
		if err != nil {
			return nil, fmt.Errorf("perk %q: %w", r.Name, err)
		}
		list = append(list, perks.Perk{
			ID:          id,
			Ordinal:     r.Ordinal,
			Tier:        perks.Tier(r.Tier),
			Name:        r.Name,
			Description: r.Description,
			Theme:       r.Theme,
			Angle:       r.Angle,
			Radius:      r.Radius,
			Cost:        r.Cost,
		})
	}

	return perks.NewCatalog(seed, list), nil
}

// SaveMeta stores a key-value pair in catalog metadata.
func (db *DB) SaveMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO catalog_meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM catalog_meta WHERE key = ?", key)
	return value, err
}
