// Package catalog records the sprites of many sprite files in a SQLite
// database so they can be searched by name.
package catalog

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/spriteview/go-spritefile/spritefile"
)

// Catalog is an open catalog database.
type Catalog struct {
	db *sql.DB

	// SQLite allows one writer; scan workers take turns.
	writeLock sync.Mutex
}

// Entry is one catalogued sprite.
type Entry struct {
	Path       string
	Name       string
	Width      int
	Height     int
	BPP        int
	DPIX       int
	DPIY       int
	Model      string
	HasPalette bool
	HasMask    bool
}

var schema = []string{
	"CREATE TABLE IF NOT EXISTS spritefile (id INTEGER PRIMARY KEY NOT NULL, path TEXT NOT NULL UNIQUE, mtime INTEGER NOT NULL, count INTEGER NOT NULL)",
	"CREATE TABLE IF NOT EXISTS sprite (spritefile_id INTEGER NOT NULL, name TEXT NOT NULL, width INTEGER NOT NULL, height INTEGER NOT NULL, bpp INTEGER NOT NULL, dpi_x INTEGER NOT NULL, dpi_y INTEGER NOT NULL, model TEXT NOT NULL, has_palette INTEGER NOT NULL, has_mask INTEGER NOT NULL, FOREIGN KEY(spritefile_id) REFERENCES spritefile(id) ON DELETE CASCADE)",
	"CREATE INDEX IF NOT EXISTS sprite_name ON sprite (name)",
}

// Open opens the catalog in file, creating the file and its tables as needed.
func Open(file string) (*Catalog, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on&_busy_timeout=5000", file))
	if err != nil {
		return nil, errors.Wrap(err, "opening catalog")
	}
	db.SetMaxOpenConns(10)

	for _, stmt := range schema {
		if _, err = db.Exec(stmt); err != nil {
			db.Close()
			return nil, errors.Wrap(err, "creating catalog tables")
		}
	}
	return &Catalog{db: db}, nil
}

// Close closes the database.
func (c *Catalog) Close() error {
	return c.db.Close()
}

// upToDate reports whether path is catalogued with the given mtime.
func (c *Catalog) upToDate(path string, mtime time.Time) (bool, error) {
	var stored int64
	switch err := c.db.QueryRow("SELECT mtime FROM spritefile WHERE path = ?", path).Scan(&stored); err {
	case sql.ErrNoRows:
		return false, nil
	case nil:
		return stored == mtime.UnixNano(), nil
	default:
		return false, err
	}
}

// Add replaces whatever is recorded for path with the sprites of ct.
func (c *Catalog) Add(path string, mtime time.Time, ct *spritefile.Container) error {
	c.writeLock.Lock()
	defer c.writeLock.Unlock()

	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := remove(tx, path); err != nil {
		return err
	}
	result, err := tx.Exec("INSERT INTO spritefile (path, mtime, count) VALUES (?, ?, ?)", path, mtime.UnixNano(), ct.DeclaredCount())
	if err != nil {
		return errors.Wrapf(err, "recording %s", path)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare("INSERT INTO sprite (spritefile_id, name, width, height, bpp, dpi_x, dpi_y, model, has_palette, has_mask) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	err = ct.Each(func(s *spritefile.Bitmap) error {
		_, err := stmt.Exec(id, s.Name(), s.Width(), s.Height(), s.BPP(), s.DPIX(), s.DPIY(), s.ColorModel().String(), s.Palette() != nil, s.HasMask())
		return errors.Wrapf(err, "recording sprite %q", s.Name())
	})
	if err != nil {
		return err
	}
	return tx.Commit()
}

// Remove forgets path.
func (c *Catalog) Remove(path string) error {
	c.writeLock.Lock()
	defer c.writeLock.Unlock()

	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if err := remove(tx, path); err != nil {
		return err
	}
	return tx.Commit()
}

func remove(tx *sql.Tx, path string) error {
	if _, err := tx.Exec("DELETE FROM sprite WHERE spritefile_id IN (SELECT id FROM spritefile WHERE path = ?)", path); err != nil {
		return errors.Wrapf(err, "removing sprites of %s", path)
	}
	if _, err := tx.Exec("DELETE FROM spritefile WHERE path = ?", path); err != nil {
		return errors.Wrapf(err, "removing %s", path)
	}
	return nil
}

const selectEntries = "SELECT f.path, s.name, s.width, s.height, s.bpp, s.dpi_x, s.dpi_y, s.model, s.has_palette, s.has_mask FROM sprite AS s JOIN spritefile AS f ON s.spritefile_id = f.id"

func (c *Catalog) query(q string, args ...interface{}) ([]Entry, error) {
	rows, err := c.db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Path, &e.Name, &e.Width, &e.Height, &e.BPP, &e.DPIX, &e.DPIY, &e.Model, &e.HasPalette, &e.HasMask); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Find returns the sprites whose name matches the SQL LIKE pattern, ordered
// by name and then path.
func (c *Catalog) Find(pattern string) ([]Entry, error) {
	return c.query(selectEntries+" WHERE s.name LIKE ? ORDER BY s.name, f.path", pattern)
}

// Sprites returns the sprites recorded for path, ordered by name.
func (c *Catalog) Sprites(path string) ([]Entry, error) {
	return c.query(selectEntries+" WHERE f.path = ? ORDER BY s.name", path)
}

// Files returns every catalogued path.
func (c *Catalog) Files() ([]string, error) {
	rows, err := c.db.Query("SELECT path FROM spritefile ORDER BY path")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
