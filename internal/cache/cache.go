package cache

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// snapshotKey is version-qualified: bumping the version orphans old
// snapshots instead of trying to migrate them.
const snapshotKey = "posts:v2"

// Cache is a single-slot snapshot store. The whole post list is written
// and read as one value; concurrent writers race benignly because every
// write is a full snapshot and the last one wins.
type Cache struct {
	readDB  *sql.DB
	writeDB *sql.DB
}

func Open(dbPath string) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	writeDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening write db: %w", err)
	}
	writeDB.SetMaxOpenConns(1)

	readDB, err := sql.Open("sqlite", dbPath+"?mode=ro")
	if err != nil {
		writeDB.Close()
		return nil, fmt.Errorf("opening read db: %w", err)
	}

	c := &Cache{readDB: readDB, writeDB: writeDB}
	if err := c.init(); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

func (c *Cache) init() error {
	_, err := c.writeDB.Exec(`
		CREATE TABLE IF NOT EXISTS slots (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at DATETIME NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}
	return nil
}

func (c *Cache) Close() error {
	var errs []error
	if c.readDB != nil {
		errs = append(errs, c.readDB.Close())
	}
	if c.writeDB != nil {
		errs = append(errs, c.writeDB.Close())
	}
	for _, e := range errs {
		if e != nil {
			return e
		}
	}
	return nil
}

// Load reads the post snapshot. A missing slot returns ok=false. An
// undecodable slot is treated the same way: it is cleared and reported
// as a miss, never as an error the caller must surface.
func (c *Cache) Load() (Snapshot, bool, error) {
	var value string
	err := c.readDB.QueryRow("SELECT value FROM slots WHERE key = ?", snapshotKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return Snapshot{}, false, nil
	}
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("reading snapshot: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal([]byte(value), &snap); err != nil {
		slog.Warn("discarding undecodable snapshot", "key", snapshotKey, "err", err)
		if clearErr := c.Clear(); clearErr != nil {
			return Snapshot{}, false, fmt.Errorf("clearing bad snapshot: %w", clearErr)
		}
		return Snapshot{}, false, nil
	}
	return snap, true, nil
}

// Save replaces the snapshot wholesale in a single upsert.
func (c *Cache) Save(snap Snapshot) error {
	value, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	_, err = c.writeDB.Exec(`
		INSERT INTO slots (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, snapshotKey, string(value), time.Now().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	return nil
}

// Clear removes the snapshot slot.
func (c *Cache) Clear() error {
	_, err := c.writeDB.Exec("DELETE FROM slots WHERE key = ?", snapshotKey)
	return err
}

// Stats returns the stored post count and the database file size.
func (c *Cache) Stats(dbPath string) (int, int64, error) {
	snap, ok, err := c.Load()
	if err != nil {
		return 0, 0, err
	}
	count := 0
	if ok {
		count = len(snap.Posts)
	}
	info, err := os.Stat(dbPath)
	if err != nil {
		return count, 0, err
	}
	return count, info.Size(), nil
}
