package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	_ "github.com/mattn/go-sqlite3"

	"github.com/agenthands/graphene/internal/core/model"
)

// ErrIO marks any cache read/write failure. The orchestrator treats these
// as fatal: extraction calls are expensive and silently re-extracting would
// mask cache availability problems.
var ErrIO = errors.New("extraction cache i/o failure")

const schemaSQL = `
CREATE TABLE IF NOT EXISTS extractions (
	fingerprint TEXT PRIMARY KEY,
	doc_id      TEXT NOT NULL,
	triples     TEXT NOT NULL,
	created_at  DATETIME DEFAULT CURRENT_TIMESTAMP
);
`

// Cache is the persistent extraction cache: fingerprint -> triple list.
// Writes go through SQLite transactions, so a crash mid-write can never
// leave a partially readable entry. A sibling lock file enforces the
// single-writer model across processes.
type Cache struct {
	db   *sql.DB
	lock *flock.Flock
}

// Open creates or opens the cache database. A missing file is a cold
// start, not an error.
func Open(path string) (*Cache, error) {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("%w: creating cache directory: %v", ErrIO, err)
		}
	}

	lock := flock.New(path + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("%w: locking cache: %v", ErrIO, err)
	}
	if !locked {
		return nil, fmt.Errorf("%w: cache %s is in use by another run", ErrIO, path)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		lock.Unlock()
		return nil, fmt.Errorf("%w: opening database: %v", ErrIO, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		lock.Unlock()
		return nil, fmt.Errorf("%w: pinging database: %v", ErrIO, err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		lock.Unlock()
		return nil, fmt.Errorf("%w: creating schema: %v", ErrIO, err)
	}

	return &Cache{db: db, lock: lock}, nil
}

func (c *Cache) Close() error {
	err := c.db.Close()
	if uerr := c.lock.Unlock(); err == nil {
		err = uerr
	}
	return err
}

// Get returns the stored entry for a fingerprint, or nil on a miss. A miss
// is not an error.
func (c *Cache) Get(ctx context.Context, fingerprint string) (*model.CacheEntry, error) {
	var docID, triplesJSON string
	err := c.db.QueryRowContext(ctx,
		`SELECT doc_id, triples FROM extractions WHERE fingerprint = ?`,
		fingerprint,
	).Scan(&docID, &triplesJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading entry: %v", ErrIO, err)
	}

	var triples []model.Triple
	if err := json.Unmarshal([]byte(triplesJSON), &triples); err != nil {
		return nil, fmt.Errorf("%w: decoding entry %s: %v", ErrIO, fingerprint, err)
	}

	return &model.CacheEntry{Fingerprint: fingerprint, DocID: docID, Triples: triples}, nil
}

// Put writes or overwrites the entry for a fingerprint. An empty triple
// list is a valid entry: it records that the document was processed and
// yielded nothing.
func (c *Cache) Put(ctx context.Context, entry model.CacheEntry) error {
	triplesJSON, err := json.Marshal(entry.Triples)
	if err != nil {
		return fmt.Errorf("%w: encoding entry: %v", ErrIO, err)
	}

	_, err = c.db.ExecContext(ctx, `
		INSERT INTO extractions (fingerprint, doc_id, triples)
		VALUES (?, ?, ?)
		ON CONFLICT(fingerprint) DO UPDATE SET
			doc_id = excluded.doc_id,
			triples = excluded.triples,
			created_at = CURRENT_TIMESTAMP`,
		entry.Fingerprint, entry.DocID, string(triplesJSON),
	)
	if err != nil {
		return fmt.Errorf("%w: writing entry: %v", ErrIO, err)
	}
	return nil
}

// Clear removes all entries. Supports manual invalidation when disk space
// matters; content-derived fingerprints make it unnecessary for correctness.
func (c *Cache) Clear(ctx context.Context) error {
	if _, err := c.db.ExecContext(ctx, `DELETE FROM extractions`); err != nil {
		return fmt.Errorf("%w: clearing cache: %v", ErrIO, err)
	}
	return nil
}

// Len reports the number of cached entries.
func (c *Cache) Len(ctx context.Context) (int, error) {
	var n int
	if err := c.db.QueryRowContext(ctx, `SELECT count(*) FROM extractions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("%w: counting entries: %v", ErrIO, err)
	}
	return n, nil
}
