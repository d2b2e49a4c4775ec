// Package cache memoizes translate.ToDFA results in a SQLite database,
// one row per formula, modeled on server/dao/sqlite's one-struct-per-table
// repository shape: a single table, a thin Go type wrapping *sql.DB, and
// a REZI-encoded payload column the way server/dao/sqlite/sessions.go
// stores its own structs.
package cache

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dekarrin/rezi"
	_ "modernc.org/sqlite"

	"github.com/whitemech/lydia-sub000/dfa"
	"github.com/whitemech/lydia-sub000/errs"
	"github.com/whitemech/lydia-sub000/mona"
)

// envelope is the REZI-encoded row payload: the MONA-formatted DFA bytes
// plus the formula's canonical s-expression, not the MONA bytes directly.
// REZI isn't a fit for the MONA grammar itself (mona is its own text
// format with its own reader/writer), but encoding this small envelope
// struct is exactly the job REZI is built for.
type envelope struct {
	MonaBytes    []byte
	FormulaSExpr string
}

// Cache wraps a modernc.org/sqlite database holding one
// translations(formula_key, payload, created_unix) table.
type Cache struct {
	db *sql.DB
}

// Open opens (creating if necessary) a cache database at path.
func Open(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errs.IO("cache: opening "+path, err)
	}
	c := &Cache{db: db}
	if err := c.init(); err != nil {
		db.Close()
		return nil, err
	}
	return c, nil
}

func (c *Cache) init() error {
	stmt := `CREATE TABLE IF NOT EXISTS translations (
		formula_key TEXT NOT NULL PRIMARY KEY,
		payload BLOB NOT NULL,
		created_unix INTEGER NOT NULL
	);`
	if _, err := c.db.Exec(stmt); err != nil {
		return errs.IO("cache: creating translations table", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Get returns the cached DFA for formulaKey, or ok=false on a cache miss.
func (c *Cache) Get(ctx context.Context, formulaKey string) (d *dfa.DFA, ok bool, err error) {
	row := c.db.QueryRowContext(ctx, `SELECT payload FROM translations WHERE formula_key = ?`, formulaKey)

	var payload []byte
	if err := row.Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, errs.IO("cache: reading "+formulaKey, err)
	}

	var env envelope
	n, decErr := rezi.DecBinary(payload, &env)
	if decErr != nil {
		return nil, false, errs.IO("cache: decoding stored payload for "+formulaKey, decErr)
	}
	if n != len(payload) {
		return nil, false, errs.IO(fmt.Sprintf("cache: payload byte count mismatch for %s (consumed %d/%d)", formulaKey, n, len(payload)))
	}

	d, err = mona.Read(bytes.NewReader(env.MonaBytes))
	if err != nil {
		return nil, false, errs.IO("cache: parsing cached MONA bytes for "+formulaKey, err)
	}
	return d, true, nil
}

// Put stores d under formulaKey, alongside its canonical s-expression
// (kept for diagnostics/inspection, not read back by Get), overwriting any
// prior entry for the same key.
func (c *Cache) Put(ctx context.Context, formulaKey, formulaSExpr string, d *dfa.DFA) error {
	var buf bytes.Buffer
	if err := mona.Write(&buf, d); err != nil {
		return errs.IO("cache: writing MONA bytes for "+formulaKey, err)
	}

	payload := rezi.EncBinary(envelope{MonaBytes: buf.Bytes(), FormulaSExpr: formulaSExpr})

	_, err := c.db.ExecContext(ctx, `
		INSERT INTO translations (formula_key, payload, created_unix) VALUES (?, ?, ?)
		ON CONFLICT(formula_key) DO UPDATE SET payload = excluded.payload, created_unix = excluded.created_unix
	`, formulaKey, payload, time.Now().Unix())
	if err != nil {
		return errs.IO("cache: storing "+formulaKey, err)
	}
	return nil
}
