package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Repository on modernc.org/sqlite. Records are kept
// as JSON rows keyed by id, preserving the replace-whole-record discipline of
// the JSON backend.
type SQLiteStore struct {
	db *sql.DB
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS scrape_records (
	id         TEXT PRIMARY KEY,
	record     TEXT NOT NULL,
	updated_at DATETIME NOT NULL DEFAULT (datetime('now'))
);
`

// NewSQLite opens a SQLite database at the given DSN, configures WAL mode,
// and applies the schema.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	if _, err := db.Exec(sqliteMigration); err != nil {
		_ = db.Close()
		return nil, eris.Wrap(err, "sqlite: migrate")
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (*Record, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT record FROM scrape_records WHERE id = ?`, id,
	).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get record %s", id)
	}

	var rec Record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil, eris.Wrapf(err, "sqlite: unmarshal record %s", id)
	}
	return &rec, nil
}

func (s *SQLiteStore) Put(ctx context.Context, rec *Record) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal record")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO scrape_records (id, record, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET record = excluded.record, updated_at = excluded.updated_at`,
		rec.ID, string(raw), time.Now().UTC(),
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: put record %s", rec.ID)
	}
	return nil
}

func (s *SQLiteStore) List(ctx context.Context) (map[string]Record, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, record FROM scrape_records`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list records")
	}
	defer func() { _ = rows.Close() }()

	records := map[string]Record{}
	for rows.Next() {
		var id, raw string
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan record")
		}
		var rec Record
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			return nil, eris.Wrapf(err, "sqlite: unmarshal record %s", id)
		}
		records[id] = rec
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "sqlite: iterate records")
	}
	return records, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
