package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// SQLiteMedium keeps the document in a single-row table.
type SQLiteMedium struct{ db *sqlx.DB }

func OpenSQLiteMedium(dsn string) (*SQLiteMedium, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// one connection, so ":memory:" databases are shared
	db.SetMaxOpenConns(1)
	return &SQLiteMedium{db: db}, nil
}

func (m *SQLiteMedium) Name() string { return "sqlite" }

func (m *SQLiteMedium) Probe(ctx context.Context) error {
	if err := m.db.PingContext(ctx); err != nil {
		return err
	}
	schema := `
CREATE TABLE IF NOT EXISTS snapshots(
  id INTEGER PRIMARY KEY CHECK (id = 1),
  doc TEXT NOT NULL,
  updated_at TEXT
);
CREATE TABLE IF NOT EXISTS store_probe(
  id INTEGER PRIMARY KEY,
  at TEXT
);
`
	if _, err := m.db.ExecContext(ctx, schema); err != nil {
		return err
	}
	_, err := m.db.ExecContext(ctx, `
		INSERT INTO store_probe(id, at) VALUES (1, ?)
		ON CONFLICT(id) DO UPDATE SET at = excluded.at
	`, time.Now().UTC().Format(time.RFC3339))
	return err
}

func (m *SQLiteMedium) Read(ctx context.Context) ([]byte, error) {
	var doc string
	err := m.db.GetContext(ctx, &doc, `SELECT doc FROM snapshots WHERE id = 1`)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, err
	}
	return []byte(doc), nil
}

func (m *SQLiteMedium) Write(ctx context.Context, doc []byte) error {
	_, err := m.db.ExecContext(ctx, `
		INSERT INTO snapshots(id, doc, updated_at) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET doc = excluded.doc, updated_at = excluded.updated_at
	`, string(doc), time.Now().UTC().Format(time.RFC3339))
	return err
}

func (m *SQLiteMedium) Close() error { return m.db.Close() }
