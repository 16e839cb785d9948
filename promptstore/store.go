// Package promptstore is a SQLite-backed implementation of the prompt
// template repository consumed by the resolver. The pipeline core only
// depends on the presets.Repository interface; this package exists for
// hosts that keep custom templates in a local database.
package promptstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/ShkrSltn/dbot-sub000/presets"
)

const schema = `
CREATE TABLE IF NOT EXISTS prompts (
	id INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	content TEXT NOT NULL
);`

// Store holds custom prompt templates in SQLite.
type Store struct {
	db *sql.DB
}

// Open opens (and if needed initializes) the store at the given DSN.
// Use ":memory:" for an ephemeral store.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open prompt store: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init prompt store: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// GetByID returns the template with the given id, or nil when there is
// none. Built-in (non-positive) ids are never stored here.
func (s *Store) GetByID(ctx context.Context, id int) (*presets.Template, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, name, content FROM prompts WHERE id = ?`, id)

	var t presets.Template
	if err := row.Scan(&t.ID, &t.Name, &t.Content); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get prompt %d: %w", id, err)
	}
	return &t, nil
}

// Save inserts or replaces a template.
func (s *Store) Save(ctx context.Context, t presets.Template) error {
	if t.ID <= 0 {
		return fmt.Errorf("save prompt: id must be positive, got %d", t.ID)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO prompts (id, name, content) VALUES (?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET name = excluded.name, content = excluded.content`,
		t.ID, t.Name, t.Content)
	if err != nil {
		return fmt.Errorf("save prompt %d: %w", t.ID, err)
	}
	return nil
}

// List returns all stored templates ordered by id.
func (s *Store) List(ctx context.Context) ([]presets.Template, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, content FROM prompts ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list prompts: %w", err)
	}
	defer rows.Close()

	var out []presets.Template
	for rows.Next() {
		var t presets.Template
		if err := rows.Scan(&t.ID, &t.Name, &t.Content); err != nil {
			return nil, fmt.Errorf("scan prompt: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
