package vocab

import (
	"context"
	"database/sql"
	"fmt"
)

// Store reads and seeds catalog entries kept in the vocab_entries table.
type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// Count returns the number of stored entries.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM vocab_entries`).Scan(&n)
	return n, err
}

// Entries returns all stored entries ordered by position.
func (s *Store) Entries(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT word, image_ref FROM vocab_entries ORDER BY position ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Word, &e.ImageRef); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Replace swaps the stored catalog for c inside a single transaction.
func (s *Store) Replace(ctx context.Context, c *Catalog) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM vocab_entries`); err != nil {
		return fmt.Errorf("clear vocab_entries: %w", err)
	}
	for i, e := range c.entries {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO vocab_entries(position, word, image_ref) VALUES (?,?,?)`,
			i, e.Word, e.ImageRef,
		); err != nil {
			return fmt.Errorf("insert %q: %w", e.Word, err)
		}
	}
	return tx.Commit()
}

// Load reads the stored catalog.
func (s *Store) Load(ctx context.Context) (*Catalog, error) {
	entries, err := s.Entries(ctx)
	if err != nil {
		return nil, err
	}
	return NewCatalog(entries)
}
