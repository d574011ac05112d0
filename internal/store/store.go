// Package store is the demo host's record store. The board core never
// talks to it: the app reads records here, shapes them with board.Build,
// and writes back the status/position changes the renderer reports.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/thenoetrevino/tablero/board"
)

// Store-level errors.
var (
	ErrRecordNotFound = errors.New("record not found")
	ErrEmptyTitle     = errors.New("record title cannot be empty")
)

// InitDB opens (and if needed creates) the demo database. An empty path
// defaults to ~/.tablero/records.db; ":memory:" works for tests.
func InitDB(ctx context.Context, path string) (*sql.DB, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dir := filepath.Join(home, ".tablero")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
		path = filepath.Join(dir, "records.db")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	for _, pragma := range []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	// SQLite benefits from a single writer connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := migrate(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return db, nil
}

// Store wraps the records table.
type Store struct {
	db *sql.DB
}

// New creates a store over an initialized database.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// DefaultColumns is the demo board's column layout. Statuses are the
// grouping keys, so they double as column ids.
func DefaultColumns() []board.ColumnSpec {
	return []board.ColumnSpec{
		{ID: "todo", Title: "To Do"},
		{ID: "doing", Title: "In Progress"},
		{ID: "done", Title: "Done"},
	}
}

// Records returns every record ordered by status and position, shaped
// for board.Build: status, badge and description travel in Meta.
func (s *Store) Records(ctx context.Context) ([]board.Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, status, position, description, badge
		FROM records
		ORDER BY status, position, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	var records []board.Record
	for rows.Next() {
		var (
			rec                        board.Record
			status, description, badge string
			position                   int
		)
		if err := rows.Scan(&rec.ID, &rec.Title, &status, &position, &description, &badge); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		rec.Meta = map[string]string{"status": status}
		if description != "" {
			rec.Meta["description"] = description
		}
		if badge != "" {
			rec.Meta["badge"] = badge
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// MoveRecord persists a CardMoved event: the record takes the target
// status and slot, and the target column is renumbered so positions
// stay dense.
func (s *Store) MoveRecord(ctx context.Context, id string, status board.ColumnID, index int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists bool
	if err := tx.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM records WHERE id = ?)", id).Scan(&exists); err != nil {
		return fmt.Errorf("failed to look up record: %w", err)
	}
	if !exists {
		return ErrRecordNotFound
	}

	rows, err := tx.QueryContext(ctx, `
		SELECT id FROM records
		WHERE status = ? AND id != ?
		ORDER BY position, id`, string(status), id)
	if err != nil {
		return fmt.Errorf("failed to query target column: %w", err)
	}
	var siblings []string
	for rows.Next() {
		var sib string
		if err := rows.Scan(&sib); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan sibling: %w", err)
		}
		siblings = append(siblings, sib)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	// Splice the record into the column at the requested slot.
	at := min(max(index, 0), len(siblings))
	ordered := append(siblings[:at:at], append([]string{id}, siblings[at:]...)...)

	for pos, rid := range ordered {
		if _, err := tx.ExecContext(ctx,
			"UPDATE records SET status = ?, position = ? WHERE id = ?",
			string(status), pos, rid); err != nil {
			return fmt.Errorf("failed to renumber record %s: %w", rid, err)
		}
	}

	return tx.Commit()
}

// CreateRecord backs an AddItemRequested event: a new record appended
// at the bottom of the given status column.
func (s *Store) CreateRecord(ctx context.Context, title string, status board.ColumnID) (board.Record, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return board.Record{}, ErrEmptyTitle
	}

	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO records (id, title, status, position)
		VALUES (?, ?, ?, COALESCE((SELECT MAX(position) + 1 FROM records WHERE status = ?), 0))`,
		id, title, string(status), string(status))
	if err != nil {
		return board.Record{}, fmt.Errorf("failed to insert record: %w", err)
	}

	return board.Record{
		ID:    id,
		Title: title,
		Meta:  map[string]string{"status": string(status)},
	}, nil
}

// DeleteRecord removes a record.
func (s *Store) DeleteRecord(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM records WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrRecordNotFound
	}
	return nil
}
