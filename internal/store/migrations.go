package store

import (
	"context"
	"database/sql"
	"fmt"
)

// schema is the whole demo schema. One table is enough: the board shape
// is derived, not stored.
const schema = `
CREATE TABLE IF NOT EXISTS records (
	id          TEXT PRIMARY KEY,
	title       TEXT NOT NULL,
	status      TEXT NOT NULL,
	position    INTEGER NOT NULL DEFAULT 0,
	description TEXT NOT NULL DEFAULT '',
	badge       TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_records_status ON records(status, position);
`

func migrate(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}

// seedRecords are the demo rows inserted on first run.
var seedRecords = []struct {
	title, status, description, badge string
}{
	{"Sketch the column layout", "todo", "Decide which statuses become lanes and in what order.", "design"},
	{"Write the builder walkthrough", "todo", "Cover `Build`, grouping keys, and **declared columns**.", "docs"},
	{"Wire the move handler", "doing", "Persist `CardMoved` events back into the records table.", ""},
	{"Add the record store", "done", "SQLite-backed store behind the demo app.", "infra"},
	{"Pick key bindings", "done", "", ""},
}

// Seed inserts the demo rows, but only into an empty table.
func (s *Store) Seed(ctx context.Context) error {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM records").Scan(&count); err != nil {
		return fmt.Errorf("failed to count records: %w", err)
	}
	if count > 0 {
		return nil
	}

	positions := map[string]int{}
	for i, rec := range seedRecords {
		pos := positions[rec.status]
		positions[rec.status] = pos + 1
		if _, err := s.db.ExecContext(ctx, `
			INSERT INTO records (id, title, status, position, description, badge)
			VALUES (?, ?, ?, ?, ?, ?)`,
			fmt.Sprintf("seed-%d", i+1), rec.title, rec.status, pos, rec.description, rec.badge); err != nil {
			return fmt.Errorf("failed to seed record %q: %w", rec.title, err)
		}
	}
	return nil
}
