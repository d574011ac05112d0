package store

import (
	"context"
	"errors"
	"testing"

	"github.com/thenoetrevino/tablero/board"
)

// newTestStore opens a fresh in-memory database with the demo seed.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()

	db, err := InitDB(ctx, ":memory:")
	if err != nil {
		t.Fatalf("InitDB() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })

	s := New(db)
	if err := s.Seed(ctx); err != nil {
		t.Fatalf("Seed() error = %v", err)
	}
	return s
}

// statusOrder returns the record ids of one status in stored order.
func statusOrder(t *testing.T, s *Store, status string) []string {
	t.Helper()
	records, err := s.Records(context.Background())
	if err != nil {
		t.Fatalf("Records() error = %v", err)
	}
	var ids []string
	for _, rec := range records {
		if rec.Meta["status"] == status {
			ids = append(ids, rec.ID)
		}
	}
	return ids
}

func TestSeed_OnlyOnce(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore(t)

	records, err := s.Records(ctx)
	if err != nil {
		t.Fatalf("Records() error = %v", err)
	}
	seeded := len(records)
	if seeded == 0 {
		t.Fatal("seed should insert demo records")
	}

	if err := s.Seed(ctx); err != nil {
		t.Fatalf("second Seed() error = %v", err)
	}
	records, err = s.Records(ctx)
	if err != nil {
		t.Fatalf("Records() error = %v", err)
	}
	if len(records) != seeded {
		t.Errorf("second seed changed the row count: %d -> %d", seeded, len(records))
	}
}

func TestRecords_ShapeForBuilder(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	records, err := s.Records(context.Background())
	if err != nil {
		t.Fatalf("Records() error = %v", err)
	}

	// The rows must feed board.Build directly.
	b, err := board.Build("demo", records, board.ByField("status"), DefaultColumns())
	if err != nil {
		t.Fatalf("Build() over store records error = %v", err)
	}
	if len(b.CardIDs()) != len(records) {
		t.Errorf("board has %d cards for %d records", len(b.CardIDs()), len(records))
	}

	for _, rec := range records {
		if rec.Meta["status"] == "" {
			t.Errorf("record %s is missing its status meta", rec.ID)
		}
	}
}

func TestMoveRecord_AcrossColumns(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore(t)

	todo := statusOrder(t, s, "todo")
	if len(todo) < 2 {
		t.Fatalf("seed should place at least 2 records in todo, got %v", todo)
	}
	moved := todo[1]

	// Drop the second todo record at the top of doing.
	if err := s.MoveRecord(ctx, moved, "doing", 0); err != nil {
		t.Fatalf("MoveRecord() error = %v", err)
	}

	doing := statusOrder(t, s, "doing")
	if len(doing) == 0 || doing[0] != moved {
		t.Errorf("doing order = %v, want %s first", doing, moved)
	}
	if got := statusOrder(t, s, "todo"); len(got) != len(todo)-1 {
		t.Errorf("todo still has %d records, want %d", len(got), len(todo)-1)
	}
}

func TestMoveRecord_WithinColumnAndClamping(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore(t)

	todo := statusOrder(t, s, "todo")
	first := todo[0]

	// An out-of-range index clamps to the end of the column.
	if err := s.MoveRecord(ctx, first, "todo", 99); err != nil {
		t.Fatalf("MoveRecord() error = %v", err)
	}
	got := statusOrder(t, s, "todo")
	if got[len(got)-1] != first {
		t.Errorf("todo order = %v, want %s last", got, first)
	}
}

func TestMoveRecord_NotFound(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	err := s.MoveRecord(context.Background(), "no-such-id", "todo", 0)
	if !errors.Is(err, ErrRecordNotFound) {
		t.Errorf("MoveRecord() error = %v, want ErrRecordNotFound", err)
	}
}

func TestCreateRecord_AppendsToColumn(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore(t)

	rec, err := s.CreateRecord(ctx, "  Brand new  ", "todo")
	if err != nil {
		t.Fatalf("CreateRecord() error = %v", err)
	}
	if rec.Title != "Brand new" {
		t.Errorf("title = %q, want trimmed", rec.Title)
	}

	todo := statusOrder(t, s, "todo")
	if todo[len(todo)-1] != rec.ID {
		t.Errorf("new record should land at the bottom of todo, got %v", todo)
	}
}

func TestCreateRecord_EmptyTitle(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	_, err := s.CreateRecord(context.Background(), "   ", "todo")
	if !errors.Is(err, ErrEmptyTitle) {
		t.Errorf("CreateRecord() error = %v, want ErrEmptyTitle", err)
	}
}

func TestDeleteRecord(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore(t)

	todo := statusOrder(t, s, "todo")
	if err := s.DeleteRecord(ctx, todo[0]); err != nil {
		t.Fatalf("DeleteRecord() error = %v", err)
	}
	if err := s.DeleteRecord(ctx, todo[0]); !errors.Is(err, ErrRecordNotFound) {
		t.Errorf("second delete error = %v, want ErrRecordNotFound", err)
	}
}
