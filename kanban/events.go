package kanban

import "github.com/thenoetrevino/tablero/board"

// CardMoved is emitted exactly once per completed drop gesture, after a
// card landed in a different column or position. The handle has already
// updated its own view; persisting the change is the host's job.
type CardMoved struct {
	CardID       string
	FromColumnID board.ColumnID
	ToColumnID   board.ColumnID
	NewIndex     int
}

// ColumnReordered is emitted once per completed column drop when the
// column ended up at a new index.
type ColumnReordered struct {
	ColumnID board.ColumnID
	NewIndex int
}

// AddItemRequested is emitted when the user confirms the add-card input
// on a column. The handle does not create anything; the host owns the
// record and is expected to rebuild and call Update.
type AddItemRequested struct {
	ColumnID board.ColumnID
	Title    string
}
