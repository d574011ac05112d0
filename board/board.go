// Package board turns a flat collection of records into a kanban board
// shape: ordered columns of cards. Building is a pure function of its
// inputs; nothing here touches storage or the terminal.
package board

import "encoding/json"

// ColumnID identifies a column. It is the grouping key value
// (e.g. a status like "todo"), so it stays stable across rebuilds.
type ColumnID string

// Record is one host-owned row to be placed on the board.
// ID and Title are required; Meta carries optional display fields
// (e.g. "description", "badge") and grouping fields for ByField.
type Record struct {
	ID    string
	Title string
	Meta  map[string]string
}

// Card is the board-side representation of one record.
// Its ID is the record's ID and never changes when the card moves.
type Card struct {
	ID       string            `json:"id"`
	Title    string            `json:"title"`
	ColumnID ColumnID          `json:"column_id"`
	Meta     map[string]string `json:"meta,omitempty"`
}

// Column is a named lane holding an ordered sequence of cards.
type Column struct {
	ID    ColumnID `json:"id"`
	Title string   `json:"title"`
	Cards []Card   `json:"cards"`
}

// Board is an ordered sequence of columns. A board is rebuilt fresh from
// the current record set; it is not mutated in place by this package.
type Board struct {
	ID      string   `json:"id"`
	Columns []Column `json:"columns"`
}

// CardIDs returns every card id on the board, column by column in
// display order.
func (b *Board) CardIDs() []string {
	var ids []string
	for _, col := range b.Columns {
		for _, card := range col.Cards {
			ids = append(ids, card.ID)
		}
	}
	return ids
}

// Column returns the column with the given id, or nil if none exists.
func (b *Board) Column(id ColumnID) *Column {
	for i := range b.Columns {
		if b.Columns[i].ID == id {
			return &b.Columns[i]
		}
	}
	return nil
}

// Card returns the card with the given id and its owning column,
// or (nil, nil) if the card is not on the board.
func (b *Board) Card(id string) (*Card, *Column) {
	for i := range b.Columns {
		col := &b.Columns[i]
		for j := range col.Cards {
			if col.Cards[j].ID == id {
				return &col.Cards[j], col
			}
		}
	}
	return nil, nil
}

// Clone returns a deep copy of the board. The renderer clones boards it
// is handed so the host's value stays untouched.
func (b *Board) Clone() *Board {
	if b == nil {
		return nil
	}
	out := &Board{ID: b.ID, Columns: make([]Column, len(b.Columns))}
	for i, col := range b.Columns {
		var cards []Card
		if col.Cards != nil {
			cards = make([]Card, len(col.Cards))
			for j, card := range col.Cards {
				cards[j] = card
				if card.Meta != nil {
					meta := make(map[string]string, len(card.Meta))
					for k, v := range card.Meta {
						meta[k] = v
					}
					cards[j].Meta = meta
				}
			}
		}
		out.Columns[i] = Column{ID: col.ID, Title: col.Title, Cards: cards}
	}
	return out
}

// Validate checks the board invariants: column ids unique, card ids
// unique across the whole board, and every card's ColumnID matching the
// column that holds it.
func (b *Board) Validate() error {
	seenCols := make(map[ColumnID]bool, len(b.Columns))
	seenCards := make(map[string]bool)
	for _, col := range b.Columns {
		if col.ID == "" {
			return &ConfigurationError{Message: "column with empty id"}
		}
		if seenCols[col.ID] {
			return &ConfigurationError{Message: "duplicate column id " + string(col.ID)}
		}
		seenCols[col.ID] = true
		for _, card := range col.Cards {
			if card.ID == "" {
				return &ConfigurationError{Message: "card with empty id in column " + string(col.ID)}
			}
			if seenCards[card.ID] {
				return &ConfigurationError{Message: "duplicate card id", RecordID: card.ID}
			}
			seenCards[card.ID] = true
			if card.ColumnID != col.ID {
				return &ConfigurationError{
					Message:  "card claims column " + string(card.ColumnID) + " but sits in " + string(col.ID),
					RecordID: card.ID,
				}
			}
		}
	}
	return nil
}

// DecodeBoard parses a JSON-serialized board and re-checks its
// invariants. This is the receiving end of the host's serialization
// contract: a board built in one process can be shipped to another and
// mounted there.
func DecodeBoard(data []byte) (*Board, error) {
	var b Board
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, &ConfigurationError{Message: "malformed board payload: " + err.Error()}
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return &b, nil
}
