// Package kanban renders a board.Board as an interactive terminal board
// built on Bubble Tea and Lip Gloss. A Handle owns the mounted view; the
// host embeds it in its own program, forwards messages to HandleMsg, and
// receives move events through the callbacks it supplied at mount time.
//
// The terminal stand-in for drag-and-drop is grab/move/drop: the grab
// key picks up the selected card (or column), the movement keys carry it
// around, and the drop key commits the gesture. Exactly one event is
// emitted per committed gesture, synchronously, from inside the key
// handler. Cancel restores the board as it was before the grab.
//
// All methods must be called from the host program's Update loop. The
// handle runs no goroutines and holds no locks.
package kanban

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/thenoetrevino/tablero/board"
)

// Lifecycle states of a Handle.
const (
	stateUnmounted = "unmounted"
	stateMounted   = "mounted"
)

type grabKind int

const (
	grabCard grabKind = iota
	grabColumn
)

// grabState tracks an in-flight grab gesture. The grabbed card or
// column is always the selected one; origin is remembered for the event
// payload, snapshot for cancel.
type grabState struct {
	kind       grabKind
	cardID     string
	columnID   board.ColumnID
	fromColumn board.ColumnID
	fromIndex  int
	snapshot   *board.Board
}

// addState tracks the inline add-card input and its target column.
type addState struct {
	column board.ColumnID
	input  textinput.Model
}

// Handle is a mounted board. It owns a private copy of the board value,
// so the host's board stays immutable; re-rendering goes through Update
// with a freshly built board.
type Handle struct {
	state string
	board *board.Board
	opts  Options

	selColumn int
	selCard   int

	width  int
	height int
	scroll map[board.ColumnID]int

	grab   *grabState
	add    *addState
	detail bool
}

// Mount validates the board, takes a private copy, and returns a
// mounted handle. The zero Options render a read-only board.
func Mount(b *board.Board, opts Options) (*Handle, error) {
	if b == nil {
		return nil, &board.ConfigurationError{Message: "mount with nil board"}
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}

	opts.Keys.applyDefaults()
	opts.Theme.applyDefaults()

	return &Handle{
		state:  stateMounted,
		board:  b.Clone(),
		opts:   opts,
		scroll: make(map[board.ColumnID]int),
	}, nil
}

// Update replaces the mounted board in place. Any in-flight grab, add
// input, or detail overlay is discarded; the selection is clamped to
// the new board.
func (h *Handle) Update(b *board.Board) error {
	if h.state != stateMounted {
		return &InvalidStateError{Op: "update", State: h.state}
	}
	if b == nil {
		return &board.ConfigurationError{Message: "update with nil board"}
	}
	if err := b.Validate(); err != nil {
		return err
	}

	h.board = b.Clone()
	h.grab = nil
	h.add = nil
	h.detail = false
	h.clampSelection()
	return nil
}

// Destroy unmounts the handle: the board copy is dropped and every host
// callback is detached, so no event can fire after teardown. A second
// Destroy fails with InvalidStateError.
func (h *Handle) Destroy() error {
	if h.state != stateMounted {
		return &InvalidStateError{Op: "destroy", State: h.state}
	}
	h.state = stateUnmounted
	h.board = nil
	h.grab = nil
	h.add = nil
	h.detail = false
	h.opts.OnCardMoved = nil
	h.opts.OnColumnReordered = nil
	h.opts.OnAddItem = nil
	return nil
}

// Mounted reports whether the handle is in the mounted state.
func (h *Handle) Mounted() bool {
	return h.state == stateMounted
}

// Board returns a copy of the handle's current board, including any
// uncommitted grab movement. Useful for tests and for hosts that want
// to inspect the view state.
func (h *Handle) Board() *board.Board {
	return h.board.Clone()
}

// SetSize tells the handle how much terminal space it may use.
func (h *Handle) SetSize(width, height int) {
	h.width = width
	h.height = height
}

// SelectedCard returns the currently selected card, or nil if the
// selected column is empty or the handle is no longer mounted.
func (h *Handle) SelectedCard() *board.Card {
	col := h.selectedColumn()
	if col == nil || h.selCard >= len(col.Cards) {
		return nil
	}
	return &col.Cards[h.selCard]
}

// HandleMsg feeds one Bubble Tea message to the handle. It must be
// called from the host's Update loop; window sizes are absorbed, keys
// drive navigation and gestures, and everything else is ignored. Host
// callbacks fire synchronously before HandleMsg returns.
func (h *Handle) HandleMsg(msg tea.Msg) (tea.Cmd, error) {
	if h.state != stateMounted {
		return nil, &InvalidStateError{Op: "handle message", State: h.state}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h.SetSize(msg.Width, msg.Height)
		return nil, nil
	case tea.KeyMsg:
		return h.handleKey(msg)
	}
	return nil, nil
}

func (h *Handle) handleKey(msg tea.KeyMsg) (tea.Cmd, error) {
	if h.add != nil {
		return h.handleAddKey(msg)
	}

	key := msg.String()
	keys := h.opts.Keys

	if h.detail {
		if key == keys.Cancel || key == keys.ViewCard {
			h.detail = false
		}
		return nil, nil
	}

	switch key {
	case keys.PrevColumn:
		h.moveHorizontal(-1)
	case keys.NextColumn:
		h.moveHorizontal(1)
	case keys.PrevCard:
		h.moveVertical(-1)
	case keys.NextCard:
		h.moveVertical(1)
	case keys.GrabCard:
		h.startCardGrab()
	case keys.GrabColumn:
		h.startColumnGrab()
	case keys.Drop:
		h.drop()
	case keys.Cancel:
		h.cancelGrab()
	case keys.AddCard:
		return h.startAdd(), nil
	case keys.ViewCard:
		if h.SelectedCard() != nil {
			h.detail = true
		}
	}
	return nil, nil
}

// moveHorizontal moves the selection (or the grabbed card/column) one
// column left or right.
func (h *Handle) moveHorizontal(delta int) {
	if h.grab != nil {
		switch h.grab.kind {
		case grabCard:
			h.carryCardHorizontal(delta)
		case grabColumn:
			h.carryColumn(delta)
		}
		return
	}

	target := h.selColumn + delta
	if target < 0 || target >= len(h.board.Columns) {
		return
	}
	h.selColumn = target
	h.clampSelection()
}

// moveVertical moves the selection (or the grabbed card) within the
// current column.
func (h *Handle) moveVertical(delta int) {
	if h.grab != nil {
		if h.grab.kind == grabCard {
			h.carryCardVertical(delta)
		}
		return
	}

	col := h.selectedColumn()
	if col == nil {
		return
	}
	target := h.selCard + delta
	if target < 0 || target >= len(col.Cards) {
		return
	}
	h.selCard = target
	h.ensureVisible(col)
}

func (h *Handle) startCardGrab() {
	if !h.opts.AllowCardDrag || h.grab != nil {
		return
	}
	card := h.SelectedCard()
	if card == nil {
		return
	}
	h.grab = &grabState{
		kind:       grabCard,
		cardID:     card.ID,
		fromColumn: card.ColumnID,
		fromIndex:  h.selCard,
		snapshot:   h.board.Clone(),
	}
}

func (h *Handle) startColumnGrab() {
	if !h.opts.AllowColumnDrag || h.grab != nil {
		return
	}
	col := h.selectedColumn()
	if col == nil {
		return
	}
	h.grab = &grabState{
		kind:       grabColumn,
		columnID:   col.ID,
		fromIndex:  h.selColumn,
		snapshot:   h.board.Clone(),
	}
}

// carryCardHorizontal lifts the grabbed card out of its column and
// inserts it into the neighbor at the same index (clamped). The card's
// ColumnID follows it; its ID never changes.
func (h *Handle) carryCardHorizontal(delta int) {
	target := h.selColumn + delta
	if target < 0 || target >= len(h.board.Columns) {
		return
	}

	from := &h.board.Columns[h.selColumn]
	card := from.Cards[h.selCard]
	from.Cards = append(from.Cards[:h.selCard], from.Cards[h.selCard+1:]...)

	to := &h.board.Columns[target]
	at := min(h.selCard, len(to.Cards))
	card.ColumnID = to.ID
	to.Cards = append(to.Cards[:at], append([]board.Card{card}, to.Cards[at:]...)...)

	h.selColumn = target
	h.selCard = at
	h.ensureVisible(to)
}

// carryCardVertical swaps the grabbed card with its neighbor.
func (h *Handle) carryCardVertical(delta int) {
	col := h.selectedColumn()
	target := h.selCard + delta
	if col == nil || target < 0 || target >= len(col.Cards) {
		return
	}
	col.Cards[h.selCard], col.Cards[target] = col.Cards[target], col.Cards[h.selCard]
	h.selCard = target
	h.ensureVisible(col)
}

// carryColumn swaps the grabbed column with its neighbor.
func (h *Handle) carryColumn(delta int) {
	target := h.selColumn + delta
	if target < 0 || target >= len(h.board.Columns) {
		return
	}
	h.board.Columns[h.selColumn], h.board.Columns[target] = h.board.Columns[target], h.board.Columns[h.selColumn]
	h.selColumn = target
}

// drop commits the active grab. The event fires only when the card or
// column actually ended up somewhere new, and exactly once per gesture.
func (h *Handle) drop() {
	grab := h.grab
	if grab == nil {
		return
	}
	h.grab = nil

	switch grab.kind {
	case grabCard:
		col := h.selectedColumn()
		if col == nil {
			return
		}
		if col.ID == grab.fromColumn && h.selCard == grab.fromIndex {
			return
		}
		if cb := h.opts.OnCardMoved; cb != nil {
			cb(CardMoved{
				CardID:       grab.cardID,
				FromColumnID: grab.fromColumn,
				ToColumnID:   col.ID,
				NewIndex:     h.selCard,
			})
		}
	case grabColumn:
		if h.selColumn == grab.fromIndex {
			return
		}
		if cb := h.opts.OnColumnReordered; cb != nil {
			cb(ColumnReordered{ColumnID: grab.columnID, NewIndex: h.selColumn})
		}
	}
}

// cancelGrab restores the board as it was when the grab started and
// puts the selection back on the grabbed item's original spot.
func (h *Handle) cancelGrab() {
	grab := h.grab
	if grab == nil {
		return
	}
	h.grab = nil
	h.board = grab.snapshot

	switch grab.kind {
	case grabCard:
		for i, col := range h.board.Columns {
			if col.ID == grab.fromColumn {
				h.selColumn = i
				break
			}
		}
		h.selCard = grab.fromIndex
	case grabColumn:
		h.selColumn = grab.fromIndex
		h.clampSelection()
	}
}

// startAdd opens the inline add-card input on the selected column.
func (h *Handle) startAdd() tea.Cmd {
	if !h.opts.AllowAddItem || h.grab != nil {
		return nil
	}
	col := h.selectedColumn()
	if col == nil {
		return nil
	}

	input := textinput.New()
	input.Placeholder = "Card title"
	input.CharLimit = 120
	cmd := input.Focus()
	h.add = &addState{column: col.ID, input: input}
	return cmd
}

func (h *Handle) handleAddKey(msg tea.KeyMsg) (tea.Cmd, error) {
	keys := h.opts.Keys
	switch msg.String() {
	case keys.Drop:
		add := h.add
		h.add = nil
		title := strings.TrimSpace(add.input.Value())
		if title == "" {
			return nil, nil
		}
		if cb := h.opts.OnAddItem; cb != nil {
			cb(AddItemRequested{ColumnID: add.column, Title: title})
		}
		return nil, nil
	case keys.Cancel:
		h.add = nil
		return nil, nil
	}

	var cmd tea.Cmd
	h.add.input, cmd = h.add.input.Update(msg)
	return cmd, nil
}

func (h *Handle) selectedColumn() *board.Column {
	if h.board == nil || len(h.board.Columns) == 0 {
		return nil
	}
	if h.selColumn >= len(h.board.Columns) {
		h.selColumn = len(h.board.Columns) - 1
	}
	return &h.board.Columns[h.selColumn]
}

// clampSelection keeps the selection inside the board after a column
// switch or an Update with fewer columns or cards.
func (h *Handle) clampSelection() {
	if len(h.board.Columns) == 0 {
		h.selColumn = 0
		h.selCard = 0
		return
	}
	if h.selColumn >= len(h.board.Columns) {
		h.selColumn = len(h.board.Columns) - 1
	}
	col := h.board.Columns[h.selColumn]
	if h.selCard >= len(col.Cards) {
		h.selCard = max(len(col.Cards)-1, 0)
	}
	h.ensureVisible(&col)
}

// ensureVisible adjusts the column's scroll offset so the selected card
// stays on screen.
func (h *Handle) ensureVisible(col *board.Column) {
	visible := h.visibleCards()
	offset := h.scroll[col.ID]
	if h.selCard < offset {
		offset = h.selCard
	}
	if h.selCard >= offset+visible {
		offset = h.selCard - visible + 1
	}
	if offset < 0 {
		offset = 0
	}
	h.scroll[col.ID] = offset
}
