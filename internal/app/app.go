// Package app wires the demo together: records come out of the store,
// board.Build shapes them, kanban.Mount renders them, and the move
// events the handle reports are persisted back into the store. This is
// the host side of the contract; the board core knows nothing of it.
package app

import (
	"context"
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/thenoetrevino/tablero/board"
	"github.com/thenoetrevino/tablero/internal/config"
	"github.com/thenoetrevino/tablero/internal/store"
	"github.com/thenoetrevino/tablero/kanban"
)

// boardID identifies the demo board.
const boardID = "tablero-demo"

// events collects what the handle reported during one Update pass.
// It sits behind a pointer so the synchronous callbacks reach the same
// value the copied model reads from.
type events struct {
	moves    []kanban.CardMoved
	reorders []kanban.ColumnReordered
	adds     []kanban.AddItemRequested
}

// Model is the demo application's Bubble Tea model.
type Model struct {
	// ctx is the program-lifetime context handed to New; store writes
	// triggered by handle events run under it.
	ctx     context.Context
	store   *store.Store
	cfg     *config.Config
	handle  *kanban.Handle
	pending *events

	// columns is the host-owned column layout. Column reorders are an
	// ordering concern, so they live here rather than in the store.
	columns []board.ColumnSpec

	width  int
	height int
	status string
	err    error
}

// New loads the records, builds the board, and mounts the renderer.
func New(ctx context.Context, st *store.Store, cfg *config.Config) (Model, error) {
	m := Model{
		ctx:     ctx,
		store:   st,
		cfg:     cfg,
		pending: &events{},
		columns: store.DefaultColumns(),
		status:  "ready",
	}

	b, err := m.buildBoard(ctx)
	if err != nil {
		return Model{}, err
	}

	pending := m.pending
	handle, err := kanban.Mount(b, kanban.Options{
		AllowCardDrag:   true,
		AllowColumnDrag: true,
		AllowAddItem:    true,
		Keys:            cfg.KeyMap(),
		Theme:           cfg.Theme(),
		OnCardMoved: func(e kanban.CardMoved) {
			pending.moves = append(pending.moves, e)
		},
		OnColumnReordered: func(e kanban.ColumnReordered) {
			pending.reorders = append(pending.reorders, e)
		},
		OnAddItem: func(e kanban.AddItemRequested) {
			pending.adds = append(pending.adds, e)
		},
	})
	if err != nil {
		return Model{}, err
	}

	m.handle = handle
	return m, nil
}

// buildBoard shapes the current record set into the demo board.
func (m Model) buildBoard(ctx context.Context) (*board.Board, error) {
	records, err := m.store.Records(ctx)
	if err != nil {
		return nil, err
	}
	return board.Build(boardID, records, board.ByField("status"), m.columns)
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model. Quit tears the handle down; everything
// else is forwarded to the handle, and whatever events it emitted are
// persisted before the next frame.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.handle.SetSize(msg.Width, msg.Height-1)
		return m, nil
	case tea.KeyMsg:
		if msg.String() == m.cfg.KeyMappings.Quit || msg.String() == "ctrl+c" {
			if err := m.handle.Destroy(); err != nil {
				slog.Error("failed to destroy handle", "error", err)
			}
			return m, tea.Quit
		}
	}

	cmd, err := m.handle.HandleMsg(msg)
	if err != nil {
		m.err = err
		return m, cmd
	}

	m = m.applyPending()
	return m, cmd
}

// applyPending persists the handle's events and, when anything changed,
// rebuilds the board from the store so view and records stay in sync.
func (m Model) applyPending() Model {
	p := m.pending
	if len(p.moves) == 0 && len(p.reorders) == 0 && len(p.adds) == 0 {
		return m
	}
	ctx := m.ctx

	for _, e := range p.moves {
		if err := m.store.MoveRecord(ctx, e.CardID, e.ToColumnID, e.NewIndex); err != nil {
			slog.Error("failed to persist card move", "card", e.CardID, "error", err)
			m.err = err
			continue
		}
		m.status = fmt.Sprintf("moved %s: %s -> %s", e.CardID, e.FromColumnID, e.ToColumnID)
	}
	for _, e := range p.reorders {
		m.columns = reorderColumns(m.columns, e)
		m.status = fmt.Sprintf("column %s -> index %d", e.ColumnID, e.NewIndex)
	}
	for _, e := range p.adds {
		if _, err := m.store.CreateRecord(ctx, e.Title, e.ColumnID); err != nil {
			slog.Error("failed to create record", "title", e.Title, "error", err)
			m.err = err
			continue
		}
		m.status = fmt.Sprintf("added %q to %s", e.Title, e.ColumnID)
	}
	p.moves = nil
	p.reorders = nil
	p.adds = nil

	b, err := m.buildBoard(ctx)
	if err != nil {
		m.err = err
		return m
	}
	if err := m.handle.Update(b); err != nil {
		m.err = err
	}
	return m
}

// reorderColumns moves one column spec to its new index.
func reorderColumns(columns []board.ColumnSpec, e kanban.ColumnReordered) []board.ColumnSpec {
	from := -1
	for i, spec := range columns {
		if spec.ID == e.ColumnID {
			from = i
			break
		}
	}
	if from == -1 {
		return columns
	}

	out := append([]board.ColumnSpec{}, columns...)
	spec := out[from]
	out = append(out[:from], out[from+1:]...)
	at := min(max(e.NewIndex, 0), len(out))
	return append(out[:at:at], append([]board.ColumnSpec{spec}, out[at:]...)...)
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	footer := m.statusBar()
	return lipgloss.JoinVertical(lipgloss.Left, m.handle.View(), footer)
}

// statusBar renders the footer: last action on the left, the key hints
// on the right.
func (m Model) statusBar() string {
	theme := m.cfg.Theme()
	barStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Subtle))

	status := m.status
	if m.err != nil {
		status = "error: " + m.err.Error()
	}

	keys := m.cfg.KeyMappings
	hints := fmt.Sprintf("%s/%s/%s/%s move · %s grab · %s drop · %s add · %s quit",
		keys.PrevColumn, keys.NextCard, keys.PrevCard, keys.NextColumn,
		keyName(keys.GrabCard), keyName(keys.Drop), keys.AddCard, keys.Quit)

	return barStyle.Render(status + "  |  " + hints)
}

// keyName makes unprintable bindings readable in the hint line.
func keyName(k string) string {
	if k == " " {
		return "space"
	}
	return k
}
