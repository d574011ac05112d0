package kanban

import (
	"strings"
	"testing"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/thenoetrevino/tablero/board"
)

func namedBoard(t *testing.T) *board.Board {
	t.Helper()
	records := []board.Record{
		{ID: "1", Title: "write docs", Meta: map[string]string{"status": "todo", "badge": "docs"}},
		{ID: "2", Title: "fix parser", Meta: map[string]string{"status": "doing"}},
	}
	specs := []board.ColumnSpec{
		{ID: "todo", Title: "To Do"},
		{ID: "doing", Title: "In Progress"},
		{ID: "done", Title: "Done"},
	}
	b, err := board.Build("demo", records, board.ByField("status"), specs)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return b
}

func TestView_RendersLanesInOrder(t *testing.T) {
	t.Parallel()

	h, err := Mount(namedBoard(t), Options{Keys: testKeys()})
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}

	view := h.View()
	for _, want := range []string{"To Do (1)", "In Progress (1)", "Done (0)", "write docs", "fix parser", "docs"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}

	// Lanes appear in source order.
	if strings.Index(view, "To Do") > strings.Index(view, "In Progress") {
		t.Error("To Do lane should render before In Progress")
	}
	if strings.Index(view, "In Progress") > strings.Index(view, "Done") {
		t.Error("In Progress lane should render before Done")
	}

	// The declared-but-empty lane renders its empty state.
	if !strings.Contains(view, "No cards") {
		t.Error("empty lane should render its placeholder")
	}
}

func TestView_EmptyBoard(t *testing.T) {
	t.Parallel()

	h, err := Mount(&board.Board{ID: "demo"}, Options{Keys: testKeys()})
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	if view := h.View(); !strings.Contains(view, "no columns") {
		t.Errorf("View() of columnless board = %q, want placeholder", view)
	}
}

func TestView_GrabbedCardMarker(t *testing.T) {
	t.Parallel()

	h, err := Mount(namedBoard(t), Options{AllowCardDrag: true, Keys: testKeys()})
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}

	if strings.Contains(h.View(), "◆") {
		t.Error("marker should not render before a grab")
	}
	press(t, h, "s")
	if !strings.Contains(h.View(), "◆") {
		t.Error("grabbed card should render the carry marker")
	}
	press(t, h, "esc")
	if strings.Contains(h.View(), "◆") {
		t.Error("marker should disappear after cancel")
	}
}

func TestView_ScrollIndicator(t *testing.T) {
	t.Parallel()

	records := make([]board.Record, 12)
	for i := range records {
		records[i] = board.Record{
			ID:    string(rune('a' + i)),
			Title: "card",
			Meta:  map[string]string{"status": "todo"},
		}
	}
	b, err := board.Build("demo", records, board.ByField("status"), nil)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	h, err := Mount(b, Options{Keys: testKeys()})
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}

	// Tall terminal: everything fits, no indicators.
	if _, err := h.HandleMsg(tea.WindowSizeMsg{Width: 120, Height: 200}); err != nil {
		t.Fatalf("HandleMsg(size) error = %v", err)
	}
	if strings.Contains(h.View(), "more below") {
		t.Error("no indicator expected when all cards fit")
	}

	// Short terminal: the tail is clipped.
	if _, err := h.HandleMsg(tea.WindowSizeMsg{Width: 120, Height: 14}); err != nil {
		t.Fatalf("HandleMsg(size) error = %v", err)
	}
	if !strings.Contains(h.View(), "▼ more below") {
		t.Error("clipped lane should render the below indicator")
	}

	// Walking down past the fold scrolls and shows the above indicator.
	for i := 0; i < 11; i++ {
		press(t, h, "j")
	}
	if !strings.Contains(h.View(), "▲ more above") {
		t.Error("scrolled lane should render the above indicator")
	}
}

func TestView_TruncatesLongTitleOnRunes(t *testing.T) {
	t.Parallel()

	records := []board.Record{
		{ID: "1", Title: strings.Repeat("ü", 40), Meta: map[string]string{"status": "todo"}},
	}
	b, err := board.Build("demo", records, board.ByField("status"), nil)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	h, err := Mount(b, Options{Keys: testKeys()})
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}

	view := h.View()
	if !utf8.ValidString(view) {
		t.Fatal("View() produced invalid UTF-8")
	}
	if strings.ContainsRune(view, utf8.RuneError) {
		t.Error("truncation split a multi-byte rune")
	}
	if !strings.Contains(view, "ü…") {
		t.Error("long title should end in the ellipsis")
	}
}

func TestView_DetailOverlay(t *testing.T) {
	t.Parallel()

	records := []board.Record{
		{ID: "1", Title: "write docs", Meta: map[string]string{
			"status":      "todo",
			"description": "Explain the *builder* contract.",
		}},
	}
	b, err := board.Build("demo", records, board.ByField("status"), nil)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	h, err := Mount(b, Options{Keys: testKeys()})
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}

	press(t, h, "v")
	view := h.View()
	if !strings.Contains(view, "builder") {
		t.Errorf("detail overlay should render the description, got %q", view)
	}

	press(t, h, "esc")
	if strings.Contains(h.View(), "contract") {
		t.Error("detail overlay should close on cancel")
	}
}

func TestView_AddInputOverlay(t *testing.T) {
	t.Parallel()

	h, err := Mount(namedBoard(t), Options{AllowAddItem: true, Keys: testKeys()})
	if err != nil {
		t.Fatalf("Mount() error = %v", err)
	}

	press(t, h, "a")
	if !strings.Contains(h.View(), "Add card to To Do") {
		t.Error("add overlay should name the target column")
	}
	press(t, h, "esc")
	if strings.Contains(h.View(), "Add card to") {
		t.Error("add overlay should close on cancel")
	}
}
