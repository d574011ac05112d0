package kanban

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/thenoetrevino/tablero/board"
)

const (
	// columnWidth is the fixed outer width of a rendered lane.
	columnWidth = 26
	// cardHeight is the fixed height of a rendered card, borders included.
	cardHeight = 4
	// columnOverhead is the lane height not available to cards:
	// border top/bottom, header line, and the two scroll indicator lines.
	columnOverhead = 5
)

// View renders the mounted board: lanes in source order, cards in
// source order, selection highlighted, the grabbed card marked. Returns
// the empty string once the handle is destroyed.
func (h *Handle) View() string {
	if h.state != stateMounted {
		return ""
	}

	if len(h.board.Columns) == 0 {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color(h.opts.Theme.Subtle)).
			Italic(true).
			Render("Board has no columns")
	}

	lanes := make([]string, 0, len(h.board.Columns))
	for i := range h.board.Columns {
		lanes = append(lanes, h.renderLane(i))
	}
	view := lipgloss.JoinHorizontal(lipgloss.Top, lanes...)

	if h.add != nil {
		return h.overlay(view, h.renderAddBox())
	}
	if h.detail {
		return h.overlay(view, h.renderDetailBox())
	}
	return view
}

// renderLane renders one column as a bordered lane with a header,
// scroll indicators, and its visible slice of cards.
func (h *Handle) renderLane(idx int) string {
	col := &h.board.Columns[idx]
	selected := idx == h.selColumn
	theme := h.opts.Theme

	borderColor := theme.ColumnBorder
	if selected {
		borderColor = theme.SelectedBorder
	}
	laneStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(borderColor)).
		Width(columnWidth - 2).
		Padding(0, 1)

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(theme.Accent))
	header := headerStyle.Render(fmt.Sprintf("%s (%d)", col.Title, len(col.Cards)))

	if len(col.Cards) == 0 {
		empty := lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Subtle)).
			Italic(true).
			Render("No cards")
		return laneStyle.Render(header + "\n\n" + empty)
	}

	visible := h.visibleCards()
	offset := min(h.scroll[col.ID], max(len(col.Cards)-1, 0))
	end := min(offset+visible, len(col.Cards))

	indicator := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Subtle))
	var b strings.Builder
	b.WriteString(header + "\n")
	if offset > 0 {
		b.WriteString(indicator.Render("▲ more above"))
	}
	b.WriteString("\n")

	for i := offset; i < end; i++ {
		isSel := selected && i == h.selCard
		grabbed := isSel && h.grab != nil && h.grab.kind == grabCard
		b.WriteString(h.renderCard(&col.Cards[i], isSel, grabbed))
		b.WriteString("\n")
	}

	if end < len(col.Cards) {
		b.WriteString(indicator.Render("▼ more below"))
	}

	return laneStyle.Render(strings.TrimRight(b.String(), "\n"))
}

// renderCard renders one card as a fixed-width box: title line plus a
// badge line. A grabbed card gets a marker so the drop target is
// obvious while it is carried around.
func (h *Handle) renderCard(card *board.Card, selected, grabbed bool) string {
	theme := h.opts.Theme

	borderColor := theme.CardBorder
	bg := theme.CardBg
	if selected {
		borderColor = theme.SelectedBorder
		bg = theme.SelectedBg
	}

	title := card.Title
	if grabbed {
		title = "◆ " + title
	}
	maxTitle := columnWidth - 8
	if r := []rune(title); len(r) > maxTitle {
		title = string(r[:maxTitle]) + "…"
	}

	badge := card.Meta["badge"]
	var badgeLine string
	if badge != "" {
		badgeLine = lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Accent)).
			Background(lipgloss.Color(bg)).
			Render(badge)
	} else {
		badgeLine = lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Subtle)).
			Background(lipgloss.Color(bg)).
			Italic(true).
			Render("no badge")
	}

	titleLine := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(theme.Normal)).
		Background(lipgloss.Color(bg)).
		Render(title)

	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(borderColor)).
		Background(lipgloss.Color(bg)).
		Width(columnWidth - 6).
		Render(titleLine + "\n" + badgeLine)
}

// renderAddBox renders the inline add-card input for the target column.
func (h *Handle) renderAddBox() string {
	theme := h.opts.Theme
	col := h.board.Column(h.add.column)
	title := string(h.add.column)
	if col != nil {
		title = col.Title
	}

	label := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(theme.Accent)).
		Render("Add card to " + title)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Accent)).
		Padding(0, 1).
		Render(label + "\n" + h.add.input.View())
}

// overlay centers a box over the board when the terminal size is known,
// otherwise it stacks the box below the board.
func (h *Handle) overlay(base, box string) string {
	if h.width <= 0 || h.height <= 0 {
		return base + "\n" + box
	}
	return lipgloss.Place(h.width, h.height, lipgloss.Center, lipgloss.Center, box)
}

// visibleCards returns how many cards fit in a lane at the current
// height. With no known height everything is rendered.
func (h *Handle) visibleCards() int {
	if h.height <= 0 {
		return 1 << 16
	}
	return max((h.height-columnOverhead)/cardHeight, 1)
}
