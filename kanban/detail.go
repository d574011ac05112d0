package kanban

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// detailWidth is the word-wrap width of the card detail overlay.
const detailWidth = 60

// Glamour renderers are expensive to build, so they are cached by
// width. The cache is shared across handles; renderers are safe to
// reuse from the single UI goroutine all handles run on.
var rendererCache sync.Map // map[int]*glamour.TermRenderer

func getRenderer(width int) (*glamour.TermRenderer, error) {
	if cached, ok := rendererCache.Load(width); ok {
		return cached.(*glamour.TermRenderer), nil
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	rendererCache.Store(width, renderer)
	return renderer, nil
}

// renderMarkdown renders a card description as Markdown, falling back
// to the raw text when glamour cannot render it.
func renderMarkdown(text string, width int) string {
	renderer, err := getRenderer(width)
	if err != nil {
		return text
	}
	out, err := renderer.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimSpace(out)
}

// renderDetailBox renders the detail overlay for the selected card:
// its title plus the Meta["description"] field rendered as Markdown.
func (h *Handle) renderDetailBox() string {
	theme := h.opts.Theme
	card := h.SelectedCard()
	if card == nil {
		return ""
	}

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(theme.Accent)).
		Render(card.Title)

	var body string
	if desc := card.Meta["description"]; desc != "" {
		body = renderMarkdown(desc, detailWidth)
	} else {
		body = lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Subtle)).
			Italic(true).
			Render("No description")
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.SelectedBorder)).
		Padding(0, 1).
		Width(detailWidth + 2).
		Render(title + "\n\n" + body)
}
