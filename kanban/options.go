package kanban

// KeyMap defines the key bindings the handle responds to. Keys are
// matched against tea.KeyMsg.String(), so multi-key names like "enter"
// and "esc" work the same way single runes do.
type KeyMap struct {
	PrevColumn string
	NextColumn string
	PrevCard   string
	NextCard   string

	GrabCard   string
	GrabColumn string
	Drop       string
	Cancel     string

	AddCard  string
	ViewCard string
}

// DefaultKeyMap returns the default vim-flavored bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		PrevColumn: "h",
		NextColumn: "l",
		PrevCard:   "k",
		NextCard:   "j",

		GrabCard:   " ",
		GrabColumn: "g",
		Drop:       "enter",
		Cancel:     "esc",

		AddCard:  "a",
		ViewCard: "v",
	}
}

// applyDefaults fills empty bindings so a partially customized KeyMap
// still drives every gesture.
func (k *KeyMap) applyDefaults() {
	def := DefaultKeyMap()
	if k.PrevColumn == "" {
		k.PrevColumn = def.PrevColumn
	}
	if k.NextColumn == "" {
		k.NextColumn = def.NextColumn
	}
	if k.PrevCard == "" {
		k.PrevCard = def.PrevCard
	}
	if k.NextCard == "" {
		k.NextCard = def.NextCard
	}
	if k.GrabCard == "" {
		k.GrabCard = def.GrabCard
	}
	if k.GrabColumn == "" {
		k.GrabColumn = def.GrabColumn
	}
	if k.Drop == "" {
		k.Drop = def.Drop
	}
	if k.Cancel == "" {
		k.Cancel = def.Cancel
	}
	if k.AddCard == "" {
		k.AddCard = def.AddCard
	}
	if k.ViewCard == "" {
		k.ViewCard = def.ViewCard
	}
}

// Theme holds the colors the renderer derives its styles from.
type Theme struct {
	Accent         string
	Subtle         string
	Normal         string
	ColumnBorder   string
	CardBorder     string
	CardBg         string
	SelectedBorder string
	SelectedBg     string
}

// DefaultTheme returns the purple default theme.
func DefaultTheme() Theme {
	return Theme{
		Accent:         "#874BFD",
		Subtle:         "#585858",
		Normal:         "#D0D0D0",
		ColumnBorder:   "#5F87D7",
		CardBorder:     "#585858",
		CardBg:         "#262626",
		SelectedBorder: "#D75FD7",
		SelectedBg:     "#3A3A3A",
	}
}

// applyDefaults fills empty colors from the default theme.
func (t *Theme) applyDefaults() {
	def := DefaultTheme()
	if t.Accent == "" {
		t.Accent = def.Accent
	}
	if t.Subtle == "" {
		t.Subtle = def.Subtle
	}
	if t.Normal == "" {
		t.Normal = def.Normal
	}
	if t.ColumnBorder == "" {
		t.ColumnBorder = def.ColumnBorder
	}
	if t.CardBorder == "" {
		t.CardBorder = def.CardBorder
	}
	if t.CardBg == "" {
		t.CardBg = def.CardBg
	}
	if t.SelectedBorder == "" {
		t.SelectedBorder = def.SelectedBorder
	}
	if t.SelectedBg == "" {
		t.SelectedBg = def.SelectedBg
	}
}

// Options configures a mounted board. The zero value renders a
// read-only board: every capability is opt-in.
type Options struct {
	// AllowCardDrag enables the grab/move/drop gesture on cards.
	AllowCardDrag bool
	// AllowColumnDrag enables the grab/move/drop gesture on whole columns.
	AllowColumnDrag bool
	// AllowAddItem enables the inline add-card input on the selected column.
	AllowAddItem bool

	Keys  KeyMap
	Theme Theme

	// Host callbacks, supplied at mount time. All of them are invoked
	// synchronously from inside the key handler and are dropped by
	// Destroy, so nothing can fire after teardown.
	OnCardMoved       func(CardMoved)
	OnColumnReordered func(ColumnReordered)
	OnAddItem         func(AddItemRequested)
}
