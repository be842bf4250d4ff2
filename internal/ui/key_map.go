package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up       key.Binding
	down     key.Binding
	left     key.Binding
	right    key.Binding
	next     key.Binding
	prev     key.Binding
	grab     key.Binding
	cancel   key.Binding
	fill     key.Binding
	clear    key.Binding
	addRow   key.Binding
	dropRow  key.Binding
	addCol   key.Binding
	dropCol  key.Binding
	sort     key.Binding
	color    key.Binding
	backdrop key.Binding
	remove   key.Binding
	find     key.Binding
	reload   key.Binding
	help     key.Binding
	quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		left:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		right:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		next:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next pane")),
		prev:     key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev pane")),
		grab:     key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "pick up/drop")),
		cancel:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		fill:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "autofill")),
		clear:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "clear")),
		addRow:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "add row")),
		dropRow:  key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "drop row")),
		addCol:   key.NewBinding(key.WithKeys(">", "."), key.WithHelp(">", "add column")),
		dropCol:  key.NewBinding(key.WithKeys("<", ","), key.WithHelp("<", "drop column")),
		sort:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
		color:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "text color")),
		backdrop: key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "text backdrop")),
		remove:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete custom")),
		find:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "find")),
		reload:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload import")),
		help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.grab, k.next, k.fill, k.find, k.help, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.left, k.right, k.next, k.prev},
		{k.grab, k.cancel, k.find},
		{k.fill, k.clear, k.addRow, k.dropRow, k.addCol, k.dropCol},
		{k.sort, k.color, k.backdrop, k.remove, k.reload},
		{k.help, k.quit},
	}
}
