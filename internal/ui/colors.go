package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

var styles = NewPalette("#7D56F4", "#04B575", "#FF0000", "#FFA500", "#626262")

// textColors is the caption color cycle for the selected album. The empty string restores the default.
var textColors = []string{"", "#FFFFFF", "#000000", "#F5C518", "#7D56F4"}

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title       lipgloss.Style
	ok          lipgloss.Style
	err         lipgloss.Style
	warn        lipgloss.Style
	help        lipgloss.Style
	cell        lipgloss.Style
	placeholder lipgloss.Style
	cursor      lipgloss.Style
	dragging    lipgloss.Style
	heading     lipgloss.Style
}

func NewPalette(t, s, e, w, h string) *Palette {
	return &Palette{
		title:       NewBold(t).MarginBottom(1),
		ok:          NewBold(s),
		err:         NewBold(e),
		warn:        NewStyle(w),
		help:        NewEm(h),
		cell:        lipgloss.NewStyle().Padding(0, 1),
		placeholder: NewStyle(h).Padding(0, 1),
		cursor:      lipgloss.NewStyle().Padding(0, 1).Reverse(true),
		dragging:    lipgloss.NewStyle().Padding(0, 1).Background(lipgloss.Color(w)).Foreground(lipgloss.Color("#000000")),
		heading:     NewBold(t),
	}
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}

// fitWidth truncates s to width display cells and pads it on the right so columns line up.
func fitWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) > width {
		s = runewidth.Truncate(s, width, "…")
	}
	return runewidth.FillRight(s, width)
}
