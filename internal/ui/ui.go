package ui

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/gridx/internal/grid"
	"github.com/desertthunder/gridx/internal/models"
	"github.com/desertthunder/gridx/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	BoardView ViewState = iota
	FindView
	ImportView
)

const (
	palleteWidth = 30
	minCellWidth = 6
	maxCellWidth = 20
)

// panes is the focus cycle order.
var panes = []string{models.GridContainer, models.CustomContainer, models.LastFMContainer}

// ImportSource names the file the reload key imports into a pallete.
type ImportSource struct {
	Importer *tasks.Importer
	Path     string
	Pallete  string
}

// Model represents the TUI application state.
type Model struct {
	ctx          context.Context
	view         ViewState
	editor       *grid.Editor
	source       ImportSource
	width        int
	height       int
	focus        int
	cursor       map[string]int
	finder       list.Model
	progressChan chan tasks.ProgressUpdate
	progress     tasks.ProgressUpdate
	result       *tasks.ImportResult
	status       string
	err          error
	help         help.Model
	keys         keyMap
}

// NewModel creates a new TUI model driving editor. source may be empty, which disables reloading.
func NewModel(ctx context.Context, editor *grid.Editor, source ImportSource) *Model {
	h := help.New()
	h.ShowAll = false
	return &Model{
		ctx:    ctx,
		view:   BoardView,
		editor: editor,
		source: source,
		cursor: map[string]int{},
		help:   h,
		keys:   newKeyMap(),
	}
}

// Init starts the configured import, if any, so the pallete is fresh when the board first renders.
func (m *Model) Init() tea.Cmd {
	if m.source.Importer == nil || m.source.Path == "" {
		return nil
	}
	m.view = ImportView
	return m.startImport()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if m.view == FindView {
			m.finder.SetSize(msg.Width-4, msg.Height-4)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case BoardView:
			return m.handleBoardKeys(msg)
		case FindView:
			return m.handleFindKeys(msg)
		case ImportView:
			if key.Matches(msg, m.keys.quit) {
				return m, tea.Quit
			}
		}
		return m, nil

	case Msg:
		switch msg.kind {
		case MsgProgressUpdate:
			m.progress = msg.data.(tasks.ProgressUpdate)
			return m, m.waitForProgress()
		case MsgImportComplete:
			return m.finishImport(msg.data.(importOutcome))
		}
	}

	if m.view == FindView {
		var cmd tea.Cmd
		m.finder, cmd = m.finder.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case FindView:
		return m.finder.View()
	case ImportView:
		return m.renderImport()
	default:
		return m.renderBoard()
	}
}

func (m *Model) handleBoardKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status, m.err = "", nil
	_, dragging := m.editor.Dragging()

	switch {
	case key.Matches(msg, m.keys.quit):
		if dragging {
			m.editor.DragCancel()
		}
		return m, tea.Quit
	case key.Matches(msg, m.keys.help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.up):
		m.move(0, -1)
	case key.Matches(msg, m.keys.down):
		m.move(0, 1)
	case key.Matches(msg, m.keys.left):
		m.move(-1, 0)
	case key.Matches(msg, m.keys.right):
		m.move(1, 0)
	case key.Matches(msg, m.keys.next):
		m.switchPane(1)
	case key.Matches(msg, m.keys.prev):
		m.switchPane(-1)
	case key.Matches(msg, m.keys.grab):
		m.grab()
	case key.Matches(msg, m.keys.cancel):
		if dragging {
			m.editor.DragCancel()
			m.status = "drag cancelled"
		}
	case dragging:
		m.status = "drop or cancel the album first"
	case key.Matches(msg, m.keys.fill):
		m.editor.AutoFill()
		m.status = "filled empty slots"
	case key.Matches(msg, m.keys.clear):
		m.editor.Clear()
		m.status = "cleared the chart"
	case key.Matches(msg, m.keys.addRow):
		l := m.editor.Layout()
		m.editor.Resize(l.Rows+1, l.Columns)
	case key.Matches(msg, m.keys.dropRow):
		l := m.editor.Layout()
		m.editor.Resize(l.Rows-1, l.Columns)
	case key.Matches(msg, m.keys.addCol):
		l := m.editor.Layout()
		m.editor.Resize(l.Rows, l.Columns+1)
	case key.Matches(msg, m.keys.dropCol):
		l := m.editor.Layout()
		m.editor.Resize(l.Rows, l.Columns-1)
	case key.Matches(msg, m.keys.sort):
		order := m.editor.Layout().Sort.Next()
		m.editor.Sort(order)
		m.status = "sorted by " + string(order)
	case key.Matches(msg, m.keys.color):
		if a, ok := m.selectedAlbum(); ok {
			i := slices.Index(textColors, a.TextColor)
			m.editor.SetTextColor(a.ID(), textColors[(i+1)%len(textColors)])
		}
	case key.Matches(msg, m.keys.backdrop):
		if a, ok := m.selectedAlbum(); ok {
			m.editor.SetTextBackground(a.ID(), !a.TextBackground)
		}
	case key.Matches(msg, m.keys.remove):
		if a, ok := m.selectedAlbum(); ok && m.pane() == models.CustomContainer {
			m.editor.Remove(a.ID())
			m.status = "removed " + a.Title
		}
	case key.Matches(msg, m.keys.find):
		m.openFinder()
		return m, nil
	case key.Matches(msg, m.keys.reload):
		if m.source.Importer == nil || m.source.Path == "" {
			m.status = "no import file configured"
			return m, nil
		}
		m.view = ImportView
		return m, m.startImport()
	}

	m.clampCursors()
	return m, nil
}

func (m *Model) handleFindKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.finder.FilterState() != list.Filtering {
		switch msg.String() {
		case "esc", "q":
			m.view = BoardView
			return m, nil
		case "enter":
			if it, ok := m.finder.SelectedItem().(albumItem); ok {
				m.jumpTo(it.album.ID())
			}
			m.view = BoardView
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.finder, cmd = m.finder.Update(msg)
	return m, cmd
}

func (m *Model) openFinder() {
	m.finder = list.New(albumItems(m.editor.Board()), list.NewDefaultDelegate(), 0, 0)
	m.finder.Title = "Find album"
	m.finder.SetSize(max(m.width-4, 40), max(m.height-4, 20))
	m.view = FindView
}

// pane returns the focused container name.
func (m *Model) pane() string {
	return panes[m.focus]
}

func (m *Model) items(name string) []models.Item {
	return m.editor.Board()[name].Items
}

// selected returns the item under the cursor, or nil when the focused container is empty.
func (m *Model) selected() models.Item {
	items := m.items(m.pane())
	i := m.cursor[m.pane()]
	if i < 0 || i >= len(items) {
		return nil
	}
	return items[i]
}

func (m *Model) selectedAlbum() (models.Album, bool) {
	a, ok := m.selected().(models.Album)
	return a, ok
}

// target is the drag-over id for the cursor: the item under it, or the container itself when empty.
func (m *Model) target() string {
	if it := m.selected(); it != nil {
		return it.ID()
	}
	return m.pane()
}

func (m *Model) move(dx, dy int) {
	name := m.pane()
	i := m.cursor[name]
	n := len(m.items(name))

	if name == models.GridContainer {
		cols := m.editor.Layout().Columns
		switch {
		case dx < 0 && i%cols > 0:
			i--
		case dx > 0 && i%cols < cols-1 && i+1 < n:
			i++
		case dy < 0 && i-cols >= 0:
			i -= cols
		case dy > 0 && i+cols < n:
			i += cols
		case dx > 0:
			m.switchPane(1)
			return
		}
	} else {
		switch {
		case dy != 0:
			i = max(0, min(i+dy, n-1))
		case dx != 0:
			m.switchPane(dx)
			return
		}
	}

	m.cursor[name] = i
	m.hover()
}

func (m *Model) switchPane(delta int) {
	m.focus = (m.focus + delta + len(panes)) % len(panes)
	m.clampCursors()
	m.hover()
}

// hover reports the cursor position to an active gesture once it enters another pane, and keeps the cursor
// on the dragged album. Moves within the album's own pane are settled by the drop.
func (m *Model) hover() {
	active, ok := m.editor.Dragging()
	if !ok {
		return
	}
	if name, _ := m.editor.Board().Locate(active); name == m.pane() {
		return
	}
	m.editor.DragOver(m.target(), grid.Geometry{})
	if name, _ := m.editor.Board().Locate(active); name != m.pane() {
		m.status = "cannot drop here"
		return
	}
	m.jumpTo(active)
}

func (m *Model) grab() {
	active, dragging := m.editor.Dragging()
	if !dragging {
		it := m.selected()
		if it == nil || models.IsPlaceholder(it) {
			m.status = "nothing to pick up"
			return
		}
		m.editor.DragStart(it.ID())
		m.status = "dragging " + it.(models.Album).Title
		return
	}

	over := m.target()
	m.editor.DragEnd(over)
	m.jumpTo(active)
	m.status = "dropped"
}

// jumpTo moves focus and cursor to the item with id.
func (m *Model) jumpTo(id string) {
	_, name, ok := m.editor.Board().Find(id)
	if !ok {
		return
	}
	if i := slices.Index(panes, name); i >= 0 {
		m.focus = i
		m.cursor[name] = m.editor.Board()[name].IndexOf(id)
	}
}

func (m *Model) clampCursors() {
	for _, name := range panes {
		n := len(m.items(name))
		m.cursor[name] = max(0, min(m.cursor[name], n-1))
	}
}

func (m *Model) startImport() tea.Cmd {
	m.progressChan = make(chan tasks.ProgressUpdate, 50)
	m.progress = tasks.ProgressUpdate{}
	progress := m.progressChan
	src := m.source

	go func() {
		result, err := src.Importer.Import(m.ctx, progress, src.Path, src.Pallete)
		m.result = result
		m.err = err
		close(progress)
	}()

	return m.waitForProgress()
}

func (m *Model) waitForProgress() tea.Cmd {
	progress := m.progressChan
	return func() tea.Msg {
		if progress == nil {
			return importCompleteMsg(m.result, m.err)
		}

		update, ok := <-progress
		if !ok {
			return importCompleteMsg(m.result, m.err)
		}
		return progressUpdateMsg(update)
	}
}

func (m *Model) finishImport(out importOutcome) (tea.Model, tea.Cmd) {
	m.progressChan = nil
	m.view = BoardView
	if out.err != nil {
		m.err = out.err
		return m, nil
	}

	m.editor.LoadPallete(out.result.Pallete, out.result.Albums)
	m.clampCursors()
	m.status = fmt.Sprintf("loaded %d albums into %s", len(out.result.Albums), out.result.Pallete)
	if out.result.Skipped > 0 {
		m.status += fmt.Sprintf(" (%d skipped)", out.result.Skipped)
	}
	return m, nil
}

func (m *Model) cellWidth(columns int) int {
	if m.width <= 0 {
		return 14
	}
	avail := m.width - 2*palleteWidth - 4
	return max(minCellWidth, min(avail/max(columns, 1)-2, maxCellWidth))
}

func (m *Model) visibleRows() int {
	if m.height <= 0 {
		return 12
	}
	return max(m.height-10, 4)
}

func (m *Model) renderBoard() string {
	b := m.editor.Board()
	layout := m.editor.Layout()
	active, _ := m.editor.Dragging()

	header := styles.title.Render(fmt.Sprintf("Chart %d×%d • sort: %s", layout.Rows, layout.Columns, layout.Sort))
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderGrid(b, layout, active),
		"  ",
		m.renderPallete(b, models.CustomContainer, active),
		"  ",
		m.renderPallete(b, models.LastFMContainer, active),
	)

	var footer string
	switch {
	case m.err != nil:
		footer = styles.err.Render(fmt.Sprintf("Error: %v", m.err))
	case m.status != "":
		footer = styles.ok.Render(m.status)
	}

	return fmt.Sprintf("%s\n%s\n\n%s\n%s", header, body, footer, m.help.View(m.keys))
}

func (m *Model) renderGrid(b models.Board, layout grid.Layout, active string) string {
	items := b.Grid().Items
	width := m.cellWidth(layout.Columns)
	focused := m.pane() == models.GridContainer

	rows := make([]string, 0, layout.Rows+1)
	rows = append(rows, m.heading(b.Grid().Title, focused))
	for r := range layout.Rows {
		titles := make([]string, 0, layout.Columns)
		subtitles := make([]string, 0, layout.Columns)
		for c := range layout.Columns {
			i := r*layout.Columns + c
			if i >= len(items) {
				break
			}
			style := m.cellStyle(items[i], active, focused && m.cursor[models.GridContainer] == i)
			title, subtitle := "·", ""
			if a, ok := items[i].(models.Album); ok {
				title, subtitle = a.Title, a.Subtitle
			}
			titles = append(titles, style.Render(fitWidth(title, width)))
			subtitles = append(subtitles, style.Render(fitWidth(subtitle, width)))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, titles...))
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, subtitles...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m *Model) renderPallete(b models.Board, name, active string) string {
	c, ok := b[name]
	if !ok {
		return ""
	}
	focused := m.pane() == name
	cur := m.cursor[name]

	lines := []string{m.heading(fmt.Sprintf("%s (%d)", c.Title, len(c.Items)), focused)}
	if len(c.Items) == 0 {
		lines = append(lines, styles.placeholder.Render(fitWidth("empty", palleteWidth)))
	}

	visible := m.visibleRows()
	start := 0
	if cur >= visible {
		start = cur - visible + 1
	}
	end := min(len(c.Items), start+visible)

	for i := start; i < end; i++ {
		it := c.Items[i]
		label := "+ add album"
		if a, ok := it.(models.Album); ok {
			label = a.Title
			if a.Subtitle != "" {
				label += " — " + a.Subtitle
			}
		}
		style := m.cellStyle(it, active, focused && cur == i)
		lines = append(lines, style.Render(fitWidth(label, palleteWidth)))
	}
	if end < len(c.Items) {
		lines = append(lines, styles.help.Render(fmt.Sprintf("… %d more", len(c.Items)-end)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m *Model) heading(title string, focused bool) string {
	if focused {
		return styles.heading.Render("▸ " + title)
	}
	return styles.help.Render("  " + title)
}

func (m *Model) cellStyle(it models.Item, active string, atCursor bool) lipgloss.Style {
	switch {
	case it.ID() == active:
		return styles.dragging
	case atCursor:
		return styles.cursor
	case models.IsPlaceholder(it):
		return styles.placeholder
	}

	style := styles.cell
	if a, ok := it.(models.Album); ok {
		if a.TextColor != "" {
			style = style.Foreground(lipgloss.Color(a.TextColor))
		}
		if a.TextBackground {
			style = style.Background(lipgloss.Color("#303030"))
		}
	}
	return style
}

func (m *Model) renderImport() string {
	title := styles.title.Render("Importing albums")

	var phase string
	switch m.progress.Phase {
	case tasks.ReadFile:
		phase = "Reading file..."
	case tasks.ValidateSchema:
		phase = "Validating records..."
	case tasks.ConvertRecords:
		phase = fmt.Sprintf("Converting records (%d/%d)", m.progress.Step, m.progress.Total)
	case tasks.LoadPallete:
		phase = "Loading pallete..."
	default:
		phase = "Processing..."
	}

	return fmt.Sprintf("%s\n\n%s\n%s", title, phase, strings.TrimSpace(m.progress.Message))
}
