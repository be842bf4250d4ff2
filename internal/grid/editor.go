package grid

import (
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/gridx/internal/models"
	"github.com/desertthunder/gridx/internal/shared"
)

// Layout holds the chart dimensions and pallete sort preference.
type Layout struct {
	Rows    int
	Columns int
	Sort    SortOrder
}

// Size returns the number of grid slots.
func (l Layout) Size() int { return l.Rows * l.Columns }

// ChangeFunc is called after an operation replaced the board.
type ChangeFunc func(board models.Board, layout Layout)

// Editor owns the live board and the current drag session.
//
// Every method holds the editor's lock for the whole operation, so callers from several goroutines observe
// operations one at a time and never a partially applied one.
type Editor struct {
	mu       sync.Mutex
	notifyMu sync.Mutex // taken before mu is released so observers see changes in the order they were applied
	board    models.Board
	layout   Layout
	session  *DragSession
	logger   *log.Logger
	onChange ChangeFunc
}

// NewEditor creates an editor for board. A nil board starts from an empty one sized to layout.
func NewEditor(board models.Board, layout Layout, logger *log.Logger) *Editor {
	layout.Rows = shared.ClampDimension(layout.Rows)
	layout.Columns = shared.ClampDimension(layout.Columns)
	if layout.Sort == "" {
		layout.Sort = SortNone
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	if board == nil {
		board = models.NewBoard(layout.Rows, layout.Columns, NewPlaceholderID)
	} else if len(board.Grid().Items) != layout.Size() {
		board = Resize(board, layout.Rows, layout.Columns)
	}

	return &Editor{
		board:  board,
		layout: layout,
		logger: shared.WithLogger(logger, "component", "editor"),
	}
}

// OnChange registers fn to be called after each operation that changed the board or layout.
func (e *Editor) OnChange(fn ChangeFunc) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onChange = fn
}

// Board returns the current board.
func (e *Editor) Board() models.Board {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.board
}

// Layout returns the current layout.
func (e *Editor) Layout() Layout {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.layout
}

// Dragging returns the id of the album being dragged, if a gesture is in progress.
func (e *Editor) Dragging() (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session == nil {
		return "", false
	}
	return e.session.ActiveID, true
}

// DragStart begins a gesture for the album with the given id. Placeholders cannot be dragged.
func (e *Editor) DragStart(activeID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	it, _, ok := e.board.Find(activeID)
	if !ok || models.IsPlaceholder(it) {
		return false
	}

	e.session = NewDragSession(activeID)
	e.logger.Debug("drag started", "active", activeID)
	return true
}

// DragOver applies [DragOver] for the current gesture.
func (e *Editor) DragOver(overID string, geo Geometry) models.Board {
	return e.apply("drag over", func(b models.Board, _ *Layout) models.Board {
		if e.session == nil {
			return b
		}
		return DragOver(b, e.session, e.session.ActiveID, overID, geo)
	})
}

// DragEnd applies [DragEnd] for the current gesture and ends it.
func (e *Editor) DragEnd(overID string) models.Board {
	return e.apply("drag end", func(b models.Board, _ *Layout) models.Board {
		if e.session == nil {
			return b
		}
		s := e.session
		e.session = nil
		return DragEnd(b, s, s.ActiveID, overID)
	})
}

// DragCancel ends the current gesture, discarding its pending displaced item. The board is left as it is.
func (e *Editor) DragCancel() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session != nil {
		e.logger.Debug("drag cancelled", "active", e.session.ActiveID)
		e.session.Reset()
		e.session = nil
	}
}

// AutoFill applies [AutoFill] with the current dimensions.
func (e *Editor) AutoFill() models.Board {
	return e.apply("autofill", func(b models.Board, l *Layout) models.Board {
		return AutoFill(b, l.Rows, l.Columns)
	})
}

// Clear applies [Clear] with the current dimensions.
func (e *Editor) Clear() models.Board {
	return e.apply("clear", func(b models.Board, l *Layout) models.Board {
		return Clear(b, l.Rows, l.Columns)
	})
}

// Resize clamps the dimensions to the supported range and applies [Resize].
func (e *Editor) Resize(rows, columns int) models.Board {
	return e.apply("resize", func(b models.Board, l *Layout) models.Board {
		l.Rows = shared.ClampDimension(rows)
		l.Columns = shared.ClampDimension(columns)
		return Resize(b, l.Rows, l.Columns)
	})
}

// Sort records the sort preference and applies it to both palletes.
func (e *Editor) Sort(order SortOrder) models.Board {
	return e.apply("sort", func(b models.Board, l *Layout) models.Board {
		l.Sort = order
		b = SortPallete(b, models.CustomContainer, order)
		return SortPallete(b, models.LastFMContainer, order)
	})
}

// SetTextColor applies [SetTextColor].
func (e *Editor) SetTextColor(id, color string) models.Board {
	return e.apply("text color", func(b models.Board, _ *Layout) models.Board {
		return SetTextColor(b, id, color)
	})
}

// SetTextBackground applies [SetTextBackground].
func (e *Editor) SetTextBackground(id string, on bool) models.Board {
	return e.apply("text background", func(b models.Board, _ *Layout) models.Board {
		return SetTextBackground(b, id, on)
	})
}

// AddCustom applies [AddCustom].
func (e *Editor) AddCustom(album models.Album) models.Board {
	return e.apply("add custom", func(b models.Board, _ *Layout) models.Board {
		return AddCustom(b, album)
	})
}

// Remove applies [Remove].
func (e *Editor) Remove(id string) models.Board {
	return e.apply("remove", func(b models.Board, _ *Layout) models.Board {
		return Remove(b, id)
	})
}

// LoadPallete applies [LoadPallete] followed by the current sort preference.
func (e *Editor) LoadPallete(name string, albums []models.Album) models.Board {
	return e.apply("load pallete", func(b models.Board, l *Layout) models.Board {
		return SortPallete(LoadPallete(b, name, albums), name, l.Sort)
	})
}

// Replace swaps in a whole board and layout, as when loading a saved chart.
func (e *Editor) Replace(board models.Board, layout Layout) models.Board {
	return e.apply("replace", func(_ models.Board, l *Layout) models.Board {
		l.Rows = shared.ClampDimension(layout.Rows)
		l.Columns = shared.ClampDimension(layout.Columns)
		if layout.Sort != "" {
			l.Sort = layout.Sort
		}
		return Resize(board, l.Rows, l.Columns)
	})
}

// apply runs fn under the lock and notifies the change observer once the lock is released.
//
// Notifications are delivered in the order operations were applied. The observer must not call back into an
// operation that changes the editor.
func (e *Editor) apply(op string, fn func(models.Board, *Layout) models.Board) models.Board {
	e.mu.Lock()
	prevLayout := e.layout
	layout := e.layout
	prev := e.board
	next := fn(prev, &layout)
	e.board = next
	e.layout = layout
	notify := e.onChange
	e.notifyMu.Lock()
	e.mu.Unlock()
	defer e.notifyMu.Unlock()

	changed := !models.Same(prev, next) || layout != prevLayout
	if changed {
		e.logger.Debug("board updated", "op", op, "rows", layout.Rows, "columns", layout.Columns)
		if notify != nil {
			notify(next, layout)
		}
	}

	return next
}
