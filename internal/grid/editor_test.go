package grid

import (
	"bytes"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/gridx/internal/models"
	"github.com/desertthunder/gridx/internal/shared"
)

func newTestEditor(t *testing.T, b models.Board, rows, columns int) (*Editor, *bytes.Buffer) {
	t.Helper()

	var buf bytes.Buffer
	logger := shared.NewLogger(&buf)
	logger.SetLevel(log.DebugLevel)

	return NewEditor(b, Layout{Rows: rows, Columns: columns}, logger), &buf
}

func TestNewEditor(t *testing.T) {
	t.Run("nil board starts empty", func(t *testing.T) {
		useSequentialIDs(t)
		e, _ := newTestEditor(t, nil, 2, 3)

		if got := len(e.Board().Grid().Items); got != 6 {
			t.Errorf("grid length = %d, want 6", got)
		}
		if l := e.Layout(); l.Sort != SortNone {
			t.Errorf("default sort = %q, want none", l.Sort)
		}
	})

	t.Run("clamps dimensions", func(t *testing.T) {
		useSequentialIDs(t)
		e, _ := newTestEditor(t, nil, 0, 42)

		l := e.Layout()
		if l.Rows != shared.MinDimension || l.Columns != shared.MaxDimension {
			t.Errorf("layout = %dx%d, want %dx%d", l.Rows, l.Columns, shared.MinDimension, shared.MaxDimension)
		}
	})

	t.Run("fits a mismatched board", func(t *testing.T) {
		b := newTestBoard(t, 1, 2, []models.Item{custom("A"), custom("B")}, nil, nil)
		e, _ := newTestEditor(t, b, 1, 1)

		assertIDs(t, e.Board(), models.GridContainer, "A")
	})
}

func TestEditorDrag(t *testing.T) {
	t.Run("full gesture", func(t *testing.T) {
		b := newTestBoard(t, 2, 2,
			[]models.Item{custom("A"), custom("B"), custom("C"), custom("D")},
			[]models.Item{custom("E")},
			nil,
		)
		e, _ := newTestEditor(t, b, 2, 2)

		if !e.DragStart("E") {
			t.Fatal("DragStart should accept an album")
		}
		if id, ok := e.Dragging(); !ok || id != "E" {
			t.Errorf("Dragging() = %q, %v", id, ok)
		}

		e.DragOver("C", Geometry{})
		e.DragEnd("E")

		assertIDs(t, e.Board(), models.GridContainer, "A", "B", "E", "C")
		assertIDs(t, e.Board(), models.CustomContainer, "D", models.AddSlotID)

		if _, ok := e.Dragging(); ok {
			t.Error("gesture should end on DragEnd")
		}
	})

	t.Run("placeholders cannot be dragged", func(t *testing.T) {
		b := newTestBoard(t, 1, 1, nil, nil, nil)
		e, _ := newTestEditor(t, b, 1, 1)

		if e.DragStart(models.AddSlotID) {
			t.Error("the add slot is not draggable")
		}
		if e.DragStart(b.Grid().Items[0].ID()) {
			t.Error("grid placeholders are not draggable")
		}
	})

	t.Run("DragOver without a gesture is a no-op", func(t *testing.T) {
		b := newTestBoard(t, 1, 1, []models.Item{custom("A")}, nil, nil)
		e, _ := newTestEditor(t, b, 1, 1)

		if next := e.DragOver(models.CustomContainer, Geometry{}); !models.Same(b, next) {
			t.Error("expected no change")
		}
	})

	t.Run("cancel keeps the board and drops the pending item", func(t *testing.T) {
		b := newTestBoard(t, 2, 2,
			[]models.Item{custom("A"), custom("B"), custom("C"), custom("D")},
			[]models.Item{custom("E")},
			nil,
		)
		e, _ := newTestEditor(t, b, 2, 2)

		e.DragStart("E")
		moved := e.DragOver("C", Geometry{})
		e.DragCancel()

		if !models.Same(moved, e.Board()) {
			t.Error("cancel should leave the board as the last DragOver produced")
		}
		if _, ok := e.Dragging(); ok {
			t.Error("gesture should end on DragCancel")
		}

		// a new gesture starts without the old pending item
		e.DragStart("E")
		e.DragOver(models.CustomContainer, Geometry{})
		assertIDs(t, e.Board(), models.GridContainer, "A", "B", "C", "p5")
		assertIDs(t, e.Board(), models.CustomContainer, "D", "E", models.AddSlotID)
	})
}

func TestEditorBulk(t *testing.T) {
	t.Run("autofill, resize and clear", func(t *testing.T) {
		b := newTestBoard(t, 2, 2, nil, []models.Item{custom("X"), custom("Y")}, nil)
		e, _ := newTestEditor(t, b, 2, 2)

		e.AutoFill()
		if got := ids(e.Board(), models.GridContainer)[:2]; !slices.Equal(got, []string{"X", "Y"}) {
			t.Errorf("grid starts with %v, want X, Y", got)
		}

		e.Resize(1, 1)
		if l := e.Layout(); l.Rows != 1 || l.Columns != 1 {
			t.Errorf("layout = %dx%d, want 1x1", l.Rows, l.Columns)
		}
		assertIDs(t, e.Board(), models.GridContainer, "X")

		e.Clear()
		assertIDs(t, e.Board(), models.CustomContainer, "X", models.AddSlotID)
		if !models.IsPlaceholder(e.Board().Grid().Items[0]) {
			t.Error("grid should be cleared")
		}
	})

	t.Run("resize clamps", func(t *testing.T) {
		e, _ := newTestEditor(t, newTestBoard(t, 1, 1, nil, nil, nil), 1, 1)

		e.Resize(-3, 99)

		if l := e.Layout(); l.Rows != shared.MinDimension || l.Columns != shared.MaxDimension {
			t.Errorf("layout = %dx%d", l.Rows, l.Columns)
		}
		if got := len(e.Board().Grid().Items); got != shared.MinDimension*shared.MaxDimension {
			t.Errorf("grid length = %d", got)
		}
	})

	t.Run("sort applies to loaded palletes", func(t *testing.T) {
		e, _ := newTestEditor(t, newTestBoard(t, 1, 1, nil, nil, nil), 1, 1)

		e.Sort(SortTitle)
		e.LoadPallete(models.LastFMContainer, []models.Album{
			models.NewAlbum(models.KindLastFM, "l1", "zeta", ""),
			models.NewAlbum(models.KindLastFM, "l2", "alpha", ""),
		})

		assertIDs(t, e.Board(), models.LastFMContainer, "l2", "l1")
		if e.Layout().Sort != SortTitle {
			t.Errorf("sort = %q, want title", e.Layout().Sort)
		}
	})

	t.Run("replace", func(t *testing.T) {
		e, _ := newTestEditor(t, newTestBoard(t, 1, 1, nil, nil, nil), 1, 1)
		saved := newTestBoard(t, 1, 2, []models.Item{custom("A"), custom("B")}, nil, nil)

		e.Replace(saved, Layout{Rows: 1, Columns: 2, Sort: SortPlayCount})

		assertIDs(t, e.Board(), models.GridContainer, "A", "B")
		if l := e.Layout(); l.Columns != 2 || l.Sort != SortPlayCount {
			t.Errorf("layout = %+v", l)
		}
	})
}

func TestEditorOnChange(t *testing.T) {
	b := newTestBoard(t, 1, 2, []models.Item{custom("A"), models.NewPlaceholder("P")}, []models.Item{custom("X")}, nil)
	e, buf := newTestEditor(t, b, 1, 2)

	var calls int
	var last models.Board
	e.OnChange(func(board models.Board, _ Layout) {
		calls++
		last = board
	})

	e.SetTextColor("A", "#fff")
	e.SetTextColor("A", "#fff")
	e.SetTextBackground("A", true)
	e.AddCustom(custom("Y"))
	e.Remove("nope")

	if calls != 3 {
		t.Errorf("OnChange called %d times, want 3", calls)
	}
	if !models.Same(last, e.Board()) {
		t.Error("OnChange should receive the new board")
	}
	if !strings.Contains(buf.String(), "board updated") {
		t.Errorf("expected debug log, got %q", buf.String())
	}
}

func TestEditorConcurrency(t *testing.T) {
	b := newTestBoard(t, 3, 3, nil,
		[]models.Item{custom("C1"), custom("C2"), custom("C3")},
		[]models.Item{lastfm("L1"), lastfm("L2"), lastfm("L3"), lastfm("L4")},
	)
	e, _ := newTestEditor(t, b, 3, 3)
	want := albumSet(b)

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				switch i % 4 {
				case 0:
					e.AutoFill()
				case 1:
					e.Clear()
				case 2:
					e.Sort(SortTitle)
				default:
					_ = e.Board()
				}
			}
		}()
	}
	wg.Wait()

	if got := albumSet(e.Board()); !slices.Equal(got, want) {
		t.Errorf("albums = %v, want %v", got, want)
	}
	assertInvariants(t, e.Board(), 9)
}

func TestEditorOnChangeOrder(t *testing.T) {
	b := newTestBoard(t, 2, 2, nil, []models.Item{custom("C1"), custom("C2")}, []models.Item{lastfm("L1"), lastfm("L2")})
	e, _ := newTestEditor(t, b, 2, 2)

	var mu sync.Mutex
	var last models.Board
	var lastLayout Layout
	e.OnChange(func(board models.Board, layout Layout) {
		mu.Lock()
		defer mu.Unlock()
		last, lastLayout = board, layout
	})

	var wg sync.WaitGroup
	for i := range 6 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for n := range 40 {
				switch i % 3 {
				case 0:
					e.AutoFill()
				case 1:
					e.Clear()
				default:
					e.Resize(2, 2+n%3)
				}
			}
		}()
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	if !models.Same(last, e.Board()) {
		t.Error("last observed board should be the live board")
	}
	if lastLayout != e.Layout() {
		t.Errorf("last observed layout = %+v, want %+v", lastLayout, e.Layout())
	}
}
