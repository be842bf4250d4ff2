package grid

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/desertthunder/gridx/internal/models"
)

func TestDragOver(t *testing.T) {
	t.Run("full grid evicts the last item to the source pallete", func(t *testing.T) {
		b := newTestBoard(t, 2, 2,
			[]models.Item{custom("A"), custom("B"), custom("C"), custom("D")},
			[]models.Item{custom("E")},
			nil,
		)
		s := NewDragSession("E")

		next := DragOver(b, s, "E", "C", Geometry{})

		assertIDs(t, next, models.GridContainer, "A", "B", "E", "C")
		assertIDs(t, next, models.CustomContainer, "D", models.AddSlotID)
		assertInvariants(t, next, 4)

		pending, ok := s.Displaced()
		if !ok || pending.ID() != "D" {
			t.Errorf("expected D to be pending, got %v (ok=%v)", pending, ok)
		}
	})

	t.Run("evicted album goes to its own pallete when the source does not accept it", func(t *testing.T) {
		b := newTestBoard(t, 2, 2,
			[]models.Item{lastfm("L1"), lastfm("L2"), lastfm("L3"), lastfm("L4")},
			[]models.Item{custom("E")},
			[]models.Item{},
		)
		s := NewDragSession("E")

		next := DragOver(b, s, "E", "L3", Geometry{})

		assertIDs(t, next, models.GridContainer, "L1", "L2", "E", "L3")
		assertIDs(t, next, models.CustomContainer, models.AddSlotID)
		assertIDs(t, next, models.LastFMContainer, "L4")
		assertInvariants(t, next, 4)

		next = Remove(next, "L4")
		if got := albumSet(next); !slices.Contains(got, "L4") {
			t.Errorf("removing from custom should not reach a lastfm album, albums = %v", got)
		}
	})

	t.Run("album evicted to its own pallete is restored when moving back", func(t *testing.T) {
		b := newTestBoard(t, 2, 2,
			[]models.Item{lastfm("L1"), lastfm("L2"), lastfm("L3"), lastfm("L4")},
			[]models.Item{custom("E")},
			[]models.Item{},
		)
		s := NewDragSession("E")

		b = DragOver(b, s, "E", "L3", Geometry{})
		b = DragOver(b, s, "E", models.CustomContainer, Geometry{})

		assertIDs(t, b, models.GridContainer, "L1", "L2", "L4", "L3")
		assertIDs(t, b, models.CustomContainer, "E", models.AddSlotID)
		assertIDs(t, b, models.LastFMContainer)
		assertInvariants(t, b, 4)
	})

	t.Run("full grid gives up the nearest placeholder at or after the insertion point", func(t *testing.T) {
		b := newTestBoard(t, 2, 2,
			[]models.Item{models.NewPlaceholder("P0"), custom("A"), models.NewPlaceholder("P2"), custom("B")},
			[]models.Item{custom("E")},
			nil,
		)
		s := NewDragSession("E")

		next := DragOver(b, s, "E", "A", Geometry{})

		assertIDs(t, next, models.GridContainer, "P0", "E", "A", "B")
		assertIDs(t, next, models.CustomContainer, models.AddSlotID)
		assertInvariants(t, next, 4)

		if pending, _ := s.Displaced(); pending == nil || pending.ID() != "P2" {
			t.Errorf("expected P2 to be pending, got %v", pending)
		}
	})

	t.Run("below the midpoint inserts after the target", func(t *testing.T) {
		b := newTestBoard(t, 2, 2,
			[]models.Item{custom("A"), custom("B"), models.NewPlaceholder("P2"), models.NewPlaceholder("P3")},
			[]models.Item{custom("E")},
			nil,
		)

		next := DragOver(b, NewDragSession("E"), "E", "A", Below())

		assertIDs(t, next, models.GridContainer, "A", "E", "B", "P3")
	})

	t.Run("above the midpoint inserts before the target", func(t *testing.T) {
		geo := Geometry{Valid: true, ActiveTop: 10, OverTop: 0, OverHeight: 40}
		if geo.below() {
			t.Fatal("top at 10 of a 40 high target should not count as below")
		}

		b := newTestBoard(t, 2, 2,
			[]models.Item{custom("A"), custom("B"), models.NewPlaceholder("P2"), models.NewPlaceholder("P3")},
			[]models.Item{custom("E")},
			nil,
		)

		next := DragOver(b, NewDragSession("E"), "E", "A", geo)

		assertIDs(t, next, models.GridContainer, "E", "A", "B", "P3")
	})

	t.Run("hovering an empty pallete appends", func(t *testing.T) {
		b := newTestBoard(t, 1, 2, []models.Item{lastfm("L1"), models.NewPlaceholder("P1")}, nil, []models.Item{})
		s := NewDragSession("L1")

		next := DragOver(b, s, "L1", models.LastFMContainer, Geometry{})

		assertIDs(t, next, models.LastFMContainer, "L1")
		// grid refilled to its minimum with a fresh placeholder
		grid := next.Grid()
		if len(grid.Items) != 2 || !models.IsPlaceholder(grid.Items[1]) {
			t.Errorf("grid = %v, want two placeholders", ids(next, models.GridContainer))
		}
		assertInvariants(t, next, 2)
	})

	t.Run("insertions into the custom pallete stay ahead of the add slot", func(t *testing.T) {
		b := newTestBoard(t, 1, 2, []models.Item{custom("A"), custom("B")}, []models.Item{custom("X")}, nil)

		next := DragOver(b, NewDragSession("A"), "A", models.AddSlotID, Below())
		assertIDs(t, next, models.CustomContainer, "X", "A", models.AddSlotID)

		next = DragOver(b, NewDragSession("B"), "B", models.CustomContainer, Geometry{})
		assertIDs(t, next, models.CustomContainer, "X", "B", models.AddSlotID)
	})

	t.Run("type gate rejects moves into a container that does not accept the kind", func(t *testing.T) {
		b := newTestBoard(t, 1, 2, []models.Item{lastfm("L1"), custom("C1")}, nil, []models.Item{lastfm("L2")})

		tests := []struct {
			name   string
			active string
			over   string
		}{
			{name: "lastfm into custom", active: "L1", over: models.CustomContainer},
			{name: "custom into lastfm", active: "C1", over: "L2"},
			{name: "lastfm onto the add slot", active: "L2", over: models.AddSlotID},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				next := DragOver(b, NewDragSession(tt.active), tt.active, tt.over, Geometry{})
				if !models.Same(b, next) {
					t.Error("expected the board to be returned unchanged")
				}
			})
		}
	})

	t.Run("no-ops", func(t *testing.T) {
		b := newTestBoard(t, 1, 2, []models.Item{custom("A"), custom("B")}, []models.Item{custom("X")}, nil)

		tests := []struct {
			name   string
			active string
			over   string
		}{
			{name: "same container", active: "A", over: "B"},
			{name: "unknown active", active: "nope", over: models.CustomContainer},
			{name: "unknown over", active: "A", over: "nope"},
			{name: "empty over", active: "A", over: ""},
			{name: "placeholder active", active: models.AddSlotID, over: models.GridContainer},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				next := DragOver(b, NewDragSession(tt.active), tt.active, tt.over, Geometry{})
				if !models.Same(b, next) {
					t.Error("expected the board to be returned unchanged")
				}
			})
		}
	})

	t.Run("moving back restores the pending item", func(t *testing.T) {
		b := newTestBoard(t, 2, 2,
			[]models.Item{custom("A"), custom("B"), custom("C"), custom("D")},
			[]models.Item{custom("E")},
			nil,
		)
		s := NewDragSession("E")

		b = DragOver(b, s, "E", "C", Geometry{})
		b = DragOver(b, s, "E", models.CustomContainer, Geometry{})

		assertIDs(t, b, models.GridContainer, "A", "B", "D", "C")
		assertIDs(t, b, models.CustomContainer, "E", models.AddSlotID)
		assertInvariants(t, b, 4)

		if _, ok := s.Displaced(); ok {
			t.Error("pending item should be cleared after it is restored")
		}
	})

	t.Run("restoring a donated placeholder refills the grid", func(t *testing.T) {
		b := newTestBoard(t, 1, 3,
			[]models.Item{custom("A"), models.NewPlaceholder("P1"), custom("B")},
			[]models.Item{custom("E")},
			nil,
		)
		s := NewDragSession("E")

		b = DragOver(b, s, "E", "A", Geometry{})
		assertIDs(t, b, models.GridContainer, "E", "A", "B")

		b = DragOver(b, s, "E", models.CustomContainer, Geometry{})
		assertIDs(t, b, models.GridContainer, "P1", "A", "B")
		assertIDs(t, b, models.CustomContainer, "E", models.AddSlotID)
	})

	t.Run("does not modify the input board", func(t *testing.T) {
		b := newTestBoard(t, 2, 2,
			[]models.Item{custom("A"), custom("B"), custom("C"), custom("D")},
			[]models.Item{custom("E")},
			nil,
		)
		before := ids(b, models.GridContainer)

		_ = DragOver(b, NewDragSession("E"), "E", "C", Geometry{})

		if got := ids(b, models.GridContainer); !slices.Equal(got, before) {
			t.Errorf("input grid changed to %v", got)
		}
		assertIDs(t, b, models.CustomContainer, "E", models.AddSlotID)
	})
}

func TestDragEnd(t *testing.T) {
	t.Run("dropping onto a placeholder swaps", func(t *testing.T) {
		b := newTestBoard(t, 2, 2,
			[]models.Item{custom("X"), custom("A"), custom("B"), models.NewPlaceholder("P")},
			nil, nil,
		)

		next := DragEnd(b, NewDragSession("X"), "X", "P")

		assertIDs(t, next, models.GridContainer, "P", "A", "B", "X")
	})

	t.Run("dropping onto an album shifts", func(t *testing.T) {
		b := newTestBoard(t, 2, 2,
			[]models.Item{custom("X"), custom("A"), custom("B"), custom("C")},
			nil, nil,
		)

		next := DragEnd(b, NewDragSession("X"), "X", "C")
		assertIDs(t, next, models.GridContainer, "A", "B", "C", "X")

		next = DragEnd(next, NewDragSession("X"), "X", "A")
		assertIDs(t, next, models.GridContainer, "X", "A", "B", "C")
	})

	t.Run("reorders within a pallete", func(t *testing.T) {
		b := newTestBoard(t, 1, 1, nil, nil, []models.Item{lastfm("L1"), lastfm("L2"), lastfm("L3")})

		next := DragEnd(b, NewDragSession("L3"), "L3", "L1")

		assertIDs(t, next, models.LastFMContainer, "L3", "L1", "L2")
	})

	t.Run("clears the pending item", func(t *testing.T) {
		b := newTestBoard(t, 2, 2,
			[]models.Item{custom("A"), custom("B"), custom("C"), custom("D")},
			[]models.Item{custom("E")},
			nil,
		)
		s := NewDragSession("E")
		b = DragOver(b, s, "E", "C", Geometry{})

		_ = DragEnd(b, s, "E", "E")

		if _, ok := s.Displaced(); ok {
			t.Error("pending item should be cleared when the gesture ends")
		}
	})

	t.Run("no-ops", func(t *testing.T) {
		b := newTestBoard(t, 1, 2, []models.Item{custom("A"), custom("B")}, []models.Item{custom("X")}, nil)

		tests := []struct {
			name   string
			active string
			over   string
		}{
			{name: "dropped on itself", active: "A", over: "A"},
			{name: "dropped outside", active: "A", over: ""},
			{name: "different containers", active: "A", over: "X"},
			{name: "container name", active: "X", over: models.CustomContainer},
			{name: "onto the add slot", active: "X", over: models.AddSlotID},
			{name: "unknown", active: "nope", over: "A"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				next := DragEnd(b, NewDragSession(tt.active), tt.active, tt.over)
				if !models.Same(b, next) {
					t.Error("expected the board to be returned unchanged")
				}
			})
		}
	})

	t.Run("repeating a move is stable", func(t *testing.T) {
		b := newTestBoard(t, 2, 2,
			[]models.Item{custom("X"), custom("A"), custom("B"), custom("C")},
			nil, nil,
		)

		once := DragEnd(b, NewDragSession("X"), "X", "C")
		twice := DragEnd(once, NewDragSession("X"), "X", "X")

		if !models.Same(once, twice) {
			t.Error("dropping an item on its own slot should not change the board")
		}
	})
}

func TestDragConservation(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))

	b := newTestBoard(t, 2, 3,
		[]models.Item{
			custom("C1"), lastfm("L1"), models.NewPlaceholder("P1"),
			custom("C2"), models.NewPlaceholder("P2"), lastfm("L2"),
		},
		[]models.Item{custom("C3"), custom("C4")},
		[]models.Item{lastfm("L3"), lastfm("L4"), lastfm("L5")},
	)
	want := albumSet(b)

	for gesture := range 200 {
		albums := b.Albums()
		active := albums[rng.IntN(len(albums))]
		s := NewDragSession(active)

		for range rng.IntN(5) + 1 {
			targets := append(b.Names(), b.Albums()...)
			targets = append(targets, ids(b, models.GridContainer)...)
			over := targets[rng.IntN(len(targets))]

			geo := Geometry{}
			if rng.IntN(2) == 0 {
				geo = Below()
			}
			b = DragOver(b, s, active, over, geo)
			assertInvariants(t, b, 6)
		}

		end := ids(b, models.GridContainer)
		b = DragEnd(b, s, active, end[rng.IntN(len(end))])
		assertInvariants(t, b, 6)

		if got := albumSet(b); !slices.Equal(got, want) {
			t.Fatalf("gesture %d: albums = %v, want %v", gesture, got, want)
		}
		if t.Failed() {
			t.Fatalf("invariants broken after gesture %d", gesture)
		}
	}
}
