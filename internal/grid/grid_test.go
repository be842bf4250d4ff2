package grid

import (
	"fmt"
	"slices"
	"sort"
	"testing"

	"github.com/desertthunder/gridx/internal/models"
)

// useSequentialIDs makes fresh placeholders deterministic (p1, p2, ...) for the duration of a test.
func useSequentialIDs(t *testing.T) func() string {
	t.Helper()

	n := 0
	next := func() string {
		n++
		return fmt.Sprintf("p%d", n)
	}

	prev := NewPlaceholderID
	NewPlaceholderID = next
	t.Cleanup(func() { NewPlaceholderID = prev })
	return next
}

func custom(id string) models.Album { return models.NewAlbum(models.KindCustom, id, id, "artist "+id) }
func lastfm(id string) models.Album { return models.NewAlbum(models.KindLastFM, id, id, "artist "+id) }

// newTestBoard builds a board whose grid, custom and lastfm lists hold the given items.
// A nil list leaves the container as [models.NewBoard] created it.
func newTestBoard(t *testing.T, rows, columns int, grid, customItems, lastfmItems []models.Item) models.Board {
	t.Helper()

	b := models.NewBoard(rows, columns, useSequentialIDs(t))
	if grid != nil {
		if len(grid) != rows*columns {
			t.Fatalf("grid fixture has %d items, want %d", len(grid), rows*columns)
		}
		b = b.With(b[models.GridContainer].WithItems(grid))
	}
	if customItems != nil {
		b = b.With(b[models.CustomContainer].WithItems(append(customItems, models.NewPlaceholder(models.AddSlotID))))
	}
	if lastfmItems != nil {
		b = b.With(b[models.LastFMContainer].WithItems(lastfmItems))
	}
	return b
}

func ids(b models.Board, name string) []string {
	var out []string
	for _, it := range b[name].Items {
		out = append(out, it.ID())
	}
	return out
}

func albumSet(b models.Board) []string {
	out := b.Albums()
	sort.Strings(out)
	return out
}

func assertIDs(t *testing.T, b models.Board, name string, want ...string) {
	t.Helper()
	if got := ids(b, name); !slices.Equal(got, want) {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertInvariants(t *testing.T, b models.Board, size int) {
	t.Helper()

	grid := b.Grid()
	if len(grid.Items) != size {
		t.Errorf("grid length = %d, want %d", len(grid.Items), size)
	}

	seen := map[string]string{}
	for _, name := range b.Names() {
		c := b[name]
		if c.MaxLength > 0 && len(c.Items) > c.MaxLength {
			t.Errorf("%s exceeds max length: %d > %d", name, len(c.Items), c.MaxLength)
		}
		for _, it := range c.Items {
			if !c.Accepts.Has(it.Kind()) {
				t.Errorf("%s holds %s of kind %s, which it does not accept", name, it.ID(), it.Kind())
			}
			if other, dup := seen[it.ID()]; dup {
				t.Errorf("item %s appears in both %s and %s", it.ID(), other, name)
			}
			seen[it.ID()] = name
		}
	}

	items := b[models.CustomContainer].Items
	if n := len(items); n == 0 || items[n-1].ID() != models.AddSlotID {
		t.Errorf("custom pallete must end with the add slot, got %v", ids(b, models.CustomContainer))
	}
}
