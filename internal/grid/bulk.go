package grid

import (
	"sort"
	"strings"

	"github.com/desertthunder/gridx/internal/models"
)

// AutoFill fills every grid placeholder with albums from the custom pallete, then the lastfm pallete.
//
// The grid is first fitted to rows × columns; albums past the new size are dropped. Source order is kept and
// taken albums leave their pallete. When supply runs out the remaining slots stay placeholders.
func AutoFill(b models.Board, rows, columns int) models.Board {
	grid, ok := b[models.GridContainer]
	if !ok {
		return b
	}

	size := rows * columns
	cells := fit(grid.Items, size)

	holes := 0
	for _, it := range cells {
		if models.IsPlaceholder(it) {
			holes++
		}
	}

	changed := []models.Container{}
	var supply []models.Item
	for _, name := range []string{models.CustomContainer, models.LastFMContainer} {
		src, ok := b[name]
		if !ok || holes == len(supply) {
			continue
		}
		kept, taken := take(src.Items, holes-len(supply), grid.Accepts)
		if len(taken) == 0 {
			continue
		}
		supply = append(supply, taken...)
		changed = append(changed, src.WithItems(kept))
	}

	next := 0
	for i, it := range cells {
		if next == len(supply) {
			break
		}
		if models.IsPlaceholder(it) {
			cells[i] = supply[next]
			next++
		}
	}

	grid = grid.WithItems(cells)
	grid.MinLength, grid.MaxLength = size, size
	changed = append(changed, grid)

	return b.With(changed...)
}

// Clear sends every grid album back to the pallete matching its kind and resets the grid to rows × columns
// fresh placeholders. Returned albums are placed ahead of the pallete's existing items, in grid order.
func Clear(b models.Board, rows, columns int) models.Board {
	grid, ok := b[models.GridContainer]
	if !ok {
		return b
	}

	returned := map[string][]models.Item{}
	for _, it := range grid.Items {
		switch v := it.(type) {
		case models.Placeholder:
			continue
		case models.Album:
			home := v.Kind().String()
			returned[home] = append(returned[home], v)
		}
	}

	changed := []models.Container{}
	for _, name := range []string{models.CustomContainer, models.LastFMContainer} {
		items := returned[name]
		if len(items) == 0 {
			continue
		}
		pallete, ok := b[name]
		if !ok {
			pallete = models.Container{Name: name, Title: name, Accepts: models.Kinds(models.KindPlaceholder, items[0].Kind())}
		}
		changed = append(changed, pallete.WithItems(append(items, pallete.Items...)))
	}

	size := rows * columns
	grid = grid.WithItems(fit(nil, size))
	grid.MinLength, grid.MaxLength = size, size
	changed = append(changed, grid)

	return b.With(changed...)
}

// Resize fits the grid to rows × columns, appending placeholders or truncating from the tail.
//
// Truncated albums are discarded, not returned to a pallete.
func Resize(b models.Board, rows, columns int) models.Board {
	grid, ok := b[models.GridContainer]
	if !ok {
		return b
	}

	size := rows * columns
	grid = grid.WithItems(fit(grid.Items, size))
	grid.MinLength, grid.MaxLength = size, size

	return b.With(grid)
}

// SortOrder is the user's pallete sort preference.
type SortOrder string

const (
	SortNone      SortOrder = "none"
	SortPlayCount SortOrder = "playcount"
	SortTitle     SortOrder = "title"
	SortSubtitle  SortOrder = "subtitle"
)

// SortOrders lists every supported order in cycling order.
var SortOrders = []SortOrder{SortNone, SortPlayCount, SortTitle, SortSubtitle}

// ParseSortOrder maps a preference name to a [SortOrder].
func ParseSortOrder(s string) (SortOrder, bool) {
	for _, o := range SortOrders {
		if string(o) == strings.ToLower(strings.TrimSpace(s)) {
			return o, true
		}
	}
	return SortNone, false
}

// Next returns the order after o in [SortOrders].
func (o SortOrder) Next() SortOrder {
	for i, cur := range SortOrders {
		if cur == o {
			return SortOrders[(i+1)%len(SortOrders)]
		}
	}
	return SortNone
}

// SortPallete stably sorts the albums of a pallete. Placeholders keep their relative order after the albums,
// so the add slot stays last. The grid is never sorted.
func SortPallete(b models.Board, name string, order SortOrder) models.Board {
	c, ok := b[name]
	if !ok || name == models.GridContainer || order == SortNone {
		return b
	}

	var albums []models.Album
	var rest []models.Item
	for _, it := range c.Items {
		switch v := it.(type) {
		case models.Album:
			albums = append(albums, v)
		case models.Placeholder:
			rest = append(rest, v)
		}
	}

	sort.SliceStable(albums, func(i, j int) bool {
		a, z := albums[i], albums[j]
		switch order {
		case SortPlayCount:
			if a.PlayCount == nil || z.PlayCount == nil {
				return a.PlayCount != nil && z.PlayCount == nil
			}
			return *a.PlayCount > *z.PlayCount
		case SortTitle:
			return strings.ToLower(a.Title) < strings.ToLower(z.Title)
		case SortSubtitle:
			return strings.ToLower(a.Subtitle) < strings.ToLower(z.Subtitle)
		default:
			return false
		}
	})

	items := make([]models.Item, 0, len(c.Items))
	for _, a := range albums {
		items = append(items, a)
	}
	items = append(items, rest...)

	return b.With(c.WithItems(items))
}

// SetTextColor sets the caption color of an album. Calling it again with the same color is a no-op.
func SetTextColor(b models.Board, id, color string) models.Board {
	return updateAlbum(b, id, func(a models.Album) (models.Album, bool) {
		if a.TextColor == color {
			return a, false
		}
		a.TextColor = color
		return a, true
	})
}

// SetTextBackground toggles the caption backdrop of an album. Calling it again with the same value is a no-op.
func SetTextBackground(b models.Board, id string, on bool) models.Board {
	return updateAlbum(b, id, func(a models.Album) (models.Album, bool) {
		if a.TextBackground == on {
			return a, false
		}
		a.TextBackground = on
		return a, true
	})
}

// AddCustom inserts a custom album into the custom pallete just ahead of the add slot.
// Albums of another kind, or whose id is already on the board, are ignored.
func AddCustom(b models.Board, album models.Album) models.Board {
	c, ok := b[models.CustomContainer]
	if !ok || album.Kind() != models.KindCustom || album.ID() == "" {
		return b
	}
	if _, _, exists := b.Find(album.ID()); exists {
		return b
	}

	items := clone(c.Items)
	items = insert(items, insertLimit(items), album)
	return b.With(c.WithItems(items))
}

// Remove deletes a custom album from the custom pallete. Albums placed on the grid must be cleared first.
func Remove(b models.Board, id string) models.Board {
	c, ok := b[models.CustomContainer]
	if !ok || id == models.AddSlotID {
		return b
	}
	i := c.IndexOf(id)
	if i < 0 {
		return b
	}
	return b.With(c.WithItems(removeAt(clone(c.Items), i)))
}

// LoadPallete replaces the albums of a pallete with newly supplied ones.
//
// Albums the pallete does not accept, albums already placed in another container and repeated ids are skipped.
// The pallete's placeholders (the add slot) are kept after the new albums.
func LoadPallete(b models.Board, name string, albums []models.Album) models.Board {
	c, ok := b[name]
	if !ok || name == models.GridContainer {
		return b
	}

	elsewhere := map[string]bool{}
	for _, other := range b.Names() {
		if other == name {
			continue
		}
		for _, it := range b[other].Items {
			elsewhere[it.ID()] = true
		}
	}

	items := []models.Item{}
	seen := map[string]bool{}
	for _, a := range albums {
		if !c.Accepts.Has(a.Kind()) || elsewhere[a.ID()] || seen[a.ID()] || a.ID() == "" {
			continue
		}
		seen[a.ID()] = true
		items = append(items, a)
	}
	for _, it := range c.Items {
		if models.IsPlaceholder(it) {
			items = append(items, it)
		}
	}

	return b.With(c.WithItems(items))
}

func updateAlbum(b models.Board, id string, fn func(models.Album) (models.Album, bool)) models.Board {
	it, name, ok := b.Find(id)
	if !ok {
		return b
	}
	album, ok := it.(models.Album)
	if !ok {
		return b
	}

	updated, changed := fn(album)
	if !changed {
		return b
	}

	c := b[name]
	items := clone(c.Items)
	items[c.IndexOf(id)] = updated
	return b.With(c.WithItems(items))
}

// fit returns a copy of items truncated or padded with fresh placeholders to exactly size.
func fit(items []models.Item, size int) []models.Item {
	size = max(size, 0)
	out := make([]models.Item, 0, size)
	out = append(out, items[:min(len(items), size)]...)
	for len(out) < size {
		out = append(out, models.NewPlaceholder(NewPlaceholderID()))
	}
	return out
}

// take removes up to n albums accepted by accepts from items, preserving order.
// Placeholders are never taken.
func take(items []models.Item, n int, accepts models.KindSet) (kept, taken []models.Item) {
	kept = make([]models.Item, 0, len(items))
	for _, it := range items {
		if len(taken) < n && !models.IsPlaceholder(it) && accepts.Has(it.Kind()) {
			taken = append(taken, it)
			continue
		}
		kept = append(kept, it)
	}
	return kept, taken
}
