package models

import (
	"reflect"
	"sort"
)

// Well-known container names.
const (
	GridContainer   = "grid"
	CustomContainer = "custom"
	LastFMContainer = "lastfm"
)

// AddSlotID is the reserved placeholder that always trails the custom pallete.
// It marks where new custom albums are created and is never consumed or moved.
const AddSlotID = "custom-add"

// Container is a named, ordered list of items.
//
// A zero MinLength or MaxLength means the bound is not set.
type Container struct {
	Name      string
	Title     string
	Accepts   KindSet
	MinLength int
	MaxLength int
	Items     []Item
}

// Full reports whether the container has a MaxLength that is already reached.
func (c Container) Full() bool {
	return c.MaxLength > 0 && len(c.Items) >= c.MaxLength
}

// IndexOf returns the position of the item with the given id, or -1.
func (c Container) IndexOf(id string) int {
	for i, it := range c.Items {
		if it.ID() == id {
			return i
		}
	}
	return -1
}

// WithItems returns a copy of c holding items.
func (c Container) WithItems(items []Item) Container {
	c.Items = items
	return c
}

// Board is the Container Map: container name to [Container].
//
// Treat a Board as immutable. Operations return a new Board via [Board.With].
type Board map[string]Container

// NewBoard creates a board with a rows × columns grid of placeholders, a custom pallete holding only the
// add slot, and an empty lastfm pallete. newID supplies placeholder identifiers.
func NewBoard(rows, columns int, newID func() string) Board {
	size := rows * columns
	cells := make([]Item, size)
	for i := range cells {
		cells[i] = NewPlaceholder(newID())
	}

	return Board{
		GridContainer: {
			Name:      GridContainer,
			Title:     "Chart",
			Accepts:   Kinds(KindPlaceholder, KindLastFM, KindCustom),
			MinLength: size,
			MaxLength: size,
			Items:     cells,
		},
		CustomContainer: {
			Name:    CustomContainer,
			Title:   "Custom albums",
			Accepts: Kinds(KindPlaceholder, KindCustom),
			Items:   []Item{NewPlaceholder(AddSlotID)},
		},
		LastFMContainer: {
			Name:    LastFMContainer,
			Title:   "Last.fm",
			Accepts: Kinds(KindLastFM),
			Items:   []Item{},
		},
	}
}

// With returns a shallow copy of b with the given containers replaced.
func (b Board) With(containers ...Container) Board {
	next := make(Board, len(b))
	for name, c := range b {
		next[name] = c
	}
	for _, c := range containers {
		next[c.Name] = c
	}
	return next
}

// Names returns container names: grid, custom and lastfm first, then any others sorted.
func (b Board) Names() []string {
	names := []string{}
	for _, n := range []string{GridContainer, CustomContainer, LastFMContainer} {
		if _, ok := b[n]; ok {
			names = append(names, n)
		}
	}

	var rest []string
	for n := range b {
		if n != GridContainer && n != CustomContainer && n != LastFMContainer {
			rest = append(rest, n)
		}
	}
	sort.Strings(rest)

	return append(names, rest...)
}

// Locate returns the name of the container for id: either the container named id or the container holding
// an item with that id. The second return is false when id resolves to nothing.
func (b Board) Locate(id string) (string, bool) {
	if id == "" {
		return "", false
	}
	if _, ok := b[id]; ok {
		return id, true
	}
	for _, name := range b.Names() {
		if b[name].IndexOf(id) >= 0 {
			return name, true
		}
	}
	return "", false
}

// Find returns the item with the given id and the name of its container.
func (b Board) Find(id string) (Item, string, bool) {
	for _, name := range b.Names() {
		c := b[name]
		if i := c.IndexOf(id); i >= 0 {
			return c.Items[i], name, true
		}
	}
	return nil, "", false
}

// Grid returns the grid container.
func (b Board) Grid() Container {
	return b[GridContainer]
}

// Albums returns the identifiers of every non-placeholder item on the board.
func (b Board) Albums() []string {
	var ids []string
	for _, name := range b.Names() {
		for _, it := range b[name].Items {
			if !IsPlaceholder(it) {
				ids = append(ids, it.ID())
			}
		}
	}
	return ids
}

// Same reports whether a and b are the same board value, as returned by an operation that made no change.
func Same(a, b Board) bool {
	return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
}
