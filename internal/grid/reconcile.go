package grid

import (
	"github.com/desertthunder/gridx/internal/models"
	"github.com/desertthunder/gridx/internal/shared"
)

// NewPlaceholderID generates identifiers for fresh placeholders.
var NewPlaceholderID = func() string {
	return "placeholder-" + shared.GenerateID()
}

// DragOver moves the dragged album from its container into the container under the pointer.
//
// overID is either a container name (hovering an empty container) or the id of the item under the pointer.
// Moves within one container are left to [DragEnd]. When the target is full, the nearest placeholder at or
// after the insertion point gives up its slot; failing that, the target's last item is evicted to the source
// container, or to the pallete named by its kind when the source does not accept it. The evicted item is
// remembered in s so a later DragOver in the same gesture can restore it.
func DragOver(b models.Board, s *DragSession, activeID, overID string, geo Geometry) models.Board {
	activeName, ok := b.Locate(activeID)
	if !ok {
		return b
	}
	overName, ok := b.Locate(overID)
	if !ok || activeName == overName {
		return b
	}

	active, over := b[activeName], b[overName]

	activeIndex := active.IndexOf(activeID)
	if activeIndex < 0 {
		return b
	}
	album, ok := active.Items[activeIndex].(models.Album)
	if !ok {
		return b
	}
	if !over.Accepts.Has(album.Kind()) {
		return b
	}

	activeItems := clone(active.Items)
	overItems := clone(over.Items)
	changed := []models.Container{}

	insertAt := len(overItems)
	if i := over.IndexOf(overID); i >= 0 {
		insertAt = i
		if geo.below() {
			insertAt++
		}
	}

	activeItems = removeAt(activeItems, activeIndex)

	if over.Full() {
		slot := -1
		for i := insertAt; i < len(overItems); i++ {
			if isFreeSlot(overItems[i]) {
				slot = i
				break
			}
		}

		if slot >= 0 {
			s.remember(overItems[slot])
			overItems = removeAt(overItems, slot)
		} else {
			last := len(overItems) - 1
			evicted := overItems[last]
			overItems = overItems[:last]
			switch {
			case models.IsPlaceholder(evicted):
			case active.Accepts.Has(evicted.Kind()):
				activeItems = insert(activeItems, 0, evicted)
			default:
				changed = sendHome(b, changed, evicted)
			}
			s.remember(evicted)
		}
	} else {
		if pending, ok := s.Displaced(); ok {
			activeItems = removeID(activeItems, pending.ID())
			overItems = removeID(overItems, pending.ID())
			for _, name := range b.Names() {
				if name == activeName || name == overName {
					continue
				}
				if c := b[name]; c.IndexOf(pending.ID()) >= 0 {
					changed = append(changed, c.WithItems(removeID(clone(c.Items), pending.ID())))
				}
			}

			switch {
			case active.Accepts.Has(pending.Kind()):
				at := min(activeIndex, len(activeItems))
				activeItems = insert(activeItems, at, pending)
			case pending.Kind().String() == overName:
				overItems = insert(overItems, 0, pending)
			case !models.IsPlaceholder(pending):
				changed = sendHome(b, changed, pending)
			}
			s.Reset()
		}

		if active.MinLength > 0 && len(activeItems) < active.MinLength {
			activeItems = append(activeItems, models.NewPlaceholder(NewPlaceholderID()))
		}
	}

	insertAt = max(0, min(insertAt, insertLimit(overItems)))
	if over.MaxLength > 0 {
		insertAt = min(insertAt, over.MaxLength-1)
	}
	overItems = insert(overItems, insertAt, album)

	changed = append(changed, active.WithItems(activeItems), over.WithItems(overItems))
	return b.With(changed...)
}

// DragEnd completes a gesture by reordering the container holding both activeID and overID.
//
// Dropping onto a placeholder swaps the two positions and leaves every other slot in place; dropping onto an
// album shifts the items between the two positions by one. The session's pending displaced item is discarded.
func DragEnd(b models.Board, s *DragSession, activeID, overID string) models.Board {
	s.Reset()

	if overID == "" {
		return b
	}

	activeName, ok := b.Locate(activeID)
	if !ok {
		return b
	}
	overName, ok := b.Locate(overID)
	if !ok || activeName != overName {
		return b
	}

	c := b[overName]
	activeIndex, overIndex := c.IndexOf(activeID), c.IndexOf(overID)
	if activeIndex < 0 || overIndex < 0 || activeIndex == overIndex {
		return b
	}

	album, ok := c.Items[activeIndex].(models.Album)
	if !ok {
		return b
	}
	if !c.Accepts.Has(album.Kind()) {
		return b
	}
	if c.Items[overIndex].ID() == models.AddSlotID {
		return b
	}

	items := clone(c.Items)
	if models.IsPlaceholder(items[overIndex]) {
		items[activeIndex], items[overIndex] = items[overIndex], items[activeIndex]
	} else {
		items = move(items, activeIndex, overIndex)
	}

	return b.With(c.WithItems(items))
}

// sendHome prepends album to the pallete named by its kind, updating that pallete in changed if it is already
// there.
func sendHome(b models.Board, changed []models.Container, album models.Item) []models.Container {
	name := album.Kind().String()
	for i, c := range changed {
		if c.Name == name {
			changed[i] = c.WithItems(insert(clone(c.Items), 0, album))
			return changed
		}
	}

	pallete, ok := b[name]
	if !ok {
		pallete = models.Container{Name: name, Title: name, Accepts: models.Kinds(models.KindPlaceholder, album.Kind())}
	}
	return append(changed, pallete.WithItems(insert(clone(pallete.Items), 0, album)))
}

// isFreeSlot reports whether it is a placeholder that may be given up to an incoming album.
func isFreeSlot(it models.Item) bool {
	return models.IsPlaceholder(it) && it.ID() != models.AddSlotID
}

// insertLimit is the largest index an album may be inserted at: the add slot always stays last.
func insertLimit(items []models.Item) int {
	if n := len(items); n > 0 && items[n-1].ID() == models.AddSlotID {
		return n - 1
	}
	return len(items)
}

func clone(items []models.Item) []models.Item {
	return append(make([]models.Item, 0, len(items)+1), items...)
}

func insert(items []models.Item, at int, it models.Item) []models.Item {
	items = append(items, nil)
	copy(items[at+1:], items[at:])
	items[at] = it
	return items
}

func removeAt(items []models.Item, at int) []models.Item {
	return append(items[:at], items[at+1:]...)
}

func removeID(items []models.Item, id string) []models.Item {
	for i, it := range items {
		if it.ID() == id {
			return removeAt(items, i)
		}
	}
	return items
}

// move relocates the element at from to position to, shifting the elements in between.
func move(items []models.Item, from, to int) []models.Item {
	it := items[from]
	items = removeAt(items, from)
	return insert(items, to, it)
}
