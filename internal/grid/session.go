package grid

import "github.com/desertthunder/gridx/internal/models"

// DragSession is the gesture-scoped state of one continuous drag.
type DragSession struct {
	ActiveID  string
	displaced models.Item
}

// NewDragSession starts a session for the album being dragged.
func NewDragSession(activeID string) *DragSession {
	return &DragSession{ActiveID: activeID}
}

// Displaced returns the item pending restoration, if any.
func (s *DragSession) Displaced() (models.Item, bool) {
	if s == nil || s.displaced == nil {
		return nil, false
	}
	return s.displaced, true
}

// Reset discards the pending displaced item.
func (s *DragSession) Reset() {
	if s != nil {
		s.displaced = nil
	}
}

func (s *DragSession) remember(it models.Item) {
	if s != nil {
		s.displaced = it
	}
}

// Geometry describes the pointer position relative to the item under it.
//
// Valid is false when the host has no geometry (keyboard moves, hovering an empty container).
type Geometry struct {
	Valid      bool
	ActiveTop  float64
	OverTop    float64
	OverHeight float64
}

// Below builds a [Geometry] that places the dragged item in the lower half of the target.
func Below() Geometry {
	return Geometry{Valid: true, ActiveTop: 1, OverTop: 0, OverHeight: 1}
}

// below reports whether the dragged item's top is past the vertical midpoint of the item under it.
func (g Geometry) below() bool {
	return g.Valid && g.ActiveTop > g.OverTop+g.OverHeight/2
}
