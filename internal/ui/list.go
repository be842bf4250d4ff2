package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/gridx/internal/models"
)

var (
	_ list.Item = albumItem{}
)

// albumItem wraps [models.Album] to implement [list.Item] for the find view.
type albumItem struct {
	album     models.Album
	container string
}

func (i albumItem) FilterValue() string { return i.album.Title + " " + i.album.Subtitle }
func (i albumItem) Title() string       { return i.album.Title }
func (i albumItem) Description() string {
	desc := i.container
	if i.album.Subtitle != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.album.Subtitle)
	}
	if i.album.PlayCount != nil {
		desc = fmt.Sprintf("%s • %d plays", desc, *i.album.PlayCount)
	}
	return desc
}

// albumItems lists every album on the board, container by container, for the find view.
func albumItems(b models.Board) []list.Item {
	items := []list.Item{}
	for _, name := range b.Names() {
		for _, it := range b[name].Items {
			if a, ok := it.(models.Album); ok {
				items = append(items, albumItem{album: a, container: name})
			}
		}
	}
	return items
}
