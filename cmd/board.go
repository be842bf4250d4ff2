package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/gridx/internal/grid"
	"github.com/desertthunder/gridx/internal/models"
	"github.com/desertthunder/gridx/internal/shared"
	"github.com/urfave/cli/v3"
)

// boardOutput is the JSON form printed by board commands.
type boardOutput struct {
	Rows       int                      `json:"rows"`
	Columns    int                      `json:"columns"`
	Sort       grid.SortOrder           `json:"sort"`
	Containers []models.ContainerRecord `json:"containers"`
}

// BoardShow prints the workspace grid followed by both palletes.
func (r *Runner) BoardShow(ctx context.Context, cmd *cli.Command) error {
	editor, err := r.loadEditor()
	if err != nil {
		return err
	}
	board, layout := editor.Board(), editor.Layout()

	if cmd.Bool("json") {
		return r.writeJSON(boardOutput{
			Rows:       layout.Rows,
			Columns:    layout.Columns,
			Sort:       layout.Sort,
			Containers: models.ToBoardRecord(board).Containers,
		}, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("Chart %d×%d (sort: %s)", layout.Rows, layout.Columns, layout.Sort))
	for i, it := range board.Grid().Items {
		row, col := i/layout.Columns+1, i%layout.Columns+1
		r.writePlain("%2d. [%d,%d] %s\n", i+1, row, col, describe(it))
	}

	for _, name := range []string{models.CustomContainer, models.LastFMContainer} {
		c := board[name]
		r.writePlainln("%s (%s)", c.Title, name)
		for _, it := range c.Items {
			if it.ID() == models.AddSlotID {
				continue
			}
			r.writePlain("  • %s\n", describe(it))
		}
	}
	return nil
}

// describe renders an item as "Title - Subtitle (id)" or a placeholder marker.
func describe(it models.Item) string {
	a, ok := it.(models.Album)
	if !ok {
		return "—"
	}
	parts := []string{a.Title}
	if a.Subtitle != "" {
		parts = append(parts, a.Subtitle)
	}
	s := strings.Join(parts, " - ")
	if a.PlayCount != nil {
		s += fmt.Sprintf(" [%d plays]", *a.PlayCount)
	}
	return fmt.Sprintf("%s (%s)", s, a.ID())
}

// BoardAutoFill fills empty grid slots from the custom pallete, then the lastfm pallete.
func (r *Runner) BoardAutoFill(ctx context.Context, cmd *cli.Command) error {
	editor, err := r.loadEditor()
	if err != nil {
		return err
	}
	g := editor.Board().Grid()
	empty := len(g.Items) - countAlbums(g)
	filled := countAlbums(editor.AutoFill().Grid()) - countAlbums(g)
	return r.writePlain("✓ Filled %d of %d empty slots\n", filled, empty)
}

// BoardClear returns every grid album to its pallete.
func (r *Runner) BoardClear(ctx context.Context, cmd *cli.Command) error {
	editor, err := r.loadEditor()
	if err != nil {
		return err
	}
	n := countAlbums(editor.Board().Grid())
	editor.Clear()
	return r.writePlain("✓ Returned %d albums to their palletes\n", n)
}

func countAlbums(c models.Container) int {
	n := 0
	for _, it := range c.Items {
		if !models.IsPlaceholder(it) {
			n++
		}
	}
	return n
}

// BoardResize changes the grid dimensions. Values are clamped to 1-10.
func (r *Runner) BoardResize(ctx context.Context, cmd *cli.Command) error {
	rows, columns := cmd.Int("rows"), cmd.Int("columns")
	if rows <= 0 || columns <= 0 {
		return fmt.Errorf("%w: rows and columns must be positive", shared.ErrInvalidFlag)
	}

	editor, err := r.loadEditor()
	if err != nil {
		return err
	}
	editor.Resize(rows, columns)
	l := editor.Layout()
	return r.writePlain("✓ Chart is now %d×%d\n", l.Rows, l.Columns)
}

// BoardMove replays a whole drag gesture: pick up active, hover over, drop.
//
// Across containers the hover places the album and the drop is made on the album itself; within one
// container the drop on over swaps or shifts.
func (r *Runner) BoardMove(ctx context.Context, cmd *cli.Command) error {
	active, over := cmd.String("active"), cmd.String("over")

	editor, err := r.loadEditor()
	if err != nil {
		return err
	}

	board := editor.Board()
	from, ok := board.Locate(active)
	if !ok {
		return fmt.Errorf("%w: %s", shared.ErrItemNotFound, active)
	}
	to, ok := board.Locate(over)
	if !ok {
		return fmt.Errorf("%w: %s", shared.ErrItemNotFound, over)
	}
	if !editor.DragStart(active) {
		return fmt.Errorf("%w: %s is not an album", shared.ErrInvalidArgument, active)
	}

	if from != to {
		geo := grid.Geometry{}
		if cmd.Bool("below") {
			geo = grid.Below()
		}
		editor.DragOver(over, geo)
		editor.DragEnd(active)
	} else {
		editor.DragEnd(over)
	}

	name, _ := editor.Board().Locate(active)
	if from != to && name == from {
		r.logger.Warn("move rejected", "active", active, "over", over)
		return r.writePlain("%s cannot be moved into %s\n", active, to)
	}
	idx := editor.Board()[name].IndexOf(active)
	return r.writePlain("✓ %s is at %s[%d]\n", active, name, idx)
}

// BoardStyle updates the caption color and backdrop of an album.
func (r *Runner) BoardStyle(ctx context.Context, cmd *cli.Command) error {
	id := cmd.String("id")
	editor, err := r.loadEditor()
	if err != nil {
		return err
	}
	if _, _, ok := editor.Board().Find(id); !ok {
		return fmt.Errorf("%w: %s", shared.ErrItemNotFound, id)
	}

	if cmd.IsSet("color") {
		editor.SetTextColor(id, cmd.String("color"))
	}
	if cmd.IsSet("background") {
		editor.SetTextBackground(id, cmd.Bool("background"))
	}
	return r.writePlain("✓ Updated %s\n", id)
}

// BoardSort records the sort preference and sorts both palletes.
func (r *Runner) BoardSort(ctx context.Context, cmd *cli.Command) error {
	order, ok := grid.ParseSortOrder(cmd.String("order"))
	if !ok {
		return fmt.Errorf("%w: unknown sort order %q", shared.ErrInvalidFlag, cmd.String("order"))
	}

	editor, err := r.loadEditor()
	if err != nil {
		return err
	}
	editor.Sort(order)
	return r.writePlain("✓ Palletes sorted by %s\n", order)
}

// BoardAdd adds a custom album just ahead of the custom pallete's add slot.
func (r *Runner) BoardAdd(ctx context.Context, cmd *cli.Command) error {
	title := strings.TrimSpace(cmd.String("title"))
	if title == "" {
		return fmt.Errorf("%w: title", shared.ErrMissingArgument)
	}

	editor, err := r.loadEditor()
	if err != nil {
		return err
	}

	album := models.NewAlbum(models.KindCustom, "custom-"+shared.GenerateID(), title, cmd.String("subtitle"))
	if images := cmd.StringSlice("image"); len(images) > 0 {
		album = album.WithImages(images...)
	}
	editor.AddCustom(album)
	return r.writePlain("✓ Added %s (%s)\n", title, album.ID())
}

// BoardRemove deletes a custom album from the custom pallete.
func (r *Runner) BoardRemove(ctx context.Context, cmd *cli.Command) error {
	id := cmd.String("id")
	editor, err := r.loadEditor()
	if err != nil {
		return err
	}
	if editor.Board()[models.CustomContainer].IndexOf(id) < 0 || id == models.AddSlotID {
		return fmt.Errorf("%w: %s is not in the custom pallete", shared.ErrItemNotFound, id)
	}
	editor.Remove(id)
	return r.writePlain("✓ Removed %s\n", id)
}

// BoardReset discards the workspace; the next command starts from an empty board.
func (r *Runner) BoardReset(ctx context.Context, cmd *cli.Command) error {
	if _, err := r.database(); err != nil {
		return err
	}
	if err := r.workspace.Reset(); err != nil {
		return fmt.Errorf("failed to reset workspace: %w", err)
	}
	r.editor = nil
	return r.writePlain("✓ Workspace reset\n")
}
