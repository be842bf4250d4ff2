package models

import (
	"errors"
	"time"
)

var _ Model = (*Chart)(nil)

// Chart is a named board snapshot saved by the user.
type Chart struct {
	id        string
	sequence  int
	name      string
	rows      int
	columns   int
	board     Board
	createdAt time.Time
	updatedAt time.Time
	deletedAt *time.Time
}

// NewChart creates an unsaved [Chart]. The repository assigns its ID.
func NewChart(sequence int, name string, rows, columns int, board Board) *Chart {
	now := time.Now()
	return &Chart{
		sequence:  sequence,
		name:      name,
		rows:      rows,
		columns:   columns,
		board:     board,
		createdAt: now,
		updatedAt: now,
	}
}

func (c *Chart) ID() string            { return c.id }
func (c *Chart) Sequence() int         { return c.sequence }
func (c *Chart) Name() string          { return c.name }
func (c *Chart) Rows() int             { return c.rows }
func (c *Chart) Columns() int          { return c.columns }
func (c *Chart) Board() Board          { return c.board }
func (c *Chart) CreatedAt() time.Time  { return c.createdAt }
func (c *Chart) UpdatedAt() time.Time  { return c.updatedAt }
func (c *Chart) DeletedAt() *time.Time { return c.deletedAt }

func (c *Chart) SetID(id string)             { c.id = id }
func (c *Chart) SetSequence(seq int)         { c.sequence = seq }
func (c *Chart) SetCreatedAt(t time.Time)    { c.createdAt = t }
func (c *Chart) SetUpdatedAt(t time.Time)    { c.updatedAt = t }
func (c *Chart) SetDeletedAt(t *time.Time)   { c.deletedAt = t }
func (c *Chart) SetBoard(b Board)            { c.board = b }
func (c *Chart) SetLayout(rows, columns int) { c.rows, c.columns = rows, columns }

// Validate checks the chart has a name, positive dimensions and a grid sized to them.
func (c *Chart) Validate() error {
	if c.id == "" {
		return errors.New("chart id is required")
	}
	if c.name == "" {
		return errors.New("chart name is required")
	}
	if c.rows < 1 || c.columns < 1 {
		return errors.New("chart dimensions must be positive")
	}
	if c.board == nil {
		return errors.New("chart board is required")
	}
	if got := len(c.board.Grid().Items); got != c.rows*c.columns {
		return errors.New("chart grid length does not match its dimensions")
	}
	return nil
}
