package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrUnknownKind   = errors.New("unknown item kind")
	ErrMissingItemID = errors.New("item id is required")
)

// ItemRecord is the tagged wire form of an [Item].
type ItemRecord struct {
	Kind           string   `json:"kind" yaml:"kind"`
	ID             string   `json:"id" yaml:"id"`
	Title          string   `json:"title,omitempty" yaml:"title,omitempty"`
	Subtitle       string   `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	Images         []string `json:"images,omitempty" yaml:"images,omitempty"`
	PlayCount      *int     `json:"playcount,omitempty" yaml:"playcount,omitempty"`
	TextColor      string   `json:"text_color,omitempty" yaml:"text_color,omitempty"`
	TextBackground bool     `json:"text_background,omitempty" yaml:"text_background,omitempty"`
}

// ContainerRecord is the wire form of a [Container].
type ContainerRecord struct {
	Name      string       `json:"name"`
	Title     string       `json:"title"`
	Accepts   []string     `json:"accepts"`
	MinLength int          `json:"min_length,omitempty"`
	MaxLength int          `json:"max_length,omitempty"`
	Items     []ItemRecord `json:"items"`
}

// BoardRecord is the wire form of a [Board]. Containers are listed in [Board.Names] order.
type BoardRecord struct {
	Containers []ContainerRecord `json:"containers"`
}

// ToRecord converts an item to its wire form.
func ToRecord(it Item) ItemRecord {
	switch v := it.(type) {
	case Placeholder:
		return ItemRecord{Kind: KindPlaceholder.String(), ID: v.ID()}
	case Album:
		return ItemRecord{
			Kind:           v.Kind().String(),
			ID:             v.ID(),
			Title:          v.Title,
			Subtitle:       v.Subtitle,
			Images:         v.Images,
			PlayCount:      v.PlayCount,
			TextColor:      v.TextColor,
			TextBackground: v.TextBackground,
		}
	default:
		return ItemRecord{}
	}
}

// FromRecord converts a wire record to an [Item].
func FromRecord(rec ItemRecord) (Item, error) {
	if rec.ID == "" {
		return nil, ErrMissingItemID
	}

	kind, ok := ParseKind(rec.Kind)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, rec.Kind)
	}

	switch kind {
	case KindPlaceholder:
		return NewPlaceholder(rec.ID), nil
	case KindLastFM, KindCustom:
		a := NewAlbum(kind, rec.ID, rec.Title, rec.Subtitle)
		if len(rec.Images) > 0 {
			a = a.WithImages(rec.Images...)
		}
		if rec.PlayCount != nil {
			a = a.WithPlayCount(*rec.PlayCount)
		}
		a.TextColor = rec.TextColor
		a.TextBackground = rec.TextBackground
		return a, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, rec.Kind)
	}
}

// ToBoardRecord converts a board to its wire form.
func ToBoardRecord(b Board) BoardRecord {
	rec := BoardRecord{Containers: []ContainerRecord{}}
	for _, name := range b.Names() {
		c := b[name]
		cr := ContainerRecord{
			Name:      c.Name,
			Title:     c.Title,
			Accepts:   []string{},
			MinLength: c.MinLength,
			MaxLength: c.MaxLength,
			Items:     make([]ItemRecord, 0, len(c.Items)),
		}
		for _, k := range []Kind{KindPlaceholder, KindLastFM, KindCustom} {
			if c.Accepts.Has(k) {
				cr.Accepts = append(cr.Accepts, k.String())
			}
		}
		for _, it := range c.Items {
			cr.Items = append(cr.Items, ToRecord(it))
		}
		rec.Containers = append(rec.Containers, cr)
	}
	return rec
}

// FromBoardRecord converts a wire record back to a [Board].
func FromBoardRecord(rec BoardRecord) (Board, error) {
	b := Board{}
	seen := map[string]string{}

	for _, cr := range rec.Containers {
		if cr.Name == "" {
			return nil, fmt.Errorf("container name is required")
		}

		var accepts []Kind
		for _, name := range cr.Accepts {
			k, ok := ParseKind(name)
			if !ok {
				return nil, fmt.Errorf("container %s: %w: %q", cr.Name, ErrUnknownKind, name)
			}
			accepts = append(accepts, k)
		}

		items := make([]Item, 0, len(cr.Items))
		for _, ir := range cr.Items {
			it, err := FromRecord(ir)
			if err != nil {
				return nil, fmt.Errorf("container %s: %w", cr.Name, err)
			}
			if other, dup := seen[it.ID()]; dup {
				return nil, fmt.Errorf("duplicate item id %q in %s and %s", it.ID(), other, cr.Name)
			}
			seen[it.ID()] = cr.Name
			items = append(items, it)
		}

		b[cr.Name] = Container{
			Name:      cr.Name,
			Title:     cr.Title,
			Accepts:   Kinds(accepts...),
			MinLength: cr.MinLength,
			MaxLength: cr.MaxLength,
			Items:     items,
		}
	}

	if _, ok := b[GridContainer]; !ok {
		return nil, fmt.Errorf("board has no %s container", GridContainer)
	}

	return b, nil
}

// MarshalBoard encodes a board as JSON.
func MarshalBoard(b Board) ([]byte, error) {
	return json.Marshal(ToBoardRecord(b))
}

// UnmarshalBoard decodes a board from JSON produced by [MarshalBoard].
func UnmarshalBoard(data []byte) (Board, error) {
	var rec BoardRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to decode board: %w", err)
	}
	return FromBoardRecord(rec)
}
