package models

import "strings"

// Kind identifies the variant of an [Item].
type Kind int

const (
	KindPlaceholder Kind = iota
	KindLastFM
	KindCustom
)

func (k Kind) String() string {
	switch k {
	case KindPlaceholder:
		return "placeholder"
	case KindLastFM:
		return "lastfm"
	case KindCustom:
		return "custom"
	default:
		return ""
	}
}

// ParseKind maps a kind name back to its [Kind]. The second return is false for unknown names.
func ParseKind(s string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "placeholder":
		return KindPlaceholder, true
	case "lastfm":
		return KindLastFM, true
	case "custom":
		return KindCustom, true
	default:
		return KindPlaceholder, false
	}
}

// KindSet is a bitmask of accepted kinds.
type KindSet uint8

// Kinds builds a [KindSet] from the given kinds.
func Kinds(kinds ...Kind) KindSet {
	var s KindSet
	for _, k := range kinds {
		s |= 1 << uint(k)
	}
	return s
}

// Has reports whether k is a member of the set.
func (s KindSet) Has(k Kind) bool {
	return s&(1<<uint(k)) != 0
}

// Item is the closed sum type stored in containers: [Placeholder] or [Album].
//
// The unexported marker method seals the interface to this package.
type Item interface {
	ID() string
	Kind() Kind
	item()
}

var (
	_ Item = Placeholder{}
	_ Item = Album{}
)

// Placeholder reserves a slot without content.
type Placeholder struct {
	id string
}

// NewPlaceholder creates a [Placeholder] with the given identifier.
func NewPlaceholder(id string) Placeholder { return Placeholder{id: id} }

func (p Placeholder) ID() string { return p.id }
func (p Placeholder) Kind() Kind { return KindPlaceholder }
func (p Placeholder) item()      {}

// Album is a content item shown in a grid cell.
//
// Images are candidate sources ordered by preference; the first that loads wins.
// PlayCount is nil when the source has no popularity metric.
type Album struct {
	id             string
	kind           Kind
	Title          string
	Subtitle       string
	Images         []string
	PlayCount      *int
	TextColor      string
	TextBackground bool
}

// NewAlbum creates an [Album] of kind [KindLastFM] or [KindCustom].
// Any other kind is coerced to [KindCustom].
func NewAlbum(kind Kind, id, title, subtitle string) Album {
	if kind != KindLastFM {
		kind = KindCustom
	}
	return Album{id: id, kind: kind, Title: title, Subtitle: subtitle}
}

func (a Album) ID() string { return a.id }
func (a Album) Kind() Kind { return a.kind }
func (a Album) item()      {}

// WithImages returns a copy of a with the given image candidates.
func (a Album) WithImages(images ...string) Album {
	a.Images = append([]string(nil), images...)
	return a
}

// WithPlayCount returns a copy of a with the given play count.
func (a Album) WithPlayCount(n int) Album {
	a.PlayCount = &n
	return a
}

// Image returns the preferred image source, or "" when there is none.
func (a Album) Image() string {
	for _, src := range a.Images {
		if src != "" {
			return src
		}
	}
	return ""
}

// IsPlaceholder reports whether it is a [Placeholder].
func IsPlaceholder(it Item) bool {
	switch it.(type) {
	case Placeholder:
		return true
	case Album:
		return false
	default:
		return false
	}
}
