package models

import (
	"time"
)

// Model is a persisted record with an identity and timestamps. [Chart] is the only one.
type Model interface {
	ID() string
	CreatedAt() time.Time
	UpdatedAt() time.Time
	Validate() error // checked before every write
}

// Repository is CRUD storage for one model type.
//
// Delete is soft: deleted records disappear from Get and List. List criteria keys are defined per implementation.
type Repository[T Model] interface {
	Create(model T) error
	Get(id string) (T, error)
	Update(model T) error
	Delete(id string) error
	List(criteria map[string]any) ([]T, error)
}

// NamedRepository is a [Repository] whose records also have a name unique among live records.
type NamedRepository[T Model] interface {
	Repository[T]
	GetByName(name string) (T, error)
}
