// Package category provides the product Category catalog.
package category

import (
	"backoffice/internal/core/entity"
)

// Category groups products.
type Category struct {
	entity.Base

	// Description is a free-form note.
	Description string `db:"description" json:"description,omitempty"`
}

// New creates a new Category.
func New(name string) *Category {
	return &Category{Base: entity.NewBase(name)}
}
