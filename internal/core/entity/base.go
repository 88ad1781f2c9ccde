// Package entity provides the shared base for catalog rows.
package entity

import (
	"context"
	"time"

	"backoffice/internal/core/apperror"
	"backoffice/internal/core/id"
)

// Base carries the identity and bookkeeping fields every catalog row
// has. Embed it in concrete resource models.
type Base struct {
	ID        id.ID     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
	Version   int       `db:"version" json:"version"`
}

// NewBase creates a Base with a fresh id and timestamps.
func NewBase(name string) Base {
	now := time.Now()
	return Base{
		ID:        id.New(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
		Version:   1,
	}
}

// ResourceID returns the row id.
func (b *Base) ResourceID() id.ID {
	return b.ID
}

// Validate checks base fields.
func (b *Base) Validate(ctx context.Context) error {
	if b.Name == "" {
		return apperror.NewValidation("name is required").WithDetail("field", "name")
	}
	return nil
}
