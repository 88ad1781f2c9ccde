// Package domain provides shared service and repository contracts for
// the resource catalogs.
package domain

import (
	"context"

	"backoffice/internal/core/id"
)

// Resource is implemented by every catalog row the ownership engine
// guards. The core only ever reads identity, never payload fields.
type Resource interface {
	ResourceID() id.ID
}

// ResourceRepository defines persistence for one resource family.
type ResourceRepository[T Resource] interface {
	// Create inserts a new resource row.
	Create(ctx context.Context, entity T) error

	// GetByID retrieves a resource row.
	// Returns apperror.NewNotFound when absent.
	GetByID(ctx context.Context, entityID id.ID) (T, error)

	// Update modifies an existing resource row.
	Update(ctx context.Context, entity T) error

	// Delete removes a resource row.
	Delete(ctx context.Context, entityID id.ID) error

	// ListOwnedBy returns the rows linked to the manager via the
	// ownership junction. Implemented as a join, never a table scan
	// filtered afterwards.
	ListOwnedBy(ctx context.Context, managerID string) ([]T, error)

	// ListAll returns every row of the family. Admin listings only.
	ListAll(ctx context.Context) ([]T, error)
}
