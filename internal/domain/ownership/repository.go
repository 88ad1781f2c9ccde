package ownership

import (
	"context"

	"backoffice/internal/core/id"
)

// EdgeRepository persists ownership junction rows.
type EdgeRepository interface {
	// Exists reports whether an edge (managerID, rt, resourceID) is present.
	Exists(ctx context.Context, managerID string, rt ResourceType, resourceID id.ID) (bool, error)

	// Link inserts an ownership edge.
	Link(ctx context.Context, edge *Edge) error

	// Unlink removes every edge referencing the resource and returns
	// the number of rows removed.
	Unlink(ctx context.Context, rt ResourceType, resourceID id.ID) (int64, error)

	// ListResourceIDs returns the ids of all resources of the given
	// family linked to the manager.
	ListResourceIDs(ctx context.Context, managerID string, rt ResourceType) ([]id.ID, error)
}
