package ownership

import (
	"context"
	"fmt"
	"time"

	"backoffice/internal/core/apperror"
	appctx "backoffice/internal/core/context"
	"backoffice/internal/core/id"
	"backoffice/internal/core/tx"
	"backoffice/pkg/logger"
)

// Engine is the ownership authorization engine. Authorization is an
// existence check against the junction table; admins bypass it. A
// datastore failure during the check is surfaced as an upstream error,
// never conflated with a denial and never falling through to allow.
type Engine struct {
	edges EdgeRepository
	txm   tx.Manager
}

// NewEngine creates a new ownership engine.
func NewEngine(edges EdgeRepository, txm tx.Manager) *Engine {
	return &Engine{edges: edges, txm: txm}
}

// Authorize decides whether the principal may act on the resource.
// Returns nil to allow, ErrDenied to deny, or an upstream AppError when
// the check itself failed.
func (e *Engine) Authorize(ctx context.Context, p *appctx.Principal, rt ResourceType, resourceID id.ID) error {
	if p == nil {
		return apperror.NewUnauthorized("authentication required")
	}
	if !rt.Valid() {
		return apperror.NewValidation("unknown resource type").WithDetail("type", string(rt))
	}
	if p.IsAdmin() {
		return nil
	}

	exists, err := e.edges.Exists(ctx, p.ID, rt, resourceID)
	if err != nil {
		return apperror.NewUpstream(fmt.Errorf("ownership check: %w", err))
	}
	if !exists {
		return ErrDenied
	}
	return nil
}

// ListOwned returns exactly the set of resource ids linked to the
// manager. The underlying query is a join against the junction table;
// unauthorized rows are never materialized.
func (e *Engine) ListOwned(ctx context.Context, p *appctx.Principal, rt ResourceType) ([]id.ID, error) {
	if p == nil {
		return nil, apperror.NewUnauthorized("authentication required")
	}
	if !rt.Valid() {
		return nil, apperror.NewValidation("unknown resource type").WithDetail("type", string(rt))
	}

	ids, err := e.edges.ListResourceIDs(ctx, p.ID, rt)
	if err != nil {
		return nil, apperror.NewUpstream(fmt.Errorf("list owned %s: %w", rt, err))
	}
	return ids, nil
}

// CreateOwned runs the resource insert and the ownership edge insert as
// one transaction, so a resource row never exists without its edge.
func (e *Engine) CreateOwned(ctx context.Context, managerID string, rt ResourceType, resourceID id.ID, insert func(ctx context.Context) error) error {
	return e.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := insert(ctx); err != nil {
			return err
		}
		edge := &Edge{
			ManagerID:  managerID,
			Type:       rt,
			ResourceID: resourceID,
			CreatedAt:  time.Now(),
		}
		if err := e.edges.Link(ctx, edge); err != nil {
			return apperror.NewUpstream(fmt.Errorf("link %s ownership: %w", rt, err))
		}
		return nil
	})
}

// DeleteResource sequences the cascading delete: ownership edges first,
// then the resource row, inside one transaction so no edge ever dangles
// pointing at a deleted resource and no orphan row survives a partial
// failure. A second-step failure is logged as an inconsistency and
// surfaced as ErrDeleteIncomplete before the rollback.
func (e *Engine) DeleteResource(ctx context.Context, rt ResourceType, resourceID id.ID, deleteRow func(ctx context.Context) error) error {
	return e.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		removed, err := e.edges.Unlink(ctx, rt, resourceID)
		if err != nil {
			return apperror.NewUpstream(fmt.Errorf("unlink %s ownership: %w", rt, err))
		}

		if err := deleteRow(ctx); err != nil {
			// Deleting an already-absent resource with no edges is not
			// an inconsistency, just a failed lookup.
			if apperror.IsNotFound(err) && removed == 0 {
				return err
			}
			logger.Error(ctx, "resource delete failed after ownership edges removed",
				"resource_type", string(rt),
				"resource_id", resourceID,
				"edges_removed", removed,
				"error", err,
			)
			return fmt.Errorf("%w: %s %s: %v", ErrDeleteIncomplete, rt, resourceID, err)
		}

		logger.Info(ctx, "resource deleted",
			"resource_type", string(rt),
			"resource_id", resourceID,
			"edges_removed", removed,
		)
		return nil
	})
}
