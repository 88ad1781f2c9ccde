package domain

import (
	"context"

	"backoffice/internal/core/apperror"
	appctx "backoffice/internal/core/context"
	"backoffice/internal/core/id"
	"backoffice/internal/domain/ownership"
	"backoffice/pkg/logger"
)

// AuditLogger records mutating operations. Audit failures never fail
// the operation itself.
type AuditLogger interface {
	LogChange(ctx context.Context, resourceType string, resourceID id.ID, action string, changes map[string]any) error
}

// ResourceService provides ownership-aware CRUD for one resource
// family. Authorization for id-scoped operations happens in the Request
// Gate before dispatch; the service is responsible for keeping resource
// rows and ownership edges consistent on create and delete.
type ResourceService[T Resource] struct {
	repo   ResourceRepository[T]
	engine *ownership.Engine
	rtype  ownership.ResourceType
	name   string
	audit  AuditLogger
}

// ResourceServiceConfig configures a ResourceService.
type ResourceServiceConfig[T Resource] struct {
	Repo       ResourceRepository[T]
	Engine     *ownership.Engine
	Type       ownership.ResourceType
	EntityName string
	Audit      AuditLogger // optional
}

// NewResourceService creates a service for one resource family.
func NewResourceService[T Resource](cfg ResourceServiceConfig[T]) *ResourceService[T] {
	return &ResourceService[T]{
		repo:   cfg.Repo,
		engine: cfg.Engine,
		rtype:  cfg.Type,
		name:   cfg.EntityName,
		audit:  cfg.Audit,
	}
}

func (s *ResourceService[T]) recordAudit(ctx context.Context, resourceID id.ID, action string) {
	if s.audit == nil {
		return
	}
	if err := s.audit.LogChange(ctx, string(s.rtype), resourceID, action, nil); err != nil {
		logger.Warn(ctx, "audit log failed",
			"resource_type", string(s.rtype),
			"action", action,
			"error", err)
	}
}

// Type returns the resource family this service manages.
func (s *ResourceService[T]) Type() ownership.ResourceType {
	return s.rtype
}

// Create inserts the resource and, for managers, the ownership edge in
// the same transaction. Admin-created rows carry no edge.
func (s *ResourceService[T]) Create(ctx context.Context, p *appctx.Principal, entity T) error {
	if p == nil {
		return apperror.NewUnauthorized("authentication required")
	}

	if p.IsAdmin() {
		if err := s.repo.Create(ctx, entity); err != nil {
			return err
		}
	} else {
		err := s.engine.CreateOwned(ctx, p.ID, s.rtype, entity.ResourceID(), func(ctx context.Context) error {
			return s.repo.Create(ctx, entity)
		})
		if err != nil {
			return err
		}
	}

	s.recordAudit(ctx, entity.ResourceID(), "create")

	logger.Info(ctx, "resource created",
		"resource_type", string(s.rtype),
		"resource_id", entity.ResourceID(),
	)
	return nil
}

// GetByID retrieves a single resource row. Ownership was already
// checked by the gate for the id in the route.
func (s *ResourceService[T]) GetByID(ctx context.Context, entityID id.ID) (T, error) {
	return s.repo.GetByID(ctx, entityID)
}

// Update modifies an existing resource row.
func (s *ResourceService[T]) Update(ctx context.Context, entity T) error {
	if err := s.repo.Update(ctx, entity); err != nil {
		return err
	}
	s.recordAudit(ctx, entity.ResourceID(), "update")
	return nil
}

// Delete removes the ownership edges and then the resource row, as one
// transactional cascading delete.
func (s *ResourceService[T]) Delete(ctx context.Context, entityID id.ID) error {
	err := s.engine.DeleteResource(ctx, s.rtype, entityID, func(ctx context.Context) error {
		return s.repo.Delete(ctx, entityID)
	})
	if err != nil {
		return err
	}
	s.recordAudit(ctx, entityID, "delete")
	return nil
}

// List returns the rows visible to the principal: every row for admins,
// the ownership join for managers.
func (s *ResourceService[T]) List(ctx context.Context, p *appctx.Principal) ([]T, error) {
	if p == nil {
		return nil, apperror.NewUnauthorized("authentication required")
	}
	if p.IsAdmin() {
		return s.repo.ListAll(ctx)
	}
	return s.repo.ListOwnedBy(ctx, p.ID)
}
