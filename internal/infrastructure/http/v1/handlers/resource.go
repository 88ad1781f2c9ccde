package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"backoffice/internal/core/apperror"
	"backoffice/internal/core/id"
	"backoffice/internal/domain"
	"backoffice/internal/infrastructure/http/v1/dto"
)

// validatable is implemented by models with payload-level invariants.
type validatable interface {
	Validate(ctx context.Context) error
}

// ResourceHandler provides CRUD endpoints for one resource family.
// CreateDTO and UpdateDTO are the wire shapes; mapping into the model
// is supplied per family so the handler stays generic.
type ResourceHandler[T domain.Resource, CreateDTO any, UpdateDTO any] struct {
	*BaseHandler
	service   *domain.ResourceService[T]
	mapCreate func(CreateDTO) (T, error)
	mapUpdate func(UpdateDTO, T) (T, error)
}

// NewResourceHandler creates a handler for one resource family.
func NewResourceHandler[T domain.Resource, CreateDTO any, UpdateDTO any](
	base *BaseHandler,
	service *domain.ResourceService[T],
	mapCreate func(CreateDTO) (T, error),
	mapUpdate func(UpdateDTO, T) (T, error),
) *ResourceHandler[T, CreateDTO, UpdateDTO] {
	return &ResourceHandler[T, CreateDTO, UpdateDTO]{
		BaseHandler: base,
		service:     service,
		mapCreate:   mapCreate,
		mapUpdate:   mapUpdate,
	}
}

// Create handles POST /.
func (h *ResourceHandler[T, C, U]) Create(c *gin.Context) {
	ctx := c.Request.Context()

	p := h.Principal(c)
	if p == nil {
		return
	}

	var req C
	if !h.BindJSON(c, &req) {
		return
	}

	entity, err := h.mapCreate(req)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid request body").WithCause(err))
		return
	}
	if v, ok := any(entity).(validatable); ok {
		if err := v.Validate(ctx); err != nil {
			h.Error(c, err)
			return
		}
	}

	if err := h.service.Create(ctx, p, entity); err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, entity.ResourceID().String())
}

// GetByID handles GET /:id. Ownership of the id was established by the
// gate before this runs.
func (h *ResourceHandler[T, C, U]) GetByID(c *gin.Context) {
	ctx := c.Request.Context()

	entityID, ok := h.pathID(c)
	if !ok {
		return
	}

	entity, err := h.service.GetByID(ctx, entityID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, entity)
}

// Update handles PUT /:id.
func (h *ResourceHandler[T, C, U]) Update(c *gin.Context) {
	ctx := c.Request.Context()

	entityID, ok := h.pathID(c)
	if !ok {
		return
	}

	var req U
	if !h.BindJSON(c, &req) {
		return
	}

	entity, err := h.service.GetByID(ctx, entityID)
	if err != nil {
		h.Error(c, err)
		return
	}

	entity, err = h.mapUpdate(req, entity)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid request body").WithCause(err))
		return
	}
	if v, ok := any(entity).(validatable); ok {
		if err := v.Validate(ctx); err != nil {
			h.Error(c, err)
			return
		}
	}

	if err := h.service.Update(ctx, entity); err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, entity)
}

// Delete handles DELETE /:id.
func (h *ResourceHandler[T, C, U]) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	entityID, ok := h.pathID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(ctx, entityID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}

// List handles GET /. Managers see exactly their owned rows, admins see
// every row.
func (h *ResourceHandler[T, C, U]) List(c *gin.Context) {
	ctx := c.Request.Context()

	p := h.Principal(c)
	if p == nil {
		return
	}

	entities, err := h.service.List(ctx, p)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]any, 0, len(entities))
	for _, e := range entities {
		items = append(items, e)
	}
	h.OK(c, dto.ListResponse{Items: items, Count: len(items)})
}

// RegisterRoutes registers the CRUD routes. guard is the ownership gate
// for id-scoped routes.
func (h *ResourceHandler[T, C, U]) RegisterRoutes(group *gin.RouterGroup, guard gin.HandlerFunc) {
	group.POST("", h.Create)
	group.GET("", h.List)
	group.GET("/:id", guard, h.GetByID)
	group.PUT("/:id", guard, h.Update)
	group.DELETE("/:id", guard, h.Delete)
}

func (h *ResourceHandler[T, C, U]) pathID(c *gin.Context) (id.ID, bool) {
	entityID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format").WithCause(err))
		return id.Nil(), false
	}
	return entityID, true
}
