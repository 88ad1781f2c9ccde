package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appctx "backoffice/internal/core/context"
	"backoffice/internal/domain/auth"
	"backoffice/internal/infrastructure/http/v1/dto"
	"backoffice/internal/metrics"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	*BaseHandler
	service   *auth.Service
	collector metrics.Collector
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(base *BaseHandler, service *auth.Service, collector metrics.Collector) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		service:     service,
		collector:   collector,
	}
}

// Login handles POST /auth/login (manager accounts).
func (h *AuthHandler) Login(c *gin.Context) {
	h.login(c, appctx.KindManager)
}

// AdminLogin handles POST /auth/admin/login.
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	h.login(c, appctx.KindAdmin)
}

func (h *AuthHandler) login(c *gin.Context, kind appctx.PrincipalKind) {
	ctx := c.Request.Context()

	var req dto.LoginRequest
	if !h.BindJSON(c, &req) {
		return
	}

	var (
		res *auth.LoginResult
		err error
	)
	if kind == appctx.KindAdmin {
		res, err = h.service.LoginAdmin(ctx, req.ToCredentials())
	} else {
		res, err = h.service.LoginManager(ctx, req.ToCredentials())
	}
	if err != nil {
		h.collector.RecordLogin(string(kind), "fail")
		h.Error(c, err)
		return
	}

	h.collector.RecordLogin(string(kind), "ok")
	c.JSON(http.StatusOK, dto.FromLoginResult(res))
}

// Refresh handles POST /auth/refresh.
func (h *AuthHandler) Refresh(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.RefreshRequest
	if !h.BindJSON(c, &req) {
		return
	}

	token, err := h.service.Refresh(ctx, req.RefreshToken)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.RefreshResponse{Token: token})
}

// Me handles GET /auth/me.
func (h *AuthHandler) Me(c *gin.Context) {
	p := h.Principal(c)
	if p == nil {
		return
	}

	c.JSON(http.StatusOK, dto.MeResponse{
		Kind:  string(p.Kind),
		ID:    p.ID,
		Email: p.Email,
	})
}

// RegisterRoutes registers auth routes.
func (h *AuthHandler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.POST("/login", h.Login)
	public.POST("/admin/login", h.AdminLogin)
	public.POST("/refresh", h.Refresh)

	protected.GET("/me", h.Me)
}
