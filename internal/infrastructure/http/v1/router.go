// Package v1 wires the HTTP API: middleware chain, public auth routes
// and the ownership-guarded resource routes.
package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"backoffice/internal/domain"
	"backoffice/internal/domain/auth"
	"backoffice/internal/domain/catalogs/category"
	"backoffice/internal/domain/catalogs/employee"
	"backoffice/internal/domain/catalogs/product"
	"backoffice/internal/domain/catalogs/unit"
	"backoffice/internal/domain/ownership"
	"backoffice/internal/infrastructure/http/v1/dto"
	"backoffice/internal/infrastructure/http/v1/handlers"
	"backoffice/internal/infrastructure/http/v1/middleware"
	"backoffice/internal/metrics"
	"backoffice/pkg/logger"
)

// RouterConfig carries everything the router needs.
type RouterConfig struct {
	Logger    *logger.Logger
	Verifier  middleware.TokenVerifier
	Auth      *auth.Service
	Engine    *ownership.Engine
	Collector metrics.Collector

	Employees  *domain.ResourceService[*employee.Employee]
	Units      *domain.ResourceService[*unit.Unit]
	Categories *domain.ResourceService[*category.Category]
	Products   *domain.ResourceService[*product.Product]

	DB      handlers.Pinger
	Metrics http.Handler // optional, exposed at /metrics when set
}

// NewRouter builds the gin engine with the full middleware chain and
// every route group.
func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()

	r.Use(middleware.Recovery())
	r.Use(middleware.Trace())
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.Metrics(cfg.Collector))
	r.Use(middleware.ErrorHandler())

	handlers.NewHealthHandler(cfg.DB).RegisterRoutes(r)
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics))
	}

	base := handlers.NewBaseHandler()

	api := r.Group("/api/v1")
	authGroup := api.Group("/auth")
	protected := api.Group("")
	protected.Use(middleware.Auth(cfg.Verifier, cfg.Collector))

	authHandler := handlers.NewAuthHandler(base, cfg.Auth, cfg.Collector)
	authHandler.RegisterRoutes(authGroup, protected.Group("/auth"))

	registerResourceRoutes(protected, base, cfg)

	return r
}

func registerResourceRoutes(protected *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	guard := func(rt ownership.ResourceType) gin.HandlerFunc {
		return middleware.RequireOwnership(cfg.Engine, rt, cfg.Collector)
	}

	handlers.NewResourceHandler(base, cfg.Employees,
		func(req dto.CreateEmployeeRequest) (*employee.Employee, error) {
			return req.ToModel(), nil
		},
		func(req dto.UpdateEmployeeRequest, e *employee.Employee) (*employee.Employee, error) {
			return req.Apply(e), nil
		},
	).RegisterRoutes(protected.Group("/employees"), guard(ownership.TypeEmployee))

	handlers.NewResourceHandler(base, cfg.Units,
		func(req dto.CreateUnitRequest) (*unit.Unit, error) {
			return req.ToModel(), nil
		},
		func(req dto.UpdateUnitRequest, u *unit.Unit) (*unit.Unit, error) {
			return req.Apply(u), nil
		},
	).RegisterRoutes(protected.Group("/units"), guard(ownership.TypeUnit))

	handlers.NewResourceHandler(base, cfg.Categories,
		func(req dto.CreateCategoryRequest) (*category.Category, error) {
			return req.ToModel(), nil
		},
		func(req dto.UpdateCategoryRequest, c *category.Category) (*category.Category, error) {
			return req.Apply(c), nil
		},
	).RegisterRoutes(protected.Group("/categories"), guard(ownership.TypeCategory))

	handlers.NewResourceHandler(base, cfg.Products,
		func(req dto.CreateProductRequest) (*product.Product, error) {
			return req.ToModel()
		},
		func(req dto.UpdateProductRequest, p *product.Product) (*product.Product, error) {
			return req.Apply(p)
		},
	).RegisterRoutes(protected.Group("/products"), guard(ownership.TypeProduct))
}
