// Package main is the entry point for the back office API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/klauspost/compress/gzhttp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"backoffice/internal/domain"
	"backoffice/internal/domain/auth"
	"backoffice/internal/domain/catalogs/category"
	"backoffice/internal/domain/catalogs/employee"
	"backoffice/internal/domain/catalogs/product"
	"backoffice/internal/domain/catalogs/unit"
	"backoffice/internal/domain/ownership"
	v1 "backoffice/internal/infrastructure/http/v1"
	"backoffice/internal/infrastructure/storage/postgres"
	"backoffice/internal/infrastructure/storage/postgres/auth_repo"
	"backoffice/internal/infrastructure/storage/postgres/catalog_repo"
	"backoffice/internal/infrastructure/storage/postgres/ownership_repo"
	"backoffice/internal/metrics"
	"backoffice/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: getEnv("APP_ENV", "development") == "development",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting back office server")

	// --- Database ---
	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(mustEnv("DATABASE_URL")))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	txManager := postgres.NewTxManager(pool)

	// --- Token and auth services ---
	tokenConfig := auth.DefaultTokenConfig(
		mustEnv("ACCESS_TOKEN_SECRET"),
		mustEnv("REFRESH_TOKEN_SECRET"),
	)
	tokenService := auth.NewTokenService(tokenConfig)
	authService := auth.NewService(auth_repo.NewCredentialRepo(txManager), tokenService)

	// --- Ownership engine ---
	engine := ownership.NewEngine(ownership_repo.NewEdgeRepo(txManager), txManager)

	// --- Audit ---
	audit, err := postgres.NewAuditService(txManager)
	if err != nil {
		log.Fatalw("failed to initialize audit service", "error", err)
	}

	// --- Resource services ---
	employees := domain.NewResourceService(domain.ResourceServiceConfig[*employee.Employee]{
		Repo:       catalog_repo.NewEmployeeRepo(txManager),
		Engine:     engine,
		Type:       ownership.TypeEmployee,
		EntityName: "employee",
		Audit:      audit,
	})
	units := domain.NewResourceService(domain.ResourceServiceConfig[*unit.Unit]{
		Repo:       catalog_repo.NewUnitRepo(txManager),
		Engine:     engine,
		Type:       ownership.TypeUnit,
		EntityName: "unit",
		Audit:      audit,
	})
	categories := domain.NewResourceService(domain.ResourceServiceConfig[*category.Category]{
		Repo:       catalog_repo.NewCategoryRepo(txManager),
		Engine:     engine,
		Type:       ownership.TypeCategory,
		EntityName: "category",
		Audit:      audit,
	})
	products := domain.NewResourceService(domain.ResourceServiceConfig[*product.Product]{
		Repo:       catalog_repo.NewProductRepo(txManager),
		Engine:     engine,
		Type:       ownership.TypeProduct,
		EntityName: "product",
		Audit:      audit,
	})

	// --- Metrics ---
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.NewCollector(registry)

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Logger:     log,
		Verifier:   tokenService,
		Auth:       authService,
		Engine:     engine,
		Collector:  collector,
		Employees:  employees,
		Units:      units,
		Categories: categories,
		Products:   products,
		DB:         pool,
		Metrics:    metrics.Handler(registry),
	})

	// --- HTTP Server ---
	port := getEnv("APP_PORT", "8080")
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      gzhttp.GzipHandler(router),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func mustEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		fmt.Printf("required environment variable %s not set\n", key)
		os.Exit(1)
	}
	return value
}
