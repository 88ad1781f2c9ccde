// Package main applies database schema migrations.
package main

import (
	"fmt"
	"os"

	"backoffice/internal/database"
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

	databaseURL := os.Getenv("MIGRATE_DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("required environment variable MIGRATE_DATABASE_URL not set (pgx5:// scheme)")
	}

	direction := "up"
	if len(os.Args) > 1 {
		direction = os.Args[1]
	}

	switch direction {
	case "up":
		log.Info("applying migrations")
		if err := database.Migrate(databaseURL); err != nil {
			log.Fatalw("migration failed", "error", err)
		}
		log.Info("migrations applied")
	case "down":
		log.Info("rolling back last migration")
		if err := database.MigrateDown(databaseURL); err != nil {
			log.Fatalw("rollback failed", "error", err)
		}
		log.Info("rollback complete")
	default:
		log.Fatalw("unknown direction", "direction", direction)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
