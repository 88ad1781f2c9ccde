// Package main seeds a development database with demo accounts and a
// few owned resources.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	appctx "backoffice/internal/core/context"
	"backoffice/internal/core/id"
	"backoffice/internal/domain"
	"backoffice/internal/domain/catalogs/category"
	"backoffice/internal/domain/catalogs/employee"
	"backoffice/internal/domain/catalogs/product"
	"backoffice/internal/domain/catalogs/unit"
	"backoffice/internal/domain/ownership"
	"backoffice/internal/infrastructure/storage/postgres"
	"backoffice/internal/infrastructure/storage/postgres/catalog_repo"
	"backoffice/internal/infrastructure/storage/postgres/ownership_repo"
	"backoffice/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{Level: "info", Development: true})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("required environment variable DATABASE_URL not set")
	}

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dsn))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	txManager := postgres.NewTxManager(pool)
	engine := ownership.NewEngine(ownership_repo.NewEdgeRepo(txManager), txManager)

	adminID, err := seedAdmin(ctx, txManager, "admin@example.com", "admin123")
	if err != nil {
		log.Fatalw("failed to seed admin", "error", err)
	}
	log.Infow("admin seeded", "id", adminID, "email", "admin@example.com")

	managerA, err := seedManager(ctx, txManager, "alice@example.com", "Alice", "manager123")
	if err != nil {
		log.Fatalw("failed to seed manager", "error", err)
	}
	managerB, err := seedManager(ctx, txManager, "bob@example.com", "Bob", "manager123")
	if err != nil {
		log.Fatalw("failed to seed manager", "error", err)
	}
	log.Infow("managers seeded", "a", managerA, "b", managerB)

	if err := seedResources(ctx, txManager, engine, managerA, managerB); err != nil {
		log.Fatalw("failed to seed resources", "error", err)
	}
	log.Info("seed complete")
}

func seedAdmin(ctx context.Context, txm *postgres.TxManager, email, password string) (int64, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}

	q := txm.GetQuerier(ctx)
	var adminID int64
	err = q.QueryRow(ctx, `
		INSERT INTO admins (email, password_hash)
		VALUES ($1, $2)
		ON CONFLICT (email) DO UPDATE SET password_hash = EXCLUDED.password_hash
		RETURNING id
	`, email, string(hash)).Scan(&adminID)
	return adminID, err
}

func seedManager(ctx context.Context, txm *postgres.TxManager, email, name, password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	registration := id.New()
	q := txm.GetQuerier(ctx)
	var got string
	err = q.QueryRow(ctx, `
		INSERT INTO managers (registration, email, password_hash, name)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO UPDATE SET password_hash = EXCLUDED.password_hash
		RETURNING registration
	`, registration, email, string(hash), name).Scan(&got)
	return got, err
}

func seedResources(ctx context.Context, txm *postgres.TxManager, engine *ownership.Engine, managerA, managerB string) error {
	employees := domain.NewResourceService(domain.ResourceServiceConfig[*employee.Employee]{
		Repo:       catalog_repo.NewEmployeeRepo(txm),
		Engine:     engine,
		Type:       ownership.TypeEmployee,
		EntityName: "employee",
	})
	units := domain.NewResourceService(domain.ResourceServiceConfig[*unit.Unit]{
		Repo:       catalog_repo.NewUnitRepo(txm),
		Engine:     engine,
		Type:       ownership.TypeUnit,
		EntityName: "unit",
	})
	categories := domain.NewResourceService(domain.ResourceServiceConfig[*category.Category]{
		Repo:       catalog_repo.NewCategoryRepo(txm),
		Engine:     engine,
		Type:       ownership.TypeCategory,
		EntityName: "category",
	})
	products := domain.NewResourceService(domain.ResourceServiceConfig[*product.Product]{
		Repo:       catalog_repo.NewProductRepo(txm),
		Engine:     engine,
		Type:       ownership.TypeProduct,
		EntityName: "product",
	})

	principalA := &appctx.Principal{Kind: appctx.KindManager, ID: managerA, Email: "alice@example.com"}
	principalB := &appctx.Principal{Kind: appctx.KindManager, ID: managerB, Email: "bob@example.com"}

	e := employee.New("Carol Santos", "cashier")
	e.Email = "carol@example.com"
	if err := employees.Create(ctx, principalA, e); err != nil {
		return err
	}

	u := unit.New("Downtown Store")
	u.Address = "10 Main St"
	u.Phone = "+1 555 0100"
	if err := units.Create(ctx, principalA, u); err != nil {
		return err
	}

	cat := category.New("Beverages")
	cat.Description = "Drinks and juices"
	if err := categories.Create(ctx, principalA, cat); err != nil {
		return err
	}

	p := product.New("Orange Juice 1L", decimal.NewFromFloat(4.50))
	p.SKU = "OJ-1000"
	p.CategoryID = &cat.ID
	if err := products.Create(ctx, principalA, p); err != nil {
		return err
	}

	p2 := product.New("Sparkling Water 500ml", decimal.NewFromFloat(1.75))
	p2.SKU = "SW-0500"
	if err := products.Create(ctx, principalB, p2); err != nil {
		return err
	}

	return nil
}
