package catalog_repo

import (
	"testing"

	"backoffice/internal/domain/catalogs/product"
	"backoffice/internal/infrastructure/storage/postgres"
)

func TestOwnedSelectJoinsJunctionTable(t *testing.T) {
	repo := NewBaseResourceRepo[*product.Product](
		nil,
		"products",
		"product",
		[]string{"id", "name", "price"},
	)

	sql, args, err := repo.ownedSelect("m1").ToSql()
	if err != nil {
		t.Fatalf("ToSql failed: %v", err)
	}

	want := "SELECT t.id, t.name, t.price FROM products t " +
		"JOIN ownerships o ON o.resource_id = t.id AND o.resource_type = $1 " +
		"WHERE o.manager_id = $2 ORDER BY t.name"
	if sql != want {
		t.Errorf("SQL mismatch\nwant: %s\ngot:  %s", want, sql)
	}

	if len(args) != 2 {
		t.Fatalf("want 2 args, got %d", len(args))
	}
	if args[0] != "product" {
		t.Errorf("arg[0] = %v, want resource type", args[0])
	}
	if args[1] != "m1" {
		t.Errorf("arg[1] = %v, want manager id", args[1])
	}
}

func TestProductColumnsFromStruct(t *testing.T) {
	cols := postgres.ExtractDBColumns[product.Product]()

	want := map[string]bool{
		"id": true, "name": true, "created_at": true, "updated_at": true,
		"version": true, "sku": true, "price": true, "category_id": true,
	}
	if len(cols) != len(want) {
		t.Fatalf("want %d columns, got %d: %v", len(want), len(cols), cols)
	}
	for _, col := range cols {
		if !want[col] {
			t.Errorf("unexpected column %q", col)
		}
	}
}
