package ownership_repo

import (
	"testing"

	"backoffice/internal/core/id"
	"backoffice/internal/domain/ownership"
)

func TestExistsQuerySQL(t *testing.T) {
	repo := NewEdgeRepo(nil)
	resourceID := id.MustParse("0191e2f3-0000-7000-8000-000000000001")

	sql, args, err := repo.existsQuery("m1", ownership.TypeProduct, resourceID).ToSql()
	if err != nil {
		t.Fatalf("ToSql failed: %v", err)
	}

	want := "SELECT 1 FROM ownerships WHERE manager_id = $1 AND resource_id = $2 AND resource_type = $3 LIMIT 1"
	if sql != want {
		t.Errorf("SQL mismatch\nwant: %s\ngot:  %s", want, sql)
	}
	if len(args) != 3 {
		t.Fatalf("want 3 args, got %d", len(args))
	}
}

func TestUnlinkQuerySQL(t *testing.T) {
	repo := NewEdgeRepo(nil)
	resourceID := id.MustParse("0191e2f3-0000-7000-8000-000000000001")

	sql, args, err := repo.unlinkQuery(ownership.TypeUnit, resourceID).ToSql()
	if err != nil {
		t.Fatalf("ToSql failed: %v", err)
	}

	want := "DELETE FROM ownerships WHERE resource_id = $1 AND resource_type = $2"
	if sql != want {
		t.Errorf("SQL mismatch\nwant: %s\ngot:  %s", want, sql)
	}
	if len(args) != 2 {
		t.Fatalf("want 2 args, got %d", len(args))
	}
}
