package domain

import (
	"context"
	"errors"
	"testing"

	appctx "backoffice/internal/core/context"
	"backoffice/internal/core/entity"
	"backoffice/internal/core/id"
	"backoffice/internal/domain/ownership"
)

type testResource struct {
	entity.Base
}

func newTestResource(name string) *testResource {
	return &testResource{Base: entity.NewBase(name)}
}

type memoryRepo struct {
	rows map[id.ID]*testResource
	err  error
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{rows: make(map[id.ID]*testResource)}
}

func (r *memoryRepo) Create(_ context.Context, e *testResource) error {
	if r.err != nil {
		return r.err
	}
	r.rows[e.ID] = e
	return nil
}

func (r *memoryRepo) GetByID(_ context.Context, entityID id.ID) (*testResource, error) {
	if r.err != nil {
		return nil, r.err
	}
	e, ok := r.rows[entityID]
	if !ok {
		return nil, errNotFound
	}
	return e, nil
}

func (r *memoryRepo) Update(_ context.Context, e *testResource) error {
	if r.err != nil {
		return r.err
	}
	r.rows[e.ID] = e
	return nil
}

func (r *memoryRepo) Delete(_ context.Context, entityID id.ID) error {
	if r.err != nil {
		return r.err
	}
	if _, ok := r.rows[entityID]; !ok {
		return errNotFound
	}
	delete(r.rows, entityID)
	return nil
}

func (r *memoryRepo) ListOwnedBy(_ context.Context, managerID string) ([]*testResource, error) {
	// The real implementation joins against ownerships; the fake engine
	// repo below tracks edges, so mirror the join here.
	var out []*testResource
	for rowID, row := range r.rows {
		if ownedRows[edgeKey{managerID, rowID}] {
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *memoryRepo) ListAll(_ context.Context) ([]*testResource, error) {
	out := make([]*testResource, 0, len(r.rows))
	for _, row := range r.rows {
		out = append(out, row)
	}
	return out, nil
}

var errNotFound = errors.New("not found")

type edgeKey struct {
	managerID string
	rowID     id.ID
}

// ownedRows is shared between the fake repo and the fake edge store so
// listing reflects linked edges. Reset per test.
var ownedRows map[edgeKey]bool

type memoryEdges struct{}

func (memoryEdges) Exists(_ context.Context, managerID string, _ ownership.ResourceType, resourceID id.ID) (bool, error) {
	return ownedRows[edgeKey{managerID, resourceID}], nil
}

func (memoryEdges) Link(_ context.Context, edge *ownership.Edge) error {
	ownedRows[edgeKey{edge.ManagerID, edge.ResourceID}] = true
	return nil
}

func (memoryEdges) Unlink(_ context.Context, _ ownership.ResourceType, resourceID id.ID) (int64, error) {
	var removed int64
	for k := range ownedRows {
		if k.rowID == resourceID {
			delete(ownedRows, k)
			removed++
		}
	}
	return removed, nil
}

func (memoryEdges) ListResourceIDs(_ context.Context, managerID string, _ ownership.ResourceType) ([]id.ID, error) {
	var ids []id.ID
	for k := range ownedRows {
		if k.managerID == managerID {
			ids = append(ids, k.rowID)
		}
	}
	return ids, nil
}

type passTx struct{}

func (passTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newTestService(t *testing.T) (*ResourceService[*testResource], *memoryRepo) {
	t.Helper()
	ownedRows = make(map[edgeKey]bool)
	repo := newMemoryRepo()
	engine := ownership.NewEngine(memoryEdges{}, passTx{})
	svc := NewResourceService(ResourceServiceConfig[*testResource]{
		Repo:       repo,
		Engine:     engine,
		Type:       ownership.TypeProduct,
		EntityName: "product",
	})
	return svc, repo
}

func managerP(managerID string) *appctx.Principal {
	return &appctx.Principal{Kind: appctx.KindManager, ID: managerID}
}

func adminP() *appctx.Principal {
	return &appctx.Principal{Kind: appctx.KindAdmin, ID: "1"}
}

func TestCreateByManagerLinksOwnership(t *testing.T) {
	svc, repo := newTestService(t)

	e := newTestResource("juice")
	if err := svc.Create(context.Background(), managerP("m1"), e); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if _, ok := repo.rows[e.ID]; !ok {
		t.Fatal("row not inserted")
	}
	if !ownedRows[edgeKey{"m1", e.ID}] {
		t.Fatal("ownership edge not linked")
	}
}

func TestCreateByAdminHasNoEdge(t *testing.T) {
	svc, repo := newTestService(t)

	e := newTestResource("juice")
	if err := svc.Create(context.Background(), adminP(), e); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if _, ok := repo.rows[e.ID]; !ok {
		t.Fatal("row not inserted")
	}
	if len(ownedRows) != 0 {
		t.Fatal("admin creation must not link an edge")
	}
}

func TestListScopedPerManager(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	mine := newTestResource("mine")
	theirs := newTestResource("theirs")
	if err := svc.Create(ctx, managerP("m1"), mine); err != nil {
		t.Fatal(err)
	}
	if err := svc.Create(ctx, managerP("m2"), theirs); err != nil {
		t.Fatal(err)
	}

	got, err := svc.List(ctx, managerP("m1"))
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != mine.ID {
		t.Fatalf("manager listing leaked rows: %v", got)
	}

	all, err := svc.List(ctx, adminP())
	if err != nil {
		t.Fatalf("admin List failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("admin listing incomplete: got %d rows", len(all))
	}
}

func TestDeleteRemovesRowAndEdges(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	e := newTestResource("juice")
	if err := svc.Create(ctx, managerP("m1"), e); err != nil {
		t.Fatal(err)
	}

	if err := svc.Delete(ctx, e.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, ok := repo.rows[e.ID]; ok {
		t.Fatal("row survived delete")
	}
	if len(ownedRows) != 0 {
		t.Fatal("edges survived delete")
	}
}
