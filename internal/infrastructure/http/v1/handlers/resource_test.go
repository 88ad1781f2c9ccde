package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"backoffice/internal/core/apperror"
	appctx "backoffice/internal/core/context"
	"backoffice/internal/core/id"
	"backoffice/internal/domain"
	"backoffice/internal/domain/catalogs/category"
	"backoffice/internal/domain/ownership"
	"backoffice/internal/infrastructure/http/v1/dto"
	"backoffice/internal/infrastructure/http/v1/middleware"
	"backoffice/internal/metrics"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type memEdgeKey struct {
	managerID  string
	resourceID id.ID
}

type memStore struct {
	rows  map[id.ID]*category.Category
	edges map[memEdgeKey]bool
}

func newMemStore() *memStore {
	return &memStore{
		rows:  make(map[id.ID]*category.Category),
		edges: make(map[memEdgeKey]bool),
	}
}

func (s *memStore) Create(_ context.Context, c *category.Category) error {
	s.rows[c.ID] = c
	return nil
}

func (s *memStore) GetByID(_ context.Context, entityID id.ID) (*category.Category, error) {
	c, ok := s.rows[entityID]
	if !ok {
		return nil, errNotFound(entityID)
	}
	return c, nil
}

func (s *memStore) Update(_ context.Context, c *category.Category) error {
	s.rows[c.ID] = c
	return nil
}

func (s *memStore) Delete(_ context.Context, entityID id.ID) error {
	if _, ok := s.rows[entityID]; !ok {
		return errNotFound(entityID)
	}
	delete(s.rows, entityID)
	return nil
}

func (s *memStore) ListOwnedBy(_ context.Context, managerID string) ([]*category.Category, error) {
	var out []*category.Category
	for rowID, row := range s.rows {
		if s.edges[memEdgeKey{managerID, rowID}] {
			out = append(out, row)
		}
	}
	return out, nil
}

func (s *memStore) ListAll(_ context.Context) ([]*category.Category, error) {
	out := make([]*category.Category, 0, len(s.rows))
	for _, row := range s.rows {
		out = append(out, row)
	}
	return out, nil
}

func (s *memStore) Exists(_ context.Context, managerID string, _ ownership.ResourceType, resourceID id.ID) (bool, error) {
	return s.edges[memEdgeKey{managerID, resourceID}], nil
}

func (s *memStore) Link(_ context.Context, edge *ownership.Edge) error {
	s.edges[memEdgeKey{edge.ManagerID, edge.ResourceID}] = true
	return nil
}

func (s *memStore) Unlink(_ context.Context, _ ownership.ResourceType, resourceID id.ID) (int64, error) {
	var removed int64
	for k := range s.edges {
		if k.resourceID == resourceID {
			delete(s.edges, k)
			removed++
		}
	}
	return removed, nil
}

func (s *memStore) ListResourceIDs(_ context.Context, managerID string, _ ownership.ResourceType) ([]id.ID, error) {
	var ids []id.ID
	for k := range s.edges {
		if k.managerID == managerID {
			ids = append(ids, k.resourceID)
		}
	}
	return ids, nil
}

func errNotFound(entityID id.ID) error {
	return apperror.NewNotFound("category", entityID.String())
}

type passTx struct{}

func (passTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// principalInjector stands in for the token middleware so handler tests
// can pick the principal per request via a header.
func principalInjector() gin.HandlerFunc {
	return func(c *gin.Context) {
		if v := c.GetHeader("X-Test-Principal"); v != "" {
			parts := strings.SplitN(v, ":", 2)
			p := &appctx.Principal{Kind: appctx.PrincipalKind(parts[0]), ID: parts[1]}
			c.Request = c.Request.WithContext(appctx.WithPrincipal(c.Request.Context(), p))
		}
		c.Next()
	}
}

func categoryTestRouter(store *memStore) *gin.Engine {
	engine := ownership.NewEngine(store, passTx{})
	svc := domain.NewResourceService(domain.ResourceServiceConfig[*category.Category]{
		Repo:       store,
		Engine:     engine,
		Type:       ownership.TypeCategory,
		EntityName: "category",
	})

	h := NewResourceHandler(NewBaseHandler(), svc,
		func(req dto.CreateCategoryRequest) (*category.Category, error) {
			return req.ToModel(), nil
		},
		func(req dto.UpdateCategoryRequest, c *category.Category) (*category.Category, error) {
			return req.Apply(c), nil
		},
	)

	r := gin.New()
	r.Use(middleware.ErrorHandler())
	r.Use(principalInjector())
	h.RegisterRoutes(r.Group("/categories"),
		middleware.RequireOwnership(engine, ownership.TypeCategory, metrics.Nop{}))
	return r
}

func do(t *testing.T, r *gin.Engine, method, path, principal, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if principal != "" {
		req.Header.Set("X-Test-Principal", principal)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createCategory(t *testing.T, r *gin.Engine, principal, name string) string {
	t.Helper()
	w := do(t, r, http.MethodPost, "/categories", principal, `{"name":"`+name+`"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: want 201, got %d: %s", w.Code, w.Body.String())
	}
	var resp dto.IDResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad create response: %v", err)
	}
	return resp.ID
}

func TestCreateAndGetOwnedCategory(t *testing.T) {
	r := categoryTestRouter(newMemStore())

	catID := createCategory(t, r, "manager:m1", "Beverages")

	w := do(t, r, http.MethodGet, "/categories/"+catID, "manager:m1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("get: want 200, got %d: %s", w.Code, w.Body.String())
	}

	var got category.Category
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if got.Name != "Beverages" {
		t.Errorf("name = %q", got.Name)
	}
}

func TestCrossManagerAccessDenied(t *testing.T) {
	r := categoryTestRouter(newMemStore())

	catID := createCategory(t, r, "manager:m1", "Beverages")

	for _, method := range []string{http.MethodGet, http.MethodDelete} {
		w := do(t, r, method, "/categories/"+catID, "manager:m2", "")
		if w.Code != http.StatusForbidden {
			t.Errorf("%s as other manager: want 403, got %d", method, w.Code)
		}
	}

	w := do(t, r, http.MethodPut, "/categories/"+catID, "manager:m2", `{"name":"Stolen"}`)
	if w.Code != http.StatusForbidden {
		t.Errorf("PUT as other manager: want 403, got %d", w.Code)
	}
}

func TestMissingResourceLooksLikeDenial(t *testing.T) {
	r := categoryTestRouter(newMemStore())

	w := do(t, r, http.MethodGet, "/categories/"+id.New().String(), "manager:m1", "")
	if w.Code != http.StatusForbidden {
		t.Fatalf("want 403, got %d", w.Code)
	}
}

func TestAdminSeesEverything(t *testing.T) {
	r := categoryTestRouter(newMemStore())

	createCategory(t, r, "manager:m1", "Beverages")
	createCategory(t, r, "manager:m2", "Snacks")

	w := do(t, r, http.MethodGet, "/categories", "admin:1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", w.Code)
	}

	var resp dto.ListResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if resp.Count != 2 {
		t.Errorf("admin listing count = %d", resp.Count)
	}
}

func TestManagerListingScoped(t *testing.T) {
	r := categoryTestRouter(newMemStore())

	createCategory(t, r, "manager:m1", "Beverages")
	createCategory(t, r, "manager:m2", "Snacks")

	w := do(t, r, http.MethodGet, "/categories", "manager:m1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", w.Code)
	}

	var resp dto.ListResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if resp.Count != 1 {
		t.Errorf("manager listing count = %d", resp.Count)
	}
}

func TestUpdateAndDeleteOwnedCategory(t *testing.T) {
	store := newMemStore()
	r := categoryTestRouter(store)

	catID := createCategory(t, r, "manager:m1", "Beverages")

	w := do(t, r, http.MethodPut, "/categories/"+catID, "manager:m1", `{"name":"Drinks","description":"updated"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("update: want 200, got %d: %s", w.Code, w.Body.String())
	}

	w = do(t, r, http.MethodDelete, "/categories/"+catID, "manager:m1", "")
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete: want 204, got %d", w.Code)
	}

	if len(store.rows) != 0 {
		t.Error("row survived delete")
	}
	if len(store.edges) != 0 {
		t.Error("edges survived delete")
	}
}

func TestCreateWithoutNameRejected(t *testing.T) {
	r := categoryTestRouter(newMemStore())

	w := do(t, r, http.MethodPost, "/categories", "manager:m1", `{"description":"no name"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("want 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAnonymousRejected(t *testing.T) {
	r := categoryTestRouter(newMemStore())

	w := do(t, r, http.MethodGet, "/categories", "", "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("want 401, got %d", w.Code)
	}
}

func TestBadIDRejected(t *testing.T) {
	r := categoryTestRouter(newMemStore())

	w := do(t, r, http.MethodGet, "/categories/not-a-uuid", "manager:m1", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("want 400, got %d", w.Code)
	}
}
