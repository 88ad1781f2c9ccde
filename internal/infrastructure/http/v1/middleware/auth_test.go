package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	appctx "backoffice/internal/core/context"
	"backoffice/internal/domain/auth"
	"backoffice/internal/metrics"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubVerifier struct {
	principal *appctx.Principal
	err       error
}

func (s stubVerifier) VerifyAccess(string) (*appctx.Principal, error) {
	return s.principal, s.err
}

func authTestRouter(verifier TokenVerifier) *gin.Engine {
	r := gin.New()
	r.Use(ErrorHandler())
	r.Use(Auth(verifier, metrics.Nop{}))
	r.GET("/probe", func(c *gin.Context) {
		p := appctx.GetPrincipal(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"principal": p.ID})
	})
	return r
}

func doRequest(t *testing.T, r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not a JSON object: %s", w.Body.String())
	}
	return body["error"]
}

func TestAuthMissingHeader(t *testing.T) {
	r := authTestRouter(stubVerifier{principal: &appctx.Principal{Kind: appctx.KindManager, ID: "m1"}})

	w := doRequest(t, r, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("want 401, got %d", w.Code)
	}
	if errorBody(t, w) == "" {
		t.Fatal("missing error message in body")
	}
}

func TestAuthBadHeaderFormat(t *testing.T) {
	r := authTestRouter(stubVerifier{principal: &appctx.Principal{Kind: appctx.KindManager, ID: "m1"}})

	for _, header := range []string{"Token abc", "Bearer"} {
		w := doRequest(t, r, header)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("header %q: want 401, got %d", header, w.Code)
		}
	}
}

func TestAuthRejectedToken(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"expired", auth.ErrTokenExpired},
		{"bad signature", auth.ErrTokenBadSignature},
		{"malformed", auth.ErrTokenMalformed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := authTestRouter(stubVerifier{err: tt.err})

			w := doRequest(t, r, "Bearer some-token")
			if w.Code != http.StatusForbidden {
				t.Fatalf("want 403, got %d", w.Code)
			}
			// The client-facing message stays uniform across failure kinds.
			if got := errorBody(t, w); got != "invalid token" {
				t.Errorf("body message = %q", got)
			}
		})
	}
}

func TestAuthAttachesPrincipal(t *testing.T) {
	r := authTestRouter(stubVerifier{principal: &appctx.Principal{Kind: appctx.KindManager, ID: "m1"}})

	w := doRequest(t, r, "Bearer good-token")
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d: %s", w.Code, w.Body.String())
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if body["principal"] != "m1" {
		t.Errorf("principal = %q", body["principal"])
	}
}

func TestRequireAdmin(t *testing.T) {
	newRouter := func(p *appctx.Principal) *gin.Engine {
		r := gin.New()
		r.Use(ErrorHandler())
		r.Use(func(c *gin.Context) {
			if p != nil {
				c.Request = c.Request.WithContext(appctx.WithPrincipal(c.Request.Context(), p))
			}
			c.Next()
		})
		r.Use(RequireAdmin())
		r.GET("/probe", func(c *gin.Context) { c.Status(http.StatusOK) })
		return r
	}

	tests := []struct {
		name string
		p    *appctx.Principal
		want int
	}{
		{"admin passes", &appctx.Principal{Kind: appctx.KindAdmin, ID: "1"}, http.StatusOK},
		{"manager rejected", &appctx.Principal{Kind: appctx.KindManager, ID: "m1"}, http.StatusForbidden},
		{"anonymous rejected", nil, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, newRouter(tt.p), "")
			if w.Code != tt.want {
				t.Errorf("want %d, got %d", tt.want, w.Code)
			}
		})
	}
}
