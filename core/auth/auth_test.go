package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func newServer(mw echo.MiddlewareFunc) *echo.Echo {
	e := echo.New()
	g := e.Group("/api")
	g.Use(mw)
	ok := func(c echo.Context) error { return c.String(http.StatusOK, "ok") }
	g.GET("/products", ok)
	g.POST("/products", ok)
	g.GET("/products/:id", ok)
	return e
}

func serve(e *echo.Echo, req *http.Request) int {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec.Code
}

func TestKeyAuth(t *testing.T) {
	t.Setenv("AUTH_TYPE", "key")
	t.Setenv("API_KEY", "secret")
	e := newServer(Middleware())

	tests := []struct {
		name   string
		method string
		path   string
		header map[string]string
		want   int
	}{
		{"public list", http.MethodGet, "/api/products", nil, http.StatusOK},
		{"public item", http.MethodGet, "/api/products/1", nil, http.StatusOK},
		{"write without key", http.MethodPost, "/api/products", nil, http.StatusBadRequest},
		{"wrong key", http.MethodPost, "/api/products", map[string]string{"X-Admin-Key": "nope"}, http.StatusUnauthorized},
		{"admin header", http.MethodPost, "/api/products", map[string]string{"X-Admin-Key": "secret"}, http.StatusOK},
		{"bearer", http.MethodPost, "/api/products", map[string]string{"Authorization": "Bearer secret"}, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			for k, v := range tt.header {
				req.Header.Set(k, v)
			}
			if got := serve(e, req); got != tt.want {
				t.Errorf("status = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestBasicAuth(t *testing.T) {
	t.Setenv("AUTH_TYPE", "")
	t.Setenv("API_USER", "admin")
	t.Setenv("API_PASS", "pass")
	e := newServer(Middleware())

	req := httptest.NewRequest(http.MethodPost, "/api/products", nil)
	if got := serve(e, req); got != http.StatusUnauthorized {
		t.Errorf("no credentials status = %d, want 401", got)
	}
	req = httptest.NewRequest(http.MethodPost, "/api/products", nil)
	req.SetBasicAuth("admin", "pass")
	if got := serve(e, req); got != http.StatusOK {
		t.Errorf("valid credentials status = %d, want 200", got)
	}
}

func TestBasicAuth_EmptyUserRejects(t *testing.T) {
	t.Setenv("AUTH_TYPE", "basic")
	t.Setenv("API_USER", "")
	t.Setenv("API_PASS", "")
	e := newServer(Middleware())

	req := httptest.NewRequest(http.MethodPost, "/api/products", nil)
	req.SetBasicAuth("", "")
	if got := serve(e, req); got != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", got)
	}
}
