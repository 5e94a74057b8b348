// Package apitest wires route modules over a throwaway database for handler tests.
package apitest

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"larana.GO/api"
	"larana.GO/config"
	"larana.GO/core/cache"
	"larana.GO/internal/testdb"
	"larana.GO/model/entity/catalog"
	bundleRepo "larana.GO/model/repository/bundle"
	productRepo "larana.GO/model/repository/product"
	"larana.GO/service/listcache"
	"larana.GO/service/product"
)

// NewDeps returns Deps over a fresh SQLite catalog seeded with products.
func NewDeps(t testing.TB, products ...catalog.Product) *api.Deps {
	t.Helper()
	db := testdb.Open(t)
	repo := productRepo.NewProductRepository(db)
	if len(products) > 0 {
		if err := repo.ReplaceAll(products); err != nil {
			t.Fatalf("seed products: %v", err)
		}
	}
	store := product.NewStore(repo, nil)
	if err := store.Load(); err != nil {
		t.Fatalf("load store: %v", err)
	}
	lists := listcache.New(nil, cache.NewCache(), time.Minute, nil)
	store.OnChange(func() { lists.Invalidate(context.Background(), store.Version()) })
	return &api.Deps{
		DB:      db,
		Config:  &config.Config{PlaceholderImage: "https://cdn.example.com/placeholder.jpg"},
		Store:   store,
		Bundles: bundleRepo.NewBundleRepository(db, store),
		Lists:   lists,
	}
}

// NewEcho mounts register under /api.
func NewEcho(deps *api.Deps, register api.ModuleFunc) *echo.Echo {
	e := echo.New()
	register(e.Group("/api"), deps)
	return e
}

// Do serves req and returns the recorder.
func Do(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

// Upload builds a multipart POST with data in the "file" field plus form values.
func Upload(t testing.TB, target, filename string, data []byte, fields map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	part.Write(data)
	w.Close()
	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return req
}
