package ozon

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"larana.GO/api"
	"larana.GO/config"
	"larana.GO/core/cache"
	"larana.GO/internal/apitest"
	"larana.GO/model/entity/catalog"
	mappingRepo "larana.GO/model/repository/mapping"
	ozonService "larana.GO/service/ozon"
	"larana.GO/service/product"
)

// seller serves two products, one of which already exists in the catalog.
func seller(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v3/product/list":
			w.Write([]byte(`{"result":{"items":[{"product_id":11,"offer_id":"OZ-11"},{"product_id":12,"offer_id":"ART-001"}],"last_id":"","total":2}}`))
		case "/v3/product/info/list":
			w.Write([]byte(`{"items":[
				{"id":11,"offer_id":"OZ-11","name":"Кресло Берген","price":"12990.0000","images":["https://cdn.ozon.ru/b.jpg"],"stocks":{"present":4}},
				{"id":12,"offer_id":"ART-001","name":"Диван","price":"35900"}
			]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

func newDeps(t *testing.T, withClient bool) *api.Deps {
	t.Helper()
	deps := apitest.NewDeps(t, catalog.Product{ID: 1, Title: "Диван", Category: "Гостиная", Price: "35900 ₽", SupplierArticle: "ART-001"})
	var src ozonService.Source
	if withClient {
		c, err := ozonService.NewClient(config.OzonConfig{
			ClientID:    "cid",
			APIKey:      "key",
			BaseURL:     seller(t),
			ListPath:    "/v3/product/list",
			DetailsPath: "/v3/product/info/list",
			Timeout:     5 * time.Second,
		}, nil)
		if err != nil {
			t.Fatalf("NewClient: %v", err)
		}
		src = c
	}
	deps.Ozon = ozonService.NewImporter(src, mappingRepo.NewMappingRepository(deps.DB), deps.Store, cache.NewCache(),
		ozonService.ImporterOptions{PlaceholderImage: deps.Config.PlaceholderImage}, nil)
	return deps
}

func jsonReq(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestOzonAPI_PreviewCommit(t *testing.T) {
	d := newDeps(t, true)
	e := apitest.NewEcho(d, RegisterOzonRoutes)

	rec := apitest.Do(e, httptest.NewRequest(http.MethodPost, "/api/ozon/preview", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("preview status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Preview ozonService.Preview `json:"preview"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	p := resp.Preview
	if p.Total != 2 || p.New != 1 || p.Existing != 1 {
		t.Errorf("total/new/existing = %d/%d/%d, want 2/1/1", p.Total, p.New, p.Existing)
	}
	if p.SessionID == "" {
		t.Fatal("empty session id")
	}

	rec = apitest.Do(e, jsonReq(http.MethodPost, "/api/ozon/commit", `{"session_id":"`+p.SessionID+`"}`))
	if rec.Code != http.StatusOK {
		t.Fatalf("commit status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if d.Store.Len() != 2 {
		t.Fatalf("Len = %d, want 2", d.Store.Len())
	}
	got, ok := d.Store.FindByArticle("OZ-11")
	if !ok {
		t.Fatal("OZ-11 not imported")
	}
	if got.ID != 2 || got.Price != "12990 ₽" {
		t.Errorf("imported id = %d price = %q, want 2, 12990 ₽", got.ID, got.Price)
	}

	// The session is consumed by a commit.
	rec = apitest.Do(e, jsonReq(http.MethodPost, "/api/ozon/commit", `{"session_id":"`+p.SessionID+`"}`))
	if rec.Code != http.StatusGone {
		t.Errorf("second commit status = %d, want 410", rec.Code)
	}
}

func TestOzonAPI_NoCredentials(t *testing.T) {
	d := newDeps(t, false)
	e := apitest.NewEcho(d, RegisterOzonRoutes)

	rec := apitest.Do(e, httptest.NewRequest(http.MethodPost, "/api/ozon/preview", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("preview status = %d, want 503", rec.Code)
	}
	rec = apitest.Do(e, jsonReq(http.MethodPost, "/api/ozon/commit", `{}`))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("commit without session status = %d, want 400", rec.Code)
	}
}

func TestOzonAPI_Mappings(t *testing.T) {
	d := newDeps(t, false)
	e := apitest.NewEcho(d, RegisterOzonRoutes)

	rec := apitest.Do(e, httptest.NewRequest(http.MethodGet, "/api/ozon/mappings", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("GET status = %d, want 200", rec.Code)
	}

	body := `{"mappings":[{"sourceField":"offer_id","catalogField":"supplierArticle","enabled":true},{"sourceField":"name","catalogField":"skip","enabled":true}]}`
	rec = apitest.Do(e, jsonReq(http.MethodPut, "/api/ozon/mappings", body))
	if rec.Code != http.StatusOK {
		t.Fatalf("PUT status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	m, err := d.Ozon.Mappings()
	if err != nil {
		t.Fatalf("Mappings: %v", err)
	}
	if len(m) != 2 || m[1].Enabled {
		t.Errorf("saved = %+v, want skip disabled", m)
	}

	rec = apitest.Do(e, jsonReq(http.MethodPut, "/api/ozon/mappings", `{"mappings":[{"sourceField":"name","catalogField":"weight"}]}`))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("invalid mapping status = %d, want 400", rec.Code)
	}

	rec = apitest.Do(e, httptest.NewRequest(http.MethodDelete, "/api/ozon/mappings", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("DELETE status = %d, want 200", rec.Code)
	}
	if m, _ := d.Ozon.Mappings(); len(m) != len(product.DefaultOzonMappings()) {
		t.Errorf("mappings after reset = %d, want defaults", len(m))
	}
}
