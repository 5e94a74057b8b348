package product

import (
	"errors"
	"testing"

	"larana.GO/internal/testdb"
	"larana.GO/model/entity/catalog"
	"larana.GO/model/repository"
)

func seed(t *testing.T, r *ProductRepository) {
	t.Helper()
	five, zero := 5, 0
	err := r.ReplaceAll([]catalog.Product{
		{ID: 1, Title: "Диван Комфорт", SupplierArticle: "ART-001", Price: "38900 ₽", StockQuantity: &five, InStock: true, Images: []string{"http://a/1.jpg"}},
		{ID: 2, Title: "Шкаф-купе", SupplierArticle: "ART-002", Price: "57900 ₽", StockQuantity: &zero},
		{ID: 7, Title: "Кровать", SupplierArticle: "ART-003", Price: "25900 ₽"},
	})
	if err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}
}

func byID(t *testing.T, r *ProductRepository, id int) (catalog.Product, bool) {
	t.Helper()
	all, err := r.FindAll()
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	for _, p := range all {
		if p.ID == id {
			return p, true
		}
	}
	return catalog.Product{}, false
}

func TestProductRepository_GetProductRepository(t *testing.T) {
	db := testdb.Open(t)
	r1 := GetProductRepository(db)
	r2 := GetProductRepository(db)
	if r1 != r2 {
		t.Error("GetProductRepository should return same instance for same DB")
	}
}

func TestProductRepository_FindAll(t *testing.T) {
	r := NewProductRepository(testdb.Open(t))
	seed(t, r)

	all, err := r.FindAll()
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("FindAll = %d products, want 3", len(all))
	}
	if all[0].ID != 1 || all[2].ID != 7 {
		t.Errorf("FindAll order = %d..%d, want 1..7", all[0].ID, all[2].ID)
	}
	if len(all[0].Images) != 1 || all[0].Images[0] != "http://a/1.jpg" {
		t.Errorf("Images round trip = %v", all[0].Images)
	}
}

func TestProductRepository_CreateUpdateDelete(t *testing.T) {
	r := NewProductRepository(testdb.Open(t))
	seed(t, r)

	if err := r.Create(&catalog.Product{ID: 8, Title: "Стол", SupplierArticle: "ART-008", Price: "9900 ₽"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p, ok := byID(t, r, 8); !ok || p.SupplierArticle != "ART-008" {
		t.Errorf("after Create = %+v, %v", p, ok)
	}

	p, _ := byID(t, r, 1)
	p.Price = "39900 ₽"
	p.SetStock(0)
	if err := r.Update(&p); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, _ := byID(t, r, 1)
	if got.Price != "39900 ₽" || got.InStock {
		t.Errorf("after Update price=%q inStock=%v", got.Price, got.InStock)
	}

	if err := r.Update(&catalog.Product{ID: 42}); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("Update missing err = %v, want ErrNotFound", err)
	}
	if err := r.Delete(2); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok := byID(t, r, 2); ok {
		t.Error("product 2 still present after Delete")
	}
	if err := r.Delete(2); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("Delete twice err = %v, want ErrNotFound", err)
	}
}

func TestProductRepository_ReplaceAll(t *testing.T) {
	r := NewProductRepository(testdb.Open(t))
	seed(t, r)

	next := []catalog.Product{
		{ID: 10, Title: "Стол", SupplierArticle: "T-1"},
		{ID: 11, Title: "Стул", SupplierArticle: "T-2"},
	}
	if err := r.ReplaceAll(next); err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}
	all, _ := r.FindAll()
	if len(all) != 2 || all[0].ID != 10 || all[1].ID != 11 {
		t.Errorf("after ReplaceAll = %+v", all)
	}

	if err := r.ReplaceAll(nil); err != nil {
		t.Fatalf("ReplaceAll(nil): %v", err)
	}
	if all, _ := r.FindAll(); len(all) != 0 {
		t.Errorf("after ReplaceAll(nil) = %d products, want 0", len(all))
	}
}
