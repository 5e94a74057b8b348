package bundle

import (
	"errors"
	"testing"

	"larana.GO/internal/testdb"
	"larana.GO/model/entity/catalog"
	"larana.GO/model/repository"
	productRepo "larana.GO/model/repository/product"
)

func TestDeriveAvailability(t *testing.T) {
	tests := []struct {
		name  string
		items []string
		stock map[string]int
		want  bool
	}{
		{"all in stock", []string{"A", "B"}, map[string]int{"A": 1, "B": 3}, true},
		{"one zero", []string{"A", "B"}, map[string]int{"A": 1, "B": 0}, false},
		{"one missing", []string{"A", "B"}, map[string]int{"A": 1}, false},
		{"empty bundle", nil, map[string]int{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &catalog.Bundle{}
			for _, a := range tt.items {
				b.Items = append(b.Items, catalog.BundleItem{SupplierArticle: a})
			}
			DeriveAvailability(b, tt.stock)
			if b.InStock != tt.want {
				t.Errorf("InStock = %v, want %v", b.InStock, tt.want)
			}
		})
	}
}

func TestBundleRepository_CRUD(t *testing.T) {
	db := testdb.Open(t)
	products := productRepo.NewProductRepository(db)
	two := 2
	if err := products.Create(&catalog.Product{ID: 1, Title: "Кровать", SupplierArticle: "BED-1", StockQuantity: &two}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := products.Create(&catalog.Product{ID: 2, Title: "Тумба", SupplierArticle: "NS-1", StockQuantity: &two}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	r := NewBundleRepository(db, products)

	b := &catalog.Bundle{
		Name:  "Спальня Модерн",
		Price: "89900 ₽",
		Items: []catalog.BundleItem{
			{SupplierArticle: "BED-1", ProductName: "Кровать", Quantity: 1},
			{SupplierArticle: "NS-1", ProductName: "Тумба", Quantity: 2},
		},
	}
	if err := r.Create(b); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if b.ID == 0 {
		t.Fatal("Create did not assign id")
	}
	if !b.InStock {
		t.Error("new bundle should be in stock")
	}

	got, err := r.FindByID(b.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if len(got.Items) != 2 || got.Items[0].SupplierArticle != "BED-1" || got.Items[1].Quantity != 2 {
		t.Errorf("items = %+v", got.Items)
	}

	got.Items = append(got.Items, catalog.BundleItem{SupplierArticle: "GONE", ProductName: "Пуф"})
	if err := r.Update(got); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.InStock {
		t.Error("bundle with missing article should be out of stock")
	}
	reloaded, _ := r.FindByID(b.ID)
	if len(reloaded.Items) != 3 || reloaded.Items[2].Quantity != 1 {
		t.Errorf("reloaded items = %+v", reloaded.Items)
	}

	all, err := r.FindAll()
	if err != nil || len(all) != 1 {
		t.Fatalf("FindAll = %d, %v", len(all), err)
	}

	if err := r.Delete(b.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := r.FindByID(b.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("FindByID after delete err = %v, want ErrNotFound", err)
	}
	if err := r.Update(&catalog.Bundle{ID: 999, Name: "x"}); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("Update missing err = %v, want ErrNotFound", err)
	}
}
