package product

import (
	"errors"
	"sync"
	"testing"

	"larana.GO/model/entity/catalog"
	"larana.GO/model/repository"
)

var errWriteFailed = errors.New("write failed")

// memRepo is an in-memory Repository that can be told to fail writes.
type memRepo struct {
	mu       sync.Mutex
	products []catalog.Product
	writes   int
	rowOps   []string
	failNext bool
}

func (r *memRepo) FindAll() ([]catalog.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return catalog.CloneProducts(r.products), nil
}

func (r *memRepo) ReplaceAll(products []catalog.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failNext {
		r.failNext = false
		return errWriteFailed
	}
	r.writes++
	r.products = catalog.CloneProducts(products)
	return nil
}

func (r *memRepo) Create(p *catalog.Product) error {
	return r.row("create", func() error {
		r.products = append(r.products, p.Clone())
		return nil
	})
}

func (r *memRepo) Update(p *catalog.Product) error {
	return r.row("update", func() error {
		for i := range r.products {
			if r.products[i].ID == p.ID {
				r.products[i] = p.Clone()
				return nil
			}
		}
		return repository.ErrNotFound
	})
}

func (r *memRepo) Delete(id int) error {
	return r.row("delete", func() error {
		for i := range r.products {
			if r.products[i].ID == id {
				r.products = append(r.products[:i], r.products[i+1:]...)
				return nil
			}
		}
		return repository.ErrNotFound
	})
}

func (r *memRepo) row(op string, fn func() error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failNext {
		r.failNext = false
		return errWriteFailed
	}
	if err := fn(); err != nil {
		return err
	}
	r.writes++
	r.rowOps = append(r.rowOps, op)
	return nil
}

func newTestStore(t *testing.T, products ...catalog.Product) (*Store, *memRepo) {
	t.Helper()
	repo := &memRepo{products: products}
	s := NewStore(repo, nil)
	if err := s.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return s, repo
}

func sampleProducts() []catalog.Product {
	qty := 3
	return []catalog.Product{
		{ID: 1, Title: `Диван "Комфорт"`, Category: "Гостиная", Price: "35900 ₽", SupplierArticle: "ART-001", StockQuantity: &qty, InStock: true, Image: "https://cdn.example.com/sofa.jpg", Images: []string{"https://cdn.example.com/sofa.jpg"}},
		{ID: 2, Title: "Кровать Лагуна 160", Category: "Спальня", Price: "45900 ₽", SupplierArticle: "ART-002"},
		{ID: 5, Title: "Шкаф-купе", Category: "Прихожая", Price: "22900 ₽", SupplierArticle: "ART-003"},
		{ID: 7, Title: "Тумба без артикула", Category: "Прихожая", Price: "5900 ₽"},
	}
}

func find(t *testing.T, products []catalog.Product, article string) catalog.Product {
	t.Helper()
	for _, p := range products {
		if p.SupplierArticle == article {
			return p
		}
	}
	t.Fatalf("product %q not found", article)
	return catalog.Product{}
}
