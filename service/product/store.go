package product

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"larana.GO/model/entity/catalog"
	"larana.GO/model/repository"
)

// Repository persists the catalog. Batch mutations rewrite the full list;
// single-product edits go through the row-level methods.
type Repository interface {
	FindAll() ([]catalog.Product, error)
	ReplaceAll(products []catalog.Product) error
	Create(p *catalog.Product) error
	Update(p *catalog.Product) error
	Delete(id int) error
}

// Store is the in-memory catalog with a single mutation path. Every mutation
// works on a copy, persists it through the repository and only then swaps it in,
// so a failed write leaves the catalog unchanged. Concurrent mutations are
// serialized; the last writer wins.
type Store struct {
	mu       sync.RWMutex
	writeMu  sync.Mutex
	products []catalog.Product
	version  uint64
	repo     Repository
	log      *zap.Logger

	hooksMu  sync.Mutex
	onChange []func()
}

func NewStore(repo Repository, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{repo: repo, log: log}
}

// Load replaces the in-memory catalog with the persisted one.
func (s *Store) Load() error {
	products, err := s.repo.FindAll()
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	s.mu.Lock()
	s.products = products
	s.mu.Unlock()
	s.log.Info("catalog loaded", zap.Int("products", len(products)))
	return nil
}

// OnChange registers fn to run after every successful mutation.
func (s *Store) OnChange(fn func()) {
	s.hooksMu.Lock()
	s.onChange = append(s.onChange, fn)
	s.hooksMu.Unlock()
}

// Snapshot returns a deep copy of the catalog.
func (s *Store) Snapshot() []catalog.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return catalog.CloneProducts(s.products)
}

// Version counts committed mutations. It only grows.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// VersionedSnapshot returns a deep copy of the catalog with the version it was taken at.
func (s *Store) VersionedSnapshot() ([]catalog.Product, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return catalog.CloneProducts(s.products), s.version
}

// Len returns the number of products.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.products)
}

// Get returns a copy of the product with id.
func (s *Store) Get(id int) (catalog.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.products {
		if s.products[i].ID == id {
			return s.products[i].Clone(), true
		}
	}
	return catalog.Product{}, false
}

// FindByArticle returns the first product with the supplier article.
func (s *Store) FindByArticle(article string) (catalog.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.products {
		if article != "" && s.products[i].SupplierArticle == article {
			return s.products[i].Clone(), true
		}
	}
	return catalog.Product{}, false
}

// Articles returns the set of non-empty supplier articles.
func (s *Store) Articles() map[string]struct{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]struct{}, len(s.products))
	for i := range s.products {
		if a := s.products[i].SupplierArticle; a != "" {
			out[a] = struct{}{}
		}
	}
	return out
}

// FindStockByArticles resolves articles against in-memory stock; nil quantities count as 0.
func (s *Store) FindStockByArticles(articles []string) (map[string]int, error) {
	want := make(map[string]struct{}, len(articles))
	for _, a := range articles {
		want[a] = struct{}{}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]int, len(articles))
	for i := range s.products {
		p := &s.products[i]
		if _, ok := want[p.SupplierArticle]; !ok {
			continue
		}
		qty := 0
		if p.StockQuantity != nil {
			qty = *p.StockQuantity
		}
		if prev, seen := out[p.SupplierArticle]; !seen || qty > prev {
			out[p.SupplierArticle] = qty
		}
	}
	return out, nil
}

// NextID returns max(existing ids)+1.
func (s *Store) NextID() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return nextID(s.products)
}

func nextID(products []catalog.Product) int {
	max := 0
	for i := range products {
		if products[i].ID > max {
			max = products[i].ID
		}
	}
	return max + 1
}

// UpdateFunc mutates a private copy of the catalog and returns the new list.
type UpdateFunc func(products []catalog.Product) ([]catalog.Product, *Result)

// ApplyBulkUpdate runs fn on a copy of the catalog and commits the copy when
// fn applied at least one row.
func (s *Store) ApplyBulkUpdate(fn UpdateFunc) (*Result, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	work := s.Snapshot()
	next, res := fn(work)
	if res.Applied() == 0 {
		return res, nil
	}
	if err := s.commit(next); err != nil {
		return res, err
	}
	return res, nil
}

// MergeImported appends new products, assigning ids from max+1. Products whose
// supplier article already exists in the catalog, or appeared earlier in the
// same batch, are not added and are returned as duplicates.
func (s *Store) MergeImported(items []catalog.Product) (created []catalog.Product, duplicates []catalog.Product, err error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	work := s.Snapshot()
	seen := make(map[string]struct{}, len(work)+len(items))
	for i := range work {
		if a := work[i].SupplierArticle; a != "" {
			seen[a] = struct{}{}
		}
	}
	id := nextID(work)
	for _, p := range items {
		if a := p.SupplierArticle; a != "" {
			if _, dup := seen[a]; dup {
				duplicates = append(duplicates, p)
				continue
			}
			seen[a] = struct{}{}
		}
		p = p.Clone()
		p.ID = id
		id++
		work = append(work, p)
		created = append(created, p)
	}
	if len(created) == 0 {
		return nil, duplicates, nil
	}
	if err := s.commit(work); err != nil {
		return nil, duplicates, err
	}
	return created, duplicates, nil
}

// Upsert replaces the product with p.ID, or creates it with a new id when p.ID is 0
// or unknown.
func (s *Store) Upsert(p catalog.Product) (catalog.Product, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	work := s.Snapshot()
	if p.Slug == "" {
		p.Slug = Slugify(p.Title)
	}
	replaced := false
	if p.ID != 0 {
		for i := range work {
			if work[i].ID == p.ID {
				p.CreatedAt = work[i].CreatedAt
				work[i] = p.Clone()
				replaced = true
				break
			}
		}
	}
	if !replaced {
		if p.ID == 0 {
			p.ID = nextID(work)
		}
		work = append(work, p.Clone())
	}
	row := p.Clone()
	write := func() error { return s.repo.Create(&row) }
	if replaced {
		write = func() error { return s.repo.Update(&row) }
	}
	if err := s.commitWith(work, write); err != nil {
		return catalog.Product{}, err
	}
	return p, nil
}

// Delete removes the product with id.
func (s *Store) Delete(id int) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	work := s.Snapshot()
	out := work[:0]
	found := false
	for _, p := range work {
		if p.ID == id {
			found = true
			continue
		}
		out = append(out, p)
	}
	if !found {
		return repository.ErrNotFound
	}
	return s.commitWith(out, func() error { return s.repo.Delete(id) })
}

// Persist writes the current catalog again.
func (s *Store) Persist() error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.commit(s.Snapshot())
}

func (s *Store) commit(next []catalog.Product) error {
	return s.commitWith(next, func() error { return s.repo.ReplaceAll(next) })
}

// commitWith runs write and, when it succeeds, swaps next in and fires the hooks.
func (s *Store) commitWith(next []catalog.Product, write func() error) error {
	if err := write(); err != nil {
		s.log.Error("persist catalog", zap.Error(err))
		return fmt.Errorf("persist catalog: %w", err)
	}
	s.mu.Lock()
	s.products = next
	s.version++
	s.mu.Unlock()

	s.hooksMu.Lock()
	hooks := append([]func(){}, s.onChange...)
	s.hooksMu.Unlock()
	for _, fn := range hooks {
		fn()
	}
	return nil
}
