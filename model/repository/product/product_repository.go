package product

import (
	"fmt"
	"sync"

	"gorm.io/gorm"

	"larana.GO/model/entity/catalog"
	"larana.GO/model/repository"
)

const replaceBatchSize = 200

type ProductRepository struct {
	db *gorm.DB
}

var (
	instances   = make(map[*gorm.DB]*ProductRepository)
	instancesMu sync.Mutex
)

// GetProductRepository returns one repository per *gorm.DB.
func GetProductRepository(db *gorm.DB) *ProductRepository {
	instancesMu.Lock()
	defer instancesMu.Unlock()
	if r, ok := instances[db]; ok {
		return r
	}
	r := NewProductRepository(db)
	instances[db] = r
	return r
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// FindAll returns every product ordered by id.
func (r *ProductRepository) FindAll() ([]catalog.Product, error) {
	var products []catalog.Product
	if err := r.db.Order("id ASC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}
	return products, nil
}

// Create inserts a single product row.
func (r *ProductRepository) Create(p *catalog.Product) error {
	if err := r.db.Create(p).Error; err != nil {
		return fmt.Errorf("create product %d: %w", p.ID, err)
	}
	return nil
}

// Update overwrites every column except created_at; ErrNotFound when the row is gone.
func (r *ProductRepository) Update(p *catalog.Product) error {
	res := r.db.Model(&catalog.Product{}).Where("id = ?", p.ID).Select("*").Omit("created_at").Updates(p)
	if res.Error != nil {
		return fmt.Errorf("update product %d: %w", p.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ProductRepository) Delete(id int) error {
	res := r.db.Delete(&catalog.Product{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete product %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// ReplaceAll rewrites the whole catalog in one transaction.
func (r *ProductRepository) ReplaceAll(products []catalog.Product) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&catalog.Product{}).Error; err != nil {
			return fmt.Errorf("clear products: %w", err)
		}
		if len(products) == 0 {
			return nil
		}
		rows := catalog.CloneProducts(products)
		if err := tx.CreateInBatches(&rows, replaceBatchSize).Error; err != nil {
			return fmt.Errorf("insert products: %w", err)
		}
		return nil
	})
}
