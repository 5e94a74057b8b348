package bundle

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"larana.GO/model/entity/catalog"
	"larana.GO/model/repository"
)

// StockLookup resolves supplier articles to stock quantities. Missing articles are absent from the map.
type StockLookup interface {
	FindStockByArticles(articles []string) (map[string]int, error)
}

type BundleRepository struct {
	db    *gorm.DB
	stock StockLookup
}

func NewBundleRepository(db *gorm.DB, stock StockLookup) *BundleRepository {
	return &BundleRepository{db: db, stock: stock}
}

func (r *BundleRepository) itemsOrdered(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC, id ASC")
}

// FindAll returns bundles with items and derived availability.
func (r *BundleRepository) FindAll() ([]catalog.Bundle, error) {
	var bundles []catalog.Bundle
	if err := r.db.Preload("Items", r.itemsOrdered).Order("id ASC").Find(&bundles).Error; err != nil {
		return nil, fmt.Errorf("find bundles: %w", err)
	}
	for i := range bundles {
		if err := r.Availability(&bundles[i]); err != nil {
			return nil, err
		}
	}
	return bundles, nil
}

func (r *BundleRepository) FindByID(id uint) (*catalog.Bundle, error) {
	var b catalog.Bundle
	err := r.db.Preload("Items", r.itemsOrdered).First(&b, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find bundle %d: %w", id, err)
	}
	if err := r.Availability(&b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BundleRepository) Create(b *catalog.Bundle) error {
	numberItems(b)
	if err := r.db.Create(b).Error; err != nil {
		return fmt.Errorf("create bundle: %w", err)
	}
	return r.Availability(b)
}

// Update overwrites the bundle fields and replaces its items.
func (r *BundleRepository) Update(b *catalog.Bundle) error {
	numberItems(b)
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&catalog.Bundle{}).Where("id = ?", b.ID).Omit(clause.Associations).
			Select("name", "type", "color", "image_url", "price", "description").
			Updates(b)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return repository.ErrNotFound
		}
		if err := tx.Where("bundle_id = ?", b.ID).Delete(&catalog.BundleItem{}).Error; err != nil {
			return err
		}
		for i := range b.Items {
			b.Items[i].ID = 0
			b.Items[i].BundleID = b.ID
		}
		if len(b.Items) > 0 {
			return tx.Create(&b.Items).Error
		}
		return nil
	})
	if errors.Is(err, repository.ErrNotFound) {
		return err
	}
	if err != nil {
		return fmt.Errorf("update bundle %d: %w", b.ID, err)
	}
	return r.Availability(b)
}

func (r *BundleRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("bundle_id = ?", id).Delete(&catalog.BundleItem{}).Error; err != nil {
			return fmt.Errorf("delete bundle items %d: %w", id, err)
		}
		res := tx.Delete(&catalog.Bundle{}, "id = ?", id)
		if res.Error != nil {
			return fmt.Errorf("delete bundle %d: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return repository.ErrNotFound
		}
		return nil
	})
}

// Availability sets InStock on the bundle and on each item from current catalog stock.
func (r *BundleRepository) Availability(b *catalog.Bundle) error {
	articles := make([]string, 0, len(b.Items))
	for _, it := range b.Items {
		articles = append(articles, it.SupplierArticle)
	}
	stock, err := r.stock.FindStockByArticles(articles)
	if err != nil {
		return fmt.Errorf("bundle %d availability: %w", b.ID, err)
	}
	DeriveAvailability(b, stock)
	return nil
}

// DeriveAvailability marks a bundle in stock only when every article exists with a positive quantity.
// A bundle without items is not in stock.
func DeriveAvailability(b *catalog.Bundle, stock map[string]int) {
	b.InStock = len(b.Items) > 0
	for i := range b.Items {
		qty, ok := stock[b.Items[i].SupplierArticle]
		available := ok && qty > 0
		b.Items[i].InStock = &available
		if !available {
			b.InStock = false
		}
	}
}

func numberItems(b *catalog.Bundle) {
	for i := range b.Items {
		b.Items[i].Position = i
		if b.Items[i].Quantity <= 0 {
			b.Items[i].Quantity = 1
		}
	}
}
