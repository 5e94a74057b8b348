package catalog

import (
	"time"

	"gorm.io/datatypes"
)

// Product is one storefront catalog entry. Price is a display string ("25900 ₽").
type Product struct {
	ID              int                         `gorm:"column:id;primaryKey;autoIncrement:false" json:"id"`
	Slug            string                      `gorm:"column:slug;type:varchar(255);index" json:"slug,omitempty"`
	Title           string                      `gorm:"column:title;type:varchar(255);not null" json:"title"`
	Category        string                      `gorm:"column:category;type:varchar(64);index" json:"category"`
	Style           string                      `gorm:"column:style;type:varchar(64)" json:"style"`
	Description     string                      `gorm:"column:description;type:text" json:"description"`
	Price           string                      `gorm:"column:price;type:varchar(64)" json:"price"`
	DiscountPrice   *string                     `gorm:"column:discount_price;type:varchar(64)" json:"discountPrice,omitempty"`
	SupplierArticle string                      `gorm:"column:supplier_article;type:varchar(128);index" json:"supplierArticle,omitempty"`
	StockQuantity   *int                        `gorm:"column:stock_quantity" json:"stockQuantity"`
	InStock         bool                        `gorm:"column:in_stock" json:"inStock"`
	IsNew           bool                        `gorm:"column:is_new" json:"isNew,omitempty"`
	Image           string                      `gorm:"column:image;type:text" json:"image"`
	Images          datatypes.JSONSlice[string] `gorm:"column:images" json:"images,omitempty"`
	Items           datatypes.JSONSlice[string] `gorm:"column:items" json:"items"`
	Colors          datatypes.JSONSlice[string] `gorm:"column:colors" json:"colors"`
	VariantGroupID  *string                     `gorm:"column:variant_group_id;type:varchar(128);index" json:"variantGroupId,omitempty"`
	ColorVariant    *string                     `gorm:"column:color_variant;type:varchar(128)" json:"colorVariant,omitempty"`
	CreatedAt       time.Time                   `gorm:"column:created_at" json:"-"`
	UpdatedAt       time.Time                   `gorm:"column:updated_at" json:"-"`
}

func (Product) TableName() string {
	return "catalog_products"
}

// SetStock writes the quantity and derives InStock from it.
func (p *Product) SetStock(qty int) {
	p.StockQuantity = &qty
	p.InStock = qty > 0
}

// AllImages returns Images, or the primary Image alone when Images is empty.
func (p *Product) AllImages() []string {
	if len(p.Images) > 0 {
		return append([]string(nil), p.Images...)
	}
	if p.Image != "" {
		return []string{p.Image}
	}
	return nil
}

// Clone returns a deep copy safe to mutate independently.
func (p Product) Clone() Product {
	out := p
	out.DiscountPrice = cloneString(p.DiscountPrice)
	out.VariantGroupID = cloneString(p.VariantGroupID)
	out.ColorVariant = cloneString(p.ColorVariant)
	if p.StockQuantity != nil {
		q := *p.StockQuantity
		out.StockQuantity = &q
	}
	out.Images = cloneSlice(p.Images)
	out.Items = cloneSlice(p.Items)
	out.Colors = cloneSlice(p.Colors)
	return out
}

// CloneProducts deep-copies a product list.
func CloneProducts(in []Product) []Product {
	out := make([]Product, len(in))
	for i := range in {
		out[i] = in[i].Clone()
	}
	return out
}

// StringPtr returns nil for an empty string, otherwise a pointer to a copy.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneSlice(s datatypes.JSONSlice[string]) datatypes.JSONSlice[string] {
	if s == nil {
		return nil
	}
	return append(datatypes.JSONSlice[string]{}, s...)
}
