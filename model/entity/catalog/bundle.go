package catalog

import "time"

// Bundle is a named kit sold as one offer.
type Bundle struct {
	ID          uint         `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name        string       `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Type        string       `gorm:"column:type;type:varchar(64)" json:"type"`
	Color       string       `gorm:"column:color;type:varchar(64)" json:"color"`
	ImageURL    string       `gorm:"column:image_url;type:text" json:"image_url"`
	Price       string       `gorm:"column:price;type:varchar(64)" json:"price"`
	Description string       `gorm:"column:description;type:text" json:"description"`
	InStock     bool         `gorm:"-" json:"in_stock"`
	Items       []BundleItem `gorm:"foreignKey:BundleID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt   time.Time    `gorm:"column:created_at" json:"-"`
	UpdatedAt   time.Time    `gorm:"column:updated_at" json:"-"`
}

func (Bundle) TableName() string {
	return "catalog_bundles"
}

// BundleItem is one constituent article of a bundle.
type BundleItem struct {
	ID              uint   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	BundleID        uint   `gorm:"column:bundle_id;index;not null" json:"-"`
	Position        int    `gorm:"column:position" json:"-"`
	SupplierArticle string `gorm:"column:supplier_article;type:varchar(128)" json:"supplier_article"`
	ProductName     string `gorm:"column:product_name;type:varchar(255)" json:"product_name"`
	Quantity        int    `gorm:"column:quantity;default:1" json:"quantity"`
	InStock         *bool  `gorm:"-" json:"in_stock,omitempty"`
}

func (BundleItem) TableName() string {
	return "catalog_bundle_items"
}
