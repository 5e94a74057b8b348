package models

import (
	"larana.GO/model/entity/catalog"
	"larana.GO/service/product"
)

type Product struct {
	ID              int32
	Slug            string
	Title           string
	Category        string
	Style           string
	Description     string
	Price           string
	PriceGrouped    string
	DiscountPrice   *string
	SupplierArticle *string
	StockQuantity   *int32
	InStock         bool
	IsNew           bool
	Image           string
	Images          []string
	Items           []string
	Colors          []string
	VariantGroupID  *string
	ColorVariant    *string

	group VariantSource
}

// VariantSource resolves the color-variant group of a product.
type VariantSource interface {
	Variants(id int) []catalog.Product
}

type Category struct {
	Name         string
	ProductCount int32
	InStockCount int32
}

type Bundle struct {
	ID          int32
	Name        string
	Type        string
	Color       string
	ImageURL    string
	Price       string
	Description string
	InStock     bool
	Items       []*BundleItem
}

type BundleItem struct {
	SupplierArticle string
	ProductName     string
	Quantity        int32
	InStock         bool
}

// FromProduct converts a catalog product for the schema. vs resolves the
// variants fields; with a nil vs the product is its own only variant.
func FromProduct(p catalog.Product, vs VariantSource) *Product {
	out := &Product{
		ID:              int32(p.ID),
		Slug:            p.Slug,
		Title:           p.Title,
		Category:        p.Category,
		Style:           p.Style,
		Description:     p.Description,
		Price:           p.Price,
		PriceGrouped:    product.FormatPriceGrouped(p.Price),
		DiscountPrice:   p.DiscountPrice,
		SupplierArticle: catalog.StringPtr(p.SupplierArticle),
		InStock:         p.InStock,
		IsNew:           p.IsNew,
		Image:           p.Image,
		Images:          nonNil(p.AllImages()),
		Items:           nonNil(p.Items),
		Colors:          nonNil(p.Colors),
		VariantGroupID:  p.VariantGroupID,
		ColorVariant:    p.ColorVariant,
		group:           vs,
	}
	if p.StockQuantity != nil {
		q := int32(*p.StockQuantity)
		out.StockQuantity = &q
	}
	return out
}

func (p *Product) variantGroup() []catalog.Product {
	if p.group != nil {
		if vs := p.group.Variants(int(p.ID)); len(vs) > 0 {
			return vs
		}
	}
	return []catalog.Product{p.catalogProduct()}
}

func (p *Product) catalogProduct() catalog.Product {
	return catalog.Product{ID: int(p.ID), Colors: p.Colors, ColorVariant: p.ColorVariant, VariantGroupID: p.VariantGroupID}
}

// Variants resolves the products of the same variant group, this one included.
func (p *Product) Variants() []*Product {
	group := p.variantGroup()
	out := make([]*Product, 0, len(group))
	for _, v := range group {
		if v.ID == int(p.ID) {
			out = append(out, p)
			continue
		}
		out = append(out, FromProduct(v, p.group))
	}
	return out
}

func (p *Product) HasVariants() bool {
	return len(p.variantGroup()) > 1
}

// AllColors resolves the colors offered across the variant group.
func (p *Product) AllColors() []string {
	return product.AllColors(p.catalogProduct(), p.variantGroup())
}

// FromBundle converts a bundle with derived availability for the schema.
func FromBundle(b catalog.Bundle) *Bundle {
	out := &Bundle{
		ID:          int32(b.ID),
		Name:        b.Name,
		Type:        b.Type,
		Color:       b.Color,
		ImageURL:    b.ImageURL,
		Price:       b.Price,
		Description: b.Description,
		InStock:     b.InStock,
		Items:       make([]*BundleItem, 0, len(b.Items)),
	}
	for _, it := range b.Items {
		out.Items = append(out.Items, &BundleItem{
			SupplierArticle: it.SupplierArticle,
			ProductName:     it.ProductName,
			Quantity:        int32(it.Quantity),
			InStock:         it.InStock != nil && *it.InStock,
		})
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
