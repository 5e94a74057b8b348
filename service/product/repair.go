package product

import (
	"reflect"
	"strings"

	"larana.GO/model/entity/catalog"
)

// RepairProduct normalizes a stored product for the storefront: plural
// categories become singular, prices are rounded, image URLs are cleaned and
// the marketplace import note is dropped from the description. A price cell
// that holds a URL (a shifted spreadsheet column) is moved to the images.
func RepairProduct(p catalog.Product) catalog.Product {
	p = p.Clone()
	if p.SupplierArticle != "" && strings.HasPrefix(p.Price, "http") {
		if len(p.Images) == 0 {
			p.Images = []string{p.Price}
		}
		p.Image = p.Images[0]
		p.Price = DefaultPrice
	}

	category := p.Category
	if category == "" {
		category = DefaultCategory
	}
	p.Category = NormalizeCategory(category)
	if p.Price == "" {
		p.Price = DefaultPrice
	}
	p.Price = RoundPrice(p.Price)

	p.Image = CleanImageURL(p.Image)
	if imgs := SanitizeImages(p.Images); len(imgs) > 0 || p.Images != nil {
		p.Images = imgs
	}
	if len(p.Images) == 0 && p.Image != "" {
		p.Images = []string{p.Image}
	}
	if p.Image == "" && len(p.Images) > 0 {
		p.Image = p.Images[0]
	}

	desc := p.Description
	if desc == "" {
		desc = p.Title
	}
	p.Description = StripImportNote(desc)
	if p.Description == "" {
		p.Description = p.Title
	}
	if p.Items == nil {
		p.Items = []string{}
	}
	if p.Style == "" {
		p.Style = DefaultStyle
	}
	if p.Colors == nil {
		p.Colors = []string{DefaultColor}
	}
	return p
}

// RepairProducts repairs every product and reports how many changed.
func RepairProducts(products []catalog.Product) ([]catalog.Product, int) {
	out := make([]catalog.Product, len(products))
	changed := 0
	for i := range products {
		out[i] = RepairProduct(products[i])
		if !reflect.DeepEqual(out[i], products[i]) {
			changed++
		}
	}
	return out, changed
}

// Repair rewrites the catalog through RepairProducts and persists it when
// anything changed.
func (s *Store) Repair() (int, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	next, changed := RepairProducts(s.Snapshot())
	if changed == 0 {
		return 0, nil
	}
	if err := s.commit(next); err != nil {
		return 0, err
	}
	return changed, nil
}
