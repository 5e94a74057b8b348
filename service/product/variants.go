package product

import (
	"strings"

	"larana.GO/model/entity/catalog"
)

// Variants returns the color-variant group of product id in catalog order: every
// product sharing its VariantGroupID, or the product alone when it has no group.
// The result is nil when id is unknown.
func (s *Store) Variants(id int) []catalog.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var current *catalog.Product
	for i := range s.products {
		if s.products[i].ID == id {
			current = &s.products[i]
			break
		}
	}
	if current == nil {
		return nil
	}
	group := groupKey(*current)
	if group == "" {
		return []catalog.Product{current.Clone()}
	}
	var out []catalog.Product
	for i := range s.products {
		if groupKey(s.products[i]) == group {
			out = append(out, s.products[i].Clone())
		}
	}
	return out
}

// AllColors lists the colors offered for current across its variant group. A
// single-product group offers the product's own colors; a larger group offers
// each distinct ColorVariant in group order.
func AllColors(current catalog.Product, variants []catalog.Product) []string {
	if len(variants) <= 1 {
		if current.Colors == nil {
			return []string{}
		}
		return append([]string(nil), current.Colors...)
	}
	out := []string{}
	seen := make(map[string]struct{}, len(variants))
	for _, v := range variants {
		if v.ColorVariant == nil {
			continue
		}
		c := strings.TrimSpace(*v.ColorVariant)
		if c == "" {
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

func groupKey(p catalog.Product) string {
	if p.VariantGroupID == nil {
		return ""
	}
	return strings.TrimSpace(*p.VariantGroupID)
}
