package product

import (
	"strings"

	"larana.GO/model/entity/catalog"
	"larana.GO/service/spreadsheet"
)

// Positional columns of the product import template.
const (
	colTitle = iota
	colCategory
	colPrice
	colStyle
	colDescription
	colImage
	colArticle
	colInStock
	colStockQty
	colItems
	colColors
	colVariantGroup
	colColorVariant
)

// ImportOptions configures a product import run.
type ImportOptions struct {
	PlaceholderImage string
}

// ImportProducts appends one new product per template row. Rows without a
// title, category or price are rejected, as are rows whose supplier article is
// already in the catalog or earlier in the file. Row 1 is the header.
func ImportProducts(store *Store, rows [][]string, opts ImportOptions) (*Result, error) {
	return store.ApplyBulkUpdate(func(products []catalog.Product) ([]catalog.Product, *Result) {
		return appendProductRows(products, rows, opts)
	})
}

func appendProductRows(products []catalog.Product, rows [][]string, opts ImportOptions) ([]catalog.Product, *Result) {
	res := newResult()
	seen := make(map[string]struct{}, len(products))
	for i := range products {
		if a := products[i].SupplierArticle; a != "" {
			seen[a] = struct{}{}
		}
	}
	id := nextID(products)

	for i, row := range dataRows(rows) {
		rowNum := i + 2
		if spreadsheet.IsBlank(row) {
			continue
		}
		res.TotalRows++
		title := spreadsheet.Cell(row, colTitle)
		category := spreadsheet.Cell(row, colCategory)
		price := spreadsheet.Cell(row, colPrice)
		article := spreadsheet.Cell(row, colArticle)
		key := article
		if key == "" {
			key = title
		}

		var missing []string
		if title == "" {
			missing = append(missing, "title")
		}
		if category == "" {
			missing = append(missing, "category")
		}
		if price == "" {
			missing = append(missing, "price")
		}
		if len(missing) > 0 {
			res.reject(rowNum, key, ReasonMissingRequired, strings.Join(missing, ", "))
			continue
		}
		if article != "" {
			if _, dup := seen[article]; dup {
				res.reject(rowNum, article, ReasonDuplicate, "")
				continue
			}
			seen[article] = struct{}{}
		}

		p := productFromRow(row, opts)
		p.ID = id
		id++
		products = append(products, p)
		res.Created++
		res.CreatedIDs = append(res.CreatedIDs, p.ID)
	}
	return products, res
}

func productFromRow(row []string, opts ImportOptions) catalog.Product {
	title := spreadsheet.Cell(row, colTitle)
	p := catalog.Product{
		Title:           title,
		Slug:            Slugify(title),
		Category:        NormalizeCategory(spreadsheet.Cell(row, colCategory)),
		Price:           RoundPrice(spreadsheet.Cell(row, colPrice)),
		Style:           spreadsheet.Cell(row, colStyle),
		Description:     spreadsheet.Cell(row, colDescription),
		Image:           spreadsheet.Cell(row, colImage),
		SupplierArticle: spreadsheet.Cell(row, colArticle),
		InStock:         parseYes(spreadsheet.Cell(row, colInStock)),
		Items:           splitList(spreadsheet.Cell(row, colItems)),
		Colors:          splitList(spreadsheet.Cell(row, colColors)),
		VariantGroupID:  catalog.StringPtr(spreadsheet.Cell(row, colVariantGroup)),
		ColorVariant:    catalog.StringPtr(spreadsheet.Cell(row, colColorVariant)),
	}
	if qty, ok := ParseStock(spreadsheet.Cell(row, colStockQty)); ok {
		p.SetStock(qty)
	}
	if p.Style == "" {
		p.Style = DefaultStyle
	}
	if p.Description == "" {
		p.Description = title
	}
	if clean := CleanImageURL(p.Image); clean != "" {
		p.Image = clean
		p.Images = []string{clean}
	} else {
		p.Image = opts.PlaceholderImage
	}
	return p
}

func parseYes(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "да", "yes", "1", "true":
		return true
	}
	return false
}

func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ";") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
