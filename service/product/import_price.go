package product

import (
	"larana.GO/model/entity/catalog"
	"larana.GO/service/spreadsheet"
)

// ColumnOptions selects the key and value columns by letter.
type ColumnOptions struct {
	ArticleColumn string
	ValueColumn   string
}

func (o ColumnOptions) indexes() (key, value int, err error) {
	if o.ArticleColumn == "" {
		o.ArticleColumn = "A"
	}
	if o.ValueColumn == "" {
		o.ValueColumn = "B"
	}
	if key, err = spreadsheet.ColumnIndex(o.ArticleColumn); err != nil {
		return 0, 0, err
	}
	if value, err = spreadsheet.ColumnIndex(o.ValueColumn); err != nil {
		return 0, 0, err
	}
	return key, value, nil
}

// UpdatePrices overwrites the price of every product whose supplier article
// matches a row. Row 1 is the header.
func UpdatePrices(store *Store, rows [][]string, opts ColumnOptions) (*Result, error) {
	keyCol, valCol, err := opts.indexes()
	if err != nil {
		return nil, err
	}
	return store.ApplyBulkUpdate(func(products []catalog.Product) ([]catalog.Product, *Result) {
		return products, applyPriceRows(products, rows, keyCol, valCol)
	})
}

func applyPriceRows(products []catalog.Product, rows [][]string, keyCol, valCol int) *Result {
	res := newResult()
	index := articleIndex(products)
	for i, row := range dataRows(rows) {
		rowNum := i + 2
		if spreadsheet.IsBlank(row) {
			continue
		}
		res.TotalRows++
		article := spreadsheet.Cell(row, keyCol)
		raw := spreadsheet.Cell(row, valCol)
		if article == "" {
			res.reject(rowNum, "", ReasonEmptyKey, "")
			continue
		}
		if raw == "" {
			res.reject(rowNum, article, ReasonEmptyValue, "")
			continue
		}
		price, ok := ParsePrice(raw)
		if !ok {
			res.reject(rowNum, article, ReasonInvalidNumber, raw)
			continue
		}
		pi, ok := index[article]
		if !ok {
			res.reject(rowNum, article, ReasonNotFound, "")
			continue
		}
		products[pi].Price = price.String() + CurrencySuffix
		res.Updated++
	}
	return res
}

// articleIndex maps each supplier article to its first product.
func articleIndex(products []catalog.Product) map[string]int {
	index := make(map[string]int, len(products))
	for i := range products {
		a := products[i].SupplierArticle
		if a == "" {
			continue
		}
		if _, ok := index[a]; !ok {
			index[a] = i
		}
	}
	return index
}

func dataRows(rows [][]string) [][]string {
	if len(rows) <= 1 {
		return nil
	}
	return rows[1:]
}
