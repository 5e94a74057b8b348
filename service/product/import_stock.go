package product

import (
	"larana.GO/model/entity/catalog"
	"larana.GO/service/spreadsheet"
)

// UpdateStock overwrites the stock quantity of every product whose supplier
// article matches a row and derives InStock from it. Row 1 is the header.
func UpdateStock(store *Store, rows [][]string, opts ColumnOptions) (*Result, error) {
	keyCol, valCol, err := opts.indexes()
	if err != nil {
		return nil, err
	}
	return store.ApplyBulkUpdate(func(products []catalog.Product) ([]catalog.Product, *Result) {
		return products, applyStockRows(products, rows, keyCol, valCol)
	})
}

func applyStockRows(products []catalog.Product, rows [][]string, keyCol, valCol int) *Result {
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
		qty, ok := ParseStock(raw)
		if !ok {
			res.reject(rowNum, article, ReasonInvalidNumber, raw)
			continue
		}
		pi, ok := index[article]
		if !ok {
			res.reject(rowNum, article, ReasonNotFound, "")
			continue
		}
		products[pi].SetStock(qty)
		res.Updated++
	}
	return res
}
