package product

import (
	"fmt"

	"larana.GO/model/entity/catalog"
	"larana.GO/service/spreadsheet"
)

// MaxImageColumns is the number of "Изображение N" columns read per row.
const MaxImageColumns = 20

var (
	titleKeys   = []string{"Название", "title"}
	articleKeys = []string{"Артикул", "Артикул поставщика", "supplierArticle"}
	imageKeys   = buildImageKeys()
)

func buildImageKeys() [][]string {
	keys := make([][]string, MaxImageColumns)
	for i := range keys {
		n := i + 1
		keys[i] = []string{
			fmt.Sprintf("Изображение %d", n),
			fmt.Sprintf("Image %d", n),
			fmt.Sprintf("image%d", n),
		}
	}
	return keys
}

// ImportImages adds image URLs from header-named records to matching products.
// A row matches by supplier article when both sides carry one, otherwise by
// exact title. New URLs are sanitized and merged after the existing ones.
func ImportImages(store *Store, records []spreadsheet.Record) (*Result, error) {
	return store.ApplyBulkUpdate(func(products []catalog.Product) ([]catalog.Product, *Result) {
		return products, applyImageRecords(products, records)
	})
}

func applyImageRecords(products []catalog.Product, records []spreadsheet.Record) *Result {
	res := newResult()
	for _, rec := range records {
		res.TotalRows++
		title := rec.Get(titleKeys...)
		article := rec.Get(articleKeys...)
		key := article
		if key == "" {
			key = title
		}
		if title == "" && article == "" {
			res.reject(rec.Row, "", ReasonEmptyKey, "")
			continue
		}
		urls := make([]string, 0, len(imageKeys))
		for _, keys := range imageKeys {
			if v := rec.Get(keys...); v != "" {
				urls = append(urls, v)
			}
		}
		images := SanitizeImages(urls)
		if len(images) == 0 {
			res.reject(rec.Row, key, ReasonNoImages, "")
			continue
		}
		pi := matchProduct(products, article, title)
		if pi < 0 {
			res.reject(rec.Row, key, ReasonNotFound, "")
			continue
		}
		p := &products[pi]
		existing := SanitizeImages(p.AllImages())
		combined := UnionImages(existing, images)
		res.NewImages += len(combined) - len(existing)
		p.Images = combined
		if p.Image == "" {
			p.Image = combined[0]
		}
		res.Updated++
	}
	return res
}

// matchProduct returns the index of the first product matching the row, or -1.
func matchProduct(products []catalog.Product, article, title string) int {
	for i := range products {
		p := &products[i]
		if article != "" && p.SupplierArticle != "" {
			if p.SupplierArticle == article {
				return i
			}
			continue
		}
		if title != "" && p.Title == title {
			return i
		}
	}
	return -1
}
