package product

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"larana.GO/model/entity/catalog"
	"larana.GO/service/spreadsheet"
)

// Template kinds served for download.
const (
	TemplatePrices   = "prices"
	TemplateStock    = "stock"
	TemplateProducts = "products"
	TemplateImages   = "images"
)

// ErrUnknownTemplate is returned for an unsupported template kind.
var ErrUnknownTemplate = fmt.Errorf("unknown template")

// ProductHeaders are the columns of the product import template and catalog export.
var ProductHeaders = []string{
	"Название",
	"Категория",
	"Цена (₽)",
	"Стиль",
	"Описание",
	"Ссылка на изображение",
	"Артикул поставщика",
	"В наличии (да/нет)",
	"Количество на складе",
	"Состав комплекта (через ;)",
	"Цвета (через ;)",
	"ID группы вариантов",
	"Цвет варианта",
}

var productWidths = []float64{25, 12, 10, 15, 50, 40, 20, 15, 20, 40, 30, 20, 15}

// Template builds the sample workbook for kind. The images template is filled
// from the first products of the catalog.
func Template(kind string, products []catalog.Product) (spreadsheet.File, error) {
	switch kind {
	case TemplatePrices:
		return PriceTemplate()
	case TemplateStock:
		return StockTemplate()
	case TemplateProducts:
		return ProductImportTemplate()
	case TemplateImages:
		return ImageTemplate(products)
	default:
		return spreadsheet.File{}, fmt.Errorf("%w %q", ErrUnknownTemplate, kind)
	}
}

func PriceTemplate() (spreadsheet.File, error) {
	rows := [][]string{
		{"Артикул поставщика", "Цена"},
		{"ART-001", "25900"},
		{"ART-002", "38900"},
		{"ART-003", "57900"},
	}
	return spreadsheet.Build("образец_обновления_цен.xlsx", "Образец", spreadsheet.StringRows(rows), []float64{25, 12})
}

func StockTemplate() (spreadsheet.File, error) {
	rows := [][]string{
		{"Артикул поставщика", "Количество на складе"},
		{"ART-001", "15"},
		{"ART-002", "8"},
		{"ART-003", "0"},
		{"ART-004", "23"},
	}
	return spreadsheet.Build("образец_обновления_остатков.xlsx", "Остатки", spreadsheet.StringRows(rows), []float64{25, 22})
}

func ProductImportTemplate() (spreadsheet.File, error) {
	rows := [][]string{
		ProductHeaders,
		{
			`Спальня "Модерн"`, "Спальня", "45900", "Современный",
			"Элегантная спальня в современном стиле с минималистичным дизайном",
			"https://cdn.poehali.dev/files/example-image.jpg", "ART-BEDROOM-001", "да", "5",
			"Кровать 160;Тумбы прикроватные 2 шт;Комод", "Белый;Дуб натуральный;Графит", "", "",
		},
		{
			`Диван "Комфорт" (серый)`, "Диваны", "35900", "Современный",
			"Удобный трёхместный диван с механизмом еврокнижка",
			"https://cdn.poehali.dev/files/sofa-grey.jpg", "ART-SOFA-004", "да", "3",
			"Каркас;Механизм трансформации;Ящик для белья", "Серый", "sofa-comfort-001", "Серый",
		},
		{
			`Диван "Комфорт" (бежевый)`, "Диваны", "35900", "Современный",
			"Удобный трёхместный диван с механизмом еврокнижка",
			"https://cdn.poehali.dev/files/sofa-beige.jpg", "ART-SOFA-005", "да", "5",
			"Каркас;Механизм трансформации;Ящик для белья", "Бежевый", "sofa-comfort-001", "Бежевый",
		},
		{
			`Шкаф-купе "Премиум 2Д"`, "Шкафы", "22900", "Классический",
			"Вместительный двухдверный шкаф-купе с зеркалом",
			"https://cdn.poehali.dev/files/wardrobe.jpg", "ART-WARD-003", "да", "12",
			"Корпус;Двери 2 шт;Зеркало;Внутренние полки", "Венге;Дуб сонома", "", "",
		},
	}
	return spreadsheet.Build("образец_импорта_товаров.xlsx", "Товары", spreadsheet.StringRows(rows), productWidths)
}

// ImageTemplate lists the first three products with their current primary image
// and empty slots for more.
func ImageTemplate(products []catalog.Product) (spreadsheet.File, error) {
	headers := []string{"Название", "Артикул поставщика", "Изображение 1", "Изображение 2", "Изображение 3", "Изображение 4", "Изображение 5"}
	if len(products) > 3 {
		products = products[:3]
	}
	records := make([]map[string]interface{}, 0, len(products))
	for _, p := range products {
		first := p.Image
		if len(p.Images) > 0 {
			first = p.Images[0]
		}
		records = append(records, map[string]interface{}{
			"Название":           p.Title,
			"Артикул поставщика": p.SupplierArticle,
			"Изображение 1":      first,
		})
	}
	return buildRecords("шаблон_импорт_картинок.xlsx", "Картинки", headers, records, []float64{30, 20, 60, 60, 60, 60, 60})
}

// ExportCatalog writes the catalog with the product import headers so the file
// can be edited and imported again.
func ExportCatalog(products []catalog.Product, now time.Time) (spreadsheet.File, error) {
	records := make([]map[string]interface{}, 0, len(products))
	for _, p := range products {
		inStock := "нет"
		if p.InStock {
			inStock = "да"
		}
		qty := ""
		if p.StockQuantity != nil {
			qty = strconv.Itoa(*p.StockQuantity)
		}
		records = append(records, map[string]interface{}{
			ProductHeaders[colTitle]:        p.Title,
			ProductHeaders[colCategory]:     p.Category,
			ProductHeaders[colPrice]:        PriceValue(p.Price).String(),
			ProductHeaders[colStyle]:        p.Style,
			ProductHeaders[colDescription]:  p.Description,
			ProductHeaders[colImage]:        p.Image,
			ProductHeaders[colArticle]:      p.SupplierArticle,
			ProductHeaders[colInStock]:      inStock,
			ProductHeaders[colStockQty]:     qty,
			ProductHeaders[colItems]:        strings.Join(p.Items, ";"),
			ProductHeaders[colColors]:       strings.Join(p.Colors, ";"),
			ProductHeaders[colVariantGroup]: deref(p.VariantGroupID),
			ProductHeaders[colColorVariant]: deref(p.ColorVariant),
		})
	}
	name := fmt.Sprintf("каталог_товаров_%s.xlsx", now.Format("2006-01-02"))
	return buildRecords(name, "Каталог", ProductHeaders, records, productWidths)
}

func buildRecords(name, sheet string, headers []string, records []map[string]interface{}, widths []float64) (spreadsheet.File, error) {
	wb, err := spreadsheet.NewWorkbook()
	if err != nil {
		return spreadsheet.File{}, err
	}
	defer wb.Close()
	if err := wb.WriteRecords(sheet, headers, records, widths); err != nil {
		return spreadsheet.File{}, err
	}
	data, err := wb.Bytes()
	if err != nil {
		return spreadsheet.File{}, err
	}
	return spreadsheet.File{Name: name, Data: data}, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
