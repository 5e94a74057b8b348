package product

import (
	"testing"

	"larana.GO/model/entity/catalog"
)

func ozonRecord() map[string]interface{} {
	return map[string]interface{}{
		"offer_id":     "OZ-100",
		"name":         "Угловой диван Палермо",
		"price":        "25990.0000",
		"images":       []interface{}{"https://cdn.ozon.ru/1.jpg", "https://cdn.ozon.ru/1.jpg", "broken"},
		"description":  "",
		"color":        "серый",
		"modelName":    "palermo",
		"ozonCategory": "",
		"stocks":       map[string]interface{}{"present": 4.0},
	}
}

func TestMapper_DefaultOzonMappings(t *testing.T) {
	m := Mapper{PlaceholderImage: "https://cdn/placeholder.jpg", MarkImported: true}
	p := m.Map(ozonRecord(), DefaultOzonMappings())

	if p.SupplierArticle != "OZ-100" {
		t.Errorf("SupplierArticle = %q, want OZ-100", p.SupplierArticle)
	}
	if p.Price != "25990 ₽" {
		t.Errorf("Price = %q, want 25990 ₽", p.Price)
	}
	if p.Category != "Гостиная" {
		t.Errorf("Category = %q, want Гостиная", p.Category)
	}
	if len(p.Images) != 1 || p.Image != "https://cdn.ozon.ru/1.jpg" {
		t.Errorf("Images = %v, Image = %q", p.Images, p.Image)
	}
	if len(p.Colors) != 1 || p.Colors[0] != "серый" {
		t.Errorf("Colors = %v, want [серый]", p.Colors)
	}
	if p.ColorVariant == nil || *p.ColorVariant != "серый" {
		t.Errorf("ColorVariant = %v, want серый", p.ColorVariant)
	}
	if p.VariantGroupID == nil || *p.VariantGroupID != "palermo" {
		t.Errorf("VariantGroupID = %v, want palermo", p.VariantGroupID)
	}
	if p.StockQuantity == nil || *p.StockQuantity != 4 || !p.InStock {
		t.Errorf("stock = %v inStock=%v, want 4 true", p.StockQuantity, p.InStock)
	}
	if p.Description != "Угловой диван Палермо. "+ImportNote {
		t.Errorf("Description = %q", p.Description)
	}
	if p.Style != DefaultStyle {
		t.Errorf("Style = %q, want %q", p.Style, DefaultStyle)
	}
}

func TestMapper_PriceRoundsDecimals(t *testing.T) {
	mappings := []catalog.FieldMapping{{SourceField: "price", CatalogField: string(DestPrice), Enabled: true}}
	tests := []struct {
		in   interface{}
		want string
	}{
		{"1990.00", "1990 ₽"},
		{"12990.0000", "12990 ₽"},
		{"1 990,50", "1991 ₽"},
		{25900, "25900 ₽"},
		{"от 100 руб/шт", "100 ₽"},
	}
	for _, tt := range tests {
		p := Mapper{}.Map(map[string]interface{}{"price": tt.in}, mappings)
		if p.Price != tt.want {
			t.Errorf("Map(price=%v).Price = %q, want %q", tt.in, p.Price, tt.want)
		}
	}
}

func TestMapper_DefaultsForEmptyRecord(t *testing.T) {
	m := Mapper{PlaceholderImage: "https://cdn/placeholder.jpg"}
	p := m.Map(map[string]interface{}{}, DefaultOzonMappings())

	if p.Title != DefaultTitle {
		t.Errorf("Title = %q, want %q", p.Title, DefaultTitle)
	}
	if p.Price != "0 ₽" {
		t.Errorf("Price = %q, want 0 ₽", p.Price)
	}
	if p.Category != DefaultCategory {
		t.Errorf("Category = %q, want %q", p.Category, DefaultCategory)
	}
	if p.Description != DefaultTitle {
		t.Errorf("Description = %q, want title", p.Description)
	}
	if p.Image != "https://cdn/placeholder.jpg" {
		t.Errorf("Image = %q, want placeholder", p.Image)
	}
	if len(p.Colors) != 1 || p.Colors[0] != DefaultColor {
		t.Errorf("Colors = %v, want [%s]", p.Colors, DefaultColor)
	}
	if !p.InStock || p.StockQuantity != nil {
		t.Errorf("InStock = %v, StockQuantity = %v, want true, nil", p.InStock, p.StockQuantity)
	}
}

func TestMapper_DisabledAndSkipMappingsIgnored(t *testing.T) {
	mappings := []catalog.FieldMapping{
		{SourceField: "name", CatalogField: string(DestTitle), Enabled: false},
		{SourceField: "price", CatalogField: string(DestSkip), Enabled: true},
		{SourceField: "offer_id", CatalogField: "nonsense", Enabled: true},
	}
	p := Mapper{}.Map(ozonRecord(), mappings)
	if p.Title != DefaultTitle || p.Price != DefaultPrice || p.SupplierArticle != "" {
		t.Errorf("product = %+v, want defaults only", p)
	}
}

func TestNormalizeMappings(t *testing.T) {
	out, err := NormalizeMappings([]catalog.FieldMapping{
		{SourceField: " name ", CatalogField: "title", Enabled: true},
		{SourceField: "images", CatalogField: "skip", Enabled: true},
	})
	if err != nil {
		t.Fatalf("NormalizeMappings: %v", err)
	}
	if out[0].SourceField != "name" {
		t.Errorf("SourceField = %q, want name", out[0].SourceField)
	}
	if out[1].Enabled {
		t.Error("skip mapping stays enabled")
	}

	if _, err := NormalizeMappings([]catalog.FieldMapping{{SourceField: "x", CatalogField: "weight"}}); err == nil {
		t.Error("unknown destination accepted")
	}
	if _, err := NormalizeMappings([]catalog.FieldMapping{{SourceField: " ", CatalogField: "title"}}); err == nil {
		t.Error("empty source field accepted")
	}
}

func TestDraftApply_EveryDestinationHandled(t *testing.T) {
	for _, dest := range Destinations {
		var d draft
		d.apply(dest, "1")
	}
}

func TestLookup(t *testing.T) {
	rec := map[string]interface{}{
		"stocks": map[string]interface{}{"present": 3},
		"images": []interface{}{"a", "b"},
		"nilval": nil,
	}
	if v, ok := Lookup(rec, "stocks.present"); !ok || v != 3 {
		t.Errorf("Lookup stocks.present = %v, %v", v, ok)
	}
	if v, ok := Lookup(rec, "images.1"); !ok || v != "b" {
		t.Errorf("Lookup images.1 = %v, %v", v, ok)
	}
	for _, path := range []string{"images.5", "stocks.reserved", "nilval", "missing.deep"} {
		if _, ok := Lookup(rec, path); ok {
			t.Errorf("Lookup(%q) ok = true, want false", path)
		}
	}
}

func TestScalarAndList(t *testing.T) {
	if got := Scalar(12.5); got != "12.5" {
		t.Errorf("Scalar(12.5) = %q", got)
	}
	if got := Scalar([]interface{}{" x ", "y"}); got != "x" {
		t.Errorf("Scalar(slice) = %q, want x", got)
	}
	if got := List("серый"); len(got) != 1 || got[0] != "серый" {
		t.Errorf("List(scalar) = %v", got)
	}
	if got := List([]interface{}{"a", "", 2}); len(got) != 2 || got[1] != "2" {
		t.Errorf("List(slice) = %v", got)
	}
	if got := PreviewValue(map[string]interface{}{"c": []interface{}{"a", "b"}}, "c"); got != "a, b" {
		t.Errorf("PreviewValue = %q, want a, b", got)
	}
	if got := PreviewValue(map[string]interface{}{}, "c"); got != "—" {
		t.Errorf("PreviewValue missing = %q", got)
	}
}
