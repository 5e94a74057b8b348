package product

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"larana.GO/model/entity/catalog"
)

// Defaults applied when a mapped record leaves a field empty.
const (
	DefaultTitle = "Товар без названия"
	DefaultStyle = "Современный"
	DefaultColor = "Базовый"
	DefaultPrice = "0" + CurrencySuffix

	// ImportNote marks descriptions generated for marketplace imports.
	ImportNote = "Товар импортирован из Ozon."
)

// ErrInvalidMapping rejects a mapping set with an empty source or unknown destination.
var ErrInvalidMapping = errors.New("invalid field mapping")

// Destination is a catalog field a mapping can populate.
type Destination string

const (
	DestTitle           Destination = "title"
	DestCategory        Destination = "category"
	DestPrice           Destination = "price"
	DestDescription     Destination = "description"
	DestSupplierArticle Destination = "supplierArticle"
	DestColors          Destination = "colors"
	DestColorVariant    Destination = "colorVariant"
	DestVariantGroupID  Destination = "variantGroupId"
	DestStockQuantity   Destination = "stockQuantity"
	DestStyle           Destination = "style"
	DestImages          Destination = "images"
	DestSkip            Destination = "skip"
)

// Destinations lists every valid destination in display order.
var Destinations = []Destination{
	DestTitle, DestCategory, DestPrice, DestDescription, DestSupplierArticle, DestColors,
	DestColorVariant, DestVariantGroupID, DestStockQuantity, DestStyle, DestImages, DestSkip,
}

// ParseDestination validates a destination name.
func ParseDestination(s string) (Destination, error) {
	for _, d := range Destinations {
		if string(d) == s {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown catalog field %q", s)
}

// DefaultOzonMappings is used until an operator saves a mapping set.
func DefaultOzonMappings() []catalog.FieldMapping {
	return []catalog.FieldMapping{
		{SourceField: "offer_id", CatalogField: string(DestSupplierArticle), Enabled: true},
		{SourceField: "name", CatalogField: string(DestTitle), Enabled: true},
		{SourceField: "price", CatalogField: string(DestPrice), Enabled: true},
		{SourceField: "images", CatalogField: string(DestImages), Enabled: true},
		{SourceField: "description", CatalogField: string(DestDescription), Enabled: true},
		{SourceField: "color", CatalogField: string(DestColors), Enabled: true},
		{SourceField: "color", CatalogField: string(DestColorVariant), Enabled: true},
		{SourceField: "modelName", CatalogField: string(DestVariantGroupID), Enabled: true},
		{SourceField: "ozonCategory", CatalogField: string(DestCategory), Enabled: true},
		{SourceField: "stocks.present", CatalogField: string(DestStockQuantity), Enabled: true},
	}
}

// NormalizeMappings validates destinations and disables every skip mapping.
func NormalizeMappings(in []catalog.FieldMapping) ([]catalog.FieldMapping, error) {
	out := make([]catalog.FieldMapping, 0, len(in))
	for i, m := range in {
		m.SourceField = strings.TrimSpace(m.SourceField)
		if m.SourceField == "" {
			return nil, fmt.Errorf("%w: mapping %d: source field is empty", ErrInvalidMapping, i)
		}
		dest, err := ParseDestination(m.CatalogField)
		if err != nil {
			return nil, fmt.Errorf("%w: mapping %d: %v", ErrInvalidMapping, i, err)
		}
		if dest == DestSkip {
			m.Enabled = false
		}
		out = append(out, m)
	}
	return out, nil
}

// Mapper turns external records into catalog products through a mapping set.
type Mapper struct {
	PlaceholderImage string
	// MarkImported appends ImportNote to generated descriptions.
	MarkImported bool
}

// draft collects mapped values before defaults are applied.
type draft struct {
	title, category, price, description, article, style string
	colors, images                                        []string
	colorVariant, variantGroupID                          string
	stock                                                 *int
}

// Map applies every enabled mapping to record. Missing or malformed source values
// are ignored and the corresponding defaults are used.
func (m Mapper) Map(record map[string]interface{}, mappings []catalog.FieldMapping) catalog.Product {
	var d draft
	for _, fm := range mappings {
		if !fm.Enabled {
			continue
		}
		dest, err := ParseDestination(fm.CatalogField)
		if err != nil {
			continue
		}
		v, ok := Lookup(record, fm.SourceField)
		if !ok {
			continue
		}
		d.apply(dest, v)
	}
	return m.build(d)
}

func (d *draft) apply(dest Destination, v interface{}) {
	switch dest {
	case DestTitle:
		d.title = Scalar(v)
	case DestCategory:
		d.category = Scalar(v)
	case DestPrice:
		if s := Scalar(v); s != "" {
			d.price = FormatPrice(s)
		}
	case DestDescription:
		d.description = Scalar(v)
	case DestSupplierArticle:
		d.article = Scalar(v)
	case DestColors:
		d.colors = List(v)
	case DestColorVariant:
		if l := List(v); len(l) > 0 {
			d.colorVariant = l[0]
		}
	case DestVariantGroupID:
		d.variantGroupID = Scalar(v)
	case DestStockQuantity:
		if n, ok := ParseStock(Scalar(v)); ok {
			d.stock = &n
		}
	case DestStyle:
		d.style = Scalar(v)
	case DestImages:
		d.images = SanitizeImages(List(v))
	case DestSkip:
	default:
		panic(fmt.Sprintf("product: unhandled destination %q", dest))
	}
}

func (m Mapper) build(d draft) catalog.Product {
	p := catalog.Product{
		Title:           d.title,
		Category:        Classify(d.category, d.title),
		Price:           d.price,
		Description:     d.description,
		SupplierArticle: d.article,
		Style:           d.style,
		Colors:          d.colors,
		Images:          d.images,
		Items:           []string{},
		VariantGroupID:  catalog.StringPtr(d.variantGroupID),
		ColorVariant:    catalog.StringPtr(d.colorVariant),
		InStock:         true,
	}
	if p.Title == "" {
		p.Title = DefaultTitle
	}
	if p.Price == "" {
		p.Price = DefaultPrice
	}
	if p.Description == "" {
		p.Description = p.Title
		if m.MarkImported {
			p.Description = p.Title + ". " + ImportNote
		}
	}
	if p.Style == "" {
		p.Style = DefaultStyle
	}
	if len(p.Colors) == 0 {
		p.Colors = []string{DefaultColor}
	}
	if d.stock != nil {
		p.SetStock(*d.stock)
	}
	if len(p.Images) > 0 {
		p.Image = p.Images[0]
	} else {
		p.Image = m.PlaceholderImage
	}
	p.Slug = Slugify(p.Title)
	return p
}

// Lookup reads a dotted path ("stocks.present", "images.0") from nested maps and slices.
func Lookup(record map[string]interface{}, path string) (interface{}, bool) {
	var cur interface{} = record
	for _, key := range strings.Split(path, ".") {
		switch node := cur.(type) {
		case map[string]interface{}:
			v, ok := node[key]
			if !ok {
				return nil, false
			}
			cur = v
		case map[string]string:
			v, ok := node[key]
			if !ok {
				return nil, false
			}
			cur = v
		case []interface{}:
			i, err := strconv.Atoi(key)
			if err != nil || i < 0 || i >= len(node) {
				return nil, false
			}
			cur = node[i]
		case []string:
			i, err := strconv.Atoi(key)
			if err != nil || i < 0 || i >= len(node) {
				return nil, false
			}
			cur = node[i]
		default:
			return nil, false
		}
	}
	if cur == nil {
		return nil, false
	}
	return cur, true
}

// Scalar renders a value as a trimmed string; slices yield their first element.
func Scalar(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	case json.Number:
		return val.String()
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case bool:
		return strconv.FormatBool(val)
	case []string:
		if len(val) == 0 {
			return ""
		}
		return Scalar(val[0])
	case []interface{}:
		if len(val) == 0 {
			return ""
		}
		return Scalar(val[0])
	default:
		return strings.TrimSpace(fmt.Sprint(val))
	}
}

// List renders a value as a list of non-empty strings; a scalar becomes a one-element list.
func List(v interface{}) []string {
	var out []string
	switch val := v.(type) {
	case []string:
		for _, s := range val {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	case []interface{}:
		for _, item := range val {
			if s := Scalar(item); s != "" {
				out = append(out, s)
			}
		}
	default:
		if s := Scalar(v); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// PreviewValue renders a source field of a sample record for the mapping dialog.
func PreviewValue(record map[string]interface{}, path string) string {
	v, ok := Lookup(record, path)
	if !ok {
		return "—"
	}
	switch val := v.(type) {
	case []interface{}, []string:
		return strings.Join(List(val), ", ")
	case map[string]interface{}:
		b, err := json.Marshal(val)
		if err != nil {
			return "—"
		}
		return string(b)
	default:
		return Scalar(val)
	}
}
