package ozon

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
)

// Attribute ids used when an attribute has been renamed on the marketplace side.
const (
	AttrColorName  = 10096
	AttrModelName  = 9048
	AttrAnnotation = 4191
	AttrType       = 8229
)

// Image is one cleaned product image.
type Image struct {
	FileName string `json:"file_name"`
	URL      string `json:"url"`
}

// Stocks is the stock summary of an item.
type Stocks struct {
	Present  int `json:"present"`
	Reserved int `json:"reserved"`
}

// AttributeValue is one value of an attribute.
type AttributeValue struct {
	Value string `mapstructure:"value" json:"value"`
}

// Attribute is one characteristic of a marketplace product.
type Attribute struct {
	AttributeID int64            `mapstructure:"attribute_id" json:"attribute_id"`
	ID          int64            `mapstructure:"id" json:"id,omitempty"`
	Name        string           `mapstructure:"attribute_name" json:"attribute_name,omitempty"`
	Values      []AttributeValue `mapstructure:"values" json:"values"`
}

func (a Attribute) id() int64 {
	if a.AttributeID != 0 {
		return a.AttributeID
	}
	return a.ID
}

// rawItem mirrors a detail item as the seller API sends it. Prices may be
// strings or numbers, images strings or objects.
type rawItem struct {
	ID             int64         `mapstructure:"id"`
	ProductID      int64         `mapstructure:"product_id"`
	OfferID        string        `mapstructure:"offer_id"`
	Name           string        `mapstructure:"name"`
	Title          string        `mapstructure:"title"`
	MarketingPrice string        `mapstructure:"marketing_price"`
	Price          string        `mapstructure:"price"`
	OldPrice       string        `mapstructure:"old_price"`
	CurrencyCode   string        `mapstructure:"currency_code"`
	Visible        bool          `mapstructure:"visible"`
	Description    string        `mapstructure:"description"`
	RichText       string        `mapstructure:"rich_text"`
	Images         []interface{} `mapstructure:"images"`
	Stocks         interface{}   `mapstructure:"stocks"`
	Attributes     []Attribute   `mapstructure:"attributes"`
	Status         interface{}   `mapstructure:"status"`
}

// Item is a normalized marketplace product.
type Item struct {
	ProductID    int64       `json:"product_id"`
	OfferID      string      `json:"offer_id"`
	Name         string      `json:"name"`
	Price        string      `json:"price"`
	OldPrice     string      `json:"old_price"`
	CurrencyCode string      `json:"currency_code"`
	Visible      bool        `json:"visible"`
	Images       []Image     `json:"images"`
	Stocks       Stocks      `json:"stocks"`
	Description  string      `json:"description"`
	Attributes   []Attribute `json:"attributes"`
	Color        string      `json:"color"`
	ModelName    string      `json:"modelName"`
	OzonCategory string      `json:"ozonCategory"`
}

func numberToStringHook() mapstructure.DecodeHookFunc {
	return func(f, t reflect.Type, data interface{}) (interface{}, error) {
		if t.Kind() != reflect.String {
			return data, nil
		}
		switch f.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
			reflect.Float32, reflect.Float64:
			return fmt.Sprint(data), nil
		}
		return data, nil
	}
}

// DecodeItem normalizes one raw detail item. Fields that fail to decode inside
// an otherwise valid item are logged and left at their zero value.
func DecodeItem(raw map[string]interface{}, log *zap.Logger) (Item, error) {
	if log == nil {
		log = zap.NewNop()
	}
	var r rawItem
	cfg := &mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		DecodeHook:       numberToStringHook(),
		Result:           &r,
		TagName:          "mapstructure",
	}
	dec, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return Item{}, err
	}
	if err := dec.Decode(raw); err != nil {
		return Item{}, fmt.Errorf("decode item %v: %w", raw["offer_id"], err)
	}
	return r.normalize(log), nil
}

func (r rawItem) normalize(log *zap.Logger) Item {
	it := Item{
		ProductID:    r.ID,
		OfferID:      strings.TrimSpace(r.OfferID),
		Name:         firstNonEmpty(r.Name, r.Title),
		Price:        firstNonEmpty(r.MarketingPrice, r.Price, r.OldPrice, "0"),
		OldPrice:     r.OldPrice,
		CurrencyCode: firstNonEmpty(r.CurrencyCode, "RUB"),
		Visible:      r.Visible || statusState(r.Status) == "processed",
		Images:       extractImages(r.Images),
		Attributes:   r.Attributes,
	}
	stocks, err := extractStocks(r.Stocks)
	if err != nil {
		log.Warn("ozon: stocks not decoded", zap.String("offer_id", it.OfferID), zap.Error(err))
	}
	it.Stocks = stocks
	if it.ProductID == 0 {
		it.ProductID = r.ProductID
	}
	if it.Name == "" {
		it.Name = "Товар " + it.OfferID
	}
	it.Color = findAttribute(r.Attributes, AttrColorName, "название цвета")
	it.ModelName = findAttribute(r.Attributes, AttrModelName, "название модели", "модель")
	it.Description = firstNonEmpty(findAttribute(r.Attributes, AttrAnnotation, "аннотация"), r.Description, r.RichText)
	it.OzonCategory = findAttribute(r.Attributes, AttrType, "тип")
	return it
}

// findAttribute returns the first value of the first attribute whose name
// contains one of names or whose id equals id.
func findAttribute(attrs []Attribute, id int64, names ...string) string {
	for _, a := range attrs {
		name := strings.ToLower(a.Name)
		match := a.id() == id
		for _, n := range names {
			if name != "" && strings.Contains(name, n) {
				match = true
				break
			}
		}
		if !match {
			continue
		}
		if len(a.Values) == 0 {
			return ""
		}
		return strings.TrimSpace(a.Values[0].Value)
	}
	return ""
}

func extractImages(raw []interface{}) []Image {
	out := make([]Image, 0, len(raw))
	for _, v := range raw {
		var img Image
		switch val := v.(type) {
		case string:
			img.URL = val
		case map[string]interface{}:
			img.URL = firstNonEmpty(str(val["default"]), str(val["url"]))
			img.FileName = str(val["file_name"])
		}
		if fields := strings.Fields(img.URL); len(fields) > 0 {
			img.URL = fields[0]
		} else {
			img.URL = ""
		}
		if strings.HasPrefix(img.URL, "http") {
			out = append(out, img)
		}
	}
	return out
}

// extractStocks accepts {"present": n, "reserved": n} and the newer
// {"stocks": [{"present": n, ...}]} shape, summing the latter. Entries that do
// not decode contribute what they can and the first error is returned.
func extractStocks(raw interface{}) (Stocks, error) {
	m, ok := raw.(map[string]interface{})
	if !ok {
		return Stocks{}, nil
	}
	if list, ok := m["stocks"].([]interface{}); ok {
		var (
			total    Stocks
			firstErr error
		)
		for _, entry := range list {
			s, err := extractStocks(entry)
			if err != nil && firstErr == nil {
				firstErr = err
			}
			total.Present += s.Present
			total.Reserved += s.Reserved
		}
		return total, firstErr
	}
	var s Stocks
	if err := mapstructure.WeakDecode(m, &s); err != nil {
		return s, fmt.Errorf("decode stocks: %w", err)
	}
	return s, nil
}

// Record renders the item as the flat record the field mapper reads.
func (it Item) Record() map[string]interface{} {
	images := make([]interface{}, len(it.Images))
	for i, img := range it.Images {
		images[i] = img.URL
	}
	return map[string]interface{}{
		"product_id":    it.ProductID,
		"offer_id":      it.OfferID,
		"name":          it.Name,
		"price":         it.Price,
		"old_price":     it.OldPrice,
		"currency_code": it.CurrencyCode,
		"visible":       it.Visible,
		"images":        images,
		"stocks": map[string]interface{}{
			"present":  it.Stocks.Present,
			"reserved": it.Stocks.Reserved,
		},
		"description":  it.Description,
		"color":        it.Color,
		"modelName":    it.ModelName,
		"ozonCategory": it.OzonCategory,
	}
}

// SourceFields lists the record fields offered in the mapping dialog.
var SourceFields = []string{
	"offer_id", "name", "price", "old_price", "images", "description", "color",
	"modelName", "ozonCategory", "stocks.present", "currency_code",
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func statusState(v interface{}) string {
	switch val := v.(type) {
	case map[string]interface{}:
		return str(val["state"])
	case string:
		return val
	}
	return ""
}

func str(v interface{}) string {
	s, _ := v.(string)
	return s
}
