package product

import "strings"

// Storefront categories.
const (
	CategoryLivingRoom = "Гостиная"
	CategoryBedroom    = "Спальня"
	CategoryKitchen    = "Кухня"
	CategoryHallway    = "Прихожая"
	CategoryKids       = "Детская"

	DefaultCategory = CategoryLivingRoom
)

type categoryRule struct {
	category string
	keywords []string
}

// First matching rule wins.
var categoryRules = []categoryRule{
	{CategoryLivingRoom, []string{"диван", "кресло", "пуф"}},
	{CategoryBedroom, []string{"кровать", "матрас"}},
	{CategoryKitchen, []string{"стол", "стул", "табурет"}},
	{CategoryHallway, []string{"шкаф", "комод", "тумба"}},
	{CategoryKids, []string{"детск"}},
}

var pluralCategories = map[string]string{
	"Гостиные": CategoryLivingRoom,
	"Спальни":  CategoryBedroom,
	"Кухни":    CategoryKitchen,
	"Прихожие": CategoryHallway,
}

// StorefrontCategories in menu order.
var StorefrontCategories = []string{
	CategoryLivingRoom,
	CategoryBedroom,
	CategoryKitchen,
	CategoryHallway,
	CategoryKids,
}

var storefrontCategories = func() map[string]bool {
	m := make(map[string]bool, len(StorefrontCategories))
	for _, c := range StorefrontCategories {
		m[c] = true
	}
	return m
}()

// IsStorefrontCategory reports whether c is one of the storefront categories.
func IsStorefrontCategory(c string) bool {
	return storefrontCategories[c]
}

// Classify infers a storefront category from a marketplace category string, then
// from the product title. A category that already names a storefront category is
// kept. Unrecognized input falls back to DefaultCategory.
func Classify(category, title string) string {
	if c := NormalizeCategory(category); IsStorefrontCategory(c) {
		return c
	}
	if c, ok := matchCategory(category); ok {
		return c
	}
	if c, ok := matchCategory(title); ok {
		return c
	}
	return DefaultCategory
}

func matchCategory(text string) (string, bool) {
	if text == "" {
		return "", false
	}
	lower := strings.ToLower(text)
	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.category, true
			}
		}
	}
	return "", false
}

// NormalizeCategory maps plural category names to the singular storefront form.
func NormalizeCategory(category string) string {
	category = strings.TrimSpace(category)
	if c, ok := pluralCategories[category]; ok {
		return c
	}
	return category
}
