package product

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// CurrencySuffix is appended to every display price.
const CurrencySuffix = " ₽"

var (
	currencyTail   = regexp.MustCompile(`\s*[₽₸₴€$£¥].*$`)
	leadingDecimal = regexp.MustCompile(`^\d*\.?\d*`)
	priceNoise     = strings.NewReplacer(" ", "", " ", "", " ", "", "₽", "", "руб.", "", "руб", "")
	slugQuotes     = strings.NewReplacer(`"`, "", "'", "", "«", "", "»", "", "“", "", "”", "")
)

// CleanImageURL strips spreadsheet debris from a pasted image URL: a trailing
// ruble letter, a currency symbol and everything after it, and anything past the
// first whitespace. The result is "" unless it starts with http.
func CleanImageURL(raw string) string {
	cleaned := strings.TrimSpace(raw)
	for _, suffix := range []string{"Р", "р"} {
		if strings.HasSuffix(cleaned, suffix) {
			cleaned = strings.TrimSpace(strings.TrimSuffix(cleaned, suffix))
			break
		}
	}
	cleaned = currencyTail.ReplaceAllString(cleaned, "")
	fields := strings.Fields(cleaned)
	if len(fields) == 0 {
		return ""
	}
	cleaned = fields[0]
	if !strings.HasPrefix(cleaned, "http") {
		return ""
	}
	return cleaned
}

// SanitizeImages cleans every URL, drops invalid ones and removes duplicates, keeping order.
func SanitizeImages(urls []string) []string {
	out := make([]string, 0, len(urls))
	seen := make(map[string]struct{}, len(urls))
	for _, u := range urls {
		c := CleanImageURL(u)
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

// UnionImages appends the URLs of add missing from base, both assumed clean.
func UnionImages(base, add []string) []string {
	out := make([]string, 0, len(base)+len(add))
	seen := make(map[string]struct{}, len(base)+len(add))
	for _, list := range [][]string{base, add} {
		for _, u := range list {
			if !strings.HasPrefix(u, "http") {
				continue
			}
			if _, dup := seen[u]; dup {
				continue
			}
			seen[u] = struct{}{}
			out = append(out, u)
		}
	}
	return out
}

// FormatPrice renders any price-ish value as "<digits> ₽". Well-formed decimals
// ("1990.00", "1 990,5") are rounded, anything else keeps only its digits.
func FormatPrice(raw string) string {
	if d, ok := parseDecimal(raw); ok && !d.IsNegative() {
		return d.Round(0).String() + CurrencySuffix
	}
	digits := digitsOnly(raw)
	if digits == "" {
		return "0" + CurrencySuffix
	}
	digits = strings.TrimLeft(digits, "0")
	if digits == "" {
		digits = "0"
	}
	return digits + CurrencySuffix
}

// RoundPrice keeps digits, dots and commas, reads the leading number and rounds it.
// Unreadable input yields "0 ₽".
func RoundPrice(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if unicode.IsDigit(r) || r == '.' || r == ',' {
			b.WriteRune(r)
		}
	}
	num := leadingDecimal.FindString(strings.Replace(b.String(), ",", ".", 1))
	d, err := decimal.NewFromString(strings.TrimSuffix(num, "."))
	if err != nil {
		return "0" + CurrencySuffix
	}
	return d.Round(0).String() + CurrencySuffix
}

// FormatPriceGrouped renders a price with thousands separated by spaces: "25 900 ₽".
func FormatPriceGrouped(raw string) string {
	digits := strings.TrimSuffix(FormatPrice(raw), CurrencySuffix)
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String() + CurrencySuffix
}

// ParsePrice reads a non-negative decimal from a spreadsheet cell ("25 900,50 ₽").
func ParsePrice(raw string) (decimal.Decimal, bool) {
	d, ok := parseDecimal(raw)
	if !ok || d.IsNegative() {
		return decimal.Zero, false
	}
	return d, true
}

// PriceValue returns the numeric part of a display price, zero when unreadable.
func PriceValue(display string) decimal.Decimal {
	if d, ok := parseDecimal(display); ok {
		return d
	}
	return decimal.Zero
}

// ParseStock reads a leading integer the way spreadsheet users expect: "15", "15.0"
// and "15 шт" are all 15. Negative or missing numbers are rejected.
func ParseStock(raw string) (int, bool) {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "+") {
		s = s[1:]
	}
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// Slugify builds a storefront slug from a title.
func Slugify(title string) string {
	s := slugQuotes.Replace(strings.ToLower(strings.TrimSpace(title)))
	return strings.Join(strings.Fields(s), "-")
}

// StripImportNote removes the marketplace import marker from a description.
func StripImportNote(desc string) string {
	desc = strings.ReplaceAll(desc, ". "+ImportNote, "")
	desc = strings.ReplaceAll(desc, "."+ImportNote, "")
	desc = strings.ReplaceAll(desc, ImportNote, "")
	return strings.TrimSpace(desc)
}

func parseDecimal(raw string) (decimal.Decimal, bool) {
	s := priceNoise.Replace(strings.TrimSpace(raw))
	if s == "" {
		return decimal.Zero, false
	}
	s = strings.Replace(s, ",", ".", 1)
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
