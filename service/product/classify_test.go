package product

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		category, title, want string
	}{
		{"", "Угловой диван Палермо", "Гостиная"},
		{"", "Кровать Лагуна 160", "Спальня"},
		{"", "Аксессуар XYZ", "Гостиная"},
		{"", "Стул барный", "Кухня"},
		{"", "Комод Венеция", "Прихожая"},
		{"", "Детский уголок", "Детская"},
		{"Кровати и матрасы", "Аксессуар", "Спальня"},
		{"Кресло-качалка", "Кровать", "Гостиная"},
		{"Аксессуары", "Кровать", "Спальня"},
		{"Спальни", "Диван", "Спальня"},
		{"Кухня", "Диван", "Кухня"},
		{"Товары для дома", "Аксессуар", "Гостиная"},
	}
	for _, tt := range tests {
		if got := Classify(tt.category, tt.title); got != tt.want {
			t.Errorf("Classify(%q, %q) = %q, want %q", tt.category, tt.title, got, tt.want)
		}
	}
}

func TestNormalizeCategory(t *testing.T) {
	tests := map[string]string{
		"Гостиные": "Гостиная",
		"Спальни":  "Спальня",
		"Кухни":    "Кухня",
		"Прихожие": "Прихожая",
		"Диваны":   "Диваны",
	}
	for in, want := range tests {
		if got := NormalizeCategory(in); got != want {
			t.Errorf("NormalizeCategory(%q) = %q, want %q", in, got, want)
		}
	}
}
