package spreadsheet

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/text/encoding/charmap"
)

func TestBuild_ReadRows_RoundTrip(t *testing.T) {
	rows := StringRows([][]string{
		{"Артикул поставщика", "Цена"},
		{"ART-001", "25900"},
		{"ART-002", "38900"},
	})
	f, err := Build("test.xlsx", "Образец", rows, []float64{25, 12})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if f.Name != "test.xlsx" || len(f.Data) == 0 {
		t.Fatalf("Build file = %q (%d bytes)", f.Name, len(f.Data))
	}

	got, err := ReadRows(bytes.NewReader(f.Data))
	if err != nil {
		t.Fatalf("ReadRows: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("rows = %d, want 3", len(got))
	}
	if got[0][0] != "Артикул поставщика" || got[2][1] != "38900" {
		t.Errorf("rows = %v", got)
	}
}

func TestWorkbook_MultipleSheets(t *testing.T) {
	wb, err := NewWorkbook()
	if err != nil {
		t.Fatalf("NewWorkbook: %v", err)
	}
	defer wb.Close()
	if err := wb.WriteTable("Первый", StringRows([][]string{{"a"}}), nil); err != nil {
		t.Fatalf("WriteTable first: %v", err)
	}
	if err := wb.WriteRecords("Второй", []string{"h1", "h2"}, []map[string]interface{}{{"h1": "x", "h2": 2}}, []float64{10, 10}); err != nil {
		t.Fatalf("WriteRecords: %v", err)
	}
	data, err := wb.Bytes()
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	rows, err := ReadRows(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ReadRows: %v", err)
	}
	if len(rows) != 1 || rows[0][0] != "a" {
		t.Errorf("first sheet rows = %v, want [[a]]", rows)
	}
}

func TestReadRows_CSVSemicolon(t *testing.T) {
	in := "\xEF\xBB\xBFАртикул;Количество\nART-001;15\nART-002;8\n"
	rows, err := ReadRows(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadRows: %v", err)
	}
	if len(rows) != 3 || rows[0][0] != "Артикул" || rows[1][1] != "15" {
		t.Errorf("rows = %v", rows)
	}
}

func TestReadRows_CSVWindows1251(t *testing.T) {
	enc, err := charmap.Windows1251.NewEncoder().String("Название,Цена\nДиван,100\n")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	rows, err := ReadRows(strings.NewReader(enc))
	if err != nil {
		t.Fatalf("ReadRows: %v", err)
	}
	if rows[1][0] != "Диван" {
		t.Errorf("decoded cell = %q, want Диван", rows[1][0])
	}
}

func TestReadRows_BadFormat(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"truncated xls", []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}},
		{"broken zip", []byte("PK\x03\x04garbage")},
		{"binary", []byte{'a', 0, 'b'}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadRows(bytes.NewReader(tt.data))
			if !errors.Is(err, ErrBadFormat) {
				t.Errorf("err = %v, want ErrBadFormat", err)
			}
		})
	}
}

func TestReadRows_XLS(t *testing.T) {
	f, err := os.Open(filepath.Join("testdata", "prices.xls"))
	if err != nil {
		t.Fatalf("open fixture: %v", err)
	}
	defer f.Close()

	rows, err := ReadRows(f)
	if err != nil {
		t.Fatalf("ReadRows: %v", err)
	}
	want := [][]string{
		{"Артикул", "Цена"},
		{"ART-001", "19990"},
		{"ART-002", "25900.50"},
	}
	if len(rows) != len(want) {
		t.Fatalf("rows = %d, want %d: %q", len(rows), len(want), rows)
	}
	for i := range want {
		for j := range want[i] {
			if got := Cell(rows[i], j); got != want[i][j] {
				t.Errorf("cell[%d][%d] = %q, want %q", i, j, got, want[i][j])
			}
		}
	}
}

func TestToRecords(t *testing.T) {
	rows := [][]string{
		{" Название ", "Артикул", "Изображение 1"},
		{"Диван", "A-1", "http://img/1.jpg"},
		{"", "", ""},
		{"Кресло"},
	}
	recs := ToRecords(rows)
	if len(recs) != 2 {
		t.Fatalf("records = %d, want 2", len(recs))
	}
	if recs[0].Row != 2 || recs[1].Row != 4 {
		t.Errorf("rows = %d, %d; want 2, 4", recs[0].Row, recs[1].Row)
	}
	if got := recs[0].Get("Название"); got != "Диван" {
		t.Errorf("Get(Название) = %q", got)
	}
	if got := recs[1].Get("Артикул", "Название"); got != "Кресло" {
		t.Errorf("Get fallback = %q, want Кресло", got)
	}
}

func TestColumnIndex(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"A", 0, false},
		{"b", 1, false},
		{" C ", 2, false},
		{"AA", 26, false},
		{"", 0, true},
		{"1", 0, true},
	}
	for _, tt := range tests {
		got, err := ColumnIndex(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ColumnIndex(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ColumnIndex(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestDetectDelimiter(t *testing.T) {
	if d := detectDelimiter([]byte("a;b;c\n1,2")); d != ';' {
		t.Errorf("detectDelimiter = %q, want ;", d)
	}
	if d := detectDelimiter([]byte("a\tb\tc")); d != '\t' {
		t.Errorf("detectDelimiter = %q, want tab", d)
	}
	if d := detectDelimiter([]byte("a,b")); d != ',' {
		t.Errorf("detectDelimiter = %q, want ,", d)
	}
}
