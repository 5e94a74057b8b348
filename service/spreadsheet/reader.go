package spreadsheet

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// ErrBadFormat is returned for input that cannot be read as a workbook or CSV.
var ErrBadFormat = errors.New("unreadable spreadsheet, check file format")

// MaxUploadSize caps the bytes read from one upload.
const MaxUploadSize = 20 << 20

var (
	zipMagic = []byte("PK\x03\x04")
	oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0}
	utf8BOM  = []byte{0xEF, 0xBB, 0xBF}
)

// Record is one header-named data row. Row is the 1-based sheet row.
type Record struct {
	Row    int
	Values map[string]string
}

// Get returns the first non-empty value among keys.
func (r Record) Get(keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(r.Values[k]); v != "" {
			return v
		}
	}
	return ""
}

// ReadRows returns the first sheet of an .xlsx or .xls workbook, or a CSV file, as rows of cells.
func ReadRows(r io.Reader) ([][]string, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxUploadSize+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if len(data) > MaxUploadSize {
		return nil, fmt.Errorf("%w: file exceeds %d bytes", ErrBadFormat, MaxUploadSize)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: file is empty", ErrBadFormat)
	}
	switch {
	case bytes.HasPrefix(data, zipMagic):
		return readXLSX(data)
	case bytes.HasPrefix(data, oleMagic):
		return readXLS(data)
	default:
		return readCSV(data)
	}
}

// ReadRecords reads rows and keys every data row by the trimmed header row.
// Blank rows are dropped.
func ReadRecords(r io.Reader) ([]Record, error) {
	rows, err := ReadRows(r)
	if err != nil {
		return nil, err
	}
	return ToRecords(rows), nil
}

// ToRecords converts header-first rows into records.
func ToRecords(rows [][]string) []Record {
	if len(rows) == 0 {
		return nil
	}
	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}
	records := make([]Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if IsBlank(row) {
			continue
		}
		values := make(map[string]string, len(headers))
		for c, h := range headers {
			if h == "" || c >= len(row) {
				continue
			}
			if _, dup := values[h]; dup {
				continue
			}
			values[h] = strings.TrimSpace(row[c])
		}
		records = append(records, Record{Row: i + 2, Values: values})
	}
	return records
}

// IsBlank reports whether every cell of row is empty or whitespace.
func IsBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// Cell returns the trimmed cell at index, "" when the row is shorter.
func Cell(row []string, index int) string {
	if index < 0 || index >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[index])
}

// ColumnIndex converts a column letter ("A", "c", "AB") into a 0-based index.
func ColumnIndex(letter string) (int, error) {
	letter = strings.ToUpper(strings.TrimSpace(letter))
	n, err := excelize.ColumnNameToNumber(letter)
	if err != nil {
		return 0, fmt.Errorf("invalid column %q: %w", letter, err)
	}
	return n - 1, nil
}

func readXLSX(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadFormat, err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrBadFormat)
	}
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("%w: read sheet %q: %v", ErrBadFormat, sheetName, err)
	}
	return rows, nil
}

func readXLS(data []byte) (rows [][]string, err error) {
	// the BIFF parser indexes record data without bounds checks
	defer func() {
		if r := recover(); r != nil {
			rows, err = nil, fmt.Errorf("%w: corrupt .xls workbook: %v", ErrBadFormat, r)
		}
	}()
	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadFormat, err)
	}
	if wb == nil || wb.NumSheets() == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrBadFormat)
	}
	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrBadFormat)
	}
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			rows = append(rows, []string{})
			continue
		}
		cells := make([]string, 0, row.LastCol())
		for c := 0; c < row.LastCol(); c++ {
			cells = append(cells, row.Col(c))
		}
		rows = append(rows, cells)
	}
	for len(rows) > 0 && IsBlank(rows[len(rows)-1]) {
		rows = rows[:len(rows)-1]
	}
	return rows, nil
}

func readCSV(data []byte) ([][]string, error) {
	if bytes.IndexByte(data, 0) >= 0 {
		return nil, fmt.Errorf("%w: binary content", ErrBadFormat)
	}
	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		decoded, _, err := transform.Bytes(charmap.Windows1251.NewDecoder(), data)
		if err != nil {
			return nil, fmt.Errorf("%w: decode windows-1251: %v", ErrBadFormat, err)
		}
		data = decoded
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = detectDelimiter(data)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadFormat, err)
	}
	return rows, nil
}

// detectDelimiter picks the most frequent of ';', tab and ',' in the first line.
func detectDelimiter(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}
	best, bestCount := ',', bytes.Count(line, []byte{','})
	for _, d := range []rune{';', '\t'} {
		if n := bytes.Count(line, []byte(string(d))); n > bestCount {
			best, bestCount = d, n
		}
	}
	return best
}
