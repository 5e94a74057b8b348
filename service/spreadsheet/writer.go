package spreadsheet

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ContentTypeXLSX is the MIME type of generated workbooks.
const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// File is a generated workbook ready for download.
type File struct {
	Name string
	Data []byte
}

// Workbook builds .xlsx files sheet by sheet.
type Workbook struct {
	f           *excelize.File
	sheets      int
	headerStyle int
}

func NewWorkbook() (*Workbook, error) {
	f := excelize.NewFile()
	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"E7E6E6"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "bottom", Color: "999999", Style: 1},
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("header style: %w", err)
	}
	return &Workbook{f: f, headerStyle: style}, nil
}

func (w *Workbook) addSheet(name string) error {
	if w.sheets == 0 {
		w.sheets++
		return w.f.SetSheetName("Sheet1", name)
	}
	if _, err := w.f.NewSheet(name); err != nil {
		return err
	}
	w.sheets++
	return nil
}

// WriteTable writes literal rows to a new sheet. The first row is styled as a header.
// widths are column widths in characters, applied from column A.
func (w *Workbook) WriteTable(sheet string, rows [][]interface{}, widths []float64) error {
	if err := w.addSheet(sheet); err != nil {
		return fmt.Errorf("add sheet %q: %w", sheet, err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := w.f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		last, err := excelize.CoordinatesToCellName(len(rows[0]), 1)
		if err != nil {
			return err
		}
		if err := w.f.SetCellStyle(sheet, "A1", last, w.headerStyle); err != nil {
			return fmt.Errorf("style header: %w", err)
		}
	}
	for i, width := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := w.f.SetColWidth(sheet, col, col, width); err != nil {
			return fmt.Errorf("column width %s: %w", col, err)
		}
	}
	return nil
}

// WriteRecords writes one row per record, reading each column by its header.
func (w *Workbook) WriteRecords(sheet string, headers []string, records []map[string]interface{}, widths []float64) error {
	rows := make([][]interface{}, 0, len(records)+1)
	head := make([]interface{}, len(headers))
	for i, h := range headers {
		head[i] = h
	}
	rows = append(rows, head)
	for _, rec := range records {
		row := make([]interface{}, len(headers))
		for i, h := range headers {
			row[i] = rec[h]
		}
		rows = append(rows, row)
	}
	return w.WriteTable(sheet, rows, widths)
}

// Bytes serializes the workbook.
func (w *Workbook) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := w.f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func (w *Workbook) Close() error {
	return w.f.Close()
}

// Build writes a single-sheet workbook from rows and returns it as a named file.
func Build(name, sheet string, rows [][]interface{}, widths []float64) (File, error) {
	wb, err := NewWorkbook()
	if err != nil {
		return File{}, err
	}
	defer wb.Close()
	if err := wb.WriteTable(sheet, rows, widths); err != nil {
		return File{}, err
	}
	data, err := wb.Bytes()
	if err != nil {
		return File{}, err
	}
	return File{Name: name, Data: data}, nil
}

// StringRows converts string rows for WriteTable.
func StringRows(rows [][]string) [][]interface{} {
	out := make([][]interface{}, len(rows))
	for i, row := range rows {
		out[i] = make([]interface{}, len(row))
		for j, v := range row {
			out[i][j] = v
		}
	}
	return out
}
