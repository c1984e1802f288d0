package export

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrEmptyWorkbook is returned when an uploaded workbook has no usable sheet.
var ErrEmptyWorkbook = errors.New("workbook does not contain any rows")

// XLSXExporter renders a Table into a single-sheet workbook.
type XLSXExporter struct {
	sheet string
}

// NewXLSXExporter builds an exporter writing to the named sheet.
func NewXLSXExporter(sheet string) *XLSXExporter {
	if strings.TrimSpace(sheet) == "" {
		sheet = "Sheet1"
	}
	return &XLSXExporter{sheet: sheet}
}

// Render writes headers in bold on the first row followed by the data rows.
func (e *XLSXExporter) Render(data Table) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("xlsx requires at least one header")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), e.sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	if err := e.writeRow(f, 1, data.Headers); err != nil {
		return nil, err
	}
	for i, row := range data.Rows {
		record := make([]string, len(data.Headers))
		for col := range data.Headers {
			record[col] = data.cell(row, col)
		}
		if err := e.writeRow(f, i+2, record); err != nil {
			return nil, err
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}
	lastHeader, err := excelize.CoordinatesToCellName(len(data.Headers), 1)
	if err != nil {
		return nil, fmt.Errorf("resolve header range: %w", err)
	}
	if err := f.SetCellStyle(e.sheet, "A1", lastHeader, bold); err != nil {
		return nil, fmt.Errorf("style headers: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func (e *XLSXExporter) writeRow(f *excelize.File, rowNum int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("resolve row %d: %w", rowNum, err)
	}
	row := make([]interface{}, len(values))
	for i, v := range values {
		row[i] = v
	}
	if err := f.SetSheetRow(e.sheet, cell, &row); err != nil {
		return fmt.Errorf("write row %d: %w", rowNum, err)
	}
	return nil
}

// ReadXLSX reads the first sheet of a workbook. The first row becomes the
// headers; blank rows are skipped and short rows are padded. RowNumbers keeps
// each row's position in the sheet.
func ReadXLSX(r io.Reader) (Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return Table{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return Table{}, ErrEmptyWorkbook
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return Table{}, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return Table{}, ErrEmptyWorkbook
	}

	table := Table{Headers: trimAll(rows[0])}
	for idx, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		table.RowNumbers = append(table.RowNumbers, idx+2)
		record := make([]string, len(table.Headers))
		for i := range record {
			record[i] = strings.TrimSpace(table.cell(row, i))
		}
		table.Rows = append(table.Rows, record)
	}
	return table, nil
}

func trimAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.TrimSpace(v)
	}
	return out
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
