// Package export renders tabular roster data into CSV, XLSX and PDF documents
// and reads XLSX rosters back in.
package export

// Table is an ordered, header-first tabular dataset.
type Table struct {
	Headers []string
	Rows    [][]string
	// RowNumbers holds the 1-based sheet row of each entry in Rows when the
	// table was read from a workbook.
	RowNumbers []int
}

// RowNumber returns the sheet row of Rows[i], assuming a single header row
// and no gaps when the source positions are unknown.
func (t Table) RowNumber(i int) int {
	if i < len(t.RowNumbers) {
		return t.RowNumbers[i]
	}
	return i + 2
}

// cell returns the value at column i, or "" when the row is short.
func (t Table) cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
