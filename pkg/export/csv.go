package export

import (
	"fmt"
	"strings"
)

// CSVExporter renders a Table as comma-joined lines. Fields are written
// verbatim: no quoting and no trailing newline after the last row, so a field
// containing a comma shifts the following columns.
type CSVExporter struct{}

// NewCSVExporter builds a CSVExporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Render produces CSV bytes for the table.
func (e *CSVExporter) Render(data Table) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("csv requires at least one header")
	}
	lines := make([]string, 0, len(data.Rows))
	for _, row := range data.Rows {
		lines = append(lines, strings.Join(row, ","))
	}
	return []byte(strings.Join(data.Headers, ",") + "\n" + strings.Join(lines, "\n")), nil
}
