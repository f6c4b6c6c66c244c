// =============================================================================
// Deterioro Report - Shared Types
// =============================================================================
//
// This package contains types shared by the loaders, the analysis stage and
// the writers so that none of them has to import another:
//   - Table:  the in-memory rectangular dataset produced by a loader
//   - Report: the unified output table consumed by the xlsx writer
//
// =============================================================================

package types

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/unicode/norm"
)

// =============================================================================
// COLUMN NAMES
// =============================================================================

// Source and output column headers. The year columns are not named here;
// they are discovered from the input headers.
const (
	ColumnCode         = "Codigo"
	ColumnVoucher      = "Comprobante"
	ColumnMovement     = "Movimiento"
	ColumnDescription  = "Descripcion de elementos"
	ColumnOutflowCount = "Conteo_Salidas"
	ColumnTotal        = "Total"
)

// =============================================================================
// SOURCE TABLE
// =============================================================================

// Row is a single data row of a loaded table.
type Row struct {
	// Number is the 1-based line of this row in the source sheet or file.
	// Useful for error reporting.
	Number int

	// Cells holds the raw cell text, padded to the header width.
	Cells []string
}

// Table is a rectangular dataset with a single header row.
type Table struct {
	// Source is the path the table was loaded from.
	Source string

	// Headers are the normalized column headers, in source order.
	Headers []string

	// Rows are the data rows below the header.
	Rows []Row

	index map[string]int
}

// NewTable builds a Table from a raw header row and the raw rows below it.
// headerLine is the 1-based line number of the header in the source, used to
// number the data rows.
//
// Headers are normalized with NormalizeHeaders. Rows that contain only empty
// cells are skipped, and every kept row is padded or truncated to the header
// width.
func NewTable(source string, header []string, body [][]string, headerLine int) *Table {
	headers := NormalizeHeaders(header)

	t := &Table{
		Source:  source,
		Headers: headers,
		Rows:    make([]Row, 0, len(body)),
		index:   make(map[string]int, len(headers)),
	}

	for i, h := range headers {
		t.index[h] = i
	}

	for i, raw := range body {
		if IsRowEmpty(raw) {
			continue
		}
		cells := make([]string, len(headers))
		copy(cells, raw)
		t.Rows = append(t.Rows, Row{Number: headerLine + i + 1, Cells: cells})
	}

	return t
}

// Column returns the index of the named column.
func (t *Table) Column(name string) (int, bool) {
	i, ok := t.index[name]
	return i, ok
}

// Value returns the cell of row r in column c, or "" when out of range.
func (t *Table) Value(r Row, c int) string {
	if c < 0 || c >= len(r.Cells) {
		return ""
	}
	return r.Cells[c]
}

// NormalizeHeaders trims surrounding whitespace from every header and puts it
// in Unicode NFC form, so that "Descripcion de elementos " typed with a
// trailing space or a decomposed accent still matches the expected name.
//
// Empty headers are replaced by "Column_<n>" (1-based). A header seen before
// is renamed "<name>.1", "<name>.2" and so on, the way spreadsheet tools
// load such exports, so every column keeps its own name.
func NormalizeHeaders(headers []string) []string {
	cleaned := make([]string, len(headers))
	taken := make(map[string]bool, len(headers))

	for i, header := range headers {
		header = norm.NFC.String(strings.TrimSpace(header))
		if header == "" {
			header = fmt.Sprintf("Column_%d", i+1)
		}
		cleaned[i] = header
		taken[header] = true
	}

	seen := make(map[string]bool, len(cleaned))
	for i, header := range cleaned {
		if !seen[header] {
			seen[header] = true
			continue
		}
		for n := 1; ; n++ {
			candidate := fmt.Sprintf("%s.%d", header, n)
			if !taken[candidate] {
				cleaned[i] = candidate
				taken[candidate] = true
				seen[candidate] = true
				break
			}
		}
	}

	return cleaned
}

// IsRowEmpty checks if a row contains only empty cells.
func IsRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// =============================================================================
// REPORT
// =============================================================================

// Origin tells which subset a report row was derived from.
type Origin int

const (
	// OriginIncome marks a row copied from a single income source row.
	OriginIncome Origin = iota

	// OriginOutflow marks a row produced by aggregating outflow rows.
	OriginOutflow
)

// String implements fmt.Stringer.
func (o Origin) String() string {
	switch o {
	case OriginIncome:
		return "income"
	case OriginOutflow:
		return "outflow"
	default:
		return fmt.Sprintf("origin(%d)", int(o))
	}
}

// ReportRow is one row of the unified output table.
type ReportRow struct {
	Origin Origin

	Code        string
	Voucher     string
	Movement    string
	Description string

	// OutflowCount is the number of source rows aggregated into this row.
	// Always 0 for income rows.
	OutflowCount int

	// Years holds one value per report year column. An invalid entry is an
	// absent source value and is written as an empty cell.
	Years []decimal.NullDecimal

	// Total is the sum of Years, absent values counting as zero.
	Total decimal.Decimal
}

// Report is the unified output table: income rows first, outflow groups after.
type Report struct {
	// Years are the year column headers, in source order.
	Years []string

	Rows []ReportRow
}

// Headers returns the output header row in its fixed order.
func (r *Report) Headers() []string {
	headers := []string{
		ColumnCode,
		ColumnVoucher,
		ColumnMovement,
		ColumnDescription,
		ColumnOutflowCount,
	}
	headers = append(headers, r.Years...)
	return append(headers, ColumnTotal)
}

// YearRange returns the first and last year column headers, or false when the
// report has no year columns.
func (r *Report) YearRange() (string, string, bool) {
	if len(r.Years) == 0 {
		return "", "", false
	}
	return r.Years[0], r.Years[len(r.Years)-1], true
}

// Count returns how many rows of the given origin the report holds.
func (r *Report) Count(origin Origin) int {
	n := 0
	for _, row := range r.Rows {
		if row.Origin == origin {
			n++
		}
	}
	return n
}
