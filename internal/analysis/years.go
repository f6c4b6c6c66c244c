package analysis

import (
	"fmt"
	"strings"

	"github.com/ginjaninja78/deterioro-report/internal/types"
	"github.com/shopspring/decimal"
)

// YearColumn is a source column holding one fiscal year's amounts.
type YearColumn struct {
	// Index is the column position in the source table.
	Index int

	// Name is the header, e.g. "2023".
	Name string
}

// YearColumns returns the columns whose header is a bare integer, in source
// order.
func YearColumns(headers []string) []YearColumn {
	var years []YearColumn
	for i, h := range headers {
		if isYear(h) {
			years = append(years, YearColumn{Index: i, Name: h})
		}
	}
	return years
}

// YearNames returns the headers of the given year columns.
func YearNames(years []YearColumn) []string {
	names := make([]string, len(years))
	for i, y := range years {
		names[i] = y.Name
	}
	return names
}

func isYear(header string) bool {
	if header == "" {
		return false
	}
	for _, r := range header {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ParseAmount parses a year cell. An empty cell is an absent value.
//
// With decimalComma, "1.234,56" reads as 1234.56.
func ParseAmount(raw string, decimalComma bool) (decimal.NullDecimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.NullDecimal{}, nil
	}

	if decimalComma {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("not a number: %q", raw)
	}
	return decimal.NewNullDecimal(d), nil
}

// parseYears reads every year cell of a row.
func parseYears(table *types.Table, row types.Row, years []YearColumn, decimalComma bool) ([]decimal.NullDecimal, error) {
	values := make([]decimal.NullDecimal, len(years))
	for i, y := range years {
		v, err := ParseAmount(table.Value(row, y.Index), decimalComma)
		if err != nil {
			return nil, types.Errorf(types.ErrFormat, table.Source,
				"row %d, column %q: %v", row.Number, y.Name, err)
		}
		values[i] = v
	}
	return values, nil
}
