// =============================================================================
// Deterioro Report - Analysis
// =============================================================================
//
// This package turns a loaded accounting export into the unified report:
//
//   Table ──Split──> income rows ─────────────────────────────┐
//                └─> outflow rows ──Aggregate──> outflow groups ┴─BuildReport─> Report
//
// Rows are classified by their voucher code (Comprobante), compared without
// regard to case. Outflow rows are grouped by (Codigo, Descripcion de
// elementos) and every year column is summed per group. Year columns are the
// source columns whose header is a bare integer, such as "2023".
//
// All amounts are decimals, so a report total always equals the sum of the
// year values written next to it.
//
// =============================================================================

package analysis

import (
	"github.com/shopspring/decimal"
)

// Group orders, mirroring config.GroupOrderStable and config.GroupOrderSorted.
const (
	OrderStable = "stable"
	OrderSorted = "sorted"
)

// Options control classification and aggregation.
type Options struct {
	// IncomeCodes are the voucher codes of income rows, e.g. "1A".
	IncomeCodes []string

	// OutflowCodes are the voucher codes of outflow rows, e.g. "2F".
	OutflowCodes []string

	// OutflowLabel replaces the voucher code of aggregated rows.
	OutflowLabel string

	// MovementLabel is the movement of aggregated rows.
	MovementLabel string

	// GroupOrder is OrderStable or OrderSorted.
	GroupOrder string

	// DecimalComma parses "1.234,5" style amounts.
	DecimalComma bool
}

// DefaultOptions returns the classification used by the impairment analysis.
func DefaultOptions() Options {
	return Options{
		IncomeCodes:   []string{"1A"},
		OutflowCodes:  []string{"2F", "2J", "2L"},
		OutflowLabel:  "2F_2J_2L",
		MovementLabel: "SALIDAS",
		GroupOrder:    OrderStable,
	}
}

// =============================================================================
// DATA STRUCTURES
// =============================================================================

// SourceRow is a classified input row with its year values parsed.
type SourceRow struct {
	// Line is the 1-based line of the row in the source.
	Line int

	Voucher     string
	Code        string
	Description string

	// Movement is the source Movimiento value, if the input has that column.
	Movement string

	// Years holds one value per year column; invalid means the cell was empty.
	Years []decimal.NullDecimal
}

// Total sums the row's year values, absent values counting as zero.
func (r SourceRow) Total() decimal.Decimal {
	total := decimal.Zero
	for _, v := range r.Years {
		if v.Valid {
			total = total.Add(v.Decimal)
		}
	}
	return total
}

// DroppedRow records an input row that does not appear in the report.
type DroppedRow struct {
	Line    int
	Voucher string

	// Reason explains why the row was dropped.
	Reason string
}

// Partition is the result of Split.
type Partition struct {
	Income  []SourceRow
	Outflow []SourceRow
	Dropped []DroppedRow
}

// OutflowGroup is the aggregate of all outflow rows sharing an item key.
type OutflowGroup struct {
	Code        string
	Description string

	// Years holds the per-year sums, absent values counting as zero.
	Years []decimal.Decimal

	// Count is the number of source rows in the group.
	Count int
}

// Total sums the group's year values.
func (g OutflowGroup) Total() decimal.Decimal {
	total := decimal.Zero
	for _, v := range g.Years {
		total = total.Add(v)
	}
	return total
}
