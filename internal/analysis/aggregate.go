package analysis

import (
	"sort"

	"github.com/shopspring/decimal"
)

// itemKey identifies an inventory item. Equality is exact: no trimming and no
// case folding.
type itemKey struct {
	code        string
	description string
}

// Aggregate groups outflow rows by (Codigo, Descripcion de elementos), summing
// every year column and counting the member rows.
//
// Groups come out in first-occurrence order, or sorted by code and then
// description when order is OrderSorted. Rows with an empty code or an empty
// description have no usable key; they are returned as dropped instead of
// forming a group of their own.
func Aggregate(rows []SourceRow, yearCount int, order string) ([]OutflowGroup, []DroppedRow) {
	groups := make(map[itemKey]*OutflowGroup)
	groupOrder := []itemKey{} // Maintain order of first occurrence
	var dropped []DroppedRow

	for _, row := range rows {
		if row.Code == "" || row.Description == "" {
			dropped = append(dropped, DroppedRow{
				Line:    row.Line,
				Voucher: row.Voucher,
				Reason:  "outflow row without item code or description",
			})
			continue
		}

		key := itemKey{code: row.Code, description: row.Description}
		g, exists := groups[key]
		if !exists {
			g = &OutflowGroup{
				Code:        row.Code,
				Description: row.Description,
				Years:       make([]decimal.Decimal, yearCount),
			}
			for i := range g.Years {
				g.Years[i] = decimal.Zero
			}
			groups[key] = g
			groupOrder = append(groupOrder, key)
		}

		g.Count++
		for i, v := range row.Years {
			if i < yearCount && v.Valid {
				g.Years[i] = g.Years[i].Add(v.Decimal)
			}
		}
	}

	if order == OrderSorted {
		sort.SliceStable(groupOrder, func(i, j int) bool {
			if groupOrder[i].code != groupOrder[j].code {
				return groupOrder[i].code < groupOrder[j].code
			}
			return groupOrder[i].description < groupOrder[j].description
		})
	}

	result := make([]OutflowGroup, len(groupOrder))
	for i, key := range groupOrder {
		result[i] = *groups[key]
	}

	return result, dropped
}
