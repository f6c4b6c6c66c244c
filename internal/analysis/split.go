package analysis

import (
	"strings"

	"github.com/ginjaninja78/deterioro-report/internal/types"
)

// Split partitions the table rows by voucher code. A row whose uppercased
// Comprobante is an income code goes to Income, an outflow code to Outflow,
// anything else to Dropped. The three sets are disjoint.
//
// Year values are parsed for kept rows only; a non-numeric year cell in a kept
// row fails with types.ErrFormat. A table without a Comprobante column fails
// with types.ErrSchema.
func Split(table *types.Table, years []YearColumn, opts Options) (*Partition, error) {
	voucherCol, ok := table.Column(types.ColumnVoucher)
	if !ok {
		return nil, types.Errorf(types.ErrSchema, table.Source, "missing required column %q", types.ColumnVoucher)
	}
	codeCol := columnOrNone(table, types.ColumnCode)
	descCol := columnOrNone(table, types.ColumnDescription)
	movementCol := columnOrNone(table, types.ColumnMovement)

	income := codeSet(opts.IncomeCodes)
	outflow := codeSet(opts.OutflowCodes)

	p := &Partition{}
	for _, row := range table.Rows {
		voucher := table.Value(row, voucherCol)
		key := strings.ToUpper(voucher)

		isIncome, isOutflow := income[key], outflow[key]
		if !isIncome && !isOutflow {
			p.Dropped = append(p.Dropped, DroppedRow{
				Line:    row.Number,
				Voucher: voucher,
				Reason:  "unclassified voucher code",
			})
			continue
		}

		values, err := parseYears(table, row, years, opts.DecimalComma)
		if err != nil {
			return nil, err
		}

		src := SourceRow{
			Line:        row.Number,
			Voucher:     voucher,
			Code:        table.Value(row, codeCol),
			Description: table.Value(row, descCol),
			Movement:    table.Value(row, movementCol),
			Years:       values,
		}

		if isIncome {
			p.Income = append(p.Income, src)
		} else {
			p.Outflow = append(p.Outflow, src)
		}
	}

	return p, nil
}

func codeSet(codes []string) map[string]bool {
	set := make(map[string]bool, len(codes))
	for _, c := range codes {
		set[strings.ToUpper(c)] = true
	}
	return set
}

// columnOrNone returns the column index, or -1 so that Table.Value yields "".
func columnOrNone(table *types.Table, name string) int {
	if i, ok := table.Column(name); ok {
		return i
	}
	return -1
}
