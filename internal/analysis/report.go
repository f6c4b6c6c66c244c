package analysis

import (
	"github.com/ginjaninja78/deterioro-report/internal/types"
	"github.com/shopspring/decimal"
)

// BuildReport concatenates the income rows and the outflow groups into the
// unified report layout. Income rows always precede outflow rows, whatever
// their order in the source.
//
// Income rows keep their own voucher code and movement and get an outflow
// count of 0. Outflow groups get opts.OutflowLabel and opts.MovementLabel.
func BuildReport(income []SourceRow, groups []OutflowGroup, years []string, opts Options) *types.Report {
	report := &types.Report{
		Years: append([]string(nil), years...),
		Rows:  make([]types.ReportRow, 0, len(income)+len(groups)),
	}

	for _, row := range income {
		report.Rows = append(report.Rows, types.ReportRow{
			Origin:       types.OriginIncome,
			Code:         row.Code,
			Voucher:      row.Voucher,
			Movement:     row.Movement,
			Description:  row.Description,
			OutflowCount: 0,
			Years:        append([]decimal.NullDecimal(nil), row.Years...),
			Total:        row.Total(),
		})
	}

	for _, g := range groups {
		values := make([]decimal.NullDecimal, len(g.Years))
		for i, v := range g.Years {
			values[i] = decimal.NewNullDecimal(v)
		}

		report.Rows = append(report.Rows, types.ReportRow{
			Origin:       types.OriginOutflow,
			Code:         g.Code,
			Voucher:      opts.OutflowLabel,
			Movement:     opts.MovementLabel,
			Description:  g.Description,
			OutflowCount: g.Count,
			Years:        values,
			Total:        g.Total(),
		})
	}

	return report
}
