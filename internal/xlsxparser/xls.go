package xlsxparser

import (
	"fmt"
	"os"

	"github.com/ginjaninja78/deterioro-report/internal/types"
	"github.com/shakinm/xlsReader/xls"
)

// ParseXLS reads a legacy BIFF (.xls) workbook, which is what older
// accounting systems still export.
func ParseXLS(path, sheetName string) (*types.Table, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, types.NewError(types.ErrFileAccess, path, err)
	}

	workbook, err := xls.OpenFile(path)
	if err != nil {
		return nil, types.NewError(types.ErrFormat, path, fmt.Errorf("failed to open .xls workbook: %w", err))
	}

	if workbook.GetNumberSheets() == 0 {
		return nil, types.Errorf(types.ErrFormat, path, "workbook has no sheets")
	}

	index := 0
	if sheetName != "" {
		index = -1
		for i := 0; i < workbook.GetNumberSheets(); i++ {
			sheet, err := workbook.GetSheet(i)
			if err == nil && sheet != nil && sheet.GetName() == sheetName {
				index = i
				break
			}
		}
		if index < 0 {
			return nil, types.Errorf(types.ErrFormat, path, "sheet %q not found", sheetName)
		}
	}

	sheet, err := workbook.GetSheet(index)
	if err != nil || sheet == nil {
		return nil, types.Errorf(types.ErrFormat, path, "failed to read sheet %d: %v", index, err)
	}

	rows, err := sheetRows(sheet)
	if err != nil {
		return nil, types.NewError(types.ErrFormat, path, err)
	}

	return buildTable(path, rows)
}

// sheetRows returns every row of the sheet as strings. GetNumberRows is a
// count, not the last index. Missing rows come back empty, which keeps line
// numbers aligned with the sheet.
func sheetRows(sheet *xls.Sheet) ([][]string, error) {
	count := sheet.GetNumberRows()
	rows := make([][]string, 0, count)
	for i := 0; i < count; i++ {
		row, err := sheet.GetRow(i)
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", i+1, err)
		}

		var cells []string
		for _, col := range row.GetCols() {
			cells = append(cells, col.GetString())
		}
		rows = append(rows, cells)
	}
	return rows, nil
}
