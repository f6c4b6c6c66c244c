// =============================================================================
// Deterioro Report - XLSX Writer
// =============================================================================
//
// This module writes the unified report to a new single-sheet workbook:
//
//   | Codigo | Comprobante | Movimiento | Descripcion de elementos | Conteo_Salidas | 2023 | 2024 | Total |
//   |--------|-------------|------------|--------------------------|----------------|------|------|-------|
//   | C1     | 1a          |            | Desc1                    | 0              | 10   | 5    | 15    |
//   | C2     | 2F_2J_2L    | SALIDAS    | Desc2                    | 2              | 10   | 0    | 10    |
//
// Only data is written here. Header styling, column widths and the table
// object are applied afterwards by the formatter, on the saved file.
//
// An existing file at the output path is replaced. The workbook is saved to a
// temporary sibling first, so a failed save never truncates the previous
// report.
//
// =============================================================================

package xlsxwriter

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ginjaninja78/deterioro-report/internal/types"
	"github.com/ginjaninja78/deterioro-report/pkg/utils"
	"github.com/xuri/excelize/v2"
)

// DefaultSheetName is the name of the single report sheet.
const DefaultSheetName = "Sheet1"

// supportedExtensions are the workbook formats excelize can save.
var supportedExtensions = map[string]bool{
	".xlsx": true,
	".xlsm": true,
	".xltx": true,
	".xltm": true,
}

// Write saves the report to outputPath.
//
// RETURNS:
//   - A types.ErrWrite error if the workbook cannot be built, saved, or moved
//     into place.
func Write(report *types.Report, outputPath string) error {
	if !supportedExtensions[strings.ToLower(filepath.Ext(outputPath))] {
		return types.Errorf(types.ErrWrite, outputPath, "output must be an .xlsx or .xlsm workbook")
	}

	f, err := Build(report)
	if err != nil {
		return types.NewError(types.ErrWrite, outputPath, err)
	}
	defer f.Close()

	return Save(f, outputPath)
}

// Build creates the report workbook in memory.
func Build(report *types.Report) (*excelize.File, error) {
	f := excelize.NewFile()

	sheet := f.GetSheetName(0)
	if sheet != DefaultSheetName {
		if err := f.SetSheetName(sheet, DefaultSheetName); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to name sheet: %w", err)
		}
	}

	header := make([]interface{}, 0, len(report.Headers()))
	for _, h := range report.Headers() {
		header = append(header, h)
	}
	if err := f.SetSheetRow(DefaultSheetName, "A1", &header); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for i, row := range report.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			f.Close()
			return nil, err
		}

		values := rowValues(row)
		if err := f.SetSheetRow(DefaultSheetName, cell, &values); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	return f, nil
}

// rowValues lays a report row out in header order. Absent year values stay
// nil so the cell is left empty.
//
// Cells hold float64, so every value is converted once from its decimal.
// Total is the exact decimal sum converted last. It is the float64 closest
// to that sum, which can differ by one ulp from adding the year cells as
// floats (0.1 + 0.2 against 0.3).
func rowValues(row types.ReportRow) []interface{} {
	values := make([]interface{}, 0, 6+len(row.Years))
	values = append(values,
		row.Code,
		row.Voucher,
		row.Movement,
		row.Description,
		row.OutflowCount,
	)

	for _, v := range row.Years {
		if !v.Valid {
			values = append(values, nil)
			continue
		}
		values = append(values, v.Decimal.InexactFloat64())
	}

	return append(values, row.Total.InexactFloat64())
}

// Save writes an open workbook to path through a temporary sibling file.
func Save(f *excelize.File, path string) error {
	fm := utils.NewFileManager(path)
	if err := fm.EnsureDirectory(); err != nil {
		return types.NewError(types.ErrWrite, path, err)
	}

	tmp := fm.TempPath()
	if err := f.SaveAs(tmp); err != nil {
		fm.Discard(tmp)
		return types.NewError(types.ErrWrite, path, fmt.Errorf("failed to save workbook: %w", err))
	}

	if err := fm.Commit(tmp); err != nil {
		fm.Discard(tmp)
		return types.NewError(types.ErrWrite, path, err)
	}

	return nil
}
