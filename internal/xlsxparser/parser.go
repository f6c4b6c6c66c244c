// =============================================================================
// Deterioro Report - Workbook Loader
// =============================================================================
//
// This module reads the accounting export from a workbook into a
// types.Table. The export is expected to hold one sheet with a single header
// row followed by data rows:
//
//   | Comprobante | Codigo | Descripcion de elementos | Movimiento | 2022 | 2023 | 2024 |
//   |-------------|--------|--------------------------|------------|------|------|------|
//   | 1A          | C1     | Desc1                    | INGRESOS   | 10   | 5    |      |
//   | 2F          | C2     | Desc2                    | SALIDAS    | 3    |      |      |
//
// FORMATS:
//   - .xlsx / .xlsm : read with excelize (this file)
//   - .xls          : legacy BIFF workbooks, read with xlsReader (xls.go)
//
// Cells are read as raw values, so a number formatted as "1,234.50" in the
// sheet is returned as "1234.5" and can be parsed without locale guessing.
//
// =============================================================================

package xlsxparser

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ginjaninja78/deterioro-report/internal/types"
	"github.com/xuri/excelize/v2"
)

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Parse reads a workbook into a Table, dispatching on the file extension.
//
// PARAMETERS:
//   - path: The path to the workbook.
//   - sheetName: The sheet to read. Empty means the first sheet.
//
// RETURNS:
//   - The loaded table.
//   - A types.ErrFileAccess error if the file cannot be opened.
//   - A types.ErrFormat error if the workbook or its header row is unreadable.
func Parse(path, sheetName string) (*types.Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xls":
		return ParseXLS(path, sheetName)
	default:
		return ParseXLSX(path, sheetName)
	}
}

// ParseXLSX reads an Office Open XML workbook.
func ParseXLSX(path, sheetName string) (*types.Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, types.NewError(types.ErrFileAccess, path, err)
	}
	defer file.Close()

	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, types.NewError(types.ErrFormat, path, fmt.Errorf("failed to open workbook: %w", err))
	}
	defer f.Close()

	if sheetName == "" {
		sheetName = f.GetSheetName(0)
		if sheetName == "" {
			return nil, types.Errorf(types.ErrFormat, path, "workbook has no sheets")
		}
	} else if idx, err := f.GetSheetIndex(sheetName); err != nil || idx < 0 {
		return nil, types.Errorf(types.ErrFormat, path, "sheet %q not found", sheetName)
	}

	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, types.NewError(types.ErrFormat, path, fmt.Errorf("failed to read rows: %w", err))
	}

	return buildTable(path, rows)
}

// buildTable locates the header row and turns the remaining rows into a
// Table. The header is the first row that has at least one non-empty cell.
func buildTable(path string, rows [][]string) (*types.Table, error) {
	for i, row := range rows {
		if types.IsRowEmpty(row) {
			continue
		}
		return types.NewTable(path, trimTrailingEmpty(row), rows[i+1:], i+1), nil
	}
	return nil, types.Errorf(types.ErrFormat, path, "sheet has no header row")
}

// trimTrailingEmpty drops empty cells after the last named header, which
// spreadsheets leave behind when a column was once formatted and cleared.
func trimTrailingEmpty(row []string) []string {
	end := len(row)
	for end > 0 && strings.TrimSpace(row[end-1]) == "" {
		end--
	}
	return row[:end]
}
