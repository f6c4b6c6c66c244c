// =============================================================================
// Deterioro Report - Workbook Formatter
// =============================================================================
//
// This module applies the presentation layer to a report that has already
// been written to disk. It reopens the file, and on its first sheet:
//   1. Styles every header cell (row 1): solid fill, bold black font,
//      centered text and thin borders on all four sides
//   2. Sizes every column to its widest value plus a fixed padding
//   3. Registers a named table over the whole populated range, with banded
//      rows and without banded columns; Excel shows filter buttons on it
//   4. Saves the workbook back to the same path
//
// Column widths are measured on the values as Excel displays them by
// default, counting characters rather than bytes.
//
// =============================================================================

package formatter

import (
	"fmt"
	"unicode/utf8"

	"github.com/ginjaninja78/deterioro-report/internal/types"
	"github.com/ginjaninja78/deterioro-report/internal/xlsxwriter"
	"github.com/xuri/excelize/v2"
)

// Options control the presentation of the report.
type Options struct {
	// TableName is the name of the registered table object.
	TableName string

	// TableStyle is a built-in table style, e.g. "TableStyleMedium9".
	TableStyle string

	// HeaderFill is the RGB hex color of the header cells.
	HeaderFill string

	// WidthPadding is added to the widest value of each column.
	WidthPadding int
}

// DefaultOptions returns the presentation of the impairment report.
func DefaultOptions() Options {
	return Options{
		TableName:    "Tabla_Deterioro",
		TableStyle:   "TableStyleMedium9",
		HeaderFill:   "79CCB3",
		WidthPadding: 2,
	}
}

// Format applies header styling, column widths and the table object to the
// workbook at path, in place.
//
// RETURNS:
//   - A types.ErrWrite error if the workbook cannot be reopened, modified
//     or saved.
func Format(path string, opts Options) error {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return types.NewError(types.ErrWrite, path, fmt.Errorf("failed to reopen report: %w", err))
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return types.NewError(types.ErrWrite, path, fmt.Errorf("failed to read report: %w", err))
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return types.Errorf(types.ErrWrite, path, "report has no header row")
	}

	cols := len(rows[0])
	lastCell, err := excelize.CoordinatesToCellName(cols, len(rows))
	if err != nil {
		return types.NewError(types.ErrWrite, path, err)
	}

	if err := styleHeader(f, sheet, cols, opts); err != nil {
		return types.NewError(types.ErrWrite, path, fmt.Errorf("failed to style header: %w", err))
	}

	if err := sizeColumns(f, sheet, rows, cols, opts.WidthPadding); err != nil {
		return types.NewError(types.ErrWrite, path, fmt.Errorf("failed to size columns: %w", err))
	}

	if err := addTable(f, sheet, "A1:"+lastCell, opts); err != nil {
		return types.NewError(types.ErrWrite, path, fmt.Errorf("failed to add table: %w", err))
	}

	return xlsxwriter.Save(f, path)
}

// =============================================================================
// FORMATTING STEPS
// =============================================================================

// styleHeader applies the header style to row 1.
func styleHeader(f *excelize.File, sheet string, cols int, opts Options) error {
	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold:  true,
			Color: "000000",
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{opts.HeaderFill},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: border,
	})
	if err != nil {
		return err
	}

	lastHeader, err := excelize.CoordinatesToCellName(cols, 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", lastHeader, headerStyle)
}

// sizeColumns sets each column width to its longest rendered value plus
// padding.
func sizeColumns(f *excelize.File, sheet string, rows [][]string, cols, padding int) error {
	for c := 0; c < cols; c++ {
		width := ColumnWidth(rows, c) + padding
		if width > excelize.MaxColumnWidth {
			width = excelize.MaxColumnWidth
		}

		name, err := excelize.ColumnNumberToName(c + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, name, name, float64(width)); err != nil {
			return err
		}
	}
	return nil
}

// ColumnWidth returns the character length of the longest value in column c,
// header included.
func ColumnWidth(rows [][]string, c int) int {
	longest := 0
	for _, row := range rows {
		if c >= len(row) {
			continue
		}
		if n := utf8.RuneCountInString(row[c]); n > longest {
			longest = n
		}
	}
	return longest
}

// addTable registers the named table over rangeRef.
func addTable(f *excelize.File, sheet, rangeRef string, opts Options) error {
	showRowStripes := true
	return f.AddTable(sheet, &excelize.Table{
		Range:             rangeRef,
		Name:              opts.TableName,
		StyleName:         opts.TableStyle,
		ShowRowStripes:    &showRowStripes,
		ShowColumnStripes: false,
	})
}
