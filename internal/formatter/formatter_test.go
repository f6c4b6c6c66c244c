package formatter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ginjaninja78/deterioro-report/internal/types"
	"github.com/ginjaninja78/deterioro-report/internal/xlsxwriter"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeReport(t *testing.T) string {
	t.Helper()

	report := &types.Report{
		Years: []string{"2023"},
		Rows: []types.ReportRow{
			{
				Code:        "C1",
				Voucher:     "1A",
				Movement:    "INGRESOS",
				Description: "Tubería de acero galvanizado",
				Years:       []decimal.NullDecimal{decimal.NewNullDecimal(decimal.NewFromInt(1500))},
				Total:       decimal.NewFromInt(1500),
			},
			{
				Code:         "C2",
				Voucher:      "2F_2J_2L",
				Movement:     "SALIDAS",
				Description:  "Valvula",
				OutflowCount: 3,
				Years:        []decimal.NullDecimal{decimal.NewNullDecimal(decimal.NewFromInt(7))},
				Total:        decimal.NewFromInt(7),
			},
		},
	}

	path := filepath.Join(t.TempDir(), "ANALISIS_DETERIORO_2025_modificado.xlsx")
	require.NoError(t, xlsxwriter.Write(report, path))
	return path
}

func TestFormat(t *testing.T) {
	path := writeReport(t)

	require.NoError(t, Format(path, DefaultOptions()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	sheet := f.GetSheetName(0)

	t.Run("table", func(t *testing.T) {
		tables, err := f.GetTables(sheet)
		require.NoError(t, err)
		require.Len(t, tables, 1)

		assert.Equal(t, "Tabla_Deterioro", tables[0].Name)
		assert.Equal(t, "A1:G3", tables[0].Range)
		assert.Equal(t, "TableStyleMedium9", tables[0].StyleName)
		assert.False(t, tables[0].ShowColumnStripes)
		if assert.NotNil(t, tables[0].ShowRowStripes) {
			assert.True(t, *tables[0].ShowRowStripes)
		}
	})

	t.Run("column widths", func(t *testing.T) {
		want := map[string]float64{
			"A": 8,  // "Codigo"
			"B": 13, // "Comprobante"
			"C": 12, // "Movimiento"
			"D": 30, // "Tubería de acero galvanizado"
			"E": 16, // "Conteo_Salidas"
			"F": 6,  // "2023", "1500"
			"G": 7,  // "Total"
		}
		for col, width := range want {
			got, err := f.GetColWidth(sheet, col)
			require.NoError(t, err)
			assert.Equal(t, width, got, "column %s", col)
		}
	})

	t.Run("header style", func(t *testing.T) {
		for _, cell := range []string{"A1", "D1", "G1"} {
			idx, err := f.GetCellStyle(sheet, cell)
			require.NoError(t, err)

			style, err := f.GetStyle(idx)
			require.NoError(t, err)

			require.NotNil(t, style.Font)
			assert.True(t, style.Font.Bold)
			require.NotNil(t, style.Alignment)
			assert.Equal(t, "center", style.Alignment.Horizontal)
			assert.Equal(t, "center", style.Alignment.Vertical)
			require.NotEmpty(t, style.Fill.Color)
			assert.Contains(t, strings.ToUpper(style.Fill.Color[0]), "79CCB3")
			assert.Len(t, style.Border, 4)
		}
	})

	t.Run("data unchanged", func(t *testing.T) {
		rows, err := f.GetRows(sheet)
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, []string{"C2", "2F_2J_2L", "SALIDAS", "Valvula", "3", "7", "7"}, rows[2])
	})
}

func TestFormat_CustomOptions(t *testing.T) {
	path := writeReport(t)

	opts := DefaultOptions()
	opts.TableName = "Resumen"
	opts.WidthPadding = 0

	require.NoError(t, Format(path, opts))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	tables, err := f.GetTables(f.GetSheetName(0))
	require.NoError(t, err)
	require.Len(t, tables, 1)
	assert.Equal(t, "Resumen", tables[0].Name)

	width, err := f.GetColWidth(f.GetSheetName(0), "A")
	require.NoError(t, err)
	assert.Equal(t, float64(6), width)
}

func TestFormat_MissingFile(t *testing.T) {
	err := Format(filepath.Join(t.TempDir(), "missing.xlsx"), DefaultOptions())
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrWrite)
}

func TestFormat_NotAWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("not a workbook"), 0644))

	err := Format(path, DefaultOptions())
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrWrite)
}

func TestColumnWidth(t *testing.T) {
	rows := [][]string{
		{"Codigo", "Descripcion de elementos"},
		{"C1", "Ñandú"},
		{"C100000"},
	}

	assert.Equal(t, 7, ColumnWidth(rows, 0))
	assert.Equal(t, 24, ColumnWidth(rows, 1))
	assert.Equal(t, 0, ColumnWidth(rows, 2))
	assert.Equal(t, 5, ColumnWidth([][]string{{"Ñandú"}}, 0))
}
