package xlsxwriter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ginjaninja78/deterioro-report/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleReport() *types.Report {
	return &types.Report{
		Years: []string{"2023", "2024"},
		Rows: []types.ReportRow{
			{
				Origin:      types.OriginIncome,
				Code:        "C1",
				Voucher:     "1a",
				Movement:    "INGRESOS",
				Description: "Desc1",
				Years: []decimal.NullDecimal{
					decimal.NewNullDecimal(decimal.NewFromInt(10)),
					{},
				},
				Total: decimal.NewFromInt(10),
			},
			{
				Origin:       types.OriginOutflow,
				Code:         "C2",
				Voucher:      "2F_2J_2L",
				Movement:     "SALIDAS",
				Description:  "Desc2",
				OutflowCount: 2,
				Years: []decimal.NullDecimal{
					decimal.NewNullDecimal(decimal.RequireFromString("2.5")),
					decimal.NewNullDecimal(decimal.Zero),
				},
				Total: decimal.RequireFromString("2.5"),
			},
		},
	}
}

func readRows(t *testing.T, path string) [][]string {
	t.Helper()

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, DefaultSheetName, f.GetSheetName(0))
	rows, err := f.GetRows(DefaultSheetName)
	require.NoError(t, err)
	return rows
}

func TestWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ANALISIS_DETERIORO_2025_modificado.xlsx")

	require.NoError(t, Write(sampleReport(), path))

	rows := readRows(t, path)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{
		"Codigo", "Comprobante", "Movimiento", "Descripcion de elementos",
		"Conteo_Salidas", "2023", "2024", "Total",
	}, rows[0])
	assert.Equal(t, []string{"C1", "1a", "INGRESOS", "Desc1", "0", "10", "", "10"}, rows[1])
	assert.Equal(t, []string{"C2", "2F_2J_2L", "SALIDAS", "Desc2", "2", "2.5", "0", "2.5"}, rows[2])
}

func TestWrite_TotalFromDecimalSum(t *testing.T) {
	report := &types.Report{
		Years: []string{"2023", "2024"},
		Rows: []types.ReportRow{{
			Origin:      types.OriginIncome,
			Code:        "C1",
			Voucher:     "1A",
			Description: "Desc1",
			Years: []decimal.NullDecimal{
				decimal.NewNullDecimal(decimal.RequireFromString("0.1")),
				decimal.NewNullDecimal(decimal.RequireFromString("0.2")),
			},
			Total: decimal.RequireFromString("0.3"),
		}},
	}
	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, Write(report, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(DefaultSheetName, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"0.1", "0.2", "0.3"}, rows[1][5:])

	// Summing the float cells is one ulp off the written total.
	first, second := 0.1, 0.2
	assert.NotEqual(t, 0.3, first+second)
	assert.Equal(t, 0.3, report.Rows[0].Total.InexactFloat64())
}

func TestWrite_Overwrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0644))

	require.NoError(t, Write(sampleReport(), path))
	assert.Len(t, readRows(t, path), 3)

	// No temporary siblings are left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWrite_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "report.xlsx")

	require.NoError(t, Write(sampleReport(), path))
	assert.FileExists(t, path)
}

func TestWrite_EmptyReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")

	require.NoError(t, Write(&types.Report{}, path))

	rows := readRows(t, path)
	require.Len(t, rows, 1)
	assert.Len(t, rows[0], 6)
}

func TestWrite_UnsupportedExtension(t *testing.T) {
	err := Write(sampleReport(), filepath.Join(t.TempDir(), "report.csv"))
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrWrite)
}

func TestWrite_TargetIsDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	require.NoError(t, os.Mkdir(path, 0755))

	err := Write(sampleReport(), path)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrWrite)
}
