package types

import (
	"errors"
	"os"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeHeaders(t *testing.T) {
	got := NormalizeHeaders([]string{" Comprobante ", "Codigo\t", "", "Descripción"})

	assert.Equal(t, []string{"Comprobante", "Codigo", "Column_3", "Descripción"}, got)
}

func TestNormalizeHeaders_Repeated(t *testing.T) {
	tests := []struct {
		name    string
		headers []string
		want    []string
	}{
		{"pair", []string{"Obs", "Obs "}, []string{"Obs", "Obs.1"}},
		{"three", []string{"2023", "2023", "2023"}, []string{"2023", "2023.1", "2023.2"}},
		{"suffix already used", []string{"Obs", "Obs.1", "Obs"}, []string{"Obs", "Obs.1", "Obs.2"}},
		{"unique", []string{"Comprobante", "Codigo"}, []string{"Comprobante", "Codigo"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeHeaders(tt.headers))
		})
	}
}

func TestNewTable(t *testing.T) {
	header := []string{"Comprobante ", "Codigo", "2023"}
	body := [][]string{
		{"1A", "C1", "10"},
		{"", "  ", ""},
		{"2F", "C2"},
		{"2J", "C3", "7", "extra"},
	}

	table := NewTable("in.xlsx", header, body, 1)

	assert.Equal(t, "in.xlsx", table.Source)
	assert.Equal(t, []string{"Comprobante", "Codigo", "2023"}, table.Headers)
	require.Len(t, table.Rows, 3)

	// The empty row still counts when numbering lines.
	assert.Equal(t, 2, table.Rows[0].Number)
	assert.Equal(t, 4, table.Rows[1].Number)
	assert.Equal(t, 5, table.Rows[2].Number)

	assert.Equal(t, []string{"2F", "C2", ""}, table.Rows[1].Cells)
	assert.Equal(t, []string{"2J", "C3", "7"}, table.Rows[2].Cells)

	col, ok := table.Column("Comprobante")
	require.True(t, ok)
	assert.Equal(t, 0, col)

	_, ok = table.Column("Movimiento")
	assert.False(t, ok)

	assert.Equal(t, "C1", table.Value(table.Rows[0], 1))
	assert.Equal(t, "", table.Value(table.Rows[0], -1))
	assert.Equal(t, "", table.Value(table.Rows[0], 9))
}

func TestNewTable_RepeatedHeader(t *testing.T) {
	table := NewTable("in.csv", []string{"Codigo", "Codigo"}, [][]string{{"a", "b"}}, 1)

	assert.Equal(t, []string{"Codigo", "Codigo.1"}, table.Headers)

	col, ok := table.Column("Codigo")
	require.True(t, ok)
	assert.Equal(t, 0, col)

	col, ok = table.Column("Codigo.1")
	require.True(t, ok)
	assert.Equal(t, "b", table.Value(table.Rows[0], col))
}

func TestReportHeaders(t *testing.T) {
	r := &Report{Years: []string{"2023", "2024"}}

	assert.Equal(t, []string{
		"Codigo", "Comprobante", "Movimiento", "Descripcion de elementos",
		"Conteo_Salidas", "2023", "2024", "Total",
	}, r.Headers())

	first, last, ok := r.YearRange()
	require.True(t, ok)
	assert.Equal(t, "2023", first)
	assert.Equal(t, "2024", last)
}

func TestReportHeaders_NoYears(t *testing.T) {
	r := &Report{}

	assert.Equal(t, []string{
		"Codigo", "Comprobante", "Movimiento", "Descripcion de elementos",
		"Conteo_Salidas", "Total",
	}, r.Headers())

	_, _, ok := r.YearRange()
	assert.False(t, ok)
}

func TestReportCount(t *testing.T) {
	r := &Report{Rows: []ReportRow{
		{Origin: OriginIncome, Total: decimal.Zero},
		{Origin: OriginOutflow},
		{Origin: OriginOutflow},
	}}

	assert.Equal(t, 1, r.Count(OriginIncome))
	assert.Equal(t, 2, r.Count(OriginOutflow))
	assert.Equal(t, "outflow", OriginOutflow.String())
}

func TestError(t *testing.T) {
	err := NewError(ErrFileAccess, "missing.xlsx", os.ErrNotExist)

	assert.ErrorIs(t, err, ErrFileAccess)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.NotErrorIs(t, err, ErrWrite)
	assert.Equal(t, "file access error (missing.xlsx): file does not exist", err.Error())

	var typed *Error
	require.True(t, errors.As(err, &typed))
	assert.Equal(t, "missing.xlsx", typed.Path)
}

func TestErrorf(t *testing.T) {
	err := Errorf(ErrFormat, "", "sheet %q not found", "Datos")

	assert.ErrorIs(t, err, ErrFormat)
	assert.Equal(t, `format error: sheet "Datos" not found`, err.Error())
}
