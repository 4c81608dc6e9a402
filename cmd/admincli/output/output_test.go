package output_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-admin-api/cmd/admincli/output"
	"github.com/jhoicas/tienda-admin-api/internal/application/dto"
)

func TestBarChart_EscalaAlMayor(t *testing.T) {
	out := output.BarChart([]dto.ChartPoint{
		{Name: "Electronics", Value: decimal.NewFromInt(200)},
		{Name: "Jewelery", Value: decimal.NewFromInt(50)},
		{Name: "Vacía", Value: decimal.Zero},
	}, 20)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, 20, strings.Count(lines[0], "█"))
	assert.Equal(t, 5, strings.Count(lines[1], "█"))
	assert.Zero(t, strings.Count(lines[2], "█"))
	assert.Contains(t, lines[0], "200.00")
}

func TestBarChart_ValorPequeñoTieneAlMenosUnBloque(t *testing.T) {
	out := output.BarChart([]dto.ChartPoint{
		{Name: "a", Value: decimal.NewFromInt(1000)},
		{Name: "b", Value: decimal.NewFromInt(1)},
	}, 10)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Equal(t, 1, strings.Count(lines[1], "█"))
}

func TestBarChart_SinDatos(t *testing.T) {
	assert.Contains(t, output.BarChart(nil, 10), "sin datos")
}
