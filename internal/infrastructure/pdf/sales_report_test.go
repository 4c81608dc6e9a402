package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-admin-api/internal/domain/entity"
	"github.com/jhoicas/tienda-admin-api/internal/domain/sales"
	"github.com/jhoicas/tienda-admin-api/internal/infrastructure/pdf"
)

func TestGenerateSalesReport_ProduceDocumentoPDF(t *testing.T) {
	monthly := make([]entity.MonthlyTotal, 0, 12)
	for _, m := range sales.MonthLabels {
		monthly = append(monthly, entity.MonthlyTotal{Month: m, Revenue: decimal.Zero})
	}
	monthly[2].Revenue = decimal.RequireFromString("1234.5")

	out, err := pdf.NewMarotoReportGenerator().GenerateSalesReport(context.Background(), entity.SalesReport{
		StoreName:   "Tienda Demo",
		Year:        2020,
		GeneratedAt: time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC),
		Orders:      7,
		Products:    20,
		Users:       10,
		Revenue:     decimal.RequireFromString("1234.5"),
		Categories: []entity.CategoryTotal{
			{Category: "Electronics", Revenue: decimal.RequireFromString("1000")},
			{Category: "Jewelery", Revenue: decimal.RequireFromString("234.5")},
		},
		Monthly: monthly,
	})

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateSalesReport_SinVentas(t *testing.T) {
	out, err := pdf.NewMarotoReportGenerator().GenerateSalesReport(context.Background(), entity.SalesReport{Year: 2020})

	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestGenerateSalesReport_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := pdf.NewMarotoReportGenerator().GenerateSalesReport(ctx, entity.SalesReport{})

	assert.ErrorIs(t, err, context.Canceled)
}
