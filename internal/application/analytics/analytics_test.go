package analytics_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-admin-api/internal/application/analytics"
	"github.com/jhoicas/tienda-admin-api/internal/application/cache"
	"github.com/jhoicas/tienda-admin-api/internal/domain"
	"github.com/jhoicas/tienda-admin-api/internal/domain/entity"
	"github.com/jhoicas/tienda-admin-api/internal/domain/sales"
	"github.com/jhoicas/tienda-admin-api/internal/infrastructure/csvexport"
	"github.com/jhoicas/tienda-admin-api/internal/infrastructure/snapshot"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func static[T any](items []T, err error) cache.FetchFunc[T] {
	return func(context.Context) ([]T, error) { return items, err }
}

func sources(ordersErr error) analytics.Sources {
	store := snapshot.NewMemoryStore()
	users := []entity.User{{ID: 1, Email: "john@gmail.com", FirstName: "john", LastName: "doe"}}
	products := []entity.Product{
		{ID: 1, Title: "Backpack", Price: decimal.RequireFromString("109.95"), Category: "men's clothing"},
		{ID: 2, Title: "Ring", Price: decimal.NewFromInt(10), Category: "jewelery"},
		{ID: 3, Title: "SSD", Price: decimal.NewFromInt(100), Category: "electronics"},
	}
	lookups := sales.BuildLookups(users, products)
	orders := lookups.EnrichAll([]entity.RawOrder{
		{ID: 1, UserID: 1, Date: time.Date(2020, 3, 2, 0, 0, 0, 0, time.UTC), Items: []entity.OrderItem{{ProductID: 1, Quantity: 2}, {ProductID: 2, Quantity: 1}}},
		{ID: 2, UserID: 9, Date: time.Date(2020, 12, 31, 23, 0, 0, 0, time.UTC), Items: []entity.OrderItem{{ProductID: 3, Quantity: 1}}},
		{ID: 3, UserID: 1, Date: time.Date(2019, 5, 1, 0, 0, 0, 0, time.UTC), Items: []entity.OrderItem{{ProductID: 2, Quantity: 5}}},
	}, entity.OriginRemote)
	if ordersErr != nil {
		orders = nil
	}
	return analytics.Sources{
		Users:    cache.NewCollection[entity.User]("users", store, static(users, nil), func(u entity.User) int64 { return u.ID }, zerolog.Nop()),
		Products: cache.NewCollection[entity.Product]("products", store, static(products, nil), func(p entity.Product) int64 { return p.ID }, zerolog.Nop()),
		Orders:   cache.NewCollection[entity.Order]("orders", store, static(orders, ordersErr), func(o entity.Order) int64 { return o.ID }, zerolog.Nop()),
	}
}

type fakePDF struct {
	got entity.SalesReport
}

func (f *fakePDF) GenerateSalesReport(_ context.Context, r entity.SalesReport) ([]byte, error) {
	f.got = r
	return []byte("%PDF-1.3"), nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Dashboard
// ──────────────────────────────────────────────────────────────────────────────

func TestGetSummary(t *testing.T) {
	uc := analytics.NewDashboardUseCase(sources(nil), 2020)

	out, err := uc.GetSummary(context.Background(), 0)

	require.NoError(t, err)
	assert.Equal(t, 2020, out.Year)
	assert.Equal(t, 3, out.TotalOrders)
	assert.Equal(t, 3, out.TotalProducts)
	assert.Equal(t, 1, out.TotalUsers)
	assert.Equal(t, "379.9", out.TotalRevenue.String())

	require.Len(t, out.Categories, 3)
	assert.Equal(t, "Men's clothing", out.Categories[0].Name)
	assert.Equal(t, "219.9", out.Categories[0].Value.String())

	require.Len(t, out.Monthly, 12)
	assert.Equal(t, "229.9", out.Monthly[2].Value.String())
	assert.Equal(t, "100", out.Monthly[11].Value.String())
	assert.True(t, out.Monthly[4].Value.IsZero(), "la orden de 2019 no cuenta")
}

func TestGetMonthly_OtroAño(t *testing.T) {
	uc := analytics.NewDashboardUseCase(sources(nil), 2020)

	out, err := uc.GetMonthly(context.Background(), 2019)

	require.NoError(t, err)
	assert.Equal(t, 2019, out.Year)
	assert.Equal(t, "50", out.Items[4].Value.String())
	assert.Equal(t, "50", out.Total.String())
}

func TestGetMonthly_AñoFueraDeRango(t *testing.T) {
	uc := analytics.NewDashboardUseCase(sources(nil), 2020)

	_, err := uc.GetMonthly(context.Background(), 12)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGetCategories_Total(t *testing.T) {
	uc := analytics.NewDashboardUseCase(sources(nil), 2020)

	out, err := uc.GetCategories(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "379.9", out.Total.String())
}

func TestGetSummary_FallaDeCarga(t *testing.T) {
	uc := analytics.NewDashboardUseCase(sources(domain.ErrRemote), 2020)

	_, err := uc.GetSummary(context.Background(), 2020)

	assert.ErrorIs(t, err, domain.ErrRemote)
}

// ──────────────────────────────────────────────────────────────────────────────
// Exportaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestExportCSV_UnaFilaPorLinea(t *testing.T) {
	src := sources(nil)
	uc := analytics.NewExportUseCase(src, analytics.NewDashboardUseCase(src, 2020), csvexport.Encoder{}, &fakePDF{}, "Tienda")
	var buf bytes.Buffer

	enc, err := uc.CSV(context.Background(), &buf, "")

	require.NoError(t, err)
	assert.Equal(t, csvexport.EncodingUTF8, enc)
	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 5, "cabecera + 4 líneas")
	assert.Equal(t, []string{"2020-03-02", "1", "john doe", "john@gmail.com", "1", "Backpack", "Men's clothing", "109.95", "2", "219.90"}, rows[1])
	assert.Equal(t, sales.UnknownCustomer, rows[3][2])
}

func TestExportCSV_CodificacionInvalidaNoEscribe(t *testing.T) {
	src := sources(nil)
	uc := analytics.NewExportUseCase(src, analytics.NewDashboardUseCase(src, 2020), csvexport.Encoder{}, &fakePDF{}, "Tienda")
	var buf bytes.Buffer

	_, err := uc.CSV(context.Background(), &buf, "utf-16")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, buf.Len())
}

func TestExportPDF_ArmaReporte(t *testing.T) {
	src := sources(nil)
	gen := &fakePDF{}
	uc := analytics.NewExportUseCase(src, analytics.NewDashboardUseCase(src, 2020), csvexport.Encoder{}, gen, "Tienda Demo")

	out, err := uc.PDF(context.Background(), 0)

	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.3"), out)
	assert.Equal(t, "Tienda Demo", gen.got.StoreName)
	assert.Equal(t, 2020, gen.got.Year)
	assert.Equal(t, 3, gen.got.Orders)
	assert.Len(t, gen.got.Monthly, 12)
	assert.Len(t, gen.got.Categories, 3)
}

func TestExportPDF_PropagaError(t *testing.T) {
	src := sources(errors.New("disco"))
	uc := analytics.NewExportUseCase(src, analytics.NewDashboardUseCase(src, 2020), csvexport.Encoder{}, &fakePDF{}, "Tienda")

	_, err := uc.PDF(context.Background(), 2020)

	assert.Error(t, err)
}
