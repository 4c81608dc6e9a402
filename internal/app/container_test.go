package app_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-admin-api/internal/app"
	"github.com/jhoicas/tienda-admin-api/internal/application/dto"
	"github.com/jhoicas/tienda-admin-api/pkg/config"
	"github.com/jhoicas/tienda-admin-api/pkg/logger"
)

func fakeAPI(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/products", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `[{"id":1,"title":"Backpack","price":109.95,"category":"men's clothing"}]`)
	})
	mux.HandleFunc("/users", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `[{"id":1,"email":"john@gmail.com","name":{"firstname":"john","lastname":"doe"}}]`)
	})
	mux.HandleFunc("/carts", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `[{"id":1,"userId":1,"date":"2020-03-02T00:00:00.000Z","products":[{"productId":1,"quantity":2}]}]`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		App:    config.AppConfig{Env: "test", Name: "tienda-test"},
		Remote: config.RemoteConfig{BaseURL: baseURL, Timeout: 2 * time.Second, WriteThrough: true},
		Cache:  config.CacheConfig{Driver: config.CacheDriverMemory},
		Report: config.ReportConfig{Year: 2020},
	}
}

func TestNew_DriverMemoria(t *testing.T) {
	srv := fakeAPI(t)
	c, err := app.New(context.Background(), testConfig(srv.URL), logger.Nop())
	require.NoError(t, err)
	t.Cleanup(c.Close)

	orders, err := c.Orders.List(context.Background(), dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, orders.Items, 1)
	assert.Equal(t, "john doe", orders.Items[0].CustomerName)
	assert.Equal(t, "219.9", orders.Items[0].TotalPrice.String())

	summary, err := c.Dashboard.GetSummary(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.TotalProducts)
	assert.Equal(t, 2020, summary.Year)
}

func TestNew_DriverArchivo(t *testing.T) {
	srv := fakeAPI(t)
	cfg := testConfig(srv.URL)
	cfg.Cache = config.CacheConfig{Driver: config.CacheDriverFile, Dir: t.TempDir()}

	c, err := app.New(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(c.Close)

	infos, err := c.Cache.RefreshAll(context.Background())
	require.NoError(t, err)
	require.Len(t, infos, 3)
	for _, i := range infos {
		assert.True(t, i.Loaded, i.Collection)
	}
}
