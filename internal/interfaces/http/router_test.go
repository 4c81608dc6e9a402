package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-admin-api/internal/app"
	"github.com/jhoicas/tienda-admin-api/internal/application/dto"
	apphttp "github.com/jhoicas/tienda-admin-api/internal/interfaces/http"
	"github.com/jhoicas/tienda-admin-api/pkg/config"
	"github.com/jhoicas/tienda-admin-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// fakeStoreAPI imita la API demo: dos productos, un usuario (con "é" para el CSV
// en windows-1252) y un carrito listado más otro (id 5) que solo existe por id.
func fakeStoreAPI(t *testing.T, usersDown bool) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/products", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			_, _ = io.WriteString(w, `{"id":21,"title":"Nuevo","price":5,"category":"misc"}`)
			return
		}
		_, _ = io.WriteString(w, `[
		  {"id":1,"title":"Backpack","price":109.95,"category":"men's clothing","image":"https://img/1.jpg"},
		  {"id":2,"title":"Ring","price":10,"category":"jewelery"}]`)
	})
	mux.HandleFunc("/products/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{}`)
	})
	mux.HandleFunc("/users", func(w http.ResponseWriter, _ *http.Request) {
		if usersDown {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = io.WriteString(w, `[{"id":1,"email":"jose@gmail.com","name":{"firstname":"josé","lastname":"pérez"}}]`)
	})
	mux.HandleFunc("/carts", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			_, _ = io.WriteString(w, `{"id":11,"userId":1,"date":"2020-08-01","products":[]}`)
			return
		}
		_, _ = io.WriteString(w, `[{"id":1,"userId":1,"date":"2020-03-02T00:00:00.000Z","products":[{"productId":1,"quantity":2},{"productId":2,"quantity":1}]}]`)
	})
	mux.HandleFunc("/carts/5", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"id":5,"userId":1,"date":"2020-07-01T00:00:00.000Z","products":[{"productId":2,"quantity":3}]}`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// buildTestApp arma la app Fiber completa sobre un almacén en memoria.
func buildTestApp(t *testing.T, usersDown bool) *fiber.App {
	t.Helper()
	srv := fakeStoreAPI(t, usersDown)
	cfg := &config.Config{
		App:    config.AppConfig{Env: "test", Name: "tienda-test"},
		Remote: config.RemoteConfig{BaseURL: srv.URL, Timeout: 2 * time.Second, WriteThrough: true},
		Cache:  config.CacheConfig{Driver: config.CacheDriverMemory},
		Report: config.ReportConfig{Year: 2020},
	}
	c, err := app.New(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(c.Close)

	fapp := fiber.New()
	apphttp.Router(fapp, apphttp.RouterDeps{
		ProductUC:   c.Products,
		UserUC:      c.Users,
		OrderUC:     c.Orders,
		CacheUC:     c.Cache,
		DashboardUC: c.Dashboard,
		ExportUC:    c.Export,
		Log:         zerolog.Nop(),
	})
	return fapp
}

func do(t *testing.T, a *fiber.App, method, path, body string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := a.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos y usuarios
// ──────────────────────────────────────────────────────────────────────────────

func TestProducts_ListarConPaginacion(t *testing.T) {
	a := buildTestApp(t, false)

	resp := do(t, a, http.MethodGet, "/api/products?limit=1&offset=1", "")

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(fiber.HeaderXRequestID))
	out := decode[dto.ProductListResponse](t, resp)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "Ring", out.Items[0].Title)
	assert.Equal(t, 2, out.Page.Total)
}

func TestProducts_IDInvalido(t *testing.T) {
	a := buildTestApp(t, false)

	resp := do(t, a, http.MethodGet, "/api/products/abc", "")

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_ID", decode[dto.ErrorResponse](t, resp).Code)
}

func TestProducts_NoEncontrado(t *testing.T) {
	a := buildTestApp(t, false)

	resp := do(t, a, http.MethodGet, "/api/products/999", "")

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decode[dto.ErrorResponse](t, resp).Code)
}

func TestProducts_CuerpoInvalido(t *testing.T) {
	a := buildTestApp(t, false)

	resp := do(t, a, http.MethodPost, "/api/products", "{no-json")

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_BODY", decode[dto.ErrorResponse](t, resp).Code)
}

func TestProducts_Validacion(t *testing.T) {
	a := buildTestApp(t, false)

	resp := do(t, a, http.MethodPost, "/api/products", `{"price":"1","category":"x"}`)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decode[dto.ErrorResponse](t, resp).Code)
}

func TestProducts_CrearYLeer(t *testing.T) {
	a := buildTestApp(t, false)

	resp := do(t, a, http.MethodPost, "/api/products", `{"title":"Lamp","price":"12.50","category":"home"}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	created := decode[dto.ProductResponse](t, resp)
	assert.Equal(t, "local", created.Origin)

	resp = do(t, a, http.MethodGet, "/api/products/"+itoa(created.ID), "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Lamp", decode[dto.ProductResponse](t, resp).Title)
}

func TestProducts_ActualizarYEliminar(t *testing.T) {
	a := buildTestApp(t, false)

	resp := do(t, a, http.MethodPut, "/api/products/1", `{"title":"Backpack v2"}`)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Backpack v2", decode[dto.ProductResponse](t, resp).Title)

	resp = do(t, a, http.MethodDelete, "/api/products/1", "")
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp = do(t, a, http.MethodGet, "/api/products/1", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestUsers_FallaRemotaEs502(t *testing.T) {
	a := buildTestApp(t, true)

	resp := do(t, a, http.MethodGet, "/api/users", "")

	assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)
	errResp := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "REMOTE_ERROR", errResp.Code)
	assert.NotContains(t, errResp.Message, "503", "no se filtra el detalle de la falla")
}

// ──────────────────────────────────────────────────────────────────────────────
// Órdenes
// ──────────────────────────────────────────────────────────────────────────────

func TestOrders_ListaEnriquecida(t *testing.T) {
	a := buildTestApp(t, false)

	resp := do(t, a, http.MethodGet, "/api/orders", "")

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	out := decode[dto.OrderListResponse](t, resp)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "josé pérez", out.Items[0].CustomerName)
	assert.Equal(t, "229.9", out.Items[0].TotalPrice.String())
}

func TestOrders_GetByIDFueraDeCacheVaALaAPI(t *testing.T) {
	a := buildTestApp(t, false)

	resp := do(t, a, http.MethodGet, "/api/orders/5", "")

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	out := decode[dto.OrderResponse](t, resp)
	assert.Equal(t, int64(5), out.ID)
	assert.Equal(t, "30", out.TotalPrice.String())
}

func TestOrders_CrearSinLineas(t *testing.T) {
	a := buildTestApp(t, false)

	resp := do(t, a, http.MethodPost, "/api/orders", `{"userId":1,"products":[]}`)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestOrders_CrearYEliminar(t *testing.T) {
	a := buildTestApp(t, false)

	resp := do(t, a, http.MethodPost, "/api/orders", `{"userId":1,"products":[{"productId":2,"quantity":4}]}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	created := decode[dto.OrderResponse](t, resp)
	assert.Equal(t, "40", created.TotalPrice.String())
	assert.Equal(t, "local", created.Origin)

	resp = do(t, a, http.MethodDelete, "/api/orders/"+itoa(created.ID), "")
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Dashboard y exportaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestDashboard_Resumen(t *testing.T) {
	a := buildTestApp(t, false)

	resp := do(t, a, http.MethodGet, "/api/dashboard/summary", "")

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	out := decode[dto.DashboardSummaryDTO](t, resp)
	assert.Equal(t, 2020, out.Year)
	assert.Equal(t, 1, out.TotalOrders)
	assert.Len(t, out.Monthly, 12)
}

func TestDashboard_AñoNoNumerico(t *testing.T) {
	a := buildTestApp(t, false)

	resp := do(t, a, http.MethodGet, "/api/dashboard/monthly?year=abc", "")

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decode[dto.ErrorResponse](t, resp).Code)
}

func TestExport_CSVWindows1252(t *testing.T) {
	a := buildTestApp(t, false)

	resp := do(t, a, http.MethodGet, "/api/export/sales.csv?encoding=windows-1252", "")

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/csv; charset=windows-1252", resp.Header.Get(fiber.HeaderContentType))
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("Order Date,Order ID")))
	assert.Contains(t, string(body), "jos\xe9 p\xe9rez")
}

func TestExport_CSVCodificacionDesconocida(t *testing.T) {
	a := buildTestApp(t, false)

	resp := do(t, a, http.MethodGet, "/api/export/sales.csv?encoding=ebcdic", "")

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestExport_PDF(t *testing.T) {
	a := buildTestApp(t, false)

	resp := do(t, a, http.MethodGet, "/api/export/sales.pdf?year=2020", "")

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "sales-2020.pdf")
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Caché
// ──────────────────────────────────────────────────────────────────────────────

func TestCache_ColeccionDesconocida(t *testing.T) {
	a := buildTestApp(t, false)

	resp := do(t, a, http.MethodPost, "/api/cache/invoices/refresh", "")

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestCache_RefrescarTodoYLimpiar(t *testing.T) {
	a := buildTestApp(t, false)

	resp := do(t, a, http.MethodPost, "/api/cache/all/refresh", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	infos := decode[[]dto.CacheInfoDTO](t, resp)
	require.Len(t, infos, 3)

	resp = do(t, a, http.MethodDelete, "/api/cache/products", "")
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp = do(t, a, http.MethodGet, "/api/cache", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	for _, i := range decode[[]dto.CacheInfoDTO](t, resp) {
		assert.Equal(t, i.Collection != "products", i.Loaded, i.Collection)
	}
}

func itoa(id int64) string { return strconv.FormatInt(id, 10) }
