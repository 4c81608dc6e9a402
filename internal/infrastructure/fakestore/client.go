// Package fakestore implementa repository.RemoteStore contra la API REST demo de comercio
// (https://fakestoreapi.com o compatible). Usa net/http con timeout por petición y
// reintentos acotados con backoff exponencial.
package fakestore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/tienda-admin-api/internal/domain"
	"github.com/jhoicas/tienda-admin-api/internal/domain/entity"
	"github.com/jhoicas/tienda-admin-api/internal/domain/repository"
)

// Verificar en tiempo de compilación que Client implementa los puertos.
var (
	_ repository.RemoteStore  = (*Client)(nil)
	_ repository.BatchFetcher = (*Client)(nil)
)

const maxResponseBytes = 4 << 20

// Config parámetros del cliente.
type Config struct {
	BaseURL    string
	Timeout    time.Duration // timeout de cada intento
	MaxRetries int           // reintentos adicionales ante errores transitorios
	RetryWait  time.Duration // espera inicial del backoff (default 200ms)
}

// Client adaptador HTTP de la API demo.
type Client struct {
	baseURL    string
	maxRetries int
	retryWait  time.Duration
	httpClient *http.Client
	log        zerolog.Logger
}

// NewClient construye el cliente.
func NewClient(cfg Config, log zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	wait := cfg.RetryWait
	if wait <= 0 {
		wait = 200 * time.Millisecond
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		maxRetries: max(cfg.MaxRetries, 0),
		retryWait:  wait,
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

// ── Products ─────────────────────────────────────────────────────────────────

// ListProducts GET /products.
func (c *Client) ListProducts(ctx context.Context) ([]entity.Product, error) {
	var payload []productPayload
	if err := c.do(ctx, http.MethodGet, "/products", nil, &payload); err != nil {
		return nil, err
	}
	out := make([]entity.Product, 0, len(payload))
	for _, p := range payload {
		out = append(out, p.toEntity())
	}
	return out, nil
}

// GetProduct GET /products/{id}.
func (c *Client) GetProduct(ctx context.Context, id int64) (*entity.Product, error) {
	var payload productPayload
	if err := c.do(ctx, http.MethodGet, "/products/"+itoa(id), nil, &payload); err != nil {
		return nil, err
	}
	p := payload.toEntity()
	return &p, nil
}

// CreateProduct POST /products. Devuelve el producto con el id asignado por la API.
func (c *Client) CreateProduct(ctx context.Context, p entity.Product) (*entity.Product, error) {
	var payload productPayload
	if err := c.do(ctx, http.MethodPost, "/products", productFromEntity(p), &payload); err != nil {
		return nil, err
	}
	created := payload.toEntity()
	return &created, nil
}

// UpdateProduct PUT /products/{id}.
func (c *Client) UpdateProduct(ctx context.Context, p entity.Product) (*entity.Product, error) {
	var payload productPayload
	if err := c.do(ctx, http.MethodPut, "/products/"+itoa(p.ID), productFromEntity(p), &payload); err != nil {
		return nil, err
	}
	updated := payload.toEntity()
	updated.ID = p.ID
	return &updated, nil
}

// DeleteProduct DELETE /products/{id}.
func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/products/"+itoa(id), nil, nil)
}

// ── Users ────────────────────────────────────────────────────────────────────

// ListUsers GET /users.
func (c *Client) ListUsers(ctx context.Context) ([]entity.User, error) {
	var payload []userPayload
	if err := c.do(ctx, http.MethodGet, "/users", nil, &payload); err != nil {
		return nil, err
	}
	out := make([]entity.User, 0, len(payload))
	for _, u := range payload {
		out = append(out, u.toEntity())
	}
	return out, nil
}

// GetUser GET /users/{id}.
func (c *Client) GetUser(ctx context.Context, id int64) (*entity.User, error) {
	var payload userPayload
	if err := c.do(ctx, http.MethodGet, "/users/"+itoa(id), nil, &payload); err != nil {
		return nil, err
	}
	u := payload.toEntity()
	return &u, nil
}

// CreateUser POST /users.
func (c *Client) CreateUser(ctx context.Context, u entity.User) (*entity.User, error) {
	var payload userPayload
	if err := c.do(ctx, http.MethodPost, "/users", userFromEntity(u), &payload); err != nil {
		return nil, err
	}
	created := payload.toEntity()
	return &created, nil
}

// UpdateUser PUT /users/{id}.
func (c *Client) UpdateUser(ctx context.Context, u entity.User) (*entity.User, error) {
	var payload userPayload
	if err := c.do(ctx, http.MethodPut, "/users/"+itoa(u.ID), userFromEntity(u), &payload); err != nil {
		return nil, err
	}
	updated := payload.toEntity()
	updated.ID = u.ID
	return &updated, nil
}

// DeleteUser DELETE /users/{id}.
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/users/"+itoa(id), nil, nil)
}

// ── Carts ────────────────────────────────────────────────────────────────────

// ListCarts GET /carts[?limit=n].
func (c *Client) ListCarts(ctx context.Context, limit int) ([]entity.RawOrder, error) {
	path := "/carts"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	var payload []cartPayload
	if err := c.do(ctx, http.MethodGet, path, nil, &payload); err != nil {
		return nil, err
	}
	out := make([]entity.RawOrder, 0, len(payload))
	for _, cp := range payload {
		out = append(out, cp.toEntity())
	}
	return out, nil
}

// GetCart GET /carts/{id}.
func (c *Client) GetCart(ctx context.Context, id int64) (*entity.RawOrder, error) {
	var payload cartPayload
	if err := c.do(ctx, http.MethodGet, "/carts/"+itoa(id), nil, &payload); err != nil {
		return nil, err
	}
	r := payload.toEntity()
	return &r, nil
}

// CreateCart POST /carts.
func (c *Client) CreateCart(ctx context.Context, raw entity.RawOrder) (*entity.RawOrder, error) {
	var payload cartPayload
	if err := c.do(ctx, http.MethodPost, "/carts", cartFromEntity(raw), &payload); err != nil {
		return nil, err
	}
	r := payload.toEntity()
	if r.Date.IsZero() {
		r.Date = raw.Date
	}
	return &r, nil
}

// DeleteCart DELETE /carts/{id}.
func (c *Client) DeleteCart(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/carts/"+itoa(id), nil, nil)
}

// ── Lote completo ────────────────────────────────────────────────────────────

// FetchAll trae carritos, usuarios y productos en paralelo. Si cualquiera falla se
// cancelan los demás y no se devuelve resultado parcial.
func (c *Client) FetchAll(ctx context.Context, limit int) (repository.Batch, error) {
	var b repository.Batch
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		b.Carts, err = c.ListCarts(gctx, limit)
		return err
	})
	g.Go(func() (err error) {
		b.Users, err = c.ListUsers(gctx)
		return err
	})
	g.Go(func() (err error) {
		b.Products, err = c.ListProducts(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return repository.Batch{}, err
	}
	return b, nil
}

// ── Transporte ───────────────────────────────────────────────────────────────

// do ejecuta la petición con reintentos. Se reintenta solo ante errores de transporte,
// 429 y 5xx; el resto de respuestas no exitosas son definitivas.
// Un 404 o un cuerpo vacío/null donde se esperaba una entidad devuelve domain.ErrNotFound.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body []byte
	if in != nil {
		var err error
		if body, err = json.Marshal(in); err != nil {
			return fmt.Errorf("fakestore: serializar request: %w", err)
		}
	}

	attempt := 0
	op := func() error {
		attempt++
		return c.once(ctx, method, path, body, out)
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.retryWait
	policy.MaxElapsedTime = 0
	b := backoff.WithContext(backoff.WithMaxRetries(policy, uint64(c.maxRetries)), ctx)

	notify := func(err error, wait time.Duration) {
		c.log.Warn().Err(err).Str("method", method).Str("path", path).
			Int("attempt", attempt).Dur("wait", wait).Msg("reintentando petición remota")
	}
	start := time.Now()
	err := backoff.RetryNotify(op, b, notify)
	ev := c.log.Debug()
	if err != nil {
		ev = c.log.Error().Err(err)
	}
	ev.Str("method", method).Str("path", path).Int("attempts", attempt).
		Dur("elapsed", time.Since(start)).Msg("petición remota")
	return err
}

func (c *Client) once(ctx context.Context, method, path string, body []byte, out any) error {
	var reader io.Reader = http.NoBody
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return backoff.Permanent(fmt.Errorf("fakestore: crear request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return backoff.Permanent(fmt.Errorf("%w: %s %s: %w", domain.ErrRemote, method, path, ctx.Err()))
		}
		return fmt.Errorf("%w: %s %s: %v", domain.ErrRemote, method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("%w: leer respuesta %s %s: %v", domain.ErrRemote, method, path, err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return backoff.Permanent(fmt.Errorf("%w: %s %s", domain.ErrNotFound, method, path))
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return fmt.Errorf("%w: %s %s: HTTP %d", domain.ErrRemote, method, path, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return backoff.Permanent(fmt.Errorf("%w: %s %s: HTTP %d: %s", domain.ErrRemote, method, path, resp.StatusCode, truncate(raw)))
	}

	if out == nil {
		return nil
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return backoff.Permanent(fmt.Errorf("%w: %s %s: respuesta vacía", domain.ErrNotFound, method, path))
	}
	if err := json.Unmarshal(trimmed, out); err != nil {
		return backoff.Permanent(fmt.Errorf("%w: deserializar %s %s: %w", domain.ErrRemote, method, path, err))
	}
	return nil
}

func itoa(id int64) string { return strconv.FormatInt(id, 10) }

func truncate(b []byte) string {
	const n = 200
	if len(b) > n {
		return string(b[:n]) + "…"
	}
	return string(b)
}
