// Package cache mantiene una copia local durable de cada colección (usuarios, productos,
// órdenes) sincronizada con las operaciones CRUD.
//
// Política de lectura (read-through): el primer acceso de la colección en el proceso
// consulta el almacén; si hay snapshot se toma como autoritativo y no se llama a la API;
// si no lo hay, se trae de la API y se persiste.
//
// Política de escritura (write-through): toda mutación se aplica sobre una copia, se
// serializa la colección completa y se reemplaza la clave; solo si la escritura fue
// exitosa se publica la copia en memoria.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/jhoicas/tienda-admin-api/internal/domain"
	"github.com/jhoicas/tienda-admin-api/internal/domain/repository"
)

// FetchFunc trae la colección completa desde la fuente remota.
type FetchFunc[T any] func(ctx context.Context) ([]T, error)

// ItemCheck valida cada elemento leído de un snapshot y puede normalizarlo. raw es el
// JSON original del elemento. Un error descarta el snapshot completo.
type ItemCheck[T any] func(raw json.RawMessage, item *T) error

// envelope formato serializado del snapshot. Version crece con cada escritura.
type envelope[T any] struct {
	Version int64     `json:"version"`
	SavedAt time.Time `json:"saved_at"`
	Items   []T       `json:"items"`
}

// rawEnvelope lectura del sobre con los elementos aún sin decodificar.
type rawEnvelope struct {
	Version int64             `json:"version"`
	SavedAt time.Time         `json:"saved_at"`
	Items   []json.RawMessage `json:"items"`
}

// Info estado observable de una colección.
type Info struct {
	Key     string    `json:"key"`
	Loaded  bool      `json:"loaded"`
	Items   int       `json:"items"`
	Version int64     `json:"version"`
	SavedAt time.Time `json:"saved_at,omitempty"`
}

// Managed operaciones de administración comunes a todas las colecciones.
type Managed interface {
	Key() string
	Info() Info
	Reload(ctx context.Context) error
	Invalidate(ctx context.Context) error
}

var _ Managed = (*Collection[struct{}])(nil)

// Collection copia en memoria de una colección respaldada por un SnapshotStore.
// Es segura para uso concurrente.
type Collection[T any] struct {
	key   string
	store repository.SnapshotStore
	fetch FetchFunc[T]
	idOf  func(T) int64
	check ItemCheck[T]
	log   zerolog.Logger
	now   func() time.Time

	sf singleflight.Group

	mu      sync.Mutex
	loaded  bool
	items   []T
	version int64
	savedAt time.Time
}

// NewCollection construye la colección para la clave indicada.
func NewCollection[T any](
	key string,
	store repository.SnapshotStore,
	fetch FetchFunc[T],
	idOf func(T) int64,
	log zerolog.Logger,
) *Collection[T] {
	return &Collection[T]{
		key:   key,
		store: store,
		fetch: fetch,
		idOf:  idOf,
		log:   log.With().Str("collection", key).Logger(),
		now:   time.Now,
	}
}

// WithItemCheck registra la validación aplicada a los elementos de cada snapshot leído.
func (c *Collection[T]) WithItemCheck(fn ItemCheck[T]) *Collection[T] {
	c.check = fn
	return c
}

// Key clave de la colección en el almacén.
func (c *Collection[T]) Key() string { return c.key }

// Items devuelve una copia de la colección, cargándola si es el primer acceso.
func (c *Collection[T]) Items(ctx context.Context) ([]T, error) {
	if err := c.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return clone(c.items), nil
}

// Find busca una entidad por id.
func (c *Collection[T]) Find(ctx context.Context, id int64) (T, bool, error) {
	var zero T
	if err := c.ensureLoaded(ctx); err != nil {
		return zero, false, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, it := range c.items {
		if c.idOf(it) == id {
			return it, true, nil
		}
	}
	return zero, false, nil
}

// Put inserta la entidad o reemplaza la que tenga el mismo id.
func (c *Collection[T]) Put(ctx context.Context, item T) error {
	id := c.idOf(item)
	return c.mutate(ctx, func(items []T) ([]T, error) {
		for i := range items {
			if c.idOf(items[i]) == id {
				items[i] = item
				return items, nil
			}
		}
		return append(items, item), nil
	})
}

// Remove elimina la entidad con el id dado. Devuelve domain.ErrNotFound si no existe.
func (c *Collection[T]) Remove(ctx context.Context, id int64) error {
	return c.mutate(ctx, func(items []T) ([]T, error) {
		for i := range items {
			if c.idOf(items[i]) == id {
				return append(items[:i], items[i+1:]...), nil
			}
		}
		return nil, domain.ErrNotFound
	})
}

// Refresh descarta la copia local y vuelve a traer la colección desde la fuente remota.
func (c *Collection[T]) Refresh(ctx context.Context) ([]T, error) {
	fetched, err := c.fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("cache %s: refresh: %w", c.key, err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.persistLocked(ctx, fetched); err != nil {
		return nil, err
	}
	c.log.Info().Int("items", len(fetched)).Int64("version", c.version).Msg("colección refrescada")
	return clone(c.items), nil
}

// Reload es Refresh sin devolver los items.
func (c *Collection[T]) Reload(ctx context.Context) error {
	_, err := c.Refresh(ctx)
	return err
}

// Invalidate borra el snapshot y la copia en memoria; el próximo acceso recarga.
func (c *Collection[T]) Invalidate(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.store.Delete(ctx, c.key); err != nil {
		return fmt.Errorf("cache %s: borrar snapshot: %w", c.key, err)
	}
	c.loaded = false
	c.items = nil
	c.savedAt = time.Time{}
	c.log.Info().Msg("snapshot invalidado")
	return nil
}

// Info devuelve el estado actual sin forzar la carga.
func (c *Collection[T]) Info() Info {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Info{Key: c.key, Loaded: c.loaded, Items: len(c.items), Version: c.version, SavedAt: c.savedAt}
}

// mutate aplica fn sobre una copia y la persiste completa. Se ejecuta bajo el lock para
// que dos mutaciones concurrentes no se pisen.
func (c *Collection[T]) mutate(ctx context.Context, fn func([]T) ([]T, error)) error {
	if err := c.ensureLoaded(ctx); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	next, err := fn(clone(c.items))
	if err != nil {
		return err
	}
	return c.persistLocked(ctx, next)
}

func (c *Collection[T]) ensureLoaded(ctx context.Context) error {
	c.mu.Lock()
	loaded := c.loaded
	c.mu.Unlock()
	if loaded {
		return nil
	}
	_, err, _ := c.sf.Do(c.key, func() (any, error) {
		return nil, c.load(ctx)
	})
	return err
}

func (c *Collection[T]) load(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loaded {
		return nil
	}

	env, ok, err := c.readSnapshot(ctx)
	if err != nil {
		return err
	}
	if ok {
		c.items = env.Items
		c.version = env.Version
		c.savedAt = env.SavedAt
		c.loaded = true
		c.log.Debug().Int("items", len(env.Items)).Int64("version", env.Version).Msg("snapshot cargado")
		return nil
	}

	fetched, err := c.fetch(ctx)
	if err != nil {
		c.log.Error().Err(err).Msg("carga remota fallida; colección vacía")
		return fmt.Errorf("cache %s: carga remota: %w", c.key, err)
	}
	return c.persistLocked(ctx, fetched)
}

// readSnapshot lee y valida el snapshot. Un snapshot ilegible se registra y se trata
// como ausente; los errores de I/O del almacén sí se propagan.
func (c *Collection[T]) readSnapshot(ctx context.Context) (envelope[T], bool, error) {
	var env envelope[T]
	data, ok, err := c.store.Get(ctx, c.key)
	if err != nil {
		return env, false, fmt.Errorf("cache %s: leer snapshot: %w", c.key, err)
	}
	if !ok || len(data) == 0 {
		return env, false, nil
	}
	if err := c.decodeSnapshot(data, &env); err != nil {
		c.log.Warn().Err(err).Msg("snapshot descartado, se recarga desde la API")
		return env, false, nil
	}
	return env, true, nil
}

// decodeSnapshot acepta el sobre versionado y también el arreglo plano que escribían
// versiones anteriores. Cada elemento pasa por el ItemCheck de la colección.
func (c *Collection[T]) decodeSnapshot(data []byte, env *envelope[T]) error {
	var raw rawEnvelope
	if len(data) > 0 && data[0] == '[' {
		if err := json.Unmarshal(data, &raw.Items); err != nil {
			return errors.Join(domain.ErrCacheCorrupt, err)
		}
	} else {
		if err := json.Unmarshal(data, &raw); err != nil {
			return errors.Join(domain.ErrCacheCorrupt, err)
		}
		if raw.Items == nil {
			return fmt.Errorf("%w: sin items", domain.ErrCacheCorrupt)
		}
	}

	items := make([]T, len(raw.Items))
	for i, r := range raw.Items {
		if err := json.Unmarshal(r, &items[i]); err != nil {
			return fmt.Errorf("%w: elemento %d: %w", domain.ErrCacheCorrupt, i, err)
		}
		if c.check == nil {
			continue
		}
		if err := c.check(r, &items[i]); err != nil {
			return fmt.Errorf("%w: elemento %d: %w", domain.ErrCacheCorrupt, i, err)
		}
	}
	env.Version, env.SavedAt, env.Items = raw.Version, raw.SavedAt, items
	return nil
}

func (c *Collection[T]) persistLocked(ctx context.Context, items []T) error {
	env, data, err := c.encodeLocked(items)
	if err != nil {
		return err
	}
	if err := c.store.Put(ctx, c.key, data); err != nil {
		return fmt.Errorf("cache %s: guardar snapshot: %w", c.key, err)
	}
	c.applyLocked(env)
	return nil
}

// encodeLocked arma el sobre de la siguiente versión sin tocar el estado en memoria.
func (c *Collection[T]) encodeLocked(items []T) (envelope[T], []byte, error) {
	if items == nil {
		items = []T{}
	}
	env := envelope[T]{Version: c.version + 1, SavedAt: c.now().UTC(), Items: items}
	data, err := json.Marshal(env)
	if err != nil {
		return env, nil, fmt.Errorf("cache %s: serializar snapshot: %w", c.key, err)
	}
	return env, data, nil
}

func (c *Collection[T]) applyLocked(env envelope[T]) {
	c.items = env.Items
	c.version = env.Version
	c.savedAt = env.SavedAt
	c.loaded = true
}

func clone[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}
