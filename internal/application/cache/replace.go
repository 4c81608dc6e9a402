package cache

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/tienda-admin-api/internal/domain/repository"
)

// Replacement reemplazo pendiente de una colección; se confirma con ReplaceAll.
type Replacement interface {
	key() string
	snapshotStore() repository.SnapshotStore
	lock()
	unlock()
	encode() ([]byte, error)
	apply()
}

// Replacing prepara el reemplazo de la colección completa por items.
func (c *Collection[T]) Replacing(items []T) Replacement {
	return &replacement[T]{c: c, items: clone(items)}
}

type replacement[T any] struct {
	c     *Collection[T]
	items []T
	env   envelope[T]
}

func (r *replacement[T]) key() string { return r.c.key }
func (r *replacement[T]) snapshotStore() repository.SnapshotStore { return r.c.store }
func (r *replacement[T]) lock() { r.c.mu.Lock() }
func (r *replacement[T]) unlock() { r.c.mu.Unlock() }

func (r *replacement[T]) encode() ([]byte, error) {
	env, data, err := r.c.encodeLocked(r.items)
	if err != nil {
		return nil, err
	}
	r.env = env
	return data, nil
}

func (r *replacement[T]) apply() { r.c.applyLocked(r.env) }

// ReplaceAll persiste todos los reemplazos con un único PutMany del almacén compartido.
// Si la escritura falla ninguna colección cambia, ni en el almacén ni en memoria.
func ReplaceAll(ctx context.Context, parts ...Replacement) error {
	if len(parts) == 0 {
		return nil
	}
	store := parts[0].snapshotStore()
	seen := make(map[string]bool, len(parts))
	for _, p := range parts {
		if p.snapshotStore() != store {
			return fmt.Errorf("cache: reemplazo conjunto sobre almacenes distintos (%s)", p.key())
		}
		if seen[p.key()] {
			return fmt.Errorf("cache: colección %s repetida en el reemplazo", p.key())
		}
		seen[p.key()] = true
	}

	// Orden fijo de locks entre llamadas concurrentes.
	ordered := append([]Replacement(nil), parts...)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].key() < ordered[j].key() })
	for _, p := range ordered {
		p.lock()
	}
	defer func() {
		for _, p := range ordered {
			p.unlock()
		}
	}()

	entries := make(map[string][]byte, len(ordered))
	for _, p := range ordered {
		data, err := p.encode()
		if err != nil {
			return err
		}
		entries[p.key()] = data
	}
	if err := store.PutMany(ctx, entries); err != nil {
		return fmt.Errorf("cache: reemplazo conjunto: %w", err)
	}
	for _, p := range ordered {
		p.apply()
	}
	return nil
}
