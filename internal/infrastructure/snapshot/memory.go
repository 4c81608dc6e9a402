// Package snapshot implementa repository.SnapshotStore sobre memoria y sobre archivos.
// El driver PostgreSQL vive en infrastructure/postgres.
package snapshot

import (
	"context"
	"sync"

	"github.com/jhoicas/tienda-admin-api/internal/domain/repository"
)

var _ repository.SnapshotStore = (*MemoryStore)(nil)

// MemoryStore almacén volátil; útil en tests y en modo demo sin disco.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryStore construye un almacén vacío.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

// Get devuelve una copia del valor guardado.
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

// Put reemplaza el valor completo de la clave.
func (s *MemoryStore) Put(_ context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = append([]byte(nil), data...)
	return nil
}

// PutMany reemplaza todas las claves bajo el mismo lock.
func (s *MemoryStore) PutMany(_ context.Context, entries map[string][]byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range entries {
		s.data[k] = append([]byte(nil), v...)
	}
	return nil
}

// Delete borra la clave; no falla si no existe.
func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}
