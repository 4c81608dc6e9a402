package snapshot

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/jhoicas/tienda-admin-api/internal/domain/repository"
)

var _ repository.SnapshotStore = (*FileStore)(nil)

var validKey = regexp.MustCompile(`^[a-z0-9_-]+$`)

// FileStore guarda cada clave en <dir>/<key>.json. Put escribe en un temporal del mismo
// directorio y hace rename, así un lector nunca ve un snapshot a medio escribir.
type FileStore struct {
	dir string
}

// NewFileStore crea el directorio si no existe.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("snapshot: crear directorio %s: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(key string) (string, error) {
	if !validKey.MatchString(key) {
		return "", fmt.Errorf("snapshot: clave inválida %q", key)
	}
	return filepath.Join(s.dir, key+".json"), nil
}

// Get lee el archivo de la clave.
func (s *FileStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	p, err := s.path(key)
	if err != nil {
		return nil, false, err
	}
	data, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("snapshot: leer %s: %w", p, err)
	}
	return data, true, nil
}

// Put reemplaza el archivo de forma atómica (temp + rename).
func (s *FileStore) Put(_ context.Context, key string, data []byte) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	tmp, err := s.writeTemp(key, data)
	if err != nil {
		return err
	}
	defer os.Remove(tmp) // no-op tras un rename exitoso

	if err := os.Rename(tmp, p); err != nil {
		return fmt.Errorf("snapshot: rename: %w", err)
	}
	return nil
}

// PutMany escribe primero todos los temporales y solo si todos quedaron en disco hace
// los rename. Un error de escritura no modifica ninguna clave.
func (s *FileStore) PutMany(_ context.Context, entries map[string][]byte) error {
	keys := make([]string, 0, len(entries))
	for k := range entries {
		if _, err := s.path(k); err != nil {
			return err
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	temps := make(map[string]string, len(keys))
	defer func() {
		for _, tmp := range temps {
			os.Remove(tmp)
		}
	}()
	for _, k := range keys {
		tmp, err := s.writeTemp(k, entries[k])
		if err != nil {
			return err
		}
		temps[k] = tmp
	}
	for _, k := range keys {
		p, _ := s.path(k)
		if err := os.Rename(temps[k], p); err != nil {
			return fmt.Errorf("snapshot: rename %s: %w", k, err)
		}
	}
	return nil
}

// writeTemp deja data en un temporal sincronizado del mismo directorio y devuelve su ruta.
func (s *FileStore) writeTemp(key string, data []byte) (string, error) {
	tmp, err := os.CreateTemp(s.dir, key+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("snapshot: temporal: %w", err)
	}
	name := tmp.Name()
	fail := func(format string, err error) (string, error) {
		tmp.Close()
		os.Remove(name)
		return "", fmt.Errorf(format, err)
	}
	if _, err := tmp.Write(data); err != nil {
		return fail("snapshot: escribir: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fail("snapshot: sync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return "", fmt.Errorf("snapshot: cerrar: %w", err)
	}
	return name, nil
}

// Delete borra el archivo de la clave; no falla si no existe.
func (s *FileStore) Delete(_ context.Context, key string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("snapshot: borrar %s: %w", p, err)
	}
	return nil
}
