package snapshot_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-admin-api/internal/domain/repository"
	"github.com/jhoicas/tienda-admin-api/internal/infrastructure/snapshot"
)

// contractSuite verifica el contrato de SnapshotStore para cualquier implementación.
func contractSuite(t *testing.T, store repository.SnapshotStore) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := store.Get(ctx, "orders")
	require.NoError(t, err)
	assert.False(t, ok, "clave inexistente")

	require.NoError(t, store.Put(ctx, "orders", []byte(`{"version":1,"items":[]}`)))
	require.NoError(t, store.Put(ctx, "orders", []byte(`{"version":2,"items":[{"id":1}]}`)))

	got, ok, err := store.Get(ctx, "orders")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"version":2,"items":[{"id":1}]}`, string(got), "Put reemplaza el valor completo")

	require.NoError(t, store.Delete(ctx, "orders"))
	require.NoError(t, store.Delete(ctx, "orders"), "borrar dos veces no falla")
	_, ok, err = store.Get(ctx, "orders")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.PutMany(ctx, map[string][]byte{
		"users":    []byte(`{"version":1,"items":[]}`),
		"products": []byte(`{"version":3,"items":[]}`),
	}))
	got, ok, err = store.Get(ctx, "users")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"version":1,"items":[]}`, string(got))
	got, ok, err = store.Get(ctx, "products")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"version":3,"items":[]}`, string(got))
}

func TestMemoryStore_Contrato(t *testing.T) {
	contractSuite(t, snapshot.NewMemoryStore())
}

func TestMemoryStore_CopiaDefensiva(t *testing.T) {
	ctx := context.Background()
	s := snapshot.NewMemoryStore()
	data := []byte("[1]")
	require.NoError(t, s.Put(ctx, "users", data))
	data[1] = '9'

	got, _, _ := s.Get(ctx, "users")
	assert.Equal(t, "[1]", string(got))
}

func TestFileStore_Contrato(t *testing.T) {
	s, err := snapshot.NewFileStore(filepath.Join(t.TempDir(), "cache"))
	require.NoError(t, err)
	contractSuite(t, s)
}

func TestFileStore_NoDejaTemporales(t *testing.T) {
	dir := t.TempDir()
	s, err := snapshot.NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, s.Put(context.Background(), "products", []byte("[]")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "products.json", entries[0].Name())
}

func TestFileStore_ClaveInvalida(t *testing.T) {
	s, err := snapshot.NewFileStore(t.TempDir())
	require.NoError(t, err)
	assert.Error(t, s.Put(context.Background(), "../etc/passwd", []byte("x")))
}

func TestFileStore_PutManyClaveInvalidaNoEscribeNada(t *testing.T) {
	dir := t.TempDir()
	s, err := snapshot.NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, s.Put(context.Background(), "users", []byte("[1]")))

	err = s.PutMany(context.Background(), map[string][]byte{
		"users":  []byte("[2]"),
		"../etc": []byte("x"),
	})

	assert.Error(t, err)
	got, _, _ := s.Get(context.Background(), "users")
	assert.Equal(t, "[1]", string(got))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "sin temporales huérfanos")
}
