package postgres

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/tienda-admin-api/internal/domain/repository"
)

var _ repository.SnapshotStore = (*SnapshotStore)(nil)

// Se guarda bytea y no jsonb: el almacén no interpreta el contenido y un snapshot
// corrupto debe poder leerse tal cual para que la caché lo descarte.
const schemaSQL = `
	CREATE TABLE IF NOT EXISTS cache_snapshots (
		key        TEXT PRIMARY KEY,
		payload    BYTEA NOT NULL,
		revision   BIGINT NOT NULL DEFAULT 1,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`

const indexSQL = `CREATE INDEX IF NOT EXISTS idx_cache_snapshots_updated_at ON cache_snapshots (updated_at)`

// SnapshotStore almacén de snapshots sobre la tabla cache_snapshots (una fila por clave).
type SnapshotStore struct {
	q  Querier
	tx *TxRunner
}

// NewSnapshotStore construye el adaptador sobre el pool.
func NewSnapshotStore(pool *pgxpool.Pool) *SnapshotStore {
	return &SnapshotStore{q: pool, tx: NewTxRunner(pool)}
}

// EnsureSchema crea la tabla y su índice si no existen.
func (s *SnapshotStore) EnsureSchema(ctx context.Context) error {
	return s.tx.Run(ctx, func(q Querier) error {
		if _, err := q.Exec(ctx, schemaSQL); err != nil {
			return fmt.Errorf("crear cache_snapshots: %w", err)
		}
		if _, err := q.Exec(ctx, indexSQL); err != nil {
			return fmt.Errorf("crear índice cache_snapshots: %w", err)
		}
		return nil
	})
}

// Get devuelve el payload de la clave; (nil, false, nil) si no existe.
func (s *SnapshotStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var payload []byte
	err := s.q.QueryRow(ctx, `SELECT payload FROM cache_snapshots WHERE key = $1`, key).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get snapshot %s: %w", key, err)
	}
	return payload, true, nil
}

const upsertSQL = `
	INSERT INTO cache_snapshots (key, payload, revision, updated_at)
	VALUES ($1, $2, 1, NOW())
	ON CONFLICT (key) DO UPDATE
	SET payload = EXCLUDED.payload,
	    revision = cache_snapshots.revision + 1,
	    updated_at = EXCLUDED.updated_at`

// Put reemplaza el payload completo de la clave (upsert). El incremento de revision
// ocurre en la misma sentencia, así que escritores concurrentes no pierden cuentas.
func (s *SnapshotStore) Put(ctx context.Context, key string, data []byte) error {
	if _, err := s.q.Exec(ctx, upsertSQL, key, data); err != nil {
		return fmt.Errorf("put snapshot %s: %w", key, err)
	}
	return nil
}

// PutMany hace el upsert de todas las claves en una sola transacción.
func (s *SnapshotStore) PutMany(ctx context.Context, entries map[string][]byte) error {
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys) // orden fijo de locks de fila
	return s.tx.Run(ctx, func(q Querier) error {
		for _, k := range keys {
			if _, err := q.Exec(ctx, upsertSQL, k, entries[k]); err != nil {
				return fmt.Errorf("put snapshot %s: %w", k, err)
			}
		}
		return nil
	})
}

// Delete borra la clave. Borrar una clave inexistente no es error.
func (s *SnapshotStore) Delete(ctx context.Context, key string) error {
	if _, err := s.q.Exec(ctx, `DELETE FROM cache_snapshots WHERE key = $1`, key); err != nil {
		return fmt.Errorf("delete snapshot %s: %w", key, err)
	}
	return nil
}

// Revision número de escrituras de la clave (0 si no existe).
func (s *SnapshotStore) Revision(ctx context.Context, key string) (int64, error) {
	var rev int64
	err := s.q.QueryRow(ctx, `SELECT revision FROM cache_snapshots WHERE key = $1`, key).Scan(&rev)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("revision snapshot %s: %w", key, err)
	}
	return rev, nil
}
