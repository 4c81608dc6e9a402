package repository

import "context"

// Claves de colección en el almacén de snapshots.
const (
	KeyOrders   = "orders"
	KeyProducts = "products"
	KeyUsers    = "users"
)

// SnapshotStore almacén clave-valor durable para los snapshots serializados de cada colección.
// Put reemplaza el valor completo de la clave de forma atómica (nunca escrituras parciales).
type SnapshotStore interface {
	// Get devuelve el valor y true; (nil, false, nil) si la clave no existe.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, data []byte) error
	// PutMany reemplaza varias claves juntas: o se escriben todas o ninguna.
	PutMany(ctx context.Context, entries map[string][]byte) error
	Delete(ctx context.Context, key string) error
}
