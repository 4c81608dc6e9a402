package repository

import (
	"context"

	"github.com/jhoicas/tienda-admin-api/internal/domain/entity"
)

// ChangePublisher puerto de salida para notificar mutaciones de las colecciones.
type ChangePublisher interface {
	Publish(ctx context.Context, ev entity.ChangeEvent) error
	Close() error
}
