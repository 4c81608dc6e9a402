package usecase

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/tienda-admin-api/internal/application/cache"
	"github.com/jhoicas/tienda-admin-api/internal/application/dto"
	"github.com/jhoicas/tienda-admin-api/internal/domain"
	"github.com/jhoicas/tienda-admin-api/internal/domain/entity"
	"github.com/jhoicas/tienda-admin-api/internal/domain/repository"
	"github.com/jhoicas/tienda-admin-api/internal/domain/sales"
)

// CacheUseCase administración de las colecciones cacheadas (refresh, limpieza, precarga).
type CacheUseCase struct {
	users    *cache.Collection[entity.User]
	products *cache.Collection[entity.Product]
	orders   *cache.Collection[entity.Order]
	batch    repository.BatchFetcher
	limit    int
	log      zerolog.Logger
}

// NewCacheUseCase construye el caso de uso.
func NewCacheUseCase(
	users *cache.Collection[entity.User],
	products *cache.Collection[entity.Product],
	orders *cache.Collection[entity.Order],
	batch repository.BatchFetcher,
	ordersLimit int,
	log zerolog.Logger,
) *CacheUseCase {
	return &CacheUseCase{users: users, products: products, orders: orders, batch: batch, limit: ordersLimit, log: log}
}

// Collections nombres aceptados por Refresh y Clear.
func (uc *CacheUseCase) Collections() []string {
	return []string{repository.KeyOrders, repository.KeyProducts, repository.KeyUsers}
}

func (uc *CacheUseCase) managed(name string) (cache.Managed, error) {
	switch name {
	case repository.KeyUsers:
		return uc.users, nil
	case repository.KeyProducts:
		return uc.products, nil
	case repository.KeyOrders:
		return uc.orders, nil
	}
	return nil, fmt.Errorf("%w: %q (válidas: %v)", domain.ErrUnknownCollection, name, uc.Collections())
}

// Info estado de todas las colecciones.
func (uc *CacheUseCase) Info() []dto.CacheInfoDTO {
	out := make([]dto.CacheInfoDTO, 0, 3)
	for _, name := range uc.Collections() {
		m, _ := uc.managed(name)
		out = append(out, toCacheInfo(m.Info()))
	}
	return out
}

// Refresh descarta la copia local de la colección y la vuelve a traer de la API.
// Los cambios locales de esa colección se pierden.
func (uc *CacheUseCase) Refresh(ctx context.Context, name string) (*dto.CacheInfoDTO, error) {
	m, err := uc.managed(name)
	if err != nil {
		return nil, err
	}
	if err := m.Reload(ctx); err != nil {
		return nil, err
	}
	out := toCacheInfo(m.Info())
	return &out, nil
}

// Clear borra el snapshot de la colección; el siguiente acceso recarga desde la API.
func (uc *CacheUseCase) Clear(ctx context.Context, name string) error {
	m, err := uc.managed(name)
	if err != nil {
		return err
	}
	return m.Invalidate(ctx)
}

// RefreshAll trae las tres colecciones de la API en un solo lote y reemplaza las copias
// locales en una sola escritura. Si el lote o la escritura fallan no se toca ninguna colección.
func (uc *CacheUseCase) RefreshAll(ctx context.Context) ([]dto.CacheInfoDTO, error) {
	b, err := uc.batch.FetchAll(ctx, uc.limit)
	if err != nil {
		return nil, fmt.Errorf("precarga: %w", err)
	}
	orders := sales.BuildLookups(b.Users, b.Products).EnrichAll(b.Carts, entity.OriginRemote)
	err = cache.ReplaceAll(ctx,
		uc.users.Replacing(b.Users),
		uc.products.Replacing(b.Products),
		uc.orders.Replacing(orders),
	)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int("users", len(b.Users)).Int("products", len(b.Products)).
		Int("orders", len(orders)).Msg("colecciones precargadas")
	return uc.Info(), nil
}

func toCacheInfo(i cache.Info) dto.CacheInfoDTO {
	return dto.CacheInfoDTO{Collection: i.Key, Loaded: i.Loaded, Items: i.Items, Version: i.Version, SavedAt: i.SavedAt}
}
