// Package app arma el grafo de dependencias compartido por el servidor HTTP y la CLI.
package app

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/jhoicas/tienda-admin-api/internal/application/analytics"
	"github.com/jhoicas/tienda-admin-api/internal/application/cache"
	"github.com/jhoicas/tienda-admin-api/internal/application/usecase"
	"github.com/jhoicas/tienda-admin-api/internal/domain/entity"
	"github.com/jhoicas/tienda-admin-api/internal/domain/repository"
	"github.com/jhoicas/tienda-admin-api/internal/infrastructure/csvexport"
	"github.com/jhoicas/tienda-admin-api/internal/infrastructure/fakestore"
	"github.com/jhoicas/tienda-admin-api/internal/infrastructure/kafka"
	infrapdf "github.com/jhoicas/tienda-admin-api/internal/infrastructure/pdf"
	"github.com/jhoicas/tienda-admin-api/internal/infrastructure/postgres"
	"github.com/jhoicas/tienda-admin-api/internal/infrastructure/snapshot"
	"github.com/jhoicas/tienda-admin-api/pkg/config"
	"github.com/jhoicas/tienda-admin-api/pkg/logger"
)

// Container casos de uso listos para los adaptadores de entrada.
type Container struct {
	Products  *usecase.ProductUseCase
	Users     *usecase.UserUseCase
	Orders    *usecase.OrderUseCase
	Cache     *usecase.CacheUseCase
	Dashboard *analytics.DashboardUseCase
	Export    *analytics.ExportUseCase

	publisher repository.ChangePublisher
	pool      *pgxpool.Pool
	log       zerolog.Logger
}

// Options permite reemplazar adaptadores de infraestructura (tests).
type Options struct {
	Remote    repository.RemoteStore
	Batch     repository.BatchFetcher
	Store     repository.SnapshotStore
	Publisher repository.ChangePublisher
}

// New construye el contenedor a partir de la configuración.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Container, error) {
	return NewWithOptions(ctx, cfg, log, Options{})
}

// NewWithOptions como New, usando los adaptadores no nulos de opts en lugar de los reales.
func NewWithOptions(ctx context.Context, cfg *config.Config, log *logger.Logger, opts Options) (*Container, error) {
	c := &Container{log: log.Component("app")}

	store := opts.Store
	if store == nil {
		var err error
		if store, err = c.openStore(ctx, cfg); err != nil {
			return nil, err
		}
	}

	remote, batch := opts.Remote, opts.Batch
	if remote == nil {
		client := fakestore.NewClient(fakestore.Config{
			BaseURL:    cfg.Remote.BaseURL,
			Timeout:    cfg.Remote.Timeout,
			MaxRetries: cfg.Remote.MaxRetries,
		}, log.Component("fakestore"))
		remote = client
		if batch == nil {
			batch = client
		}
	}
	if batch == nil {
		return nil, fmt.Errorf("app: falta BatchFetcher para el remoto inyectado")
	}

	c.publisher = opts.Publisher
	if c.publisher == nil {
		pub, err := newPublisher(cfg, log)
		if err != nil {
			c.Close()
			return nil, err
		}
		c.publisher = pub
	}

	cacheLog := log.Component("cache")
	users := cache.NewCollection[entity.User](repository.KeyUsers, store, remote.ListUsers,
		func(u entity.User) int64 { return u.ID }, cacheLog)
	products := cache.NewCollection[entity.Product](repository.KeyProducts, store, remote.ListProducts,
		func(p entity.Product) int64 { return p.ID }, cacheLog)
	orders := cache.NewCollection[entity.Order](repository.KeyOrders, store,
		usecase.OrderFetcher(remote, users, products, cfg.Remote.OrdersLimit),
		func(o entity.Order) int64 { return o.ID }, cacheLog).
		WithItemCheck(usecase.CheckOrderSnapshot)

	ids := cache.NewLocalIDGenerator()
	wt := cfg.Remote.WriteThrough
	c.Products = usecase.NewProductUseCase(products, remote, ids, c.publisher, wt, log.Component("products"))
	c.Users = usecase.NewUserUseCase(users, remote, ids, c.publisher, wt, log.Component("users"))
	c.Orders = usecase.NewOrderUseCase(orders, users, products, remote, ids, c.publisher, wt, log.Component("orders"))
	c.Cache = usecase.NewCacheUseCase(users, products, orders, batch, cfg.Remote.OrdersLimit, log.Component("cache_admin"))

	src := analytics.Sources{Users: users, Products: products, Orders: orders}
	c.Dashboard = analytics.NewDashboardUseCase(src, cfg.Report.Year)
	c.Export = analytics.NewExportUseCase(src, c.Dashboard, csvexport.Encoder{}, infrapdf.NewMarotoReportGenerator(), cfg.App.Name)

	c.log.Info().Str("cache_driver", cfg.Cache.Driver).Bool("write_through", wt).
		Bool("kafka", cfg.Kafka.Enabled()).Msg("contenedor listo")
	return c, nil
}

func (c *Container) openStore(ctx context.Context, cfg *config.Config) (repository.SnapshotStore, error) {
	switch cfg.Cache.Driver {
	case config.CacheDriverMemory:
		return snapshot.NewMemoryStore(), nil
	case config.CacheDriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		st := postgres.NewSnapshotStore(pool)
		if err := st.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, err
		}
		c.pool = pool
		return st, nil
	default:
		return snapshot.NewFileStore(cfg.Cache.Dir)
	}
}

func newPublisher(cfg *config.Config, log *logger.Logger) (repository.ChangePublisher, error) {
	if !cfg.Kafka.Enabled() {
		return kafka.NoopPublisher{}, nil
	}
	pub, err := kafka.NewPublisher(cfg.Kafka, cfg.App.Name, log.Component("kafka"))
	if err != nil {
		return nil, err
	}
	return pub, nil
}

// Close libera el productor de eventos y el pool de PostgreSQL.
func (c *Container) Close() {
	if c.publisher != nil {
		if err := c.publisher.Close(); err != nil {
			c.log.Warn().Err(err).Msg("cerrar publicador de eventos")
		}
	}
	if c.pool != nil {
		c.pool.Close()
	}
}
