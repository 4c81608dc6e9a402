package usecase_test

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/jhoicas/tienda-admin-api/internal/application/cache"
	"github.com/jhoicas/tienda-admin-api/internal/application/usecase"
	"github.com/jhoicas/tienda-admin-api/internal/domain/entity"
	"github.com/jhoicas/tienda-admin-api/internal/domain/repository"
	"github.com/jhoicas/tienda-admin-api/internal/infrastructure/snapshot"
)

var clock = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

// firstLocalID primer id que entrega el generador del fixture.
var firstLocalID = clock.UnixMilli()*1000 + 1

type fixture struct {
	remote   *MockRemote
	pub      *MockPublisher
	store    *snapshot.MemoryStore
	users    *cache.Collection[entity.User]
	products *cache.Collection[entity.Product]
	orders   *cache.Collection[entity.Order]
	ids      *cache.LocalIDGenerator
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		remote: new(MockRemote),
		pub:    new(MockPublisher),
		store:  snapshot.NewMemoryStore(),
		ids:    cache.NewLocalIDGeneratorWith(func() time.Time { return clock }, func(int) int { return 0 }),
	}
	f.users = cache.NewCollection[entity.User](repository.KeyUsers, f.store, f.remote.ListUsers,
		func(u entity.User) int64 { return u.ID }, zerolog.Nop())
	f.products = cache.NewCollection[entity.Product](repository.KeyProducts, f.store, f.remote.ListProducts,
		func(p entity.Product) int64 { return p.ID }, zerolog.Nop())
	f.orders = cache.NewCollection[entity.Order](repository.KeyOrders, f.store,
		usecase.OrderFetcher(f.remote, f.users, f.products, 0),
		func(o entity.Order) int64 { return o.ID }, zerolog.Nop()).
		WithItemCheck(usecase.CheckOrderSnapshot)
	t.Cleanup(func() { f.remote.AssertExpectations(t) })
	return f
}

// seedRemote registra las respuestas de listado de la API demo.
func (f *fixture) seedRemote() {
	f.remote.On("ListUsers", mock.Anything).Return(demoUsers(), nil).Maybe()
	f.remote.On("ListProducts", mock.Anything).Return(demoProducts(), nil).Maybe()
	f.remote.On("ListCarts", mock.Anything, 0).Return(demoCarts(), nil).Maybe()
}

func (f *fixture) publishOK() {
	f.pub.On("Publish", mock.Anything, mock.Anything).Return(nil).Maybe()
}

func (f *fixture) productUC(writeThrough bool) *usecase.ProductUseCase {
	return usecase.NewProductUseCase(f.products, f.remote, f.ids, f.pub, writeThrough, zerolog.Nop())
}

func (f *fixture) userUC(writeThrough bool) *usecase.UserUseCase {
	return usecase.NewUserUseCase(f.users, f.remote, f.ids, f.pub, writeThrough, zerolog.Nop())
}

func (f *fixture) orderUC(writeThrough bool) *usecase.OrderUseCase {
	return usecase.NewOrderUseCase(f.orders, f.users, f.products, f.remote, f.ids, f.pub, writeThrough, zerolog.Nop())
}

func demoUsers() []entity.User {
	return []entity.User{
		{ID: 1, Email: "john@gmail.com", Username: "johnd", FirstName: "john", LastName: "doe", Origin: entity.OriginRemote},
		{ID: 2, Email: "morrison@gmail.com", FirstName: "david", LastName: "morrison", Origin: entity.OriginRemote},
	}
}

func demoProducts() []entity.Product {
	return []entity.Product{
		{ID: 1, Title: "Backpack", Price: decimal.RequireFromString("109.95"), Category: "men's clothing", Origin: entity.OriginRemote},
		{ID: 2, Title: "Ring", Price: decimal.NewFromInt(10), Category: "jewelery", Origin: entity.OriginRemote},
	}
}

func demoCarts() []entity.RawOrder {
	return []entity.RawOrder{
		{ID: 1, UserID: 1, Date: time.Date(2020, 3, 2, 0, 0, 0, 0, time.UTC), Items: []entity.OrderItem{
			{ProductID: 1, Quantity: 2}, {ProductID: 2, Quantity: 1}, {ProductID: 99, Quantity: 1},
		}},
		{ID: 2, UserID: 42, Date: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), Items: []entity.OrderItem{
			{ProductID: 2, Quantity: 3},
		}},
	}
}
