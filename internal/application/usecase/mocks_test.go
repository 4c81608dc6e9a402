package usecase_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/jhoicas/tienda-admin-api/internal/domain/entity"
	"github.com/jhoicas/tienda-admin-api/internal/domain/repository"
)

// MockRemote implementación mock de repository.RemoteStore.
type MockRemote struct {
	mock.Mock
}

var (
	_ repository.RemoteStore     = (*MockRemote)(nil)
	_ repository.BatchFetcher    = (*MockRemote)(nil)
	_ repository.ChangePublisher = (*MockPublisher)(nil)
)

func (m *MockRemote) ListProducts(ctx context.Context) ([]entity.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Product), args.Error(1)
}

func (m *MockRemote) GetProduct(ctx context.Context, id int64) (*entity.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Product), args.Error(1)
}

func (m *MockRemote) CreateProduct(ctx context.Context, p entity.Product) (*entity.Product, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Product), args.Error(1)
}

func (m *MockRemote) UpdateProduct(ctx context.Context, p entity.Product) (*entity.Product, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Product), args.Error(1)
}

func (m *MockRemote) DeleteProduct(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockRemote) ListUsers(ctx context.Context) ([]entity.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.User), args.Error(1)
}

func (m *MockRemote) GetUser(ctx context.Context, id int64) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockRemote) CreateUser(ctx context.Context, u entity.User) (*entity.User, error) {
	args := m.Called(ctx, u)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockRemote) UpdateUser(ctx context.Context, u entity.User) (*entity.User, error) {
	args := m.Called(ctx, u)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockRemote) DeleteUser(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockRemote) ListCarts(ctx context.Context, limit int) ([]entity.RawOrder, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.RawOrder), args.Error(1)
}

func (m *MockRemote) GetCart(ctx context.Context, id int64) (*entity.RawOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.RawOrder), args.Error(1)
}

func (m *MockRemote) CreateCart(ctx context.Context, raw entity.RawOrder) (*entity.RawOrder, error) {
	args := m.Called(ctx, raw)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.RawOrder), args.Error(1)
}

func (m *MockRemote) DeleteCart(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockRemote) FetchAll(ctx context.Context, limit int) (repository.Batch, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).(repository.Batch), args.Error(1)
}

// MockPublisher implementación mock de repository.ChangePublisher.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, ev entity.ChangeEvent) error {
	return m.Called(ctx, ev).Error(0)
}

func (m *MockPublisher) Close() error { return m.Called().Error(0) }
