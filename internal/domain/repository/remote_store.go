package repository

import (
	"context"

	"github.com/jhoicas/tienda-admin-api/internal/domain/entity"
)

// ProductRemote puerto hacia la colección /products de la API remota.
type ProductRemote interface {
	ListProducts(ctx context.Context) ([]entity.Product, error)
	GetProduct(ctx context.Context, id int64) (*entity.Product, error)
	CreateProduct(ctx context.Context, p entity.Product) (*entity.Product, error)
	UpdateProduct(ctx context.Context, p entity.Product) (*entity.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
}

// UserRemote puerto hacia la colección /users de la API remota.
type UserRemote interface {
	ListUsers(ctx context.Context) ([]entity.User, error)
	GetUser(ctx context.Context, id int64) (*entity.User, error)
	CreateUser(ctx context.Context, u entity.User) (*entity.User, error)
	UpdateUser(ctx context.Context, u entity.User) (*entity.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

// CartRemote puerto hacia la colección /carts (órdenes) de la API remota.
type CartRemote interface {
	// ListCarts devuelve los carritos; limit <= 0 significa todos.
	ListCarts(ctx context.Context, limit int) ([]entity.RawOrder, error)
	GetCart(ctx context.Context, id int64) (*entity.RawOrder, error)
	CreateCart(ctx context.Context, raw entity.RawOrder) (*entity.RawOrder, error)
	DeleteCart(ctx context.Context, id int64) error
}

// RemoteStore API remota completa (DIP). Los errores de red o de estado HTTP
// se envuelven en domain.ErrRemote; un id inexistente devuelve domain.ErrNotFound.
type RemoteStore interface {
	ProductRemote
	UserRemote
	CartRemote
}

// Batch las tres colecciones remotas traídas en un mismo lote.
type Batch struct {
	Carts    []entity.RawOrder
	Users    []entity.User
	Products []entity.Product
}

// BatchFetcher trae el lote completo; cualquier falla aborta el lote sin resultado parcial.
type BatchFetcher interface {
	FetchAll(ctx context.Context, limit int) (Batch, error)
}
