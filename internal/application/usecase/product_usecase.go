package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jhoicas/tienda-admin-api/internal/application/cache"
	"github.com/jhoicas/tienda-admin-api/internal/application/dto"
	"github.com/jhoicas/tienda-admin-api/internal/domain"
	"github.com/jhoicas/tienda-admin-api/internal/domain/entity"
	"github.com/jhoicas/tienda-admin-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. La colección cacheada es la fuente de
// lectura; las mutaciones de productos remotos se replican primero en la API.
type ProductUseCase struct {
	products     *cache.Collection[entity.Product]
	remote       repository.ProductRemote
	ids          *cache.LocalIDGenerator
	events       notifier
	writeThrough bool
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	products *cache.Collection[entity.Product],
	remote repository.ProductRemote,
	ids *cache.LocalIDGenerator,
	pub repository.ChangePublisher,
	writeThrough bool,
	log zerolog.Logger,
) *ProductUseCase {
	return &ProductUseCase{
		products:     products,
		remote:       remote,
		ids:          ids,
		events:       newNotifier(pub, log),
		writeThrough: writeThrough,
	}
}

// List lista productos con paginación.
func (uc *ProductUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.products.Items(ctx)
	if err != nil {
		return nil, err
	}
	from, to := page.Bounds(len(list))
	items := make([]dto.ProductResponse, 0, to-from)
	for _, p := range list[from:to] {
		items = append(items, toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: len(list)},
	}, nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	p, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	out := toProductResponse(p)
	return &out, nil
}

// Create crea un producto con id local. Con write-through también se envía a la API;
// si la API falla no se toca la caché.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	p := entity.Product{
		ID:          uc.ids.Next(),
		Title:       strings.TrimSpace(in.Title),
		Price:       in.Price,
		Description: in.Description,
		Category:    strings.TrimSpace(in.Category),
		Image:       strings.TrimSpace(in.Image),
		Origin:      entity.OriginLocal,
	}
	if err := validateProduct(p); err != nil {
		return nil, err
	}
	if uc.writeThrough {
		if _, err := uc.remote.CreateProduct(ctx, p); err != nil {
			return nil, fmt.Errorf("crear producto en API: %w", err)
		}
	}
	if err := uc.products.Put(ctx, p); err != nil {
		return nil, err
	}
	uc.events.notify(ctx, repository.KeyProducts, entity.ActionCreated, p.ID, p.Origin)
	out := toProductResponse(p)
	return &out, nil
}

// Update actualiza los campos presentes del producto.
func (uc *ProductUseCase) Update(ctx context.Context, id int64, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Title != nil {
		p.Title = strings.TrimSpace(*in.Title)
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Category != nil {
		p.Category = strings.TrimSpace(*in.Category)
	}
	if in.Image != nil {
		p.Image = strings.TrimSpace(*in.Image)
	}
	if err := validateProduct(p); err != nil {
		return nil, err
	}
	if uc.replicates(p) {
		if _, err := uc.remote.UpdateProduct(ctx, p); err != nil {
			return nil, fmt.Errorf("actualizar producto %d en API: %w", id, err)
		}
	}
	if err := uc.products.Put(ctx, p); err != nil {
		return nil, err
	}
	uc.events.notify(ctx, repository.KeyProducts, entity.ActionUpdated, p.ID, p.Origin)
	out := toProductResponse(p)
	return &out, nil
}

// Delete elimina un producto. Las órdenes existentes conservan su copia del producto.
func (uc *ProductUseCase) Delete(ctx context.Context, id int64) error {
	p, err := uc.find(ctx, id)
	if err != nil {
		return err
	}
	if uc.replicates(p) {
		if err := uc.remote.DeleteProduct(ctx, id); err != nil {
			return fmt.Errorf("eliminar producto %d en API: %w", id, err)
		}
	}
	if err := uc.products.Remove(ctx, id); err != nil {
		return err
	}
	uc.events.notify(ctx, repository.KeyProducts, entity.ActionDeleted, id, p.Origin)
	return nil
}

func (uc *ProductUseCase) find(ctx context.Context, id int64) (entity.Product, error) {
	p, ok, err := uc.products.Find(ctx, id)
	if err != nil {
		return p, err
	}
	if !ok {
		return p, fmt.Errorf("producto %d: %w", id, domain.ErrNotFound)
	}
	return p, nil
}

// replicates indica si una mutación debe enviarse a la API: solo entidades que la API conoce.
func (uc *ProductUseCase) replicates(p entity.Product) bool {
	return uc.writeThrough && entity.ResolveOrigin(p.Origin, p.ID) == entity.OriginRemote
}

func toProductResponse(p entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:          p.ID,
		Title:       p.Title,
		Price:       p.Price,
		Description: p.Description,
		Category:    p.Category,
		Image:       p.Image,
		Origin:      string(entity.ResolveOrigin(p.Origin, p.ID)),
	}
}
