package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/tienda-admin-api/internal/application/cache"
	"github.com/jhoicas/tienda-admin-api/internal/application/dto"
	"github.com/jhoicas/tienda-admin-api/internal/domain"
	"github.com/jhoicas/tienda-admin-api/internal/domain/entity"
	"github.com/jhoicas/tienda-admin-api/internal/domain/repository"
	"github.com/jhoicas/tienda-admin-api/internal/domain/sales"
)

// OrderUseCase casos de uso de órdenes (carritos enriquecidos). Las órdenes no se
// editan después de creadas.
type OrderUseCase struct {
	orders       *cache.Collection[entity.Order]
	users        *cache.Collection[entity.User]
	products     *cache.Collection[entity.Product]
	remote       repository.CartRemote
	ids          *cache.LocalIDGenerator
	events       notifier
	writeThrough bool
	log          zerolog.Logger
	now          func() time.Time
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(
	orders *cache.Collection[entity.Order],
	users *cache.Collection[entity.User],
	products *cache.Collection[entity.Product],
	remote repository.CartRemote,
	ids *cache.LocalIDGenerator,
	pub repository.ChangePublisher,
	writeThrough bool,
	log zerolog.Logger,
) *OrderUseCase {
	return &OrderUseCase{
		orders:       orders,
		users:        users,
		products:     products,
		remote:       remote,
		ids:          ids,
		events:       newNotifier(pub, log),
		writeThrough: writeThrough,
		log:          log,
		now:          time.Now,
	}
}

// OrderFetcher función de carga de la colección de órdenes: trae los carritos de la API
// y los cruza con las colecciones cacheadas de usuarios y productos, para que las
// entidades creadas o editadas localmente también se resuelvan.
// Las tres cargas van en paralelo; si una falla no hay resultado parcial.
func OrderFetcher(
	remote repository.CartRemote,
	users *cache.Collection[entity.User],
	products *cache.Collection[entity.Product],
	limit int,
) cache.FetchFunc[entity.Order] {
	return func(ctx context.Context) ([]entity.Order, error) {
		var (
			carts []entity.RawOrder
			us    []entity.User
			ps    []entity.Product
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() (err error) {
			carts, err = remote.ListCarts(gctx, limit)
			return err
		})
		g.Go(func() (err error) {
			us, err = users.Items(gctx)
			return err
		})
		g.Go(func() (err error) {
			ps, err = products.Items(gctx)
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}
		return sales.BuildLookups(us, ps).EnrichAll(carts, entity.OriginRemote), nil
	}
}

// CheckOrderSnapshot valida una orden leída del almacén y deriva de nuevo subtotales y
// total desde sus líneas; el total guardado nunca se usa tal cual.
// Un elemento sin "lines" (por ejemplo un carrito con "products") se rechaza.
func CheckOrderSnapshot(raw json.RawMessage, o *entity.Order) error {
	var shape struct {
		Lines    json.RawMessage `json:"lines"`
		Products json.RawMessage `json:"products"`
	}
	if err := json.Unmarshal(raw, &shape); err != nil {
		return err
	}
	if len(shape.Lines) == 0 {
		if len(shape.Products) > 0 {
			return fmt.Errorf("orden %d con formato de carrito (products sin lines)", o.ID)
		}
		return fmt.Errorf("orden %d sin lines", o.ID)
	}
	sales.Recalculate(o)
	return nil
}

// List lista las órdenes enriquecidas con paginación.
func (uc *OrderUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.OrderListResponse, error) {
	page.DefaultPage()
	list, err := uc.orders.Items(ctx)
	if err != nil {
		return nil, err
	}
	from, to := page.Bounds(len(list))
	items := make([]dto.OrderResponse, 0, to-from)
	for _, o := range list[from:to] {
		items = append(items, toOrderResponse(o))
	}
	return &dto.OrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: len(list)},
	}, nil
}

// GetByID busca primero en la caché. Si no está y el id es local, no existe en ningún
// lado; si es remoto se trae el carrito de la API y se enriquece con las colecciones
// cacheadas (las tres cargas en paralelo).
func (uc *OrderUseCase) GetByID(ctx context.Context, id int64) (*dto.OrderResponse, error) {
	o, ok, err := uc.orders.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if ok {
		out := toOrderResponse(o)
		return &out, nil
	}
	if entity.ResolveOrigin("", id) == entity.OriginLocal {
		return nil, fmt.Errorf("orden %d: %w", id, domain.ErrNotFound)
	}

	var (
		raw *entity.RawOrder
		us  []entity.User
		ps  []entity.Product
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		raw, err = uc.remote.GetCart(gctx, id)
		return err
	})
	g.Go(func() (err error) {
		us, err = uc.users.Items(gctx)
		return err
	})
	g.Go(func() (err error) {
		ps, err = uc.products.Items(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("orden %d: %w", id, err)
	}
	order := sales.BuildLookups(us, ps).Enrich(*raw, entity.OriginRemote)
	uc.log.Debug().Int64("order_id", id).Msg("orden resuelta desde la API")
	out := toOrderResponse(order)
	return &out, nil
}

// Create arma una orden local a partir de un usuario y 1..N líneas. Usuario y productos
// deben existir en las colecciones cacheadas; el total se calcula con los precios actuales.
func (uc *OrderUseCase) Create(ctx context.Context, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if in.UserID <= 0 {
		return nil, invalid("userId es obligatorio")
	}
	if len(in.Products) == 0 {
		return nil, invalid("la orden debe tener al menos un producto")
	}

	var (
		us []entity.User
		ps []entity.Product
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		us, err = uc.users.Items(gctx)
		return err
	})
	g.Go(func() (err error) {
		ps, err = uc.products.Items(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	lookups := sales.BuildLookups(us, ps)

	if _, ok := lookups.Users[in.UserID]; !ok {
		return nil, invalid("usuario %d no existe", in.UserID)
	}
	items := make([]entity.OrderItem, 0, len(in.Products))
	for i, it := range in.Products {
		if it.Quantity < 1 {
			return nil, invalid("products[%d]: quantity debe ser >= 1", i)
		}
		if _, ok := lookups.Products[it.ProductID]; !ok {
			return nil, invalid("products[%d]: producto %d no existe", i, it.ProductID)
		}
		items = append(items, entity.OrderItem{ProductID: it.ProductID, Quantity: it.Quantity})
	}

	date := uc.now().UTC()
	if in.Date != nil && !in.Date.IsZero() {
		date = in.Date.UTC()
	}
	raw := entity.RawOrder{ID: uc.ids.Next(), UserID: in.UserID, Date: date, Items: items}

	if uc.writeThrough {
		if _, err := uc.remote.CreateCart(ctx, raw); err != nil {
			return nil, fmt.Errorf("crear carrito en API: %w", err)
		}
	}
	order := lookups.Enrich(raw, entity.OriginLocal)
	if err := uc.orders.Put(ctx, order); err != nil {
		return nil, err
	}
	uc.events.notify(ctx, repository.KeyOrders, entity.ActionCreated, order.ID, order.Origin)
	out := toOrderResponse(order)
	return &out, nil
}

// Delete elimina una orden de la caché; si la API la conoce, primero se borra allá.
func (uc *OrderUseCase) Delete(ctx context.Context, id int64) error {
	o, ok, err := uc.orders.Find(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("orden %d: %w", id, domain.ErrNotFound)
	}
	origin := entity.ResolveOrigin(o.Origin, o.ID)
	if uc.writeThrough && origin == entity.OriginRemote {
		if err := uc.remote.DeleteCart(ctx, id); err != nil {
			return fmt.Errorf("eliminar carrito %d en API: %w", id, err)
		}
	}
	if err := uc.orders.Remove(ctx, id); err != nil {
		return err
	}
	uc.events.notify(ctx, repository.KeyOrders, entity.ActionDeleted, id, origin)
	return nil
}

func toOrderResponse(o entity.Order) dto.OrderResponse {
	out := dto.OrderResponse{
		ID:           o.ID,
		UserID:       o.UserID,
		CustomerName: sales.UnknownCustomer,
		Date:         o.Date,
		Lines:        make([]dto.OrderLineResponse, 0, len(o.Lines)),
		TotalPrice:   o.TotalPrice,
		Origin:       string(entity.ResolveOrigin(o.Origin, o.ID)),
	}
	if o.User != nil {
		out.CustomerName = o.User.FullName()
		out.CustomerEmail = o.User.Email
	}
	for _, l := range o.Lines {
		line := dto.OrderLineResponse{
			ProductID:   l.ProductID,
			ProductName: sales.UnknownProduct,
			Quantity:    l.Quantity,
			Subtotal:    l.Subtotal,
		}
		if l.Product != nil {
			line.ProductName = l.Product.Title
			line.Category = sales.CategoryLabel(l.Product.Category)
			line.UnitPrice = l.Product.Price
			line.Resolved = true
		}
		out.Lines = append(out.Lines, line)
	}
	return out
}
