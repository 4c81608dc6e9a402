// Package sales contiene la lógica pura de ventas: el cruce de carritos con usuarios y
// productos (enriquecimiento de órdenes) y los rollups por categoría y por mes.
// No hace I/O; todo opera sobre colecciones ya cargadas.
package sales

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-admin-api/internal/domain/entity"
)

// Placeholders de presentación para referencias no resueltas.
const (
	UnknownCustomer = "Cliente desconocido"
	UnknownProduct  = "Producto desconocido"
)

// Lookups índices id → entidad construidos una vez por lote.
type Lookups struct {
	Users    map[int64]*entity.User
	Products map[int64]*entity.Product
}

// BuildLookups indexa las colecciones completas de usuarios y productos.
// Se construye una sola vez por lote y se reutiliza para todas las órdenes.
func BuildLookups(users []entity.User, products []entity.Product) Lookups {
	l := Lookups{
		Users:    make(map[int64]*entity.User, len(users)),
		Products: make(map[int64]*entity.Product, len(products)),
	}
	for i := range users {
		l.Users[users[i].ID] = &users[i]
	}
	for i := range products {
		l.Products[products[i].ID] = &products[i]
	}
	return l
}

// Enrich cruza un carrito crudo con los índices y devuelve la orden enriquecida.
//
// Un producto desconocido deja la línea sin producto y subtotal 0; un usuario
// desconocido deja User en nil. Ninguno de los dos casos es error: el dashboard debe
// poder mostrar una orden aunque le falte un producto descontinuado.
// Usuario y productos se copian, así la orden no comparte memoria con los índices.
func (l Lookups) Enrich(raw entity.RawOrder, origin entity.Origin) entity.Order {
	order := entity.Order{
		ID:     raw.ID,
		UserID: raw.UserID,
		Date:   raw.Date,
		Origin: origin,
		Lines:  make([]entity.OrderLine, 0, len(raw.Items)),
	}
	if u, ok := l.Users[raw.UserID]; ok && u != nil {
		cp := *u
		order.User = &cp
	}
	for _, it := range raw.Items {
		line := entity.OrderLine{ProductID: it.ProductID, Quantity: it.Quantity}
		if p, ok := l.Products[it.ProductID]; ok && p != nil {
			cp := *p
			line.Product = &cp
		}
		order.Lines = append(order.Lines, line)
	}
	Recalculate(&order)
	return order
}

// EnrichAll enriquece un lote de carritos con los mismos índices.
func (l Lookups) EnrichAll(raws []entity.RawOrder, origin entity.Origin) []entity.Order {
	out := make([]entity.Order, 0, len(raws))
	for _, raw := range raws {
		out = append(out, l.Enrich(raw, origin))
	}
	return out
}

// Recalculate deriva de nuevo los subtotales y el total desde los snapshots de producto.
// El total nunca es negativo: precio o cantidad no válidos aportan 0.
func Recalculate(o *entity.Order) {
	total := decimal.Zero
	for i := range o.Lines {
		o.Lines[i].Subtotal = lineAmount(o.Lines[i])
		total = total.Add(o.Lines[i].Subtotal)
	}
	o.TotalPrice = total
}

func lineAmount(l entity.OrderLine) decimal.Decimal {
	if l.Product == nil || l.Quantity <= 0 || l.Product.Price.IsNegative() {
		return decimal.Zero
	}
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
