package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem línea cruda de un carrito: solo referencias.
type OrderItem struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// RawOrder carrito tal como llega de la API (sin resolver usuario ni productos).
type RawOrder struct {
	ID     int64       `json:"id"`
	UserID int64       `json:"userId"`
	Date   time.Time   `json:"date"`
	Items  []OrderItem `json:"products"`
}

// OrderLine línea enriquecida. Product es una copia del producto al momento de armar
// la orden; no sigue ediciones posteriores del catálogo. nil = producto desconocido.
type OrderLine struct {
	ProductID int64           `json:"productId"`
	Quantity  int             `json:"quantity"`
	Product   *Product        `json:"product,omitempty"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// Order orden enriquecida. TotalPrice siempre es la suma de los subtotales de Lines.
// User nil = usuario no resuelto.
type Order struct {
	ID         int64           `json:"id"`
	UserID     int64           `json:"userId"`
	User       *User           `json:"user,omitempty"`
	Date       time.Time       `json:"date"`
	Lines      []OrderLine     `json:"lines"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	Origin     Origin          `json:"origin,omitempty"`
}

// Raw devuelve las referencias crudas de la orden.
func (o *Order) Raw() RawOrder {
	items := make([]OrderItem, 0, len(o.Lines))
	for _, l := range o.Lines {
		items = append(items, OrderItem{ProductID: l.ProductID, Quantity: l.Quantity})
	}
	return RawOrder{ID: o.ID, UserID: o.UserID, Date: o.Date, Items: items}
}
