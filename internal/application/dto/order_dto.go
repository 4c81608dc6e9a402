package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemRequest línea pedida: producto y cantidad.
type OrderItemRequest struct {
	ProductID int64 `json:"productId" validate:"required"`
	Quantity  int   `json:"quantity" validate:"min=1"`
}

// CreateOrderRequest entrada para crear una orden. Date vacío = ahora (UTC).
type CreateOrderRequest struct {
	UserID   int64              `json:"userId" validate:"required"`
	Date     *time.Time         `json:"date"`
	Products []OrderItemRequest `json:"products" validate:"required,min=1,dive"`
}

// OrderLineResponse línea de una orden con el producto tal como estaba al armarla.
type OrderLineResponse struct {
	ProductID   int64           `json:"productId"`
	ProductName string          `json:"product_name"`
	Category    string          `json:"category,omitempty"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	Resolved    bool            `json:"resolved"` // false = producto desconocido
}

// OrderResponse salida de una orden enriquecida.
type OrderResponse struct {
	ID            int64               `json:"id"`
	UserID        int64               `json:"userId"`
	CustomerName  string              `json:"customer_name"`
	CustomerEmail string              `json:"customer_email,omitempty"`
	Date          time.Time           `json:"date"`
	Lines         []OrderLineResponse `json:"lines"`
	TotalPrice    decimal.Decimal     `json:"totalPrice"`
	Origin        string              `json:"origin"`
}

// OrderListResponse lista paginada de órdenes.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
