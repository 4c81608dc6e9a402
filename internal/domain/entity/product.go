package entity

import "github.com/shopspring/decimal"

// Product representa un producto del catálogo demo.
// Category es una etiqueta libre, tal como la envía la API.
type Product struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"` // precio unitario, >= 0
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Image       string          `json:"image"` // URL
	Origin      Origin          `json:"origin,omitempty"`
}
