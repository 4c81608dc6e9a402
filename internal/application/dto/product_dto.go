package dto

import "github.com/shopspring/decimal"

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Title       string          `json:"title" validate:"required,max=200"`
	Price       decimal.Decimal `json:"price" validate:"gte=0"`
	Description string          `json:"description"`
	Category    string          `json:"category" validate:"required"`
	Image       string          `json:"image" validate:"omitempty,url"`
}

// UpdateProductRequest entrada para actualizar un producto. Solo se cambian los campos presentes.
type UpdateProductRequest struct {
	Title       *string          `json:"title"`
	Price       *decimal.Decimal `json:"price"`
	Description *string          `json:"description"`
	Category    *string          `json:"category"`
	Image       *string          `json:"image"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
	Origin      string          `json:"origin"` // remote | local
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
