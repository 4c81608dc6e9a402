package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategoryTotal ingreso acumulado de una categoría. Derivado, nunca se persiste.
type CategoryTotal struct {
	Category string          `json:"name"`
	Revenue  decimal.Decimal `json:"value"`
}

// MonthlyTotal ingreso de un mes del año reportado. Derivado, nunca se persiste.
type MonthlyTotal struct {
	Month   string          `json:"name"` // Jan..Dec
	Revenue decimal.Decimal `json:"sales"`
}

// SalesRecord fila plana de venta (una por línea de orden) para las exportaciones.
type SalesRecord struct {
	OrderDate     time.Time
	OrderID       int64
	CustomerName  string
	CustomerEmail string
	ProductID     int64
	ProductName   string
	Category      string
	UnitPrice     decimal.Decimal
	Quantity      int
	TotalAmount   decimal.Decimal
}

// SalesReport datos consolidados del reporte de ventas de un año.
type SalesReport struct {
	StoreName   string
	Year        int
	GeneratedAt time.Time
	Orders      int
	Products    int
	Users       int
	Revenue     decimal.Decimal // total de todas las órdenes, sin filtrar por año
	Categories  []CategoryTotal
	Monthly     []MonthlyTotal
}
