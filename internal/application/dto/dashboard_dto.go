package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ChartPoint punto de una serie del dashboard. Name es la categoría o el mes (Jan..Dec).
type ChartPoint struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	Year          int             `json:"year"`
	TotalOrders   int             `json:"total_orders"`
	TotalProducts int             `json:"total_products"`
	TotalUsers    int             `json:"total_users"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"` // todas las órdenes cacheadas

	// Ingreso por categoría, de mayor a menor
	Categories []ChartPoint `json:"categories"`
	// 12 buckets Jan..Dec del año pedido
	Monthly []ChartPoint `json:"monthly"`
}

// CategoryChartDTO respuesta de GET /api/dashboard/categories.
type CategoryChartDTO struct {
	Items []ChartPoint    `json:"items"`
	Total decimal.Decimal `json:"total"`
}

// MonthlyChartDTO respuesta de GET /api/dashboard/monthly.
type MonthlyChartDTO struct {
	Year  int             `json:"year"`
	Items []ChartPoint    `json:"items"`
	Total decimal.Decimal `json:"total"`
}

// CacheInfoDTO estado de una colección cacheada.
type CacheInfoDTO struct {
	Collection string    `json:"collection"`
	Loaded     bool      `json:"loaded"`
	Items      int       `json:"items"`
	Version    int64     `json:"version"`
	SavedAt    time.Time `json:"saved_at,omitempty"`
}
