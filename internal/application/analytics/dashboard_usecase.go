// Package analytics contiene los casos de uso del dashboard de ventas y de las
// exportaciones (CSV, PDF).
package analytics

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/tienda-admin-api/internal/application/cache"
	"github.com/jhoicas/tienda-admin-api/internal/application/dto"
	"github.com/jhoicas/tienda-admin-api/internal/domain"
	"github.com/jhoicas/tienda-admin-api/internal/domain/entity"
	"github.com/jhoicas/tienda-admin-api/internal/domain/sales"
)

// Rango aceptado para el año de los reportes.
const (
	minReportYear = 1970
	maxReportYear = 9999
)

// Sources colecciones cacheadas de las que leen los reportes.
type Sources struct {
	Users    *cache.Collection[entity.User]
	Products *cache.Collection[entity.Product]
	Orders   *cache.Collection[entity.Order]
}

// snapshot las tres colecciones leídas en paralelo.
type snapshot struct {
	users    []entity.User
	products []entity.Product
	orders   []entity.Order
}

// load lee las tres colecciones en paralelo. Cualquier falla aborta la lectura.
func (s Sources) load(ctx context.Context) (snapshot, error) {
	var out snapshot
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out.users, err = s.Users.Items(gctx)
		return err
	})
	g.Go(func() (err error) {
		out.products, err = s.Products.Items(gctx)
		return err
	})
	g.Go(func() (err error) {
		out.orders, err = s.Orders.Items(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return snapshot{}, err
	}
	return out, nil
}

// DashboardUseCase genera los KPIs y las dos series del dashboard (ventas por categoría
// y ventas mensuales de un año).
type DashboardUseCase struct {
	src         Sources
	defaultYear int
}

// NewDashboardUseCase construye el caso de uso. defaultYear se usa cuando la petición
// no indica año (REPORT_YEAR).
func NewDashboardUseCase(src Sources, defaultYear int) *DashboardUseCase {
	return &DashboardUseCase{src: src, defaultYear: defaultYear}
}

// ResolveYear aplica el año por defecto (0) y valida el rango.
func (uc *DashboardUseCase) ResolveYear(year int) (int, error) {
	if year == 0 {
		year = uc.defaultYear
	}
	if year < minReportYear || year > maxReportYear {
		return 0, fmt.Errorf("%w: año %d fuera de rango", domain.ErrInvalidInput, year)
	}
	return year, nil
}

// GetSummary construye el resumen completo del dashboard.
func (uc *DashboardUseCase) GetSummary(ctx context.Context, year int) (*dto.DashboardSummaryDTO, error) {
	year, err := uc.ResolveYear(year)
	if err != nil {
		return nil, err
	}
	snap, err := uc.src.load(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.DashboardSummaryDTO{
		Year:          year,
		TotalOrders:   len(snap.orders),
		TotalProducts: len(snap.products),
		TotalUsers:    len(snap.users),
		TotalRevenue:  sales.Revenue(snap.orders).Round(2),
		Categories:    categoryPoints(sales.CategoryRollup(snap.orders)),
		Monthly:       monthlyPoints(sales.MonthlyRollup(snap.orders, year)),
	}, nil
}

// GetCategories serie de ventas por categoría (todas las órdenes, sin filtro de año).
func (uc *DashboardUseCase) GetCategories(ctx context.Context) (*dto.CategoryChartDTO, error) {
	orders, err := uc.src.Orders.Items(ctx)
	if err != nil {
		return nil, err
	}
	points := categoryPoints(sales.CategoryRollup(orders))
	return &dto.CategoryChartDTO{Items: points, Total: sumPoints(points)}, nil
}

// GetMonthly serie de 12 meses del año indicado (0 = año por defecto).
func (uc *DashboardUseCase) GetMonthly(ctx context.Context, year int) (*dto.MonthlyChartDTO, error) {
	year, err := uc.ResolveYear(year)
	if err != nil {
		return nil, err
	}
	orders, err := uc.src.Orders.Items(ctx)
	if err != nil {
		return nil, err
	}
	points := monthlyPoints(sales.MonthlyRollup(orders, year))
	return &dto.MonthlyChartDTO{Year: year, Items: points, Total: sumPoints(points)}, nil
}

func categoryPoints(in []entity.CategoryTotal) []dto.ChartPoint {
	out := make([]dto.ChartPoint, 0, len(in))
	for _, c := range in {
		out = append(out, dto.ChartPoint{Name: c.Category, Value: c.Revenue})
	}
	return out
}

func monthlyPoints(in []entity.MonthlyTotal) []dto.ChartPoint {
	out := make([]dto.ChartPoint, 0, len(in))
	for _, m := range in {
		out = append(out, dto.ChartPoint{Name: m.Month, Value: m.Revenue})
	}
	return out
}

func sumPoints(points []dto.ChartPoint) decimal.Decimal {
	total := decimal.Zero
	for _, p := range points {
		total = total.Add(p.Value)
	}
	return total
}
