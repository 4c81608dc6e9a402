package analytics

import (
	"context"
	"io"
	"time"

	"github.com/jhoicas/tienda-admin-api/internal/domain/entity"
	"github.com/jhoicas/tienda-admin-api/internal/domain/sales"
)

// CSVEncoder puerto de salida: serializa filas de venta en CSV.
type CSVEncoder interface {
	// NormalizeEncoding valida el nombre de la codificación y devuelve su forma canónica.
	NormalizeEncoding(enc string) (string, error)
	Encode(w io.Writer, records []entity.SalesRecord, enc string) error
}

// ReportGenerator puerto de salida: genera el reporte de ventas en PDF.
type ReportGenerator interface {
	GenerateSalesReport(ctx context.Context, r entity.SalesReport) ([]byte, error)
}

// ExportUseCase exportaciones de ventas.
type ExportUseCase struct {
	src       Sources
	dashboard *DashboardUseCase
	csv       CSVEncoder
	pdf       ReportGenerator
	storeName string
	now       func() time.Time
}

// NewExportUseCase construye el caso de uso.
func NewExportUseCase(src Sources, dashboard *DashboardUseCase, csv CSVEncoder, pdf ReportGenerator, storeName string) *ExportUseCase {
	return &ExportUseCase{src: src, dashboard: dashboard, csv: csv, pdf: pdf, storeName: storeName, now: time.Now}
}

// CSV escribe una fila por línea de orden en w y devuelve la codificación usada.
// La codificación se valida antes de leer las colecciones.
func (uc *ExportUseCase) CSV(ctx context.Context, w io.Writer, encoding string) (string, error) {
	enc, err := uc.csv.NormalizeEncoding(encoding)
	if err != nil {
		return "", err
	}
	orders, err := uc.src.Orders.Items(ctx)
	if err != nil {
		return "", err
	}
	if err := uc.csv.Encode(w, sales.Records(orders), enc); err != nil {
		return "", err
	}
	return enc, nil
}

// PDF genera el reporte de ventas del año (0 = año por defecto).
func (uc *ExportUseCase) PDF(ctx context.Context, year int) ([]byte, error) {
	year, err := uc.dashboard.ResolveYear(year)
	if err != nil {
		return nil, err
	}
	snap, err := uc.src.load(ctx)
	if err != nil {
		return nil, err
	}
	return uc.pdf.GenerateSalesReport(ctx, entity.SalesReport{
		StoreName:   uc.storeName,
		Year:        year,
		GeneratedAt: uc.now(),
		Orders:      len(snap.orders),
		Products:    len(snap.products),
		Users:       len(snap.users),
		Revenue:     sales.Revenue(snap.orders).Round(2),
		Categories:  sales.CategoryRollup(snap.orders),
		Monthly:     sales.MonthlyRollup(snap.orders, year),
	})
}
