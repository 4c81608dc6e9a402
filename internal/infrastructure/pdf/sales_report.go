// Package pdf genera el reporte de ventas en PDF con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre de la tienda  │  Año + fecha de generación  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: Órdenes / Productos / Usuarios / Ingreso total    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Categoría | Ingreso | % del total                   │
//	│  TABLA: Mes | Ingreso                                       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: Total del año                                      │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-admin-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorBand    = &props.Color{Red: 235, Green: 241, Blue: 247}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator genera el reporte de ventas usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateSalesReport genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateSalesReport(ctx context.Context, r entity.SalesReport) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(fmt.Sprintf("Reporte de ventas %d", r.Year), true).
		WithAuthor(r.StoreName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitle("VENTAS POR CATEGORÍA"))
	m.AddRows(tableHeaderRow([]string{"Categoría", "Ingreso", "% del total"}, []int{6, 3, 3}))
	m.AddRows(categoryRows(r.Categories)...)

	m.AddRows(row.New(4))
	m.AddRows(sectionTitle(fmt.Sprintf("VENTAS MENSUALES %d", r.Year)))
	m.AddRows(tableHeaderRow([]string{"Mes", "Ingreso"}, []int{6, 6}))
	m.AddRows(monthlyRows(r.Monthly)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(yearTotalRow(r))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(r entity.SalesReport) core.Row {
	generated := r.GeneratedAt
	if generated.IsZero() {
		generated = time.Now()
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(nonEmpty(r.StoreName, "Tienda"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Panel de administración", props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("REPORTE DE VENTAS", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Año %d", r.Year), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Generado: "+generated.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func summaryRow(r entity.SalesReport) core.Row {
	cell := func(label, value string) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Align: align.Center, Top: 1}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Center, Top: 6}),
		)
	}
	return row.New(14).Add(
		cell("ÓRDENES", fmt.Sprint(r.Orders)),
		cell("PRODUCTOS", fmt.Sprint(r.Products)),
		cell("USUARIOS", fmt.Sprint(r.Users)),
		cell("INGRESO TOTAL", "$"+formatMoney(r.Revenue)),
	)
}

func sectionTitle(s string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(s, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2}),
	))
}

func tableHeaderRow(labels []string, sizes []int) core.Row {
	cols := make([]core.Col, 0, len(labels))
	for i, label := range labels {
		a := align.Right
		if i == 0 {
			a = align.Left
		}
		cols = append(cols, col.New(sizes[i]).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(8).Add(cols...).WithStyle(&props.Cell{BackgroundColor: colorBand})
}

// categoryRows: una fila por categoría, con su participación sobre el total de categorías.
func categoryRows(cats []entity.CategoryTotal) []core.Row {
	if len(cats) == 0 {
		return []core.Row{emptyRow("Sin ventas registradas")}
	}
	total := decimal.Zero
	for _, c := range cats {
		total = total.Add(c.Revenue)
	}
	rows := make([]core.Row, 0, len(cats))
	for _, c := range cats {
		share := decimal.Zero
		if total.IsPositive() {
			share = c.Revenue.Div(total).Mul(decimal.NewFromInt(100))
		}
		rows = append(rows, row.New(6).Add(
			col.New(6).Add(text.New(c.Category, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New("$"+formatMoney(c.Revenue), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(3).Add(text.New(share.StringFixed(1)+"%", props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return rows
}

func monthlyRows(months []entity.MonthlyTotal) []core.Row {
	rows := make([]core.Row, 0, len(months))
	for _, m := range months {
		rows = append(rows, row.New(6).Add(
			col.New(6).Add(text.New(m.Month, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(6).Add(text.New("$"+formatMoney(m.Revenue), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return rows
}

func yearTotalRow(r entity.SalesReport) core.Row {
	total := decimal.Zero
	for _, m := range r.Monthly {
		total = total.Add(m.Revenue)
	}
	return row.New(10).Add(
		col.New(6).Add(text.New(fmt.Sprintf("TOTAL %d:", r.Year), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2, Right: 2,
		})),
		col.New(6).Add(text.New("$"+formatMoney(total), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2, Right: 1,
		})),
	)
}

func emptyRow(msg string) core.Row {
	return row.New(6).Add(col.New(12).Add(
		text.New(msg, props.Text{Size: 8, Color: colorGray, Align: align.Center, Top: 1}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney dos decimales y comas de miles. Ej: 1234567.5 → "1,234,567.50"
func formatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	n := len(intPart)
	if n <= 3 {
		return sign + intPart + "." + frac
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	return sign + string(buf) + "." + frac
}
