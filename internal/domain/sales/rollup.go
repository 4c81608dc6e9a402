package sales

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-admin-api/internal/domain/entity"
)

// MonthLabels etiquetas de los 12 buckets del rollup mensual.
var MonthLabels = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

const uncategorized = "Sin categoría"

// CategoryRollup acumula precio × cantidad por categoría de producto.
// Resultado ordenado por ingreso descendente; a igual ingreso se conserva el orden en
// que se descubrió cada categoría. Las categorías sin ingreso no aparecen.
func CategoryRollup(orders []entity.Order) []entity.CategoryTotal {
	index := make(map[string]int)
	var out []entity.CategoryTotal
	for _, o := range orders {
		for _, l := range o.Lines {
			if l.Product == nil {
				continue
			}
			amount := lineAmount(l)
			if amount.IsZero() {
				continue
			}
			label := CategoryLabel(l.Product.Category)
			i, ok := index[label]
			if !ok {
				i = len(out)
				index[label] = i
				out = append(out, entity.CategoryTotal{Category: label, Revenue: decimal.Zero})
			}
			out[i].Revenue = out[i].Revenue.Add(amount)
		}
	}
	// Se redondea antes de ordenar: dos categorías iguales a 2 decimales conservan el
	// orden de aparición.
	for i := range out {
		out[i].Revenue = out[i].Revenue.Round(2)
	}
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Revenue.GreaterThan(out[b].Revenue)
	})
	return out
}

// MonthlyRollup reparte el total de cada orden del año indicado en 12 buckets (Jan..Dec).
// Las órdenes de otros años se excluyen por completo. El mes se toma en UTC.
func MonthlyRollup(orders []entity.Order, year int) []entity.MonthlyTotal {
	var buckets [12]decimal.Decimal
	for _, o := range orders {
		d := o.Date.UTC()
		if d.Year() != year {
			continue
		}
		total := orderTotal(o)
		buckets[d.Month()-1] = buckets[d.Month()-1].Add(total)
	}
	out := make([]entity.MonthlyTotal, 12)
	for i := range out {
		out[i] = entity.MonthlyTotal{Month: MonthLabels[i], Revenue: buckets[i].Round(2)}
	}
	return out
}

// Revenue suma los totales de todas las órdenes.
func Revenue(orders []entity.Order) decimal.Decimal {
	sum := decimal.Zero
	for _, o := range orders {
		sum = sum.Add(orderTotal(o))
	}
	return sum
}

// CategoryLabel normaliza una categoría a una sola mayúscula inicial ("men's clothing" → "Men's clothing").
func CategoryLabel(category string) string {
	category = strings.TrimSpace(category)
	if category == "" {
		return uncategorized
	}
	r, size := utf8.DecodeRuneInString(category)
	return string(unicode.ToUpper(r)) + category[size:]
}

// orderTotal recalcula el total desde las líneas; nunca confía en TotalPrice persistido.
func orderTotal(o entity.Order) decimal.Decimal {
	total := decimal.Zero
	for _, l := range o.Lines {
		total = total.Add(lineAmount(l))
	}
	return total
}
