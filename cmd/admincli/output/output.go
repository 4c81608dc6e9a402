// Package output formatea la salida de la CLI en la terminal.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-admin-api/internal/application/dto"
)

var (
	colorSuccess = lipgloss.Color("#10B981")
	colorWarning = lipgloss.Color("#F59E0B")
	colorError   = lipgloss.Color("#EF4444")
	colorMuted   = lipgloss.Color("#6B7280")
	colorPrimary = lipgloss.Color("#7C3AED")

	successStyle = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(colorWarning).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	primaryStyle = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	barStyle     = lipgloss.NewStyle().Foreground(colorPrimary)
)

const barRune = "█"

// Success imprime un mensaje de éxito.
func Success(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, successStyle.Render("✓ ")+fmt.Sprintf(format, args...))
}

// Warning imprime una advertencia.
func Warning(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, warningStyle.Render("⚠ ")+fmt.Sprintf(format, args...))
}

// Error imprime un error.
func Error(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, errorStyle.Render("✗ ")+fmt.Sprintf(format, args...))
}

// Section imprime un encabezado de sección.
func Section(w io.Writer, title string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, primaryStyle.Render(title))
	fmt.Fprintln(w, mutedStyle.Render(strings.Repeat("═", lipgloss.Width(title))))
}

// BarChart dibuja una barra horizontal por punto, escalada al mayor valor.
// width es el largo máximo de la barra en caracteres.
func BarChart(points []dto.ChartPoint, width int) string {
	if len(points) == 0 {
		return mutedStyle.Render("(sin datos)") + "\n"
	}
	labelWidth := 0
	peak := decimal.Zero
	for _, p := range points {
		labelWidth = max(labelWidth, lipgloss.Width(p.Name))
		if p.Value.GreaterThan(peak) {
			peak = p.Value
		}
	}

	var b strings.Builder
	for _, p := range points {
		n := 0
		if peak.IsPositive() && p.Value.IsPositive() {
			n = int(p.Value.Div(peak).Mul(decimal.NewFromInt(int64(width))).Round(0).IntPart())
			n = max(n, 1)
		}
		label := lipgloss.NewStyle().Width(labelWidth).Render(p.Name)
		bar := barStyle.Render(strings.Repeat(barRune, n))
		fmt.Fprintf(&b, "%s │ %s %s\n", label, bar, mutedStyle.Render(p.Value.StringFixed(2)))
	}
	return b.String()
}
