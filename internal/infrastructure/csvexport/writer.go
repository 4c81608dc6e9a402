// Package csvexport escribe las filas de venta en CSV con columnas fijas.
package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/tienda-admin-api/internal/domain"
	"github.com/jhoicas/tienda-admin-api/internal/domain/entity"
)

// Headers columnas del CSV, en este orden. Los consumidores existentes dependen de los nombres.
var Headers = []string{
	"Order Date", "Order ID", "Customer Name", "Customer Email", "Product ID",
	"Product Name", "Category", "Unit Price", "Quantity", "Total Amount",
}

// Codificaciones soportadas.
const (
	EncodingUTF8        = "utf-8"
	EncodingWindows1252 = "windows-1252"
)

const dateLayout = "2006-01-02"

// NormalizeEncoding valida el nombre de la codificación; vacío equivale a utf-8.
func NormalizeEncoding(enc string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(enc)) {
	case "", "utf8", EncodingUTF8:
		return EncodingUTF8, nil
	case "cp1252", "latin1", EncodingWindows1252:
		return EncodingWindows1252, nil
	default:
		return "", fmt.Errorf("%w: codificación %q no soportada", domain.ErrInvalidInput, enc)
	}
}

// ContentType valor de la cabecera Content-Type para la codificación.
func ContentType(enc string) string {
	if enc == EncodingWindows1252 {
		return "text/csv; charset=windows-1252"
	}
	return "text/csv; charset=utf-8"
}

// Write escribe cabecera y filas. En windows-1252 los caracteres sin representación
// se reemplazan por el carácter de sustitución de la codificación.
func Write(w io.Writer, records []entity.SalesRecord, enc string) error {
	enc, err := NormalizeEncoding(enc)
	if err != nil {
		return err
	}
	var out io.Writer = w
	var closer io.Closer
	if enc == EncodingWindows1252 {
		tw := transform.NewWriter(w, encoderFor1252())
		out, closer = tw, tw
	}

	cw := csv.NewWriter(out)
	if err := cw.Write(Headers); err != nil {
		return fmt.Errorf("csv: cabecera: %w", err)
	}
	for _, r := range records {
		if err := cw.Write(row(r)); err != nil {
			return fmt.Errorf("csv: orden %d: %w", r.OrderID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("csv: flush: %w", err)
	}
	if closer != nil {
		return closer.Close()
	}
	return nil
}

func encoderFor1252() transform.Transformer {
	return encoding.ReplaceUnsupported(charmap.Windows1252.NewEncoder()).Transformer
}

func row(r entity.SalesRecord) []string {
	date := ""
	if !r.OrderDate.IsZero() {
		date = r.OrderDate.UTC().Format(dateLayout)
	}
	return []string{
		date,
		strconv.FormatInt(r.OrderID, 10),
		r.CustomerName,
		r.CustomerEmail,
		strconv.FormatInt(r.ProductID, 10),
		r.ProductName,
		r.Category,
		r.UnitPrice.StringFixed(2),
		strconv.Itoa(r.Quantity),
		r.TotalAmount.StringFixed(2),
	}
}

// Encoder adapta las funciones del paquete al puerto de exportación de la capa de aplicación.
type Encoder struct{}

// NormalizeEncoding ver NormalizeEncoding.
func (Encoder) NormalizeEncoding(enc string) (string, error) { return NormalizeEncoding(enc) }

// Encode ver Write.
func (Encoder) Encode(w io.Writer, records []entity.SalesRecord, enc string) error {
	return Write(w, records, enc)
}
