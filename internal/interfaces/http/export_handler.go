package http

import (
	"bytes"
	"fmt"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/tienda-admin-api/internal/application/analytics"
)

// ExportHandler descargas de ventas en CSV y PDF.
type ExportHandler struct {
	uc *appanalytics.ExportUseCase
}

// NewExportHandler construye el handler.
func NewExportHandler(uc *appanalytics.ExportUseCase) *ExportHandler {
	return &ExportHandler{uc: uc}
}

// SalesCSV godoc
// @Summary      Exportar ventas a CSV
// @Description  Una fila por línea de orden. Codificaciones: utf-8 (default) y windows-1252.
// @Tags         export
// @Produce      text/csv
// @Param        encoding  query  string  false  "utf-8 | windows-1252"
// @Success      200  {file}  file
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/export/sales.csv [get]
func (h *ExportHandler) SalesCSV(c *fiber.Ctx) error {
	// Se arma completo en memoria para poder responder un error limpio si falla a mitad.
	var buf bytes.Buffer
	enc, err := h.uc.CSV(c.Context(), &buf, c.Query("encoding"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset="+enc)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="sales.csv"`)
	return c.Send(buf.Bytes())
}

// SalesPDF godoc
// @Summary      Reporte de ventas en PDF
// @Tags         export
// @Produce      application/pdf
// @Param        year  query  int  false  "Año del reporte (por defecto REPORT_YEAR)"
// @Success      200  {file}  file
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/export/sales.pdf [get]
func (h *ExportHandler) SalesPDF(c *fiber.Ctx) error {
	year, err := parseYear(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.PDF(c.Context(), year)
	if err != nil {
		return writeError(c, err)
	}
	name := "sales.pdf"
	if year != 0 {
		name = fmt.Sprintf("sales-%d.pdf", year)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, name))
	return c.Send(out)
}
