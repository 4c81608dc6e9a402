package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/tienda-admin-api/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del dashboard de ventas.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve los KPIs y las dos series del dashboard.
// GET /api/dashboard/summary?year=
//
// @Summary      Resumen del dashboard
// @Tags         dashboard
// @Produce      json
// @Param        year  query  int  false  "Año del rollup mensual (por defecto REPORT_YEAR)"
// @Success      200   {object}  dto.DashboardSummaryDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/dashboard/summary [get]
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	year, err := parseYear(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.GetSummary(c.Context(), year)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetCategories godoc
// @Summary      Ventas por categoría
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.CategoryChartDTO
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/dashboard/categories [get]
func (h *DashboardHandler) GetCategories(c *fiber.Ctx) error {
	out, err := h.uc.GetCategories(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetMonthly godoc
// @Summary      Ventas mensuales de un año
// @Tags         dashboard
// @Produce      json
// @Param        year  query  int  false  "Año (por defecto REPORT_YEAR)"
// @Success      200   {object}  dto.MonthlyChartDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/dashboard/monthly [get]
func (h *DashboardHandler) GetMonthly(c *fiber.Ctx) error {
	year, err := parseYear(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.GetMonthly(c.Context(), year)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
