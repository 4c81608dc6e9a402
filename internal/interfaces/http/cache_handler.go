package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-admin-api/internal/application/usecase"
)

// allCollections valor de :collection que refresca las tres colecciones en un lote.
const allCollections = "all"

// CacheHandler administración de la caché local.
type CacheHandler struct {
	uc *usecase.CacheUseCase
}

// NewCacheHandler construye el handler.
func NewCacheHandler(uc *usecase.CacheUseCase) *CacheHandler {
	return &CacheHandler{uc: uc}
}

// Info godoc
// @Summary      Estado de las colecciones cacheadas
// @Tags         cache
// @Produce      json
// @Success      200  {array}  dto.CacheInfoDTO
// @Router       /api/cache [get]
func (h *CacheHandler) Info(c *fiber.Ctx) error {
	return c.JSON(h.uc.Info())
}

// Refresh godoc
// @Summary      Recargar una colección desde la API remota
// @Description  Descarta los cambios locales de la colección. "all" recarga las tres en un solo lote.
// @Tags         cache
// @Produce      json
// @Param        collection  path  string  true  "orders | products | users | all"
// @Success      200  {object}  dto.CacheInfoDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/cache/{collection}/refresh [post]
func (h *CacheHandler) Refresh(c *fiber.Ctx) error {
	name := c.Params("collection")
	if name == allCollections {
		out, err := h.uc.RefreshAll(c.Context())
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(out)
	}
	out, err := h.uc.Refresh(c.Context(), name)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Clear godoc
// @Summary      Borrar el snapshot de una colección
// @Tags         cache
// @Param        collection  path  string  true  "orders | products | users"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/cache/{collection} [delete]
func (h *CacheHandler) Clear(c *fiber.Ctx) error {
	if err := h.uc.Clear(c.Context(), c.Params("collection")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
