package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-admin-api/internal/application/dto"
	"github.com/jhoicas/tienda-admin-api/internal/domain"
)

// writeError traduce los errores de dominio a respuestas HTTP.
// Las fallas de la API remota y las internas no exponen el detalle al cliente.
func writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrUnknownCollection):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrRemote):
		logFrom(c).Error().Err(err).Msg("falla de la API remota")
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "REMOTE_ERROR", Message: "la API remota no respondió correctamente"})
	default:
		logFrom(c).Error().Err(err).Msg("error interno")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

// parseID lee el parámetro :id como entero positivo.
func parseID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func badID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id debe ser un entero positivo"})
}

// parseYear lee ?year=; ausente devuelve 0 (año por defecto).
func parseYear(c *fiber.Ctx) (int, error) {
	raw := c.Query("year")
	if raw == "" {
		return 0, nil
	}
	year, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.Join(domain.ErrInvalidInput, errors.New("year debe ser numérico"))
	}
	return year, nil
}

// parsePage lee ?limit= y ?offset=.
func parsePage(c *fiber.Ctx) (dto.PageRequest, error) {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return page, errors.Join(domain.ErrInvalidInput, errors.New("limit y offset deben ser numéricos"))
	}
	if page.Limit > maxPageLimit {
		page.Limit = maxPageLimit
	}
	return page, nil
}

const maxPageLimit = 500
