package usecase

import (
	"fmt"
	"strings"

	"github.com/asaskevich/govalidator"

	"github.com/jhoicas/tienda-admin-api/internal/domain"
	"github.com/jhoicas/tienda-admin-api/internal/domain/entity"
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, fmt.Sprintf(format, args...))
}

func validateProduct(p entity.Product) error {
	switch {
	case strings.TrimSpace(p.Title) == "":
		return invalid("title es obligatorio")
	case len(p.Title) > 200:
		return invalid("title supera 200 caracteres")
	case strings.TrimSpace(p.Category) == "":
		return invalid("category es obligatoria")
	case p.Price.IsNegative():
		return invalid("price no puede ser negativo")
	case p.Image != "" && !isHTTPURL(p.Image):
		return invalid("image debe ser una URL http(s)")
	}
	return nil
}

func validateUser(u entity.User) error {
	switch {
	case strings.TrimSpace(u.Email) == "":
		return invalid("email es obligatorio")
	case !govalidator.IsEmail(u.Email):
		return invalid("email %q no es válido", u.Email)
	case strings.TrimSpace(u.FirstName) == "":
		return invalid("firstname es obligatorio")
	case len(u.FirstName) > 100 || len(u.LastName) > 100:
		return invalid("nombre supera 100 caracteres")
	}
	return nil
}

func isHTTPURL(s string) bool {
	if !govalidator.IsRequestURL(s) {
		return false
	}
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
