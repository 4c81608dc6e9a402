package dto

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit" validate:"min=0,max=500"`
	Offset int `query:"offset" validate:"min=0"`
}

// DefaultPage aplica valores por defecto. Limit 0 = sin límite (la colección completa).
func (p *PageRequest) DefaultPage() {
	if p.Limit < 0 {
		p.Limit = 0
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// Bounds devuelve los índices [from, to) de la página sobre una colección de n elementos.
func (p PageRequest) Bounds(n int) (int, int) {
	from := min(max(p.Offset, 0), n)
	if p.Limit <= 0 {
		return from, n
	}
	return from, min(from+p.Limit, n)
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
