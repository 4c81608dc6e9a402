package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrRemote            = errors.New("falla en la API remota")
	ErrCacheCorrupt      = errors.New("snapshot de caché corrupto")
	ErrUnknownCollection = errors.New("colección desconocida")
)
