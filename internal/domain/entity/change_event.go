package entity

import "time"

// Acciones de un ChangeEvent.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// ChangeEvent notificación de una mutación aplicada a una colección cacheada.
type ChangeEvent struct {
	ID         string    `json:"id"`
	Collection string    `json:"collection"` // orders, products, users
	Action     string    `json:"action"`
	EntityID   int64     `json:"entity_id"`
	Origin     Origin    `json:"origin"`
	At         time.Time `json:"at"`
}
