package fakestore

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-admin-api/internal/domain/entity"
)

// ── Estructuras del protocolo de la API demo ─────────────────────────────────

type productPayload struct {
	ID          int64           `json:"id,omitempty"`
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
}

type userName struct {
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
}

type userPayload struct {
	ID       int64    `json:"id,omitempty"`
	Email    string   `json:"email"`
	Username string   `json:"username,omitempty"`
	Name     userName `json:"name"`
	Phone    string   `json:"phone"`
}

type cartItemPayload struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

type cartPayload struct {
	ID       int64             `json:"id,omitempty"`
	UserID   int64             `json:"userId"`
	Date     string            `json:"date"`
	Products []cartItemPayload `json:"products"`
}

// Formatos de fecha observados en /carts.
var cartDateLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

func parseCartDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range cartDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// ── Mapeos protocolo ↔ dominio ───────────────────────────────────────────────

func (p productPayload) toEntity() entity.Product {
	return entity.Product{
		ID:          p.ID,
		Title:       p.Title,
		Price:       p.Price,
		Description: p.Description,
		Category:    p.Category,
		Image:       p.Image,
		Origin:      entity.OriginRemote,
	}
}

func productFromEntity(p entity.Product) productPayload {
	return productPayload{
		Title:       p.Title,
		Price:       p.Price,
		Description: p.Description,
		Category:    p.Category,
		Image:       p.Image,
	}
}

func (u userPayload) toEntity() entity.User {
	return entity.User{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		FirstName: u.Name.Firstname,
		LastName:  u.Name.Lastname,
		Phone:     u.Phone,
		Origin:    entity.OriginRemote,
	}
}

func userFromEntity(u entity.User) userPayload {
	return userPayload{
		Email:    u.Email,
		Username: u.Username,
		Name:     userName{Firstname: u.FirstName, Lastname: u.LastName},
		Phone:    u.Phone,
	}
}

func (c cartPayload) toEntity() entity.RawOrder {
	date, _ := parseCartDate(c.Date)
	items := make([]entity.OrderItem, 0, len(c.Products))
	for _, p := range c.Products {
		items = append(items, entity.OrderItem{ProductID: p.ProductID, Quantity: p.Quantity})
	}
	return entity.RawOrder{ID: c.ID, UserID: c.UserID, Date: date, Items: items}
}

func cartFromEntity(r entity.RawOrder) cartPayload {
	items := make([]cartItemPayload, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, cartItemPayload{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return cartPayload{UserID: r.UserID, Date: r.Date.UTC().Format("2006-01-02"), Products: items}
}
