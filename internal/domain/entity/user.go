package entity

import "strings"

// User representa un cliente de la tienda demo.
type User struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Username  string `json:"username,omitempty"`
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Phone     string `json:"phone"`
	Origin    Origin `json:"origin,omitempty"`
}

// FullName nombre y apellido separados por un espacio.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
