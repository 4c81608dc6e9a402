package dto

// CreateUserRequest entrada para crear un usuario (cliente de la tienda).
type CreateUserRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Username  string `json:"username"`
	FirstName string `json:"firstname" validate:"required,max=100"`
	LastName  string `json:"lastname" validate:"max=100"`
	Phone     string `json:"phone"`
}

// UpdateUserRequest entrada para actualizar un usuario. Solo se cambian los campos presentes.
type UpdateUserRequest struct {
	Email     *string `json:"email"`
	Username  *string `json:"username"`
	FirstName *string `json:"firstname"`
	LastName  *string `json:"lastname"`
	Phone     *string `json:"phone"`
}

// UserResponse salida de un usuario.
type UserResponse struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Username  string `json:"username,omitempty"`
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	FullName  string `json:"full_name"`
	Phone     string `json:"phone"`
	Origin    string `json:"origin"`
}

// UserListResponse lista paginada de usuarios.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
