package models

import "time"

// Roles disponibles para un usuario.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User representa una cuenta de la tienda. El email se guarda siempre
// en minúsculas y es único.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	PassHash  []byte    `json:"-"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// IsAdmin indica si el usuario tiene rol de administrador.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
