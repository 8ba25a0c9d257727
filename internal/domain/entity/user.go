package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin   = "ADMINISTRADOR"
	RoleCashier = "CAJERO"
)

// User representa un usuario del sistema (administrador o cajero).
type User struct {
	ID           string
	Username     string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	FirstName    string
	LastName     string
	Role         string
	Active       bool // los usuarios inactivos no pueden abrir caja
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
