package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin       = "admin"
	RoleDespachador = "despachador"
	RoleBodeguero   = "bodeguero"
)

// User representa un operador del centro de despacho.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, despachador, bodeguero
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ValidRole indica si role es uno de los roles conocidos.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleDespachador, RoleBodeguero:
		return true
	}
	return false
}
