package entity

import "time"

// Roles válidos para User (enum cerrado).
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// IsValidRole verifica pertenencia al enum de roles.
func IsValidRole(role string) bool {
	return role == RoleAdmin || role == RoleUser
}

// User representa una cuenta del sistema. El ID lo asigna el store (BIGSERIAL).
type User struct {
	ID           int64
	Name         string
	Email        string    // único, case-sensitive tal como se almacena
	PasswordHash string    // bcrypt hash, nunca llega a ninguna representación externa
	Role         string    // admin | user, por defecto user
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
