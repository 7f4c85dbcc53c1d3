package dto

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/jhoicas/accounts-api/internal/domain/entity"
)

// UserResponse vista sanitizada de un usuario: nunca incluye el hash de password.
type UserResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToUserResponse sanitiza la entidad para cualquier representación externa.
func ToUserResponse(u *entity.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// UpdateUserRequest actualización parcial: cada campo es opcional (puntero nil = no tocar).
type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
}

// HasFields indica si la petición trae al menos un campo conocido.
func (r UpdateUserRequest) HasFields() bool {
	return r.Name != nil || r.Email != nil || r.Password != nil || r.Role != nil
}

// Validate aplica el esquema parcial: cada campo presente debe cumplir las mismas
// reglas que en el registro; un cuerpo sin campos se rechaza. NilOrNotEmpty cubre
// el caso presente-pero-vacío: las reglas Length/In/is.Email saltan valores en
// blanco, así que sin él un `"role": ""` o `"email": ""` pasaría y se persistiría.
func (r UpdateUserRequest) Validate() error {
	if !r.HasFields() {
		return validation.Errors{"body": errors.New("at least one field is required")}
	}
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.Length(2, 255)),
		validation.Field(&r.Email, validation.NilOrNotEmpty, validation.Length(3, 255), is.Email),
		validation.Field(&r.Password, validation.NilOrNotEmpty, validation.Length(8, 128)),
		validation.Field(&r.Role, validation.NilOrNotEmpty, validation.In(entity.RoleAdmin, entity.RoleUser)),
	)
}
