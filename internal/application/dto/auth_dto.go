package dto

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/jhoicas/accounts-api/internal/domain/entity"
)

// SignUpRequest entrada para registro (password en texto, se hashea en el use case).
type SignUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"` // opcional, por defecto user
}

// Validate aplica el esquema de registro. Los mensajes por campo se unen en el
// details de la respuesta 400.
func (r SignUpRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(2, 255)),
		validation.Field(&r.Email, validation.Required, validation.Length(3, 255), is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 128)),
		validation.Field(&r.Role, validation.In(entity.RoleAdmin, entity.RoleUser)),
	)
}

// SignInRequest entrada para login.
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate aplica el esquema de login.
func (r SignInRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}
