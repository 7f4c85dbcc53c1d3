package repository

import "github.com/jhoicas/accounts-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para User (DIP).
// Create asigna ID y timestamps desde el store; Update persiste el UpdatedAt que recibe.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id int64) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	List() ([]*entity.User, error)
	Update(user *entity.User) error
	Delete(id int64) error
}
