package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/accounts-api/internal/application/dto"
	"github.com/jhoicas/accounts-api/internal/application/usecase"
	"github.com/jhoicas/accounts-api/internal/domain"
	"github.com/jhoicas/accounts-api/internal/domain/entity"
	"github.com/jhoicas/accounts-api/pkg/logger"
)

// UserHandler maneja la gestión de usuarios. Los guards de ownership y la
// restricción de campo role viven aquí; el use case solo resuelve datos.
type UserHandler struct {
	uc  *usecase.UserUseCase
	log *logger.Logger
}

// NewUserHandler construye el handler de usuarios.
func NewUserHandler(uc *usecase.UserUseCase, log *logger.Logger) *UserHandler {
	return &UserHandler{uc: uc, log: log}
}

// parseUserID valida que el parámetro :id sea un entero positivo.
func parseUserID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("id must be a positive integer")
	}
	return id, nil
}

// List godoc
// @Summary      Listar usuarios
// @Tags         users
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/user [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.uc.List()
	if err != nil {
		h.log.Error().Err(err).Msg("error listando usuarios")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Internal server error"})
	}
	return c.JSON(fiber.Map{
		"message": "Successfully retrieved users",
		"users":   users,
		"count":   len(users),
	})
}

// GetByID godoc
// @Summary      Obtener usuario por ID
// @Tags         users
// @Produce      json
// @Param        id   path  int  true  "ID del usuario"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/user/{id} [get]
func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ValidationFailed(err))
	}

	user, err := h.uc.GetByID(id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "User not found"})
		}
		h.log.Error().Err(err).Int64("id", id).Msg("error obteniendo usuario")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Internal server error"})
	}
	return c.JSON(fiber.Map{
		"message": "User retrieved successfully",
		"user":    user,
	})
}

// Update godoc
// @Summary      Actualizar usuario (parcial)
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    path  int                    true  "ID del usuario"
// @Param        body  body  dto.UpdateUserRequest  true  "campos opcionales"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/user/{id} [put]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ValidationFailed(err))
	}

	var in dto.UpdateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ValidationFailed(errors.New("invalid request body")))
	}
	if err := in.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ValidationFailed(err))
	}

	identity, ok := GetIdentity(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error:   "Authentication required",
			Message: "You must be logged in to update user information",
		})
	}

	// Ownership: solo admin o el propio usuario.
	if identity.Role != entity.RoleAdmin && identity.ID != id {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error:   "Access denied",
			Message: "You can only update your own information",
		})
	}

	// Cambiar role es exclusivo de admin; se rechaza, no se ignora en silencio.
	if in.Role != nil && identity.Role != entity.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error:   "Access denied",
			Message: "Only administrators can change user roles",
		})
	}

	user, err := h.uc.Update(id, in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "User not found"})
		case errors.Is(err, domain.ErrEmailAlreadyExists):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Error: "Email already exists"})
		default:
			h.log.Error().Err(err).Int64("id", id).Msg("error actualizando usuario")
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Internal server error"})
		}
	}

	h.log.Info().Str("email", user.Email).Msg("usuario actualizado")
	return c.JSON(fiber.Map{
		"message": "User updated successfully",
		"user":    user,
	})
}

// Delete godoc
// @Summary      Eliminar usuario
// @Tags         users
// @Produce      json
// @Param        id   path  int  true  "ID del usuario"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/user/{id} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, err := parseUserID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ValidationFailed(err))
	}

	identity, ok := GetIdentity(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error:   "Authentication required",
			Message: "You must be logged in to delete users",
		})
	}

	if identity.Role != entity.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error:   "Access denied",
			Message: "Only administrators can delete users",
		})
	}

	// Un admin no puede borrarse a sí mismo: guard contra auto-bloqueo.
	if identity.ID == id {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error:   "Operation denied",
			Message: "You cannot delete your own account",
		})
	}

	user, err := h.uc.Delete(id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "User not found"})
		}
		h.log.Error().Err(err).Int64("id", id).Msg("error eliminando usuario")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Internal server error"})
	}

	h.log.Info().Str("email", user.Email).Msg("usuario eliminado")
	return c.JSON(fiber.Map{
		"message": "User deleted successfully",
		"user":    user,
	})
}
