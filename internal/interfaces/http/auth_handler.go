package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/accounts-api/internal/application/auth"
	"github.com/jhoicas/accounts-api/internal/application/dto"
	"github.com/jhoicas/accounts-api/internal/domain"
	"github.com/jhoicas/accounts-api/pkg/logger"
)

// AuthHandler maneja sign-up, sign-in y sign-out.
type AuthHandler struct {
	uc      *auth.AuthUseCase
	cookies *CookieWriter
	log     *logger.Logger
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, cookies *CookieWriter, log *logger.Logger) *AuthHandler {
	return &AuthHandler{uc: uc, cookies: cookies, log: log}
}

// SignUp godoc
// @Summary      Registrar usuario
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SignUpRequest  true  "name, email, password, role opcional"
// @Success      201   {object}  map[string]interface{}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/sign-up [post]
func (h *AuthHandler) SignUp(c *fiber.Ctx) error {
	var in dto.SignUpRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ValidationFailed(errors.New("invalid request body")))
	}
	if err := in.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ValidationFailed(err))
	}

	user, token, err := h.uc.Register(in)
	if err != nil {
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error:   "Conflict",
				Message: "Email already exists",
			})
		}
		h.log.Error().Err(err).Str("email", in.Email).Msg("error registrando usuario")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Internal server error"})
	}

	h.cookies.Set(c, token)
	h.log.Info().Str("email", user.Email).Msg("usuario registrado")
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered",
		"user":    user,
	})
}

// SignIn godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SignInRequest  true  "email, password"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/sign-in [post]
func (h *AuthHandler) SignIn(c *fiber.Ctx) error {
	var in dto.SignInRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ValidationFailed(errors.New("invalid request body")))
	}
	if err := in.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ValidationFailed(err))
	}

	user, token, err := h.uc.Login(in)
	if err != nil {
		// Email inexistente y password incorrecto responden idéntico: sin oráculo.
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "Invalid credentials"})
		}
		h.log.Error().Err(err).Str("email", in.Email).Msg("error en sign in")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "Internal server error"})
	}

	h.cookies.Set(c, token)
	h.log.Info().Str("email", user.Email).Msg("usuario autenticado")
	return c.JSON(fiber.Map{
		"message": "User signed in successfully",
		"user":    user,
	})
}

// SignOut godoc
// @Summary      Cerrar sesión
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/auth/sign-out [post]
func (h *AuthHandler) SignOut(c *fiber.Ctx) error {
	// Borrado incondicional: responde 200 aunque no hubiera sesión.
	h.cookies.Clear(c)
	h.log.Info().Msg("sesión cerrada")
	return c.JSON(fiber.Map{
		"message": "User signed out successfully",
	})
}
