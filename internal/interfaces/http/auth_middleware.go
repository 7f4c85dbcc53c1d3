package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/accounts-api/internal/application/dto"
	"github.com/jhoicas/accounts-api/pkg/jwt"
)

// AuthMiddleware lee el token de la cookie de sesión, lo verifica y adjunta la
// identidad al contexto. Sin cookie → 401; verificación fallida → 401; token
// válido pero con payload que este servicio nunca emite → 403 (caso distinto).
// No toca el store.
func AuthMiddleware(jwtSecret, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(cookieName)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error:   "Authentication required",
				Message: "No access token provided",
			})
		}

		id, email, role, err := jwt.Parse(jwtSecret, token)
		if err != nil {
			if errors.Is(err, jwt.ErrMalformedPayload) {
				return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
					Error:   "Invalid token",
					Message: "Malformed token payload",
				})
			}
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error:   "Authentication failed",
				Message: "Invalid or expired token",
			})
		}

		setIdentity(c, Identity{ID: id, Email: email, Role: role})
		return c.Next()
	}
}

// RequireRole exige que la identidad adjunta pertenezca a la lista de roles.
// Debe correr después de AuthMiddleware: sin identidad responde 401 (nunca
// trata la ausencia como guest).
func RequireRole(allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := GetIdentity(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error:   "Authentication required",
				Message: "User not authenticated",
			})
		}
		for _, role := range allowedRoles {
			if identity.Role == role {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error:   "Access denied",
			Message: "Insufficient permissions",
		})
	}
}
