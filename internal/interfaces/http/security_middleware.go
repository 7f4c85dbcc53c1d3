package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/accounts-api/internal/application/dto"
	"github.com/jhoicas/accounts-api/internal/application/ports"
	"github.com/jhoicas/accounts-api/internal/domain/entity"
	"github.com/jhoicas/accounts-api/pkg/config"
	"github.com/jhoicas/accounts-api/pkg/jwt"
	"github.com/jhoicas/accounts-api/pkg/logger"
)

// SecurityMiddleware clasifica al solicitante (admin/user/guest), resuelve el techo
// de peticiones por minuto para ese rol y delega la decisión al guard. Corre antes
// del AuthMiddleware, así que el rol es best-effort: se hace un peek no vinculante
// de la cookie y cualquier ausencia o fallo clasifica como guest. La negación se
// traduce a 403 según la razón; un fallo del adaptador responde 500.
func SecurityMiddleware(guard ports.SecurityGuard, cfg config.GuardConfig, jwtSecret, cookieName string, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !cfg.Enabled {
			return c.Next()
		}

		role := peekRole(c, jwtSecret, cookieName)
		limit := limitForRole(cfg, role)

		req := ports.RequestInfo{
			IP:        c.IP(),
			Method:    c.Method(),
			Path:      c.Path(),
			Query:     string(c.Request().URI().QueryString()),
			UserAgent: c.Get(fiber.HeaderUserAgent),
		}

		decision, err := guard.Protect(c.Context(), req, role, limit)
		if err != nil {
			log.Error().Err(err).Str("ip", req.IP).Str("path", req.Path).Msg("fallo del guard de seguridad")
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error:   "Internal server error",
				Message: "Something went wrong with security middleware",
			})
		}
		if decision.Allowed {
			return c.Next()
		}

		switch decision.Reason {
		case ports.DenyReasonBot:
			log.Warn().Str("ip", req.IP).Str("user_agent", req.UserAgent).Str("path", req.Path).Msg("petición de bot bloqueada")
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error:   "Forbidden",
				Message: "Automated requests are not allowed",
			})
		case ports.DenyReasonShield:
			log.Warn().Str("ip", req.IP).Str("path", req.Path).Str("method", req.Method).Msg("petición bloqueada por shield")
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error:   "Forbidden",
				Message: "Requests blocked by security policy",
			})
		default:
			log.Warn().Str("ip", req.IP).Str("role", role).Int("limit", limit).Str("path", req.Path).Msg("límite de peticiones excedido")
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error:   "Forbidden",
				Message: "Too many requests",
			})
		}
	}
}

// peekRole intenta clasificar el rol desde la cookie sin exigir autenticación.
// Nunca falla: cookie ausente, token inválido o payload raro → guest.
func peekRole(c *fiber.Ctx, jwtSecret, cookieName string) string {
	token := c.Cookies(cookieName)
	if token == "" {
		return "guest"
	}
	_, _, role, err := jwt.Parse(jwtSecret, token)
	if err != nil || !entity.IsValidRole(role) {
		return "guest"
	}
	return role
}

func limitForRole(cfg config.GuardConfig, role string) int {
	switch role {
	case entity.RoleAdmin:
		return cfg.AdminLimit
	case entity.RoleUser:
		return cfg.UserLimit
	default:
		return cfg.GuestLimit
	}
}
