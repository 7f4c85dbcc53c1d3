package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/accounts-api/pkg/config"
)

// CookieWriter escribe y borra la cookie de sesión con las opciones fijas del
// sistema: HTTPOnly, SameSite Strict y Secure en production. El max-age de la
// cookie (15 min por defecto) es más corto que la validez del token; ver DESIGN.md.
type CookieWriter struct {
	name   string
	maxAge time.Duration
	secure bool
}

// NewCookieWriter construye el escritor de cookies desde la configuración.
func NewCookieWriter(cfg config.CookieConfig, production bool) *CookieWriter {
	return &CookieWriter{
		name:   cfg.Name,
		maxAge: time.Duration(cfg.MaxAgeMinutes) * time.Minute,
		secure: production,
	}
}

// Name devuelve el nombre de la cookie de sesión.
func (w *CookieWriter) Name() string { return w.name }

// Set escribe el token en la cookie de sesión.
func (w *CookieWriter) Set(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     w.name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(w.maxAge.Seconds()),
		Expires:  time.Now().Add(w.maxAge),
		HTTPOnly: true,
		Secure:   w.secure,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}

// Clear borra la cookie de sesión (expiración en el pasado).
func (w *CookieWriter) Clear(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     w.name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Now().Add(-time.Hour * 24 * 365),
		HTTPOnly: true,
		Secure:   w.secure,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}
