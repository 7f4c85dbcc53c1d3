package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/accounts-api/pkg/logger"
)

// RequestLogger registra cada petición con método, path, status, latencia, ip y
// request id (puesto por el middleware requestid). Sustituye al access log del
// framework con el logger estructurado de la app.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		requestID, _ := c.Locals("requestid").(string)
		event := log.Info()
		if err != nil {
			event = log.Error().Err(err)
		}
		event.
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", c.Response().StatusCode()).
			Dur("latency", time.Since(start)).
			Str("ip", c.IP()).
			Str("request_id", requestID).
			Msg("request")

		return err
	}
}
