package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// HealthHandler expone health-check y la raíz de la API.
type HealthHandler struct {
	startedAt time.Time
}

// NewHealthHandler construye el handler con el instante de arranque del proceso.
func NewHealthHandler(startedAt time.Time) *HealthHandler {
	return &HealthHandler{startedAt: startedAt}
}

// Health godoc
// @Summary      Health check
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"uptime":    time.Since(h.startedAt).Round(time.Second).String(),
	})
}

// Root godoc
// @Summary      Raíz de la API
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api [get]
func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
