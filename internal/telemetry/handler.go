package telemetry

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// Handler serves the developer debug panel.
type Handler struct {
	hub *Hub
}

func NewHandler(hub *Hub) *Handler {
	return &Handler{hub: hub}
}

// RegisterProtectedRoutes mounts the panel on r, which is expected to carry auth middleware.
func (h *Handler) RegisterProtectedRoutes(r fiber.Router) {
	r.Get("/errors", h.getErrors)
	r.Delete("/errors", h.clearErrors)
	r.Get("/performance", h.getPerformance)
	r.Delete("/performance", h.clearPerformance)
}

func (h *Handler) getErrors(c *fiber.Ctx) error {
	f := ErrorFilter{
		Type:     ErrorType(c.Query("type")),
		Severity: Severity(c.Query("severity")),
		Limit:    c.QueryInt("limit", 0),
	}
	return c.JSON(fiber.Map{"errors": h.hub.Errors.Entries(f)})
}

func (h *Handler) clearErrors(c *fiber.Ctx) error {
	h.hub.Errors.Clear()
	h.hub.entry().Info("error logs cleared")
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) getPerformance(c *fiber.Ctx) error {
	f := StatsFilter{Name: c.Query("name")}
	if ms := c.QueryInt("minDuration", 0); ms > 0 {
		f.MinDuration = time.Duration(ms) * time.Millisecond
	}
	return c.JSON(h.hub.Perf.Stats(f))
}

func (h *Handler) clearPerformance(c *fiber.Ctx) error {
	h.hub.Perf.Clear()
	h.hub.entry().Info("performance metrics cleared")
	return c.SendStatus(fiber.StatusNoContent)
}
