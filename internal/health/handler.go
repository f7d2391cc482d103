package health

import "github.com/gofiber/fiber/v2"

type Handler struct {
	monitor *Monitor
}

func NewHandler(m *Monitor) *Handler {
	return &Handler{monitor: m}
}

func (h *Handler) RegisterPublicRoutes(app fiber.Router) {
	app.Get("/api/v1/health", h.getHealth)
}

func (h *Handler) getHealth(c *fiber.Ctx) error {
	st := h.monitor.Status()
	// ?refresh=true forces a check instead of serving the last poll
	if st.Online == nil || c.QueryBool("refresh", false) {
		st = h.monitor.CheckNow(c.UserContext())
	}
	code := fiber.StatusOK
	if st.Online != nil && !*st.Online {
		code = fiber.StatusServiceUnavailable
	}
	return c.Status(code).JSON(fiber.Map{
		"online":      st.Online,
		"label":       st.Label(),
		"lastChecked": st.LastChecked,
	})
}
