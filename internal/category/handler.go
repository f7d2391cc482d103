package category

import (
	"github.com/gofiber/fiber/v2"

	"github.com/wichananm65/tokopedia-trends/internal/presenter"
	"github.com/wichananm65/tokopedia-trends/internal/telemetry"
)

type Handler struct {
	list Lister
	rec  telemetry.Recorder
}

func NewHandler(list Lister, rec telemetry.Recorder) *Handler {
	return &Handler{list: list, rec: rec}
}

func (h *Handler) RegisterPublicRoutes(app fiber.Router) {
	app.Get("/api/v1/categories", h.getCategories)
}

func (h *Handler) getCategories(c *fiber.Ctx) error {
	store := NewStore(h.list, h.rec)
	return presenter.Respond(c, store.Fetch(c.UserContext()), presenter.Attempt(c))
}
