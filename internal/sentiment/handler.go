package sentiment

import (
	"github.com/gofiber/fiber/v2"

	"github.com/wichananm65/tokopedia-trends/internal/presenter"
	"github.com/wichananm65/tokopedia-trends/internal/telemetry"
)

type Handler struct {
	fetch Fetcher
	rec   telemetry.Recorder
}

func NewHandler(fetch Fetcher, rec telemetry.Recorder) *Handler {
	return &Handler{fetch: fetch, rec: rec}
}

func (h *Handler) RegisterPublicRoutes(app fiber.Router) {
	app.Get("/api/v1/product/:id<[0-9]+>/sentiment", h.getSentiment)
}

type response struct {
	presenter.View[[]Data]
	Breakdown Breakdown `json:"breakdown"`
}

func (h *Handler) getSentiment(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": ErrProductRequired.Error()})
	}
	store := NewStore(h.fetch, h.rec)
	snap := store.Fetch(c.UserContext(), id)
	view := presenter.FromSnapshot(snap, presenter.Attempt(c))
	if view.Status == presenter.Failed {
		return presenter.Respond(c, snap, presenter.Attempt(c))
	}
	return c.JSON(response{View: view, Breakdown: store.Breakdown()})
}
