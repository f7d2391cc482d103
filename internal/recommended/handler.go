package recommended

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
	app.Get("/api/v1/product/:id<[0-9]+>/recommendations", h.getRecommendations)
}

// Card is a recommendation ready for display.
type Card struct {
	Item
	MatchPercent int    `json:"matchPercent"`
	MatchText    string `json:"matchText"`
	PriceText    string `json:"priceText"`
}

type response struct {
	presenter.View[[]Card]
	Total int `json:"total"`
}

func (h *Handler) getRecommendations(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	// support ?limit=6 and ?all=true
	limit := c.QueryInt("limit", DefaultMaxItems)
	if limit <= 0 || c.QueryBool("all", false) {
		limit = -1
	}

	store := NewStore(h.fetch, h.rec)
	snap := store.Fetch(c.UserContext(), id)
	view := presenter.FromSnapshot(snap, presenter.Attempt(c))
	if view.Status == presenter.Failed {
		return presenter.Respond(c, snap, presenter.Attempt(c))
	}

	items := snap.Data
	if limit >= 0 && len(items) > limit {
		items = items[:limit]
	}
	cards := make([]Card, 0, len(items))
	for _, it := range items {
		pct := it.MatchPercent()
		cards = append(cards, Card{
			Item:         it,
			MatchPercent: pct,
			MatchText:    presenter.Percent(float64(pct)) + " match",
			PriceText:    presenter.Rupiah(it.CurrentPrice),
		})
	}
	return c.JSON(response{View: presenter.Items(cards), Total: len(snap.Data)})
}
