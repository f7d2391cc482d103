package review

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/wichananm65/tokopedia-trends/internal/presenter"
	"github.com/wichananm65/tokopedia-trends/internal/state"
	"github.com/wichananm65/tokopedia-trends/internal/telemetry"
)

type Handler struct {
	fetch Fetcher
	sum   Summarizer
	rec   telemetry.Recorder
}

func NewHandler(fetch Fetcher, sum Summarizer, rec telemetry.Recorder) *Handler {
	return &Handler{fetch: fetch, sum: sum, rec: rec}
}

func (h *Handler) RegisterPublicRoutes(app fiber.Router) {
	app.Get("/api/v1/reviews", h.getReviews)
	app.Get("/api/v1/product/:id<[0-9]+>/reviews", h.getProductReviews)
	app.Get("/api/v1/product/:id<[0-9]+>/summary", h.getSummary)
}

// Entry is a review with its date ready for display.
type Entry struct {
	Review
	DateText string `json:"dateText"`
}

func entries(reviews []Review) []Entry {
	out := make([]Entry, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, Entry{Review: r, DateText: presenter.ReviewDate(r.Tanggal)})
	}
	return out
}

func withEntries(s state.Snapshot[[]Review]) state.Snapshot[[]Entry] {
	return state.Snapshot[[]Entry]{
		Data:       entries(s.Data),
		Kind:       s.Kind,
		Loading:    s.Loading,
		Err:        s.Err,
		Generation: s.Generation,
	}
}

func (h *Handler) getReviews(c *fiber.Ctx) error {
	store := NewStore(h.fetch, h.rec)
	ctx := c.UserContext()

	product := c.QueryInt("product", 0)
	category := c.QueryInt("category", 0)
	switch {
	case product > 0:
		store.FetchByProduct(ctx, product)
	case category > 0:
		store.FetchByCategory(ctx, category)
	default:
		store.FetchAll(ctx)
	}
	return presenter.Respond(c, withEntries(store.State()), presenter.Attempt(c))
}

type productReviews struct {
	Reviews presenter.View[[]Entry] `json:"reviews"`
	Stats   Stats                   `json:"stats"`
}

func (h *Handler) getProductReviews(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	store := NewStore(h.fetch, h.rec)
	snap := store.FetchByProduct(c.UserContext(), id)
	view := presenter.FromSnapshot(withEntries(snap), presenter.Attempt(c))
	if view.Status == presenter.Failed {
		return presenter.Respond(c, withEntries(snap), presenter.Attempt(c))
	}
	return c.JSON(productReviews{Reviews: view, Stats: store.Stats()})
}

func (h *Handler) getSummary(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	store := NewSummaryStore(h.sum, h.rec)
	snap := store.Get(c.UserContext(), id)
	if errors.Is(snap.Err, ErrSummaryNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(presenter.FromSnapshot(snap, presenter.Attempt(c)))
	}
	return presenter.Respond(c, snap, presenter.Attempt(c))
}
