package product

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/wichananm65/tokopedia-trends/internal/backend"
	"github.com/wichananm65/tokopedia-trends/internal/presenter"
	"github.com/wichananm65/tokopedia-trends/internal/telemetry"
)

type Handler struct {
	fetch     Fetcher
	snapshots SnapshotRepository
	rec       telemetry.Recorder
	now       func() time.Time
}

// NewHandler wires the product routes. snapshots may be nil, in which case
// trending lists are not recorded.
func NewHandler(fetch Fetcher, snapshots SnapshotRepository, rec telemetry.Recorder) *Handler {
	return &Handler{fetch: fetch, snapshots: snapshots, rec: telemetry.OrNop(rec), now: time.Now}
}

func (h *Handler) RegisterPublicRoutes(app fiber.Router) {
	app.Get("/api/v1/products", h.getProducts)
	app.Get("/api/v1/products/trending", h.getTrending)
	app.Get("/api/v1/products/trending/history", h.getTrendingHistory)
	app.Get("/api/v1/product/:id<[0-9]+>", h.getProduct)
}

// Detail is a product along with its price cross-check and display strings.
type Detail struct {
	Product
	ComputedDiscount  float64 `json:"computedDiscount"`
	DiscountMismatch  bool    `json:"discountMismatch"`
	PriceText         string  `json:"priceText"`
	OriginalPriceText string  `json:"originalPriceText"`
}

func NewDetail(p Product) Detail {
	return Detail{
		Product:           p,
		ComputedDiscount:  p.ComputedDiscount(),
		DiscountMismatch:  p.DiscountMismatch(),
		PriceText:         presenter.Rupiah(p.CurrentPrice),
		OriginalPriceText: presenter.Rupiah(p.OriginalPrice),
	}
}

func (h *Handler) getProducts(c *fiber.Ctx) error {
	store := NewStore(h.fetch, h.rec)
	ctx := c.UserContext()

	q := c.Query("q")
	category := c.QueryInt("category", 0)
	switch {
	case q != "":
		store.Search(ctx, q)
	case category > 0:
		store.FilterByCategory(ctx, category)
	default:
		store.Fetch(ctx)
	}
	return presenter.Respond(c, store.State(), presenter.Attempt(c))
}

func (h *Handler) getTrending(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", DefaultTrendingLimit)
	if limit <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "limit must be positive"})
	}

	store := NewStore(h.fetch, h.rec)
	snap := store.Fetch(c.UserContext())
	if snap.Kind == backend.Failure {
		return presenter.Respond(c, snap, presenter.Attempt(c))
	}

	trending := store.Trending(limit)
	if h.snapshots != nil && len(trending) > 0 {
		if _, err := h.snapshots.Save(c.UserContext(), NewSnapshot(trending, limit, h.now())); err != nil {
			h.rec.Warn("could not record trending snapshot", map[string]any{"error": err.Error()})
		}
	}
	return c.JSON(presenter.Items(trending))
}

func (h *Handler) getTrendingHistory(c *fiber.Ctx) error {
	if h.snapshots == nil {
		return c.JSON([]Snapshot{})
	}
	history, err := h.snapshots.List(c.UserContext(), c.QueryInt("limit", DefaultHistoryLimit))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(history)
}

func (h *Handler) getProduct(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	store := NewStore(h.fetch, h.rec)
	p, err := store.Get(c.UserContext(), id)
	if errors.Is(err, ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": err.Error()})
	}
	if err != nil {
		return presenter.Fail(c, err, presenter.Attempt(c))
	}
	return c.JSON(NewDetail(p))
}
