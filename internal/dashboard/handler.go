package dashboard

import (
	"github.com/gofiber/fiber/v2"

	"github.com/wichananm65/tokopedia-trends/internal/backend"
	"github.com/wichananm65/tokopedia-trends/internal/presenter"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(app fiber.Router) {
	app.Get("/api/v1/home", h.getHome)
}

func (h *Handler) getHome(c *fiber.Ctx) error {
	page := h.service.Load(c.UserContext(), Query{
		Search:     c.Query("q"),
		CategoryID: c.QueryInt("category", 0),
		Attempt:    presenter.Attempt(c),
	})
	if err := page.Err(); err != nil {
		return c.Status(backend.HTTPStatus(err)).JSON(page)
	}
	return c.JSON(page)
}
