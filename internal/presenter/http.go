package presenter

import (
	"github.com/gofiber/fiber/v2"

	"github.com/wichananm65/tokopedia-trends/internal/backend"
	"github.com/wichananm65/tokopedia-trends/internal/state"
)

// Attempt reads the manual retry counter a client sends back with a retry.
func Attempt(c *fiber.Ctx) int {
	return max(c.QueryInt("attempt", 0), 0)
}

// Respond writes the view of s. Failures keep the view body but carry the
// status that matches the backend failure.
func Respond[T any](c *fiber.Ctx, s state.Snapshot[T], attempt int) error {
	v := FromSnapshot(s, attempt)
	if v.Status == Failed {
		return c.Status(backend.HTTPStatus(s.Err)).JSON(v)
	}
	return c.JSON(v)
}

// Fail writes an error view with no data.
func Fail(c *fiber.Ctx, err error, attempt int) error {
	return c.Status(backend.HTTPStatus(err)).JSON(View[any]{Status: Failed, Error: ErrorPanel(err, attempt)})
}
