package router

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	jwtware "github.com/gofiber/jwt/v2"
	"github.com/sirupsen/logrus"

	"github.com/wichananm65/tokopedia-trends/internal/telemetry"
)

// PublicRoutes is implemented by every feature handler.
type PublicRoutes interface {
	RegisterPublicRoutes(app fiber.Router)
}

type Config struct {
	Hub *telemetry.Hub
	// Debug mounts the telemetry panel under /debug.
	Debug bool
	// JWTSecret, when set, puts the panel behind bearer-token auth.
	JWTSecret string
	Handlers  []PublicRoutes
}

// FallbackMessage is what a visitor sees when rendering a page blew up.
const FallbackMessage = "Something went wrong. Please reload the page."

// New builds the fiber app with CORS, request logging, panic recovery and
// every feature route.
func New(cfg Config) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "tokopedia-trends",
		ErrorHandler: errorHandler(cfg.Hub),
	})
	app.Use(recover.New(recover.Config{EnableStackTrace: cfg.Debug}))
	setupCORS(app)
	app.Use(requestLogger(cfg.Hub))

	for _, h := range cfg.Handlers {
		h.RegisterPublicRoutes(app)
	}

	if cfg.Debug {
		debug := app.Group("/debug")
		if cfg.JWTSecret != "" {
			debug.Use(jwtware.New(jwtware.Config{SigningKey: []byte(cfg.JWTSecret)}))
		}
		telemetry.NewHandler(cfg.Hub).RegisterProtectedRoutes(debug)
	}
	return app
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,HEAD,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
}

// requestLogger logs every request and times it into the performance log.
func requestLogger(hub *telemetry.Hub) fiber.Handler {
	log := hub.Logger()
	return func(c *fiber.Ctx) error {
		method, path := c.Method(), c.Path()
		stop := hub.Perf.Track("request "+method+" "+path, nil)
		err := c.Next()
		d := stop()
		log.WithFields(logrus.Fields{
			"method":   method,
			"url":      c.OriginalURL(),
			"status":   c.Response().StatusCode(),
			"duration": d,
		}).Info("request")
		return err
	}
}

// errorHandler answers routing errors with their own status and anything else
// (including recovered panics) with the full-page fallback.
func errorHandler(hub *telemetry.Hub) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(fiber.Map{"message": fe.Message})
		}
		hub.ComponentError("page", c.Method()+" "+c.Path(), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":   "error",
			"fullPage": true,
			"message":  FallbackMessage,
		})
	}
}
