package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/gema-writing-api/internal/config"
	"github.com/noah-isme/gema-writing-api/internal/handler"
	"github.com/noah-isme/gema-writing-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	EvaluationHandler *handler.EvaluationHandler
	TopicHandler      *handler.TopicHandler
	JWTMiddleware     fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/metrics", observability.MetricsHandler())

	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	if deps.TopicHandler != nil {
		deps.TopicHandler.Register(api.Group("/topics", jwtMiddleware))
	}

	if deps.EvaluationHandler != nil {
		deps.EvaluationHandler.Register(api.Group("/evaluations", jwtMiddleware))
	}
}
