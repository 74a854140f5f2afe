package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/tickethub/internal/api/http/handlers"
	"github.com/spec-kit/tickethub/internal/session"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health  *handlers.HealthHandler
	Auth    *handlers.AuthHandler
	Tickets *handlers.TicketsHandler
	Gate    *session.Gate
}

// RegisterRoutes wires HTTP routes. The two API endpoints are
// action-dispatched; the ticket endpoint accepts GET for reads because
// dashboard clients fetch with query parameters.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	api := app.Group("/api")
	api.Post("/auth", cfg.Auth.Handle)

	tickets := api.Group("/tickets", cfg.Gate.Require)
	tickets.Get("", cfg.Tickets.Handle)
	tickets.Post("", cfg.Tickets.Handle)
}
