package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-triage/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health  *handlers.HealthHandler
	Tickets *handlers.TicketsHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	tickets := app.Group("/api/tickets")
	tickets.Post("/process", cfg.Tickets.ProcessTicket)
	tickets.Post("/classify", cfg.Tickets.Classify)
	tickets.Post("/extract", cfg.Tickets.Extract)
	tickets.Post("/analyze", cfg.Tickets.Analyze)
	tickets.Post("/draft", cfg.Tickets.Draft)
	tickets.Post("/route", cfg.Tickets.Route)
	tickets.Post("/assign", cfg.Tickets.Assign)
	tickets.Post("/feedback", cfg.Tickets.Feedback)
}
