package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sukyoungshin/member-directory/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health    *handlers.HealthHandler
	Members   *handlers.MembersHandler
	Roles     *handlers.RolesHandler
	JobTitles *handlers.JobTitlesHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")
	api.Get("/members", cfg.Members.List)
	api.Post("/members", cfg.Members.Create)
	api.Get("/members/:id", cfg.Members.Get)
	api.Put("/members/:id", cfg.Members.Update)
	api.Delete("/members/:id", cfg.Members.Delete)

	api.Get("/roles", cfg.Roles.List)
	api.Get("/job-titles", cfg.JobTitles.List)
}
