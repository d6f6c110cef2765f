package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hustle-village/internal/api/http/handlers"
	"github.com/spec-kit/hustle-village/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Services       *handlers.ServicesHandler
	Admin          *handlers.AdminHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/signup-request", cfg.Auth.SignupRequest)
	authGroup.Post("/signup-verify", cfg.Auth.SignupVerify)

	// Public catalog; no credential needed.
	app.Get("/services", cfg.Services.ListPublic)

	seller := app.Group("/services", cfg.AuthMiddleware.Handle)
	seller.Get("/mine", cfg.Services.ListMine)
	seller.Post("/", cfg.Services.Create)
	seller.Put("/:id", cfg.Services.Update)
	seller.Patch("/:id", cfg.Services.Update)
	seller.Patch("/:id/toggle", cfg.Services.Toggle)
	seller.Post("/:id/request-delete", cfg.Services.RequestDelete)

	admin := app.Group("/admin", cfg.AuthMiddleware.Handle, auth.RequireAdmin())
	admin.Get("/delete-requests", cfg.Admin.ListDeleteRequests)
	admin.Post("/delete-requests/:id/approve", cfg.Admin.ApproveDeleteRequest)
	admin.Post("/delete-requests/:id/deny", cfg.Admin.DenyDeleteRequest)
}
