package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sharath2004-tech/odoo-sub001/internal/api/http/handlers"
	"github.com/sharath2004-tech/odoo-sub001/internal/auth"
	"github.com/sharath2004-tech/odoo-sub001/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Identity       *handlers.IdentityHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Every /api route authenticates; role policies are per group.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/stats", cfg.Health.Stats)

	mw := cfg.AuthMiddleware
	api := app.Group("/api", mw.Handle)
	api.Get("/me", cfg.Identity.Me)

	employees := api.Group("/employees", mw.Authorize(domain.RoleHR))
	employees.Get("/access", cfg.Identity.Access("employees"))

	attendance := api.Group("/attendance", mw.Authorize(domain.RoleHR, domain.RoleEmployee))
	attendance.Get("/access", cfg.Identity.Access("attendance"))

	payroll := api.Group("/payroll", mw.AuthorizeList([]domain.Role{domain.RoleHR, domain.RolePayroll}))
	payroll.Get("/access", cfg.Identity.Access("payroll"))

	// empty policy: only the privileged role gets through
	admin := api.Group("/admin", mw.AuthorizeList(nil))
	admin.Get("/access", cfg.Identity.Access("admin"))
}
