package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tenderdesk/procurement-service/internal/api/http/handlers"
	"github.com/tenderdesk/procurement-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health *handlers.HealthHandler
	Auth   *handlers.AuthHandler
	Admin  *handlers.AdminHandler
	Member *handlers.MemberHandler
	Gate   *auth.Gate
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/", cfg.Health.Root)
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	app.Post("/login", cfg.Auth.Login)

	admin := app.Group("/admin", cfg.Gate.RequireAdmin())
	admin.Get("/members", cfg.Admin.ListMembers)
	admin.Post("/member", cfg.Admin.CreateMember)
	admin.Put("/member/:id", cfg.Admin.UpdateMember)
	admin.Delete("/member/:id", cfg.Admin.DeleteMember)
	admin.Get("/items", cfg.Admin.ListItems)
	admin.Get("/items/:status", cfg.Admin.ListItemsByStatus)
	admin.Patch("/item/:id", cfg.Admin.UpdateItemStatus)

	member := app.Group("/member", cfg.Gate.RequireMember())
	member.Get("/profile", cfg.Member.Profile)
	member.Get("/items", cfg.Member.ListItems)
	member.Get("/items/:status", cfg.Member.ListItemsByStatus)
	member.Get("/item/:id", cfg.Member.GetItem)
	member.Post("/item", cfg.Member.CreateItem)
}
