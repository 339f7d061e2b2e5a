package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/FlorianHaas/TenantDesk/internal/pkg/middleware"
)

// AuthRouter exposes the unauthenticated login endpoints. The login routes
// are rate limited; everything behind a session is not.
type AuthRouter struct {
	deps Deps
}

func NewAuthRouter(deps Deps) *AuthRouter {
	return &AuthRouter{deps: deps}
}

func (h *AuthRouter) InstallRouter(app *fiber.App) {
	auth := app.Group("/api/auth", limiter.New())
	auth.Post("/admin/login", h.deps.Auth.HandleAdminLogin)
	auth.Post("/login", h.deps.Auth.HandleCustomerLogin)

	app.Post("/api/auth/admin/logout", middleware.RequireAdmin(h.deps.AdminSessions), h.deps.Auth.HandleAdminLogout)
	app.Post("/api/auth/logout", middleware.RequireCustomer(h.deps.CustomerSessions), h.deps.Auth.HandleCustomerLogout)
}

// AdminRouter exposes the back-office under /api/admin, admin sessions only.
type AdminRouter struct {
	deps Deps
}

func NewAdminRouter(deps Deps) *AdminRouter {
	return &AdminRouter{deps: deps}
}

func (h *AdminRouter) InstallRouter(app *fiber.App) {
	admin := app.Group("/api/admin", middleware.RequireAdmin(h.deps.AdminSessions))

	admin.Get("/tenants", h.deps.Admin.HandleListTenants)
	admin.Post("/tenants", h.deps.Admin.HandleCreateTenant)
	admin.Post("/tenants/sync", h.deps.Admin.HandleSyncTenants)
	admin.Get("/tenants/:id", h.deps.Admin.HandleGetTenant)
	admin.Put("/tenants/:id", h.deps.Admin.HandleUpdateTenant)
	admin.Delete("/tenants/:id", h.deps.Admin.HandleDeactivateTenant)
	admin.Post("/tenants/:id/push", h.deps.Admin.HandlePushTenant)
	admin.Get("/tenants/:id/activity", h.deps.Admin.HandleTenantActivity)

	admin.Post("/users", h.deps.Admin.HandleCreateUser)
	admin.Post("/users/:id/reset-password", h.deps.Admin.HandleResetPassword)

	admin.Get("/requests", h.deps.Admin.HandleListRequests)
	admin.Post("/requests/:id/transition", h.deps.Admin.HandleTransitionRequest)

	admin.Get("/audit", h.deps.Admin.HandleListAudit)
}

// PortalRouter exposes the customer self-service under /api/portal.
type PortalRouter struct {
	deps Deps
}

func NewPortalRouter(deps Deps) *PortalRouter {
	return &PortalRouter{deps: deps}
}

func (h *PortalRouter) InstallRouter(app *fiber.App) {
	portal := app.Group("/api/portal", middleware.RequireCustomer(h.deps.CustomerSessions))

	portal.Get("/account", h.deps.Portal.HandleGetAccount)
	portal.Get("/subscriptions", h.deps.Portal.HandleListSubscriptions)
	portal.Get("/renewals", h.deps.Portal.HandleListRenewals)
	portal.Get("/team", h.deps.Portal.HandleListTeam)
	portal.Post("/team", h.deps.Portal.HandleInviteUser)
	portal.Post("/requests", h.deps.Portal.HandleCreateRequest)
	portal.Get("/requests", h.deps.Portal.HandleListRequests)
	portal.Post("/activity/page-view", h.deps.Portal.HandleRecordPageView)
}
