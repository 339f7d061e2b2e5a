package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/FlorianHaas/TenantDesk/app/controllers"
	"github.com/FlorianHaas/TenantDesk/internal/pkg/session"
)

// Router installs one group of routes on the app.
type Router interface {
	InstallRouter(app *fiber.App)
}

// Deps carries everything the route groups need.
type Deps struct {
	Auth             *controllers.AuthController
	Admin            *controllers.AdminController
	Portal           *controllers.PortalController
	AdminSessions    *session.AdminManager
	CustomerSessions *session.CustomerManager
}

// InstallRouter registers the public auth routes first, then the protected
// admin and portal groups that depend on the session middleware.
func InstallRouter(app *fiber.App, deps Deps) {
	setup(app, NewAuthRouter(deps), NewAdminRouter(deps), NewPortalRouter(deps))
}

func setup(app *fiber.App, router ...Router) {
	for _, r := range router {
		r.InstallRouter(app)
	}
}
