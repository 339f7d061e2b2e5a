package controllers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/FlorianHaas/TenantDesk/internal/pkg/lifecycle"
	"github.com/FlorianHaas/TenantDesk/internal/pkg/middleware"
	"github.com/FlorianHaas/TenantDesk/internal/pkg/session"
)

// AuthController serves login and logout for both session domains.
type AuthController struct {
	admin     *session.AdminManager
	customer  *session.CustomerManager
	lifecycle *lifecycle.Service
}

// NewAuthController creates the auth controller.
func NewAuthController(admin *session.AdminManager, customer *session.CustomerManager, lc *lifecycle.Service) *AuthController {
	return &AuthController{admin: admin, customer: customer, lifecycle: lc}
}

type adminLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type customerLoginRequest struct {
	TenantCode string `json:"tenant_code"`
	Email      string `json:"email"`
	Password   string `json:"password"`
}

// HandleAdminLogin authenticates the platform administrator.
func (ctl *AuthController) HandleAdminLogin(c *fiber.Ctx) error {
	var req adminLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	sess, err := ctl.admin.Login(req.Email, req.Password)
	if err != nil {
		return renderError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"token": sess.Token, "user": sess.User})
}

// HandleCustomerLogin authenticates a tenant user and lazily seeds the
// tenant's lifecycle records on first sight.
func (ctl *AuthController) HandleCustomerLogin(c *fiber.Ctx) error {
	var req customerLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.TenantCode == "" || req.Email == "" || req.Password == "" {
		return badRequest(c, "tenant_code, email and password are required")
	}

	sess, err := ctl.customer.Login(c.Context(), req.TenantCode, req.Email, req.Password)
	if err != nil {
		return renderError(c, err)
	}

	if sess.Tenant != nil {
		if err := ctl.lifecycle.Ensure(*sess.Tenant); err != nil {
			log.Printf("customer login: lifecycle seeding for %s failed: %v", sess.Tenant.TenantID, err)
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"token":  sess.Token,
		"user":   sess.User,
		"tenant": sess.Tenant,
	})
}

// HandleAdminLogout discards the admin session.
func (ctl *AuthController) HandleAdminLogout(c *fiber.Ctx) error {
	sess := middleware.CurrentSession(c)
	if err := ctl.admin.Logout(sess.Token); err != nil {
		return renderError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "logged out"})
}

// HandleCustomerLogout discards the customer session.
func (ctl *AuthController) HandleCustomerLogout(c *fiber.Ctx) error {
	sess := middleware.CurrentSession(c)
	if err := ctl.customer.Logout(sess.Token); err != nil {
		return renderError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "logged out"})
}
