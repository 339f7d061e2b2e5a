package controllers

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/FlorianHaas/TenantDesk/app/repository"
	"github.com/FlorianHaas/TenantDesk/internal/pkg/session"
	"github.com/FlorianHaas/TenantDesk/internal/pkg/tenantsync"
)

// renderError maps the business error taxonomy onto HTTP responses. Login
// failures keep their specific messages; unexpected errors are logged and
// collapsed to a generic 500.
func renderError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, session.ErrInvalidCredentials),
		errors.Is(err, session.ErrSessionExpired):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": err.Error()})
	case errors.Is(err, session.ErrTenantInactive),
		errors.Is(err, session.ErrUserInactive),
		errors.Is(err, session.ErrWrongTenant):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "forbidden", "message": err.Error()})
	case errors.Is(err, session.ErrNotFound),
		errors.Is(err, repository.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": err.Error()})
	case errors.Is(err, repository.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "conflict", "message": err.Error()})
	case errors.Is(err, tenantsync.ErrUnsupported):
		// distinguished outcome: the remote declined, callers degrade
		return c.Status(fiber.StatusNotImplemented).JSON(fiber.Map{"error": "unsupported", "unsupported": true, "message": err.Error()})
	}

	var netErr *tenantsync.NetworkError
	if errors.As(err, &netErr) {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "bad_gateway", "message": err.Error()})
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "validation_failed", "message": err.Error()})
	}

	log.Printf("internal error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Something went wrong"})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": message})
}
