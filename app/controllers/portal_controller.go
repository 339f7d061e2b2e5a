package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/FlorianHaas/TenantDesk/app/models"
	"github.com/FlorianHaas/TenantDesk/app/repository"
	"github.com/FlorianHaas/TenantDesk/internal/pkg/activity"
	"github.com/FlorianHaas/TenantDesk/internal/pkg/middleware"
	"github.com/FlorianHaas/TenantDesk/internal/pkg/workflow"
)

// PortalController serves the customer self-service surface. Every handler is
// scoped to the tenant of the authenticated session; a customer can never name
// another tenant in a request.
type PortalController struct {
	users         repository.UserRepository
	subscriptions repository.SubscriptionRepository
	renewals      repository.RenewalRepository
	engine        *workflow.Engine
	recorder      *activity.Recorder
}

// NewPortalController creates the portal controller.
func NewPortalController(
	users repository.UserRepository,
	subscriptions repository.SubscriptionRepository,
	renewals repository.RenewalRepository,
	engine *workflow.Engine,
	recorder *activity.Recorder,
) *PortalController {
	return &PortalController{
		users:         users,
		subscriptions: subscriptions,
		renewals:      renewals,
		engine:        engine,
		recorder:      recorder,
	}
}

// HandleGetAccount returns the session's tenant and user.
func (ctl *PortalController) HandleGetAccount(c *fiber.Ctx) error {
	sess := middleware.CurrentSession(c)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"tenant": sess.Tenant,
		"user":   sess.User,
	})
}

// HandleListSubscriptions lists the tenant's subscription records.
func (ctl *PortalController) HandleListSubscriptions(c *fiber.Ctx) error {
	sess := middleware.CurrentSession(c)
	records, err := ctl.subscriptions.ListByTenant(sess.Tenant.TenantID)
	if err != nil {
		return renderError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"subscriptions": records})
}

// HandleListRenewals lists the tenant's renewal records.
func (ctl *PortalController) HandleListRenewals(c *fiber.Ctx) error {
	sess := middleware.CurrentSession(c)
	records, err := ctl.renewals.ListByTenant(sess.Tenant.TenantID)
	if err != nil {
		return renderError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"renewals": records})
}

// HandleListTeam lists the directory users of the session's tenant.
func (ctl *PortalController) HandleListTeam(c *fiber.Ctx) error {
	sess := middleware.CurrentSession(c)
	users, err := ctl.users.ListByTenant(sess.Tenant.TenantID)
	if err != nil {
		return renderError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"users": users})
}

type inviteUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleInviteUser lets the primary account add a CUSTOMER_USER to its own
// tenant. Non-primary customers are refused.
func (ctl *PortalController) HandleInviteUser(c *fiber.Ctx) error {
	sess := middleware.CurrentSession(c)
	if sess.User.Role != models.ROLE_CUSTOMER_PRIMARY {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error":   true,
			"message": "Only the primary account can add users",
		})
	}

	var req inviteUserRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Email == "" || req.Password == "" {
		return badRequest(c, "email and password are required")
	}

	user, err := models.NewUser(sess.Tenant.TenantID, req.Email, req.Password, models.ROLE_CUSTOMER_USER)
	if err != nil {
		return renderError(c, err)
	}
	if err := ctl.users.Create(user); err != nil {
		return renderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

type createRequestBody struct {
	Type    string            `json:"type"`
	Payload map[string]string `json:"payload"`
}

// HandleCreateRequest opens a change request for the session's tenant.
func (ctl *PortalController) HandleCreateRequest(c *fiber.Ctx) error {
	var body createRequestBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if !models.ValidRequestType(body.Type) {
		return badRequest(c, "unknown request type")
	}

	sess := middleware.CurrentSession(c)
	request, err := ctl.engine.Create(workflow.CreateInput{
		TenantID:       sess.Tenant.TenantID,
		RequesterEmail: sess.User.Email,
		Type:           body.Type,
		Payload:        body.Payload,
	})
	if err != nil {
		return renderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(request)
}

// HandleListRequests lists the tenant's own change requests.
func (ctl *PortalController) HandleListRequests(c *fiber.Ctx) error {
	sess := middleware.CurrentSession(c)
	requests, err := ctl.engine.List(repository.RequestFilter{
		TenantID: sess.Tenant.TenantID,
		Status:   c.Query("status"),
	})
	if err != nil {
		return renderError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"requests": requests})
}

type pageViewRequest struct {
	Path string `json:"path"`
}

// HandleRecordPageView stores a PAGE_VIEW event. Repeated views of the same
// path inside the dedup window are dropped and reported as stored=false.
func (ctl *PortalController) HandleRecordPageView(c *fiber.Ctx) error {
	var req pageViewRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Path == "" {
		return badRequest(c, "path is required")
	}

	sess := middleware.CurrentSession(c)
	stored, err := ctl.recorder.Record(models.ActivityRecord{
		TenantID:  sess.Tenant.TenantID,
		UserEmail: sess.User.Email,
		Event:     models.ACTIVITY_PAGE_VIEW,
		Path:      req.Path,
	})
	if err != nil {
		return renderError(c, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"stored": stored})
}
