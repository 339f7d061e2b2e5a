package controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/FlorianHaas/TenantDesk/app/models"
	"github.com/FlorianHaas/TenantDesk/app/repository"
	"github.com/FlorianHaas/TenantDesk/internal/pkg/middleware"
	"github.com/FlorianHaas/TenantDesk/internal/pkg/tenantsync"
	"github.com/FlorianHaas/TenantDesk/internal/pkg/workflow"
)

// AdminController serves the back-office: tenant management, user creation,
// request review and the compliance reports.
type AdminController struct {
	tenants  repository.TenantRepository
	users    repository.UserRepository
	audit    repository.AuditRepository
	activity repository.ActivityRepository
	sync     *tenantsync.Service
	engine   *workflow.Engine
}

// NewAdminController creates the admin controller.
func NewAdminController(
	tenants repository.TenantRepository,
	users repository.UserRepository,
	audit repository.AuditRepository,
	activity repository.ActivityRepository,
	sync *tenantsync.Service,
	engine *workflow.Engine,
) *AdminController {
	return &AdminController{
		tenants:  tenants,
		users:    users,
		audit:    audit,
		activity: activity,
		sync:     sync,
		engine:   engine,
	}
}

// HandleListTenants returns the full mirror.
func (ctl *AdminController) HandleListTenants(c *fiber.Ctx) error {
	tenants, err := ctl.tenants.List()
	if err != nil {
		return renderError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"tenants": tenants})
}

// HandleGetTenant resolves one tenant by id or legacy code.
func (ctl *AdminController) HandleGetTenant(c *fiber.Ctx) error {
	tenant, err := ctl.tenants.Resolve(c.Params("id"))
	if err != nil {
		return renderError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(tenant)
}

// HandleCreateTenant registers a tenant in the mirror and audits the action.
func (ctl *AdminController) HandleCreateTenant(c *fiber.Ctx) error {
	var tenant models.Tenant
	if err := c.BodyParser(&tenant); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if tenant.Name == "" {
		return badRequest(c, "tenant_name is required")
	}

	if err := ctl.tenants.Create(&tenant); err != nil {
		return renderError(c, err)
	}

	sess := middleware.CurrentSession(c)
	if _, err := ctl.audit.Append(models.AuditEntry{
		ActorType:  models.ACTOR_ADMIN,
		ActorEmail: sess.User.Email,
		TenantID:   tenant.TenantID,
		Action:     models.ACTION_TENANT_CREATED,
	}); err != nil {
		return renderError(c, err)
	}

	// ?push=1 announces the new tenant to the external source as well.
	if c.QueryBool("push") {
		if err := ctl.sync.PushNewTenant(c.Context(), tenant); err != nil {
			return renderError(c, err)
		}
	}
	return c.Status(fiber.StatusCreated).JSON(tenant)
}

// HandleUpdateTenant merges a partial change set into the tenant.
func (ctl *AdminController) HandleUpdateTenant(c *fiber.Ctx) error {
	var patch models.Tenant
	if err := c.BodyParser(&patch); err != nil {
		return badRequest(c, "Invalid request body")
	}

	tenant, err := ctl.tenants.Update(c.Params("id"), patch)
	if err != nil {
		return renderError(c, err)
	}

	sess := middleware.CurrentSession(c)
	if _, err := ctl.audit.Append(models.AuditEntry{
		ActorType:  models.ACTOR_ADMIN,
		ActorEmail: sess.User.Email,
		TenantID:   tenant.TenantID,
		Action:     models.ACTION_TENANT_UPDATED,
	}); err != nil {
		return renderError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(tenant)
}

// HandleDeactivateTenant sets the tenant inactive. Tenants are never hard
// deleted.
func (ctl *AdminController) HandleDeactivateTenant(c *fiber.Ctx) error {
	tenant, err := ctl.tenants.Update(c.Params("id"), models.Tenant{Status: models.TENANT_STATUS_INACTIVE})
	if err != nil {
		return renderError(c, err)
	}

	sess := middleware.CurrentSession(c)
	if _, err := ctl.audit.Append(models.AuditEntry{
		ActorType:  models.ACTOR_ADMIN,
		ActorEmail: sess.User.Email,
		TenantID:   tenant.TenantID,
		Action:     models.ACTION_TENANT_UPDATED,
		Metadata:   map[string]string{"status": models.TENANT_STATUS_INACTIVE},
	}); err != nil {
		return renderError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(tenant)
}

// HandleSyncTenants reconciles the mirror against the external source.
func (ctl *AdminController) HandleSyncTenants(c *fiber.Ctx) error {
	synced, err := ctl.sync.SyncFromExternal(c.Context())
	if err != nil {
		return renderError(c, err)
	}

	sess := middleware.CurrentSession(c)
	if _, err := ctl.audit.Append(models.AuditEntry{
		ActorType:  models.ACTOR_ADMIN,
		ActorEmail: sess.User.Email,
		Action:     models.ACTION_TENANT_SYNCED,
		Metadata:   map[string]string{"count": strconv.Itoa(len(synced))},
	}); err != nil {
		return renderError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"synced": len(synced), "tenants": synced})
}

// HandlePushTenant writes one tenant back to the external source. A remote
// that declines the operation answers 501 with unsupported=true instead of a
// hard failure.
func (ctl *AdminController) HandlePushTenant(c *fiber.Ctx) error {
	tenant, err := ctl.tenants.Resolve(c.Params("id"))
	if err != nil {
		return renderError(c, err)
	}
	if err := ctl.sync.SyncToExternal(c.Context(), *tenant); err != nil {
		return renderError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true})
}

type createUserRequest struct {
	TenantID string `json:"tenant_id"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// HandleCreateUser creates a tenant account (typically the primary user).
func (ctl *AdminController) HandleCreateUser(c *fiber.Ctx) error {
	var req createUserRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.TenantID == "" || req.Email == "" || req.Password == "" {
		return badRequest(c, "tenant_id, email and password are required")
	}
	role := req.Role
	if role == "" {
		role = models.ROLE_CUSTOMER_PRIMARY
	}

	if _, err := ctl.tenants.Resolve(req.TenantID); err != nil {
		return renderError(c, err)
	}

	user, err := models.NewUser(req.TenantID, req.Email, req.Password, role)
	if err != nil {
		return renderError(c, err)
	}
	if err := ctl.users.Create(user); err != nil {
		return renderError(c, err)
	}

	sess := middleware.CurrentSession(c)
	if _, err := ctl.audit.Append(models.AuditEntry{
		ActorType:  models.ACTOR_ADMIN,
		ActorEmail: sess.User.Email,
		TenantID:   req.TenantID,
		Action:     models.ACTION_USER_CREATED,
		Metadata:   map[string]string{"email": user.Email, "role": user.Role},
	}); err != nil {
		return renderError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

type resetPasswordRequest struct {
	Password string `json:"password"`
}

// HandleResetPassword sets a new password for a directory user.
func (ctl *AdminController) HandleResetPassword(c *fiber.Ctx) error {
	var req resetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Password == "" {
		return badRequest(c, "password is required")
	}

	userID := c.Params("id")
	if err := ctl.users.ResetPassword(userID, req.Password); err != nil {
		return renderError(c, err)
	}

	sess := middleware.CurrentSession(c)
	if _, err := ctl.audit.Append(models.AuditEntry{
		ActorType:  models.ACTOR_ADMIN,
		ActorEmail: sess.User.Email,
		Action:     models.ACTION_PASSWORD_RESET,
		Metadata:   map[string]string{"user_id": userID},
	}); err != nil {
		return renderError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "password reset"})
}

// HandleListRequests lists change requests, optionally filtered by status
// and tenant.
func (ctl *AdminController) HandleListRequests(c *fiber.Ctx) error {
	requests, err := ctl.engine.List(repository.RequestFilter{
		TenantID: c.Query("tenant_id"),
		Status:   c.Query("status"),
	})
	if err != nil {
		return renderError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"requests": requests})
}

type transitionRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

// HandleTransitionRequest moves a request through the workflow.
func (ctl *AdminController) HandleTransitionRequest(c *fiber.Ctx) error {
	var req transitionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if !models.ValidRequestStatus(req.Status) {
		return badRequest(c, "unknown status")
	}

	sess := middleware.CurrentSession(c)
	request, err := ctl.engine.Transition(c.Params("id"), req.Status, req.Notes, sess.User.Email)
	if err != nil {
		return renderError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(request)
}

// HandleListAudit returns the compliance record.
func (ctl *AdminController) HandleListAudit(c *fiber.Ctx) error {
	if tenantID := c.Query("tenant_id"); tenantID != "" {
		entries, err := ctl.audit.ListByTenant(tenantID)
		if err != nil {
			return renderError(c, err)
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"entries": entries})
	}

	entries, err := ctl.audit.List()
	if err != nil {
		return renderError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"entries": entries})
}

// HandleTenantActivity lists usage events for one tenant.
func (ctl *AdminController) HandleTenantActivity(c *fiber.Ctx) error {
	tenant, err := ctl.tenants.Resolve(c.Params("id"))
	if err != nil {
		return renderError(c, err)
	}
	records, err := ctl.activity.ListByTenant(tenant.TenantID)
	if err != nil {
		return renderError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"activity": records})
}
