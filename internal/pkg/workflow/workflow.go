package workflow

import (
	"fmt"

	"github.com/FlorianHaas/TenantDesk/app/models"
	"github.com/FlorianHaas/TenantDesk/app/repository"
	"github.com/FlorianHaas/TenantDesk/internal/pkg/storage"
)

// payload keys, in order, the approval cascade reads the desired plan from.
var desiredPlanKeys = []string{"desired_plan", "plan", "new_plan", "target_plan"}

// Engine runs the change-request state machine and cascades approved
// requests into the tenant's lifecycle records.
type Engine struct {
	requests      repository.RequestRepository
	subscriptions repository.SubscriptionRepository
	renewals      repository.RenewalRepository
	audit         repository.AuditRepository
}

// NewEngine creates a workflow engine over the given repositories.
func NewEngine(
	requests repository.RequestRepository,
	subscriptions repository.SubscriptionRepository,
	renewals repository.RenewalRepository,
	audit repository.AuditRepository,
) *Engine {
	return &Engine{
		requests:      requests,
		subscriptions: subscriptions,
		renewals:      renewals,
		audit:         audit,
	}
}

// CreateInput carries the customer-submitted change proposal.
type CreateInput struct {
	TenantID       string
	RequesterEmail string
	Type           string
	Payload        map[string]string
}

// Create opens a request in the NEW state and records the business event.
func (e *Engine) Create(input CreateInput) (*models.Request, error) {
	if !models.ValidRequestType(input.Type) {
		return nil, fmt.Errorf("unknown request type %q", input.Type)
	}

	request := &models.Request{
		TenantID:       input.TenantID,
		RequesterEmail: input.RequesterEmail,
		Type:           input.Type,
		Payload:        input.Payload,
	}
	if err := e.requests.Create(request); err != nil {
		return nil, err
	}

	_, err := e.audit.Append(models.AuditEntry{
		ActorType:  models.ACTOR_CUSTOMER,
		ActorEmail: input.RequesterEmail,
		TenantID:   input.TenantID,
		Action:     models.ACTION_REQUEST_CREATED,
		Metadata:   map[string]string{"request_id": request.RequestID, "type": request.Type},
	})
	if err != nil {
		return nil, err
	}
	return request, nil
}

// Transition moves the request to the given status. A request already in a
// terminal state is returned unchanged: repeated approval must not re-apply
// the cascade or re-log the audit entry.
func (e *Engine) Transition(requestID, status, notes, reviewerEmail string) (*models.Request, error) {
	if !models.ValidRequestStatus(status) {
		return nil, fmt.Errorf("unknown request status %q", status)
	}
	// The state machine only moves forward: NEW is the entry state, never a
	// transition target.
	if status == models.REQUEST_STATUS_NEW {
		return nil, fmt.Errorf("cannot transition a request back to %s", models.REQUEST_STATUS_NEW)
	}

	request, err := e.requests.GetByID(requestID)
	if err != nil {
		return nil, err
	}
	if request.IsTerminal() {
		return request, nil
	}

	request.Status = status
	request.ReviewerEmail = reviewerEmail
	if notes != "" {
		request.DecisionNotes = notes
	}
	request.UpdatedAt = storage.Now()

	if status == models.REQUEST_STATUS_APPROVED {
		if err := e.applyCascade(request); err != nil {
			return nil, err
		}
	}

	if err := e.requests.Save(request); err != nil {
		return nil, err
	}

	_, err = e.audit.Append(models.AuditEntry{
		ActorType:  models.ACTOR_ADMIN,
		ActorEmail: reviewerEmail,
		TenantID:   request.TenantID,
		Action:     auditAction(status),
		Metadata:   map[string]string{"request_id": request.RequestID, "type": request.Type},
	})
	if err != nil {
		return nil, err
	}
	return request, nil
}

// List returns requests matching the filter, newest first.
func (e *Engine) List(filter repository.RequestFilter) ([]models.Request, error) {
	return e.requests.List(filter)
}

// auditAction derives the audit event from the resulting status, not the
// request type.
func auditAction(status string) string {
	switch status {
	case models.REQUEST_STATUS_APPROVED:
		return models.ACTION_REQUEST_APPROVED
	case models.REQUEST_STATUS_REJECTED:
		return models.ACTION_REQUEST_REJECTED
	default:
		return models.ACTION_REQUEST_CREATED
	}
}

// applyCascade pushes the approved request's effect into the tenant's
// lifecycle records. CHANGE_PLAN and CHANGE_DATES have no automatic cascade;
// the reviewer acts manually.
func (e *Engine) applyCascade(request *models.Request) error {
	switch request.Type {
	case models.REQUEST_TYPE_UPGRADE:
		return e.cascadeUpgrade(request)
	case models.REQUEST_TYPE_RENEWAL:
		return e.cascadeRenewal(request)
	}
	return nil
}

func (e *Engine) cascadeUpgrade(request *models.Request) error {
	records, err := e.subscriptions.ListByTenant(request.TenantID)
	if err != nil {
		return err
	}

	plan := desiredPlan(request.Payload)
	for _, record := range records {
		patch := models.Subscription{
			SubscriptionID: record.SubscriptionID,
			Status:         models.SUBSCRIPTION_STATUS_PENDING_UPGRADE,
		}
		if plan != "" {
			patch.Plan = plan
		}
		if _, err := e.subscriptions.Upsert(patch); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) cascadeRenewal(request *models.Request) error {
	records, err := e.renewals.ListByTenant(request.TenantID)
	if err != nil {
		return err
	}
	for _, record := range records {
		patch := models.Renewal{
			RenewalID: record.RenewalID,
			Status:    models.RENEWAL_STATUS_IN_PROGRESS,
		}
		if _, err := e.renewals.Upsert(patch); err != nil {
			return err
		}
	}
	return nil
}

func desiredPlan(payload map[string]string) string {
	for _, key := range desiredPlanKeys {
		if v, ok := payload[key]; ok && v != "" {
			return v
		}
	}
	return ""
}
