package repository

import (
	"errors"

	"github.com/FlorianHaas/TenantDesk/app/models"
	"github.com/FlorianHaas/TenantDesk/internal/pkg/storage"
)

// ErrNotFound is returned when no record matches a lookup. Business callers
// are expected to check for it with errors.Is.
var ErrNotFound = errors.New("record not found")

// ErrConflict is returned when a create would violate a directory invariant,
// such as a second CUSTOMER_PRIMARY for the same tenant.
var ErrConflict = errors.New("record conflicts with an existing one")

// TenantRepository is the canonical tenant registry (the local mirror).
type TenantRepository interface {
	Resolve(idOrCode string) (*models.Tenant, error)
	Create(tenant *models.Tenant) error
	Update(id string, patch models.Tenant) (*models.Tenant, error)
	List() ([]models.Tenant, error)
}

// UserRepository is the credential and user directory.
type UserRepository interface {
	FindByEmail(email string) (*models.User, error)
	FindByTenantAndEmail(tenantID, email string) (*models.User, error)
	ListByTenant(tenantID string) ([]models.User, error)
	Create(user *models.User) error
	Update(userID string, patch models.User) (*models.User, error)
	ResetPassword(userID, newPassword string) error
}

// SubscriptionRepository holds per-tenant subscription lifecycle records.
type SubscriptionRepository interface {
	ListByTenant(tenantID string) ([]models.Subscription, error)
	Upsert(record models.Subscription) (*models.Subscription, error)
}

// RenewalRepository holds per-tenant renewal lifecycle records.
type RenewalRepository interface {
	ListByTenant(tenantID string) ([]models.Renewal, error)
	Upsert(record models.Renewal) (*models.Renewal, error)
}

// RequestRepository stores change requests. Requests are never deleted.
type RequestRepository interface {
	Create(request *models.Request) error
	GetByID(requestID string) (*models.Request, error)
	Save(request *models.Request) error
	List(filter RequestFilter) ([]models.Request, error)
}

// RequestFilter narrows a request listing. Zero values match everything.
type RequestFilter struct {
	TenantID string
	Status   string
}

// AuditRepository is append-only; no update or delete operation exists.
type AuditRepository interface {
	Append(entry models.AuditEntry) (*models.AuditEntry, error)
	List() ([]models.AuditEntry, error)
	ListByTenant(tenantID string) ([]models.AuditEntry, error)
}

// ActivityRepository stores usage events. Append-only.
type ActivityRepository interface {
	Append(record models.ActivityRecord) error
	ListByTenant(tenantID string) ([]models.ActivityRecord, error)
}

// Repositories struct holds all repository instances
type Repositories struct {
	Tenant       TenantRepository
	User         UserRepository
	Subscription SubscriptionRepository
	Renewal      RenewalRepository
	Request      RequestRepository
	Audit        AuditRepository
	Activity     ActivityRepository
}

// NewRepositories creates a new instance of all repositories backed by the
// given store.
func NewRepositories(kv storage.KV) *Repositories {
	return &Repositories{
		Tenant:       NewTenantRepository(kv),
		User:         NewUserRepository(kv),
		Subscription: NewSubscriptionRepository(kv),
		Renewal:      NewRenewalRepository(kv),
		Request:      NewRequestRepository(kv),
		Audit:        NewAuditRepository(kv),
		Activity:     NewActivityRepository(kv),
	}
}
