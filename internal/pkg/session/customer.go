package session

import (
	"context"
	"errors"
	"log"

	"github.com/FlorianHaas/TenantDesk/app/models"
	"github.com/FlorianHaas/TenantDesk/app/repository"
	"github.com/FlorianHaas/TenantDesk/internal/pkg/activity"
	"github.com/FlorianHaas/TenantDesk/internal/pkg/storage"
	"github.com/FlorianHaas/TenantDesk/internal/pkg/tenantsync"
)

// CustomerManager authenticates tenant users. Its session domain is fully
// isolated from the admin domain.
type CustomerManager struct {
	sessions store
	tenants  repository.TenantRepository
	users    repository.UserRepository
	sync     *tenantsync.Service
	recorder *activity.Recorder
}

// NewCustomerManager creates the customer session domain. sync may be nil
// when no external source is configured; the resolve-retry step is skipped
// then.
func NewCustomerManager(
	kv storage.KV,
	tenants repository.TenantRepository,
	users repository.UserRepository,
	sync *tenantsync.Service,
	recorder *activity.Recorder,
) *CustomerManager {
	return &CustomerManager{
		sessions: store{kv: kv, prefix: customerKeyPrefix},
		tenants:  tenants,
		users:    users,
		sync:     sync,
		recorder: recorder,
	}
}

// Login authenticates (tenantCode, email, password).
//
// The check order is a deliberate contract: tenant existence and tenant
// activity fail before anything about the email is examined, so those
// failures never leak whether an email exists. The cross-tenant collision is
// intentionally more specific to help users who mistyped their tenant code.
// The password is verified only after every other check passed.
func (m *CustomerManager) Login(ctx context.Context, tenantCode, email, password string) (*Session, error) {
	tenant, err := m.resolveTenant(ctx, tenantCode)
	if err != nil {
		return nil, err
	}
	if !tenant.IsActive() {
		return nil, ErrTenantInactive
	}

	user, err := m.users.FindByTenantAndEmail(tenant.TenantID, email)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		// No user under this tenant: check whether the email lives under a
		// different one before falling back to the generic failure.
		if other, lookupErr := m.users.FindByEmail(email); lookupErr == nil && other.TenantID != tenant.TenantID {
			return nil, ErrWrongTenant
		}
		return nil, ErrNotFound
	}

	if !user.IsCustomerRole() {
		return nil, ErrNotFound
	}
	if !user.IsActive() {
		return nil, ErrUserInactive
	}
	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	sess := &Session{
		Token:     newToken(),
		ActorType: models.ACTOR_CUSTOMER,
		User:      *user,
		Tenant:    tenant,
		CreatedAt: storage.Now(),
	}
	if err := m.sessions.save(sess); err != nil {
		return nil, err
	}

	if m.recorder != nil {
		if _, err := m.recorder.Record(models.ActivityRecord{
			TenantID:  tenant.TenantID,
			UserEmail: user.Email,
			Event:     models.ACTIVITY_LOGIN,
		}); err != nil {
			log.Printf("customer login: recording activity failed: %v", err)
		}
	}
	return sess, nil
}

// resolveTenant looks the tenant up locally and, when absent, triggers one
// sync from the external source before retrying. A sync failure surfaces to
// the caller at this point.
func (m *CustomerManager) resolveTenant(ctx context.Context, tenantCode string) (*models.Tenant, error) {
	tenant, err := m.tenants.Resolve(tenantCode)
	if err == nil {
		return tenant, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if m.sync == nil {
		return nil, ErrNotFound
	}

	if _, syncErr := m.sync.SyncFromExternal(ctx); syncErr != nil {
		return nil, syncErr
	}
	tenant, err = m.tenants.Resolve(tenantCode)
	if err != nil {
		return nil, ErrNotFound
	}
	return tenant, nil
}

// Current resolves a token to its session.
func (m *CustomerManager) Current(token string) (*Session, error) {
	return m.sessions.load(token)
}

// Logout discards the session.
func (m *CustomerManager) Logout(token string) error {
	return m.sessions.drop(token)
}
