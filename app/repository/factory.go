package repository

import (
	"sync"

	"github.com/FlorianHaas/TenantDesk/internal/pkg/storage"
)

// Factory manages repository instances and ensures they are singletons
type Factory struct {
	kv    storage.KV
	repos *Repositories
	once  sync.Once
}

// NewFactory creates a new repository factory
func NewFactory(kv storage.KV) *Factory {
	return &Factory{
		kv: kv,
	}
}

// GetRepositories returns a singleton instance of all repositories
func (f *Factory) GetRepositories() *Repositories {
	f.once.Do(func() {
		f.repos = NewRepositories(f.kv)
	})
	return f.repos
}

// GetTenantRepository returns the tenant repository instance
func (f *Factory) GetTenantRepository() TenantRepository {
	return f.GetRepositories().Tenant
}

// GetUserRepository returns the user repository instance
func (f *Factory) GetUserRepository() UserRepository {
	return f.GetRepositories().User
}

// GetSubscriptionRepository returns the subscription repository instance
func (f *Factory) GetSubscriptionRepository() SubscriptionRepository {
	return f.GetRepositories().Subscription
}

// GetRenewalRepository returns the renewal repository instance
func (f *Factory) GetRenewalRepository() RenewalRepository {
	return f.GetRepositories().Renewal
}

// GetRequestRepository returns the request repository instance
func (f *Factory) GetRequestRepository() RequestRepository {
	return f.GetRepositories().Request
}

// GetAuditRepository returns the audit repository instance
func (f *Factory) GetAuditRepository() AuditRepository {
	return f.GetRepositories().Audit
}

// GetActivityRepository returns the activity repository instance
func (f *Factory) GetActivityRepository() ActivityRepository {
	return f.GetRepositories().Activity
}
