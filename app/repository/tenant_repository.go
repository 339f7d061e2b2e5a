package repository

import (
	"strings"
	"sync"

	"github.com/FlorianHaas/TenantDesk/app/models"
	"github.com/FlorianHaas/TenantDesk/internal/pkg/storage"
)

const tenantsKey = "tenantdesk:tenants"

// tenantRepository implements the TenantRepository interface
type tenantRepository struct {
	coll *storage.Collection[models.Tenant]
	mu   sync.Mutex
}

// NewTenantRepository creates a new tenant repository instance
func NewTenantRepository(kv storage.KV) TenantRepository {
	return &tenantRepository{coll: storage.NewCollection[models.Tenant](kv, tenantsKey)}
}

// Resolve finds a tenant by canonical id or legacy code, case-insensitively.
func (r *tenantRepository) Resolve(idOrCode string) (*models.Tenant, error) {
	if strings.TrimSpace(idOrCode) == "" {
		return nil, ErrNotFound
	}

	tenants, err := r.coll.Load()
	if err != nil {
		return nil, err
	}
	for i := range tenants {
		if tenants[i].MatchesKey(idOrCode) {
			t := tenants[i]
			return &t, nil
		}
	}
	return nil, ErrNotFound
}

// Create assigns the canonical id and timestamps, applies defaults and
// appends the tenant to the mirror. A supplied TenantID is preserved so sync
// can carry external ids through.
func (r *tenantRepository) Create(tenant *models.Tenant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if tenant.TenantID == "" {
		tenant.TenantID = storage.NewID("TEN")
	}
	tenant.ApplyDefaults()
	now := storage.Now()
	tenant.CreatedAt = now
	tenant.UpdatedAt = now

	if err := tenant.Validate(); err != nil {
		return err
	}

	tenants, err := r.coll.Load()
	if err != nil {
		return err
	}
	for i := range tenants {
		if strings.EqualFold(tenants[i].TenantID, tenant.TenantID) {
			return ErrConflict
		}
	}
	tenants = append(tenants, *tenant)
	return r.coll.Save(tenants)
}

// Update shallow-merges the patch into the matching record and re-stamps
// updated_at. The canonical id is preserved.
func (r *tenantRepository) Update(id string, patch models.Tenant) (*models.Tenant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tenants, err := r.coll.Load()
	if err != nil {
		return nil, err
	}
	for i := range tenants {
		if !tenants[i].MatchesKey(id) {
			continue
		}
		tenants[i].Merge(patch)
		tenants[i].UpdatedAt = storage.Now()
		if err := r.coll.Save(tenants); err != nil {
			return nil, err
		}
		t := tenants[i]
		return &t, nil
	}
	return nil, ErrNotFound
}

// List returns the full mirror.
func (r *tenantRepository) List() ([]models.Tenant, error) {
	return r.coll.Load()
}
