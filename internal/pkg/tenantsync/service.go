package tenantsync

import (
	"context"
	"errors"
	"log"

	"github.com/FlorianHaas/TenantDesk/app/models"
	"github.com/FlorianHaas/TenantDesk/app/repository"
)

// Service reconciles the local tenant mirror against the external source.
type Service struct {
	source  ExternalSource
	tenants repository.TenantRepository
}

// NewService creates a sync service from an injected source and mirror.
func NewService(source ExternalSource, tenants repository.TenantRepository) *Service {
	return &Service{source: source, tenants: tenants}
}

// SyncFromExternal fetches all rows, normalizes them and upserts each into
// the mirror. Running the same snapshot twice leaves every tenant's
// non-timestamp fields unchanged.
func (s *Service) SyncFromExternal(ctx context.Context) ([]models.Tenant, error) {
	rows, err := s.source.FetchRows(ctx)
	if err != nil {
		return nil, err
	}

	synced := make([]models.Tenant, 0, len(rows))
	for _, raw := range rows {
		incoming, ok := NormalizeRow(raw)
		if !ok {
			continue
		}

		existing, err := s.resolveIncoming(incoming)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			updated, err := s.tenants.Update(existing.TenantID, incoming)
			if err != nil {
				return nil, err
			}
			synced = append(synced, *updated)
			continue
		}

		created := incoming
		if err := s.tenants.Create(&created); err != nil {
			log.Printf("sync: skipping row for %q: %v", incoming.Name, err)
			continue
		}
		synced = append(synced, created)
	}
	return synced, nil
}

// resolveIncoming finds an existing mirror record whose id or legacy code
// matches the incoming id or code. Only a missing record means "no match";
// store failures propagate.
func (s *Service) resolveIncoming(incoming models.Tenant) (*models.Tenant, error) {
	for _, key := range []string{incoming.TenantID, incoming.TenantCode} {
		if key == "" {
			continue
		}
		existing, err := s.tenants.Resolve(key)
		if err == nil {
			return existing, nil
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
	}
	return nil, nil
}

// SyncToExternal serializes the tenant into the external row shape and
// submits it. ErrUnsupported passes through for callers that degrade
// gracefully.
func (s *Service) SyncToExternal(ctx context.Context, tenant models.Tenant) error {
	return s.source.UpdateTenant(ctx, tenant.TenantID, ExternalRow(tenant))
}

// PushNewTenant announces a locally created tenant to the external source via
// the creation RPC channel.
func (s *Service) PushNewTenant(ctx context.Context, tenant models.Tenant) error {
	return s.source.CreateTenant(ctx, ExternalRow(tenant))
}
