package tenantsync

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FlorianHaas/TenantDesk/app/models"
	"github.com/FlorianHaas/TenantDesk/app/repository"
	"github.com/FlorianHaas/TenantDesk/internal/pkg/storage"
)

// stubSource serves a fixed snapshot and records outbound writes.
type stubSource struct {
	rows    []Row
	fetchE  error
	updates []Row
	creates []Row
	writeE  error
}

func (s *stubSource) FetchRows(ctx context.Context) ([]Row, error) {
	return s.rows, s.fetchE
}

func (s *stubSource) UpdateTenant(ctx context.Context, tenantID string, row Row) error {
	s.updates = append(s.updates, row)
	return s.writeE
}

func (s *stubSource) CreateTenant(ctx context.Context, row Row) error {
	s.creates = append(s.creates, row)
	return s.writeE
}

func newSyncFixture(rows []Row) (*Service, repository.TenantRepository, *stubSource) {
	tenants := repository.NewTenantRepository(storage.NewMemoryKV())
	source := &stubSource{rows: rows}
	return NewService(source, tenants), tenants, source
}

func TestSyncFromExternalInsertsAndDefaults(t *testing.T) {
	svc, tenants, _ := newSyncFixture([]Row{
		{"tenant_id": "T1", "tenant_code": "acme", "company": "Acme Holdings"},
		{"region": "EU"}, // no identifier, no name: dropped
	})

	synced, err := svc.SyncFromExternal(context.Background())
	require.NoError(t, err)
	require.Len(t, synced, 1)

	stored, err := tenants.Resolve("acme")
	require.NoError(t, err)
	assert.Equal(t, "T1", stored.TenantID)
	assert.Equal(t, "Acme Holdings", stored.Name)
	assert.Equal(t, "USD", stored.Currency)
}

func TestSyncFromExternalUpsertMatchesByCode(t *testing.T) {
	svc, tenants, _ := newSyncFixture([]Row{
		{"tenant_code": "acme", "tenant_name": "Acme Holdings", "plan": "Scale"},
	})

	require.NoError(t, tenants.Create(&models.Tenant{TenantID: "LOCAL-1", TenantCode: "acme", Name: "Acme"}))

	_, err := svc.SyncFromExternal(context.Background())
	require.NoError(t, err)

	all, err := tenants.List()
	require.NoError(t, err)
	require.Len(t, all, 1, "matching row must merge, not duplicate")
	assert.Equal(t, "LOCAL-1", all[0].TenantID)
	assert.Equal(t, "Acme Holdings", all[0].Name)
	assert.Equal(t, "Scale", all[0].PlanType)
}

func TestSyncFromExternalIdempotent(t *testing.T) {
	rows := []Row{
		{"tenant_id": "T1", "tenant_code": "acme", "tenant_name": "Acme", "max_users": "25"},
		{"tenant_id": "T2", "tenant_name": "Globex", "plan": "Scale"},
	}
	svc, tenants, _ := newSyncFixture(rows)

	_, err := svc.SyncFromExternal(context.Background())
	require.NoError(t, err)
	first, err := tenants.List()
	require.NoError(t, err)

	_, err = svc.SyncFromExternal(context.Background())
	require.NoError(t, err)
	second, err := tenants.List()
	require.NoError(t, err)

	require.Equal(t, len(first), len(second))
	for i := range first {
		a, b := first[i], second[i]
		// timestamps aside, every field must be identical
		a.CreatedAt, a.UpdatedAt = b.CreatedAt, b.UpdatedAt
		assert.Equal(t, a, b)
	}
}

func TestSyncFromExternalAcceptsHumanEditedRows(t *testing.T) {
	// Lowercase status and junk contact email come straight from the sheet;
	// only rows lacking both an identifier and a name may be dropped.
	svc, tenants, _ := newSyncFixture([]Row{
		{"tenant_id": "T9", "tenant_name": "Probe", "status": "active", "contact_email": "n/a"},
		{"tenant_id": "T10", "tenant_name": "Dormant", "status": "INACTIVE"},
	})

	synced, err := svc.SyncFromExternal(context.Background())
	require.NoError(t, err)
	require.Len(t, synced, 2)

	stored, err := tenants.Resolve("T9")
	require.NoError(t, err)
	assert.Equal(t, models.TENANT_STATUS_ACTIVE, stored.Status)
	assert.Empty(t, stored.ContactEmail, "unparsable contact email drops to absent")

	dormant, err := tenants.Resolve("T10")
	require.NoError(t, err)
	assert.Equal(t, models.TENANT_STATUS_INACTIVE, dormant.Status)
}

func TestSyncFromExternalInsertAndUpdateAgree(t *testing.T) {
	rows := []Row{{"tenant_id": "T9", "tenant_name": "Probe", "status": "active"}}
	svc, tenants, _ := newSyncFixture(rows)

	// First pass inserts, second pass merges; both must accept the row.
	_, err := svc.SyncFromExternal(context.Background())
	require.NoError(t, err)
	_, err = svc.SyncFromExternal(context.Background())
	require.NoError(t, err)

	all, err := tenants.List()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, models.TENANT_STATUS_ACTIVE, all[0].Status)
}

// failingTenants errors on every read, standing in for a broken store.
type failingTenants struct {
	repository.TenantRepository
	err error
}

func (f *failingTenants) Resolve(idOrCode string) (*models.Tenant, error) {
	return nil, f.err
}

func TestSyncFromExternalResolveFailurePropagates(t *testing.T) {
	storeErr := errors.New("store unavailable")
	source := &stubSource{rows: []Row{{"tenant_id": "T1", "tenant_name": "Acme"}}}
	svc := NewService(source, &failingTenants{err: storeErr})

	_, err := svc.SyncFromExternal(context.Background())
	assert.ErrorIs(t, err, storeErr, "a store failure must not fall through to the insert path")
}

func TestSyncFromExternalFetchFailure(t *testing.T) {
	svc, _, source := newSyncFixture(nil)
	source.fetchE = &NetworkError{Op: "fetch", Err: errors.New("boom")}

	_, err := svc.SyncFromExternal(context.Background())
	var netErr *NetworkError
	require.True(t, errors.As(err, &netErr))
}

func TestSyncToExternal(t *testing.T) {
	svc, _, source := newSyncFixture(nil)

	err := svc.SyncToExternal(context.Background(), models.Tenant{TenantID: "T1", Name: "Acme", Status: "Active"})
	require.NoError(t, err)
	require.Len(t, source.updates, 1)
	assert.Equal(t, "Acme", source.updates[0]["tenant_name"])
}

func TestSyncToExternalUnsupportedPassthrough(t *testing.T) {
	svc, _, source := newSyncFixture(nil)
	source.writeE = classifyRemoteError("updateTenant not enabled")

	err := svc.SyncToExternal(context.Background(), models.Tenant{TenantID: "T1"})
	assert.ErrorIs(t, err, ErrUnsupported)
}
