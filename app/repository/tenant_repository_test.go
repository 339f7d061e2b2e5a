package repository

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FlorianHaas/TenantDesk/app/models"
	"github.com/FlorianHaas/TenantDesk/internal/pkg/storage"
)

func newTestRepos() *Repositories {
	return NewRepositories(storage.NewMemoryKV())
}

func TestTenantCreateAppliesDefaults(t *testing.T) {
	repos := newTestRepos()

	tenant := &models.Tenant{TenantCode: "acme", Name: "Acme Holdings"}
	require.NoError(t, repos.Tenant.Create(tenant))

	assert.NotEmpty(t, tenant.TenantID)
	assert.Equal(t, "USD", tenant.Currency)
	assert.Equal(t, "UTC", tenant.Timezone)
	assert.Equal(t, "Enterprise", tenant.Type)
	assert.Equal(t, models.TENANT_STATUS_ACTIVE, tenant.Status)
	assert.False(t, tenant.CreatedAt.IsZero())
	assert.Equal(t, tenant.CreatedAt, tenant.UpdatedAt)
}

func TestTenantResolveDualKey(t *testing.T) {
	repos := newTestRepos()

	tenant := &models.Tenant{TenantID: "T1", TenantCode: "acme", Name: "Acme Holdings"}
	require.NoError(t, repos.Tenant.Create(tenant))

	byID, err := repos.Tenant.Resolve("T1")
	require.NoError(t, err)
	byCode, err := repos.Tenant.Resolve("acme")
	require.NoError(t, err)
	byUpper, err := repos.Tenant.Resolve("ACME")
	require.NoError(t, err)

	assert.Equal(t, byID.TenantID, byCode.TenantID)
	assert.Equal(t, byID.TenantID, byUpper.TenantID)

	_, err = repos.Tenant.Resolve("nope")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repos.Tenant.Resolve("")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTenantCreateRejectsDuplicateID(t *testing.T) {
	repos := newTestRepos()

	require.NoError(t, repos.Tenant.Create(&models.Tenant{TenantID: "T1", Name: "Acme"}))
	err := repos.Tenant.Create(&models.Tenant{TenantID: "t1", Name: "Imposter"})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestTenantUpdateMergesAndRestamps(t *testing.T) {
	repos := newTestRepos()

	tenant := &models.Tenant{TenantID: "T1", TenantCode: "acme", Name: "Acme", Region: "EU"}
	require.NoError(t, repos.Tenant.Create(tenant))

	updated, err := repos.Tenant.Update("acme", models.Tenant{Name: "Acme Holdings"})
	require.NoError(t, err)

	assert.Equal(t, "T1", updated.TenantID)
	assert.Equal(t, "Acme Holdings", updated.Name)
	assert.Equal(t, "EU", updated.Region)
	assert.True(t, !updated.UpdatedAt.Before(tenant.CreatedAt))

	_, err = repos.Tenant.Update("ghost", models.Tenant{Name: "x"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserDirectoryInvariants(t *testing.T) {
	repos := newTestRepos()

	primary, err := models.NewUser("T1", "primary@demo.corp", "demo123", models.ROLE_CUSTOMER_PRIMARY)
	require.NoError(t, err)
	require.NoError(t, repos.User.Create(primary))

	t.Run("duplicate email same tenant rejected", func(t *testing.T) {
		dup, err := models.NewUser("T1", "PRIMARY@demo.corp", "demo123", models.ROLE_CUSTOMER_USER)
		require.NoError(t, err)
		assert.True(t, errors.Is(repos.User.Create(dup), ErrConflict))
	})

	t.Run("second primary rejected", func(t *testing.T) {
		second, err := models.NewUser("T1", "other@demo.corp", "demo123", models.ROLE_CUSTOMER_PRIMARY)
		require.NoError(t, err)
		assert.True(t, errors.Is(repos.User.Create(second), ErrConflict))
	})

	t.Run("same email under another tenant allowed", func(t *testing.T) {
		elsewhere, err := models.NewUser("T2", "primary@demo.corp", "demo123", models.ROLE_CUSTOMER_PRIMARY)
		require.NoError(t, err)
		assert.NoError(t, repos.User.Create(elsewhere))
	})
}

func TestUserFindByEmailIsGlobalAndCaseInsensitive(t *testing.T) {
	repos := newTestRepos()

	u, err := models.NewUser("T1", "User@Demo.Corp", "demo123", models.ROLE_CUSTOMER_USER)
	require.NoError(t, err)
	require.NoError(t, repos.User.Create(u))

	found, err := repos.User.FindByEmail("user@demo.corp")
	require.NoError(t, err)
	assert.Equal(t, u.UserID, found.UserID)

	_, err = repos.User.FindByTenantAndEmail("T2", "user@demo.corp")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserResetPassword(t *testing.T) {
	repos := newTestRepos()

	u, err := models.NewUser("T1", "user@demo.corp", "old-pass", models.ROLE_CUSTOMER_USER)
	require.NoError(t, err)
	require.NoError(t, repos.User.Create(u))

	require.NoError(t, repos.User.ResetPassword(u.UserID, "new-pass"))

	after, err := repos.User.FindByEmail("user@demo.corp")
	require.NoError(t, err)
	assert.True(t, after.CheckPassword("new-pass"))
	assert.False(t, after.CheckPassword("old-pass"))
}

func TestSubscriptionUpsert(t *testing.T) {
	repos := newTestRepos()

	created, err := repos.Subscription.Upsert(models.Subscription{TenantID: "T1", Plan: "Enterprise", Status: "Active"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.SubscriptionID)

	merged, err := repos.Subscription.Upsert(models.Subscription{SubscriptionID: created.SubscriptionID, Status: "Pending Upgrade"})
	require.NoError(t, err)
	assert.Equal(t, "Enterprise", merged.Plan)
	assert.Equal(t, "Pending Upgrade", merged.Status)

	records, err := repos.Subscription.ListByTenant("T1")
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestAuditAppendOnly(t *testing.T) {
	repos := newTestRepos()

	entry, err := repos.Audit.Append(models.AuditEntry{
		ActorType:  models.ACTOR_ADMIN,
		ActorEmail: "admin@tenantdesk.io",
		TenantID:   "T1",
		Action:     models.ACTION_TENANT_CREATED,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, entry.AuditID)
	assert.False(t, entry.CreatedAt.IsZero())

	scoped, err := repos.Audit.ListByTenant("T1")
	require.NoError(t, err)
	assert.Len(t, scoped, 1)
}
