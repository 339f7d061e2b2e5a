package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FlorianHaas/TenantDesk/app/models"
	"github.com/FlorianHaas/TenantDesk/app/repository"
	"github.com/FlorianHaas/TenantDesk/internal/pkg/storage"
)

func newFixture() (*Service, repository.SubscriptionRepository, repository.RenewalRepository) {
	kv := storage.NewMemoryKV()
	subs := repository.NewSubscriptionRepository(kv)
	rens := repository.NewRenewalRepository(kv)
	return NewService(subs, rens), subs, rens
}

func TestEnsureSeedsOnce(t *testing.T) {
	svc, subs, rens := newFixture()
	tenant := models.Tenant{
		TenantID:     "T1",
		Name:         "Acme",
		PlanType:     "Scale",
		PlanStart:    "2026-01-01",
		MaxUsers:     25,
		Currency:     "USD",
		ContactName:  "Jo Doe",
		ContactEmail: "jo@acme.example",
	}

	require.NoError(t, svc.Ensure(tenant))
	require.NoError(t, svc.Ensure(tenant))

	subscriptions, err := subs.ListByTenant("T1")
	require.NoError(t, err)
	require.Len(t, subscriptions, 1, "ensure must be idempotent")

	sub := subscriptions[0]
	assert.Equal(t, "Scale", sub.Plan)
	assert.Equal(t, models.SUBSCRIPTION_STATUS_ACTIVE, sub.Status)
	assert.Equal(t, "2026-01-01", sub.StartDate)
	assert.Equal(t, "2027-01-01", sub.EndDate)
	assert.Equal(t, 25, sub.Seats)

	renewals, err := rens.ListByTenant("T1")
	require.NoError(t, err)
	require.Len(t, renewals, 1, "ensure must be idempotent")

	ren := renewals[0]
	assert.Equal(t, sub.EndDate, ren.RenewalDate, "renewal due date anchors to subscription end")
	assert.Equal(t, models.RENEWAL_TERM_DEFAULT, ren.Term)
	assert.Equal(t, models.RENEWAL_STATUS_ON_TRACK, ren.Status)
	assert.Equal(t, "Jo Doe", ren.Owner)
	assert.Contains(t, ren.Notes, "jo@acme.example")
}

func TestEnsureDefaultsWithoutProfile(t *testing.T) {
	svc, subs, _ := newFixture()

	require.NoError(t, svc.Ensure(models.Tenant{TenantID: "T2", Name: "Globex"}))

	subscriptions, err := subs.ListByTenant("T2")
	require.NoError(t, err)
	require.Len(t, subscriptions, 1)
	assert.Equal(t, models.TENANT_TYPE_DEFAULT, subscriptions[0].Plan)
	assert.NotEmpty(t, subscriptions[0].StartDate, "start defaults to today")
	assert.NotEmpty(t, subscriptions[0].EndDate)
}

func TestEnsureHalvesAreIndependent(t *testing.T) {
	svc, subs, rens := newFixture()

	// A tenant that already has a subscription but no renewal still gets a
	// renewal seeded, and vice versa.
	_, err := subs.Upsert(models.Subscription{TenantID: "T3", Plan: "Enterprise", Status: "Active", EndDate: "2027-06-30"})
	require.NoError(t, err)

	require.NoError(t, svc.Ensure(models.Tenant{TenantID: "T3", Name: "Initech"}))

	subscriptions, err := subs.ListByTenant("T3")
	require.NoError(t, err)
	assert.Len(t, subscriptions, 1, "existing subscription must not be duplicated")

	renewals, err := rens.ListByTenant("T3")
	require.NoError(t, err)
	require.Len(t, renewals, 1)
	assert.Equal(t, "2027-06-30", renewals[0].RenewalDate)
}
