package lifecycle

import (
	"fmt"
	"time"

	"github.com/FlorianHaas/TenantDesk/app/models"
	"github.com/FlorianHaas/TenantDesk/app/repository"
)

const dateLayout = "2006-01-02"

// Service lazily seeds subscription and renewal records the first time a
// tenant is observed with none.
type Service struct {
	subscriptions repository.SubscriptionRepository
	renewals      repository.RenewalRepository
	today         func() time.Time
}

// NewService creates a lifecycle service over the given repositories.
func NewService(subscriptions repository.SubscriptionRepository, renewals repository.RenewalRepository) *Service {
	return &Service{
		subscriptions: subscriptions,
		renewals:      renewals,
		today:         time.Now,
	}
}

// Ensure seeds one subscription and one renewal for the tenant unless they
// already exist. Both halves are independently idempotent.
func (s *Service) Ensure(tenant models.Tenant) error {
	subscriptionEnd, err := s.ensureSubscription(tenant)
	if err != nil {
		return err
	}
	return s.ensureRenewal(tenant, subscriptionEnd)
}

// ensureSubscription returns the end date of the tenant's subscription so the
// renewal half can anchor its due date to it.
func (s *Service) ensureSubscription(tenant models.Tenant) (string, error) {
	existing, err := s.subscriptions.ListByTenant(tenant.TenantID)
	if err != nil {
		return "", err
	}
	if len(existing) > 0 {
		return existing[0].EndDate, nil
	}

	plan := tenant.PlanType
	if plan == "" {
		plan = models.TENANT_TYPE_DEFAULT
	}
	start := tenant.PlanStart
	if start == "" {
		start = s.today().Format(dateLayout)
	}
	end := tenant.PlanEnd
	if end == "" {
		end = addMonths(start, 12)
	}

	record := models.Subscription{
		TenantID:  tenant.TenantID,
		Plan:      plan,
		Status:    models.SUBSCRIPTION_STATUS_ACTIVE,
		StartDate: start,
		EndDate:   end,
		Seats:     tenant.MaxUsers,
		Currency:  tenant.Currency,
	}
	if _, err := s.subscriptions.Upsert(record); err != nil {
		return "", err
	}
	return end, nil
}

func (s *Service) ensureRenewal(tenant models.Tenant, subscriptionEnd string) error {
	existing, err := s.renewals.ListByTenant(tenant.TenantID)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	record := models.Renewal{
		TenantID:     tenant.TenantID,
		Subscription: fmt.Sprintf("%s subscription", tenant.Name),
		RenewalDate:  subscriptionEnd,
		Term:         models.RENEWAL_TERM_DEFAULT,
		Status:       models.RENEWAL_STATUS_ON_TRACK,
		Owner:        tenant.ContactName,
		Notes:        contactNotes(tenant),
	}
	_, err = s.renewals.Upsert(record)
	return err
}

func contactNotes(tenant models.Tenant) string {
	if tenant.ContactEmail == "" {
		return ""
	}
	return fmt.Sprintf("Admin contact: %s", tenant.ContactEmail)
}

// addMonths shifts a YYYY-MM-DD date; an unparsable date falls back to
// twelve months from today so seeded records always carry a due date.
func addMonths(date string, months int) string {
	parsed, err := time.Parse(dateLayout, date)
	if err != nil {
		parsed = time.Now()
	}
	return parsed.AddDate(0, months, 0).Format(dateLayout)
}
