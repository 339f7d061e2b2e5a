package repository

import (
	"sync"

	"github.com/FlorianHaas/TenantDesk/app/models"
	"github.com/FlorianHaas/TenantDesk/internal/pkg/storage"
)

const (
	subscriptionsKey = "tenantdesk:subscriptions"
	renewalsKey      = "tenantdesk:renewals"
)

// subscriptionRepository implements the SubscriptionRepository interface
type subscriptionRepository struct {
	coll *storage.Collection[models.Subscription]
	mu   sync.Mutex
}

// NewSubscriptionRepository creates a new subscription repository instance
func NewSubscriptionRepository(kv storage.KV) SubscriptionRepository {
	return &subscriptionRepository{coll: storage.NewCollection[models.Subscription](kv, subscriptionsKey)}
}

func (r *subscriptionRepository) ListByTenant(tenantID string) ([]models.Subscription, error) {
	records, err := r.coll.Load()
	if err != nil {
		return nil, err
	}
	scoped := make([]models.Subscription, 0, len(records))
	for i := range records {
		if records[i].TenantID == tenantID {
			scoped = append(scoped, records[i])
		}
	}
	return scoped, nil
}

// Upsert matches by id and shallow-merges; a record without an id is inserted
// with a generated one.
func (r *subscriptionRepository) Upsert(record models.Subscription) (*models.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.coll.Load()
	if err != nil {
		return nil, err
	}

	if record.SubscriptionID != "" {
		for i := range records {
			if records[i].SubscriptionID == record.SubscriptionID {
				records[i].Merge(record)
				if err := r.coll.Save(records); err != nil {
					return nil, err
				}
				merged := records[i]
				return &merged, nil
			}
		}
	} else {
		record.SubscriptionID = storage.NewID("SUB")
	}

	records = append(records, record)
	if err := r.coll.Save(records); err != nil {
		return nil, err
	}
	return &record, nil
}

// renewalRepository implements the RenewalRepository interface
type renewalRepository struct {
	coll *storage.Collection[models.Renewal]
	mu   sync.Mutex
}

// NewRenewalRepository creates a new renewal repository instance
func NewRenewalRepository(kv storage.KV) RenewalRepository {
	return &renewalRepository{coll: storage.NewCollection[models.Renewal](kv, renewalsKey)}
}

func (r *renewalRepository) ListByTenant(tenantID string) ([]models.Renewal, error) {
	records, err := r.coll.Load()
	if err != nil {
		return nil, err
	}
	scoped := make([]models.Renewal, 0, len(records))
	for i := range records {
		if records[i].TenantID == tenantID {
			scoped = append(scoped, records[i])
		}
	}
	return scoped, nil
}

// Upsert matches by id and shallow-merges; a record without an id is inserted
// with a generated one.
func (r *renewalRepository) Upsert(record models.Renewal) (*models.Renewal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.coll.Load()
	if err != nil {
		return nil, err
	}

	if record.RenewalID != "" {
		for i := range records {
			if records[i].RenewalID == record.RenewalID {
				records[i].Merge(record)
				if err := r.coll.Save(records); err != nil {
					return nil, err
				}
				merged := records[i]
				return &merged, nil
			}
		}
	} else {
		record.RenewalID = storage.NewID("REN")
	}

	records = append(records, record)
	if err := r.coll.Save(records); err != nil {
		return nil, err
	}
	return &record, nil
}
