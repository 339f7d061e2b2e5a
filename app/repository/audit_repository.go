package repository

import (
	"sync"

	"github.com/FlorianHaas/TenantDesk/app/models"
	"github.com/FlorianHaas/TenantDesk/internal/pkg/storage"
)

const (
	auditKey    = "tenantdesk:audit"
	activityKey = "tenantdesk:activity"
)

// auditRepository implements the AuditRepository interface. Append is the
// only mutation; entries are the compliance record and never change.
type auditRepository struct {
	coll *storage.Collection[models.AuditEntry]
	mu   sync.Mutex
}

// NewAuditRepository creates a new audit repository instance
func NewAuditRepository(kv storage.KV) AuditRepository {
	return &auditRepository{coll: storage.NewCollection[models.AuditEntry](kv, auditKey)}
}

func (r *auditRepository) Append(entry models.AuditEntry) (*models.AuditEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entry.AuditID == "" {
		entry.AuditID = storage.NewID("AUD")
	}
	entry.CreatedAt = storage.Now()

	entries, err := r.coll.Load()
	if err != nil {
		return nil, err
	}
	entries = append(entries, entry)
	if err := r.coll.Save(entries); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *auditRepository) List() ([]models.AuditEntry, error) {
	return r.coll.Load()
}

func (r *auditRepository) ListByTenant(tenantID string) ([]models.AuditEntry, error) {
	entries, err := r.coll.Load()
	if err != nil {
		return nil, err
	}
	scoped := make([]models.AuditEntry, 0, len(entries))
	for i := range entries {
		if entries[i].TenantID == tenantID {
			scoped = append(scoped, entries[i])
		}
	}
	return scoped, nil
}

// activityRepository implements the ActivityRepository interface
type activityRepository struct {
	coll *storage.Collection[models.ActivityRecord]
	mu   sync.Mutex
}

// NewActivityRepository creates a new activity repository instance
func NewActivityRepository(kv storage.KV) ActivityRepository {
	return &activityRepository{coll: storage.NewCollection[models.ActivityRecord](kv, activityKey)}
}

func (r *activityRepository) Append(record models.ActivityRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if record.CreatedAt.IsZero() {
		record.CreatedAt = storage.Now()
	}

	records, err := r.coll.Load()
	if err != nil {
		return err
	}
	records = append(records, record)
	return r.coll.Save(records)
}

func (r *activityRepository) ListByTenant(tenantID string) ([]models.ActivityRecord, error) {
	records, err := r.coll.Load()
	if err != nil {
		return nil, err
	}
	scoped := make([]models.ActivityRecord, 0, len(records))
	for i := range records {
		if records[i].TenantID == tenantID {
			scoped = append(scoped, records[i])
		}
	}
	return scoped, nil
}
