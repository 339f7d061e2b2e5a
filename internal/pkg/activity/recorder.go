package activity

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/FlorianHaas/TenantDesk/app/models"
	"github.com/FlorianHaas/TenantDesk/app/repository"
)

// DedupWindow suppresses repeated PAGE_VIEW events for the same
// (tenant, user, path) triple.
const DedupWindow = 5 * time.Minute

// Recorder appends usage events, deduplicating page views inside the window.
// The dedup map lives in memory only; a restart forgets it, which at worst
// stores one extra record.
type Recorder struct {
	repo repository.ActivityRepository
	now  func() time.Time

	mu       sync.Mutex
	lastSeen map[string]time.Time
}

// NewRecorder creates a recorder over the given repository.
func NewRecorder(repo repository.ActivityRepository) *Recorder {
	return &Recorder{
		repo:     repo,
		now:      time.Now,
		lastSeen: make(map[string]time.Time),
	}
}

// Record appends the event. It returns false when a duplicate PAGE_VIEW was
// suppressed.
func (r *Recorder) Record(record models.ActivityRecord) (bool, error) {
	if record.Event == models.ACTIVITY_PAGE_VIEW && !r.shouldStore(record) {
		return false, nil
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = r.now().UTC()
	}
	if err := r.repo.Append(record); err != nil {
		return false, err
	}
	return true, nil
}

func (r *Recorder) shouldStore(record models.ActivityRecord) bool {
	key := dedupKey(record)
	now := r.now()

	r.mu.Lock()
	defer r.mu.Unlock()

	if seen, ok := r.lastSeen[key]; ok && now.Sub(seen) < DedupWindow {
		return false
	}
	r.lastSeen[key] = now
	return true
}

func dedupKey(record models.ActivityRecord) string {
	return fmt.Sprintf("%s|%s|%s", record.TenantID, strings.ToLower(record.UserEmail), record.Path)
}
