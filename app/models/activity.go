package models

import "time"

const (
	ACTIVITY_LOGIN     = "LOGIN"
	ACTIVITY_PAGE_VIEW = "PAGE_VIEW"
)

// ActivityRecord is a usage event feeding reporting. Immutable once appended.
type ActivityRecord struct {
	TenantID  string    `json:"tenant_id"`
	UserEmail string    `json:"user_email"`
	Event     string    `json:"event"`
	Path      string    `json:"path,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
