package models

import "time"

const (
	ACTOR_ADMIN    = "ADMIN"
	ACTOR_CUSTOMER = "CUSTOMER"

	ACTION_LOGIN_SUCCESS    = "LOGIN_SUCCESS"
	ACTION_TENANT_CREATED   = "TENANT_CREATED"
	ACTION_TENANT_UPDATED   = "TENANT_UPDATED"
	ACTION_TENANT_SYNCED    = "TENANT_SYNCED"
	ACTION_USER_CREATED     = "USER_CREATED"
	ACTION_PASSWORD_RESET   = "PASSWORD_RESET"
	ACTION_REQUEST_CREATED  = "REQUEST_CREATED"
	ACTION_REQUEST_APPROVED = "REQUEST_APPROVED"
	ACTION_REQUEST_REJECTED = "REQUEST_REJECTED"
)

// AuditEntry is one line of the compliance record. Entries are append-only
// and never mutated or deleted once written.
type AuditEntry struct {
	AuditID    string            `json:"audit_id"`
	ActorType  string            `json:"actor_type"`
	ActorEmail string            `json:"actor_email"`
	TenantID   string            `json:"tenant_id,omitempty"`
	Action     string            `json:"action"`
	Metadata   map[string]string `json:"metadata,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
}
