package models

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	TENANT_STATUS_ACTIVE   = "Active"
	TENANT_STATUS_INACTIVE = "Inactive"

	TENANT_TYPE_DEFAULT     = "Enterprise"
	TENANT_CURRENCY_DEFAULT = "USD"
	TENANT_TIMEZONE_DEFAULT = "UTC"
)

// Tenant is the locally authoritative mirror record for one customer
// organization. TenantID is canonical and immutable; TenantCode is a legacy
// human-readable alias kept for backward compatibility.
type Tenant struct {
	TenantID           string    `json:"tenant_id" validate:"required"`
	TenantCode         string    `json:"tenant_code,omitempty"`
	Name               string    `json:"tenant_name" validate:"required,max=200"`
	LegalName          string    `json:"legal_name,omitempty"`
	Type               string    `json:"tenant_type,omitempty"`
	Region             string    `json:"region,omitempty"`
	Timezone           string    `json:"timezone,omitempty"`
	Currency           string    `json:"currency,omitempty"`
	PlanType           string    `json:"plan_type,omitempty"`
	SubscriptionStatus string    `json:"subscription_status,omitempty"`
	PlanStart          string    `json:"plan_start,omitempty"`
	PlanEnd            string    `json:"plan_end,omitempty"`
	MaxUsers           int       `json:"max_users,omitempty"`
	MaxOrganizations   int       `json:"max_organizations,omitempty"`
	ContactName        string    `json:"contact_name,omitempty"`
	ContactEmail       string    `json:"contact_email,omitempty" validate:"omitempty,email"`
	ContactPhone       string    `json:"contact_phone,omitempty"`
	Status             string    `json:"status" validate:"oneof=Active Inactive"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func (t *Tenant) Validate() error {
	v := validator.New()

	return v.Struct(t)
}

// IsActive reports whether the tenant status is Active.
func (t *Tenant) IsActive() bool {
	return t.Status == TENANT_STATUS_ACTIVE
}

// MatchesKey reports whether the given lookup key matches the canonical id or
// the legacy code, case-insensitively.
func (t *Tenant) MatchesKey(idOrCode string) bool {
	key := strings.TrimSpace(idOrCode)
	if key == "" {
		return false
	}
	if strings.EqualFold(t.TenantID, key) {
		return true
	}
	return t.TenantCode != "" && strings.EqualFold(t.TenantCode, key)
}

// ApplyDefaults fills the fields the external source routinely leaves empty.
func (t *Tenant) ApplyDefaults() {
	if t.Currency == "" {
		t.Currency = TENANT_CURRENCY_DEFAULT
	}
	if t.Timezone == "" {
		t.Timezone = TENANT_TIMEZONE_DEFAULT
	}
	if t.Type == "" {
		t.Type = TENANT_TYPE_DEFAULT
	}
	if t.Status == "" {
		t.Status = TENANT_STATUS_ACTIVE
	}
}

// Merge copies every non-empty field of the patch over the receiver,
// last-write-wins per field. TenantID is never overwritten.
func (t *Tenant) Merge(patch Tenant) {
	if patch.TenantCode != "" {
		t.TenantCode = patch.TenantCode
	}
	if patch.Name != "" {
		t.Name = patch.Name
	}
	if patch.LegalName != "" {
		t.LegalName = patch.LegalName
	}
	if patch.Type != "" {
		t.Type = patch.Type
	}
	if patch.Region != "" {
		t.Region = patch.Region
	}
	if patch.Timezone != "" {
		t.Timezone = patch.Timezone
	}
	if patch.Currency != "" {
		t.Currency = patch.Currency
	}
	if patch.PlanType != "" {
		t.PlanType = patch.PlanType
	}
	if patch.SubscriptionStatus != "" {
		t.SubscriptionStatus = patch.SubscriptionStatus
	}
	if patch.PlanStart != "" {
		t.PlanStart = patch.PlanStart
	}
	if patch.PlanEnd != "" {
		t.PlanEnd = patch.PlanEnd
	}
	if patch.MaxUsers != 0 {
		t.MaxUsers = patch.MaxUsers
	}
	if patch.MaxOrganizations != 0 {
		t.MaxOrganizations = patch.MaxOrganizations
	}
	if patch.ContactName != "" {
		t.ContactName = patch.ContactName
	}
	if patch.ContactEmail != "" {
		t.ContactEmail = patch.ContactEmail
	}
	if patch.ContactPhone != "" {
		t.ContactPhone = patch.ContactPhone
	}
	if patch.Status != "" {
		t.Status = patch.Status
	}
}
