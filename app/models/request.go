package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	REQUEST_STATUS_NEW       = "NEW"
	REQUEST_STATUS_IN_REVIEW = "IN_REVIEW"
	REQUEST_STATUS_APPROVED  = "APPROVED"
	REQUEST_STATUS_REJECTED  = "REJECTED"

	REQUEST_TYPE_UPGRADE      = "UPGRADE_REQUEST"
	REQUEST_TYPE_RENEWAL      = "RENEWAL_REQUEST"
	REQUEST_TYPE_CHANGE_PLAN  = "CHANGE_PLAN"
	REQUEST_TYPE_CHANGE_DATES = "CHANGE_DATES"
)

// Request is a customer-submitted change proposal. Created by a customer
// actor, mutated only by an administrator, never deleted.
type Request struct {
	RequestID      string            `json:"request_id" validate:"required"`
	TenantID       string            `json:"tenant_id" validate:"required"`
	RequesterEmail string            `json:"requester_email" validate:"required,email"`
	Type           string            `json:"type" validate:"oneof=UPGRADE_REQUEST RENEWAL_REQUEST CHANGE_PLAN CHANGE_DATES"`
	Payload        map[string]string `json:"payload,omitempty"`
	Status         string            `json:"status" validate:"oneof=NEW IN_REVIEW APPROVED REJECTED"`
	ReviewerEmail  string            `json:"reviewer_email,omitempty"`
	DecisionNotes  string            `json:"decision_notes,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

func (r *Request) Validate() error {
	v := validator.New()

	return v.Struct(r)
}

// IsTerminal reports whether the request has reached a final state.
func (r *Request) IsTerminal() bool {
	return r.Status == REQUEST_STATUS_APPROVED || r.Status == REQUEST_STATUS_REJECTED
}

// ValidRequestStatus reports whether the value is a known workflow state.
func ValidRequestStatus(status string) bool {
	switch status {
	case REQUEST_STATUS_NEW, REQUEST_STATUS_IN_REVIEW, REQUEST_STATUS_APPROVED, REQUEST_STATUS_REJECTED:
		return true
	}
	return false
}

// ValidRequestType reports whether the value is a known request type.
func ValidRequestType(requestType string) bool {
	switch requestType {
	case REQUEST_TYPE_UPGRADE, REQUEST_TYPE_RENEWAL, REQUEST_TYPE_CHANGE_PLAN, REQUEST_TYPE_CHANGE_DATES:
		return true
	}
	return false
}
