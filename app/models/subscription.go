package models

const (
	SUBSCRIPTION_STATUS_ACTIVE          = "Active"
	SUBSCRIPTION_STATUS_PENDING_UPGRADE = "Pending Upgrade"
)

// Subscription is a per-tenant lifecycle record describing one plan term.
// Dates are kept in the external source's YYYY-MM-DD form.
type Subscription struct {
	SubscriptionID string  `json:"subscription_id"`
	TenantID       string  `json:"tenant_id"`
	Plan           string  `json:"plan"`
	Status         string  `json:"status"`
	StartDate      string  `json:"start_date,omitempty"`
	EndDate        string  `json:"end_date,omitempty"`
	Seats          int     `json:"seats,omitempty"`
	RenewalType    string  `json:"renewal_type,omitempty"`
	Amount         float64 `json:"amount,omitempty"`
	Currency       string  `json:"currency,omitempty"`
}

// Merge copies every non-empty field of the patch over the receiver. The id
// is never overwritten.
func (s *Subscription) Merge(patch Subscription) {
	if patch.TenantID != "" {
		s.TenantID = patch.TenantID
	}
	if patch.Plan != "" {
		s.Plan = patch.Plan
	}
	if patch.Status != "" {
		s.Status = patch.Status
	}
	if patch.StartDate != "" {
		s.StartDate = patch.StartDate
	}
	if patch.EndDate != "" {
		s.EndDate = patch.EndDate
	}
	if patch.Seats != 0 {
		s.Seats = patch.Seats
	}
	if patch.RenewalType != "" {
		s.RenewalType = patch.RenewalType
	}
	if patch.Amount != 0 {
		s.Amount = patch.Amount
	}
	if patch.Currency != "" {
		s.Currency = patch.Currency
	}
}
