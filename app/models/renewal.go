package models

const (
	RENEWAL_STATUS_ON_TRACK    = "On track"
	RENEWAL_STATUS_IN_PROGRESS = "In Progress"

	RENEWAL_TERM_DEFAULT = "12 months"
)

// Renewal tracks the upcoming renewal of a tenant's subscription.
type Renewal struct {
	RenewalID    string `json:"renewal_id"`
	TenantID     string `json:"tenant_id"`
	Subscription string `json:"subscription,omitempty"`
	RenewalDate  string `json:"renewal_date,omitempty"`
	Term         string `json:"term,omitempty"`
	Status       string `json:"status"`
	Owner        string `json:"owner,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

// Merge copies every non-empty field of the patch over the receiver. The id
// is never overwritten.
func (r *Renewal) Merge(patch Renewal) {
	if patch.TenantID != "" {
		r.TenantID = patch.TenantID
	}
	if patch.Subscription != "" {
		r.Subscription = patch.Subscription
	}
	if patch.RenewalDate != "" {
		r.RenewalDate = patch.RenewalDate
	}
	if patch.Term != "" {
		r.Term = patch.Term
	}
	if patch.Status != "" {
		r.Status = patch.Status
	}
	if patch.Owner != "" {
		r.Owner = patch.Owner
	}
	if patch.Notes != "" {
		r.Notes = patch.Notes
	}
}
