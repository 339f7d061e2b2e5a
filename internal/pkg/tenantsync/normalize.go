package tenantsync

import (
	"math"
	"net/mail"
	"strconv"
	"strings"

	"github.com/FlorianHaas/TenantDesk/app/models"
)

// Row is one raw record from the external tabular source. Column names are
// human-edited and inconsistent; nothing past NormalizeRow may touch this
// shape.
type Row = map[string]any

// Candidate keys per canonical field, tried in order; the first non-empty
// value wins. Keys are compared after cleanKey, so "Tenant ID", "tenant_id"
// and "TenantId" all collapse to the same candidate.
var (
	idKeys       = []string{"tenant_id", "tenantid", "id"}
	codeKeys     = []string{"tenant_code", "code", "tenant"}
	nameKeys     = []string{"tenant_name", "name", "company", "company_name", "organization"}
	legalKeys    = []string{"legal_name", "legal_entity", "registered_name"}
	typeKeys     = []string{"tenant_type", "type", "segment"}
	regionKeys   = []string{"region", "geo", "location"}
	tzKeys       = []string{"timezone", "time_zone", "tz"}
	currencyKeys = []string{"currency", "billing_currency"}
	planKeys     = []string{"plan_type", "plan", "package", "tier"}
	subStatKeys  = []string{"subscription_status", "sub_status", "billing_status"}
	startKeys    = []string{"plan_start", "start_date", "subscription_start", "contract_start"}
	endKeys      = []string{"plan_end", "end_date", "subscription_end", "contract_end"}
	maxUserKeys  = []string{"max_users", "user_limit", "seats", "licensed_users"}
	maxOrgKeys   = []string{"max_organizations", "max_orgs", "org_limit"}
	cNameKeys    = []string{"contact_name", "admin_name", "primary_contact", "contact"}
	cEmailKeys   = []string{"contact_email", "admin_email", "email"}
	cPhoneKeys   = []string{"contact_phone", "phone", "admin_phone"}
	statusKeys   = []string{"status", "tenant_status", "account_status"}
)

// NormalizeRow coalesces one external row into a canonical tenant patch.
// Rows lacking both an identifier and a name are dropped (ok=false).
func NormalizeRow(raw Row) (models.Tenant, bool) {
	cleaned := make(map[string]any, len(raw))
	for k, v := range raw {
		cleaned[cleanKey(k)] = v
	}

	t := models.Tenant{
		TenantID:           pickString(cleaned, idKeys),
		TenantCode:         pickString(cleaned, codeKeys),
		Name:               pickString(cleaned, nameKeys),
		LegalName:          pickString(cleaned, legalKeys),
		Type:               pickString(cleaned, typeKeys),
		Region:             pickString(cleaned, regionKeys),
		Timezone:           pickString(cleaned, tzKeys),
		Currency:           pickString(cleaned, currencyKeys),
		PlanType:           pickString(cleaned, planKeys),
		SubscriptionStatus: pickString(cleaned, subStatKeys),
		PlanStart:          pickString(cleaned, startKeys),
		PlanEnd:            pickString(cleaned, endKeys),
		MaxUsers:           pickInt(cleaned, maxUserKeys),
		MaxOrganizations:   pickInt(cleaned, maxOrgKeys),
		ContactName:        pickString(cleaned, cNameKeys),
		ContactEmail:       normalizeEmail(pickString(cleaned, cEmailKeys)),
		ContactPhone:       pickString(cleaned, cPhoneKeys),
		Status:             normalizeStatus(pickString(cleaned, statusKeys)),
	}

	if t.TenantID == "" && t.TenantCode == "" && t.Name == "" {
		return models.Tenant{}, false
	}
	return t, true
}

// ExternalRow serializes a tenant back into the external row shape for the
// outbound write channel.
func ExternalRow(t models.Tenant) Row {
	row := Row{
		"tenant_id":   t.TenantID,
		"tenant_code": t.TenantCode,
		"tenant_name": t.Name,
		"status":      t.Status,
	}
	setIfPresent(row, "legal_name", t.LegalName)
	setIfPresent(row, "tenant_type", t.Type)
	setIfPresent(row, "region", t.Region)
	setIfPresent(row, "timezone", t.Timezone)
	setIfPresent(row, "currency", t.Currency)
	setIfPresent(row, "plan_type", t.PlanType)
	setIfPresent(row, "subscription_status", t.SubscriptionStatus)
	setIfPresent(row, "plan_start", t.PlanStart)
	setIfPresent(row, "plan_end", t.PlanEnd)
	setIfPresent(row, "contact_name", t.ContactName)
	setIfPresent(row, "contact_email", t.ContactEmail)
	setIfPresent(row, "contact_phone", t.ContactPhone)
	if t.MaxUsers > 0 {
		row["max_users"] = t.MaxUsers
	}
	if t.MaxOrganizations > 0 {
		row["max_organizations"] = t.MaxOrganizations
	}
	return row
}

func setIfPresent(row Row, key, value string) {
	if value != "" {
		row[key] = value
	}
}

// normalizeStatus maps the human-edited status column onto the canonical
// constants. Anything unrecognized drops to empty so the create path fills
// Active instead of rejecting the row.
func normalizeStatus(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "active":
		return models.TENANT_STATUS_ACTIVE
	case "inactive":
		return models.TENANT_STATUS_INACTIVE
	}
	return ""
}

// normalizeEmail drops values that are not parseable addresses ("n/a", "-")
// to absent rather than carrying them into the mirror.
func normalizeEmail(raw string) string {
	if raw == "" {
		return ""
	}
	if _, err := mail.ParseAddress(raw); err != nil {
		return ""
	}
	return raw
}

// cleanKey lowercases a column name and strips spaces, underscores and
// hyphens so legacy aliases collapse onto one candidate.
func cleanKey(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	key = strings.ReplaceAll(key, " ", "")
	key = strings.ReplaceAll(key, "_", "")
	return strings.ReplaceAll(key, "-", "")
}

func pickString(cleaned map[string]any, candidates []string) string {
	for _, candidate := range candidates {
		v, ok := cleaned[cleanKey(candidate)]
		if !ok {
			continue
		}
		if s := stringValue(v); s != "" {
			return s
		}
	}
	return ""
}

// pickInt coerces the first numeric-looking candidate. Invalid or non-finite
// values are dropped to absent, never to zero-by-accident.
func pickInt(cleaned map[string]any, candidates []string) int {
	for _, candidate := range candidates {
		v, ok := cleaned[cleanKey(candidate)]
		if !ok {
			continue
		}
		switch n := v.(type) {
		case float64:
			if math.IsNaN(n) || math.IsInf(n, 0) {
				continue
			}
			return int(n)
		case int:
			return n
		case string:
			s := strings.TrimSpace(n)
			if s == "" {
				continue
			}
			if parsed, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(parsed) && !math.IsInf(parsed, 0) {
				return int(parsed)
			}
		}
	}
	return 0
}

func stringValue(v any) string {
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case float64:
		if math.IsNaN(s) || math.IsInf(s, 0) {
			return ""
		}
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	default:
		return ""
	}
}
