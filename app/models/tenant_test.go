package models

import "testing"

func TestTenantMatchesKey(t *testing.T) {
	tenant := Tenant{TenantID: "TEN-1a2b3c", TenantCode: "acme"}

	tests := []struct {
		key  string
		want bool
	}{
		{key: "TEN-1a2b3c", want: true},
		{key: "ten-1A2B3C", want: true},
		{key: "acme", want: true},
		{key: "ACME", want: true},
		{key: " acme ", want: true},
		{key: "other", want: false},
		{key: "", want: false},
	}

	for _, tt := range tests {
		if got := tenant.MatchesKey(tt.key); got != tt.want {
			t.Fatalf("MatchesKey(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestTenantMatchesKeyWithoutCode(t *testing.T) {
	tenant := Tenant{TenantID: "TEN-1a2b3c"}
	if tenant.MatchesKey("") {
		t.Fatal("empty key must not match a tenant without a code")
	}
}

func TestTenantApplyDefaults(t *testing.T) {
	tenant := Tenant{Name: "Acme Holdings"}
	tenant.ApplyDefaults()

	if tenant.Currency != "USD" || tenant.Timezone != "UTC" || tenant.Type != "Enterprise" || tenant.Status != TENANT_STATUS_ACTIVE {
		t.Fatalf("unexpected defaults: %+v", tenant)
	}

	tenant = Tenant{Name: "Acme", Currency: "EUR", Status: TENANT_STATUS_INACTIVE}
	tenant.ApplyDefaults()
	if tenant.Currency != "EUR" || tenant.Status != TENANT_STATUS_INACTIVE {
		t.Fatalf("defaults must not overwrite explicit values: %+v", tenant)
	}
}

func TestTenantMerge(t *testing.T) {
	existing := Tenant{TenantID: "TEN-1", Name: "Acme", Region: "EU", MaxUsers: 10}
	existing.Merge(Tenant{TenantID: "TEN-2", Name: "Acme Holdings", MaxUsers: 25})

	if existing.TenantID != "TEN-1" {
		t.Fatal("Merge must never overwrite the canonical id")
	}
	if existing.Name != "Acme Holdings" || existing.MaxUsers != 25 {
		t.Fatalf("non-empty patch fields must win: %+v", existing)
	}
	if existing.Region != "EU" {
		t.Fatal("empty patch fields must not clear existing values")
	}
}
