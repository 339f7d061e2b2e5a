package tenantsync

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchRowsBareArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Tenants", r.URL.Query().Get("sheet"))
		assert.NotEmpty(t, r.URL.Query().Get("_"), "cache buster missing")
		_ = json.NewEncoder(w).Encode([]Row{{"tenant_id": "T1", "tenant_name": "Acme"}})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	c.Sheet = "Tenants"

	rows, err := c.FetchRows(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "T1", rows[0]["tenant_id"])
}

func TestFetchRowsEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok": true, "data": [{"tenant_id": "T1"}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	rows, err := c.FetchRows(context.Background())
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestFetchRowsDataOnlyEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data": [{"tenant_id": "T1"}, {"tenant_id": "T2"}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	rows, err := c.FetchRows(context.Background())
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestFetchRowsEnvelopeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok": false, "error": "sheet is locked"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.FetchRows(context.Background())
	require.Error(t, err)

	var netErr *NetworkError
	assert.True(t, errors.As(err, &netErr))
	assert.Contains(t, err.Error(), "sheet is locked")
}

func TestFetchRowsNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// A non-2xx status is always an error regardless of body shape.
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`[{"tenant_id": "T1"}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.FetchRows(context.Background())
	var netErr *NetworkError
	require.True(t, errors.As(err, &netErr))
}

func TestFetchRowsTabForm(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Mirror", r.URL.Query().Get("tab"))
		assert.Empty(t, r.URL.Query().Get("sheet"))
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	c.Tab = "Mirror"
	_, err := c.FetchRows(context.Background())
	require.NoError(t, err)
}

func TestUpdateTenant(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "updateTenant", payload["action"])
		assert.Equal(t, "T1", payload["tenant_id"])
		_, _ = w.Write([]byte(`{"ok": true}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	err := c.UpdateTenant(context.Background(), "T1", Row{"tenant_name": "Acme"})
	require.NoError(t, err)
}

func TestUpdateTenantUnsupported(t *testing.T) {
	tests := []string{
		`{"ok": false, "error": "updateTenant is not enabled on this deployment"}`,
		`{"ok": false, "error": "Unsupported action"}`,
		`{"ok": false, "error": "not implemented"}`,
	}

	for _, body := range tests {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(body))
		}))

		c := NewClient(srv.URL)
		err := c.UpdateTenant(context.Background(), "T1", Row{})
		assert.ErrorIs(t, err, ErrUnsupported, "body %s", body)
		srv.Close()
	}
}

func TestUpdateTenantHardFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok": false, "error": "quota exceeded"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	err := c.UpdateTenant(context.Background(), "T1", Row{})
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrUnsupported))
}

func TestCreateTenantRPC(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "createTenant", q.Get("action"))
		assert.NotEmpty(t, q.Get("callback"))
		assert.Equal(t, "Acme", q.Get("tenant_name"))
		_, _ = w.Write([]byte(`{"ok": true, "message": "created"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	err := c.CreateTenant(context.Background(), Row{"tenant_name": "Acme"})
	require.NoError(t, err)
}
