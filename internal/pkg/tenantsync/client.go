package tenantsync

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/FlorianHaas/TenantDesk/internal/pkg/env"
)

// ExternalSource is the transport boundary to the remote tabular data
// service. Client is the HTTP implementation; tests substitute their own.
type ExternalSource interface {
	FetchRows(ctx context.Context) ([]Row, error)
	UpdateTenant(ctx context.Context, tenantID string, row Row) error
	CreateTenant(ctx context.Context, row Row) error
}

// envelope is the response wrapper some deployments of the remote script
// return. Bare arrays and {data: [...]} bodies exist in the wild too.
type envelope struct {
	Ok    *bool           `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

type writeResponse struct {
	Ok      bool   `json:"ok"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Client talks to the external sheet endpoint.
type Client struct {
	http *resty.Client

	// Sheet selection: Tab wins when set, otherwise Sheet plus the optional
	// filter pair. Both query forms exist in the wild.
	Sheet       string
	Tab         string
	FilterKey   string
	FilterValue string
}

// NewClient creates a sheet client for the given endpoint.
func NewClient(endpoint string) *Client {
	http := resty.New().
		SetBaseURL(endpoint).
		SetTimeout(20*time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500*time.Millisecond).
		SetHeader("Accept", "application/json")

	return &Client{http: http}
}

// NewClientFromEnv configures the client from SHEET_* environment variables.
func NewClientFromEnv() *Client {
	c := NewClient(env.GetEnv("SHEET_ENDPOINT", ""))
	c.Sheet = env.GetEnv("SHEET_NAME", "Tenants")
	c.Tab = env.GetEnv("SHEET_TAB", "")
	c.FilterKey = env.GetEnv("SHEET_FILTER_KEY", "")
	c.FilterValue = env.GetEnv("SHEET_FILTER_VALUE", "")
	return c
}

// FetchRows reads all rows from the configured sheet. The cache-busting
// parameter defeats intermediary caching on the hosted script endpoint.
func (c *Client) FetchRows(ctx context.Context) ([]Row, error) {
	req := c.http.R().SetContext(ctx)
	if c.Tab != "" {
		req.SetQueryParam("tab", c.Tab)
	} else {
		req.SetQueryParam("sheet", c.Sheet)
		if c.FilterKey != "" {
			req.SetQueryParam(c.FilterKey, c.FilterValue)
		}
	}
	req.SetQueryParam("_", strconv.FormatInt(time.Now().UnixNano(), 10))

	resp, err := req.Get("")
	if err != nil {
		return nil, netErr("fetch", err)
	}
	if resp.IsError() {
		return nil, netErr("fetch", fmt.Errorf("unexpected status %s", resp.Status()))
	}

	return parseRowsBody(resp.Body())
}

// parseRowsBody accepts the three body shapes the remote produces: a bare
// JSON array, {ok, data, error} and {data}.
func parseRowsBody(body []byte) ([]Row, error) {
	var rows []Row
	if err := json.Unmarshal(body, &rows); err == nil {
		return rows, nil
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, netErr("fetch", fmt.Errorf("unparsable response: %w", err))
	}
	if env.Ok != nil && !*env.Ok {
		message := env.Error
		if message == "" {
			message = "external source reported failure"
		}
		return nil, netErr("fetch", errors.New(message))
	}
	if len(env.Data) == 0 {
		return []Row{}, nil
	}
	if err := json.Unmarshal(env.Data, &rows); err != nil {
		return nil, netErr("fetch", fmt.Errorf("unparsable data field: %w", err))
	}
	return rows, nil
}

// UpdateTenant submits a partial external-shaped row for an existing tenant.
// A remote that declines the operation surfaces as ErrUnsupported.
func (c *Client) UpdateTenant(ctx context.Context, tenantID string, row Row) error {
	payload := map[string]any{
		"action":    "updateTenant",
		"tenant_id": tenantID,
		"row":       row,
	}

	var result writeResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(payload).
		SetResult(&result).
		Post("")
	if err != nil {
		return netErr("updateTenant", err)
	}
	if resp.IsError() {
		return netErr("updateTenant", fmt.Errorf("unexpected status %s", resp.Status()))
	}
	if !result.Ok {
		message := result.Error
		if message == "" {
			message = "external source rejected the update"
		}
		return classifyRemoteError(message)
	}
	return nil
}

// CreateTenant routes a tenant creation through the remote's query-parameter
// RPC channel. The original transport was a script-tag callback working
// around cross-origin restrictions; here it is a plain request/response call
// carrying the row fields in the query string.
func (c *Client) CreateTenant(ctx context.Context, row Row) error {
	req := c.http.R().SetContext(ctx)
	req.SetQueryParam("action", "createTenant")
	req.SetQueryParam("callback", storageCallbackName())
	for key, value := range row {
		req.SetQueryParam(key, fmt.Sprintf("%v", value))
	}

	resp, err := req.Get("")
	if err != nil {
		return netErr("createTenant", err)
	}
	if resp.IsError() {
		return netErr("createTenant", fmt.Errorf("unexpected status %s", resp.Status()))
	}

	var result writeResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return netErr("createTenant", fmt.Errorf("unparsable response: %w", err))
	}
	if !result.Ok {
		message := result.Error
		if message == "" {
			message = result.Message
		}
		if message == "" {
			message = "external source rejected the creation"
		}
		return classifyRemoteError(message)
	}
	return nil
}

// storageCallbackName keeps the remote script's callback parameter satisfied;
// the response body is read directly, so the name only has to be unique.
func storageCallbackName() string {
	return "cb_" + strconv.FormatInt(time.Now().UnixNano(), 36)
}
