// Package n8n is the single point of outbound communication with the
// remote n8n instance's REST API.
package n8n

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// apiPath is the versioned path segment every public API endpoint lives under.
const apiPath = "/api/v1"

// Error is the uniform error for transport and remote-service failures.
// Callers never see raw transport error shapes; the message carries the
// remote service's own message field when one was reported.
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return "N8N API Error: " + e.Message
}

// Client issues HTTP requests against one n8n instance. Its base URL and
// header set are fixed at construction; the client itself is stateless.
type Client struct {
	baseURL string
	apiKey  string
	httpc   *http.Client
}

// NewClient builds a client for the given host. A single trailing slash
// is stripped and the versioned API path is appended unless the host
// already ends with it.
func NewClient(host, apiKey string) *Client {
	base := strings.TrimSuffix(host, "/")
	if !strings.HasSuffix(base, apiPath) {
		base += apiPath
	}
	return &Client{
		baseURL: base,
		apiKey:  apiKey,
		httpc:   http.DefaultClient,
	}
}

// BaseURL returns the normalized base URL requests are issued against.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Request issues exactly one HTTP call and returns the response body as
// received. No retries. Any transport failure or non-2xx status is
// converted into *Error here and nowhere else.
func (c *Client) Request(ctx context.Context, method, endpoint string, body interface{}) (json.RawMessage, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, &Error{Message: err.Error()}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return nil, &Error{Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-N8N-API-KEY", c.apiKey)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, &Error{Message: err.Error()}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Message: err.Error()}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &Error{Message: remoteMessage(data, resp.StatusCode)}
	}

	return data, nil
}

// remoteMessage prefers the service's reported message field over the
// bare status code.
func remoteMessage(body []byte, status int) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return fmt.Sprintf("request failed with status code %d", status)
}

// ListWorkflows returns all workflows.
func (c *Client) ListWorkflows(ctx context.Context) (json.RawMessage, error) {
	return c.Request(ctx, http.MethodGet, "/workflows", nil)
}

// GetWorkflow returns a single workflow by ID.
func (c *Client) GetWorkflow(ctx context.Context, id string) (json.RawMessage, error) {
	return c.Request(ctx, http.MethodGet, "/workflows/"+id, nil)
}

// CreateWorkflow creates a workflow. The payload is forwarded as-is,
// unknown fields included.
func (c *Client) CreateWorkflow(ctx context.Context, workflow map[string]interface{}) (json.RawMessage, error) {
	return c.Request(ctx, http.MethodPost, "/workflows", workflow)
}

// UpdateWorkflow replaces an existing workflow.
func (c *Client) UpdateWorkflow(ctx context.Context, id string, workflow map[string]interface{}) (json.RawMessage, error) {
	return c.Request(ctx, http.MethodPut, "/workflows/"+id, workflow)
}

// DeleteWorkflow deletes a workflow.
func (c *Client) DeleteWorkflow(ctx context.Context, id string) (json.RawMessage, error) {
	return c.Request(ctx, http.MethodDelete, "/workflows/"+id, nil)
}

// ActivateWorkflow turns a workflow's active flag on.
func (c *Client) ActivateWorkflow(ctx context.Context, id string) (json.RawMessage, error) {
	return c.Request(ctx, http.MethodPost, "/workflows/"+id+"/activate", nil)
}

// DeactivateWorkflow turns a workflow's active flag off.
func (c *Client) DeactivateWorkflow(ctx context.Context, id string) (json.RawMessage, error) {
	return c.Request(ctx, http.MethodPost, "/workflows/"+id+"/deactivate", nil)
}

// ExecuteWorkflow triggers a run of a workflow, optionally with input data.
func (c *Client) ExecuteWorkflow(ctx context.Context, id string, data map[string]interface{}) (json.RawMessage, error) {
	var body interface{}
	if data != nil {
		body = data
	}
	return c.Request(ctx, http.MethodPost, "/workflows/"+id+"/execute", body)
}

// GetExecutions lists execution records, filtered by workflow when
// workflowID is non-empty. Returns a single page exactly as the remote
// service sends it.
func (c *Client) GetExecutions(ctx context.Context, workflowID string) (json.RawMessage, error) {
	endpoint := "/executions"
	if workflowID != "" {
		endpoint += "?workflowId=" + url.QueryEscape(workflowID)
	}
	return c.Request(ctx, http.MethodGet, endpoint, nil)
}
