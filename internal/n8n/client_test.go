package n8n

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"n8n-mcp-server/pkg/models"
)

func TestNewClientNormalizesBaseURL(t *testing.T) {
	assert.Equal(t, "http://h/api/v1", NewClient("http://h/", "key").BaseURL())
	assert.Equal(t, "http://h/api/v1", NewClient("http://h", "key").BaseURL())
	assert.Equal(t, "http://h/api/v1", NewClient("http://h/api/v1", "key").BaseURL())
	assert.Equal(t, "http://h/api/v1", NewClient("http://h/api/v1/", "key").BaseURL())
}

func TestRequestSendsConfiguredHeaders(t *testing.T) {
	var gotContentType, gotAPIKey string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		gotAPIKey = r.Header.Get("X-N8N-API-KEY")
		w.Write([]byte(`{}`))
	}))
	defer ts.Close()

	client := NewClient(ts.URL, "secret")
	_, err := client.Request(context.Background(), http.MethodGet, "/workflows", nil)

	assert.NoError(t, err)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "secret", gotAPIKey)
}

func TestGetWorkflowReturnsBodyVerbatim(t *testing.T) {
	body := `{"id":"1","name":"Test","nodes":[]}`
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/workflows/1", r.URL.Path)
		w.Write([]byte(body))
	}))
	defer ts.Close()

	client := NewClient(ts.URL, "")
	raw, err := client.GetWorkflow(context.Background(), "1")

	assert.NoError(t, err)
	assert.JSONEq(t, body, string(raw))
}

func TestCreateWorkflowForwardsUnknownFields(t *testing.T) {
	var received map[string]interface{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/workflows", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.Write([]byte(`{"id":"9"}`))
	}))
	defer ts.Close()

	client := NewClient(ts.URL, "")
	_, err := client.CreateWorkflow(context.Background(), map[string]interface{}{
		"name":       "Test",
		"nodes":      []interface{}{},
		"staticData": map[string]interface{}{"custom": true},
	})

	assert.NoError(t, err)
	assert.Equal(t, "Test", received["name"])
	// opaque fields survive the round trip untouched
	assert.Contains(t, received, "staticData")
}

func TestGetExecutionsQueryParameter(t *testing.T) {
	var gotPath, gotQuery string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"data":[{"id":"e1","workflowId":"7","status":"success"}]}`))
	}))
	defer ts.Close()

	client := NewClient(ts.URL, "")

	_, err := client.GetExecutions(context.Background(), "")
	assert.NoError(t, err)
	assert.Equal(t, "/api/v1/executions", gotPath)
	assert.Equal(t, "", gotQuery)

	raw, err := client.GetExecutions(context.Background(), "7")
	assert.NoError(t, err)
	assert.Equal(t, "/api/v1/executions", gotPath)
	assert.Equal(t, "workflowId=7", gotQuery)

	var page struct {
		Data []models.Execution `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(raw, &page))
	assert.Len(t, page.Data, 1)
	assert.Equal(t, "7", page.Data[0].WorkflowID)
	assert.Equal(t, "success", page.Data[0].Status)
}

func TestErrorUsesRemoteMessage(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message":"boom"}`))
	}))
	defer ts.Close()

	client := NewClient(ts.URL, "")
	_, err := client.ListWorkflows(context.Background())

	assert.Error(t, err)
	assert.Equal(t, "N8N API Error: boom", err.Error())

	var apiErr *Error
	assert.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "boom", apiErr.Message)
}

func TestErrorFallsBackToStatusCode(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`not json`))
	}))
	defer ts.Close()

	client := NewClient(ts.URL, "")
	_, err := client.GetWorkflow(context.Background(), "missing")

	assert.Error(t, err)
	assert.Equal(t, "N8N API Error: request failed with status code 404", err.Error())
}

func TestTransportFailureIsNormalized(t *testing.T) {
	// closed server: the dial fails, the error shape stays uniform
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close()

	client := NewClient(ts.URL, "")
	_, err := client.ListWorkflows(context.Background())

	assert.Error(t, err)
	var apiErr *Error
	assert.ErrorAs(t, err, &apiErr)
	assert.Contains(t, err.Error(), "N8N API Error: ")
}
