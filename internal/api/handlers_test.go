package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"n8n-mcp-server/internal/mcp"
	"n8n-mcp-server/internal/n8n"
)

func TestHealthEndpoint(t *testing.T) {
	srv := mcp.NewServer(n8n.NewClient("http://localhost:5678", ""))
	e := NewRouter(srv.GetMCPServer())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var status HealthStatus
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, "ok", status.Status)
	assert.Equal(t, "n8n-mcp-server", status.Service)
}

func TestMCPMountRejectsUnknownMethod(t *testing.T) {
	srv := mcp.NewServer(n8n.NewClient("http://localhost:5678", ""))
	e := NewRouter(srv.GetMCPServer())

	req := httptest.NewRequest(http.MethodDelete, "/mcp", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
