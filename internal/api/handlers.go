// Package api is the HTTP wrapper around the MCP server: a health
// endpoint plus the SSE transport mount.
package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	"n8n-mcp-server/internal/mcp"
)

// HealthStatus represents the health check response
type HealthStatus struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
}

// NewRouter builds the echo application serving the MCP SSE transport
// and the health endpoint.
func NewRouter(mcpServer *mcpserver.MCPServer) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Recover())
	e.Use(otelecho.Middleware("n8n-mcp-server"))

	e.GET("/healthz", handleHealth)

	mcpHandlers := http.NewServeMux()
	mcp.MountHTTPHandlers(mcpHandlers, mcpServer)
	e.Any("/mcp", echo.WrapHandler(mcpHandlers))
	e.Any("/mcp/*", echo.WrapHandler(mcpHandlers))

	return e
}

// handleHealth returns basic health status (always 200 OK)
func handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthStatus{
		Status:    "ok",
		Timestamp: time.Now(),
		Service:   "n8n-mcp-server",
		Version:   "1.0.0",
	})
}
