// Package mcp exposes the n8n workflow tools over the Model Context
// Protocol: a static nine-tool catalog and the dispatch boundary that
// routes tool calls to the API client.
package mcp

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"n8n-mcp-server/internal/n8n"
)

type Server struct {
	mcpServer *server.MCPServer
	client    *n8n.Client
	defs      []toolDef
	index     map[string]int
}

// NewServer builds the MCP server and registers the tool catalog. Tools
// are registered once here and live for the process lifetime.
func NewServer(client *n8n.Client) *Server {
	s := &Server{
		mcpServer: server.NewMCPServer(
			"n8n Workflow Manager",
			"1.0.0",
			server.WithToolCapabilities(true),
		),
		client: client,
	}

	s.defs = s.toolDefs()
	s.index = make(map[string]int, len(s.defs))
	for i, def := range s.defs {
		s.index[def.tool.Name] = i
		name := def.tool.Name
		s.mcpServer.AddTool(def.tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args, _ := request.Params.Arguments.(map[string]interface{})
			return s.CallTool(ctx, name, args)
		})
	}

	return s
}

func (s *Server) GetMCPServer() *server.MCPServer {
	return s.mcpServer
}

// Tools returns the static catalog in registration order.
func (s *Server) Tools() []mcp.Tool {
	tools := make([]mcp.Tool, len(s.defs))
	for i, def := range s.defs {
		tools[i] = def.tool
	}
	return tools
}

// CallTool is the dispatch boundary. Every failure, an unknown tool name
// included, comes back as an error-flagged reply rather than a
// protocol-level fault.
func (s *Server) CallTool(ctx context.Context, name string, args map[string]interface{}) (*mcp.CallToolResult, error) {
	i, ok := s.index[name]
	if !ok {
		return errorResult(fmt.Errorf("Unknown tool: %s", name)), nil
	}
	if args == nil {
		args = map[string]interface{}{}
	}
	return s.defs[i].handler(ctx, args)
}

// MountHTTPHandlers wires the MCP server's SSE endpoints into mux under
// the /mcp base path.
func MountHTTPHandlers(mux *http.ServeMux, mcpServer *server.MCPServer) {
	sseServer := server.NewSSEServer(mcpServer, server.WithStaticBasePath("/mcp"))

	mux.HandleFunc("/mcp", func(w http.ResponseWriter, r *http.Request) {
		// Direct POST for tool calls
		if r.Method == http.MethodPost {
			sseServer.ServeHTTP(w, r)
			return
		}
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	})

	mux.HandleFunc("/mcp/sse", sseServer.ServeHTTP)
	mux.HandleFunc("/mcp/message", sseServer.ServeHTTP)
}
