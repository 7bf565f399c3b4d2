package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"n8n-mcp-server/pkg/models"
)

// errorResult converts any failure into the error-flagged reply shape.
func errorResult(err error) *mcp.CallToolResult {
	return mcp.NewToolResultError(fmt.Sprintf("Error: %s", err))
}

// prettyJSON re-indents a raw response body for display. Bytes that do
// not parse as JSON are returned unchanged.
func prettyJSON(raw json.RawMessage) string {
	var value interface{}
	if err := json.Unmarshal(raw, &value); err != nil {
		return string(raw)
	}
	out, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return string(raw)
	}
	return string(out)
}

// validateWorkflow runs the structural check on a workflow payload
// before it is forwarded: name and nodes must be present. Only a decoded
// copy is inspected; the payload itself travels as-is, unknown fields
// included.
func validateWorkflow(payload map[string]interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	var workflow models.Workflow
	if err := json.Unmarshal(data, &workflow); err != nil {
		return err
	}
	if workflow.Name == "" {
		return errors.New("workflow name is required")
	}
	if len(workflow.Nodes) == 0 || string(workflow.Nodes) == "null" {
		return errors.New("workflow nodes are required")
	}
	return nil
}

func (s *Server) handleListWorkflows(ctx context.Context, args map[string]interface{}) (*mcp.CallToolResult, error) {
	result, err := s.client.ListWorkflows(ctx)
	if err != nil {
		return errorResult(err), nil
	}
	return mcp.NewToolResultText(prettyJSON(result)), nil
}

func (s *Server) handleGetWorkflow(ctx context.Context, args map[string]interface{}) (*mcp.CallToolResult, error) {
	id, ok := args["id"].(string)
	if !ok || id == "" {
		return mcp.NewToolResultError("Error: Missing required parameter: id"), nil
	}

	result, err := s.client.GetWorkflow(ctx, id)
	if err != nil {
		return errorResult(err), nil
	}
	return mcp.NewToolResultText(prettyJSON(result)), nil
}

func (s *Server) handleCreateWorkflow(ctx context.Context, args map[string]interface{}) (*mcp.CallToolResult, error) {
	workflow, ok := args["workflow"].(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("Error: Missing required parameter: workflow"), nil
	}
	if err := validateWorkflow(workflow); err != nil {
		return errorResult(err), nil
	}

	result, err := s.client.CreateWorkflow(ctx, workflow)
	if err != nil {
		return errorResult(err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Workflow created successfully:\n\n%s", prettyJSON(result))), nil
}

func (s *Server) handleUpdateWorkflow(ctx context.Context, args map[string]interface{}) (*mcp.CallToolResult, error) {
	id, ok := args["id"].(string)
	if !ok || id == "" {
		return mcp.NewToolResultError("Error: Missing required parameter: id"), nil
	}
	workflow, ok := args["workflow"].(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("Error: Missing required parameter: workflow"), nil
	}
	if err := validateWorkflow(workflow); err != nil {
		return errorResult(err), nil
	}

	result, err := s.client.UpdateWorkflow(ctx, id, workflow)
	if err != nil {
		return errorResult(err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Workflow %s updated successfully:\n\n%s", id, prettyJSON(result))), nil
}

func (s *Server) handleDeleteWorkflow(ctx context.Context, args map[string]interface{}) (*mcp.CallToolResult, error) {
	id, ok := args["id"].(string)
	if !ok || id == "" {
		return mcp.NewToolResultError("Error: Missing required parameter: id"), nil
	}

	if _, err := s.client.DeleteWorkflow(ctx, id); err != nil {
		return errorResult(err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Workflow %s deleted successfully", id)), nil
}

func (s *Server) handleActivateWorkflow(ctx context.Context, args map[string]interface{}) (*mcp.CallToolResult, error) {
	id, ok := args["id"].(string)
	if !ok || id == "" {
		return mcp.NewToolResultError("Error: Missing required parameter: id"), nil
	}

	result, err := s.client.ActivateWorkflow(ctx, id)
	if err != nil {
		return errorResult(err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Workflow %s activated successfully:\n\n%s", id, prettyJSON(result))), nil
}

func (s *Server) handleDeactivateWorkflow(ctx context.Context, args map[string]interface{}) (*mcp.CallToolResult, error) {
	id, ok := args["id"].(string)
	if !ok || id == "" {
		return mcp.NewToolResultError("Error: Missing required parameter: id"), nil
	}

	result, err := s.client.DeactivateWorkflow(ctx, id)
	if err != nil {
		return errorResult(err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Workflow %s deactivated successfully:\n\n%s", id, prettyJSON(result))), nil
}

func (s *Server) handleExecuteWorkflow(ctx context.Context, args map[string]interface{}) (*mcp.CallToolResult, error) {
	id, ok := args["id"].(string)
	if !ok || id == "" {
		return mcp.NewToolResultError("Error: Missing required parameter: id"), nil
	}
	data, _ := args["data"].(map[string]interface{}) // optional

	result, err := s.client.ExecuteWorkflow(ctx, id, data)
	if err != nil {
		return errorResult(err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Workflow %s executed successfully:\n\n%s", id, prettyJSON(result))), nil
}

func (s *Server) handleGetExecutions(ctx context.Context, args map[string]interface{}) (*mcp.CallToolResult, error) {
	workflowID, _ := args["workflowId"].(string) // optional

	result, err := s.client.GetExecutions(ctx, workflowID)
	if err != nil {
		return errorResult(err), nil
	}
	return mcp.NewToolResultText(prettyJSON(result)), nil
}
