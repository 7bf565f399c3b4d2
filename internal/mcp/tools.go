package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// toolDef pairs one tool descriptor with its handler. The catalog and
// the dispatch index are both derived from this table, so adding or
// removing a tool cannot desynchronize them.
type toolDef struct {
	tool    mcp.Tool
	handler func(ctx context.Context, args map[string]interface{}) (*mcp.CallToolResult, error)
}

func (s *Server) toolDefs() []toolDef {
	return []toolDef{
		{
			tool: mcp.NewTool(
				"list_workflows",
				mcp.WithDescription("List all workflows from n8n"),
			),
			handler: s.handleListWorkflows,
		},
		{
			tool: mcp.NewTool(
				"get_workflow",
				mcp.WithDescription("Get a workflow by ID"),
				mcp.WithString("id", mcp.Required(), mcp.Description("The ID of the workflow")),
			),
			handler: s.handleGetWorkflow,
		},
		{
			tool: mcp.NewTool(
				"create_workflow",
				mcp.WithDescription("Create a new workflow in n8n"),
				mcp.WithObject("workflow", mcp.Required(), mcp.Description("The workflow object with name, nodes and optional connections and settings")),
			),
			handler: s.handleCreateWorkflow,
		},
		{
			tool: mcp.NewTool(
				"update_workflow",
				mcp.WithDescription("Update an existing workflow"),
				mcp.WithString("id", mcp.Required(), mcp.Description("The ID of the workflow")),
				mcp.WithObject("workflow", mcp.Required(), mcp.Description("The updated workflow object")),
			),
			handler: s.handleUpdateWorkflow,
		},
		{
			tool: mcp.NewTool(
				"delete_workflow",
				mcp.WithDescription("Delete a workflow"),
				mcp.WithString("id", mcp.Required(), mcp.Description("The ID of the workflow")),
			),
			handler: s.handleDeleteWorkflow,
		},
		{
			tool: mcp.NewTool(
				"activate_workflow",
				mcp.WithDescription("Activate a workflow"),
				mcp.WithString("id", mcp.Required(), mcp.Description("The ID of the workflow")),
			),
			handler: s.handleActivateWorkflow,
		},
		{
			tool: mcp.NewTool(
				"deactivate_workflow",
				mcp.WithDescription("Deactivate a workflow"),
				mcp.WithString("id", mcp.Required(), mcp.Description("The ID of the workflow")),
			),
			handler: s.handleDeactivateWorkflow,
		},
		{
			tool: mcp.NewTool(
				"execute_workflow",
				mcp.WithDescription("Execute a workflow"),
				mcp.WithString("id", mcp.Required(), mcp.Description("The ID of the workflow")),
				mcp.WithObject("data", mcp.Description("Optional input data for the execution")),
			),
			handler: s.handleExecuteWorkflow,
		},
		{
			tool: mcp.NewTool(
				"get_executions",
				mcp.WithDescription("List workflow executions"),
				mcp.WithString("workflowId", mcp.Description("Filter executions by workflow ID")),
			),
			handler: s.handleGetExecutions,
		},
	}
}
