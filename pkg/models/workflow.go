package models

import (
	"encoding/json"
)

// Workflow mirrors the remote n8n workflow entity. Nodes, connections
// and settings are opaque to this server and pass through unmodified.
type Workflow struct {
	ID          string          `json:"id,omitempty"`
	Name        string          `json:"name"`
	Active      bool            `json:"active,omitempty"`
	Nodes       json.RawMessage `json:"nodes,omitempty"`
	Connections json.RawMessage `json:"connections,omitempty"`
	Settings    json.RawMessage `json:"settings,omitempty"`
}

// Execution is a single run record of a workflow. Executions are only
// ever read from the remote service, never constructed locally.
type Execution struct {
	ID         string          `json:"id,omitempty"`
	WorkflowID string          `json:"workflowId,omitempty"`
	Finished   bool            `json:"finished,omitempty"`
	Mode       string          `json:"mode,omitempty"`
	Status     string          `json:"status,omitempty"`
	StartedAt  string          `json:"startedAt,omitempty"`
	StoppedAt  string          `json:"stoppedAt,omitempty"`
	Data       json.RawMessage `json:"data,omitempty"`
}
