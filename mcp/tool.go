package mcp

import (
	"context"
	"encoding/json"
)

// ToolHandler runs a tool against its raw JSON arguments and returns the text output.
// A returned error is reported to the client as a tool execution failure.
type ToolHandler func(ctx context.Context, arguments json.RawMessage) (string, error)

// Tool describes one named operation and carries its implementation.
// Only the descriptor fields are sent on the wire.
type Tool struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema json.RawMessage `json:"inputSchema"`
	Handler     ToolHandler     `json:"-"`
}
