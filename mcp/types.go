package mcp

import "encoding/json"

// ProtocolVersion is the MCP revision announced during initialize.
const ProtocolVersion = "2024-11-05"

// ServerInfo identifies the server to clients during initialize.
type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// CapabilitiesTools is empty: tools are supported with no extra flags.
type CapabilitiesTools struct{}

// Capabilities lists the features announced by the server.
type Capabilities struct {
	Tools CapabilitiesTools `json:"tools"`
}

// InitializeResult is the result of the initialize method.
type InitializeResult struct {
	ProtocolVersion string       `json:"protocolVersion"`
	Capabilities    Capabilities `json:"capabilities"`
	ServerInfo      ServerInfo   `json:"serverInfo"`
}

// ListToolsResult is the result of tools/list.
type ListToolsResult struct {
	Tools []Tool `json:"tools"`
}

// CallToolParams are the params of tools/call.
type CallToolParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
}

// ToolResultContent is one content item of a tool result.
type ToolResultContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// CallToolResult is the result of a successful tools/call.
type CallToolResult struct {
	Content []ToolResultContent `json:"content"`
}

// TextResult wraps tool output into the single text item envelope.
func TextResult(text string) CallToolResult {
	return CallToolResult{
		Content: []ToolResultContent{{Type: "text", Text: text}},
	}
}
