package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func failingTool(name string, err error) Tool {
	tool := echoTool(name)
	tool.Handler = func(ctx context.Context, arguments json.RawMessage) (string, error) {
		return "", err
	}
	return tool
}

func panickingTool(name string) Tool {
	tool := echoTool(name)
	tool.Handler = func(ctx context.Context, arguments json.RawMessage) (string, error) {
		var m map[string]int
		m["boom"] = 1
		return "unreachable", nil
	}
	return tool
}

func TestCallTool(t *testing.T) {
	baseServer := newTestBaseServer(t,
		echoTool("echo"),
		failingTool("broken", errors.New("Calculation error: invalid syntax")),
		panickingTool("panicky"),
	)

	tests := []struct {
		name        string
		params      CallToolParams
		wantText    string
		wantCode    int
		wantMessage string
	}{
		{
			name:     "known tool",
			params:   CallToolParams{Name: "echo", Arguments: json.RawMessage(`{"text":"abc"}`)},
			wantText: `echo:{"text":"abc"}`,
		},
		{
			name:     "missing arguments default to empty object",
			params:   CallToolParams{Name: "echo"},
			wantText: `echo:{}`,
		},
		{
			name:     "non-object arguments default to empty object",
			params:   CallToolParams{Name: "echo", Arguments: json.RawMessage(`"oops"`)},
			wantText: `echo:{}`,
		},
		{
			name:        "unknown tool",
			params:      CallToolParams{Name: "nope"},
			wantCode:    ErrorCodeMethodNotFound,
			wantMessage: "Unknown tool: nope",
		},
		{
			name:        "tool error",
			params:      CallToolParams{Name: "broken"},
			wantCode:    ErrorCodeToolExecution,
			wantMessage: "Calculation error: invalid syntax",
		},
		{
			name:        "tool panic",
			params:      CallToolParams{Name: "panicky"},
			wantCode:    ErrorCodeToolExecution,
			wantMessage: "tool panicky panicked: assignment to entry in nil map",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, rpcErr := baseServer.CallTool(context.Background(), tt.params)

			if tt.wantCode != 0 {
				require.NotNil(t, rpcErr)
				assert.Equal(t, tt.wantCode, rpcErr.Code)
				assert.Equal(t, tt.wantMessage, rpcErr.Message)
				assert.Empty(t, result.Content)
				return
			}

			require.Nil(t, rpcErr)
			require.Len(t, result.Content, 1)
			assert.Equal(t, "text", result.Content[0].Type)
			assert.Equal(t, tt.wantText, result.Content[0].Text)
		})
	}
}

func TestHandleRequest_ToolsCall(t *testing.T) {
	baseServer := newTestBaseServer(t, echoTool("echo"), failingTool("broken", errors.New("bad input")))

	tests := []struct {
		name        string
		line        string
		wantText    string
		wantCode    int
		wantMessage string
	}{
		{
			name:     "success",
			line:     `{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"echo","arguments":{"text":"abc"}}}`,
			wantText: `echo:{"text":"abc"}`,
		},
		{
			name:     "null arguments",
			line:     `{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"echo","arguments":null}}`,
			wantText: `echo:{}`,
		},
		{
			name:     "string arguments become empty object",
			line:     `{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"echo","arguments":"oops"}}`,
			wantText: `echo:{}`,
		},
		{
			name:     "array arguments become empty object",
			line:     `{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"echo","arguments":[1,2]}}`,
			wantText: `echo:{}`,
		},
		{
			name:     "huge number in arguments reaches the tool verbatim",
			line:     `{"jsonrpc":"2.0","id":7,"method":"tools/call","params":{"name":"echo","arguments":{"text":"hi","n":1e999}}}`,
			wantText: `echo:{"text":"hi","n":1e999}`,
		},
		{
			name:        "unknown tool",
			line:        `{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"nope"}}`,
			wantCode:    ErrorCodeMethodNotFound,
			wantMessage: "Unknown tool: nope",
		},
		{
			name:        "missing params",
			line:        `{"jsonrpc":"2.0","id":3,"method":"tools/call"}`,
			wantCode:    ErrorCodeMethodNotFound,
			wantMessage: "Unknown tool: <missing>",
		},
		{
			name:        "non-string name",
			line:        `{"jsonrpc":"2.0","id":4,"method":"tools/call","params":{"name":["echo"]}}`,
			wantCode:    ErrorCodeMethodNotFound,
			wantMessage: `Unknown tool: ["echo"]`,
		},
		{
			name:        "execution failure",
			line:        `{"jsonrpc":"2.0","id":5,"method":"tools/call","params":{"name":"broken","arguments":{}}}`,
			wantCode:    ErrorCodeToolExecution,
			wantMessage: "bad input",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := mustDecode(t, tt.line)
			resp := baseServer.HandleRequest(context.Background(), req)
			assert.Equal(t, string(req.ID), string(resp.ID))

			wire := roundTrip(t, resp)

			if tt.wantCode != 0 {
				assert.NotContains(t, wire, "result")
				rpcErr := wire["error"].(map[string]interface{})
				assert.Equal(t, float64(tt.wantCode), rpcErr["code"])
				assert.Equal(t, tt.wantMessage, rpcErr["message"])
				return
			}

			assert.NotContains(t, wire, "error")
			result := wire["result"].(map[string]interface{})
			assert.Equal(t, []interface{}{
				map[string]interface{}{"type": "text", "text": tt.wantText},
			}, result["content"])
		})
	}
}
