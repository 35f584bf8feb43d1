package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/shaharia-lab/toolserver/observability"
)

func (s *BaseServer) handleToolsCall(ctx context.Context, request *Request) (interface{}, *Error) {
	params, label := parseCallToolParams(request.Params)

	if label != "" {
		s.logger.WithFields(map[string]interface{}{
			"id":   string(request.ID),
			"tool": label,
		}).Warn("Tool name missing or not a string")
		return nil, unknownTool(label)
	}

	result, rpcErr := s.CallTool(ctx, params)
	if rpcErr != nil {
		return nil, rpcErr
	}
	return result, nil
}

// parseCallToolParams extracts name and arguments leniently. Arguments that are
// not an object become {}. When the name is missing or not a string, label holds
// its rendering for the unknown-tool message.
func parseCallToolParams(raw json.RawMessage) (params CallToolParams, label string) {
	var members map[string]json.RawMessage
	_ = json.Unmarshal(raw, &members)

	params.Arguments = emptyParams
	if args, ok := members["arguments"]; ok && isObject(args) {
		params.Arguments = args
	}

	name, ok := members["name"]
	if !ok || isNull(name) {
		return params, "<missing>"
	}
	if err := json.Unmarshal(name, &params.Name); err != nil {
		return params, string(name)
	}
	return params, ""
}

// CallTool resolves params.Name in the registry and runs it. Tool failures,
// including panics, come back as a tool execution error and never escape.
func (s *BaseServer) CallTool(ctx context.Context, params CallToolParams) (result CallToolResult, rpcErr *Error) {
	ctx, span := observability.StartSpan(ctx, "BaseServer.CallTool")
	var spanErr error
	defer func() { observability.EndSpan(span, spanErr) }()

	span.SetAttributes(attribute.String("tool", params.Name))

	log := s.logger.WithFields(map[string]interface{}{
		"tool": params.Name,
	})

	tool, ok := s.tools.Find(params.Name)
	if !ok {
		log.Error("Tool not found")
		rpcErr = unknownTool(params.Name)
		spanErr = rpcErr
		return CallToolResult{}, rpcErr
	}

	if !isObject(params.Arguments) {
		params.Arguments = emptyParams
	}

	text, err := invoke(ctx, tool, params.Arguments)
	if err != nil {
		log.WithErr(err).Error("Tool handler failed with an error")
		spanErr = err
		return CallToolResult{}, toolExecutionError(err)
	}

	log.Debug("Tool handler executed successfully")

	return TextResult(text), nil
}

func invoke(ctx context.Context, tool Tool, arguments json.RawMessage) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("tool %s panicked: %v", tool.Name, r)
		}
	}()

	return tool.Handler(ctx, arguments)
}
