package mcp

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTool is returned when a tool definition cannot be registered.
	ErrInvalidTool = errors.New("invalid tool")
	// ErrDuplicateTool is returned when two tools share a name.
	ErrDuplicateTool = errors.New("duplicate tool")
	// ErrServerStopped is returned by Run once the server has already served.
	ErrServerStopped = errors.New("server stopped")
)

func methodNotFound(label string) *Error {
	return &Error{
		Code:    ErrorCodeMethodNotFound,
		Message: fmt.Sprintf("Method not found: %s", label),
	}
}

func unknownTool(label string) *Error {
	return &Error{
		Code:    ErrorCodeMethodNotFound,
		Message: fmt.Sprintf("Unknown tool: %s", label),
	}
}

func toolExecutionError(err error) *Error {
	return &Error{
		Code:    ErrorCodeToolExecution,
		Message: err.Error(),
	}
}
