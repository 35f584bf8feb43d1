package mcp

import (
	"encoding/json"
	"fmt"
)

// JSONRPCVersion is the only protocol version spoken on the wire.
const JSONRPCVersion = "2.0"

// JSON-RPC 2.0 error codes used by the server
const (
	ErrorCodeMethodNotFound = -32601
	ErrorCodeInternal       = -32603
	ErrorCodeToolExecution  = -32000
)

// nullID is sent back when a request carried no id.
var nullID = json.RawMessage("null")

// Request represents a JSON-RPC request message.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params"`

	// rawMethod holds the method member verbatim when it is present but not a string.
	rawMethod json.RawMessage
	hasMethod bool
}

// MethodLabel renders the method for error messages, including when it is missing or malformed.
func (r *Request) MethodLabel() string {
	switch {
	case !r.hasMethod:
		return "<missing>"
	case r.rawMethod != nil:
		return string(r.rawMethod)
	default:
		return r.Method
	}
}

// Response represents a JSON-RPC response message.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  interface{}     `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
}

// Error represents a JSON-RPC error object.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("jsonrpc error %d: %s", e.Code, e.Message)
}

// NewResponse creates a success response echoing id.
func NewResponse(id json.RawMessage, result interface{}) Response {
	return Response{
		JSONRPC: JSONRPCVersion,
		ID:      echoID(id),
		Result:  result,
	}
}

// NewErrorResponse creates a failure response echoing id.
func NewErrorResponse(id json.RawMessage, err *Error) Response {
	return Response{
		JSONRPC: JSONRPCVersion,
		ID:      echoID(id),
		Error:   err,
	}
}

func echoID(id json.RawMessage) json.RawMessage {
	if len(id) == 0 {
		return nullID
	}
	return id
}
