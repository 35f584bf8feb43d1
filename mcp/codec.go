package mcp

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

var emptyParams = json.RawMessage("{}")

// DecodeError reports an input line that is not valid JSON.
type DecodeError struct {
	Line []byte
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid JSON input: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Decode parses one input line into a Request.
//
// Only JSON syntax is enforced, so numbers of any magnitude are accepted. Valid JSON
// that is not an object decodes to a request without a method, an absent id becomes
// null and absent or non-object params become {}.
func Decode(line []byte) (*Request, error) {
	line = bytes.TrimSpace(line)

	// RawMessage checks syntax only; numbers are never converted.
	var value json.RawMessage
	if err := json.Unmarshal(line, &value); err != nil {
		return nil, &DecodeError{Line: line, Err: err}
	}

	req := &Request{ID: nullID, Params: emptyParams}

	if !isObject(value) {
		return req, nil
	}

	var members map[string]json.RawMessage
	if err := json.Unmarshal(value, &members); err != nil {
		return nil, &DecodeError{Line: line, Err: err}
	}

	if raw, ok := members["jsonrpc"]; ok {
		_ = json.Unmarshal(raw, &req.JSONRPC)
	}

	if raw, ok := members["id"]; ok {
		req.ID = raw
	}

	if raw, ok := members["method"]; ok && !isNull(raw) {
		req.hasMethod = true
		if err := json.Unmarshal(raw, &req.Method); err != nil {
			req.rawMethod = raw
		}
	}

	if raw, ok := members["params"]; ok && isObject(raw) {
		req.Params = raw
	}

	return req, nil
}

// Encode writes resp as a single newline-terminated line with one Write call.
// HTML characters are not escaped so text content reaches the client verbatim.
func Encode(w io.Writer, resp Response) error {
	data, err := marshalLine(resp)
	if err != nil {
		marshalErr := fmt.Errorf("failed to marshal response: %w", err)

		data, err = marshalLine(NewErrorResponse(resp.ID, &Error{
			Code:    ErrorCodeInternal,
			Message: "Internal error: failed to marshal response",
		}))
		if err != nil {
			return fmt.Errorf("failed to marshal fallback response: %w", err)
		}
		if _, err = w.Write(data); err != nil {
			return fmt.Errorf("failed to write response: %w", err)
		}
		return marshalErr
	}

	if _, err = w.Write(data); err != nil {
		return fmt.Errorf("failed to write response: %w", err)
	}
	return nil
}

// marshalLine encodes v followed by a newline.
func marshalLine(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// isObject reports whether raw, already known to be valid JSON, is an object.
func isObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}
