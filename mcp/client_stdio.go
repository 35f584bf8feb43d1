package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"sync"

	"github.com/shaharia-lab/toolserver/observability"
)

// ErrClientClosed is returned for calls made after the response stream ended.
var ErrClientClosed = errors.New("client is closed")

// StdIOClientConfig configures a StdIOClient.
type StdIOClientConfig struct {
	Logger observability.Logger
	Reader io.Reader
	Writer io.Writer
}

// StdIOClient talks to a line-delimited JSON-RPC tool server, typically one
// running as a child process or on the other end of a pipe.
type StdIOClient struct {
	logger observability.Logger
	writer io.Writer

	writeMu sync.Mutex

	mu               sync.Mutex
	responseHandlers map[string]chan clientResponse
	nextRequestID    int
	closed           chan struct{}
	closeErr         error
}

type clientResponse struct {
	ID     json.RawMessage `json:"id"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  *Error          `json:"error,omitempty"`
}

// NewStdIOClient creates a client and starts reading responses from config.Reader.
func NewStdIOClient(config StdIOClientConfig) *StdIOClient {
	if config.Logger == nil {
		config.Logger = observability.NewNullLogger()
	}

	c := &StdIOClient{
		logger:           config.Logger,
		writer:           config.Writer,
		responseHandlers: make(map[string]chan clientResponse),
		nextRequestID:    1,
		closed:           make(chan struct{}),
	}

	go c.processIncomingMessages(config.Reader)
	return c
}

func (c *StdIOClient) processIncomingMessages(r io.Reader) {
	reader := bufio.NewReader(r)
	for {
		line, err := reader.ReadBytes('\n')
		if len(line) > 0 {
			c.dispatch(line)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				err = ErrClientClosed
			}
			c.mu.Lock()
			c.closeErr = err
			c.mu.Unlock()
			close(c.closed)
			return
		}
	}
}

func (c *StdIOClient) dispatch(line []byte) {
	var response clientResponse
	if err := json.Unmarshal(line, &response); err != nil {
		c.logger.WithErr(err).Warn("Failed to parse response")
		return
	}

	key := string(response.ID)

	c.mu.Lock()
	ch, exists := c.responseHandlers[key]
	delete(c.responseHandlers, key)
	c.mu.Unlock()

	if !exists {
		c.logger.WithFields(map[string]interface{}{"id": key}).Warn("No handler found for response")
		return
	}
	ch <- response
}

// Call sends method with params and decodes the result into result. A JSON-RPC
// error from the server is returned as *Error.
func (c *StdIOClient) Call(ctx context.Context, method string, params, result interface{}) error {
	if params == nil {
		params = struct{}{}
	}
	rawParams, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("failed to marshal %s params: %w", method, err)
	}

	responseChan := make(chan clientResponse, 1)

	c.mu.Lock()
	id := strconv.Itoa(c.nextRequestID)
	c.nextRequestID++
	c.responseHandlers[id] = responseChan
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		delete(c.responseHandlers, id)
		c.mu.Unlock()
	}()

	request := Request{
		JSONRPC: JSONRPCVersion,
		ID:      json.RawMessage(id),
		Method:  method,
		Params:  rawParams,
	}
	if err := c.sendMessage(request); err != nil {
		return err
	}

	var response clientResponse
	select {
	case response = <-responseChan:
	case <-c.closed:
		// The last response may have arrived just before the stream ended.
		select {
		case response = <-responseChan:
		default:
			c.mu.Lock()
			defer c.mu.Unlock()
			return c.closeErr
		}
	case <-ctx.Done():
		return ctx.Err()
	}

	if response.Error != nil {
		return response.Error
	}
	if result == nil {
		return nil
	}
	if err := json.Unmarshal(response.Result, result); err != nil {
		return fmt.Errorf("failed to parse %s result: %w", method, err)
	}
	return nil
}

// Initialize performs the initialize handshake.
func (c *StdIOClient) Initialize(ctx context.Context) (InitializeResult, error) {
	var result InitializeResult
	err := c.Call(ctx, "initialize", map[string]interface{}{
		"protocolVersion": ProtocolVersion,
		"capabilities":    map[string]interface{}{},
	}, &result)
	return result, err
}

// Ping checks that the server is responsive.
func (c *StdIOClient) Ping(ctx context.Context) error {
	return c.Call(ctx, "ping", nil, nil)
}

// ListTools returns the tool descriptors in server order.
func (c *StdIOClient) ListTools(ctx context.Context) ([]Tool, error) {
	var result ListToolsResult
	if err := c.Call(ctx, "tools/list", nil, &result); err != nil {
		return nil, err
	}
	return result.Tools, nil
}

// CallTool invokes the named tool and returns its text output.
func (c *StdIOClient) CallTool(ctx context.Context, name string, arguments interface{}) (string, error) {
	params := map[string]interface{}{"name": name}
	if arguments != nil {
		params["arguments"] = arguments
	}

	var result CallToolResult
	if err := c.Call(ctx, "tools/call", params, &result); err != nil {
		return "", err
	}
	if len(result.Content) == 0 {
		return "", nil
	}
	return result.Content[0].Text, nil
}

func (c *StdIOClient) sendMessage(message interface{}) error {
	data, err := marshalLine(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if _, err = c.writer.Write(data); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	return nil
}
