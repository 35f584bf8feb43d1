package mcp

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/shaharia-lab/toolserver/observability"
)

const (
	defaultServerName = "toolserver"
	serverVersion     = "1.0.0"
)

// ServerConfig holds all configuration for BaseServer
type ServerConfig struct {
	logger        observability.Logger
	serverName    string
	serverVersion string
	tools         *ToolRegistry
}

// ServerConfigOption is a function that modifies ServerConfig
type ServerConfigOption func(*ServerConfig)

// UseLogger sets a custom logger
func UseLogger(logger observability.Logger) ServerConfigOption {
	return func(c *ServerConfig) {
		c.logger = logger
	}
}

// UseServerInfo sets server name and version
func UseServerInfo(name, version string) ServerConfigOption {
	return func(c *ServerConfig) {
		c.serverName = name
		c.serverVersion = version
	}
}

// UseTools sets the tool registry
func UseTools(registry *ToolRegistry) ServerConfigOption {
	return func(c *ServerConfig) {
		c.tools = registry
	}
}

type methodHandler func(ctx context.Context, request *Request) (interface{}, *Error)

// BaseServer routes decoded requests to method handlers. It holds no per-request
// state and is never mutated after construction.
type BaseServer struct {
	logger     observability.Logger
	serverInfo ServerInfo
	tools      *ToolRegistry
	methods    map[string]methodHandler
}

// NewBaseServer creates a new BaseServer instance with the given options
func NewBaseServer(opts ...ServerConfigOption) (*BaseServer, error) {
	cfg := defaultConfig()

	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.logger == nil {
		cfg.logger = observability.NewNullLogger()
	}

	if cfg.tools == nil {
		registry, err := NewToolRegistry()
		if err != nil {
			return nil, err
		}
		cfg.tools = registry
	}

	s := &BaseServer{
		logger: cfg.logger,
		serverInfo: ServerInfo{
			Name:    cfg.serverName,
			Version: cfg.serverVersion,
		},
		tools: cfg.tools,
	}

	s.methods = map[string]methodHandler{
		"initialize": s.handleInitialize,
		"ping":       s.handlePing,
		"tools/list": s.handleToolsList,
		"tools/call": s.handleToolsCall,
	}

	return s, nil
}

func defaultConfig() *ServerConfig {
	return &ServerConfig{
		logger:        observability.NewNullLogger(),
		serverName:    defaultServerName,
		serverVersion: serverVersion,
	}
}

// ServerInfo returns the static name/version pair announced on initialize.
func (s *BaseServer) ServerInfo() ServerInfo {
	return s.serverInfo
}

// HandleRequest maps request to exactly one response.
func (s *BaseServer) HandleRequest(ctx context.Context, request *Request) Response {
	ctx, span := observability.StartSpan(ctx, "BaseServer.HandleRequest")
	var spanErr error
	defer func() { observability.EndSpan(span, spanErr) }()

	span.SetAttributes(attribute.String("method", request.MethodLabel()))

	log := s.logger.WithFields(map[string]interface{}{
		"method": request.MethodLabel(),
		"id":     string(request.ID),
	})
	log.Debug("Received request from client")

	handler, ok := s.methods[request.Method]
	if !request.hasMethod || request.rawMethod != nil || !ok {
		log.Warn("Method not found. Unhandled request from client")
		rpcErr := methodNotFound(request.MethodLabel())
		spanErr = rpcErr
		return NewErrorResponse(request.ID, rpcErr)
	}

	result, rpcErr := handler(ctx, request)
	if rpcErr != nil {
		spanErr = rpcErr
		return NewErrorResponse(request.ID, rpcErr)
	}

	return NewResponse(request.ID, result)
}

func (s *BaseServer) handleInitialize(_ context.Context, _ *Request) (interface{}, *Error) {
	return InitializeResult{
		ProtocolVersion: ProtocolVersion,
		Capabilities:    Capabilities{},
		ServerInfo:      s.serverInfo,
	}, nil
}

func (s *BaseServer) handlePing(_ context.Context, _ *Request) (interface{}, *Error) {
	return struct{}{}, nil
}

func (s *BaseServer) handleToolsList(ctx context.Context, _ *Request) (interface{}, *Error) {
	return ListToolsResult{Tools: s.ListTools(ctx)}, nil
}

// ListTools returns every registered tool in definition order.
func (s *BaseServer) ListTools(ctx context.Context) []Tool {
	_, span := observability.StartSpan(ctx, "BaseServer.ListTools")
	defer span.End()

	tools := s.tools.List()
	span.SetAttributes(attribute.Int("num_tools", len(tools)))

	return tools
}
