package mcp

import (
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

var defaultInputSchema = json.RawMessage(`{"type":"object"}`)

// ToolRegistry is the ordered, read-only catalog of tools for one server.
type ToolRegistry struct {
	tools []Tool
	index map[string]int
}

// NewToolRegistry validates tools and returns a registry preserving their order.
func NewToolRegistry(tools ...Tool) (*ToolRegistry, error) {
	r := &ToolRegistry{
		tools: make([]Tool, 0, len(tools)),
		index: make(map[string]int, len(tools)),
	}

	for _, tool := range tools {
		if _, exists := r.index[tool.Name]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateTool, tool.Name)
		}

		if len(tool.InputSchema) == 0 {
			tool.InputSchema = defaultInputSchema
		}

		if err := validateTool(tool); err != nil {
			return nil, fmt.Errorf("%w %q: %v", ErrInvalidTool, tool.Name, err)
		}

		r.index[tool.Name] = len(r.tools)
		r.tools = append(r.tools, tool)
	}

	return r, nil
}

// List returns the tools in definition order. The slice is a copy.
func (r *ToolRegistry) List() []Tool {
	out := make([]Tool, len(r.tools))
	copy(out, r.tools)
	return out
}

// Find looks a tool up by exact, case-sensitive name.
func (r *ToolRegistry) Find(name string) (Tool, bool) {
	i, ok := r.index[name]
	if !ok {
		return Tool{}, false
	}
	return r.tools[i], true
}

// Len returns the number of registered tools.
func (r *ToolRegistry) Len() int {
	return len(r.tools)
}

// validateTool checks the descriptor only. The schema must compile, but it is
// never applied to call arguments.
func validateTool(tool Tool) error {
	if tool.Name == "" {
		return fmt.Errorf("tool name cannot be empty")
	}

	if tool.Description == "" {
		return fmt.Errorf("tool description cannot be empty")
	}

	if tool.Handler == nil {
		return fmt.Errorf("tool handler cannot be nil")
	}

	if _, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(tool.InputSchema)); err != nil {
		return fmt.Errorf("invalid input schema: %v", err)
	}

	return nil
}
