// Package tools holds the built-in tools served by toolserver.
package tools

import "github.com/shaharia-lab/toolserver/mcp"

// Options configures the built-in tool set.
type Options struct {
	CalculatorMaxSteps uint64
}

// Builtin returns the built-in tools in the order they are listed to clients.
func Builtin(opts Options) []mcp.Tool {
	return []mcp.Tool{
		Calculator{MaxSteps: opts.CalculatorMaxSteps}.Tool(),
		ReverseString,
	}
}

// NewRegistry builds the registry of built-in tools.
func NewRegistry(opts Options) (*mcp.ToolRegistry, error) {
	return mcp.NewToolRegistry(Builtin(opts)...)
}
