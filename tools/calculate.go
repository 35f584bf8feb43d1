package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"go.starlark.net/starlark"

	"github.com/shaharia-lab/toolserver/mcp"
)

// DefaultMaxSteps bounds the work a single expression may do.
const DefaultMaxSteps uint64 = 100000

// CalculationError is returned for any expression that cannot be evaluated.
type CalculationError struct {
	Err error
}

func (e *CalculationError) Error() string {
	return fmt.Sprintf("Calculation error: %v", e.Err)
}

func (e *CalculationError) Unwrap() error {
	return e.Err
}

// Calculator evaluates arithmetic expressions in a sandboxed Starlark thread
// with no predeclared names.
type Calculator struct {
	MaxSteps uint64
}

// Tool returns the calculate descriptor bound to c.
func (c Calculator) Tool() mcp.Tool {
	return mcp.Tool{
		Name:        "calculate",
		Description: "Perform basic mathematical calculations",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"expression": {
					"type": "string",
					"description": "Mathematical expression to evaluate (e.g., '2 + 2')"
				}
			},
			"required": ["expression"]
		}`),
		Handler: c.Call,
	}
}

// Call evaluates the "expression" argument.
func (c Calculator) Call(ctx context.Context, arguments json.RawMessage) (string, error) {
	var input struct {
		Expression string `json:"expression"`
	}
	if err := json.Unmarshal(arguments, &input); err != nil {
		return "", &CalculationError{Err: err}
	}

	value, err := c.Evaluate(ctx, input.Expression)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("Result: %s = %s", input.Expression, value), nil
}

// Evaluate returns the printed value of expression.
func (c Calculator) Evaluate(ctx context.Context, expression string) (string, error) {
	maxSteps := c.MaxSteps
	if maxSteps == 0 {
		maxSteps = DefaultMaxSteps
	}

	thread := &starlark.Thread{Name: "calculate"}
	thread.SetMaxExecutionSteps(maxSteps)

	stop := context.AfterFunc(ctx, func() {
		thread.Cancel(ctx.Err().Error())
	})
	defer stop()

	value, err := starlark.Eval(thread, "expression", expression, nil)
	if err != nil {
		return "", &CalculationError{Err: err}
	}

	if s, ok := value.(starlark.String); ok {
		return string(s), nil
	}
	return value.String(), nil
}
