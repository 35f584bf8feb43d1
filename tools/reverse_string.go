package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shaharia-lab/toolserver/mcp"
)

// ReverseString is the reverse_string descriptor.
var ReverseString = mcp.Tool{
	Name:        "reverse_string",
	Description: "Reverse a given string",
	InputSchema: json.RawMessage(`{
		"type": "object",
		"properties": {
			"text": {
				"type": "string",
				"description": "Text to reverse"
			}
		},
		"required": ["text"]
	}`),
	Handler: reverseString,
}

func reverseString(_ context.Context, arguments json.RawMessage) (string, error) {
	var input struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(arguments, &input); err != nil {
		return "", fmt.Errorf("invalid arguments for reverse_string: %w", err)
	}

	return fmt.Sprintf("Original: '%s' -> Reversed: '%s'", input.Text, reverseRunes(input.Text)), nil
}

func reverseRunes(s string) string {
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}
