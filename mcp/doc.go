// Package mcp implements a line-delimited JSON-RPC 2.0 server for a small subset
// of the Model Context Protocol: initialize, ping, tools/list and tools/call.
//
// A StdIOServer reads one JSON object per line, routes it through BaseServer and
// writes exactly one response line back. Lines that are not valid JSON are logged
// and produce no output. Unknown methods and unknown tools are answered with
// code -32601 and failing tools with code -32000; neither stops the loop.
//
// StdIOClient is the matching client side, used to drive a server over a pipe.
//
// Example:
//
//	upper := mcp.Tool{
//		Name:        "upper",
//		Description: "Upper-case a given string",
//		InputSchema: json.RawMessage(`{"type":"object","properties":{"text":{"type":"string"}},"required":["text"]}`),
//		Handler: func(ctx context.Context, arguments json.RawMessage) (string, error) {
//			var input struct {
//				Text string `json:"text"`
//			}
//			if err := json.Unmarshal(arguments, &input); err != nil {
//				return "", err
//			}
//			return strings.ToUpper(input.Text), nil
//		},
//	}
//
//	registry, err := mcp.NewToolRegistry(upper)
//	if err != nil {
//		panic(err)
//	}
//
//	baseServer, err := mcp.NewBaseServer(
//		mcp.UseServerInfo("example", "1.0.0"),
//		mcp.UseTools(registry),
//	)
//	if err != nil {
//		panic(err)
//	}
//
//	server := mcp.NewStdIOServer(baseServer, os.Stdin, os.Stdout)
//	if err := server.Run(context.Background()); err != nil {
//		panic(err)
//	}
package mcp
