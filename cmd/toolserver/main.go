// Command toolserver serves the built-in tools over line-delimited JSON-RPC on stdin/stdout.
package main

import (
	"context"
	"os"
)

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
