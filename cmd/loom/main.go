// Loom: project scaffolding and code generation for Go workers.
//
// Usage:
//
//	loom new order-worker                              # Scaffold a project
//	loom generate pipeline Flow -e "A -> B || C"       # Compile a pipeline
//	loom doctor --fix                                  # Check project health
//	loom mcp                                           # Serve the generators over MCP
package main

import (
	"os"

	"github.com/loomworks/loom/internal/cli"
)

func main() {
	os.Exit(cli.Main(os.Args[1:]))
}
