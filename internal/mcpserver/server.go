// Package mcpserver exposes the loom generators as MCP tools so
// editor agents can scaffold projects and components directly.
//
// This is the composition root: it builds the generator once and
// injects it into each tool. No generation logic lives here.
package mcpserver

import (
	"fmt"

	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/loomworks/loom/internal/generator"
)

// New creates the MCP server with every loom tool registered.
func New(version string, log zerolog.Logger) (*server.MCPServer, error) {
	gen, err := generator.New(log)
	if err != nil {
		return nil, fmt.Errorf("creating generator: %w", err)
	}

	s := server.NewMCPServer(
		"loom",
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(instructions),
	)

	newProject := &NewProjectTool{gen: gen}
	s.AddTool(newProject.Definition(), newProject.Handle)

	for _, kind := range []generator.ComponentKind{
		generator.KindAgent, generator.KindWorkflow, generator.KindFunction,
	} {
		tool := &GenerateComponentTool{gen: gen, kind: kind}
		s.AddTool(tool.Definition(), tool.Handle)
	}

	pipeline := &GeneratePipelineTool{gen: gen}
	s.AddTool(pipeline.Definition(), pipeline.Handle)

	llm := &GenerateLLMTool{gen: gen}
	s.AddTool(llm.Definition(), llm.Handle)

	return s, nil
}

// Serve runs the server over stdio until the client disconnects.
func Serve(s *server.MCPServer) error {
	return server.ServeStdio(s)
}

const instructions = `loom scaffolds Go worker projects and generates their components.

Start with loom_new_project, then generate components from inside the
project directory. Pipelines are compiled from operator expressions:
'->' sequences steps, '->?' runs the right side only when the left
produced a result, '||' runs both sides concurrently. Step names must
be unique within one expression.`
