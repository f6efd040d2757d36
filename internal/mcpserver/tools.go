package mcpserver

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/loomworks/loom/internal/config"
	"github.com/loomworks/loom/internal/generator"
)

// projectRoot resolves the loom project containing the working
// directory. Generate tools refuse to run outside a project.
func projectRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting working directory: %w", err)
	}
	return config.FindProjectRoot(cwd)
}

func resultSummary(action string, res *generator.Result) *mcp.CallToolResult {
	return mcp.NewToolResultText(fmt.Sprintf("%s\n\nCreated:\n- %s",
		action, strings.Join(res.Created, "\n- ")))
}

// --- loom_new_project ---

// NewProjectTool handles the loom_new_project MCP tool.
type NewProjectTool struct {
	gen *generator.Generator
}

// Definition returns the MCP tool definition for registration.
func (t *NewProjectTool) Definition() mcp.Tool {
	return mcp.NewTool("loom_new_project",
		mcp.WithDescription(
			"Scaffold a new loom worker project: manifest, go.mod, CI workflow, "+
				"component packages, and a worker entry point.",
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Project name in kebab-case (e.g. order-worker)"),
		),
		mcp.WithString("description",
			mcp.Description("One-line project description"),
		),
	)
}

// Handle processes the loom_new_project tool call.
func (t *NewProjectTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := req.GetString("name", "")
	if name == "" {
		return mcp.NewToolResultError("'name' is required"), nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}

	res, err := t.gen.NewProject(generator.ProjectOptions{
		Options:     generator.Options{Root: cwd},
		Name:        name,
		Description: req.GetString("description", ""),
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return resultSummary(fmt.Sprintf("Project %s scaffolded under %s/.", name, name), res), nil
}

// --- loom_generate_agent / _workflow / _function ---

// GenerateComponentTool handles the single-file component tools.
type GenerateComponentTool struct {
	gen  *generator.Generator
	kind generator.ComponentKind
}

// Definition returns the MCP tool definition for registration.
func (t *GenerateComponentTool) Definition() mcp.Tool {
	return mcp.NewTool("loom_generate_"+string(t.kind),
		mcp.WithDescription(fmt.Sprintf(
			"Generate a %s with its test in the current loom project.", t.kind)),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Component name in PascalCase (e.g. OrderSync)"),
		),
		mcp.WithBoolean("force",
			mcp.Description("Overwrite existing files"),
		),
	)
}

// Handle processes a component generation call.
func (t *GenerateComponentTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := req.GetString("name", "")
	if name == "" {
		return mcp.NewToolResultError("'name' is required"), nil
	}
	root, err := projectRoot()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	res, err := t.gen.Component(generator.ComponentOptions{
		Options: generator.Options{Root: root, Force: req.GetBool("force", false)},
		Kind:    t.kind,
		Name:    name,
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return resultSummary(fmt.Sprintf("Generated %s %s.", t.kind, name), res), nil
}

// --- loom_generate_pipeline ---

// GeneratePipelineTool handles the loom_generate_pipeline MCP tool.
type GeneratePipelineTool struct {
	gen *generator.Generator
}

// Definition returns the MCP tool definition for registration.
func (t *GeneratePipelineTool) Definition() mcp.Tool {
	return mcp.NewTool("loom_generate_pipeline",
		mcp.WithDescription(
			"Generate a pipeline compiled from an operator expression. "+
				"'->' sequences steps, '->?' is conditional, '||' is parallel. "+
				"Without an expression a stub pipeline is generated.",
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Pipeline name in PascalCase (e.g. OrderFlow)"),
		),
		mcp.WithString("expression",
			mcp.Description("Operator expression (e.g. \"Fetch -> Enrich ->? Score || Audit\")"),
		),
		mcp.WithString("strategy",
			mcp.Description("Error strategy for the generated pipeline"),
			mcp.DefaultString("halt"),
			mcp.Enum("halt", "continue", "retry"),
		),
		mcp.WithBoolean("force",
			mcp.Description("Overwrite existing files"),
		),
	)
}

// Handle processes the loom_generate_pipeline tool call.
func (t *GeneratePipelineTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := req.GetString("name", "")
	if name == "" {
		return mcp.NewToolResultError("'name' is required"), nil
	}
	root, err := projectRoot()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	res, err := t.gen.Pipeline(generator.PipelineOptions{
		Options:    generator.Options{Root: root, Force: req.GetBool("force", false)},
		Name:       name,
		Expression: req.GetString("expression", ""),
		Strategy:   req.GetString("strategy", "halt"),
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return resultSummary(fmt.Sprintf("Generated pipeline %s.", name), res), nil
}

// --- loom_generate_llm ---

// GenerateLLMTool handles the loom_generate_llm MCP tool.
type GenerateLLMTool struct {
	gen *generator.Generator
}

// Definition returns the MCP tool definition for registration.
func (t *GenerateLLMTool) Definition() mcp.Tool {
	return mcp.NewTool("loom_generate_llm",
		mcp.WithDescription(
			"Generate an LLM integration: provider implementations, an MCP "+
				"tool server, and optionally a prompt scaffold.",
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Integration name in PascalCase (e.g. Summarizer)"),
		),
		mcp.WithString("providers",
			mcp.Description("Comma-separated providers: gemini, openai, anthropic. Default: all."),
		),
		mcp.WithBoolean("with_prompt",
			mcp.Description("Also scaffold a prompt file under prompts/"),
		),
		mcp.WithBoolean("force",
			mcp.Description("Overwrite existing files"),
		),
	)
}

// Handle processes the loom_generate_llm tool call.
func (t *GenerateLLMTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := req.GetString("name", "")
	if name == "" {
		return mcp.NewToolResultError("'name' is required"), nil
	}
	root, err := projectRoot()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var providers []string
	if raw := req.GetString("providers", ""); raw != "" {
		for _, p := range strings.Split(raw, ",") {
			providers = append(providers, strings.TrimSpace(p))
		}
	}

	res, err := t.gen.LLM(generator.LLMOptions{
		Options:    generator.Options{Root: root, Force: req.GetBool("force", false)},
		Name:       name,
		Providers:  providers,
		WithPrompt: req.GetBool("with_prompt", false),
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return resultSummary(fmt.Sprintf("Generated LLM integration %s.", name), res), nil
}
