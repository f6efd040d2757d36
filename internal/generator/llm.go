package generator

import (
	"fmt"

	"github.com/loomworks/loom/internal/config"
	"github.com/loomworks/loom/internal/naming"
)

// knownProviders are the LLM backends the llm generator can emit
// implementations for.
var knownProviders = []string{"gemini", "openai", "anthropic"}

// LLMOptions configure LLM.
type LLMOptions struct {
	Options
	Name       string   // PascalCase integration name
	Providers  []string // subset of gemini, openai, anthropic; empty means all
	WithPrompt bool     // also scaffold a prompt file
	NoTests    bool
}

type llmData struct {
	Name       string
	Provider   string
	Providers  []string
	LoomModule string
}

// LLM generates an LLM integration: a provider interface, one
// implementation per selected provider, an MCP tool server exposing
// the integration, and optionally a prompt scaffold. The project
// manifest gets an [mcp] section if it does not have one yet.
func (g *Generator) LLM(opts LLMOptions) (*Result, error) {
	if err := naming.ValidateComponentName(opts.Name); err != nil {
		return nil, err
	}
	providers := opts.Providers
	if len(providers) == 0 {
		providers = knownProviders
	}
	for _, p := range providers {
		if !isKnownProvider(p) {
			return nil, fmt.Errorf("unknown LLM provider %q (want one of %v)", p, knownProviders)
		}
	}

	data := llmData{
		Name:       opts.Name,
		Providers:  providers,
		LoomModule: loomModule,
	}

	plan := NewPlan(opts.Root)
	base := "llm/" + naming.Snake(opts.Name)

	integration, err := g.renderer.Render("llm.tmpl", data)
	if err != nil {
		return nil, err
	}
	plan.Add(base+".go", integration)

	for _, provider := range providers {
		pd := data
		pd.Provider = provider
		content, err := g.renderer.Render("llm_provider.tmpl", pd)
		if err != nil {
			return nil, err
		}
		plan.Add("llm/provider_"+provider+".go", content)
	}

	tools, err := g.renderer.Render("llm_tools.tmpl", data)
	if err != nil {
		return nil, err
	}
	plan.Add(base+"_tools.go", tools)

	if opts.WithPrompt {
		prompt, err := g.renderer.Render("llm_prompt.tmpl", data)
		if err != nil {
			return nil, err
		}
		plan.Add("prompts/"+naming.Snake(opts.Name)+".md", prompt)
	}

	if !opts.NoTests {
		test, err := g.renderer.Render("llm_test.tmpl", data)
		if err != nil {
			return nil, err
		}
		plan.Add(base+"_test.go", test)
	}

	res, err := g.finish(plan, opts.Options)
	if err != nil {
		return nil, err
	}
	if !opts.DryRun {
		if err := config.AppendMCPSection(opts.Root); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func isKnownProvider(name string) bool {
	for _, p := range knownProviders {
		if p == name {
			return true
		}
	}
	return false
}
