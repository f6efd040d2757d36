package generator

import (
	"fmt"
	"sort"

	"github.com/loomworks/loom/internal/flow"
	"github.com/loomworks/loom/internal/naming"
	"github.com/loomworks/loom/runtime"
)

// PipelineOptions configure Pipeline.
type PipelineOptions struct {
	Options
	Name       string // PascalCase pipeline name
	Expression string // operator expression; empty generates a stub
	Strategy   string // halt, continue, or retry; empty means halt
	NoTests    bool
}

type pipelineData struct {
	Name       string
	Expression string
	Strategy   string
	Body       string
	Steps      []string
	LoomModule string
}

// Pipeline generates a pipeline whose Execute method is compiled from
// the operator expression. With no expression a stub Execute is
// generated instead and the compiler is bypassed entirely.
func (g *Generator) Pipeline(opts PipelineOptions) (*Result, error) {
	if err := naming.ValidateComponentName(opts.Name); err != nil {
		return nil, err
	}
	if opts.Strategy == "" {
		opts.Strategy = string(runtime.StrategyHalt)
	}
	strategy, err := runtime.ParseStrategy(opts.Strategy)
	if err != nil {
		return nil, err
	}

	data := pipelineData{
		Name:       opts.Name,
		Expression: opts.Expression,
		Strategy:   string(strategy),
		LoomModule: loomModule,
	}

	if opts.Expression != "" {
		compiled, err := flow.Compile(opts.Expression)
		if err != nil {
			return nil, fmt.Errorf("compiling pipeline expression %q: %w", opts.Expression, err)
		}
		data.Body = compiled.Body
		data.Steps = append(data.Steps, compiled.Steps...)
		sort.Strings(data.Steps)
	}

	plan := NewPlan(opts.Root)
	base := "workflows/" + naming.Snake(opts.Name) + "_pipeline"

	content, err := g.renderer.Render("pipeline.tmpl", data)
	if err != nil {
		return nil, err
	}
	plan.Add(base+".go", content)

	if !opts.NoTests {
		test, err := g.renderer.Render("pipeline_test.tmpl", data)
		if err != nil {
			return nil, err
		}
		plan.Add(base+"_test.go", test)
	}

	return g.finish(plan, opts.Options)
}
