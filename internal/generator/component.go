package generator

import (
	"fmt"

	"github.com/loomworks/loom/internal/naming"
)

// ComponentKind selects which single-file component to generate.
type ComponentKind string

const (
	KindAgent    ComponentKind = "agent"
	KindWorkflow ComponentKind = "workflow"
	KindFunction ComponentKind = "function"
)

// componentDirs maps each kind to its package directory in the
// generated project.
var componentDirs = map[ComponentKind]string{
	KindAgent:    "agents",
	KindWorkflow: "workflows",
	KindFunction: "functions",
}

// ComponentOptions configure Component.
type ComponentOptions struct {
	Options
	Kind    ComponentKind
	Name    string // PascalCase component name
	NoTests bool
}

type componentData struct {
	Name       string
	Package    string
	LoomModule string
}

// Component generates an agent, workflow, or function with its test.
func (g *Generator) Component(opts ComponentOptions) (*Result, error) {
	dir, ok := componentDirs[opts.Kind]
	if !ok {
		return nil, fmt.Errorf("unknown component kind %q", opts.Kind)
	}
	if err := naming.ValidateComponentName(opts.Name); err != nil {
		return nil, err
	}

	data := componentData{
		Name:       opts.Name,
		Package:    dir,
		LoomModule: loomModule,
	}

	plan := NewPlan(opts.Root)
	base := dir + "/" + naming.Snake(opts.Name)

	content, err := g.renderer.Render(string(opts.Kind)+".tmpl", data)
	if err != nil {
		return nil, err
	}
	plan.Add(base+".go", content)

	if !opts.NoTests {
		test, err := g.renderer.Render(string(opts.Kind)+"_test.tmpl", data)
		if err != nil {
			return nil, err
		}
		plan.Add(base+"_test.go", test)
	}

	return g.finish(plan, opts.Options)
}
