package generator

import (
	"github.com/rs/zerolog"
)

// Generator renders components into a project tree.
type Generator struct {
	renderer *Renderer
	log      zerolog.Logger
}

// New creates a Generator.
func New(log zerolog.Logger) (*Generator, error) {
	r, err := NewRenderer()
	if err != nil {
		return nil, err
	}
	return &Generator{renderer: r, log: log}, nil
}

// Options are shared by every generator.
type Options struct {
	Root   string // project root to write under
	Force  bool   // overwrite existing files
	DryRun bool   // plan only, write nothing
}

// Result reports what a generator produced (or would produce, for a
// dry run). Paths are relative to the project root.
type Result struct {
	Created []string
	DryRun  bool
}

// finish applies the overwrite guard and, unless dry-running, commits
// the plan.
func (g *Generator) finish(plan *Plan, opts Options) (*Result, error) {
	if err := plan.Check(opts.Force); err != nil {
		return nil, err
	}
	res := &Result{Created: plan.Paths(), DryRun: opts.DryRun}
	if opts.DryRun {
		return res, nil
	}
	if err := plan.Commit(); err != nil {
		return nil, err
	}
	for _, path := range res.Created {
		g.log.Debug().Str("path", path).Msg("wrote file")
	}
	return res, nil
}
