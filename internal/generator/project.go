package generator

import (
	"fmt"
	"os/exec"
	"path/filepath"

	"github.com/loomworks/loom/internal/naming"
)

// ProjectOptions configure NewProject.
type ProjectOptions struct {
	Options
	Name        string // kebab-case project name, also the directory name
	Description string
	Module      string // generated module path; defaults to Name
	SkipGit     bool   // skip git init
}

// projectData feeds the project templates.
type projectData struct {
	Name        string
	Description string
	Module      string
	LoomModule  string
}

// loomModule is the module path generated projects depend on for the
// pipeline runtime.
const loomModule = "github.com/loomworks/loom"

// NewProject scaffolds a worker project under opts.Root/opts.Name.
func (g *Generator) NewProject(opts ProjectOptions) (*Result, error) {
	if err := naming.ValidateProjectName(opts.Name); err != nil {
		return nil, err
	}
	if opts.Module == "" {
		opts.Module = opts.Name
	}
	if opts.Description == "" {
		opts.Description = "A loom worker project"
	}

	data := projectData{
		Name:        opts.Name,
		Description: opts.Description,
		Module:      opts.Module,
		LoomModule:  loomModule,
	}

	projectDir := filepath.Join(opts.Root, opts.Name)
	plan := NewPlan(projectDir)

	files := map[string]string{
		"loom.toml":                "project_manifest.tmpl",
		"go.mod":                   "project_gomod.tmpl",
		"README.md":                "project_readme.tmpl",
		".gitignore":               "project_gitignore.tmpl",
		".github/workflows/ci.yml": "project_ci.tmpl",
		"cmd/" + opts.Name + "/main.go": "project_main.tmpl",
	}
	for path, tmpl := range files {
		content, err := g.renderer.Render(tmpl, data)
		if err != nil {
			return nil, err
		}
		plan.Add(path, content)
	}

	// Component package stubs so generators have a home immediately.
	for _, pkg := range []string{"agents", "workflows", "functions"} {
		content, err := g.renderer.Render("project_pkg_doc.tmpl", map[string]string{"Package": pkg})
		if err != nil {
			return nil, err
		}
		plan.Add(pkg+"/doc.go", content)
	}

	res, err := g.finish(plan, opts.Options)
	if err != nil {
		return nil, err
	}
	if !opts.DryRun && !opts.SkipGit {
		if err := gitInit(projectDir); err != nil {
			// The scaffold is complete; a missing git binary is not fatal.
			g.log.Warn().Err(err).Msg("git init skipped")
		}
	}
	return res, nil
}

func gitInit(dir string) error {
	git, err := exec.LookPath("git")
	if err != nil {
		return fmt.Errorf("git not found: %w", err)
	}
	cmd := exec.Command(git, "init", "--quiet")
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("git init: %s: %w", out, err)
	}
	return nil
}
