package cli

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/loomworks/loom/internal/generator"
)

func newCmd() *Command {
	var (
		description string
		module      string
		skipGit     bool
		force       bool
		dryRun      bool
		verbose     bool
		quiet       bool
	)

	return &Command{
		Name:    "new",
		Summary: "Scaffold a new project",
		Description: "Create a project directory with a manifest, go.mod, CI workflow\n" +
			"and empty component packages. The project name must be kebab-case.",
		Usage: "loom new <name> [flags]",
		Examples: []Example{
			{Description: "Scaffold a project", Command: "loom new order-worker"},
			{Command: "loom new order-worker --module github.com/acme/order-worker"},
		},
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("new", pflag.ContinueOnError)
			fs.StringVarP(&description, "description", "d", "", "project description for the manifest and README")
			fs.StringVarP(&module, "module", "m", "", "Go module path (defaults to the project name)")
			fs.BoolVar(&skipGit, "skip-git", false, "do not run git init")
			fs.BoolVarP(&force, "force", "f", false, "overwrite existing files")
			fs.BoolVar(&dryRun, "dry-run", false, "print what would be created without writing")
			logFlags(fs, &verbose, &quiet)
			return fs
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("expected exactly one project name, got %d arguments", len(args))
			}
			log := newLog(verbose, quiet)

			gen, err := generator.New(log)
			if err != nil {
				return err
			}
			res, err := gen.NewProject(generator.ProjectOptions{
				Options:     generator.Options{Force: force, DryRun: dryRun},
				Name:        args[0],
				Description: description,
				Module:      module,
				SkipGit:     skipGit,
			})
			if err != nil {
				return err
			}
			printResult(res, args[0]+"/")
			if !dryRun {
				fmt.Printf("\nProject %s is ready. Next:\n", args[0])
				fmt.Printf("  cd %s\n  go mod tidy\n  loom generate agent MyAgent\n", args[0])
			}
			return nil
		},
	}
}

// printResult lists the files a generator created or planned, with an
// optional prefix so paths read relative to the caller's directory.
func printResult(res *generator.Result, prefix string) {
	verb := "created"
	if res.DryRun {
		verb = "would create"
	}
	for _, path := range res.Created {
		fmt.Printf("  %s %s%s\n", verb, prefix, path)
	}
}
