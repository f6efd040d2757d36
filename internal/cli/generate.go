package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/loomworks/loom/internal/config"
	"github.com/loomworks/loom/internal/generator"
	"github.com/loomworks/loom/internal/naming"
)

func generateCmd() *Command {
	return &Command{
		Name:    "generate",
		Aliases: []string{"g"},
		Summary: "Generate project components",
		Description: "Generate a component inside an existing project. The command\n" +
			"locates the project root by walking up from the current directory\n" +
			"until it finds " + config.File + ".",
		Subcommands: []*Command{
			componentCmd(generator.KindAgent, "agent", "Generate an agent"),
			componentCmd(generator.KindWorkflow, "workflow", "Generate a workflow"),
			componentCmd(generator.KindFunction, "function", "Generate a function"),
			pipelineCmd(),
			llmCmd(),
		},
	}
}

// requireProject resolves the enclosing project root and builds a
// generator for it.
func requireProject(verbose, quiet bool) (*generator.Generator, string, error) {
	_, root, err := config.LoadFromCwd()
	if err != nil {
		return nil, "", err
	}
	gen, err := generator.New(newLog(verbose, quiet))
	if err != nil {
		return nil, "", err
	}
	return gen, root, nil
}

func componentCmd(kind generator.ComponentKind, name, summary string) *Command {
	var (
		noTests bool
		force   bool
		dryRun  bool
		verbose bool
		quiet   bool
	)

	return &Command{
		Name:    name,
		Summary: summary,
		Usage:   "loom generate " + name + " <Name> [flags]",
		Examples: []Example{
			{Command: fmt.Sprintf("loom generate %s Sync%s", name, naming.Pascal(name))},
		},
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
			fs.BoolVar(&noTests, "no-tests", false, "skip the test file")
			fs.BoolVarP(&force, "force", "f", false, "overwrite existing files")
			fs.BoolVar(&dryRun, "dry-run", false, "print what would be created without writing")
			logFlags(fs, &verbose, &quiet)
			return fs
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("expected exactly one %s name, got %d arguments", name, len(args))
			}
			gen, root, err := requireProject(verbose, quiet)
			if err != nil {
				return err
			}
			res, err := gen.Component(generator.ComponentOptions{
				Options: generator.Options{Root: root, Force: force, DryRun: dryRun},
				Kind:    kind,
				Name:    args[0],
				NoTests: noTests,
			})
			if err != nil {
				return err
			}
			printResult(res, "")
			return nil
		},
	}
}

func pipelineCmd() *Command {
	var (
		expression string
		strategy   string
		noTests    bool
		force      bool
		dryRun     bool
		verbose    bool
		quiet      bool
	)

	return &Command{
		Name:    "pipeline",
		Summary: "Generate a pipeline from an operator expression",
		Description: "Generate a pipeline workflow. With --expression the orchestration\n" +
			"body is compiled from the operator DSL; without it a stub pipeline\n" +
			"is generated.\n\nOperators:\n" +
			"  A -> B    run A, then B\n" +
			"  A ->? B   run B only if A produced a result\n" +
			"  A || B    run A and B concurrently\n" +
			"Parentheses group; '->?' binds tighter than '->', which binds\n" +
			"tighter than '||'.",
		Usage: "loom generate pipeline <Name> [flags]",
		Examples: []Example{
			{Command: `loom generate pipeline OrderFlow -e "Fetch -> Validate -> Store"`},
			{Command: `loom generate pipeline Enrich -e "Load -> (Geo || Tags) ->? Publish"`},
		},
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("pipeline", pflag.ContinueOnError)
			fs.StringVarP(&expression, "expression", "e", "", "operator expression to compile")
			fs.StringVarP(&strategy, "strategy", "s", "", "error strategy: halt, continue, or retry (default halt)")
			fs.BoolVar(&noTests, "no-tests", false, "skip the test file")
			fs.BoolVarP(&force, "force", "f", false, "overwrite existing files")
			fs.BoolVar(&dryRun, "dry-run", false, "print what would be created without writing")
			logFlags(fs, &verbose, &quiet)
			return fs
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("expected exactly one pipeline name, got %d arguments", len(args))
			}
			gen, root, err := requireProject(verbose, quiet)
			if err != nil {
				return err
			}
			res, err := gen.Pipeline(generator.PipelineOptions{
				Options:    generator.Options{Root: root, Force: force, DryRun: dryRun},
				Name:       args[0],
				Expression: expression,
				Strategy:   strategy,
				NoTests:    noTests,
			})
			if err != nil {
				return err
			}
			printResult(res, "")
			return nil
		},
	}
}

func llmCmd() *Command {
	var (
		providers  string
		withPrompt bool
		noTests    bool
		force      bool
		dryRun     bool
		verbose    bool
		quiet      bool
	)

	return &Command{
		Name:    "llm",
		Summary: "Generate an LLM integration",
		Description: "Generate an LLM client with provider backends, a stdio tool\n" +
			"server, and optionally a prompt file. Also enables the [mcp]\n" +
			"section in " + config.File + ".",
		Usage: "loom generate llm <Name> [flags]",
		Examples: []Example{
			{Command: "loom generate llm Summarizer"},
			{Command: "loom generate llm Classifier --providers openai,anthropic --with-prompt"},
		},
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("llm", pflag.ContinueOnError)
			fs.StringVarP(&providers, "providers", "p", "", "comma-separated providers: gemini, openai, anthropic (default all)")
			fs.BoolVar(&withPrompt, "with-prompt", false, "also scaffold a prompt file under prompts/")
			fs.BoolVar(&noTests, "no-tests", false, "skip the test file")
			fs.BoolVarP(&force, "force", "f", false, "overwrite existing files")
			fs.BoolVar(&dryRun, "dry-run", false, "print what would be created without writing")
			logFlags(fs, &verbose, &quiet)
			return fs
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("expected exactly one integration name, got %d arguments", len(args))
			}
			gen, root, err := requireProject(verbose, quiet)
			if err != nil {
				return err
			}
			res, err := gen.LLM(generator.LLMOptions{
				Options:    generator.Options{Root: root, Force: force, DryRun: dryRun},
				Name:       args[0],
				Providers:  splitProviders(providers),
				WithPrompt: withPrompt,
				NoTests:    noTests,
			})
			if err != nil {
				return err
			}
			printResult(res, "")
			return nil
		},
	}
}

func splitProviders(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
