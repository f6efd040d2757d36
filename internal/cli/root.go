package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/loomworks/loom/internal/logger"
	"github.com/loomworks/loom/internal/version"
)

// logFlags registers the logging flags shared by most commands.
// Binding to caller-owned values keeps them stable across flag set
// rebuilds.
func logFlags(fs *pflag.FlagSet, verbose, quiet *bool) {
	fs.BoolVarP(verbose, "verbose", "v", false, "enable debug logging")
	fs.BoolVarP(quiet, "quiet", "q", false, "only log warnings and errors")
}

func newLog(verbose, quiet bool) zerolog.Logger {
	return logger.ForCLI(verbose, quiet)
}

// Root builds the loom command tree.
func Root() *Command {
	return &Command{
		Name:    "loom",
		Summary: "Scaffold and grow Go worker projects",
		Description: "loom scaffolds Go worker projects and generates their components.\n" +
			"Pipelines are compiled from operator expressions: '->' sequences\n" +
			"steps, '->?' is conditional on the left result, '||' runs both\n" +
			"sides concurrently.",
		Subcommands: []*Command{
			newCmd(),
			generateCmd(),
			doctorCmd(),
			migrateCmd(),
			serverCmd(),
			mcpCmd(),
			updateCmd(),
			completionCmd(),
			versionCmd(),
		},
	}
}

// Main runs the CLI and returns the process exit code.
func Main(args []string) int {
	if err := Root().Execute(args); err != nil {
		fmt.Fprintf(os.Stderr, "loom: %v\n", err)
		return 1
	}
	return 0
}

func versionCmd() *Command {
	return &Command{
		Name:    "version",
		Summary: "Print the loom version",
		Run: func(args []string) error {
			fmt.Println(version.String())
			return nil
		},
	}
}
