package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/loomworks/loom/internal/config"
	"github.com/loomworks/loom/internal/doctor"
)

func doctorCmd() *Command {
	var (
		check   string
		fix     bool
		asJSON  bool
		verbose bool
		quiet   bool
	)

	return &Command{
		Name:    "doctor",
		Summary: "Check project health",
		Description: "Run health checks against the enclosing project: manifest\n" +
			"validity, directory structure, Go syntax, and dependency\n" +
			"versions. Some failures can be repaired with --fix.",
		Usage: "loom doctor [flags]",
		Examples: []Example{
			{Command: "loom doctor"},
			{Description: "Repair a missing directory layout", Command: "loom doctor --check structure --fix"},
		},
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("doctor", pflag.ContinueOnError)
			fs.StringVarP(&check, "check", "c", "all", "run a single check: config, structure, syntax, or dependencies")
			fs.BoolVar(&fix, "fix", false, "apply automatic fixes where available")
			fs.BoolVar(&asJSON, "json", false, "emit the report as JSON")
			logFlags(fs, &verbose, &quiet)
			return fs
		},
		Run: func(args []string) error {
			if len(args) != 0 {
				return fmt.Errorf("doctor takes no arguments, got %q", strings.Join(args, " "))
			}
			cwd, err := os.Getwd()
			if err != nil {
				return err
			}
			root, err := config.FindProjectRoot(cwd)
			if err != nil {
				return err
			}

			report, err := doctor.Run(context.Background(), root, doctor.Options{Check: check, Fix: fix})
			if err != nil {
				return err
			}
			if asJSON {
				if err := report.WriteJSON(os.Stdout); err != nil {
					return err
				}
			} else {
				report.WriteText(os.Stdout)
			}
			if !report.OK {
				return fmt.Errorf("health checks failed")
			}
			return nil
		},
	}
}
