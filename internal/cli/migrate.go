package cli

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/loomworks/loom/internal/config"
	"github.com/loomworks/loom/internal/migrate"
)

func migrateCmd() *Command {
	return &Command{
		Name:    "migrate",
		Summary: "Manage project migrations",
		Description: "Create and apply project migrations. Migrations are YAML files\n" +
			"under migrations/ describing filesystem changes; applied IDs are\n" +
			"tracked in the project ledger at .loom/loom.db.",
		Subcommands: []*Command{
			migrateMakeCmd(),
			migrateUpCmd(),
			migrateDownCmd(),
			migrateStatusCmd(),
		},
	}
}

func projectManager(verbose, quiet bool) (*migrate.Manager, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	root, err := config.FindProjectRoot(cwd)
	if err != nil {
		return nil, err
	}
	return migrate.NewManager(root, newLog(verbose, quiet)), nil
}

func migrateLogFlags(name string, verbose, quiet *bool) func() *pflag.FlagSet {
	return func() *pflag.FlagSet {
		fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
		logFlags(fs, verbose, quiet)
		return fs
	}
}

func migrateMakeCmd() *Command {
	var verbose, quiet bool
	return &Command{
		Name:    "make",
		Summary: "Create a new empty migration",
		Usage:   "loom migrate make <name>",
		Examples: []Example{
			{Command: "loom migrate make add-prompts-dir"},
		},
		Flags: migrateLogFlags("make", &verbose, &quiet),
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("expected exactly one migration name, got %d arguments", len(args))
			}
			mgr, err := projectManager(verbose, quiet)
			if err != nil {
				return err
			}
			path, err := mgr.Make(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("  created %s\n", path)
			return nil
		},
	}
}

func migrateUpCmd() *Command {
	var verbose, quiet bool
	return &Command{
		Name:    "up",
		Summary: "Apply all pending migrations",
		Flags:   migrateLogFlags("up", &verbose, &quiet),
		Run: func(args []string) error {
			mgr, err := projectManager(verbose, quiet)
			if err != nil {
				return err
			}
			applied, err := mgr.Up()
			if err != nil {
				return err
			}
			if len(applied) == 0 {
				fmt.Println("No pending migrations.")
				return nil
			}
			for _, id := range applied {
				fmt.Printf("  applied %s\n", id)
			}
			return nil
		},
	}
}

func migrateDownCmd() *Command {
	var verbose, quiet bool
	return &Command{
		Name:    "down",
		Summary: "Roll back the most recent migration",
		Flags:   migrateLogFlags("down", &verbose, &quiet),
		Run: func(args []string) error {
			mgr, err := projectManager(verbose, quiet)
			if err != nil {
				return err
			}
			id, err := mgr.Down()
			if err != nil {
				return err
			}
			if id == "" {
				fmt.Println("Nothing to roll back.")
				return nil
			}
			fmt.Printf("  rolled back %s\n", id)
			return nil
		},
	}
}

func migrateStatusCmd() *Command {
	var verbose, quiet bool
	return &Command{
		Name:    "status",
		Summary: "Show applied and pending migrations",
		Flags:   migrateLogFlags("status", &verbose, &quiet),
		Run: func(args []string) error {
			mgr, err := projectManager(verbose, quiet)
			if err != nil {
				return err
			}
			status, err := mgr.Status()
			if err != nil {
				return err
			}
			if len(status.Applied) == 0 && len(status.Pending) == 0 {
				fmt.Println("No migrations.")
				return nil
			}
			for _, id := range status.Applied {
				fmt.Printf("  [applied] %s\n", id)
			}
			for _, id := range status.Pending {
				fmt.Printf("  [pending] %s\n", id)
			}
			fmt.Printf("%d applied, %d pending\n", len(status.Applied), len(status.Pending))
			return nil
		},
	}
}
