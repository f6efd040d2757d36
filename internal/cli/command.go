// Package cli implements the loom command tree: flag parsing, help
// rendering, subcommand dispatch, and the commands themselves.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"
)

// Command is one node of the command tree.
type Command struct {
	// Name as typed by the user (e.g. "generate", "doctor").
	Name string

	// Aliases are alternative names dispatched like Name (e.g. "g").
	Aliases []string

	// Summary is the one-liner shown in the parent's command listing.
	Summary string

	// Description is the longer text shown in this command's own help.
	Description string

	// Usage overrides the synthesized usage line.
	Usage string

	// Examples are rendered at the end of the help output.
	Examples []Example

	// Flags builds the command's flag set. Called lazily; nil means the
	// command takes no flags.
	Flags func() *pflag.FlagSet

	// Subcommands are dispatched on the first positional argument.
	Subcommands []*Command

	// Run executes the command with the positional arguments left after
	// flag parsing.
	Run func(args []string) error

	parent *Command
}

// Example is one usage example in help output.
type Example struct {
	Description string
	Command     string
}

// Execute dispatches args through the command tree.
func (c *Command) Execute(args []string) error {
	if len(args) > 0 && isHelpArg(args[0]) {
		c.PrintHelp(os.Stderr)
		return nil
	}

	if len(c.Subcommands) > 0 && len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		name := args[0]
		for _, sub := range c.Subcommands {
			if sub.matches(name) {
				sub.parent = c
				return sub.Execute(args[1:])
			}
		}
		if hint := closestCommand(name, c.Subcommands); hint != "" {
			return fmt.Errorf("unknown command %q (did you mean %q?)\n\nRun '%s --help' for usage.",
				name, hint, c.path())
		}
		return fmt.Errorf("unknown command %q\n\nRun '%s --help' for usage.", name, c.path())
	}

	if len(c.Subcommands) > 0 && c.Run == nil {
		c.PrintHelp(os.Stderr)
		if len(args) == 0 {
			return fmt.Errorf("subcommand required")
		}
		return fmt.Errorf("subcommand required (got %q)", args[0])
	}

	if c.Flags != nil {
		fs := c.Flags()
		fs.SetOutput(io.Discard)
		if err := fs.Parse(args); err != nil {
			if strings.Contains(err.Error(), "unknown flag") {
				if hint := closestFlag(args, c.Flags()); hint != "" {
					return fmt.Errorf("%s (did you mean %s?)\n\nRun '%s --help' for usage.",
						err, hint, c.path())
				}
			}
			return fmt.Errorf("%s\n\nRun '%s --help' for usage.", err, c.path())
		}
		args = fs.Args()
	}

	if c.Run != nil {
		return c.Run(args)
	}

	c.PrintHelp(os.Stderr)
	return fmt.Errorf("no action defined for %q", c.path())
}

func (c *Command) matches(name string) bool {
	if c.Name == name {
		return true
	}
	for _, alias := range c.Aliases {
		if alias == name {
			return true
		}
	}
	return false
}

// PrintHelp writes the structured help output to w.
func (c *Command) PrintHelp(w io.Writer) {
	name := c.path()

	if c.Description != "" {
		fmt.Fprintf(w, "%s\n\n", c.Description)
	} else if c.Summary != "" {
		fmt.Fprintf(w, "%s\n\n", c.Summary)
	}

	switch {
	case c.Usage != "":
		fmt.Fprintf(w, "Usage:\n  %s\n", c.Usage)
	case len(c.Subcommands) > 0:
		fmt.Fprintf(w, "Usage:\n  %s <command> [flags]\n", name)
	default:
		fmt.Fprintf(w, "Usage:\n  %s [flags]\n", name)
	}

	if len(c.Subcommands) > 0 {
		fmt.Fprintf(w, "\nCommands:\n")
		tw := tabwriter.NewWriter(w, 2, 0, 3, ' ', 0)
		for _, sub := range c.Subcommands {
			label := sub.Name
			if len(sub.Aliases) > 0 {
				label += ", " + strings.Join(sub.Aliases, ", ")
			}
			fmt.Fprintf(tw, "  %s\t%s\n", label, sub.Summary)
		}
		tw.Flush()
	}

	if c.Flags != nil {
		fs := c.Flags()
		var b strings.Builder
		fs.SetOutput(&b)
		fs.PrintDefaults()
		if b.Len() > 0 {
			fmt.Fprintf(w, "\nFlags:\n%s", b.String())
		}
	}

	if len(c.Examples) > 0 {
		fmt.Fprintf(w, "\nExamples:\n")
		for _, ex := range c.Examples {
			if ex.Description != "" {
				fmt.Fprintf(w, "  # %s\n", ex.Description)
			}
			fmt.Fprintf(w, "  %s\n", ex.Command)
		}
	}

	if len(c.Subcommands) > 0 {
		fmt.Fprintf(w, "\nRun '%s <command> --help' for more information on a command.\n", name)
	}
}

// path returns the full command path (e.g. "loom migrate up").
func (c *Command) path() string {
	if c.parent == nil {
		return c.Name
	}
	return c.parent.path() + " " + c.Name
}

func isHelpArg(arg string) bool {
	return arg == "-h" || arg == "--help" || arg == "help"
}
