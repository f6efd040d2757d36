package cli

import (
	"github.com/spf13/pflag"

	"github.com/loomworks/loom/internal/mcpserver"
	"github.com/loomworks/loom/internal/version"
)

func mcpCmd() *Command {
	var verbose, quiet bool

	return &Command{
		Name:    "mcp",
		Summary: "Run the MCP tool server on stdio",
		Description: "Expose the loom generators as MCP tools over stdio, so coding\n" +
			"agents can scaffold projects and components directly.",
		Usage: "loom mcp",
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("mcp", pflag.ContinueOnError)
			logFlags(fs, &verbose, &quiet)
			return fs
		},
		Run: func(args []string) error {
			srv, err := mcpserver.New(version.Version, newLog(verbose, quiet))
			if err != nil {
				return err
			}
			return mcpserver.Serve(srv)
		},
	}
}
