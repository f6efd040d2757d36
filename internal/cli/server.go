package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/loomworks/loom/internal/config"
	"github.com/loomworks/loom/internal/devserver"
	"github.com/loomworks/loom/internal/updater"
	"github.com/loomworks/loom/internal/version"
)

func serverCmd() *Command {
	var (
		host        string
		port        int
		env         string
		healthCheck bool
		reload      bool
		verbose     bool
		quiet       bool
		fs          *pflag.FlagSet
	)

	return &Command{
		Name:    "server",
		Aliases: []string{"serve"},
		Summary: "Run the development server",
		Description: "Run the project development server. Defaults come from the\n" +
			"[server] section of " + config.File + "; flags override them.\n" +
			"With --health-check the command probes a running server instead.",
		Usage: "loom server [flags]",
		Examples: []Example{
			{Command: "loom server"},
			{Command: "loom server --port 9000 --reload"},
			{Description: "Probe a running server", Command: "loom server --health-check"},
		},
		Flags: func() *pflag.FlagSet {
			fs = pflag.NewFlagSet("server", pflag.ContinueOnError)
			fs.StringVar(&host, "host", "", "bind address (default from manifest)")
			fs.IntVarP(&port, "port", "p", 0, "listen port (default from manifest)")
			fs.StringVar(&env, "env", "", "environment: dev, prod, or test (default from manifest)")
			fs.BoolVar(&healthCheck, "health-check", false, "probe a running server and exit")
			fs.BoolVar(&reload, "reload", false, "watch project sources and count changes")
			logFlags(fs, &verbose, &quiet)
			return fs
		},
		Run: func(args []string) error {
			proj, root, err := config.LoadFromCwd()
			if err != nil {
				return err
			}
			opts := devserver.Options{
				Host:    proj.Server.Host,
				Port:    proj.Server.Port,
				Env:     proj.Server.Env,
				Reload:  reload,
				Project: proj.Name,
			}
			if fs.Changed("host") {
				opts.Host = host
			}
			if fs.Changed("port") {
				opts.Port = port
			}
			if fs.Changed("env") {
				opts.Env = env
			}

			if healthCheck {
				if err := devserver.Probe(opts.Host, opts.Port); err != nil {
					return fmt.Errorf("server not healthy: %w", err)
				}
				fmt.Printf("Server at %s:%d is healthy.\n", opts.Host, opts.Port)
				return nil
			}

			log := newLog(verbose, quiet)
			go func() {
				if result := updater.CheckVersion(version.Version); result.UpdateAvailable {
					fmt.Fprintf(os.Stderr, "A new loom release is available: %s (current %s)\nRun 'loom update' to install it.\n",
						result.LatestVersion, result.CurrentVersion)
				}
			}()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return devserver.New(opts, log).Run(ctx, root)
		},
	}
}
