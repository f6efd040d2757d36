package cli

import (
	"fmt"

	"github.com/loomworks/loom/internal/updater"
	"github.com/loomworks/loom/internal/version"
)

func updateCmd() *Command {
	return &Command{
		Name:    "update",
		Summary: "Update loom to the latest release",
		Description: "Download the latest release binary for this platform and replace\n" +
			"the running executable.",
		Usage: "loom update",
		Run: func(args []string) error {
			fmt.Printf("Current version: %s\n", version.Version)
			if err := updater.SelfUpdate(version.Version); err != nil {
				return err
			}
			fmt.Println("loom updated. Run 'loom version' to confirm.")
			return nil
		},
	}
}
