package cmd

import (
	"github.com/mitchellh/cli"

	"github.com/memexlabs/memex-go/internal/version"
)

type versionCommand struct {
	ui cli.Ui
}

func (c *versionCommand) Synopsis() string { return "Print the memex version" }

func (c *versionCommand) Help() string {
	return "Usage: memex version\n\n  Prints the CLI version."
}

func (c *versionCommand) Run(args []string) int {
	c.ui.Output(version.Version)
	return 0
}
