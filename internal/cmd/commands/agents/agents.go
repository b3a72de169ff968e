// Package agents implements the memex CLI agent subcommands.
package agents

import (
	"context"
	"flag"
	"fmt"

	"github.com/spf13/afero"

	"github.com/memexlabs/memex-go/internal/cmd/base"
	"github.com/memexlabs/memex-go/pkg/agents"
	"github.com/memexlabs/memex-go/pkg/models"
)

type ListCommand struct {
	*base.Command

	flagConfig string
	flagState  string
}

func (c *ListCommand) Synopsis() string {
	return "List agents"
}

func (c *ListCommand) Help() string {
	return `Usage: memex agents list

  Lists agents, optionally filtered by lifecycle state.` +
		c.Flags().Help()
}

func (c *ListCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("agents list", flag.ContinueOnError))
	f.StringVar(&c.flagConfig, "config", "", "Path to memex config file.")
	f.StringVar(&c.flagState, "state", "", "Filter by state (NEW, PROVISIONED, ACTIVE, DRAINING, TERMINATED, KILLED).")
	return f
}

func (c *ListCommand) Run(args []string) int {
	if err := c.Flags().Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	client, err := c.Client(c.flagConfig)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	list, err := client.Agents.List(context.Background(), agents.ListOptions{
		State: models.AgentState(c.flagState),
	})
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	if err := c.OutputJSON(list); err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	return 0
}

type ExportCommand struct {
	*base.Command

	flagConfig string
	flagOut    string
}

func (c *ExportCommand) Synopsis() string {
	return "Export an agent's state document"
}

func (c *ExportCommand) Help() string {
	return `Usage: memex agents export <id>

  Exports the agent's full state document. With -out the JSON is written
  to a file instead of stdout.` +
		c.Flags().Help()
}

func (c *ExportCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("agents export", flag.ContinueOnError))
	f.StringVar(&c.flagConfig, "config", "", "Path to memex config file.")
	f.StringVar(&c.flagOut, "out", "", "File to write the export to.")
	return f
}

func (c *ExportCommand) Run(args []string) int {
	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	if flags.NArg() != 1 {
		c.UI.Error("exactly one agent id is required")
		return 1
	}

	client, err := c.Client(c.flagConfig)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	raw, err := client.Agents.Export(context.Background(), flags.Arg(0))
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	if c.flagOut == "" {
		c.UI.Output(string(raw))
		return 0
	}
	if err := afero.WriteFile(c.FS, c.flagOut, raw, 0o600); err != nil {
		c.UI.Error(fmt.Sprintf("failed to write export: %v", err))
		return 1
	}
	c.UI.Info(fmt.Sprintf("export written to %s", c.flagOut))
	return 0
}
