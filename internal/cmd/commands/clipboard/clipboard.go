// Package clipboard implements the memex CLI clipboard subcommands.
package clipboard

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/memexlabs/memex-go/internal/cmd/base"
	"github.com/memexlabs/memex-go/pkg/clipboard"
)

type GetCommand struct {
	*base.Command

	flagConfig string
	flagName   string
	flagIndex  int
}

func (c *GetCommand) Synopsis() string {
	return "Fetch a clipboard entry by name or index"
}

func (c *GetCommand) Help() string {
	return `Usage: memex clipboard get

  Fetches one entry by -name or -idx (exactly one).` +
		c.Flags().Help()
}

func (c *GetCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("clipboard get", flag.ContinueOnError))
	f.StringVar(&c.flagConfig, "config", "", "Path to memex config file.")
	f.StringVar(&c.flagName, "name", "", "Entry name (key-value mode).")
	f.IntVar(&c.flagIndex, "idx", -1, "Entry index (stack mode).")
	return f
}

func (c *GetCommand) Run(args []string) int {
	if err := c.Flags().Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	client, err := c.Client(c.flagConfig)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	opts := clipboard.GetOptions{}
	if c.flagName != "" {
		opts.Name = &c.flagName
	}
	if c.flagIndex >= 0 {
		opts.Index = &c.flagIndex
	}

	entry, err := client.Clipboard.Get(context.Background(), opts)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	if err := c.OutputJSON(entry); err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	return 0
}

type SetCommand struct {
	*base.Command

	flagConfig string
	flagName   string
	flagTTL    int
}

func (c *SetCommand) Synopsis() string {
	return "Store a clipboard entry under a name"
}

func (c *SetCommand) Help() string {
	return `Usage: memex clipboard set -name <name> <value>

  Upserts a named entry. The value is taken from the arguments.` +
		c.Flags().Help()
}

func (c *SetCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("clipboard set", flag.ContinueOnError))
	f.StringVar(&c.flagConfig, "config", "", "Path to memex config file.")
	f.StringVar(&c.flagName, "name", "", "(Required) Entry name.")
	f.IntVar(&c.flagTTL, "ttl", 0, "Expiry in seconds; 0 means no expiry.")
	return f
}

func (c *SetCommand) Run(args []string) int {
	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	if c.flagName == "" {
		c.UI.Error("name flag is required")
		return 1
	}
	if flags.NArg() < 1 {
		c.UI.Error("a value is required")
		return 1
	}

	client, err := c.Client(c.flagConfig)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	req := clipboard.SetRequest{
		Name:  &c.flagName,
		Value: strings.Join(flags.Args(), " "),
	}
	if c.flagTTL > 0 {
		req.TTLSeconds = &c.flagTTL
	}

	entry, err := client.Clipboard.Set(context.Background(), req)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	if err := c.OutputJSON(entry); err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	return 0
}

type PopCommand struct {
	*base.Command

	flagConfig string
}

func (c *PopCommand) Synopsis() string {
	return "Remove and print the top stack entry"
}

func (c *PopCommand) Help() string {
	return `Usage: memex clipboard pop

  Removes the highest-index entry. Prints nothing when the stack is empty.` +
		c.Flags().Help()
}

func (c *PopCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("clipboard pop", flag.ContinueOnError))
	f.StringVar(&c.flagConfig, "config", "", "Path to memex config file.")
	return f
}

func (c *PopCommand) Run(args []string) int {
	if err := c.Flags().Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	client, err := c.Client(c.flagConfig)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	entry, err := client.Clipboard.Pop(context.Background())
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	if entry == nil {
		c.UI.Info("clipboard stack is empty")
		return 0
	}
	if err := c.OutputJSON(entry); err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	return 0
}

type ListCommand struct {
	*base.Command

	flagConfig string
	flagLimit  int
}

func (c *ListCommand) Synopsis() string {
	return "List clipboard entries"
}

func (c *ListCommand) Help() string {
	return `Usage: memex clipboard list

  Lists clipboard entries.` +
		c.Flags().Help()
}

func (c *ListCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("clipboard list", flag.ContinueOnError))
	f.StringVar(&c.flagConfig, "config", "", "Path to memex config file.")
	f.IntVar(&c.flagLimit, "limit", 0, "Page size; 0 uses the server default.")
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

	opts := clipboard.ListOptions{}
	if c.flagLimit > 0 {
		opts.Limit = &c.flagLimit
	}

	result, err := client.Clipboard.List(context.Background(), opts)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	if err := c.OutputJSON(result); err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	return 0
}

type DeleteCommand struct {
	*base.Command

	flagConfig   string
	flagName     string
	flagIndex    int
	flagClearAll bool
}

func (c *DeleteCommand) Synopsis() string {
	return "Delete a clipboard entry, or everything"
}

func (c *DeleteCommand) Help() string {
	return `Usage: memex clipboard delete

  Deletes one entry by -name or -idx, or all entries with -all.
  Exactly one selector must be given.` +
		c.Flags().Help()
}

func (c *DeleteCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("clipboard delete", flag.ContinueOnError))
	f.StringVar(&c.flagConfig, "config", "", "Path to memex config file.")
	f.StringVar(&c.flagName, "name", "", "Entry name to delete.")
	f.IntVar(&c.flagIndex, "idx", -1, "Entry index to delete.")
	f.BoolVar(&c.flagClearAll, "all", false, "Delete every entry.")
	return f
}

func (c *DeleteCommand) Run(args []string) int {
	if err := c.Flags().Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	client, err := c.Client(c.flagConfig)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	opts := clipboard.DeleteOptions{ClearAll: c.flagClearAll}
	if c.flagName != "" {
		opts.Name = &c.flagName
	}
	if c.flagIndex >= 0 {
		opts.Index = &c.flagIndex
	}

	if err := client.Clipboard.Delete(context.Background(), opts); err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	c.UI.Info("deleted")
	return 0
}
