// Package documents implements the memex CLI document subcommands.
package documents

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/memexlabs/memex-go/internal/cmd/base"
	"github.com/memexlabs/memex-go/pkg/documents"
)

type ListCommand struct {
	*base.Command

	flagConfig string
	flagTags   string
}

func (c *ListCommand) Synopsis() string {
	return "List documents"
}

func (c *ListCommand) Help() string {
	return `Usage: memex documents list

  Lists documents, optionally filtered by comma-separated tags.` +
		c.Flags().Help()
}

func (c *ListCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("documents list", flag.ContinueOnError))
	f.StringVar(&c.flagConfig, "config", "", "Path to memex config file.")
	f.StringVar(&c.flagTags, "tags", "", "Comma-separated tag filter.")
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

	opts := documents.ListOptions{}
	if c.flagTags != "" {
		opts.Tags = strings.Split(c.flagTags, ",")
	}

	result, err := client.Documents.List(context.Background(), opts)
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

type GetCommand struct {
	*base.Command

	flagConfig  string
	flagContent bool
}

func (c *GetCommand) Synopsis() string {
	return "Fetch a document by id"
}

func (c *GetCommand) Help() string {
	return `Usage: memex documents get <id>

  Fetches one document, optionally with content.` +
		c.Flags().Help()
}

func (c *GetCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("documents get", flag.ContinueOnError))
	f.StringVar(&c.flagConfig, "config", "", "Path to memex config file.")
	f.BoolVar(&c.flagContent, "content", false, "Include document content.")
	return f
}

func (c *GetCommand) Run(args []string) int {
	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	if flags.NArg() != 1 {
		c.UI.Error("exactly one document id is required")
		return 1
	}

	client, err := c.Client(c.flagConfig)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	doc, err := client.Documents.Get(context.Background(), flags.Arg(0),
		documents.GetOptions{IncludeContent: c.flagContent})
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	if err := c.OutputJSON(doc); err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	return 0
}

type SearchCommand struct {
	*base.Command

	flagConfig string
	flagLimit  int
}

func (c *SearchCommand) Synopsis() string {
	return "Semantic search over documents"
}

func (c *SearchCommand) Help() string {
	return `Usage: memex documents search <query>

  Runs a semantic search and prints scored results.` +
		c.Flags().Help()
}

func (c *SearchCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("documents search", flag.ContinueOnError))
	f.StringVar(&c.flagConfig, "config", "", "Path to memex config file.")
	f.IntVar(&c.flagLimit, "limit", 10, "Maximum number of results.")
	return f
}

func (c *SearchCommand) Run(args []string) int {
	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	if flags.NArg() < 1 {
		c.UI.Error("a search query is required")
		return 1
	}

	client, err := c.Client(c.flagConfig)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	results, err := client.Documents.Search(context.Background(), documents.SearchRequest{
		Query: strings.Join(flags.Args(), " "),
		Limit: c.flagLimit,
	})
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	if err := c.OutputJSON(results); err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	return 0
}
