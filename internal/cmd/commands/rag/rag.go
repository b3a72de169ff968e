// Package rag implements the memex CLI rag subcommands.
package rag

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/memexlabs/memex-go/internal/cmd/base"
)

type QueryCommand struct {
	*base.Command

	flagConfig  string
	flagSources bool
}

func (c *QueryCommand) Synopsis() string {
	return "Ask a natural-language question over indexed documents"
}

func (c *QueryCommand) Help() string {
	return `Usage: memex rag query <question>

  Sends a RAG query and prints the answer. With -sources the resolved
  source documents are printed as well.` +
		c.Flags().Help()
}

func (c *QueryCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("rag query", flag.ContinueOnError))
	f.StringVar(&c.flagConfig, "config", "", "Path to memex config file.")
	f.BoolVar(&c.flagSources, "sources", false, "Include resolved source documents.")
	return f
}

func (c *QueryCommand) Run(args []string) int {
	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	if flags.NArg() < 1 {
		c.UI.Error("a question is required")
		return 1
	}

	client, err := c.Client(c.flagConfig)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	question := strings.Join(flags.Args(), " ")
	ctx := context.Background()

	if c.flagSources {
		resp, err := client.RAG.QueryWithSources(ctx, question)
		if err != nil {
			c.UI.Error(err.Error())
			return 1
		}
		if err := c.OutputJSON(resp); err != nil {
			c.UI.Error(err.Error())
			return 1
		}
		return 0
	}

	answer, err := client.RAG.AskQuestion(ctx, question)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	c.UI.Output(answer)
	return 0
}
