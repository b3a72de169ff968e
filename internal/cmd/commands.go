package cmd

import (
	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/spf13/afero"

	"github.com/memexlabs/memex-go/internal/cmd/base"
	agentscmd "github.com/memexlabs/memex-go/internal/cmd/commands/agents"
	clipboardcmd "github.com/memexlabs/memex-go/internal/cmd/commands/clipboard"
	documentscmd "github.com/memexlabs/memex-go/internal/cmd/commands/documents"
	ragcmd "github.com/memexlabs/memex-go/internal/cmd/commands/rag"
)

// Commands maps subcommand names to factories. Populated by initCommands.
var Commands map[string]cli.CommandFactory

func initCommands(log hclog.Logger, ui cli.Ui) {
	b := &base.Command{
		UI:  ui,
		Log: log,
		FS:  afero.NewOsFs(),
	}

	Commands = map[string]cli.CommandFactory{
		"documents list": func() (cli.Command, error) {
			return &documentscmd.ListCommand{Command: b}, nil
		},
		"documents get": func() (cli.Command, error) {
			return &documentscmd.GetCommand{Command: b}, nil
		},
		"documents search": func() (cli.Command, error) {
			return &documentscmd.SearchCommand{Command: b}, nil
		},
		"clipboard get": func() (cli.Command, error) {
			return &clipboardcmd.GetCommand{Command: b}, nil
		},
		"clipboard set": func() (cli.Command, error) {
			return &clipboardcmd.SetCommand{Command: b}, nil
		},
		"clipboard pop": func() (cli.Command, error) {
			return &clipboardcmd.PopCommand{Command: b}, nil
		},
		"clipboard list": func() (cli.Command, error) {
			return &clipboardcmd.ListCommand{Command: b}, nil
		},
		"clipboard delete": func() (cli.Command, error) {
			return &clipboardcmd.DeleteCommand{Command: b}, nil
		},
		"rag query": func() (cli.Command, error) {
			return &ragcmd.QueryCommand{Command: b}, nil
		},
		"agents list": func() (cli.Command, error) {
			return &agentscmd.ListCommand{Command: b}, nil
		},
		"agents export": func() (cli.Command, error) {
			return &agentscmd.ExportCommand{Command: b}, nil
		},
		"version": func() (cli.Command, error) {
			return &versionCommand{ui: ui}, nil
		},
	}
}
