// Package base carries the shared pieces of every memex CLI command.
package base

import (
	"encoding/json"
	"flag"
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/spf13/afero"

	"github.com/memexlabs/memex-go/internal/config"
	"github.com/memexlabs/memex-go/pkg/memex"
)

// DefaultConfigPath is used when a command's -config flag is not given.
const DefaultConfigPath = "memex.hcl"

// Command is embedded by all CLI commands.
type Command struct {
	UI  cli.Ui
	Log hclog.Logger
	FS  afero.Fs
}

// Client loads configuration from configPath and builds an SDK client.
func (c *Command) Client(configPath string) (*memex.Client, error) {
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	cfg, err := config.Load(c.FS, configPath)
	if err != nil {
		return nil, err
	}
	return memex.New(cfg.ClientConfig(), memex.WithLogger(c.Log))
}

// OutputJSON pretty-prints v to the UI.
func (c *Command) OutputJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	c.UI.Output(string(data))
	return nil
}

// FlagSet wraps flag.FlagSet with help rendering for command Help() text.
type FlagSet struct {
	*flag.FlagSet
}

// NewFlagSet wraps f, silencing its default usage output so help text is
// rendered through the command instead.
func NewFlagSet(f *flag.FlagSet) *FlagSet {
	f.Usage = func() {}
	return &FlagSet{FlagSet: f}
}

// Help renders the flag descriptions for inclusion in command help.
func (f *FlagSet) Help() string {
	var b strings.Builder
	b.WriteString("\n\nFlags:\n")
	f.SetOutput(&b)
	f.PrintDefaults()
	return b.String()
}
