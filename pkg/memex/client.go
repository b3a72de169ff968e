// Package memex is the entry point to the Memex API client. It composes the
// transport core and the per-resource services behind one handle.
package memex

import (
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/memexlabs/memex-go/pkg/agents"
	"github.com/memexlabs/memex-go/pkg/clipboard"
	"github.com/memexlabs/memex-go/pkg/documents"
	"github.com/memexlabs/memex-go/pkg/rag"
	"github.com/memexlabs/memex-go/pkg/transport"
	"github.com/memexlabs/memex-go/pkg/uploads"
)

// Config is the client configuration. See transport.Config for fields and
// defaults.
type Config = transport.Config

// Client is the Memex API client. Construct with New; all service fields are
// ready to use afterward. Safe for concurrent use.
type Client struct {
	Documents *documents.Service
	RAG       *rag.Service
	Clipboard *clipboard.Service
	Uploads   *uploads.Service
	Agents    *agents.Service

	transport *transport.Client
}

// Option customizes client construction.
type Option func(*options)

type options struct {
	logger hclog.Logger
}

// WithLogger sets the logger used by the transport and all services.
func WithLogger(logger hclog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// New builds a client from cfg. Only the API key is required; every other
// field defaults per transport.Config.
func New(cfg Config, opts ...Option) (*Client, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = hclog.NewNullLogger()
	}

	tc, err := transport.New(cfg, o.logger)
	if err != nil {
		return nil, fmt.Errorf("memex: %w", err)
	}

	docs := documents.NewService(tc, o.logger)
	return &Client{
		Documents: docs,
		RAG:       rag.NewService(tc, docs, o.logger),
		Clipboard: clipboard.NewService(tc, o.logger),
		Uploads:   uploads.NewService(tc, o.logger),
		Agents:    agents.NewService(tc, o.logger),
		transport: tc,
	}, nil
}

// SetAPIKey rotates the bearer token for all subsequent requests on this
// client. In-flight requests keep the key they were sent with.
func (c *Client) SetAPIKey(key string) {
	c.transport.SetAPIKey(key)
}

// Config returns an immutable snapshot of the effective configuration,
// including the current API key.
func (c *Client) Config() Config {
	return c.transport.Snapshot()
}
