// Package config loads CLI configuration for the memex command. Files are
// HCL by convention, with YAML accepted for tooling that generates configs.
// The API key can always be supplied through the environment instead of the
// file.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/memexlabs/memex-go/pkg/transport"
)

// Environment variables that override file values.
const (
	EnvAPIKey  = "MEMEX_API_KEY"
	EnvBaseURL = "MEMEX_BASE_URL"
)

// Config is the on-disk CLI configuration.
//
// Example (HCL):
//
//	api_key         = "mx_..."
//	base_url        = "https://api.memex.dev"
//	timeout_seconds = 30
//	max_retries     = 3
//	debug           = false
type Config struct {
	APIKey         string `hcl:"api_key,optional" yaml:"api_key"`
	BaseURL        string `hcl:"base_url,optional" yaml:"base_url"`
	TimeoutSeconds int    `hcl:"timeout_seconds,optional" yaml:"timeout_seconds"`
	MaxRetries     int    `hcl:"max_retries,optional" yaml:"max_retries"`
	Debug          bool   `hcl:"debug,optional" yaml:"debug"`
}

// Load reads the config file at path from fs, applies environment overrides,
// and validates the result. All problems are reported together.
func Load(fs afero.Fs, path string) (*Config, error) {
	var cfg Config

	data, err := afero.ReadFile(fs, path)
	if os.IsNotExist(err) {
		// No file is fine as long as the environment provides enough.
		cfg.applyEnv()
		if err := cfg.validate(); err != nil {
			return nil, err
		}
		return &cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	switch ext := filepath.Ext(path); ext {
	case ".hcl", ".json":
		if err := hclsimple.Decode(path, data, nil, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s config: %w", ext, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse yaml config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config extension %q (want .hcl, .json, .yaml, or .yml)", ext)
	}

	cfg.applyEnv()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv() {
	if key := os.Getenv(EnvAPIKey); key != "" {
		c.APIKey = key
	}
	if base := os.Getenv(EnvBaseURL); base != "" {
		c.BaseURL = base
	}
}

func (c *Config) validate() error {
	var result *multierror.Error

	if c.APIKey == "" {
		result = multierror.Append(result, fmt.Errorf(
			"api_key is required (set it in the config file or %s)", EnvAPIKey))
	}
	if c.BaseURL != "" {
		u, err := url.Parse(c.BaseURL)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("invalid base_url: %w", err))
		} else if u.Scheme != "http" && u.Scheme != "https" {
			result = multierror.Append(result, fmt.Errorf(
				"base_url must use http or https scheme, got %q", u.Scheme))
		}
	}
	if c.TimeoutSeconds < 0 {
		result = multierror.Append(result, fmt.Errorf(
			"timeout_seconds must be non-negative, got %d", c.TimeoutSeconds))
	}
	if c.MaxRetries < 0 {
		result = multierror.Append(result, fmt.Errorf(
			"max_retries must be non-negative, got %d", c.MaxRetries))
	}

	return result.ErrorOrNil()
}

// ClientConfig converts the CLI config to the SDK's transport configuration.
func (c *Config) ClientConfig() transport.Config {
	return transport.Config{
		APIKey:     c.APIKey,
		BaseURL:    c.BaseURL,
		Timeout:    time.Duration(c.TimeoutSeconds) * time.Second,
		MaxRetries: c.MaxRetries,
		Debug:      c.Debug,
	}
}
