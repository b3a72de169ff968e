package config

import (
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o600))
}

func TestLoad_HCL(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeConfig(t, fs, "/etc/memex.hcl", `
api_key         = "mx_test"
base_url        = "https://memex.internal"
timeout_seconds = 10
max_retries     = 5
debug           = true
`)

	cfg, err := Load(fs, "/etc/memex.hcl")
	require.NoError(t, err)
	assert.Equal(t, "mx_test", cfg.APIKey)
	assert.Equal(t, "https://memex.internal", cfg.BaseURL)
	assert.True(t, cfg.Debug)

	cc := cfg.ClientConfig()
	assert.Equal(t, 10*time.Second, cc.Timeout)
	assert.Equal(t, 5, cc.MaxRetries)
}

func TestLoad_YAML(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeConfig(t, fs, "/etc/memex.yaml", `
api_key: mx_yaml
base_url: http://localhost:8080
`)

	cfg, err := Load(fs, "/etc/memex.yaml")
	require.NoError(t, err)
	assert.Equal(t, "mx_yaml", cfg.APIKey)
	assert.Equal(t, "http://localhost:8080", cfg.BaseURL)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv(EnvAPIKey, "mx_from_env")

	fs := afero.NewMemMapFs()
	writeConfig(t, fs, "/etc/memex.hcl", `api_key = "mx_from_file"`)

	cfg, err := Load(fs, "/etc/memex.hcl")
	require.NoError(t, err)
	assert.Equal(t, "mx_from_env", cfg.APIKey)
}

func TestLoad_EnvAloneIsEnough(t *testing.T) {
	t.Setenv(EnvAPIKey, "mx_env_only")

	fs := afero.NewMemMapFs()
	writeConfig(t, fs, "/etc/memex.hcl", ``)

	cfg, err := Load(fs, "/etc/memex.hcl")
	require.NoError(t, err)
	assert.Equal(t, "mx_env_only", cfg.APIKey)
}

func TestLoad_AggregatesValidationErrors(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeConfig(t, fs, "/etc/memex.hcl", `
base_url        = "ftp://memex"
timeout_seconds = -1
max_retries     = -2
`)

	_, err := Load(fs, "/etc/memex.hcl")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api_key is required")
	assert.Contains(t, err.Error(), "base_url must use http or https")
	assert.Contains(t, err.Error(), "timeout_seconds must be non-negative")
	assert.Contains(t, err.Error(), "max_retries must be non-negative")
}

func TestLoad_UnsupportedExtension(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeConfig(t, fs, "/etc/memex.toml", `api_key = "x"`)

	_, err := Load(fs, "/etc/memex.toml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported config extension")
}

func TestLoad_MissingFileFallsBackToEnv(t *testing.T) {
	t.Setenv(EnvAPIKey, "mx_env_only")
	t.Setenv(EnvBaseURL, "http://localhost:9999")

	cfg, err := Load(afero.NewMemMapFs(), "/nope.hcl")
	require.NoError(t, err)
	assert.Equal(t, "mx_env_only", cfg.APIKey)
	assert.Equal(t, "http://localhost:9999", cfg.BaseURL)
}

func TestLoad_MissingFileWithoutEnv(t *testing.T) {
	t.Setenv(EnvAPIKey, "")

	_, err := Load(afero.NewMemMapFs(), "/nope.hcl")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api_key is required")
}
