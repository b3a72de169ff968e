// Package transport provides the single authenticated HTTP channel to the
// Memex API, with uniform debug logging, error classification, and retry
// semantics applied to every request.
package transport

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Defaults applied by New when the corresponding Config field is unset.
const (
	DefaultBaseURL    = "https://api.memex.dev"
	DefaultTimeout    = 30 * time.Second
	DefaultMaxRetries = 3
)

// MaxRetriesDisabled turns retries off entirely. A MaxRetries of zero means
// unset and takes DefaultMaxRetries, so disabling needs its own value.
const MaxRetriesDisabled = -1

// Config holds client configuration. All fields are fixed at construction
// except the API key, which can be rotated with Client.SetAPIKey.
type Config struct {
	// APIKey is the bearer token used on every request. Required.
	APIKey string `json:"-"`

	// BaseURL is the root of the remote API.
	// Default: https://api.memex.dev
	BaseURL string `json:"baseUrl"`

	// Timeout applies per request, including the response body read.
	// Default: 30 seconds.
	Timeout time.Duration `json:"timeout"`

	// MaxRetries caps how many times a transient failure is retried.
	// Default: 3. Set MaxRetriesDisabled to turn retries off.
	MaxRetries int `json:"maxRetries"`

	// Debug enables request/response logging at debug level.
	Debug bool `json:"debug"`
}

// Validate checks the configuration after defaults have been applied.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.APIKey, validation.Required),
		validation.Field(&c.BaseURL, validation.Required, validation.By(validBaseURL)),
		validation.Field(&c.Timeout, validation.Required, validation.Min(time.Duration(1))),
		validation.Field(&c.MaxRetries, validation.Min(0)),
	)
}

func validBaseURL(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil // Required rule reports this
	}
	u, err := url.Parse(s)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return validation.NewError(
			"validation_base_url_scheme", "must use http or https scheme")
	}
	return nil
}

// String implements fmt.Stringer with the API key redacted to its last four
// characters, so configs are safe to log.
func (c Config) String() string {
	key := c.APIKey
	if len(key) > 4 {
		key = "..." + key[len(key)-4:]
	}
	return fmt.Sprintf("Config{APIKey: %s, BaseURL: %s, Timeout: %s, MaxRetries: %d, Debug: %t}",
		key, c.BaseURL, c.Timeout, c.MaxRetries, c.Debug)
}

// newHTTPClient builds the pooled HTTP client used for all requests.
func (c Config) newHTTPClient() *http.Client {
	return &http.Client{
		Timeout: c.Timeout,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}
