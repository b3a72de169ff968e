// Package agents provides CRUD over agent lifecycle resources plus the two
// telemetry-submission endpoints. Lifecycle transitions are server-owned;
// every method here is a single pass-through request.
package agents

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/hashicorp/go-hclog"

	"github.com/memexlabs/memex-go/pkg/apierror"
	"github.com/memexlabs/memex-go/pkg/models"
	"github.com/memexlabs/memex-go/pkg/transport"
)

// Service proxies agent operations to the remote API.
type Service struct {
	client *transport.Client
	logger hclog.Logger
}

// NewService creates an agent service. A nil logger disables logging.
func NewService(client *transport.Client, logger hclog.Logger) *Service {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Service{
		client: client,
		logger: logger.Named("agents"),
	}
}

// ListOptions filter List.
type ListOptions struct {
	State models.AgentState
}

// List returns agents, optionally filtered by lifecycle state.
func (s *Service) List(ctx context.Context, opts ListOptions) ([]models.Agent, error) {
	query := url.Values{}
	if opts.State != "" {
		query.Set("state", string(opts.State))
	}

	var resp struct {
		Agents []models.Agent `json:"agents"`
	}
	if err := s.client.Do(ctx, http.MethodGet, "/api/agents", query, nil, &resp); err != nil {
		return nil, fmt.Errorf("agents list: %w", err)
	}
	return resp.Agents, nil
}

// CreateRequest registers a new agent.
type CreateRequest struct {
	Name     string         `json:"name"`
	DNSName  string         `json:"dnsName,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Validate checks the request before it is sent.
func (r CreateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required),
	)
}

// Create registers an agent. The server assigns identity and the NEW state.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*models.Agent, error) {
	if err := req.Validate(); err != nil {
		return nil, &apierror.ValidationError{Message: err.Error()}
	}

	var agent models.Agent
	if err := s.client.Do(ctx, http.MethodPost, "/api/agents", nil, req, &agent); err != nil {
		return nil, fmt.Errorf("agents create: %w", err)
	}
	return &agent, nil
}

// Get fetches one agent by id.
func (s *Service) Get(ctx context.Context, id string) (*models.Agent, error) {
	if id == "" {
		return nil, apierror.NewValidation("agent id is required")
	}

	var agent models.Agent
	path := fmt.Sprintf("/api/agents/%s", url.PathEscape(id))
	if err := s.client.Do(ctx, http.MethodGet, path, nil, nil, &agent); err != nil {
		return nil, fmt.Errorf("agents get: %w", err)
	}
	return &agent, nil
}

// Delete requests agent termination.
func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apierror.NewValidation("agent id is required")
	}
	path := fmt.Sprintf("/api/agents/%s", url.PathEscape(id))
	if err := s.client.Do(ctx, http.MethodDelete, path, nil, nil, nil); err != nil {
		return fmt.Errorf("agents delete: %w", err)
	}
	return nil
}

// Export returns the agent's full state document as raw JSON, suitable for
// writing to disk or feeding to other tooling without reinterpretation.
func (s *Service) Export(ctx context.Context, id string) (json.RawMessage, error) {
	if id == "" {
		return nil, apierror.NewValidation("agent id is required")
	}

	var raw json.RawMessage
	path := fmt.Sprintf("/api/agents/%s/export", url.PathEscape(id))
	if err := s.client.Do(ctx, http.MethodGet, path, nil, nil, &raw); err != nil {
		return nil, fmt.Errorf("agents export: %w", err)
	}
	return raw, nil
}

// HeartbeatRequest reports liveness for an agent.
type HeartbeatRequest struct {
	State   models.AgentState `json:"state,omitempty"`
	Message string            `json:"message,omitempty"`
}

// Heartbeat submits a liveness signal.
func (s *Service) Heartbeat(ctx context.Context, id string, req HeartbeatRequest) error {
	if id == "" {
		return apierror.NewValidation("agent id is required")
	}
	path := fmt.Sprintf("/api/agents/%s/heartbeat", url.PathEscape(id))
	if err := s.client.Do(ctx, http.MethodPost, path, nil, req, nil); err != nil {
		return fmt.Errorf("agents heartbeat: %w", err)
	}
	return nil
}

// MetricsRequest carries free-form telemetry gauges and counters.
type MetricsRequest struct {
	Metrics map[string]float64 `json:"metrics"`
	Labels  map[string]string  `json:"labels,omitempty"`
}

// Metrics submits telemetry for an agent.
func (s *Service) Metrics(ctx context.Context, id string, req MetricsRequest) error {
	if id == "" {
		return apierror.NewValidation("agent id is required")
	}
	if len(req.Metrics) == 0 {
		return apierror.NewValidation("at least one metric is required")
	}
	path := fmt.Sprintf("/api/agents/%s/metrics", url.PathEscape(id))
	if err := s.client.Do(ctx, http.MethodPost, path, nil, req, nil); err != nil {
		return fmt.Errorf("agents metrics: %w", err)
	}
	return nil
}
