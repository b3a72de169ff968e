// Package documents provides CRUD and semantic search over documents. All
// methods are single-request, stateless pass-throughs; the server owns
// versioning and storage.
package documents

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/hashicorp/go-hclog"

	"github.com/memexlabs/memex-go/pkg/apierror"
	"github.com/memexlabs/memex-go/pkg/models"
	"github.com/memexlabs/memex-go/pkg/transport"
)

// Content operations accepted by Update.
const (
	OpReplace = "replace"
	OpAppend  = "append"
	OpPrepend = "prepend"
)

// Service proxies document operations to the remote API.
type Service struct {
	client *transport.Client
	logger hclog.Logger
}

// NewService creates a document service. A nil logger disables logging.
func NewService(client *transport.Client, logger hclog.Logger) *Service {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Service{
		client: client,
		logger: logger.Named("documents"),
	}
}

// ListOptions filter List.
type ListOptions struct {
	Tags       []string
	Provenance models.Provenance
	Visibility models.Visibility
	Limit      *int
	Offset     *int
}

// ListResult is a page of documents.
type ListResult struct {
	Documents []models.Document `json:"documents"`
	Total     int               `json:"total"`
}

// List returns documents matching opts. Tags are sent as repeated query
// parameters so multi-tag filters survive encoding.
func (s *Service) List(ctx context.Context, opts ListOptions) (*ListResult, error) {
	query := url.Values{}
	for _, tag := range opts.Tags {
		query.Add("tag", tag)
	}
	if opts.Provenance != "" {
		query.Set("provenance", string(opts.Provenance))
	}
	if opts.Visibility != "" {
		query.Set("visibility", string(opts.Visibility))
	}
	if opts.Limit != nil {
		query.Set("limit", strconv.Itoa(*opts.Limit))
	}
	if opts.Offset != nil {
		query.Set("offset", strconv.Itoa(*opts.Offset))
	}

	var result ListResult
	if err := s.client.Do(ctx, http.MethodGet, "/api/documents", query, nil, &result); err != nil {
		return nil, fmt.Errorf("documents list: %w", err)
	}
	return &result, nil
}

// SearchRequest is the payload for semantic search.
type SearchRequest struct {
	Query string   `json:"query"`
	Tags  []string `json:"tags,omitempty"`
	Limit int      `json:"limit,omitempty"`
}

// Search performs semantic search over the indexed documents.
func (s *Service) Search(ctx context.Context, req SearchRequest) ([]models.SearchResult, error) {
	if req.Query == "" {
		return nil, apierror.NewValidation("search query is required")
	}

	var resp struct {
		Results []models.SearchResult `json:"results"`
	}
	if err := s.client.Do(ctx, http.MethodPost, "/api/documents/search", nil, req, &resp); err != nil {
		return nil, fmt.Errorf("documents search: %w", err)
	}
	return resp.Results, nil
}

// GetOptions toggle which parts of a document Get fetches.
type GetOptions struct {
	IncludeContent  bool
	IncludeVersions bool
}

// GetResult is a document with optionally inlined content and version history.
type GetResult struct {
	models.DocumentWithContent
	Versions []models.DocumentVersion `json:"versions,omitempty"`
}

// Get fetches a document by id.
func (s *Service) Get(ctx context.Context, id string, opts GetOptions) (*GetResult, error) {
	if id == "" {
		return nil, apierror.NewValidation("document id is required")
	}

	query := url.Values{}
	if opts.IncludeContent {
		query.Set("content", "true")
	}
	if opts.IncludeVersions {
		query.Set("versions", "true")
	}

	var result GetResult
	path := fmt.Sprintf("/api/documents/%s", url.PathEscape(id))
	if err := s.client.Do(ctx, http.MethodGet, path, query, nil, &result); err != nil {
		return nil, fmt.Errorf("documents get: %w", err)
	}
	return &result, nil
}

// Resolve fetches a bare document record by id. It exists so other services
// can resolve source ids without depending on this package's option types.
func (s *Service) Resolve(ctx context.Context, id string) (*models.Document, error) {
	result, err := s.Get(ctx, id, GetOptions{})
	if err != nil {
		return nil, err
	}
	return &result.Document, nil
}

// CreateRequest is the payload for creating an AI-generated document.
type CreateRequest struct {
	Title           string                    `json:"title"`
	Content         string                    `json:"content"`
	ContentEncoding models.Encoding           `json:"contentEncoding,omitempty"`
	Tags            []string                  `json:"tags,omitempty"`
	Visibility      models.Visibility         `json:"visibility,omitempty"`
	AIMetadata      *models.AIMetadata        `json:"aiMetadata,omitempty"`
	Attributions    []models.ModelAttribution `json:"modelAttributions,omitempty"`
}

// Validate checks the request before it is sent.
func (r CreateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required),
		validation.Field(&r.Content, validation.Required),
	)
}

// Create submits a generation request and immediately fetches the full
// record for the returned identifier, so the caller always gets a fully
// populated document rather than the id-only creation response.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*GetResult, error) {
	if err := req.Validate(); err != nil {
		return nil, &apierror.ValidationError{Message: err.Error()}
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := s.client.Do(ctx, http.MethodPost, "/api/documents/ai", nil, req, &created); err != nil {
		return nil, fmt.Errorf("documents create: %w", err)
	}
	if created.ID == "" {
		return nil, &apierror.Error{Message: "create returned no document id"}
	}

	return s.Get(ctx, created.ID, GetOptions{IncludeContent: true})
}

// UpdateRequest modifies a document's content.
type UpdateRequest struct {
	// Operation is one of replace, append, or prepend.
	Operation string   `json:"operation"`
	Content   string   `json:"content"`
	Title     string   `json:"title,omitempty"`
	Tags      []string `json:"tags,omitempty"`
}

// Validate checks the request before it is sent.
func (r UpdateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Operation, validation.Required,
			validation.In(OpReplace, OpAppend, OpPrepend)),
	)
}

// Update applies a content operation and returns the new version number.
func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (int, error) {
	if id == "" {
		return 0, apierror.NewValidation("document id is required")
	}
	if err := req.Validate(); err != nil {
		return 0, &apierror.ValidationError{Message: err.Error()}
	}

	var resp struct {
		Version int `json:"version"`
	}
	path := fmt.Sprintf("/api/documents/%s", url.PathEscape(id))
	if err := s.client.Do(ctx, http.MethodPatch, path, nil, req, &resp); err != nil {
		return 0, fmt.Errorf("documents update: %w", err)
	}
	return resp.Version, nil
}

// Delete removes a document.
func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apierror.NewValidation("document id is required")
	}
	path := fmt.Sprintf("/api/documents/%s", url.PathEscape(id))
	if err := s.client.Do(ctx, http.MethodDelete, path, nil, nil, nil); err != nil {
		return fmt.Errorf("documents delete: %w", err)
	}
	return nil
}

// ListVersions returns the ordered version descriptors for a document. Each
// version's full content is fetched separately with GetVersion.
func (s *Service) ListVersions(ctx context.Context, id string) ([]models.DocumentVersion, error) {
	result, err := s.Get(ctx, id, GetOptions{IncludeVersions: true})
	if err != nil {
		return nil, err
	}
	return result.Versions, nil
}

// GetVersion fetches a specific document version with full content.
func (s *Service) GetVersion(ctx context.Context, id string, version int) (*models.DocumentWithContent, error) {
	if id == "" {
		return nil, apierror.NewValidation("document id is required")
	}

	var result models.DocumentWithContent
	path := fmt.Sprintf("/api/documents/%s/versions/%d", url.PathEscape(id), version)
	if err := s.client.Do(ctx, http.MethodGet, path, nil, nil, &result); err != nil {
		return nil, fmt.Errorf("documents get version: %w", err)
	}
	return &result, nil
}
