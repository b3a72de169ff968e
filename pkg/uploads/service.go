// Package uploads creates AI-generated documents. Direct binary upload was
// removed from the backend contract; the binary, batch, and status-polling
// entry points remain only for call-site compatibility and always fail with
// an explicit unsupported error.
package uploads

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/hashicorp/go-hclog"

	"github.com/memexlabs/memex-go/pkg/apierror"
	"github.com/memexlabs/memex-go/pkg/models"
	"github.com/memexlabs/memex-go/pkg/transport"
)

// Service proxies document creation to the remote API.
type Service struct {
	client *transport.Client
	logger hclog.Logger
}

// NewService creates an upload service. A nil logger disables logging.
func NewService(client *transport.Client, logger hclog.Logger) *Service {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Service{
		client: client,
		logger: logger.Named("uploads"),
	}
}

// AIDocumentRequest is the payload for creating an AI-generated document.
type AIDocumentRequest struct {
	Title           string                    `json:"title"`
	Content         string                    `json:"content"`
	ContentEncoding models.Encoding           `json:"contentEncoding,omitempty"`
	Tags            []string                  `json:"tags,omitempty"`
	Visibility      models.Visibility         `json:"visibility,omitempty"`
	AIMetadata      *models.AIMetadata        `json:"aiMetadata,omitempty"`
	Attributions    []models.ModelAttribution `json:"modelAttributions,omitempty"`
}

// Validate checks the request before it is sent.
func (r AIDocumentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required),
		validation.Field(&r.Content, validation.Required),
	)
}

// CreateAIDocument submits a generation request, then fetches the full
// record for the returned identifier so the caller gets a fully populated
// document.
func (s *Service) CreateAIDocument(ctx context.Context, req AIDocumentRequest) (*models.DocumentWithContent, error) {
	if err := req.Validate(); err != nil {
		return nil, &apierror.ValidationError{Message: err.Error()}
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := s.client.Do(ctx, http.MethodPost, "/api/documents/ai", nil, req, &created); err != nil {
		return nil, fmt.Errorf("create ai document: %w", err)
	}
	if created.ID == "" {
		return nil, &apierror.Error{Message: "create returned no document id"}
	}

	query := url.Values{}
	query.Set("content", "true")

	var doc models.DocumentWithContent
	path := fmt.Sprintf("/api/documents/%s", url.PathEscape(created.ID))
	if err := s.client.Do(ctx, http.MethodGet, path, query, nil, &doc); err != nil {
		return nil, fmt.Errorf("fetch created document: %w", err)
	}
	return &doc, nil
}

// errUnsupported is returned by the removed upload paths. No network call is
// made; the backend no longer accepts direct binary uploads.
func errUnsupported(op string) error {
	return &apierror.Error{
		Message: fmt.Sprintf("%s is no longer supported; use CreateAIDocument instead", op),
	}
}

// UploadFile is no longer supported.
func (s *Service) UploadFile(_ context.Context, _ string, _ []byte) (*models.Document, error) {
	return nil, errUnsupported("direct binary upload")
}

// UploadBatch is no longer supported.
func (s *Service) UploadBatch(_ context.Context, _ map[string][]byte) ([]models.Document, error) {
	return nil, errUnsupported("batch upload")
}

// GetUploadStatus is no longer supported.
func (s *Service) GetUploadStatus(_ context.Context, _ string) (string, error) {
	return "", errUnsupported("upload status polling")
}
