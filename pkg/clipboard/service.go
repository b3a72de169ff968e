// Package clipboard provides key-value and stack-style persistent entry
// storage, proxied to the remote API with client-side guardrails on TTL and
// payload size.
package clipboard

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/memexlabs/memex-go/pkg/apierror"
	"github.com/memexlabs/memex-go/pkg/models"
	"github.com/memexlabs/memex-go/pkg/transport"
)

const (
	// MaxTTLSeconds is the one-year ceiling on entry expiry.
	MaxTTLSeconds = 365 * 24 * 60 * 60

	// MaxValueBytes is the ceiling on an entry's encoded payload size.
	MaxValueBytes = 2 << 20 // 2 MiB

	// DefaultLimit and DefaultOffset are substituted in list results only
	// when the server omits the field entirely.
	DefaultLimit  = 50
	DefaultOffset = 0
)

// emptyStackMarkers are the known error-text fragments the backend emits for
// a pop on an empty stack. Matching English error text is fragile, but the
// backend has no dedicated status code for this case yet; when it grows one,
// this list goes away.
var emptyStackMarkers = []string{
	"empty",
	"no indexed entries",
}

// Service proxies clipboard operations to the remote API.
type Service struct {
	client *transport.Client
	logger hclog.Logger
}

// NewService creates a clipboard service. A nil logger disables logging.
func NewService(client *transport.Client, logger hclog.Logger) *Service {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Service{
		client: client,
		logger: logger.Named("clipboard"),
	}
}

// entryEnvelope is the wire envelope for single-entry responses.
type entryEnvelope struct {
	Success bool                   `json:"success"`
	Entry   *models.ClipboardEntry `json:"entry"`
	Error   string                 `json:"error,omitempty"`
}

// ListOptions filter and paginate List.
type ListOptions struct {
	Name        *string
	Index       *int
	ContentType *string
	Limit       *int
	Offset      *int
}

// ListResult is the normalized result of List. Limit and Offset reflect the
// server's values; defaults apply only when the server omitted the field.
type ListResult struct {
	Entries []models.ClipboardEntry
	Total   int
	Limit   int
	Offset  int
}

// List returns clipboard entries matching opts.
func (s *Service) List(ctx context.Context, opts ListOptions) (*ListResult, error) {
	query := url.Values{}
	if opts.Name != nil {
		query.Set("name", *opts.Name)
	}
	if opts.Index != nil {
		query.Set("idx", strconv.Itoa(*opts.Index))
	}
	if opts.ContentType != nil {
		query.Set("contentType", *opts.ContentType)
	}
	if opts.Limit != nil {
		query.Set("limit", strconv.Itoa(*opts.Limit))
	}
	if opts.Offset != nil {
		query.Set("offset", strconv.Itoa(*opts.Offset))
	}

	// Pointer fields distinguish a server-sent zero from an omitted field;
	// literal zeros must be preserved, not replaced with defaults.
	var resp struct {
		Success bool                    `json:"success"`
		Entries []models.ClipboardEntry `json:"entries"`
		Total   *int                    `json:"total"`
		Limit   *int                    `json:"limit"`
		Offset  *int                    `json:"offset"`
		Error   string                  `json:"error,omitempty"`
	}
	if err := s.client.Do(ctx, http.MethodGet, "/api/clipboard", query, nil, &resp); err != nil {
		return nil, fmt.Errorf("clipboard list: %w", err)
	}
	if !resp.Success && resp.Error != "" {
		return nil, &apierror.Error{Message: resp.Error}
	}

	result := &ListResult{
		Entries: resp.Entries,
		Total:   len(resp.Entries),
		Limit:   DefaultLimit,
		Offset:  DefaultOffset,
	}
	if resp.Total != nil {
		result.Total = *resp.Total
	}
	if resp.Limit != nil {
		result.Limit = *resp.Limit
	}
	if resp.Offset != nil {
		result.Offset = *resp.Offset
	}
	for i := range result.Entries {
		result.Entries[i].Normalize()
	}
	return result, nil
}

// GetOptions locate an entry by exactly one of Name or Index.
type GetOptions struct {
	Name  *string
	Index *int
}

// Get fetches one entry. Exactly one locator must be set; violations are
// reported locally without a network call.
func (s *Service) Get(ctx context.Context, opts GetOptions) (*models.ClipboardEntry, error) {
	if opts.Name == nil && opts.Index == nil {
		return nil, apierror.NewValidation("must provide one of name or idx")
	}
	if opts.Name != nil && opts.Index != nil {
		return nil, apierror.NewValidation("only one of name or idx allowed")
	}

	query := url.Values{}
	if opts.Name != nil {
		query.Set("name", *opts.Name)
	}
	if opts.Index != nil {
		query.Set("idx", strconv.Itoa(*opts.Index))
	}

	var resp entryEnvelope
	if err := s.client.Do(ctx, http.MethodGet, "/api/clipboard", query, nil, &resp); err != nil {
		return nil, fmt.Errorf("clipboard get: %w", err)
	}
	if !resp.Success || resp.Entry == nil {
		msg := resp.Error
		if msg == "" {
			msg = "no matching clipboard entry"
		}
		return nil, &apierror.NotFoundError{Message: msg}
	}
	resp.Entry.Normalize()
	return resp.Entry, nil
}

// GetByName fetches the entry stored under name.
func (s *Service) GetByName(ctx context.Context, name string) (*models.ClipboardEntry, error) {
	return s.Get(ctx, GetOptions{Name: &name})
}

// GetByIndex fetches the entry at stack position idx.
func (s *Service) GetByIndex(ctx context.Context, idx int) (*models.ClipboardEntry, error) {
	return s.Get(ctx, GetOptions{Index: &idx})
}

// Set upserts an entry by name or sets a stack position by idx. The outgoing
// payload is always tagged source=sdk regardless of caller input.
func (s *Service) Set(ctx context.Context, req SetRequest) (*models.ClipboardEntry, error) {
	if req.Name == nil && req.Index == nil {
		return nil, apierror.NewValidation("must provide one of name or idx")
	}
	if err := req.validate(); err != nil {
		return nil, err
	}
	req.Source = models.SourceSDK

	var resp entryEnvelope
	if err := s.client.Do(ctx, http.MethodPost, "/api/clipboard", nil, req, &resp); err != nil {
		return nil, fmt.Errorf("clipboard set: %w", err)
	}
	if !resp.Success {
		msg := resp.Error
		if msg == "" {
			msg = "clipboard set failed"
		}
		return nil, &apierror.Error{Message: msg}
	}
	if resp.Entry != nil {
		resp.Entry.Normalize()
	}
	return resp.Entry, nil
}

// Push appends an entry to the index-addressed stack. The server assigns the
// index; validation and source-forcing match Set.
func (s *Service) Push(ctx context.Context, req PushRequest) (*models.ClipboardEntry, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	req.Source = models.SourceSDK

	var resp entryEnvelope
	if err := s.client.Do(ctx, http.MethodPost, "/api/clipboard/push", nil, req, &resp); err != nil {
		return nil, fmt.Errorf("clipboard push: %w", err)
	}
	if !resp.Success {
		msg := resp.Error
		if msg == "" {
			msg = "clipboard push failed"
		}
		return nil, &apierror.Error{Message: msg}
	}
	if resp.Entry != nil {
		resp.Entry.Normalize()
	}
	return resp.Entry, nil
}

// Pop removes and returns the highest-index entry. An empty stack returns
// (nil, nil), never an error. The backend signals emptiness inconsistently:
// a successful response with no entry, an error whose text contains an
// empty-stack marker, or a plain not-found.
func (s *Service) Pop(ctx context.Context) (*models.ClipboardEntry, error) {
	var resp entryEnvelope
	if err := s.client.Do(ctx, http.MethodPost, "/api/clipboard/pop", nil, nil, &resp); err != nil {
		if apierror.IsNotFound(err) {
			return nil, nil
		}
		if isEmptyStackMessage(err.Error()) {
			return nil, nil
		}
		return nil, fmt.Errorf("clipboard pop: %w", err)
	}
	if !resp.Success {
		if isEmptyStackMessage(resp.Error) {
			return nil, nil
		}
		msg := resp.Error
		if msg == "" {
			msg = "clipboard pop failed"
		}
		return nil, &apierror.Error{Message: msg}
	}
	if resp.Entry == nil {
		return nil, nil
	}
	resp.Entry.Normalize()
	return resp.Entry, nil
}

func isEmptyStackMessage(msg string) bool {
	if msg == "" {
		return false
	}
	lower := strings.ToLower(msg)
	for _, marker := range emptyStackMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// DeleteOptions select what Delete removes. Exactly one selector must be set.
type DeleteOptions struct {
	Name     *string
	Index    *int
	ClearAll bool
}

// Delete removes one entry by name or idx, or everything with ClearAll.
// Zero selectors is a usage error; more than one is a validation error.
func (s *Service) Delete(ctx context.Context, opts DeleteOptions) error {
	selected := 0
	if opts.Name != nil {
		selected++
	}
	if opts.Index != nil {
		selected++
	}
	if opts.ClearAll {
		selected++
	}
	switch {
	case selected == 0:
		return apierror.NewValidation("must provide one of name, idx, or clearAll")
	case selected > 1:
		return apierror.NewValidation("only one of name, idx, or clearAll allowed, got %d", selected)
	}

	query := url.Values{}
	if opts.Name != nil {
		query.Set("name", *opts.Name)
	}
	if opts.Index != nil {
		query.Set("idx", strconv.Itoa(*opts.Index))
	}
	if opts.ClearAll {
		query.Set("clearAll", "true")
	}

	var resp struct {
		Success bool   `json:"success"`
		Error   string `json:"error,omitempty"`
	}
	if err := s.client.Do(ctx, http.MethodDelete, "/api/clipboard", query, nil, &resp); err != nil {
		return fmt.Errorf("clipboard delete: %w", err)
	}
	if !resp.Success {
		msg := resp.Error
		if msg == "" {
			msg = "clipboard delete failed"
		}
		return &apierror.Error{Message: msg}
	}
	return nil
}

// ClearAll removes every entry. Sugar for Delete with ClearAll set.
func (s *Service) ClearAll(ctx context.Context) error {
	return s.Delete(ctx, DeleteOptions{ClearAll: true})
}
