// Package rag provides natural-language querying over the indexed document
// set. The endpoint's response shape varies across API generations (plain
// string vs. structured object, camelCase vs. snake_case field names); this
// package normalizes every variant into one canonical response before it
// crosses the service boundary.
package rag

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"reflect"

	"github.com/hashicorp/go-hclog"
	"github.com/iancoleman/strcase"
	"github.com/mitchellh/mapstructure"

	"github.com/memexlabs/memex-go/pkg/apierror"
	"github.com/memexlabs/memex-go/pkg/models"
	"github.com/memexlabs/memex-go/pkg/transport"
)

// DocumentResolver resolves a document id to its full record. Satisfied by
// the documents service; injected so QueryWithSources can inflate id-only
// responses without a package cycle.
type DocumentResolver interface {
	Resolve(ctx context.Context, id string) (*models.Document, error)
}

// Service proxies RAG queries to the remote API.
type Service struct {
	client   *transport.Client
	resolver DocumentResolver
	logger   hclog.Logger
}

// NewService creates a RAG service. resolver may be nil, in which case
// QueryWithSources returns unresolved document ids as-is. A nil logger
// disables logging.
func NewService(client *transport.Client, resolver DocumentResolver, logger hclog.Logger) *Service {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Service{
		client:   client,
		resolver: resolver,
		logger:   logger.Named("rag"),
	}
}

// QueryOptions modify Query behavior.
type QueryOptions struct {
	// IncludeMetadata requests the structured response shape with sources
	// and document references instead of bare answer text.
	IncludeMetadata bool
}

// Query asks a natural-language question and normalizes whichever response
// shape the server returns into a canonical RagResponse.
func (s *Service) Query(ctx context.Context, question string, opts QueryOptions) (*models.RagResponse, error) {
	if question == "" {
		return nil, apierror.NewValidation("query text is required")
	}

	body := map[string]any{
		"query":           question,
		"includeMetadata": opts.IncludeMetadata,
	}

	var raw any
	if err := s.client.Do(ctx, http.MethodPost, "/api/rag/query", nil, body, &raw); err != nil {
		return nil, fmt.Errorf("rag query: %w", err)
	}
	return normalizeResponse(raw)
}

// AskQuestion is Query restricted to answer text. It fails with a typed
// error when the pipeline produced no answer.
func (s *Service) AskQuestion(ctx context.Context, question string) (string, error) {
	resp, err := s.Query(ctx, question, QueryOptions{})
	if err != nil {
		return "", err
	}
	if resp.Answer == "" {
		return "", &apierror.Error{Message: "no answer produced for query"}
	}
	return resp.Answer, nil
}

// QueryWithSources asks with metadata enabled and resolves source documents
// when the server returned only their ids.
func (s *Service) QueryWithSources(ctx context.Context, question string) (*models.RagResponse, error) {
	resp, err := s.Query(ctx, question, QueryOptions{IncludeMetadata: true})
	if err != nil {
		return nil, err
	}

	if len(resp.Documents) == 0 && len(resp.DocumentIDs) > 0 && s.resolver != nil {
		for _, id := range resp.DocumentIDs {
			doc, err := s.resolver.Resolve(ctx, id)
			if err != nil {
				// A source that disappeared between answering and resolving
				// is not a query failure.
				if apierror.IsNotFound(err) {
					continue
				}
				return nil, err
			}
			resp.Documents = append(resp.Documents, *doc)
		}
	}
	return resp, nil
}

// IsAvailable probes RAG availability with a lightweight query. The backend
// guarantees no dedicated health endpoint, so any failure means unavailable.
func (s *Service) IsAvailable(ctx context.Context) bool {
	_, err := s.Query(ctx, "ping", QueryOptions{})
	return err == nil
}

// StorageStats returns indexed-document usage for userID. The endpoint
// requires the identifier; an empty one fails fast before any network call.
func (s *Service) StorageStats(ctx context.Context, userID string) (*models.StorageStats, error) {
	if userID == "" {
		return nil, apierror.NewValidation("user_id is required for storage stats")
	}

	query := url.Values{}
	query.Set("user_id", userID)

	var stats models.StorageStats
	if err := s.client.Do(ctx, http.MethodGet, "/api/rag/storage-stats", query, nil, &stats); err != nil {
		return nil, fmt.Errorf("rag storage stats: %w", err)
	}
	return &stats, nil
}

// ragWire is the superset of field spellings the query endpoint has used.
// Keys are folded to lowerCamel before decoding, so snake_case generations
// land on the same fields.
type ragWire struct {
	Answer      string             `json:"answer"`
	Response    string             `json:"response"`
	Text        string             `json:"text"`
	Sources     []models.RagSource `json:"sources"`
	DocumentIDs []string           `json:"documentIds"`
	Documents   []models.Document  `json:"documents"`
}

// normalizeResponse maps the tagged union of known wire shapes to the one
// canonical response record. Ambiguity never propagates past this function.
func normalizeResponse(raw any) (*models.RagResponse, error) {
	switch v := raw.(type) {
	case nil:
		return &models.RagResponse{}, nil
	case string:
		return &models.RagResponse{Answer: v}, nil
	case map[string]any:
		var wire ragWire
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:           &wire,
			TagName:          "json",
			WeaklyTypedInput: true,
			DecodeHook:       timestampHook,
		})
		if err != nil {
			return nil, fmt.Errorf("rag response decoder: %w", err)
		}
		if err := dec.Decode(foldKeys(v)); err != nil {
			return nil, &apierror.Error{
				Message: fmt.Sprintf("failed to decode rag response: %v", err),
			}
		}

		answer := wire.Answer
		if answer == "" {
			answer = wire.Response
		}
		if answer == "" {
			answer = wire.Text
		}
		return &models.RagResponse{
			Answer:      answer,
			Sources:     wire.Sources,
			DocumentIDs: wire.DocumentIDs,
			Documents:   wire.Documents,
		}, nil
	default:
		return nil, &apierror.Error{
			Message: fmt.Sprintf("unexpected rag response shape %T", raw),
		}
	}
}

// foldKeys recursively rewrites map keys to lowerCamel so documentIds and
// document_ids decode identically.
func foldKeys(m map[string]any) map[string]any {
	folded := make(map[string]any, len(m))
	for k, v := range m {
		if nested, ok := v.(map[string]any); ok {
			v = foldKeys(nested)
		}
		if list, ok := v.([]any); ok {
			for i, item := range list {
				if nested, ok := item.(map[string]any); ok {
					list[i] = foldKeys(nested)
				}
			}
		}
		folded[strcase.ToLowerCamel(k)] = v
	}
	return folded
}

// timestampHook lets mapstructure decode wire date strings into
// models.Timestamp fields nested inside documents and sources.
func timestampHook(from, to reflect.Type, data any) (any, error) {
	if to != reflect.TypeOf(models.Timestamp{}) || from.Kind() != reflect.String {
		return data, nil
	}
	return models.ParseTimestamp(data.(string))
}
