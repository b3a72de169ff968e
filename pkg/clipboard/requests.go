package clipboard

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/memexlabs/memex-go/pkg/apierror"
	"github.com/memexlabs/memex-go/pkg/models"
)

// SetRequest upserts an entry by Name or sets a stack position by Index.
// Source is overwritten with sdk before the request is sent.
type SetRequest struct {
	Name        *string             `json:"name,omitempty"`
	Index       *int                `json:"idx,omitempty"`
	Value       string              `json:"value"`
	ContentType string              `json:"contentType,omitempty"`
	Encoding    models.Encoding     `json:"encoding,omitempty"`
	Visibility  models.Visibility   `json:"visibility,omitempty"`
	TTLSeconds  *int                `json:"ttlSeconds,omitempty"`
	CreatedBy   *models.Attribution `json:"createdBy,omitempty"`
	Source      models.Source       `json:"source,omitempty"`
}

func (r SetRequest) validate() error {
	return validateMutation(r.Value, r.TTLSeconds)
}

// PushRequest appends an entry to the stack; the server assigns the index.
type PushRequest struct {
	Value       string              `json:"value"`
	ContentType string              `json:"contentType,omitempty"`
	Encoding    models.Encoding     `json:"encoding,omitempty"`
	Visibility  models.Visibility   `json:"visibility,omitempty"`
	TTLSeconds  *int                `json:"ttlSeconds,omitempty"`
	CreatedBy   *models.Attribution `json:"createdBy,omitempty"`
	Source      models.Source       `json:"source,omitempty"`
}

func (r PushRequest) validate() error {
	return validateMutation(r.Value, r.TTLSeconds)
}

// validateMutation enforces the client-side guardrails applied before every
// mutating call: TTL within [0, one year] and encoded payload within 2 MiB.
func validateMutation(value string, ttlSeconds *int) error {
	if ttlSeconds != nil {
		if err := validation.Validate(*ttlSeconds,
			validation.Min(0),
			validation.Max(MaxTTLSeconds),
		); err != nil {
			return apierror.NewValidation("ttlSeconds %v (got %d)", err, *ttlSeconds)
		}
	}
	if size := len(value); size > MaxValueBytes {
		return apierror.NewValidation(
			"value size %d bytes exceeds maximum allowed %d bytes", size, MaxValueBytes)
	}
	return nil
}
