package models

// Source records the channel a clipboard entry was created through, for
// audit purposes.
type Source string

const (
	SourceUI  Source = "ui"
	SourceSDK Source = "sdk"
	SourceMCP Source = "mcp"
)

// Attribution identifies the tool or model that created an entry.
type Attribution struct {
	Tool  string `json:"tool,omitempty"`
	Model string `json:"model,omitempty"`
}

// ClipboardEntry is a persisted key-value or stack-positioned value blob.
// Every entry is addressable by exactly the locator style under which it was
// created: a semantic Name (key-value mode) or an integer Index (stack mode).
type ClipboardEntry struct {
	ID          string       `json:"id"`
	Name        *string      `json:"name"`
	Index       *int         `json:"idx"`
	Value       string       `json:"value"`
	ContentType string       `json:"contentType,omitempty"`
	Encoding    Encoding     `json:"encoding,omitempty"`
	SizeBytes   int64        `json:"sizeBytes,omitempty"`
	Visibility  Visibility   `json:"visibility,omitempty"`
	CreatedBy   *Attribution `json:"createdBy,omitempty"`
	Source      Source       `json:"source,omitempty"`
	CreatedAt   Timestamp    `json:"createdAt"`
	UpdatedAt   Timestamp    `json:"updatedAt"`
	ExpiresAt   *Timestamp   `json:"expiresAt"`
}

// Normalize fills fields the backend may omit. Entries created before the
// source field existed arrive without one and are attributed to the UI.
func (e *ClipboardEntry) Normalize() {
	if e.Source == "" {
		e.Source = SourceUI
	}
}
