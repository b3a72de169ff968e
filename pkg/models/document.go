// Package models defines the wire-format records exchanged with the Memex
// API. Entities are immutable value snapshots returned by the server; the
// client never caches or mutates them.
package models

// Provenance records how a document was created.
type Provenance string

const (
	ProvenanceUpload      Provenance = "upload"
	ProvenanceAIGenerated Provenance = "ai_generated"
	ProvenanceAPI         Provenance = "api"
)

// Visibility controls who can read an entity.
type Visibility string

const (
	VisibilityPrivate   Visibility = "private"
	VisibilityWorkspace Visibility = "workspace"
	VisibilityPublic    Visibility = "public"
)

// Encoding tags how a content or value payload is encoded on the wire.
type Encoding string

const (
	EncodingUTF8   Encoding = "utf-8"
	EncodingBase64 Encoding = "base64"
	EncodingHex    Encoding = "hex"
)

// ModelAttribution records a single model's contribution to a document.
type ModelAttribution struct {
	Model        string    `json:"model"`
	Provider     string    `json:"provider,omitempty"`
	Contribution string    `json:"contribution,omitempty"`
	Timestamp    Timestamp `json:"timestamp,omitempty"`
}

// AIMetadata carries attribution metadata for AI-generated documents.
type AIMetadata struct {
	Model       string  `json:"model,omitempty"`
	Provider    string  `json:"provider,omitempty"`
	Prompt      string  `json:"prompt,omitempty"`
	Temperature float64 `json:"temperature,omitempty"`
}

// Document is a document record as returned by the server. Version increases
// monotonically server-side; the client never computes it.
type Document struct {
	ID           string             `json:"id"`
	Title        string             `json:"title"`
	FileName     string             `json:"fileName,omitempty"`
	FileSize     int64              `json:"fileSize,omitempty"`
	MimeType     string             `json:"mimeType,omitempty"`
	Tags         []string           `json:"tags,omitempty"`
	Provenance   Provenance         `json:"provenance,omitempty"`
	Visibility   Visibility         `json:"visibility,omitempty"`
	Version      int                `json:"version"`
	CreatedAt    Timestamp          `json:"createdAt"`
	UpdatedAt    Timestamp          `json:"updatedAt"`
	AIMetadata   *AIMetadata        `json:"aiMetadata,omitempty"`
	Attributions []ModelAttribution `json:"modelAttributions,omitempty"`
}

// DocumentWithContent extends Document with the raw content payload and its
// encoding tag.
type DocumentWithContent struct {
	Document
	Content         string   `json:"content"`
	ContentEncoding Encoding `json:"contentEncoding,omitempty"`
}

// DocumentVersion describes one entry in a document's version history. The
// full content of a version is fetched separately by number.
type DocumentVersion struct {
	Version   int       `json:"version"`
	CreatedAt Timestamp `json:"createdAt"`
	Summary   string    `json:"summary,omitempty"`
	SizeBytes int64     `json:"sizeBytes,omitempty"`
}

// SearchResult is a read-only projection of a Document plus relevance data.
// Never persisted client-side.
type SearchResult struct {
	Document Document `json:"document"`
	Score    float64  `json:"score"`
	Snippet  string   `json:"snippet,omitempty"`
}
