package models

// RagSource describes a source the RAG pipeline used to answer a query.
type RagSource struct {
	DocumentID string  `json:"documentId"`
	Title      string  `json:"title,omitempty"`
	Snippet    string  `json:"snippet,omitempty"`
	Score      float64 `json:"score,omitempty"`
}

// RagResponse is the canonical shape of a RAG query answer. Transient, one
// response per query. DocumentIDs carries unresolved source ids when the
// server did not inline the documents.
type RagResponse struct {
	Answer      string      `json:"answer"`
	Sources     []RagSource `json:"sources,omitempty"`
	DocumentIDs []string    `json:"documentIds,omitempty"`
	Documents   []Document  `json:"documents,omitempty"`
}

// StorageStats reports indexed-document usage for a user.
type StorageStats struct {
	UserID        string    `json:"userId"`
	DocumentCount int       `json:"documentCount"`
	TotalBytes    int64     `json:"totalBytes"`
	IndexedCount  int       `json:"indexedCount,omitempty"`
	UpdatedAt     Timestamp `json:"updatedAt,omitempty"`
}
