package commonModels

import "time"

// Document is the transient description of an upload, it only lives for the
// duration of one ingestion request.
type Document struct {
	Filename string `json:"filename"`
	DocType  string `json:"doc_type"`
}

type CollectionInfo struct {
	Name        string `json:"name"`
	PointsCount uint64 `json:"points_count"`
	Status      string `json:"status"`
}

// SearchHit is one ranked result, payload carries whatever was stored at
// ingestion time (text, source, chunk_index, type, created_at, extras).
type SearchHit struct {
	ID      string         `json:"id"`
	Score   float32        `json:"score"`
	Payload map[string]any `json:"payload"`
}

type FacetValue struct {
	Name  string `json:"name"`
	Count uint64 `json:"count"`
}

type IngestionRecord struct {
	Filename    string    `json:"filename"`
	Collection  string    `json:"collection"`
	DocType     string    `json:"doc_type"`
	ChunksCount int       `json:"chunks_count"`
	IngestedAt  time.Time `json:"ingested_at"`
}
