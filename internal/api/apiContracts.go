package api

import "github.com/manotham-cc/RAG-Orchestrator/internal/domain/commonModels"

type HealthResponse struct {
	Status  string `json:"status" example:"healthy"`
	Service string `json:"service" example:"rag-orchestrator-api"`
}

type RootResponse struct {
	Message string `json:"message"`
	Docs    string `json:"docs"`
	Status  string `json:"status"`
}

type CollectionCreateRequest struct {
	Name         string `json:"name" example:"docs"`
	VectorSize   uint64 `json:"vector_size" example:"1024"`
	DistanceMode string `json:"distance_mode" example:"cosine"`
}

type CollectionCountResponse struct {
	Collection  string `json:"collection"`
	PointsCount uint64 `json:"points_count"`
}

type MessageResponse struct {
	Status  string `json:"status" example:"success"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Detail string `json:"detail"`
}

type SearchRequest struct {
	CollectionName string  `json:"collection_name"`
	Query          string  `json:"query"`
	Limit          int     `json:"limit"`
	ScoreThreshold float32 `json:"score_threshold"`
	AskAI          bool    `json:"ask_ai"`
}

type FilterSearchRequest struct {
	CollectionName string  `json:"collection_name"`
	Query          string  `json:"query"`
	FilterKey      string  `json:"filter_key"`
	FilterValue    string  `json:"filter_value"`
	Limit          int     `json:"limit"`
	ScoreThreshold float32 `json:"score_threshold"`
	AskAI          bool    `json:"ask_ai"`
}

// Answer stays null unless ask_ai was requested.
type SearchResponse struct {
	Results []commonModels.SearchHit `json:"results"`
	Answer  *string                  `json:"answer"`
}

// IngestEvent is one line of the NDJSON progress stream. Intermediate events
// carry only Status; the terminal error event adds Message.
type IngestEvent struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// IngestSummary is the terminal success line of the stream and the whole
// body of a synchronous ingestion response.
type IngestSummary struct {
	Status      string `json:"status"`
	Filename    string `json:"filename"`
	ChunksCount int    `json:"chunks_count"`
	Collection  string `json:"collection"`
}
