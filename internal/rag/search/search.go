package search

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/manotham-cc/RAG-Orchestrator/internal/api"
	"github.com/manotham-cc/RAG-Orchestrator/internal/config"
	"github.com/manotham-cc/RAG-Orchestrator/internal/domain/commonModels"
	"github.com/manotham-cc/RAG-Orchestrator/internal/domain/ragerr"
	"github.com/manotham-cc/RAG-Orchestrator/internal/metrics"
	"github.com/manotham-cc/RAG-Orchestrator/internal/rag/embedding"
	"github.com/manotham-cc/RAG-Orchestrator/internal/rag/llm"
	"github.com/manotham-cc/RAG-Orchestrator/internal/rag/vectorDB"
	"github.com/manotham-cc/RAG-Orchestrator/pkg/logger_i"
)

type Service struct {
	embedder embedding.Embedder
	llm      llm.Provider
	store    vectorDB.Store
	logger   *logger_i.Logger
}

func NewService(e embedding.Embedder, provider llm.Provider, store vectorDB.Store) *Service {
	return &Service{
		embedder: e,
		llm:      provider,
		store:    store,
		logger:   logger_i.NewLogger("Search"),
	}
}

// Search embeds the query and retrieves the closest chunks. With AskAI set,
// the hits are formatted into a context block and handed to the language
// model; an empty result set short-circuits to the fixed no-answer message
// without calling the model.
func (s *Service) Search(ctx context.Context, req api.SearchRequest) (*api.SearchResponse, error) {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "collection", req.CollectionName)

	queryVector, err := s.embedQuery(ctx, req.Query)
	if err != nil {
		log.Error("Query embedding failed", "error", err)
		return nil, &ragerr.EmbeddingError{Err: err}
	}

	start := time.Now()
	hits := s.store.SearchSimilarity(ctx, req.CollectionName, queryVector, uint64(req.Limit), req.ScoreThreshold)
	metrics.CaptureExecutionMetrics("vector_search", time.Since(start))
	log.Debug("Similarity search done", "hits", len(hits))

	return s.buildResponse(ctx, req.Query, hits, req.AskAI), nil
}

// SearchWithFilter behaves like Search but restricts candidates to points
// whose payload field FilterKey equals FilterValue.
func (s *Service) SearchWithFilter(ctx context.Context, req api.FilterSearchRequest) (*api.SearchResponse, error) {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "collection", req.CollectionName, "filterKey", req.FilterKey)

	queryVector, err := s.embedQuery(ctx, req.Query)
	if err != nil {
		log.Error("Query embedding failed", "error", err)
		return nil, &ragerr.EmbeddingError{Err: err}
	}

	start := time.Now()
	hits := s.store.SearchWithFilter(ctx, req.CollectionName, queryVector, req.FilterKey, req.FilterValue, uint64(req.Limit), req.ScoreThreshold)
	metrics.CaptureExecutionMetrics("vector_filter_search", time.Since(start))
	log.Debug("Filtered search done", "hits", len(hits))

	return s.buildResponse(ctx, req.Query, hits, req.AskAI), nil
}

func (s *Service) AvailableFilters(ctx context.Context, collection string) []commonModels.FacetValue {
	return s.store.ListAvailableFilters(ctx, collection)
}

func (s *Service) embedQuery(ctx context.Context, query string) ([]float32, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("query_embedding", time.Since(start)) }()

	return s.embedder.GetEmbedding(ctx, query)
}

func (s *Service) buildResponse(ctx context.Context, query string, hits []commonModels.SearchHit, askAI bool) *api.SearchResponse {
	response := &api.SearchResponse{Results: hits}
	if !askAI {
		return response
	}

	if len(hits) == 0 {
		message := config.NoAnswerMessage
		response.Answer = &message
		return response
	}

	answer := s.generateAnswer(ctx, query, hits)
	response.Answer = &answer
	return response
}

func (s *Service) generateAnswer(ctx context.Context, query string, hits []commonModels.SearchHit) string {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("llm_answer", time.Since(start)) }()

	answer, err := s.llm.Answer(ctx, query, formatContext(hits))
	if err != nil {
		s.logger.Error("Answer generation failed", "error", err)
		return fmt.Sprintf("Error processing answer: %v", err)
	}
	return answer
}

// formatContext renders the retrieved chunks into the block the model is
// prompted with, one attributed section per hit.
func formatContext(hits []commonModels.SearchHit) string {
	sections := make([]string, 0, len(hits))
	for _, hit := range hits {
		source := "Unknown"
		if s, ok := hit.Payload["source"].(string); ok && s != "" {
			source = s
		}
		text, _ := hit.Payload["text"].(string)
		sections = append(sections, fmt.Sprintf("Content (from %s):\n%s", source, text))
	}
	return strings.Join(sections, config.ContextSeparator)
}
