package ingest

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/manotham-cc/RAG-Orchestrator/internal/api"
	"github.com/manotham-cc/RAG-Orchestrator/internal/config"
	"github.com/manotham-cc/RAG-Orchestrator/internal/domain/ragerr"
	"github.com/manotham-cc/RAG-Orchestrator/internal/metrics"
	"github.com/manotham-cc/RAG-Orchestrator/internal/rag/embedding"
	"github.com/manotham-cc/RAG-Orchestrator/internal/rag/parser"
	"github.com/manotham-cc/RAG-Orchestrator/internal/rag/vectorDB"
	"github.com/manotham-cc/RAG-Orchestrator/pkg/logger_i"
)

// ProgressFunc receives one event per pipeline stage. A nil sink turns the
// pipeline into the plain synchronous mode - same steps, same result.
type ProgressFunc func(event api.IngestEvent)

const (
	StageParsing   = "parsing"
	StageChunking  = "chunking"
	StageEmbedding = "embedding"
	StagePreparing = "preparing"
	StageUpserting = "upserting"
)

type Service struct {
	parser   parser.Converter
	embedder embedding.Embedder
	store    vectorDB.Store
	logger   *logger_i.Logger
}

func NewService(p parser.Converter, e embedding.Embedder, store vectorDB.Store) *Service {
	return &Service{
		parser:   p,
		embedder: e,
		store:    store,
		logger:   logger_i.NewLogger("Ingestion"),
	}
}

// ProcessDocument runs the full ingestion pipeline:
// persist upload -> parse -> chunk -> embed -> build payloads -> upsert.
// The transient file is removed on every exit path. Vectors and payloads stay
// index aligned with chunk order throughout. A failure at any stage aborts
// the remaining stages and is returned typed (ParseError, EmbeddingError,
// StoreError) so the caller can report the failing stage.
func (s *Service) ProcessDocument(ctx context.Context, filename string, content io.Reader, collection string, docType string, progress ProgressFunc) (*api.IngestSummary, error) {
	log := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "filename", filename, "collection", collection)

	tmpPath, err := saveUpload(filename, content)
	if err != nil {
		log.Error("Could not persist upload", "error", err)
		return nil, err
	}
	defer func() {
		if err := os.Remove(tmpPath); err != nil {
			log.Error("Error removing transient upload", "path", tmpPath, "error", err)
		}
	}()

	emit(progress, StageParsing)
	text, err := s.parseStep(tmpPath)
	if err != nil {
		log.Error("Parsing failed", "error", err)
		return nil, &ragerr.ParseError{Filename: filename, Err: err}
	}

	emit(progress, StageChunking)
	chunks := SplitText(text)
	if len(chunks) == 0 {
		return nil, &ragerr.ParseError{Filename: filename, Err: fmt.Errorf("document produced no chunks")}
	}
	log.Debug("Chunked document", "chunks", len(chunks))

	emit(progress, StageEmbedding)
	vectors, err := s.embedStep(ctx, chunks)
	if err != nil {
		log.Error("Embedding failed", "error", err)
		return nil, &ragerr.EmbeddingError{Err: err}
	}
	if len(vectors) != len(chunks) {
		return nil, &ragerr.EmbeddingError{
			Err: fmt.Errorf("got %d vectors for %d chunks", len(vectors), len(chunks)),
		}
	}

	emit(progress, StagePreparing)
	payloads := make([]map[string]any, len(chunks))
	for i, chunk := range chunks {
		payloads[i] = BuildPayload(chunk, filename, i, docType, nil)
	}

	emit(progress, StageUpserting)
	if err := s.upsertStep(ctx, collection, vectors, payloads); err != nil {
		log.Error("Upsert failed", "error", err)
		return nil, err
	}
	metrics.CountIngestedChunks(len(chunks))

	log.Info("Document ingested", "chunks", len(chunks))
	return &api.IngestSummary{
		Status:      "success",
		Filename:    filename,
		ChunksCount: len(chunks),
		Collection:  collection,
	}, nil
}

func emit(progress ProgressFunc, stage string) {
	if progress != nil {
		progress(api.IngestEvent{Status: stage})
	}
}

// saveUpload copies the upload into a transient file next to nothing the
// parser could clash with. The extension is preserved because the parser
// dispatches on it.
func saveUpload(filename string, content io.Reader) (string, error) {
	tmp, err := os.CreateTemp("", "upload-*"+filepath.Ext(filename))
	if err != nil {
		return "", fmt.Errorf("could not create transient file: %w", err)
	}
	if _, err := io.Copy(tmp, content); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("could not write transient file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return tmp.Name(), nil
}

func (s *Service) parseStep(path string) (string, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("document_parse", time.Since(start)) }()

	text, err := s.parser.Convert(path)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("converter produced no content")
	}
	return text, nil
}

func (s *Service) embedStep(ctx context.Context, chunks []string) ([][]float32, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("embedding", time.Since(start)) }()

	return s.embedder.BatchEmbedding(ctx, chunks)
}

func (s *Service) upsertStep(ctx context.Context, collection string, vectors [][]float32, payloads []map[string]any) error {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("vector_upsert", time.Since(start)) }()

	return s.store.Upsert(ctx, collection, vectors, payloads)
}

// InferDocType resolves the document-type label: explicit value wins, then
// the uppercased extension, then UNKNOWN.
func InferDocType(explicit string, filename string) string {
	if explicit != "" {
		return explicit
	}
	ext := strings.TrimPrefix(filepath.Ext(filename), ".")
	if ext == "" {
		return "UNKNOWN"
	}
	return strings.ToUpper(ext)
}
