package ingest

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/manotham-cc/RAG-Orchestrator/internal/api"
	"github.com/manotham-cc/RAG-Orchestrator/internal/domain/commonModels"
	"github.com/manotham-cc/RAG-Orchestrator/internal/domain/ragerr"
)

// --- Mocks ---

type mockParser struct {
	convertFunc func(path string) (string, error)
	lastPath    string
}

func (m *mockParser) Convert(path string) (string, error) {
	m.lastPath = path
	return m.convertFunc(path)
}

type mockEmbedder struct {
	batchFunc func(ctx context.Context, chunks []string) ([][]float32, error)
}

func (m *mockEmbedder) GetEmbedding(ctx context.Context, query string) ([]float32, error) {
	return []float32{0.1}, nil
}

func (m *mockEmbedder) BatchEmbedding(ctx context.Context, chunks []string) ([][]float32, error) {
	if m.batchFunc != nil {
		return m.batchFunc(ctx, chunks)
	}
	return make([][]float32, len(chunks)), nil
}

type mockStore struct {
	upsertFunc     func(ctx context.Context, collection string, vectors [][]float32, payloads []map[string]any) error
	upsertPayloads []map[string]any
}

func (m *mockStore) ListCollections(ctx context.Context) []commonModels.CollectionInfo {
	return nil
}
func (m *mockStore) CreateCollection(ctx context.Context, name string, size uint64, mode string) error {
	return nil
}
func (m *mockStore) Upsert(ctx context.Context, collection string, vectors [][]float32, payloads []map[string]any) error {
	m.upsertPayloads = payloads
	if m.upsertFunc != nil {
		return m.upsertFunc(ctx, collection, vectors, payloads)
	}
	return nil
}
func (m *mockStore) SearchSimilarity(ctx context.Context, c string, v []float32, l uint64, s float32) []commonModels.SearchHit {
	return nil
}
func (m *mockStore) SearchWithFilter(ctx context.Context, c string, v []float32, k, val string, l uint64, s float32) []commonModels.SearchHit {
	return nil
}
func (m *mockStore) ListAvailableFilters(ctx context.Context, c string) []commonModels.FacetValue {
	return nil
}

// --- Tests ---

func TestProcessDocument_Success(t *testing.T) {
	p := &mockParser{convertFunc: func(string) (string, error) { return "some parsed document text", nil }}
	s := NewService(p, &mockEmbedder{}, &mockStore{})

	summary, err := s.ProcessDocument(context.Background(), "manual.pdf", strings.NewReader("raw bytes"), "docs", "PDF", nil)
	if err != nil {
		t.Fatalf("ProcessDocument failed: %v", err)
	}

	if summary.Status != "success" || summary.Filename != "manual.pdf" || summary.Collection != "docs" {
		t.Errorf("summary wrong: %+v", summary)
	}
	if summary.ChunksCount != 1 {
		t.Errorf("expected 1 chunk, got %d", summary.ChunksCount)
	}
}

func TestProcessDocument_StageOrder(t *testing.T) {
	p := &mockParser{convertFunc: func(string) (string, error) { return "text to ingest", nil }}
	s := NewService(p, &mockEmbedder{}, &mockStore{})

	var stages []string
	progress := func(ev api.IngestEvent) { stages = append(stages, ev.Status) }

	if _, err := s.ProcessDocument(context.Background(), "a.txt", strings.NewReader("x"), "docs", "TXT", progress); err != nil {
		t.Fatalf("ProcessDocument failed: %v", err)
	}

	want := []string{StageParsing, StageChunking, StageEmbedding, StagePreparing, StageUpserting}
	if len(stages) != len(want) {
		t.Fatalf("got stages %v, want %v", stages, want)
	}
	for i := range want {
		if stages[i] != want[i] {
			t.Errorf("stage %d = %s, want %s", i, stages[i], want[i])
		}
	}
}

func TestProcessDocument_SyncAndStreamAgree(t *testing.T) {
	p := &mockParser{convertFunc: func(string) (string, error) { return strings.Repeat("same words ", 20), nil }}
	s := NewService(p, &mockEmbedder{}, &mockStore{})

	silent, err := s.ProcessDocument(context.Background(), "a.txt", strings.NewReader("x"), "docs", "TXT", nil)
	if err != nil {
		t.Fatal(err)
	}
	streamed, err := s.ProcessDocument(context.Background(), "a.txt", strings.NewReader("x"), "docs", "TXT", func(api.IngestEvent) {})
	if err != nil {
		t.Fatal(err)
	}

	if *silent != *streamed {
		t.Errorf("modes disagree: %+v vs %+v", silent, streamed)
	}
}

func TestProcessDocument_ParseFailure(t *testing.T) {
	p := &mockParser{convertFunc: func(string) (string, error) { return "", errors.New("garbled pdf") }}
	s := NewService(p, &mockEmbedder{}, &mockStore{})

	_, err := s.ProcessDocument(context.Background(), "bad.pdf", strings.NewReader("x"), "docs", "PDF", nil)
	var parseErr *ragerr.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
}

func TestProcessDocument_EmptyContentIsParseFailure(t *testing.T) {
	p := &mockParser{convertFunc: func(string) (string, error) { return "   \n  ", nil }}
	s := NewService(p, &mockEmbedder{}, &mockStore{})

	_, err := s.ProcessDocument(context.Background(), "empty.txt", strings.NewReader("x"), "docs", "TXT", nil)
	var parseErr *ragerr.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError for empty content, got %v", err)
	}
}

func TestProcessDocument_EmbeddingFailureAborts(t *testing.T) {
	p := &mockParser{convertFunc: func(string) (string, error) { return "text", nil }}
	e := &mockEmbedder{batchFunc: func(ctx context.Context, chunks []string) ([][]float32, error) {
		return nil, errors.New("api limit")
	}}
	store := &mockStore{}
	s := NewService(p, e, store)

	_, err := s.ProcessDocument(context.Background(), "a.txt", strings.NewReader("x"), "docs", "TXT", nil)
	var embErr *ragerr.EmbeddingError
	if !errors.As(err, &embErr) {
		t.Fatalf("expected EmbeddingError, got %v", err)
	}
	if store.upsertPayloads != nil {
		t.Error("upsert must not run after an embedding failure")
	}
}

func TestProcessDocument_UpsertFailureSurfaces(t *testing.T) {
	p := &mockParser{convertFunc: func(string) (string, error) { return "text", nil }}
	store := &mockStore{upsertFunc: func(ctx context.Context, c string, v [][]float32, pl []map[string]any) error {
		return &ragerr.StoreError{Op: "upsert", Collection: c, Err: errors.New("disk full")}
	}}
	s := NewService(p, &mockEmbedder{}, store)

	_, err := s.ProcessDocument(context.Background(), "a.txt", strings.NewReader("x"), "docs", "TXT", nil)
	var storeErr *ragerr.StoreError
	if !errors.As(err, &storeErr) {
		t.Fatalf("expected StoreError, got %v", err)
	}
}

func TestProcessDocument_PayloadsIndexAligned(t *testing.T) {
	longText := strings.TrimSpace(strings.Repeat("word ", 400))
	p := &mockParser{convertFunc: func(string) (string, error) { return longText, nil }}
	store := &mockStore{}
	s := NewService(p, &mockEmbedder{}, store)

	summary, err := s.ProcessDocument(context.Background(), "big.txt", strings.NewReader("x"), "docs", "TXT", nil)
	if err != nil {
		t.Fatal(err)
	}
	if summary.ChunksCount != len(store.upsertPayloads) {
		t.Fatalf("payload count %d != chunk count %d", len(store.upsertPayloads), summary.ChunksCount)
	}
	for i, payload := range store.upsertPayloads {
		if payload["chunk_index"] != i {
			t.Errorf("payload %d has chunk_index %v", i, payload["chunk_index"])
		}
		if payload["source"] != "big.txt" || payload["type"] != "TXT" {
			t.Errorf("payload %d metadata wrong: %+v", i, payload)
		}
	}
}

func TestProcessDocument_TransientFileRemoved(t *testing.T) {
	p := &mockParser{convertFunc: func(string) (string, error) { return "", errors.New("boom") }}
	s := NewService(p, &mockEmbedder{}, &mockStore{})

	_, _ = s.ProcessDocument(context.Background(), "a.txt", strings.NewReader("x"), "docs", "TXT", nil)

	if p.lastPath == "" {
		t.Fatal("parser never saw the transient file")
	}
	if _, err := os.Stat(p.lastPath); err == nil {
		t.Errorf("transient file %s still exists after failure", p.lastPath)
	}
}
