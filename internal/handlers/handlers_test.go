package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/manotham-cc/RAG-Orchestrator/internal/api"
	"github.com/manotham-cc/RAG-Orchestrator/internal/config"
	"github.com/manotham-cc/RAG-Orchestrator/internal/domain/commonModels"
	"github.com/manotham-cc/RAG-Orchestrator/internal/domain/ragerr"
	"github.com/manotham-cc/RAG-Orchestrator/internal/rag/ingest"
)

type mockIngestion struct {
	processFunc func(ctx context.Context, filename string, content io.Reader, collection, docType string, progress ingest.ProgressFunc) (*api.IngestSummary, error)
}

func (m *mockIngestion) ProcessDocument(ctx context.Context, filename string, content io.Reader, collection string, docType string, progress ingest.ProgressFunc) (*api.IngestSummary, error) {
	return m.processFunc(ctx, filename, content, collection, docType, progress)
}

type mockSearch struct {
	searchFunc func(ctx context.Context, req api.SearchRequest) (*api.SearchResponse, error)
	filterFunc func(ctx context.Context, req api.FilterSearchRequest) (*api.SearchResponse, error)
	facets     []commonModels.FacetValue
}

func (m *mockSearch) Search(ctx context.Context, req api.SearchRequest) (*api.SearchResponse, error) {
	return m.searchFunc(ctx, req)
}
func (m *mockSearch) SearchWithFilter(ctx context.Context, req api.FilterSearchRequest) (*api.SearchResponse, error) {
	return m.filterFunc(ctx, req)
}
func (m *mockSearch) AvailableFilters(ctx context.Context, collection string) []commonModels.FacetValue {
	return m.facets
}

type mockVectorStore struct {
	collections []commonModels.CollectionInfo
	createErr   error
	createdName string
	createdSize uint64
	createdMode string
}

func (m *mockVectorStore) ListCollections(ctx context.Context) []commonModels.CollectionInfo {
	return m.collections
}
func (m *mockVectorStore) CreateCollection(ctx context.Context, name string, size uint64, mode string) error {
	m.createdName, m.createdSize, m.createdMode = name, size, mode
	return m.createErr
}
func (m *mockVectorStore) Upsert(ctx context.Context, c string, v [][]float32, p []map[string]any) error {
	return nil
}
func (m *mockVectorStore) SearchSimilarity(ctx context.Context, c string, v []float32, l uint64, s float32) []commonModels.SearchHit {
	return nil
}
func (m *mockVectorStore) SearchWithFilter(ctx context.Context, c string, v []float32, k, val string, l uint64, s float32) []commonModels.SearchHit {
	return nil
}
func (m *mockVectorStore) ListAvailableFilters(ctx context.Context, c string) []commonModels.FacetValue {
	return nil
}

func okIngestion() *mockIngestion {
	return &mockIngestion{processFunc: func(ctx context.Context, filename string, content io.Reader, collection, docType string, progress ingest.ProgressFunc) (*api.IngestSummary, error) {
		if progress != nil {
			progress(api.IngestEvent{Status: ingest.StageParsing})
			progress(api.IngestEvent{Status: ingest.StageChunking})
			progress(api.IngestEvent{Status: ingest.StageEmbedding})
			progress(api.IngestEvent{Status: ingest.StagePreparing})
			progress(api.IngestEvent{Status: ingest.StageUpserting})
		}
		return &api.IngestSummary{Status: "success", Filename: filename, ChunksCount: 4, Collection: collection}, nil
	}}
}

func multipartBody(t *testing.T, fields map[string]string, filename string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatal(err)
		}
	}
	if filename != "" {
		part, err := writer.CreateFormFile("file", filename)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := part.Write([]byte("file content here")); err != nil {
			t.Fatal(err)
		}
	}
	writer.Close()
	return body, writer.FormDataContentType()
}

func TestHealth(t *testing.T) {
	h := NewHandler(okIngestion(), &mockSearch{}, &mockVectorStore{}, nil)

	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp api.HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Status != "healthy" || resp.Service != config.ServiceName {
		t.Errorf("body = %+v", resp)
	}
}

func TestCreateCollection_Defaults(t *testing.T) {
	vectorStore := &mockVectorStore{}
	h := NewHandler(okIngestion(), &mockSearch{}, vectorStore, nil)

	body := strings.NewReader(`{"name": "docs"}`)
	rec := httptest.NewRecorder()
	h.CreateCollection(rec, httptest.NewRequest(http.MethodPost, "/collections", body))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if vectorStore.createdSize != config.DefaultVectorSize || vectorStore.createdMode != config.DefaultDistanceMode {
		t.Errorf("defaults not applied: size=%d mode=%s", vectorStore.createdSize, vectorStore.createdMode)
	}

	var resp api.MessageResponse
	json.NewDecoder(rec.Body).Decode(&resp)
	if resp.Message != "Collection 'docs' created or already exists." {
		t.Errorf("message = %q", resp.Message)
	}
}

func TestCreateCollection_MissingName(t *testing.T) {
	h := NewHandler(okIngestion(), &mockSearch{}, &mockVectorStore{}, nil)

	rec := httptest.NewRecorder()
	h.CreateCollection(rec, httptest.NewRequest(http.MethodPost, "/collections", strings.NewReader(`{}`)))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d", rec.Code)
	}
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, routeCtx))
}

func TestCollectionCount(t *testing.T) {
	vectorStore := &mockVectorStore{collections: []commonModels.CollectionInfo{
		{Name: "docs", PointsCount: 42, Status: "green"},
	}}
	h := NewHandler(okIngestion(), &mockSearch{}, vectorStore, nil)

	rec := httptest.NewRecorder()
	req := withURLParam(httptest.NewRequest(http.MethodGet, "/collections/docs/count", nil), "name", "docs")
	h.CollectionCount(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp api.CollectionCountResponse
	json.NewDecoder(rec.Body).Decode(&resp)
	if resp.PointsCount != 42 {
		t.Errorf("points = %d", resp.PointsCount)
	}

	rec = httptest.NewRecorder()
	req = withURLParam(httptest.NewRequest(http.MethodGet, "/collections/ghost/count", nil), "name", "ghost")
	h.CollectionCount(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing collection must 404, got %d", rec.Code)
	}
	var errResp api.ErrorResponse
	json.NewDecoder(rec.Body).Decode(&errResp)
	if errResp.Detail == "" {
		t.Error("404 body must carry detail")
	}
}

func TestProcessDocument_Sync(t *testing.T) {
	h := NewHandler(okIngestion(), &mockSearch{}, &mockVectorStore{}, nil)

	body, contentType := multipartBody(t, map[string]string{"collection_name": "docs"}, "manual.pdf")
	req := httptest.NewRequest(http.MethodPost, "/documents/process", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.ProcessDocument(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var summary api.IngestSummary
	json.NewDecoder(rec.Body).Decode(&summary)
	if summary.Status != "success" || summary.Filename != "manual.pdf" || summary.ChunksCount != 4 {
		t.Errorf("summary = %+v", summary)
	}
}

func TestProcessDocument_MissingCollection(t *testing.T) {
	h := NewHandler(okIngestion(), &mockSearch{}, &mockVectorStore{}, nil)

	body, contentType := multipartBody(t, nil, "manual.pdf")
	req := httptest.NewRequest(http.MethodPost, "/documents/process", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.ProcessDocument(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestProcessDocument_ParseErrorIs422(t *testing.T) {
	failing := &mockIngestion{processFunc: func(ctx context.Context, filename string, content io.Reader, collection, docType string, progress ingest.ProgressFunc) (*api.IngestSummary, error) {
		return nil, &ragerr.ParseError{Filename: filename, Err: errors.New("garbled")}
	}}
	h := NewHandler(failing, &mockSearch{}, &mockVectorStore{}, nil)

	body, contentType := multipartBody(t, map[string]string{"collection_name": "docs"}, "bad.pdf")
	req := httptest.NewRequest(http.MethodPost, "/documents/process", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.ProcessDocument(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestProcessDocument_StreamEmitsNDJSON(t *testing.T) {
	h := NewHandler(okIngestion(), &mockSearch{}, &mockVectorStore{}, nil)

	body, contentType := multipartBody(t, map[string]string{"collection_name": "docs", "stream": "true"}, "manual.pdf")
	req := httptest.NewRequest(http.MethodPost, "/documents/process", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.ProcessDocument(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/x-ndjson" {
		t.Errorf("content type = %q", got)
	}

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	if len(lines) != 6 {
		t.Fatalf("expected 5 stage lines + summary, got %d: %v", len(lines), lines)
	}

	wantStages := []string{"parsing", "chunking", "embedding", "preparing", "upserting"}
	for i, want := range wantStages {
		var event api.IngestEvent
		if err := json.Unmarshal([]byte(lines[i]), &event); err != nil {
			t.Fatalf("line %d not json: %v", i, err)
		}
		if event.Status != want {
			t.Errorf("line %d status = %q, want %q", i, event.Status, want)
		}
	}

	var summary api.IngestSummary
	if err := json.Unmarshal([]byte(lines[5]), &summary); err != nil {
		t.Fatalf("terminal line not json: %v", err)
	}
	if summary.Status != "success" || summary.ChunksCount != 4 {
		t.Errorf("summary = %+v", summary)
	}
}

func TestProcessDocument_StreamFailureIsTerminalErrorLine(t *testing.T) {
	failing := &mockIngestion{processFunc: func(ctx context.Context, filename string, content io.Reader, collection, docType string, progress ingest.ProgressFunc) (*api.IngestSummary, error) {
		progress(api.IngestEvent{Status: ingest.StageParsing})
		return nil, &ragerr.EmbeddingError{Err: errors.New("quota")}
	}}
	h := NewHandler(failing, &mockSearch{}, &mockVectorStore{}, nil)

	body, contentType := multipartBody(t, map[string]string{"collection_name": "docs", "stream": "true"}, "manual.pdf")
	req := httptest.NewRequest(http.MethodPost, "/documents/process", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.ProcessDocument(rec, req)

	// the stream already committed 200, the failure rides in-band
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	var last api.IngestEvent
	if err := json.Unmarshal([]byte(lines[len(lines)-1]), &last); err != nil {
		t.Fatal(err)
	}
	if last.Status != "error" || last.Message == "" {
		t.Errorf("terminal line = %+v", last)
	}
}

func TestSearch(t *testing.T) {
	answer := "the answer"
	search := &mockSearch{searchFunc: func(ctx context.Context, req api.SearchRequest) (*api.SearchResponse, error) {
		return &api.SearchResponse{
			Results: []commonModels.SearchHit{{ID: "x", Score: 0.8}},
			Answer:  &answer,
		}, nil
	}}
	h := NewHandler(okIngestion(), search, &mockVectorStore{}, nil)

	body := strings.NewReader(`{"collection_name":"docs","query":"what?","limit":5,"ask_ai":true}`)
	rec := httptest.NewRecorder()
	h.Search(rec, httptest.NewRequest(http.MethodPost, "/search", body))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp api.SearchResponse
	json.NewDecoder(rec.Body).Decode(&resp)
	if len(resp.Results) != 1 || resp.Answer == nil || *resp.Answer != answer {
		t.Errorf("response = %+v", resp)
	}
}

func TestSearch_Validation(t *testing.T) {
	h := NewHandler(okIngestion(), &mockSearch{}, &mockVectorStore{}, nil)

	bodies := []string{
		`{"query":"q","limit":5}`,
		`{"collection_name":"docs","limit":5}`,
		`{"collection_name":"docs","query":"q","limit":0}`,
		`not json`,
	}
	for _, body := range bodies {
		rec := httptest.NewRecorder()
		h.Search(rec, httptest.NewRequest(http.MethodPost, "/search", strings.NewReader(body)))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %q: status = %d", body, rec.Code)
		}
	}
}

func TestSearchFilter_RequiresFilterFields(t *testing.T) {
	h := NewHandler(okIngestion(), &mockSearch{}, &mockVectorStore{}, nil)

	body := strings.NewReader(`{"collection_name":"docs","query":"q","limit":5}`)
	rec := httptest.NewRecorder()
	h.SearchFilter(rec, httptest.NewRequest(http.MethodPost, "/search/filter", body))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestListFilters(t *testing.T) {
	search := &mockSearch{facets: []commonModels.FacetValue{{Name: "PDF", Count: 9}}}
	h := NewHandler(okIngestion(), search, &mockVectorStore{}, nil)

	rec := httptest.NewRecorder()
	req := withURLParam(httptest.NewRequest(http.MethodGet, "/collections/docs/filters", nil), "name", "docs")
	h.ListFilters(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var facets []commonModels.FacetValue
	json.NewDecoder(rec.Body).Decode(&facets)
	if len(facets) != 1 || facets[0].Name != "PDF" {
		t.Errorf("facets = %+v", facets)
	}
}

func TestIngestionHistory_NilStoreReturnsEmptyList(t *testing.T) {
	h := NewHandler(okIngestion(), &mockSearch{}, &mockVectorStore{}, nil)

	rec := httptest.NewRecorder()
	h.IngestionHistory(rec, httptest.NewRequest(http.MethodGet, "/documents/history", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Errorf("body = %q", got)
	}
}
