package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/manotham-cc/RAG-Orchestrator/internal/api"
	"github.com/manotham-cc/RAG-Orchestrator/internal/config"
	"github.com/manotham-cc/RAG-Orchestrator/internal/data/store"
	"github.com/manotham-cc/RAG-Orchestrator/internal/domain/commonModels"
	"github.com/manotham-cc/RAG-Orchestrator/internal/domain/ragerr"
	"github.com/manotham-cc/RAG-Orchestrator/internal/rag/ingest"
	"github.com/manotham-cc/RAG-Orchestrator/internal/rag/vectorDB"
	"github.com/manotham-cc/RAG-Orchestrator/pkg/logger_i"
)

type IngestionService interface {
	ProcessDocument(ctx context.Context, filename string, content io.Reader, collection string, docType string, progress ingest.ProgressFunc) (*api.IngestSummary, error)
}

type SearchService interface {
	Search(ctx context.Context, req api.SearchRequest) (*api.SearchResponse, error)
	SearchWithFilter(ctx context.Context, req api.FilterSearchRequest) (*api.SearchResponse, error)
	AvailableFilters(ctx context.Context, collection string) []commonModels.FacetValue
}

type Handler struct {
	ingestion IngestionService
	search    SearchService
	store     vectorDB.Store
	history   *store.HistoryStore
	logger    *logger_i.Logger
}

// NewHandler wires the request layer. history may be nil when redis is not
// reachable, the history route then degrades to an empty list.
func NewHandler(ingestion IngestionService, search SearchService, vectorStore vectorDB.Store, history *store.HistoryStore) *Handler {
	return &Handler{
		ingestion: ingestion,
		search:    search,
		store:     vectorStore,
		history:   history,
		logger:    logger_i.NewLogger("RequestHandler"),
	}
}

// Root godoc
// @Summary      Service welcome
// @Tags         Service
// @Produce      json
// @Success      200  {object}  api.RootResponse
// @Router       / [get]
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	writeJsonResponse(w, http.StatusOK, api.RootResponse{
		Message: "RAG Orchestrator API",
		Docs:    "/swagger/index.html",
		Status:  "running",
	})
}

// Health godoc
// @Summary      Health check
// @Tags         Service
// @Produce      json
// @Success      200  {object}  api.HealthResponse
// @Router       /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJsonResponse(w, http.StatusOK, api.HealthResponse{
		Status:  "healthy",
		Service: config.ServiceName,
	})
}

// ListCollections godoc
// @Summary      List vector collections
// @Tags         Collections
// @Produce      json
// @Success      200  {array}  commonModels.CollectionInfo
// @Router       /collections [get]
func (h *Handler) ListCollections(w http.ResponseWriter, r *http.Request) {
	collections := h.store.ListCollections(r.Context())
	if collections == nil {
		collections = []commonModels.CollectionInfo{}
	}
	writeJsonResponse(w, http.StatusOK, collections)
}

// CreateCollection godoc
// @Summary      Create a vector collection
// @Description  Creates the collection with keyword indexes, no-op when it already exists.
// @Tags         Collections
// @Accept       json
// @Produce      json
// @Param        request  body      api.CollectionCreateRequest  true  "Collection parameters"
// @Success      200      {object}  api.MessageResponse
// @Failure      400      {object}  api.ErrorResponse
// @Failure      500      {object}  api.ErrorResponse
// @Router       /collections [post]
func (h *Handler) CreateCollection(w http.ResponseWriter, r *http.Request) {
	var requestData api.CollectionCreateRequest
	if err := decodeBody(r, &requestData); err != nil {
		writeError(w, http.StatusBadRequest, "Bad Request")
		return
	}
	if requestData.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if requestData.VectorSize == 0 {
		requestData.VectorSize = config.DefaultVectorSize
	}
	if requestData.DistanceMode == "" {
		requestData.DistanceMode = config.DefaultDistanceMode
	}

	if err := h.store.CreateCollection(r.Context(), requestData.Name, requestData.VectorSize, requestData.DistanceMode); err != nil {
		h.logger.Error("Collection creation failed", "collection", requestData.Name, "error", err)
		writeTypedError(w, err)
		return
	}

	writeJsonResponse(w, http.StatusOK, api.MessageResponse{
		Status:  "success",
		Message: "Collection '" + requestData.Name + "' created or already exists.",
	})
}

// CollectionCount godoc
// @Summary      Count points in a collection
// @Tags         Collections
// @Produce      json
// @Param        name  path      string  true  "Collection name"
// @Success      200   {object}  api.CollectionCountResponse
// @Failure      404   {object}  api.ErrorResponse
// @Router       /collections/{name}/count [get]
func (h *Handler) CollectionCount(w http.ResponseWriter, r *http.Request) {
	name := getURLParam(r, "name")
	for _, info := range h.store.ListCollections(r.Context()) {
		if info.Name == name {
			writeJsonResponse(w, http.StatusOK, api.CollectionCountResponse{
				Collection:  name,
				PointsCount: info.PointsCount,
			})
			return
		}
	}
	writeError(w, http.StatusNotFound, "Collection '"+name+"' not found")
}

// ProcessDocument godoc
// @Summary      Ingest a document
// @Description  Parses, chunks, embeds and upserts the uploaded file. With stream=true the response is an NDJSON progress stream ending in the summary.
// @Tags         Ingestion
// @Accept       multipart/form-data
// @Produce      json
// @Param        collection_name  formData  string  true   "Target collection"
// @Param        doc_type         formData  string  false  "Document type label, defaults to the uppercased extension"
// @Param        stream           formData  string  false  "Set to true for NDJSON progress"
// @Param        file             formData  file    true   "The document to ingest"
// @Success      200  {object}  api.IngestSummary
// @Failure      400  {object}  api.ErrorResponse
// @Failure      422  {object}  api.ErrorResponse
// @Failure      500  {object}  api.ErrorResponse
// @Router       /documents/process [post]
func (h *Handler) ProcessDocument(w http.ResponseWriter, r *http.Request) {
	log := h.logger.With("traceId", r.Context().Value(config.TRACE_ID_KEY))

	if err := r.ParseMultipartForm(config.MaxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "File too large or bad request")
		return
	}

	collection := r.FormValue("collection_name")
	if collection == "" {
		writeError(w, http.StatusBadRequest, "collection_name is required")
		return
	}

	fileReader, fileMetadata, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Could not retrieve file")
		return
	}
	defer fileReader.Close()

	docType := ingest.InferDocType(r.FormValue("doc_type"), fileMetadata.Filename)

	if r.FormValue("stream") == "true" {
		h.processStreaming(w, r, fileMetadata.Filename, fileReader, collection, docType)
		return
	}

	summary, err := h.ingestion.ProcessDocument(r.Context(), fileMetadata.Filename, fileReader, collection, docType, nil)
	if err != nil {
		log.Error("Ingestion failed", "filename", fileMetadata.Filename, "error", err)
		writeTypedError(w, err)
		return
	}
	h.recordHistory(summary, docType)
	writeJsonResponse(w, http.StatusOK, summary)
}

// processStreaming writes one NDJSON line per pipeline stage and a terminal
// line holding either the summary or an error event. The status code is
// committed before the pipeline runs, so failures surface in-band.
func (h *Handler) processStreaming(w http.ResponseWriter, r *http.Request, filename string, content io.Reader, collection string, docType string) {
	log := h.logger.With("traceId", r.Context().Value(config.TRACE_ID_KEY), "filename", filename)

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "Streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "application/x-ndjson")
	w.WriteHeader(http.StatusOK)
	encoder := json.NewEncoder(w)

	progress := func(event api.IngestEvent) {
		if err := encoder.Encode(event); err != nil {
			log.Error("Error writing progress event", "error", err)
			return
		}
		flusher.Flush()
	}

	summary, err := h.ingestion.ProcessDocument(r.Context(), filename, content, collection, docType, progress)
	if err != nil {
		log.Error("Streamed ingestion failed", "error", err)
		progress(api.IngestEvent{Status: "error", Message: err.Error()})
		return
	}
	h.recordHistory(summary, docType)

	if err := encoder.Encode(summary); err != nil {
		log.Error("Error writing ingestion summary", "error", err)
		return
	}
	flusher.Flush()
}

// recordHistory is best effort, the ingestion already succeeded.
func (h *Handler) recordHistory(summary *api.IngestSummary, docType string) {
	if h.history == nil {
		return
	}
	record := commonModels.IngestionRecord{
		Filename:    summary.Filename,
		Collection:  summary.Collection,
		DocType:     docType,
		ChunksCount: summary.ChunksCount,
		IngestedAt:  time.Now().UTC(),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := h.history.Record(ctx, record); err != nil {
			h.logger.Error("Could not record ingestion history", "error", err)
		}
	}()
}

// Search godoc
// @Summary      Similarity search
// @Description  Embeds the query and returns the closest chunks, optionally with an AI generated answer.
// @Tags         Search
// @Accept       json
// @Produce      json
// @Param        request  body      api.SearchRequest  true  "Search parameters"
// @Success      200      {object}  api.SearchResponse
// @Failure      400      {object}  api.ErrorResponse
// @Failure      502      {object}  api.ErrorResponse
// @Router       /search [post]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	var requestData api.SearchRequest
	if err := decodeBody(r, &requestData); err != nil {
		writeError(w, http.StatusBadRequest, "Bad Request")
		return
	}
	if err := validateSearchRequest(requestData.CollectionName, requestData.Query, requestData.Limit); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	response, err := h.search.Search(r.Context(), requestData)
	if err != nil {
		h.logger.Error("Search failed", "collection", requestData.CollectionName, "error", err)
		writeTypedError(w, err)
		return
	}
	writeJsonResponse(w, http.StatusOK, response)
}

// SearchFilter godoc
// @Summary      Filtered similarity search
// @Description  Similarity search restricted to points whose payload field matches the filter.
// @Tags         Search
// @Accept       json
// @Produce      json
// @Param        request  body      api.FilterSearchRequest  true  "Search and filter parameters"
// @Success      200      {object}  api.SearchResponse
// @Failure      400      {object}  api.ErrorResponse
// @Failure      502      {object}  api.ErrorResponse
// @Router       /search/filter [post]
func (h *Handler) SearchFilter(w http.ResponseWriter, r *http.Request) {
	var requestData api.FilterSearchRequest
	if err := decodeBody(r, &requestData); err != nil {
		writeError(w, http.StatusBadRequest, "Bad Request")
		return
	}
	if err := validateSearchRequest(requestData.CollectionName, requestData.Query, requestData.Limit); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if requestData.FilterKey == "" || requestData.FilterValue == "" {
		writeError(w, http.StatusBadRequest, "filter_key and filter_value are required")
		return
	}

	response, err := h.search.SearchWithFilter(r.Context(), requestData)
	if err != nil {
		h.logger.Error("Filtered search failed", "collection", requestData.CollectionName, "error", err)
		writeTypedError(w, err)
		return
	}
	writeJsonResponse(w, http.StatusOK, response)
}

// ListFilters godoc
// @Summary      List filterable document types
// @Tags         Search
// @Produce      json
// @Param        name  path     string  true  "Collection name"
// @Success      200   {array}  commonModels.FacetValue
// @Router       /collections/{name}/filters [get]
func (h *Handler) ListFilters(w http.ResponseWriter, r *http.Request) {
	name := getURLParam(r, "name")
	facets := h.search.AvailableFilters(r.Context(), name)
	if facets == nil {
		facets = []commonModels.FacetValue{}
	}
	writeJsonResponse(w, http.StatusOK, facets)
}

// IngestionHistory godoc
// @Summary      Recent ingestions
// @Description  Rolling log of the latest ingestions, newest first.
// @Tags         Ingestion
// @Produce      json
// @Success      200  {array}  commonModels.IngestionRecord
// @Router       /documents/history [get]
func (h *Handler) IngestionHistory(w http.ResponseWriter, r *http.Request) {
	records := []commonModels.IngestionRecord{}
	if h.history != nil {
		stored, err := h.history.Recent(r.Context())
		if err == nil {
			records = stored
		}
	}
	writeJsonResponse(w, http.StatusOK, records)
}

func validateSearchRequest(collection string, query string, limit int) error {
	if collection == "" {
		return errors.New("collection_name is required")
	}
	if query == "" {
		return errors.New("query is required")
	}
	if limit <= 0 {
		return errors.New("limit must be positive")
	}
	return nil
}

// writeTypedError maps the domain error taxonomy onto status codes.
func writeTypedError(w http.ResponseWriter, err error) {
	var validationErr *ragerr.ValidationError
	var parseErr *ragerr.ParseError
	var embErr *ragerr.EmbeddingError
	var notFoundErr *ragerr.NotFoundError

	switch {
	case errors.As(err, &validationErr):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &notFoundErr):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &parseErr):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.As(err, &embErr):
		writeError(w, http.StatusBadGateway, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
