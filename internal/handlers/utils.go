package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/manotham-cc/RAG-Orchestrator/internal/adapter/utils"
	"github.com/manotham-cc/RAG-Orchestrator/internal/api"
	"github.com/manotham-cc/RAG-Orchestrator/pkg/logger_i"
)

var logRH = logger_i.NewLogger("HandlerUtils")

func writeJsonResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but can't send a clean status code now
		logRH.Error("Error encoding response", "error", err)
	}
}

// WriteErrorResponse is exported for the middleware chain.
func WriteErrorResponse(w http.ResponseWriter, httpCode int, detail string) {
	writeJsonResponse(w, httpCode, api.ErrorResponse{Detail: detail})
}

func writeError(w http.ResponseWriter, httpCode int, detail string) {
	WriteErrorResponse(w, httpCode, detail)
}

func decodeBody(r *http.Request, target interface{}) error {
	defer func(body io.ReadCloser) {
		if err := body.Close(); err != nil {
			logRH.Error("Couldn't close the request body", "error", err)
		}
	}(r.Body)
	return json.NewDecoder(r.Body).Decode(target)
}

func getURLParam(r *http.Request, key string) string {
	return utils.GetChiURLParam(r, key)
}
