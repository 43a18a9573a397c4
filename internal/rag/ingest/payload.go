package ingest

import (
	"path/filepath"
	"time"
)

// BuildPayload assembles the metadata record stored next to each vector.
// The filename is reduced to its base name, the timestamp is captured at
// build time in sortable RFC3339 form. Extra metadata merges last so it can
// override the defaults.
func BuildPayload(textChunk string, filePath string, chunkIndex int, docType string, extraMetadata map[string]any) map[string]any {
	payload := map[string]any{
		"text":        textChunk,
		"source":      filepath.Base(filePath),
		"chunk_index": chunkIndex,
		"type":        docType,
		"created_at":  time.Now().Format(time.RFC3339),
	}

	for key, value := range extraMetadata {
		payload[key] = value
	}
	return payload
}
