package utils

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func GetNewUUID() string {
	return uuid.New().String()
}

func GetChiURLParam(request *http.Request, key string) string {
	return chi.URLParam(request, key)
}

// GenerateID returns a deterministic md5 hex digest for text. The same text
// always maps to the same id, which is what makes re-ingestion overwrite
// instead of duplicate. md5 is fine here - this is deduplication, not security.
func GenerateID(text string) string {
	sum := md5.Sum([]byte(text))
	return hex.EncodeToString(sum[:])
}

// DigestToPointID reshapes a 32-char hex digest into UUID grouping
// (8-4-4-4-12) because Qdrant only accepts UUID-shaped string ids.
// Still deterministic, still the same digest.
func DigestToPointID(digest string) string {
	if len(digest) != 32 {
		return digest
	}
	return digest[0:8] + "-" + digest[8:12] + "-" + digest[12:16] + "-" + digest[16:20] + "-" + digest[20:32]
}

// DeterministicPointID derives the point id for a payload:
// source+chunk_index when both are present, then the chunk text,
// then a random uuid. The three branches are explicit on purpose.
func DeterministicPointID(payload map[string]any) string {
	source, hasSource := payload["source"].(string)
	index, hasIndex := payload["chunk_index"].(int)
	if hasSource && hasIndex {
		return DigestToPointID(GenerateID(fmt.Sprintf("%s_%d", source, index)))
	}
	if text, ok := payload["text"].(string); ok && text != "" {
		return DigestToPointID(GenerateID(text))
	}
	return GetNewUUID()
}
