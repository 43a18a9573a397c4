package vectorDB

import (
	"context"

	"github.com/manotham-cc/RAG-Orchestrator/internal/domain/commonModels"
)

// Store abstracts the vector engine. Contract split on purpose:
// the read operations (list, search, facet) never fail the caller - on an
// underlying error they log and return empty results, browsing favors
// availability. The mutating operations (create, upsert) always surface
// their error, the ingestion pipeline depends on that.
type Store interface {
	ListCollections(ctx context.Context) []commonModels.CollectionInfo
	CreateCollection(ctx context.Context, name string, vectorSize uint64, distanceMode string) error
	Upsert(ctx context.Context, collection string, vectors [][]float32, payloads []map[string]any) error
	SearchSimilarity(ctx context.Context, collection string, queryVector []float32, limit uint64, scoreThreshold float32) []commonModels.SearchHit
	SearchWithFilter(ctx context.Context, collection string, queryVector []float32, filterKey, filterValue string, limit uint64, scoreThreshold float32) []commonModels.SearchHit
	ListAvailableFilters(ctx context.Context, collection string) []commonModels.FacetValue
}
