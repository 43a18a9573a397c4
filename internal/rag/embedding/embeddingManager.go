package embedding

import "context"

// Embedder maps text into the vector space the collections were built with.
// Query and document embeddings must share model and dimensionality.
type Embedder interface {
	GetEmbedding(ctx context.Context, query string) ([]float32, error)
	BatchEmbedding(ctx context.Context, chunks []string) ([][]float32, error)
}
