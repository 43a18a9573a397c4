// Package ragerr holds the error taxonomy shared by the ingestion and
// retrieval pipelines. Handlers map these to HTTP statuses; the pipelines
// only wrap, they never swallow.
package ragerr

import "fmt"

// ParseError means the document could not be converted to text, or the
// converter produced no content.
type ParseError struct {
	Filename string
	Err      error
}

func (e *ParseError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("failed to parse document %q", e.Filename)
	}
	return fmt.Sprintf("failed to parse document %q: %v", e.Filename, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// EmbeddingError means the embedding call failed. Kept distinct from
// StoreError so a caller can tell a model outage from a database outage.
type EmbeddingError struct {
	Err error
}

func (e *EmbeddingError) Error() string { return fmt.Sprintf("embedding failed: %v", e.Err) }
func (e *EmbeddingError) Unwrap() error { return e.Err }

// StoreError wraps a vector-database failure on a mutating operation.
type StoreError struct {
	Op         string
	Collection string
	Err        error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("vector store %s on %q failed: %v", e.Op, e.Collection, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// NotFoundError means a referenced collection does not exist.
type NotFoundError struct {
	Collection string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("collection %q not found", e.Collection)
}

// ValidationError means the request payload was malformed.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }
