package llm

import "context"

// Provider answers a query given a pre-formatted context block of retrieved
// chunks. Implementations carry the fixed system instruction themselves.
type Provider interface {
	Answer(ctx context.Context, query string, contextBlock string) (string, error)
}
