package googleEmbedding

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/manotham-cc/RAG-Orchestrator/internal/config"
	"github.com/manotham-cc/RAG-Orchestrator/internal/rag/embedding"
	"github.com/manotham-cc/RAG-Orchestrator/pkg/logger_i"
	"google.golang.org/genai"
)

var dimension int32 = config.EmbeddingOutputDimensionality

type client struct {
	genAi  *genai.Client
	model  string
	logger *logger_i.Logger
}

// New builds the Google embedding client. Model name comes from
// EMBEDDING_MODEL, key from GEMINI_API_KEY. The client is shared across
// requests and torn down when ctx is cancelled.
func New(ctx context.Context) (embedding.Embedder, error) {
	logger := logger_i.NewLogger("google_embedding")

	model := os.Getenv("EMBEDDING_MODEL")
	if model == "" {
		model = config.DefaultEmbeddingModel
	}

	c, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: os.Getenv("GEMINI_API_KEY")})
	if err != nil {
		logger.Error("Error creating Google Embedding client", "error", err)
		return nil, err
	}

	logger.Info("Google Embedding client created", "model", model)
	instance := &client{genAi: c, model: model, logger: logger}
	go instance.closeOnShutdown(ctx)
	return instance, nil
}

func (c *client) closeOnShutdown(ctx context.Context) {
	<-ctx.Done()
	c.logger.Info("Closing Google Embedding client")
	c.genAi = nil
}

func (c *client) GetEmbedding(ctx context.Context, query string) ([]float32, error) {
	log := c.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	result, err := c.doCall(ctx, genai.Text(query))
	if err != nil {
		log.Error("Error getting embedding from Google", "error", err)
		return nil, err
	}
	if len(result.Embeddings) == 0 {
		return nil, fmt.Errorf("embedding response was empty")
	}
	return result.Embeddings[0].Values, nil
}

// BatchEmbedding embeds the whole chunk batch in one call, retrying once
// after a rate-limit response. Output order matches input order.
func (c *client) BatchEmbedding(ctx context.Context, chunks []string) ([][]float32, error) {
	log := c.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "chunks", len(chunks))

	result, err := c.doCall(ctx, getContent(chunks))
	if err != nil {
		if !isRateLimited(err) {
			log.Error("Error getting batch embeddings from Google", "error", err)
			return nil, err
		}
		log.Warn("Rate limit hit, retrying in 5 seconds")
		time.Sleep(5 * time.Second)
		result, err = c.doCall(ctx, getContent(chunks))
		if err != nil {
			log.Error("Batch embedding retry failed", "error", err)
			return nil, err
		}
	}

	if len(result.Embeddings) != len(chunks) {
		return nil, fmt.Errorf("embedding count mismatch: sent %d chunks, got %d vectors", len(chunks), len(result.Embeddings))
	}

	vectors := make([][]float32, 0, len(result.Embeddings))
	for _, r := range result.Embeddings {
		vectors = append(vectors, r.Values)
	}
	return vectors, nil
}

func (c *client) doCall(ctx context.Context, content []*genai.Content) (*genai.EmbedContentResponse, error) {
	return c.genAi.Models.EmbedContent(ctx, c.model, content, &genai.EmbedContentConfig{
		OutputDimensionality: &dimension,
		TaskType:             "RETRIEVAL_DOCUMENT",
	})
}

func getContent(chunks []string) []*genai.Content {
	contentsToSend := make([]*genai.Content, 0, len(chunks))
	for _, chunk := range chunks {
		contentsToSend = append(contentsToSend, &genai.Content{
			Parts: []*genai.Part{{Text: chunk}},
		})
	}
	return contentsToSend
}
