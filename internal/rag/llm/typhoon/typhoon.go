package typhoon

import (
	"context"
	"fmt"
	"os"

	"github.com/manotham-cc/RAG-Orchestrator/internal/config"
	"github.com/manotham-cc/RAG-Orchestrator/internal/rag/llm"
	"github.com/manotham-cc/RAG-Orchestrator/pkg/logger_i"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Typhoon speaks the OpenAI wire protocol, so the regular openai client with
// a swapped base URL is all the integration needed.
type llmClient struct {
	client openai.Client
	model  string
	logger *logger_i.Logger
}

func New() llm.Provider {
	logger := logger_i.NewLogger("llm_typhoon")

	c := openai.NewClient(
		option.WithAPIKey(os.Getenv("LLM_API_KEY")),
		option.WithBaseURL(config.LLMBaseURL),
	)
	logger.Info("Typhoon client created", "model", config.LLMModelName)

	return &llmClient{client: c, model: config.LLMModelName, logger: logger}
}

func (c *llmClient) Answer(ctx context.Context, query string, contextBlock string) (string, error) {
	log := c.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	userPrompt := fmt.Sprintf("Context:\n%s\n\nQuestion: %s", contextBlock, query)

	response, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(config.LLMSystemPrompt),
			openai.UserMessage(userPrompt),
		},
		MaxTokens:   openai.Int(config.LLMMaxTokens),
		Temperature: openai.Float(config.LLMTemperature),
	})
	if err != nil {
		log.Error("LLM call failed", "error", err)
		return "", err
	}
	if len(response.Choices) == 0 {
		return "", fmt.Errorf("llm returned no choices")
	}

	log.Debug("LLM answered", "length", len(response.Choices[0].Message.Content))
	return response.Choices[0].Message.Content, nil
}
