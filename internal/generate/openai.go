package generate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sashabaranov/go-openai"
)

// OpenAIBackend talks to an OpenAI-compatible chat completion API. Ollama
// exposes one under /v1, as do most local model servers.
type OpenAIBackend struct {
	client *openai.Client
	model  string
	logger *slog.Logger
}

// NewOpenAIBackend returns a backend rooted at baseURL. apiKey may be empty
// for local servers.
func NewOpenAIBackend(baseURL, apiKey, model string, httpClient *http.Client, logger *slog.Logger) *OpenAIBackend {
	if logger == nil {
		logger = slog.Default()
	}
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL
	if httpClient != nil {
		cfg.HTTPClient = httpClient
	}
	return &OpenAIBackend{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		logger: logger,
	}
}

// Generate sends the prompt as a single user message and returns the
// first choice's content.
func (o *OpenAIBackend) Generate(ctx context.Context, prompt string) (string, error) {
	reqID := uuid.NewString()
	start := time.Now()

	o.logger.Info("llm.openai.request", "req_id", reqID, "model", o.model, "prompt_bytes", len(prompt))

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		o.logger.Error("llm.openai.error", "req_id", reqID, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds())
		return "", mapOpenAIError(err)
	}

	o.logger.Info("llm.openai.response",
		"req_id", reqID,
		"choices", len(resp.Choices),
		"completion_tokens", resp.Usage.CompletionTokens,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("generation service returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// mapOpenAIError turns HTTP-level failures into *GenerationError and wraps
// everything else.
func mapOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode != 0 {
		return &GenerationError{StatusCode: apiErr.HTTPStatusCode, Body: apiErr.Message}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode != 0 {
		body := ""
		if reqErr.Err != nil {
			body = reqErr.Err.Error()
		}
		return &GenerationError{StatusCode: reqErr.HTTPStatusCode, Body: body}
	}
	return fmt.Errorf("calling generation service: %w", err)
}
