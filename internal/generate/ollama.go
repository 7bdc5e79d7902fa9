// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/pdiddy/proposal-engine/internal/httputil"
)

// OllamaBackend calls Ollama's native generate endpoint with streaming
// disabled, so the whole completion arrives in one JSON object.
type OllamaBackend struct {
	Endpoint string
	Model    string
	Client   *http.Client
	Logger   *slog.Logger
}

// ollamaRequest is the request body for POST /api/generate.
type ollamaRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

// ollamaResponse is the non-streamed response body from /api/generate.
type ollamaResponse struct {
	Model      string `json:"model"`
	Response   string `json:"response"`
	Done       bool   `json:"done"`
	DoneReason string `json:"done_reason,omitempty"`
}

// Generate posts the prompt once and returns the "response" field.
func (o *OllamaBackend) Generate(ctx context.Context, prompt string) (string, error) {
	logger := o.Logger
	if logger == nil {
		logger = slog.Default()
	}

	body := ollamaRequest{
		Model:  o.Model,
		Prompt: prompt,
		Stream: false,
	}

	raw, status, err := httputil.PostJSON(ctx, o.Client, o.Endpoint, body, logger)
	if err != nil {
		return "", fmt.Errorf("calling generation service at %s: %w", o.Endpoint, err)
	}
	if status != http.StatusOK {
		return "", &GenerationError{StatusCode: status, Body: truncateBody(raw)}
	}

	var resp ollamaResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", fmt.Errorf("decoding generation response: %w", err)
	}

	logger.Debug("generate.done", "model", resp.Model, "done_reason", resp.DoneReason, "chars", len([]rune(resp.Response)))
	return resp.Response, nil
}
