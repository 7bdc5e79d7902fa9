// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package generate sends a prompt to a locally hosted language model and
// returns the generated text. The model's output is returned as-is.
package generate

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/pdiddy/proposal-engine/pkg/types"
)

// Generator abstracts the generation service so tests can supply a stub.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GenerationError reports a non-success status from the generation service.
type GenerationError struct {
	StatusCode int
	Body       string
}

func (e *GenerationError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("generation service returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("generation service returned status %d: %s", e.StatusCode, e.Body)
}

// maxErrorBody caps how much of an error response is kept in GenerationError.
const maxErrorBody = 512

func truncateBody(b []byte) string {
	if len(b) > maxErrorBody {
		return string(b[:maxErrorBody]) + "..."
	}
	return string(b)
}

// New returns the Generator selected by cfg.Backend. An empty backend
// means ollama.
func New(cfg types.GenerationConfig, logger *slog.Logger) (Generator, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("generation model is not set")
	}

	// A zero timeout leaves the client without one.
	client := &http.Client{Timeout: cfg.Timeout}

	switch cfg.Backend {
	case types.BackendOllama, "":
		if cfg.Endpoint == "" {
			return nil, fmt.Errorf("ollama backend requires an endpoint")
		}
		return &OllamaBackend{
			Endpoint: cfg.Endpoint,
			Model:    cfg.Model,
			Client:   client,
			Logger:   logger,
		}, nil

	case types.BackendOpenAI:
		if cfg.BaseURL == "" {
			return nil, fmt.Errorf("openai backend requires a base_url")
		}
		return NewOpenAIBackend(cfg.BaseURL, cfg.APIKey, cfg.Model, client, logger), nil

	default:
		return nil, fmt.Errorf("unknown generation backend: %q", cfg.Backend)
	}
}
