// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs one proposal end to end: extract the client
// request, build the prompt, generate, name the output and render it.
// Each stage consumes the previous stage's result and the first failure
// stops the run.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/pdiddy/proposal-engine/internal/extract"
	"github.com/pdiddy/proposal-engine/internal/generate"
	"github.com/pdiddy/proposal-engine/internal/naming"
	"github.com/pdiddy/proposal-engine/internal/prompt"
	"github.com/pdiddy/proposal-engine/internal/render"
	"github.com/pdiddy/proposal-engine/pkg/types"
)

// Result describes a completed run.
type Result struct {
	// OutputPath is where the PDF was written.
	OutputPath string

	// Proposal is the generated text as returned by the model.
	Proposal string
}

// Run produces the proposal PDF for the request at inputPath. Progress
// lines go to w. No file is written when extraction or generation fails.
func Run(ctx context.Context, gen generate.Generator, cfg types.Config, inputPath string, w io.Writer, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}

	text, err := extract.New(logger).Extract(inputPath)
	if err != nil {
		return nil, fmt.Errorf("reading client request: %w", err)
	}
	fmt.Fprintf(w, "extracted %s (%d chars)\n", inputPath, len([]rune(text)))

	p, err := prompt.Build(text)
	if err != nil {
		return nil, fmt.Errorf("building prompt: %w", err)
	}

	fmt.Fprintf(w, "generating proposal with %s\n", cfg.Generation.Model)
	proposal, err := gen.Generate(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("generating proposal: %w", err)
	}

	outputPath := naming.OutputPath(cfg.Output.Dir, text)
	if err := render.New(cfg.Render, logger).Render(proposal, outputPath); err != nil {
		return nil, fmt.Errorf("rendering PDF: %w", err)
	}

	return &Result{OutputPath: outputPath, Proposal: proposal}, nil
}
