// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render turns generated proposal text into a paginated PDF.
// Lines that open one of the bolded proposal sections are set in the bold
// face; every other line is a regular paragraph.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/go-pdf/fpdf"
	"golang.org/x/image/font/sfnt"

	"github.com/pdiddy/proposal-engine/pkg/types"
)

const (
	fontFamily = "proposal"

	// margin is one inch on every side.
	margin = 72.0

	// lineHeightFactor scales the font size to the paragraph line height.
	lineHeightFactor = 1.2
)

// FontLoadError reports a font file that could not be read or registered.
type FontLoadError struct {
	Path string
	Err  error
}

func (e *FontLoadError) Error() string {
	return fmt.Sprintf("loading font %s: %v", e.Path, e.Err)
}

func (e *FontLoadError) Unwrap() error { return e.Err }

// Renderer writes proposals using the fonts and layout in its config.
type Renderer struct {
	cfg    types.RenderConfig
	logger *slog.Logger
}

// New returns a Renderer. Zero size, spacing or page size fall back to
// the defaults.
func New(cfg types.RenderConfig, logger *slog.Logger) *Renderer {
	def := types.DefaultConfig().Render
	if cfg.FontSize <= 0 {
		cfg.FontSize = def.FontSize
	}
	if cfg.Spacing < 0 {
		cfg.Spacing = def.Spacing
	}
	if cfg.PageSize == "" {
		cfg.PageSize = def.PageSize
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{cfg: cfg, logger: logger}
}

// Render lays out content and writes the PDF to outputPath, replacing any
// existing file. Nothing is written when the fonts cannot be loaded or the
// document fails to build.
func (r *Renderer) Render(content, outputPath string) error {
	plan := BuildPlan(content)

	data, err := r.build(plan)
	if err != nil {
		return err
	}

	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", outputPath, err)
	}

	r.logger.Debug("render.done",
		"path", outputPath,
		"entries", len(plan),
		"headings", plan.Headings(),
		"bytes", len(data),
	)
	return nil
}

// build renders plan into PDF bytes.
func (r *Renderer) build(plan types.RenderPlan) ([]byte, error) {
	regular, err := readFont(r.cfg.FontPath)
	if err != nil {
		return nil, err
	}

	bold, err := r.loadBold()
	if err != nil {
		return nil, err
	}
	if bold == nil {
		bold = regular
	}

	pdf := fpdf.New("P", "pt", r.cfg.PageSize, "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin)
	pdf.SetCreator("proposal-engine", true)

	pdf.AddUTF8FontFromBytes(fontFamily, "", regular)
	if err := pdf.Error(); err != nil {
		return nil, &FontLoadError{Path: r.cfg.FontPath, Err: err}
	}
	pdf.AddUTF8FontFromBytes(fontFamily, "B", bold)
	if err := pdf.Error(); err != nil {
		return nil, &FontLoadError{Path: r.cfg.BoldFontPath, Err: err}
	}

	pdf.AddPage()
	lineHeight := r.cfg.FontSize * lineHeightFactor
	for _, entry := range plan {
		style := ""
		if entry.Heading {
			style = "B"
		}
		pdf.SetFont(fontFamily, style, r.cfg.FontSize)
		if entry.Text != "" {
			pdf.MultiCell(0, lineHeight, entry.Text, "", "L", false)
		}
		pdf.Ln(r.cfg.Spacing)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("building PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// loadBold reads the bold face. A missing file returns nil so the regular
// face is used for headings.
func (r *Renderer) loadBold() ([]byte, error) {
	if r.cfg.BoldFontPath == "" {
		return nil, nil
	}
	data, err := readFont(r.cfg.BoldFontPath)
	if errors.Is(err, fs.ErrNotExist) {
		r.logger.Warn("bold font not found, headings use the regular face", "path", r.cfg.BoldFontPath)
		return nil, nil
	}
	return data, err
}

// readFont reads a TrueType file and checks that it parses. fpdf only
// prints parse failures, so they are caught here first.
func readFont(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &FontLoadError{Path: path, Err: err}
	}
	if _, err := sfnt.Parse(data); err != nil {
		return nil, &FontLoadError{Path: path, Err: err}
	}
	return data, nil
}
