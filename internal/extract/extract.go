// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract reads a client request document and returns its plain text.
// Supported formats are .docx (word/document.xml paragraphs), .pdf (page
// content streams via pdfcpu) and .txt (UTF-8).
package extract

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/proposal-engine/pkg/types"
)

var (
	// ErrUnsupportedFormat is matched by every *UnsupportedFormatError.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrInvalidEncoding is returned when a plain-text file is not valid UTF-8.
	ErrInvalidEncoding = errors.New("invalid UTF-8 text")
)

// UnsupportedFormatError reports a file extension with no reader.
type UnsupportedFormatError struct {
	Ext string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file format: %q", e.Ext)
}

// Is makes errors.Is(err, ErrUnsupportedFormat) true.
func (e *UnsupportedFormatError) Is(target error) bool {
	return target == ErrUnsupportedFormat
}

// Extractor dispatches a file to the reader for its format.
type Extractor struct {
	logger *slog.Logger
}

// New returns an Extractor. A nil logger uses slog.Default().
func New(logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{logger: logger}
}

// Detect returns the format for path based on its extension, ignoring case.
func Detect(path string) (types.Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".docx":
		return types.FormatDocx, nil
	case ".pdf":
		return types.FormatPDF, nil
	case ".txt":
		return types.FormatText, nil
	default:
		return "", &UnsupportedFormatError{Ext: ext}
	}
}

// Extract returns the text of the document at path. An empty document
// yields an empty string; unreadable or unsupported input yields an error.
func (e *Extractor) Extract(path string) (string, error) {
	format, err := Detect(path)
	if err != nil {
		return "", err
	}
	doc := types.RawDocument{Path: path, Format: format}

	info, err := os.Stat(doc.Path)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", doc.Path, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s is a directory", doc.Path)
	}

	e.logger.Debug("extracting document", "path", doc.Path, "format", doc.Format, "bytes", info.Size())

	if info.Size() == 0 {
		return "", nil
	}

	var text string
	switch doc.Format {
	case types.FormatDocx:
		text, err = readDocx(doc.Path)
	case types.FormatPDF:
		text, err = readPDF(doc.Path)
	case types.FormatText:
		text, err = readText(doc.Path)
	}
	if err != nil {
		return "", fmt.Errorf("extract %s (%s): %w", doc.Path, doc.Format, err)
	}

	e.logger.Debug("extracted document", "path", doc.Path, "chars", len([]rune(text)))
	return text, nil
}
