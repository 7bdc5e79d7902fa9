// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets reads credentials from a directory of plain-text files.
// The filename is the key and the trimmed file contents are the value.
//
// Known keys: openai-api-key.
package secrets

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// DefaultDir is the secrets directory relative to the working directory.
const DefaultDir = ".secrets"

// OpenAIAPIKey is the key file holding the token for the openai backend.
const OpenAIAPIKey = "openai-api-key"

// Store holds the secrets read from one directory.
type Store map[string]string

// Load reads every regular, non-hidden file in dir. A missing directory
// yields an empty store. Unreadable files are logged and skipped.
func Load(dir string, logger *slog.Logger) (Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return Store{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	store := make(Store)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			logger.Warn("skipping unreadable secret", "key", name, "error", err)
			continue
		}
		if value := strings.TrimSpace(string(data)); value != "" {
			store[name] = value
		}
	}
	return store, nil
}

// Get returns the value for key, or fallback when fallback is set or the
// key is absent. Explicit configuration wins over the file.
func (s Store) Get(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	return s[key]
}
