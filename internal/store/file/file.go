// Package file persists the aggregate document as a JSON file on disk, the
// default backend for single-machine deployments.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"mydukaan/backend/internal/domain"
	"mydukaan/backend/internal/store"
)

type Store struct {
	path string
}

func New(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("file store: %w: empty path", store.ErrInvalidInput)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("file store: create data directory: %w", err)
		}
	}
	return &Store{path: path}, nil
}

func (s *Store) Load(ctx context.Context) (*domain.BusinessData, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("file store: read document: %w", err)
	}

	var doc domain.BusinessData
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("file store: decode document: %w", err)
	}
	return &doc, nil
}

// Save writes to a temp file in the same directory then renames it over the
// target, so a crash mid-write never leaves a truncated document behind.
func (s *Store) Save(ctx context.Context, data *domain.BusinessData) error {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("file store: encode document: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("file store: write document: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("file store: replace document: %w", err)
	}
	return nil
}
