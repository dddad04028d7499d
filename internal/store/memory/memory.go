// Package memory implements the document store in process memory. Used by
// tests and as a fallback when no persistence backend is configured.
package memory

import (
	"context"
	"sync"

	"mydukaan/backend/internal/domain"
	"mydukaan/backend/internal/store"
	"mydukaan/backend/internal/templates"
)

type Store struct {
	mu  sync.RWMutex
	doc *domain.BusinessData
}

func New() *Store {
	return &Store{}
}

// NewSeeded returns a store pre-populated with the first-run aggregate.
func NewSeeded() *Store {
	return &Store{doc: templates.Seed()}
}

func (s *Store) Load(ctx context.Context) (*domain.BusinessData, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.doc == nil {
		return nil, store.ErrNotFound
	}
	return s.doc.Clone(), nil
}

func (s *Store) Save(ctx context.Context, data *domain.BusinessData) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = data.Clone()
	return nil
}
