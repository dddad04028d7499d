package store

import (
	"context"
	"errors"

	"mydukaan/backend/internal/domain"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// StorageKey is the fixed key the aggregate document lives under in
// key-value backends.
const StorageKey = "mydukaan_data"

// DocumentStore persists the BusinessData aggregate as one JSON document.
// Load returns ErrNotFound when no document has ever been saved. Save
// replaces the whole document unconditionally; there is no diffing, no
// write coalescing and no conflict detection (single writer by design).
type DocumentStore interface {
	Load(ctx context.Context) (*domain.BusinessData, error)
	Save(ctx context.Context, data *domain.BusinessData) error
}
