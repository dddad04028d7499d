// Package postgres persists the aggregate document as a single jsonb row.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"mydukaan/backend/internal/domain"
	"mydukaan/backend/internal/store"
)

const schema = `
CREATE TABLE IF NOT EXISTS business_documents (
	storage_key TEXT PRIMARY KEY,
	document    JSONB NOT NULL,
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);`

type Store struct {
	db  *sql.DB
	key string
}

func New(databaseURL string) (*Store, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("postgres store: open: %w", err)
	}

	db.SetMaxIdleConns(8)
	db.SetMaxOpenConns(30)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 6*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres store: ping: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres store: ensure schema: %w", err)
	}

	return &Store{db: db, key: store.StorageKey}, nil
}

func (s *Store) Load(ctx context.Context) (*domain.BusinessData, error) {
	var raw []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT document FROM business_documents WHERE storage_key = $1`, s.key,
	).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("postgres store: select document: %w", err)
	}

	var doc domain.BusinessData
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("postgres store: decode document: %w", err)
	}
	return &doc, nil
}

func (s *Store) Save(ctx context.Context, data *domain.BusinessData) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("postgres store: encode document: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO business_documents (storage_key, document, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (storage_key)
		DO UPDATE SET document = EXCLUDED.document, updated_at = now()`,
		s.key, raw,
	)
	if err != nil {
		return fmt.Errorf("postgres store: upsert document: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
