// Package redis persists the aggregate document in Redis under a fixed key.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"mydukaan/backend/internal/domain"
	"mydukaan/backend/internal/store"
)

type Store struct {
	client *goredis.Client
	key    string
}

func New(addr, password string, db int) (*Store, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis store: ping: %w", err)
	}

	return &Store{client: client, key: store.StorageKey}, nil
}

func (s *Store) Load(ctx context.Context) (*domain.BusinessData, error) {
	raw, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("redis store: get document: %w", err)
	}

	var doc domain.BusinessData
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("redis store: decode document: %w", err)
	}
	return &doc, nil
}

func (s *Store) Save(ctx context.Context, data *domain.BusinessData) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("redis store: encode document: %w", err)
	}
	if err := s.client.Set(ctx, s.key, raw, 0).Err(); err != nil {
		return fmt.Errorf("redis store: set document: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.client.Close()
}
