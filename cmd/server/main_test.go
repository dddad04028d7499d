package main

import (
	"context"
	"path/filepath"
	"testing"

	"mydukaan/backend/internal/config"
	"mydukaan/backend/internal/insight"
)

func TestBuildStoreDefaultsToFile(t *testing.T) {
	cfg := config.Config{DataFile: filepath.Join(t.TempDir(), "data.json")}

	documents, closers := buildStore(cfg)
	if documents == nil {
		t.Fatalf("expected a document store")
	}
	if len(closers) != 0 {
		t.Fatalf("file store needs no closers, got %d", len(closers))
	}
}

func TestBuildInsightsOfflineWithoutKey(t *testing.T) {
	gen := buildInsights(context.Background(), config.Config{})

	if _, ok := gen.(insight.Offline); !ok {
		t.Fatalf("expected offline generator without an api key, got %T", gen)
	}
}
