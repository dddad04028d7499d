package file

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"mydukaan/backend/internal/store"
	"mydukaan/backend/internal/templates"
)

func TestLoadMissingFile(t *testing.T) {
	fs, err := New(filepath.Join(t.TempDir(), "data.json"))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	if _, err := fs.Load(context.Background()); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	fs, err := New(filepath.Join(t.TempDir(), "nested", "dir", "data.json"))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ctx := context.Background()

	doc := templates.Seed()
	if err := fs.Save(ctx, doc); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := fs.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded.Products) != len(doc.Products) {
		t.Fatalf("expected %d products, got %d", len(doc.Products), len(loaded.Products))
	}
	if loaded.Settings != doc.Settings {
		t.Fatalf("expected settings %+v, got %+v", doc.Settings, loaded.Settings)
	}
}

func TestSaveOverwrites(t *testing.T) {
	fs, err := New(filepath.Join(t.TempDir(), "data.json"))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ctx := context.Background()

	doc := templates.Seed()
	if err := fs.Save(ctx, doc); err != nil {
		t.Fatalf("save: %v", err)
	}

	doc.Settings.Name = "Chai Point"
	if err := fs.Save(ctx, doc); err != nil {
		t.Fatalf("second save: %v", err)
	}

	loaded, err := fs.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Settings.Name != "Chai Point" {
		t.Fatalf("expected overwritten name, got %q", loaded.Settings.Name)
	}
}

func TestNewRejectsEmptyPath(t *testing.T) {
	if _, err := New(""); !errors.Is(err, store.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}
