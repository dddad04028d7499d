package insight

import (
	"context"
	"strings"
	"testing"

	"mydukaan/backend/internal/templates"
)

func TestBuildPrompt(t *testing.T) {
	data := templates.Seed()
	prompt := BuildPrompt(data)

	if !strings.Contains(prompt, "Cafe / Coffee Shop") {
		t.Fatalf("expected business type in prompt:\n%s", prompt)
	}
	if !strings.Contains(prompt, "3 bullet points") {
		t.Fatalf("expected bullet point instruction in prompt:\n%s", prompt)
	}
	if !strings.Contains(prompt, `"n":"Arabica Beans"`) {
		t.Fatalf("expected condensed inventory in prompt:\n%s", prompt)
	}
	if !strings.Contains(prompt, `"min":10`) {
		t.Fatalf("expected minimum stock levels in prompt:\n%s", prompt)
	}
}

func TestBuildPromptEmptyCatalog(t *testing.T) {
	data := templates.Seed()
	data.Products = nil

	prompt := BuildPrompt(data)
	if !strings.Contains(prompt, "[]") {
		t.Fatalf("expected empty inventory array in prompt:\n%s", prompt)
	}
}

func TestOfflineGenerator(t *testing.T) {
	var gen Generator = Offline{}

	if got := gen.BusinessInsights(context.Background(), templates.Seed()); got != FallbackOffline {
		t.Fatalf("expected offline fallback, got %q", got)
	}
}
