// Package insight produces short narrative analyses of the business data
// using the Gemini API, with an offline fallback when no key is configured.
package insight

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"mydukaan/backend/internal/derive"
	"mydukaan/backend/internal/domain"
)

const (
	// DefaultModel is used when no model is configured.
	DefaultModel = "gemini-3-flash-preview"

	systemInstruction = "You are a Senior Business Analyst for small retail businesses. " +
		"Keep advice short, concrete and specific to the numbers given."

	// FallbackEmpty is returned when the model answers with no text.
	FallbackEmpty = "AI analysis unavailable."
	// FallbackOffline is returned when the API cannot be reached.
	FallbackOffline = "AI insights offline. Check API connectivity."
)

// Generator turns the current aggregate into a short insight text. It never
// returns an error; unavailability degrades to a fallback message so the
// dashboard stays usable.
type Generator interface {
	BusinessInsights(ctx context.Context, data *domain.BusinessData) string
}

// inventoryLine is the condensed per-product shape sent to the model. Short
// keys keep the prompt small for large catalogs.
type inventoryLine struct {
	N   string `json:"n"`
	S   int    `json:"s"`
	Min int    `json:"min"`
}

// BuildPrompt renders the analysis request sent to the model.
func BuildPrompt(data *domain.BusinessData) string {
	lines := make([]inventoryLine, len(data.Products))
	for i, product := range data.Products {
		lines[i] = inventoryLine{N: product.Name, S: product.Stock, Min: product.MinStockLevel}
	}
	inventory, _ := json.Marshal(lines)

	var b strings.Builder
	fmt.Fprintf(&b, "Analyze this %s business snapshot and give exactly 3 bullet points of actionable advice.\n", data.Settings.Type)
	fmt.Fprintf(&b, "Net revenue: %.2f %s\n", derive.NetRevenue(data.Sales), data.Settings.Currency)
	fmt.Fprintf(&b, "Outgoing expenses: %.2f %s\n", derive.NetOutflow(data.Expenses), data.Settings.Currency)
	fmt.Fprintf(&b, "Products at or below minimum stock: %d\n", derive.LowStockCount(data.Products))
	fmt.Fprintf(&b, "Inventory (n=name, s=stock, min=minimum level): %s\n", inventory)
	b.WriteString("Focus on restocking priorities, pricing and spend reduction.")
	return b.String()
}

// Gemini generates insights with the Gemini API.
type Gemini struct {
	client *genai.Client
	model  string
}

func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("insight: create gemini client: %w", err)
	}
	if model == "" {
		model = DefaultModel
	}
	return &Gemini{client: client, model: model}, nil
}

func (g *Gemini) BusinessInsights(ctx context.Context, data *domain.BusinessData) string {
	resp, err := g.client.Models.GenerateContent(ctx, g.model,
		genai.Text(BuildPrompt(data)),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
			Temperature:       genai.Ptr(float32(0.2)),
		},
	)
	if err != nil {
		return FallbackOffline
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return FallbackEmpty
	}
	return text
}

// Offline is the generator used when no API key is configured.
type Offline struct{}

func (Offline) BusinessInsights(ctx context.Context, data *domain.BusinessData) string {
	return FallbackOffline
}
