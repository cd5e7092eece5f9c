package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/smartspend-ai/smartspend-backend/pkg/config"
	"github.com/smartspend-ai/smartspend-backend/pkg/enums"
)

// Gemini implements Provider using Google Gemini.
type Gemini struct {
	client  *genai.Client
	model   *genai.GenerativeModel
	timeout time.Duration
}

// NewGemini creates a Gemini-backed provider from config.
func NewGemini(ctx context.Context, cfg config.GeminiConfig) (*Gemini, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	modelName := cfg.Model
	if modelName == "" {
		modelName = "gemini-flash-latest"
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Gemini{
		client:  client,
		model:   client.GenerativeModel(modelName),
		timeout: timeout,
	}, nil
}

// ExtractText runs OCR over a PNG image of a bill.
func (g *Gemini) ExtractText(ctx context.Context, pngImage []byte) (string, error) {
	if len(pngImage) == 0 {
		return "", fmt.Errorf("image data is empty")
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	// genai.ImageData expects just the format suffix ("png"), not the full
	// MIME type. Ingestion converts every upload to PNG before this call.
	parts := []genai.Part{
		genai.ImageData("png", pngImage),
		genai.Text(ocrSystemPrompt),
	}

	text, err := g.generate(ctx, parts...)
	if err != nil {
		return "", err
	}
	return text, nil
}

// Classify cleans and categorizes parsed line items.
func (g *Gemini) Classify(ctx context.Context, items []RawItem) ([]ClassifiedItem, error) {
	if len(items) == 0 {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	payload, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding items: %w", err)
	}

	prompt := classifySystemPrompt + "\n\n" +
		fmt.Sprintf(classifyPromptTemplate, string(payload), categoryNames())

	text, err := g.generate(ctx, genai.Text(prompt))
	if err != nil {
		return nil, err
	}

	var classified []ClassifiedItem
	if err := extractJSONArray(text, &classified); err != nil {
		return nil, fmt.Errorf("parsing classification response: %w", err)
	}
	return classified, nil
}

// GenerateList produces a budget-bound shopping list.
func (g *Gemini) GenerateList(ctx context.Context, budget float64, frequentItems []string) ([]SuggestedItem, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	history := "[]"
	if len(frequentItems) > 0 {
		encoded, err := json.Marshal(frequentItems)
		if err != nil {
			return nil, fmt.Errorf("encoding history: %w", err)
		}
		history = string(encoded)
	}

	prompt := listSystemPrompt + "\n\n" +
		fmt.Sprintf(listPromptTemplate, budget, history, categoryNames())

	text, err := g.generate(ctx, genai.Text(prompt))
	if err != nil {
		return nil, err
	}

	var items []SuggestedItem
	if err := extractJSONArray(text, &items); err != nil {
		return nil, fmt.Errorf("parsing shopping list response: %w", err)
	}
	return items, nil
}

// Close closes the underlying Gemini client.
func (g *Gemini) Close() error {
	return g.client.Close()
}

func (g *Gemini) generate(ctx context.Context, parts ...genai.Part) (string, error) {
	resp, err := g.model.GenerateContent(ctx, parts...)
	if err != nil {
		return "", fmt.Errorf("generating content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from gemini")
	}

	var out strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			out.WriteString(string(text))
		}
	}
	return strings.TrimSpace(out.String()), nil
}

func categoryNames() string {
	cats := enums.Categories()
	names := make([]string, 0, len(cats))
	for _, cat := range cats {
		names = append(names, string(cat))
	}
	return strings.Join(names, ", ")
}
