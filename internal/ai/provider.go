package ai

import "context"

// RawItem is a line item as parsed from OCR text, before classification.
type RawItem struct {
	Name     string  `json:"name"`
	Quantity string  `json:"quantity,omitempty"`
	Price    float64 `json:"price"`
}

// ClassifiedItem is a line item after the model has cleaned and categorized it.
type ClassifiedItem struct {
	Name     string  `json:"name"`
	Quantity string  `json:"quantity"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
}

// SuggestedItem is one entry of a generated shopping list.
type SuggestedItem struct {
	Name           string  `json:"name"`
	Category       string  `json:"category"`
	EstimatedPrice float64 `json:"estimated_price"`
	Quantity       string  `json:"quantity"`
}

// Provider abstracts the generative model behind the bill pipeline so services
// and tests can swap in fakes.
type Provider interface {
	// ExtractText runs OCR over a PNG-encoded bill image and returns the raw text.
	ExtractText(ctx context.Context, pngImage []byte) (string, error)
	// Classify cleans item names and assigns each a category.
	Classify(ctx context.Context, items []RawItem) ([]ClassifiedItem, error)
	// GenerateList produces a budget-bound shopping list, optionally seeded with
	// the user's frequently purchased item names.
	GenerateList(ctx context.Context, budget float64, frequentItems []string) ([]SuggestedItem, error)
}
