package classifier

import (
	"context"
	"strings"

	"github.com/smartspend-ai/smartspend-backend/internal/ai"
	"github.com/smartspend-ai/smartspend-backend/internal/ingestion"
	"github.com/smartspend-ai/smartspend-backend/pkg/enums"
	"github.com/smartspend-ai/smartspend-backend/pkg/logger"
	"github.com/smartspend-ai/smartspend-backend/pkg/metrics"
)

// Item is a line item with its assigned category.
type Item struct {
	Name     string
	Quantity string
	Price    float64
	Category enums.Category
}

// Classifier assigns categories to parsed line items. It never fails a bill:
// when the model errors out or returns garbage, every item falls back to
// CategoryOther in the original order.
type Classifier struct {
	provider ai.Provider
	pipeline *metrics.PipelineMetrics
	logg     *logger.Logger
}

func New(provider ai.Provider, pipeline *metrics.PipelineMetrics, logg *logger.Logger) *Classifier {
	return &Classifier{
		provider: provider,
		pipeline: pipeline,
		logg:     logg,
	}
}

// Classify cleans names and assigns categories, one output item per input
// item in the same order.
func (c *Classifier) Classify(ctx context.Context, parsed []ingestion.ParsedItem) []Item {
	if len(parsed) == 0 {
		return nil
	}

	raw := make([]ai.RawItem, 0, len(parsed))
	for _, item := range parsed {
		raw = append(raw, ai.RawItem{
			Name:     item.Name,
			Quantity: item.Quantity,
			Price:    item.Price,
		})
	}

	classified, err := c.provider.Classify(ctx, raw)
	if err != nil || len(classified) != len(parsed) {
		if err != nil && c.logg != nil {
			c.logg.Warn(ctx, "item classification failed, falling back to Other")
		}
		c.pipeline.IncClassifierFallbacks()
		return c.fallback(parsed)
	}

	items := make([]Item, 0, len(parsed))
	for i, model := range classified {
		name := strings.TrimSpace(model.Name)
		if name == "" {
			name = parsed[i].Name
		}
		quantity := strings.TrimSpace(model.Quantity)
		if quantity == "" {
			quantity = parsed[i].Quantity
		}
		price := model.Price
		if price <= 0 {
			price = parsed[i].Price
		}
		items = append(items, Item{
			Name:     name,
			Quantity: quantity,
			Price:    price,
			Category: enums.NormalizeCategory(model.Category),
		})
	}
	return items
}

func (c *Classifier) fallback(parsed []ingestion.ParsedItem) []Item {
	items := make([]Item, 0, len(parsed))
	for _, item := range parsed {
		items = append(items, Item{
			Name:     item.Name,
			Quantity: item.Quantity,
			Price:    item.Price,
			Category: enums.CategoryOther,
		})
	}
	return items
}
