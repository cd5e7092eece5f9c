package pricing

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/smartspend-ai/smartspend-backend/internal/ingestion"
	"github.com/smartspend-ai/smartspend-backend/pkg/config"
	"github.com/smartspend-ai/smartspend-backend/pkg/db/models"
	"github.com/smartspend-ai/smartspend-backend/pkg/enums"
	"github.com/smartspend-ai/smartspend-backend/pkg/logger"
)

// QuoteCache is the subset of the redis client used to cache platform quotes.
type QuoteCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	QuoteCacheKey(digest string) string
}

// Comparison is the cross-platform result for a single line item.
type Comparison struct {
	PlatformPrices  []models.PlatformPrice
	BestPrice       float64
	MaxSavings      float64
	Recommendations []models.PlatformRecommendation
}

// Comparator quotes an item across every supported platform.
type Comparator struct {
	affiliates config.AffiliatesConfig
	cache      QuoteCache
	cacheTTL   time.Duration
	logg       *logger.Logger
}

// NewComparator builds a Comparator. cache may be nil to disable quote caching.
func NewComparator(affiliates config.AffiliatesConfig, pricing config.PricingConfig, cache QuoteCache, logg *logger.Logger) *Comparator {
	return &Comparator{
		affiliates: affiliates,
		cache:      cache,
		cacheTTL:   pricing.QuoteCacheTTL,
		logg:       logg,
	}
}

// Compare returns every platform's quote for the item, sorted cheapest first.
// Ties are broken by the canonical platform order. MaxSavings never goes
// below zero even when every platform beats the billed price in the other
// direction.
func (c *Comparator) Compare(ctx context.Context, name string, category enums.Category, originalPrice float64, quantity string) Comparison {
	prices, cached := c.cachedQuotes(ctx, name, quantity, originalPrice)
	if !cached {
		prices = c.quoteAll(name, quantity, originalPrice)
		c.storeQuotes(ctx, name, quantity, originalPrice, prices)
	}

	best := prices[0].Price
	maxSavings := round2(originalPrice - best)
	if maxSavings < 0 {
		maxSavings = 0
	}

	return Comparison{
		PlatformPrices:  prices,
		BestPrice:       best,
		MaxSavings:      maxSavings,
		Recommendations: recommend(category, prices),
	}
}

func (c *Comparator) quoteAll(name, quantity string, originalPrice float64) []models.PlatformPrice {
	quantityValue, quantityUnit := ingestion.ParseQuantity(quantity)
	query := searchQuery(name, quantity, quantityUnit)

	prices := make([]models.PlatformPrice, 0, len(enums.SupportedPlatforms))
	for _, platform := range enums.SupportedPlatforms {
		price := estimatePrice(name, platform, originalPrice, quantityValue, quantityUnit)
		prices = append(prices, models.PlatformPrice{
			Platform: platform,
			Price:    price,
			URL:      SearchURL(platform, query, c.affiliates),
			Savings:  round2(originalPrice - price),
		})
	}

	sort.SliceStable(prices, func(i, j int) bool {
		if prices[i].Price != prices[j].Price {
			return prices[i].Price < prices[j].Price
		}
		return prices[i].Platform.Priority() < prices[j].Platform.Priority()
	})
	return prices
}

func (c *Comparator) cachedQuotes(ctx context.Context, name, quantity string, originalPrice float64) ([]models.PlatformPrice, bool) {
	if c.cache == nil {
		return nil, false
	}
	raw, err := c.cache.Get(ctx, c.cache.QuoteCacheKey(quoteDigest(name, quantity, originalPrice)))
	if err != nil {
		return nil, false
	}
	var prices []models.PlatformPrice
	if err := json.Unmarshal([]byte(raw), &prices); err != nil || len(prices) == 0 {
		return nil, false
	}
	return prices, true
}

func (c *Comparator) storeQuotes(ctx context.Context, name, quantity string, originalPrice float64, prices []models.PlatformPrice) {
	if c.cache == nil || c.cacheTTL <= 0 {
		return
	}
	encoded, err := json.Marshal(prices)
	if err != nil {
		return
	}
	key := c.cache.QuoteCacheKey(quoteDigest(name, quantity, originalPrice))
	if err := c.cache.Set(ctx, key, string(encoded), c.cacheTTL); err != nil && c.logg != nil {
		c.logg.Warn(ctx, "quote cache write failed")
	}
}

func quoteDigest(name, quantity string, originalPrice float64) string {
	sum := sha1.Sum([]byte(fmt.Sprintf("%s|%s|%.2f", name, quantity, originalPrice)))
	return hex.EncodeToString(sum[:])
}
