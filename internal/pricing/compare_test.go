package pricing

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/smartspend-ai/smartspend-backend/pkg/config"
	"github.com/smartspend-ai/smartspend-backend/pkg/enums"
)

func newTestComparator(cache QuoteCache) *Comparator {
	return NewComparator(config.AffiliatesConfig{}, config.PricingConfig{QuoteCacheTTL: time.Hour}, cache, nil)
}

func TestCompareDeterministic(t *testing.T) {
	comparator := newTestComparator(nil)
	ctx := context.Background()

	first := comparator.Compare(ctx, "Milk", enums.CategoryDairy, 60, "1 l")
	second := comparator.Compare(ctx, "Milk", enums.CategoryDairy, 60, "1 l")

	if len(first.PlatformPrices) != len(enums.SupportedPlatforms) {
		t.Fatalf("expected %d quotes, got %d", len(enums.SupportedPlatforms), len(first.PlatformPrices))
	}
	for i := range first.PlatformPrices {
		if first.PlatformPrices[i] != second.PlatformPrices[i] {
			t.Fatalf("quote %d differs between runs: %+v vs %+v", i, first.PlatformPrices[i], second.PlatformPrices[i])
		}
	}
	if first.BestPrice != second.BestPrice || first.MaxSavings != second.MaxSavings {
		t.Fatal("summary differs between identical runs")
	}
}

func TestCompareSortedAndConsistent(t *testing.T) {
	comparator := newTestComparator(nil)

	result := comparator.Compare(context.Background(), "Bread", enums.CategoryBakery, 40, "400 g")

	for i := 1; i < len(result.PlatformPrices); i++ {
		prev, cur := result.PlatformPrices[i-1], result.PlatformPrices[i]
		if cur.Price < prev.Price {
			t.Fatalf("quotes not sorted: %f before %f", prev.Price, cur.Price)
		}
		if cur.Price == prev.Price && cur.Platform.Priority() < prev.Platform.Priority() {
			t.Fatalf("tie not broken by platform order: %s before %s", prev.Platform, cur.Platform)
		}
	}

	if result.BestPrice != result.PlatformPrices[0].Price {
		t.Fatalf("best price %f does not match cheapest quote %f", result.BestPrice, result.PlatformPrices[0].Price)
	}
	if result.MaxSavings < 0 {
		t.Fatalf("max savings must never be negative, got %f", result.MaxSavings)
	}
	if result.MaxSavings > 0 && result.MaxSavings != round2(40-result.BestPrice) {
		t.Fatalf("max savings %f inconsistent with best price %f", result.MaxSavings, result.BestPrice)
	}
}

func TestCompareMaxSavingsClampedAtZero(t *testing.T) {
	comparator := newTestComparator(nil)

	// a price of 5 against quick-commerce markup bands can make every quote
	// costlier than the bill
	result := comparator.Compare(context.Background(), "Matchbox", enums.CategoryOther, 5, "1")

	if result.MaxSavings < 0 {
		t.Fatalf("expected clamped savings, got %f", result.MaxSavings)
	}
}

func TestCompareRecommendationsTopThree(t *testing.T) {
	comparator := newTestComparator(nil)

	result := comparator.Compare(context.Background(), "Amul Butter", enums.CategoryDairy, 56, "100 g")

	if len(result.Recommendations) == 0 || len(result.Recommendations) > 3 {
		t.Fatalf("expected 1-3 recommendations, got %d", len(result.Recommendations))
	}
	for i := 1; i < len(result.Recommendations); i++ {
		if result.Recommendations[i].Score > result.Recommendations[i-1].Score {
			t.Fatal("recommendations not sorted by score")
		}
	}
	for _, rec := range result.Recommendations {
		if !rec.Platform.IsValid() {
			t.Fatalf("unknown platform %q in recommendation", rec.Platform)
		}
		if rec.Reason == "" || rec.DeliveryTime == "" {
			t.Fatalf("incomplete recommendation %+v", rec)
		}
	}
}

type fakeQuoteCache struct {
	mu   sync.Mutex
	data map[string]string
	gets int
	sets int
}

func (f *fakeQuoteCache) Get(_ context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets++
	if v, ok := f.data[key]; ok {
		return v, nil
	}
	return "", context.Canceled
}

func (f *fakeQuoteCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sets++
	if f.data == nil {
		f.data = map[string]string{}
	}
	f.data[key] = value.(string)
	return nil
}

func (f *fakeQuoteCache) QuoteCacheKey(digest string) string {
	return "quote:" + digest
}

func TestCompareUsesQuoteCache(t *testing.T) {
	cache := &fakeQuoteCache{}
	comparator := newTestComparator(cache)
	ctx := context.Background()

	first := comparator.Compare(ctx, "Milk", enums.CategoryDairy, 60, "1 l")
	if cache.sets != 1 {
		t.Fatalf("expected one cache write, got %d", cache.sets)
	}

	second := comparator.Compare(ctx, "Milk", enums.CategoryDairy, 60, "1 l")
	if cache.sets != 1 {
		t.Fatalf("expected cache hit on second call, got %d writes", cache.sets)
	}
	if first.BestPrice != second.BestPrice {
		t.Fatalf("cached result diverged: %f vs %f", first.BestPrice, second.BestPrice)
	}
}

func TestSearchQueryQuantityAware(t *testing.T) {
	cases := []struct {
		name     string
		quantity string
		unit     string
		want     string
	}{
		{"Basmati Rice", "5 kg", "kg", "Basmati Rice 5kg"},
		{"Fresh Milk", "500 ml", "ml", "Fresh Milk 500ml"},
		{"Eggs", "12 pc", "pc", "Eggs dozen"},
		{"Eggs", "6 pc", "pc", "Eggs pack"},
		{"Marie Biscuits", "1 packet", "packet", "Marie Biscuits packet"},
		{"Salt & Pepper Mix", "1", "unit", "Salt Pepper Mix"},
	}

	for _, tc := range cases {
		if got := searchQuery(tc.name, tc.quantity, tc.unit); got != tc.want {
			t.Errorf("searchQuery(%q, %q, %q) = %q, want %q", tc.name, tc.quantity, tc.unit, got, tc.want)
		}
	}
}

func TestSearchURLAffiliateTags(t *testing.T) {
	affiliates := config.AffiliatesConfig{AmazonTag: "smartspend-21", FlipkartID: "ss-aff"}

	amazon := SearchURL(enums.PlatformAmazon, "milk 1l", affiliates)
	if want := "https://www.amazon.in/s?k=milk+1l&tag=smartspend-21"; amazon != want {
		t.Fatalf("amazon url = %q, want %q", amazon, want)
	}

	flipkart := SearchURL(enums.PlatformFlipkart, "milk 1l", affiliates)
	if want := "https://www.flipkart.com/search?q=milk+1l&affid=ss-aff"; flipkart != want {
		t.Fatalf("flipkart url = %q, want %q", flipkart, want)
	}

	meesho := SearchURL(enums.PlatformMeesho, "milk 1l", config.AffiliatesConfig{})
	if want := "https://www.meesho.com/search?q=milk+1l"; meesho != want {
		t.Fatalf("meesho url = %q, want %q", meesho, want)
	}
}
