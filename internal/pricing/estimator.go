package pricing

import (
	"hash/fnv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/smartspend-ai/smartspend-backend/pkg/enums"
)

// Quotes are derived from a hash of the item and platform rather than live
// feeds, so the same bill always prices the same way.

func hashFraction(parts ...string) float64 {
	h := fnv.New64a()
	for _, part := range parts {
		_, _ = h.Write([]byte(strings.ToLower(strings.TrimSpace(part))))
		_, _ = h.Write([]byte{0})
	}
	// 52 bits of the sum gives a uniform fraction in [0, 1)
	const mask = (1 << 52) - 1
	return float64(h.Sum64()&mask) / float64(uint64(1)<<52)
}

func variationInBand(lo, hi float64, parts ...string) float64 {
	return lo + (hi-lo)*hashFraction(parts...)
}

// estimatePrice produces a platform's quote for an item. Quick-commerce
// platforms draw from a higher band than the marketplaces; bulk (kg/l) items
// earn a discount on the large platforms, small packs (g/ml) get a narrow
// adjustment on quick commerce.
func estimatePrice(itemName string, platform enums.Platform, originalPrice, quantityValue float64, quantityUnit string) float64 {
	unitPrice := originalPrice
	if quantityValue > 0 {
		unitPrice = originalPrice / quantityValue
	} else {
		quantityValue = 1
	}

	var variation float64
	if enums.QuickCommercePlatforms[platform] {
		variation = variationInBand(0.95, 1.15, itemName, string(platform), "base")
	} else {
		variation = variationInBand(0.85, 1.05, itemName, string(platform), "base")
	}

	price := round2(unitPrice * variation * quantityValue)

	switch quantityUnit {
	case "kg", "l", "ltr":
		if bulkDiscountPlatforms[platform] {
			discount := variationInBand(0.02, 0.08, itemName, string(platform), "bulk")
			price = round2(price * (1 - discount))
		}
	case "g", "ml", "gm":
		if smallPackPlatforms[platform] {
			adjust := variationInBand(-0.03, 0.02, itemName, string(platform), "small")
			price = round2(price * (1 + adjust))
		}
	}

	return price
}

func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
