package pricing

import (
	"fmt"
	"sort"
	"strings"

	"github.com/smartspend-ai/smartspend-backend/pkg/db/models"
	"github.com/smartspend-ai/smartspend-backend/pkg/enums"
)

// recommend scores each quoted platform on category affinity, price
// competitiveness, delivery speed, and marketplace reliability, and returns
// the top three.
func recommend(category enums.Category, prices []models.PlatformPrice) []models.PlatformRecommendation {
	if len(prices) == 0 {
		return nil
	}

	preferred := preferredPlatforms(category)

	bestPrice := prices[0].Price
	for _, p := range prices[1:] {
		if p.Price < bestPrice {
			bestPrice = p.Price
		}
	}

	var recs []models.PlatformRecommendation
	for _, quote := range prices {
		score := 0.0
		var reasons []string

		// category affinity, 40% weight across the top three preferred
		for i, pref := range preferred {
			if i >= 3 {
				break
			}
			if pref == quote.Platform {
				score += 40.0 * (1 - float64(i)/3)
				reasons = append(reasons, fmt.Sprintf("Great for %s", category))
				break
			}
		}

		// price competitiveness, 30% weight
		if quote.Price == bestPrice {
			score += 30.0
			reasons = append(reasons, "Best price")
		} else if quote.Price <= bestPrice*1.05 {
			score += 20.0
			reasons = append(reasons, "Competitive price")
		}

		// delivery speed, 20% weight
		delivery := DeliveryTime(quote.Platform)
		if strings.Contains(delivery, "min") {
			score += 20.0
			reasons = append(reasons, fmt.Sprintf("Fast delivery (%s)", delivery))
		} else if strings.Contains(delivery, "Same Day") || strings.Contains(delivery, "Next Day") {
			score += 10.0
			reasons = append(reasons, fmt.Sprintf("%s delivery", delivery))
		}

		// marketplace reliability bonus
		switch quote.Platform {
		case enums.PlatformAmazon, enums.PlatformFlipkart, enums.PlatformBigBasket:
			score += 10.0
		}

		if score <= 0 {
			continue
		}

		reason := "Available"
		if len(reasons) > 0 {
			reason = strings.Join(reasons, ", ")
		}
		recs = append(recs, models.PlatformRecommendation{
			Platform:     quote.Platform,
			Reason:       reason,
			Score:        round1(score),
			DeliveryTime: delivery,
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].Score != recs[j].Score {
			return recs[i].Score > recs[j].Score
		}
		return recs[i].Platform.Priority() < recs[j].Platform.Priority()
	})

	if len(recs) > 3 {
		recs = recs[:3]
	}
	return recs
}

func round1(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}
