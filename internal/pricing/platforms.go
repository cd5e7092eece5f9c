package pricing

import (
	"fmt"
	"net/url"

	"github.com/smartspend-ai/smartspend-backend/pkg/config"
	"github.com/smartspend-ai/smartspend-backend/pkg/enums"
)

// DeliveryTime returns the platform's advertised delivery window.
func DeliveryTime(p enums.Platform) string {
	switch p {
	case enums.PlatformAmazon:
		return "Next Day"
	case enums.PlatformFlipkart:
		return "2-3 Days"
	case enums.PlatformMeesho:
		return "3-5 Days"
	case enums.PlatformBigBasket:
		return "Same Day"
	case enums.PlatformJioMart:
		return "Next Day"
	case enums.PlatformBlinkit:
		return "10-15 min"
	case enums.PlatformZepto:
		return "10 min"
	case enums.PlatformSwiggyInstamart:
		return "15-20 min"
	case enums.PlatformDunzo:
		return "20-30 min"
	}
	return ""
}

// SearchURL builds a deep link into the platform's search results for the
// given query, appending affiliate identifiers where configured.
func SearchURL(p enums.Platform, query string, affiliates config.AffiliatesConfig) string {
	encoded := url.QueryEscape(query)
	switch p {
	case enums.PlatformAmazon:
		link := fmt.Sprintf("https://www.amazon.in/s?k=%s", encoded)
		if affiliates.AmazonTag != "" {
			link += "&tag=" + url.QueryEscape(affiliates.AmazonTag)
		}
		return link
	case enums.PlatformFlipkart:
		link := fmt.Sprintf("https://www.flipkart.com/search?q=%s", encoded)
		if affiliates.FlipkartID != "" {
			link += "&affid=" + url.QueryEscape(affiliates.FlipkartID)
		}
		return link
	case enums.PlatformMeesho:
		link := fmt.Sprintf("https://www.meesho.com/search?q=%s", encoded)
		if affiliates.MeeshoID != "" {
			link += "&aff_id=" + url.QueryEscape(affiliates.MeeshoID)
		}
		return link
	case enums.PlatformBigBasket:
		return fmt.Sprintf("https://www.bigbasket.com/ps/?q=%s", encoded)
	case enums.PlatformJioMart:
		return fmt.Sprintf("https://www.jiomart.com/search/%s", encoded)
	case enums.PlatformBlinkit:
		return fmt.Sprintf("https://blinkit.com/search?q=%s", encoded)
	case enums.PlatformZepto:
		return fmt.Sprintf("https://www.zepto.com/search?query=%s", encoded)
	case enums.PlatformSwiggyInstamart:
		return fmt.Sprintf("https://www.swiggy.com/instamart/search?query=%s", encoded)
	case enums.PlatformDunzo:
		return fmt.Sprintf("https://www.dunzo.com/search/%s", encoded)
	}
	return ""
}

// bulkDiscountPlatforms offer volume pricing on kg/l items.
var bulkDiscountPlatforms = map[enums.Platform]bool{
	enums.PlatformAmazon:    true,
	enums.PlatformFlipkart:  true,
	enums.PlatformBigBasket: true,
	enums.PlatformJioMart:   true,
}

// smallPackPlatforms price g/ml pack sizes aggressively to win convenience
// purchases.
var smallPackPlatforms = map[enums.Platform]bool{
	enums.PlatformBlinkit:         true,
	enums.PlatformZepto:           true,
	enums.PlatformSwiggyInstamart: true,
}

// categoryPreferences ranks platforms by strength for each category. Used for
// the recommendation affinity score.
var categoryPreferences = map[enums.Category][]enums.Platform{
	enums.CategoryGroceries:         {enums.PlatformBigBasket, enums.PlatformJioMart, enums.PlatformBlinkit, enums.PlatformZepto},
	enums.CategoryFruitsVeg:         {enums.PlatformBigBasket, enums.PlatformSwiggyInstamart, enums.PlatformZepto, enums.PlatformBlinkit},
	enums.CategoryDairy:             {enums.PlatformBlinkit, enums.PlatformZepto, enums.PlatformBigBasket, enums.PlatformSwiggyInstamart},
	enums.CategorySnacks:            {enums.PlatformAmazon, enums.PlatformFlipkart, enums.PlatformMeesho, enums.PlatformBigBasket},
	enums.CategoryBeverages:         {enums.PlatformBigBasket, enums.PlatformJioMart, enums.PlatformBlinkit, enums.PlatformAmazon},
	enums.CategoryCleaning:          {enums.PlatformAmazon, enums.PlatformFlipkart, enums.PlatformBigBasket, enums.PlatformJioMart},
	enums.CategoryPersonalCare:      {enums.PlatformAmazon, enums.PlatformFlipkart, enums.PlatformMeesho, enums.PlatformBigBasket},
	enums.CategoryElectronics:       {enums.PlatformAmazon, enums.PlatformFlipkart},
	enums.CategoryMeatSeafood:       {enums.PlatformBigBasket, enums.PlatformSwiggyInstamart, enums.PlatformBlinkit},
	enums.CategoryBakery:            {enums.PlatformSwiggyInstamart, enums.PlatformBlinkit, enums.PlatformZepto, enums.PlatformBigBasket},
	enums.CategoryFrozenFoods:       {enums.PlatformBigBasket, enums.PlatformSwiggyInstamart, enums.PlatformJioMart},
	enums.CategoryOther:             {enums.PlatformAmazon, enums.PlatformFlipkart, enums.PlatformMeesho},
}

func preferredPlatforms(category enums.Category) []enums.Platform {
	if prefs, ok := categoryPreferences[category]; ok {
		return prefs
	}
	return categoryPreferences[enums.CategoryOther]
}
