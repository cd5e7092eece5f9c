package enums

import "fmt"

// Platform identifies one of the supported e-commerce/delivery services used
// for price comparison. The declaration order is the canonical priority order:
// when two platforms tie on price, the one listed first wins.
type Platform string

const (
	PlatformAmazon          Platform = "Amazon"
	PlatformFlipkart        Platform = "Flipkart"
	PlatformMeesho          Platform = "Meesho"
	PlatformBigBasket       Platform = "BigBasket"
	PlatformJioMart         Platform = "JioMart"
	PlatformBlinkit         Platform = "Blinkit"
	PlatformZepto           Platform = "Zepto"
	PlatformSwiggyInstamart Platform = "Swiggy Instamart"
	PlatformDunzo           Platform = "Dunzo"
)

// SupportedPlatforms lists every platform in priority order.
var SupportedPlatforms = []Platform{
	PlatformAmazon,
	PlatformFlipkart,
	PlatformMeesho,
	PlatformBigBasket,
	PlatformJioMart,
	PlatformBlinkit,
	PlatformZepto,
	PlatformSwiggyInstamart,
	PlatformDunzo,
}

// QuickCommercePlatforms deliver in minutes and price slightly above the
// marketplaces.
var QuickCommercePlatforms = map[Platform]bool{
	PlatformBlinkit:         true,
	PlatformZepto:           true,
	PlatformSwiggyInstamart: true,
	PlatformDunzo:           true,
}

// IsValid checks whether the platform belongs to the supported set.
func (p Platform) IsValid() bool {
	for _, candidate := range SupportedPlatforms {
		if candidate == p {
			return true
		}
	}
	return false
}

// Priority returns the platform's position in the canonical order, or
// len(SupportedPlatforms) for unknown values.
func (p Platform) Priority() int {
	for i, candidate := range SupportedPlatforms {
		if candidate == p {
			return i
		}
	}
	return len(SupportedPlatforms)
}

// ParsePlatform converts raw strings into Platform.
func ParsePlatform(value string) (Platform, error) {
	for _, candidate := range SupportedPlatforms {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid platform %q", value)
}
