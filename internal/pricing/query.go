package pricing

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	nonWordRe    = regexp.MustCompile(`[^\w\s]`)
	querySpaceRe = regexp.MustCompile(`\s+`)
)

var queryNoiseWords = map[string]bool{
	"the": true, "a": true, "an": true, "of": true,
	"for": true, "with": true, "and": true, "&": true,
}

// searchQuery builds a quantity-aware query string for platform search links.
func searchQuery(itemName, quantity, quantityUnit string) string {
	base := strings.TrimSpace(itemName)

	words := strings.Fields(base)
	kept := make([]string, 0, len(words))
	for _, w := range words {
		if !queryNoiseWords[strings.ToLower(w)] {
			kept = append(kept, w)
		}
	}
	if len(kept) > 0 {
		base = strings.Join(kept, " ")
	}

	base = nonWordRe.ReplaceAllString(base, "")
	base = strings.TrimSpace(querySpaceRe.ReplaceAllString(base, " "))

	qtyNum := ""
	if fields := strings.Fields(quantity); len(fields) > 0 {
		qtyNum = fields[0]
	}

	switch quantityUnit {
	case "kg", "l":
		if qtyNum == "" {
			qtyNum = "1"
		}
		return base + " " + qtyNum + quantityUnit
	case "g", "ml":
		if qtyNum != "" {
			return base + " " + qtyNum + quantityUnit
		}
	case "pc", "pcs":
		if n, err := strconv.ParseFloat(qtyNum, 64); err == nil {
			if n >= 12 {
				return base + " dozen"
			}
			if n >= 6 {
				return base + " pack"
			}
		}
	case "pack", "packet", "box", "bottle":
		return base + " " + quantityUnit
	}

	return base
}
