package ingestion

import (
	"regexp"
	"strconv"
	"strings"
)

// ParsedItem is one candidate line item recovered from OCR text.
type ParsedItem struct {
	Name     string
	Quantity string
	Price    float64
}

// ParseResult carries the parsed items plus bookkeeping about the scan.
type ParseResult struct {
	Items   []ParsedItem
	Total   float64
	Dropped int
}

const (
	minPlausiblePrice = 5
	maxPlausiblePrice = 20000
)

var (
	priceRe           = regexp.MustCompile(`(?i)(?:Rs\.?|₹|INR)?\s*(\d{1,5}(?:[.,]\d{2})?)`)
	standalonePriceRe = regexp.MustCompile(`^\s*(?:Rs\.?|₹)?\s*\d+(?:[.,]\d{2})?\s*$`)
	numericLineRe     = regexp.MustCompile(`^[\d\s\-.,]+$`)
	leadingIndexRe    = regexp.MustCompile(`^[\d\-.)]+\s*`)
	currencyTokenRe   = regexp.MustCompile(`(?i)(?:Rs\.?|₹|INR)`)
	multiSpaceRe      = regexp.MustCompile(`\s+`)
	hasLetterRe       = regexp.MustCompile(`[a-zA-Z]`)
	hasDigitRe        = regexp.MustCompile(`\d`)
	bareNumberRe      = regexp.MustCompile(`\d+(?:[.,]\d{2})?`)

	qtyRe = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?\s*(?:kg|grams|gram|gm|g\b|ltr|liters|liter|l\b|milliliter|ml|pcs|pieces|piece|pc\b|packet|pack|pkt|pk\b|nos\b|units|unit|dozen|doz|box|bottle|btl|can\b|tin\b))`)
)

// Terms that mark receipt chrome rather than purchasable items. Matched as
// substrings of the lowercased line, the way Indian POS receipts interleave
// headers, totals, and payment rows with items.
var skipTerms = []string{
	// financial rows
	"total", "subtotal", "gst", "tax", "vat", "cgst", "sgst", "igst", "cess",
	"charge", "cash", "card", "credit", "debit", "change", "balance", "due",
	"paid", "amount", "rupees", "mrp", "discount", "offer", "saving",
	// receipt metadata
	"bill", "invoice", "receipt", "thank", "visit", "again", "welcome",
	"customer", "copy", "duplicate", "void", "cancelled", "refund", "exchange",
	// store information
	"phone", "mobile", "address", "email", "website", "www", "http",
	"branch", "outlet", "franchise",
	// date and time
	"date:", "time:", " am", " pm",
	// table headers
	"s.no", "sr.no", "qty", "quantity", "rate", "barcode", "hsn", "sac",
	"description", "particulars",
	// payment methods
	"upi", "paytm", "gpay", "phonepe", "googlepay", "bhim", "netbanking",
	"wallet", "visa", "mastercard", "rupay", "maestro", "atm", "pos",
	// staff and service
	"cashier", "manager", "gratuity", "delivery", "takeaway",
	// legal suffixes
	"limited", "pvt", "ltd", "private", "enterprise", "traders",
	"distributors", "wholesale", "supermarket", "hypermarket",
	// expiry metadata
	"expiry", "exp:", "mfg", "manufactured", "batch",
}

// ParseItems recovers line items from OCR text. Lines that cannot be parsed
// into a plausible (name, price) pair are dropped silently but counted.
// The bill total is the sum of parsed line prices; explicit total rows are
// filtered as receipt chrome.
func ParseItems(text string) ParseResult {
	var result ParseResult

	rawLines := strings.Split(text, "\n")
	lines := make([]string, 0, len(rawLines))
	for _, line := range rawLines {
		line = strings.TrimSpace(line)
		if len(line) > 1 {
			lines = append(lines, line)
		}
	}

	for i, line := range lines {
		lineLower := strings.ToLower(line)

		if len(line) < 3 || containsSkipTerm(lineLower) {
			result.Dropped++
			continue
		}
		// lines that are just numbers or codes
		if numericLineRe.MatchString(line) {
			if item, ok := pairWithPreviousLine(lines, i, line); ok {
				result.Items = append(result.Items, item)
				result.Total += item.Price
			} else {
				result.Dropped++
			}
			continue
		}

		priceMatches := priceRe.FindAllStringSubmatchIndex(line, -1)
		if len(priceMatches) == 0 {
			result.Dropped++
			continue
		}

		// the last price on the line is the line total
		last := priceMatches[len(priceMatches)-1]
		priceStr := strings.ReplaceAll(line[last[2]:last[3]], ",", "")
		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil || price < minPlausiblePrice || price > maxPlausiblePrice {
			result.Dropped++
			continue
		}

		itemPart := cleanItemName(line[:last[0]])

		if len(itemPart) < 2 || !hasLetterRe.MatchString(itemPart) {
			// price-only line, look one line back for the name
			itemPart = ""
			if i > 0 {
				prev := strings.TrimSpace(lines[i-1])
				if len(prev) > 3 && !containsSkipTerm(strings.ToLower(prev)) && !hasDigitRe.MatchString(prev) {
					itemPart = prev
				}
			}
			if itemPart == "" {
				result.Dropped++
				continue
			}
		}

		qty := "1"
		if loc := qtyRe.FindStringSubmatchIndex(itemPart); loc != nil {
			qty = normalizeQuantity(itemPart[loc[2]:loc[3]])
			itemPart = strings.TrimSpace(itemPart[:loc[0]] + itemPart[loc[1]:])
		} else if inferred := inferQuantityFromName(itemPart); inferred != "" {
			qty = inferred
		}

		itemPart = strings.TrimSpace(itemPart)
		if len(itemPart) < 2 {
			result.Dropped++
			continue
		}

		result.Items = append(result.Items, ParsedItem{
			Name:     itemPart,
			Quantity: qty,
			Price:    price,
		})
		result.Total += price
	}

	return result
}

// pairWithPreviousLine handles receipts that print the price on its own line
// below the item name.
func pairWithPreviousLine(lines []string, i int, line string) (ParsedItem, bool) {
	if i == 0 || !standalonePriceRe.MatchString(line) {
		return ParsedItem{}, false
	}
	prev := strings.TrimSpace(lines[i-1])
	if len(prev) <= 3 || containsSkipTerm(strings.ToLower(prev)) {
		return ParsedItem{}, false
	}
	numStr := bareNumberRe.FindString(line)
	if numStr == "" {
		return ParsedItem{}, false
	}
	price, err := strconv.ParseFloat(strings.ReplaceAll(numStr, ",", ""), 64)
	if err != nil || price < minPlausiblePrice || price > maxPlausiblePrice {
		return ParsedItem{}, false
	}
	return ParsedItem{Name: cleanItemName(prev), Quantity: "1", Price: price}, true
}

func cleanItemName(s string) string {
	s = strings.TrimSpace(s)
	s = leadingIndexRe.ReplaceAllString(s, "")
	s = currencyTokenRe.ReplaceAllString(s, "")
	s = multiSpaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

func containsSkipTerm(lineLower string) bool {
	for _, term := range skipTerms {
		if strings.Contains(lineLower, term) {
			return true
		}
	}
	return false
}
