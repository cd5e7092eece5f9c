package ingestion

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var qtyNumberUnitRe = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*([a-zA-Z]+)`)

// unitAliases maps spelled-out units onto the short forms we store. Order
// matters: longer prefixes first so "grams" does not stop at "g".
var unitAliases = []struct {
	prefix string
	short  string
}{
	{"grams", "g"},
	{"gram", "g"},
	{"gm", "g"},
	{"liters", "l"},
	{"liter", "l"},
	{"ltr", "l"},
	{"milliliter", "ml"},
	{"pieces", "pc"},
	{"piece", "pc"},
	{"pcs", "pc"},
	{"dozen", "dozen"},
	{"doz", "dozen"},
	{"bottle", "bottle"},
	{"btl", "bottle"},
	{"packet", "packet"},
	{"pkt", "packet"},
	{"box", "box"},
	{"can", "can"},
	{"tin", "tin"},
}

// normalizeQuantity rewrites a raw quantity token like "500GM" as "500 g".
func normalizeQuantity(raw string) string {
	raw = strings.ToLower(strings.TrimSpace(raw))
	m := qtyNumberUnitRe.FindStringSubmatch(raw)
	if m == nil {
		return raw
	}
	number, unit := m[1], m[2]
	for _, alias := range unitAliases {
		if strings.HasPrefix(unit, alias.prefix) {
			unit = alias.short
			break
		}
	}
	return fmt.Sprintf("%s %s", number, unit)
}

// namedQuantityPatterns infer pack sizes commonly printed as part of the item
// name rather than as a separate quantity column.
var namedQuantityPatterns = []struct {
	re  *regexp.Regexp
	qty string
}{
	{regexp.MustCompile(`milk.*?1l`), "1 l"},
	{regexp.MustCompile(`milk.*?500ml`), "500 ml"},
	{regexp.MustCompile(`milk.*?250ml`), "250 ml"},
	{regexp.MustCompile(`bread.*?400g`), "400 g"},
	{regexp.MustCompile(`bread.*?200g`), "200 g"},
	{regexp.MustCompile(`egg.*?12`), "12 pc"},
	{regexp.MustCompile(`egg.*?6`), "6 pc"},
	{regexp.MustCompile(`rice.*?1kg`), "1 kg"},
	{regexp.MustCompile(`rice.*?5kg`), "5 kg"},
	{regexp.MustCompile(`oil.*?1l`), "1 l"},
	{regexp.MustCompile(`oil.*?500ml`), "500 ml"},
	{regexp.MustCompile(`water.*?1l`), "1 l"},
	{regexp.MustCompile(`water.*?500ml`), "500 ml"},
	{regexp.MustCompile(`coke.*?750ml`), "750 ml"},
	{regexp.MustCompile(`coke.*?1l`), "1 l"},
	{regexp.MustCompile(`juice.*?1l`), "1 l"},
	{regexp.MustCompile(`biscuit.*?pack`), "1 packet"},
	{regexp.MustCompile(`noodles.*?pack`), "1 packet"},
	{regexp.MustCompile(`maggi.*?pack`), "1 packet"},
	{regexp.MustCompile(`tea.*?250g`), "250 g"},
	{regexp.MustCompile(`coffee.*?100g`), "100 g"},
	{regexp.MustCompile(`sugar.*?1kg`), "1 kg"},
	{regexp.MustCompile(`salt.*?1kg`), "1 kg"},
	{regexp.MustCompile(`dal.*?1kg`), "1 kg"},
	{regexp.MustCompile(`dal.*?500g`), "500 g"},
	{regexp.MustCompile(`atta.*?5kg`), "5 kg"},
	{regexp.MustCompile(`atta.*?1kg`), "1 kg"},
	{regexp.MustCompile(`flour.*?1kg`), "1 kg"},
	{regexp.MustCompile(`butter.*?100g`), "100 g"},
	{regexp.MustCompile(`butter.*?500g`), "500 g"},
	{regexp.MustCompile(`cheese.*?200g`), "200 g"},
	{regexp.MustCompile(`paneer.*?200g`), "200 g"},
	{regexp.MustCompile(`paneer.*?500g`), "500 g"},
	{regexp.MustCompile(`curd.*?200g`), "200 g"},
	{regexp.MustCompile(`curd.*?500g`), "500 g"},
	{regexp.MustCompile(`curd.*?1l`), "1 l"},
}

func inferQuantityFromName(name string) string {
	nameLower := strings.ToLower(name)
	for _, p := range namedQuantityPatterns {
		if p.re.MatchString(nameLower) {
			return p.qty
		}
	}
	return ""
}

// baseUnitConversions scale compound units to their base (kg, l, count).
var baseUnitConversions = []struct {
	prefix     string
	multiplier float64
}{
	{"kg", 1.0},
	{"gm", 0.001},
	{"g", 0.001},
	{"ltr", 1.0},
	{"l", 1.0},
	{"ml", 0.001},
	{"pcs", 1.0},
	{"pc", 1.0},
	{"pack", 1.0},
	{"pk", 1.0},
	{"nos", 1.0},
	{"no", 1.0},
	{"units", 1.0},
	{"unit", 1.0},
}

// ParseQuantity converts a quantity string into a numeric value in base units
// plus the base unit name. "500 g" yields (0.5, "g"); bare numbers count as
// units; anything unparseable defaults to one unit.
func ParseQuantity(quantity string) (float64, string) {
	quantity = strings.ToLower(strings.TrimSpace(quantity))

	m := qtyNumberUnitRe.FindStringSubmatch(quantity)
	if m != nil {
		number, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return 1.0, "unit"
		}
		unit := m[2]
		for _, conv := range baseUnitConversions {
			if strings.HasPrefix(unit, conv.prefix) {
				return number * conv.multiplier, conv.prefix
			}
		}
		return number, unit
	}

	if number, err := strconv.ParseFloat(quantity, 64); err == nil {
		return number, "unit"
	}
	return 1.0, "unit"
}
