package normalize

import (
	"regexp"
	"strconv"
	"strings"
)

// currencySymbols are stripped before numeric extraction. No currency
// conversion happens; amounts stay in the source's original unit.
var currencySymbols = strings.NewReplacer(
	"€", "", // €
	"$", "",
	"£", "", // £
	"¥", "", // ¥
)

// numericToken matches the first numeric token after separator repair.
var numericToken = regexp.MustCompile(`\d+(?:\.\d+)?`)

// Price parses a raw price string into a non-negative amount. "Free" in any
// casing is 0.0. When both "," and "." appear the European convention is
// assumed: "." is the thousands separator and "," the decimal mark; a lone
// "," is treated as the decimal mark. Returns ok=false when no numeric token
// is present.
func Price(raw string) (float64, bool) {
	cleaned := Text(raw)
	if cleaned == "" {
		return 0, false
	}

	if strings.Contains(strings.ToLower(cleaned), "free") {
		return 0, true
	}

	cleaned = currencySymbols.Replace(cleaned)

	hasComma := strings.Contains(cleaned, ",")
	hasDot := strings.Contains(cleaned, ".")
	switch {
	case hasComma && hasDot:
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	case hasComma:
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	}

	match := numericToken.FindString(cleaned)
	if match == "" {
		return 0, false
	}

	value, parseErr := strconv.ParseFloat(match, 64)
	if parseErr != nil || value < 0 {
		return 0, false
	}
	return value, true
}

// ResolveDiscountedPrice picks the single final price for a record.
// Priority: an explicit discounted/current price wins outright; otherwise a
// positive discount percentage applied to the original price; a non-positive
// percentage yields the original price unchanged. nil when nothing resolves;
// the missing-price business rule decides what happens to it after dedup.
func ResolveDiscountedPrice(original, discounted, discountPct *float64) *float64 {
	if discounted != nil {
		return discounted
	}
	if original == nil {
		return nil
	}
	if discountPct != nil && *discountPct > 0 {
		resolved := roundTo2(*original * (1 - *discountPct/100))
		return &resolved
	}
	if discountPct != nil {
		value := *original
		return &value
	}
	return nil
}

// RecomputeDiscountPercentage derives the discount percentage from the two
// prices when both are present and positive, clamped to be non-negative.
// Returns nil when it cannot be derived.
func RecomputeDiscountPercentage(original, discounted *float64) *float64 {
	if original == nil || discounted == nil || *original <= 0 || *discounted <= 0 {
		return nil
	}
	pct := roundTo2((*original - *discounted) / *original * 100)
	if pct < 0 {
		pct = 0
	}
	return &pct
}
