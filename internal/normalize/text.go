// Package normalize provides the pure field normalizers applied to raw
// scraped values. Every normalizer is total: malformed input maps to the
// null result, never to an error.
package normalize

import (
	"regexp"
	"strings"
)

// entityReplacer decodes the HTML entities that survive scraping.
var entityReplacer = strings.NewReplacer(
	"&nbsp;", " ",
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
)

// mojibakeReplacer repairs the common UTF-8-read-as-single-byte artifacts
// seen in storefront descriptions. Each punctuation mark carries two keys:
// the Latin-1 reading, where the trailing bytes stay C1 controls, and the
// cp1252 reading, where they surface as printable characters.
var mojibakeReplacer = strings.NewReplacer(
	"\u00e2\u0080\u0098", "'",
	"\u00e2\u0080\u0099", "'",
	"\u00e2\u0080\u009c", `"`,
	"\u00e2\u0080\u009d", `"`,
	"\u00e2\u0080\u0093", "–",
	"\u00e2\u0080\u0094", "—",
	"\u00e2\u0084\u00a2", "™",
	"â€˜", "'",
	"â€™", "'",
	"â€œ", `"`,
	"â€\u009d", `"`,
	"â€“", "–",
	"â€”", "—",
	"â„¢", "™",
	"Â®", "®",
	"Â©", "©",
	"Â ", " ",
	"Â", "",
)

// invisibleReplacer strips non-breaking and zero-width codepoints.
var invisibleReplacer = strings.NewReplacer(
	"\u00a0", " ",
	"\u200b", "",
	"\u200c", "",
	"\u200d", "",
	"\ufeff", "",
)

// controlChars matches C0/C1 control characters except tab and newline,
// which the whitespace collapse handles.
var controlChars = regexp.MustCompile(`[\x00-\x08\x0b\x0c\x0e-\x1f\x7f]`)

// nullSentinels are the literal placeholder values treated as null.
var nullSentinels = map[string]bool{
	"n/a":     true,
	"na":      true,
	"null":    true,
	"none":    true,
	"unknown": true,
}

// Text cleans a raw text value: decodes HTML entities, repairs mojibake,
// strips control and zero-width characters, collapses whitespace runs, and
// trims. The empty string is the null result; placeholder sentinels such as
// "N/A" normalize to it.
func Text(raw string) string {
	cleaned := entityReplacer.Replace(raw)
	cleaned = mojibakeReplacer.Replace(cleaned)
	cleaned = invisibleReplacer.Replace(cleaned)
	cleaned = controlChars.ReplaceAllString(cleaned, "")
	cleaned = strings.Join(strings.Fields(cleaned), " ")

	if nullSentinels[strings.ToLower(cleaned)] {
		return ""
	}
	return cleaned
}

// IsNull reports whether a raw text value cleans down to the null result.
func IsNull(raw string) bool {
	return Text(raw) == ""
}

// Description cleans a description and truncates it to maxLen runes.
func Description(raw string, maxLen int) string {
	cleaned := Text(raw)
	runes := []rune(cleaned)
	if len(runes) <= maxLen {
		return cleaned
	}
	return string(runes[:maxLen])
}
