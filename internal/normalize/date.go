package normalize

import (
	"regexp"
	"time"
)

// isoDate is the canonical output layout.
const isoDate = "2006-01-02"

// dateLayouts is the fixed ordered list of layouts tried against raw release
// dates. First successful parse wins.
var dateLayouts = []string{
	"2006-01-02",
	"2-Jan-06",
	"January 2, 2006",
	"2 Jan, 2006",
	"Jan 2, 2006",
	"2 January, 2006",
	"02-01-2006",
}

// bareYear matches a four-digit year on its own.
var bareYear = regexp.MustCompile(`^\d{4}$`)

// Date parses a raw release date into ISO-8601 (YYYY-MM-DD). A bare year
// defaults to January 1st. Returns ok=false when no layout matches.
func Date(raw string) (string, bool) {
	cleaned := Text(raw)
	if cleaned == "" {
		return "", false
	}

	for _, layout := range dateLayouts {
		parsed, parseErr := time.Parse(layout, cleaned)
		if parseErr == nil {
			return parsed.Format(isoDate), true
		}
	}

	if bareYear.MatchString(cleaned) {
		return cleaned + "-01-01", true
	}
	return "", false
}
