package normalize

import "strings"

// platformKeywords maps storefront platform phrasing onto the canonical
// platform set. Checked as substrings of the lowered raw value.
var platformKeywords = []struct {
	keyword   string
	canonical string
}{
	{"windows", "Windows"},
	{"win", "Windows"},
	{"pc", "Windows"},
	{"steam", "Windows"},
	{"xbox", "Windows"},
	{"ea app", "Windows"},
	{"ubisoft", "Windows"},
	{"microsoft", "Windows"},
	{"macos", "Mac"},
	{"mac", "Mac"},
	{"osx", "Mac"},
	{"os x", "Mac"},
	{"linux", "Linux"},
	{"steamos", "Linux"},
}

// platformOrder fixes the output ordering of the canonical set.
var platformOrder = []string{"Windows", "Mac", "Linux"}

// Platform canonicalizes a raw platform value into a deduplicated,
// comma-joined subset of {Windows, Mac, Linux}. Values with no recognized
// keyword pass through cleaned; the empty string is the null result.
func Platform(raw string) string {
	cleaned := Text(raw)
	if cleaned == "" {
		return ""
	}

	lowered := strings.ToLower(cleaned)
	matched := make(map[string]bool, len(platformOrder))
	for _, entry := range platformKeywords {
		if strings.Contains(lowered, entry.keyword) {
			matched[entry.canonical] = true
		}
	}

	if len(matched) == 0 {
		return cleaned
	}

	out := make([]string, 0, len(matched))
	for _, name := range platformOrder {
		if matched[name] {
			out = append(out, name)
		}
	}
	return strings.Join(out, ", ")
}
