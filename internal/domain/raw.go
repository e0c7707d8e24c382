package domain

import (
	"strconv"
	"strings"
)

// RawRecord is a single scraped row before normalization: an open mapping
// from source-specific field name to raw value. Shape varies per source;
// a nil value is the explicit null marker.
type RawRecord map[string]any

// Clone returns a shallow copy of the record.
func (r RawRecord) Clone() RawRecord {
	if r == nil {
		return nil
	}
	out := make(RawRecord, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// String returns the value under key as a string, or "" when the key is
// absent, nil, or not representable as text. Numeric values are formatted.
func (r RawRecord) String(key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	default:
		return ""
	}
}

// Float returns the value under key as a float64 and whether it was present
// and numeric. String values are parsed.
func (r RawRecord) Float(key string) (float64, bool) {
	v, ok := r[key]
	if !ok || v == nil {
		return 0, false
	}
	switch val := v.(type) {
	case float64:
		return val, true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case string:
		parsed, parseErr := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if parseErr != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

// IsNull reports whether key is absent or holds the null marker.
func (r RawRecord) IsNull(key string) bool {
	v, ok := r[key]
	return !ok || v == nil
}
