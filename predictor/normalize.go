package predictor

import (
	"strconv"
	"strings"
)

// Normalize canonicalizes a predicted value for comparison purposes —
// numeric strings are reformatted to a consistent decimal form and
// surrounding whitespace/case differences are ironed out for
// non-numeric keys known to be case-insensitive identifiers.
func Normalize(key, value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}

	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}

	if isCaseInsensitiveKey(key) {
		return strings.ToLower(trimmed)
	}
	return trimmed
}

var caseInsensitiveKeys = map[string]bool{
	"item_brand":   true,
	"item_category": true,
	"content_group": true,
	"page_type":    true,
	"currency":     true,
}

func isCaseInsensitiveKey(key string) bool {
	return caseInsensitiveKeys[strings.ToLower(key)]
}
