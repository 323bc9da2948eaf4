package ledger

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var numberPattern = regexp.MustCompile(`[-+]?\d+(?:\.\d+)?`)

// ParseNumber extracts the first decimal number from free-form cell text.
// Thousands separators are stripped first, so "1,234.5원" yields 1234.5.
func ParseNumber(text string) (float64, error) {
	m := numberPattern.FindString(strings.ReplaceAll(text, ",", ""))
	if m == "" {
		return 0, fmt.Errorf("number not found in %q", text)
	}
	return strconv.ParseFloat(m, 64)
}

// NumericValue converts a raw (unformatted) cell read into a float64.
// Formula text means the store returned the formula instead of its computed
// value; that is an error, not something to parse around.
func NumericValue(raw any) (float64, error) {
	switch v := raw.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case string:
		s := strings.TrimSpace(v)
		if strings.HasPrefix(s, "=") {
			return 0, fmt.Errorf("cell holds formula text instead of a value: %s", s)
		}
		return ParseNumber(s)
	default:
		return 0, fmt.Errorf("cell value %v is not numeric", raw)
	}
}
