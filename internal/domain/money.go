package domain

import (
	"encoding/json"
	"strconv"
	"strings"
)

// ParseMoney coerces a platform money field into a float64. Platforms send
// prices as JSON numbers, quoted strings, or omit them entirely; a missing
// or malformed value maps to 0 rather than failing the whole record.
func ParseMoney(v interface{}) float64 {
	switch t := v.(type) {
	case nil:
		return 0
	case float64:
		return t
	case float32:
		return float64(t)
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return 0
		}
		return f
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// ParseMoneyString parses a decimal string, treating blanks and garbage as 0.
func ParseMoneyString(s string) float64 {
	return ParseMoney(s)
}

// ParseIntLoose coerces a platform count field into an int with the same
// tolerance as ParseMoney.
func ParseIntLoose(v interface{}) int {
	switch t := v.(type) {
	case nil:
		return 0
	case float64:
		return int(t)
	case int:
		return t
	case int64:
		return int(t)
	case json.Number:
		i, err := t.Int64()
		if err != nil {
			return 0
		}
		return int(i)
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0
		}
		i, err := strconv.Atoi(s)
		if err != nil {
			return 0
		}
		return i
	default:
		return 0
	}
}
