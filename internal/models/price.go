package models

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var leadingNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// ParsePrice coerces loosely typed price input. Strings are read up to the
// first character that cannot continue a decimal literal, so "12.5 USD" is 12.5.
// The second result is false for missing, non-numeric, non-finite or negative input.
func ParsePrice(raw any) (float64, bool) {
	var v float64
	switch p := raw.(type) {
	case nil:
		return 0, false
	case float64:
		v = p
	case float32:
		v = float64(p)
	case int:
		v = float64(p)
	case int64:
		v = float64(p)
	case json.Number:
		f, err := p.Float64()
		if err != nil {
			return 0, false
		}
		v = f
	case string:
		m := leadingNumber.FindString(strings.TrimSpace(p))
		if m == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(m, 64)
		if err != nil {
			return 0, false
		}
		v = f
	default:
		return 0, false
	}

	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, false
	}
	return v, true
}
