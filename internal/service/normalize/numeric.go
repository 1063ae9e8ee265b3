package normalize

import (
	"math"
	"strconv"
)

// SafeInt64 converts an arbitrary decoded value into an integer counter.
// Platform APIs disagree on numeric encoding (YouTube ships counters as
// JSON strings), so any value that cannot be read as a number maps to nil
// rather than an error.
func SafeInt64(v interface{}) *int64 {
	switch n := v.(type) {
	case nil:
		return nil
	case int:
		x := int64(n)
		return &x
	case int32:
		x := int64(n)
		return &x
	case int64:
		return &n
	case float32:
		x := int64(n)
		return &x
	case float64:
		x := int64(n)
		return &x
	case string:
		if x, err := strconv.ParseInt(n, 10, 64); err == nil {
			return &x
		}
		return nil
	default:
		return nil
	}
}

// SafeFloat converts an arbitrary decoded value into a float, nil on
// failure.
func SafeFloat(v interface{}) *float64 {
	switch n := v.(type) {
	case nil:
		return nil
	case int:
		x := float64(n)
		return &x
	case int64:
		x := float64(n)
		return &x
	case float32:
		x := float64(n)
		return &x
	case float64:
		return &n
	case string:
		if x, err := strconv.ParseFloat(n, 64); err == nil {
			return &x
		}
		return nil
	default:
		return nil
	}
}

// Round2 rounds to two decimal places.
func Round2(f float64) float64 {
	return math.Round(f*100) / 100
}
