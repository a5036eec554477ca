package ingest

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// formatDouble renders an EXPRESS REAL as fixed 8-decimal STEP text.
// Non-finite values render as "0.00"; coerce reports whether that
// substitution happened.
func formatDouble(v float64) (text string, finite bool) {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return "0.00", false
	}
	return strconv.FormatFloat(v, 'f', 8, 64), true
}

// formatString renders an EXPRESS STRING as single-quoted STEP text.
func formatString(s string) string {
	return "'" + s + "'"
}

// formatInteger renders an EXPRESS INTEGER. Graph producers occasionally
// serialize integers through a floating representation; a trailing ".0"
// artifact is stripped.
func formatInteger(v int64) string {
	s := strconv.FormatInt(v, 10)
	return strings.TrimSuffix(s, ".0")
}

// formatHexBinary renders an EXPRESS BINARY from its raw literal text,
// truncated at the datatype suffix marker when one is present, wrapped in
// double quotes.
func formatHexBinary(text string) string {
	if i := strings.IndexByte(text, '^'); i >= 0 {
		text = text[:i]
	}
	return `"` + text + `"`
}

// asInt coerces a triple object to an integer. Producers deliver int64
// natively, but JSON decoding yields float64 for whole numbers.
func asInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int64(n), true
	default:
		return 0, false
	}
}

// asFloat coerces a triple object to a float.
func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}

// asString coerces a triple object to its lexical form. Header fields
// accept any literal and keep its printed representation.
func asString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
