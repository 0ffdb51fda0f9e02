package actions

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// toInt reads the leading integer of v the way a lenient form field would:
// "1500ms" is 1500, "12.9" is 12 and numbers are truncated. ok is false when
// no integer can be read.
func toInt(v any) (n int64, ok bool) {
	switch x := v.(type) {
	case int:
		return int64(x), true
	case int32:
		return int64(x), true
	case int64:
		return x, true
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return 0, false
		}
		return int64(x), true
	case string:
		return leadingInt(x)
	default:
		return 0, false
	}
}

func leadingInt(s string) (int64, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		// Out of range; saturate so bounds checks reject it.
		if s[0] == '-' {
			return math.MinInt64, true
		}
		return math.MaxInt64, true
	}
	return n, true
}

// intOrZero is toInt with unreadable values resolved to 0.
func intOrZero(v any) int64 {
	n, _ := toInt(v)
	return n
}

// isBlank reports values that mean "not set" for optional numeric fields:
// nil, "", 0 and false.
func isBlank(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return x == ""
	case bool:
		return !x
	case int:
		return x == 0
	case int64:
		return x == 0
	case float64:
		return x == 0 || math.IsNaN(x)
	default:
		return false
	}
}
