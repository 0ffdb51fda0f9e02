// Package validate provides small composable predicates used to check command
// meta values.
//
// A Rule inspects a single value and returns nil on success or an *Error
// describing the failure. All runs a list of rule results and returns the
// first failure, so later rules may rely on earlier ones having passed.
//
// Every rule except StringNotEmpty treats a nil value as "absent" and passes,
// which lets optional fields opt out of validation.
package validate

import (
	"encoding/json"
	"fmt"
	"regexp"
)

// shortLength is the maximum rendered length of an offending value.
const shortLength = 20

// Rule checks one value.
type Rule func(v any) error

// Error describes a value that failed a rule.
type Error struct {
	Field  string
	Value  any
	Reason string
}

func (e *Error) Error() string {
	field := e.Field
	if field == "" {
		field = "Value"
	}
	return fmt.Sprintf("'%s': '%s' %s", field, Shorten(e.Value, shortLength), e.Reason)
}

// Shorten renders v as a string no longer than length runes, replacing the
// tail with "..." when it has to cut.
func Shorten(v any, length int) string {
	s, ok := v.(string)
	if !ok {
		s = fmt.Sprint(v)
	}
	runes := []rune(s)
	if len(runes) <= length {
		return s
	}
	if length < 3 {
		return string(runes[:length])
	}
	return string(runes[:length-3]) + "..."
}

// All returns the first non-nil error in results, or nil.
func All(results ...error) error {
	for _, err := range results {
		if err != nil {
			return err
		}
	}
	return nil
}

func fail(field string, v any, format string, args ...any) error {
	return &Error{Field: field, Value: v, Reason: fmt.Sprintf(format, args...)}
}

// StringNotEmpty requires a non-empty string. Unlike the other rules it does
// not accept an absent value.
func StringNotEmpty(field string) Rule {
	return func(v any) error {
		if s, ok := v.(string); ok && s != "" {
			return nil
		}
		return fail(field, v, "can not be empty!")
	}
}

// StringLength bounds the length of a string. A nil bound is not checked.
func StringLength(field string, min, max *int) Rule {
	return func(v any) error {
		if v == nil {
			return nil
		}
		s, ok := v.(string)
		if !ok {
			return fail(field, v, "must be string!")
		}
		n := len([]rune(s))
		if min != nil && n < *min {
			return fail(field, v, "must be longer or equal than %d!", *min)
		}
		if max != nil && n > *max {
			return fail(field, v, "must be shorter or equal than %d!", *max)
		}
		return nil
	}
}

// StringLengthMinMax is StringLength with both bounds set.
func StringLengthMinMax(field string, min, max int) Rule {
	return StringLength(field, &min, &max)
}

// StringMaxLength is StringLength with only an upper bound.
func StringMaxLength(field string, max int) Rule {
	return StringLength(field, nil, &max)
}

// StringMatchRegex requires a string matching re.
func StringMatchRegex(field string, re *regexp.Regexp) Rule {
	return func(v any) error {
		if v == nil {
			return nil
		}
		s, ok := v.(string)
		if !ok {
			return fail(field, v, "must be string!")
		}
		if !re.MatchString(s) {
			return fail(field, v, "not match regex %s", re.String())
		}
		return nil
	}
}

// NumberMinMax bounds an integer value.
func NumberMinMax(field string, min, max int64) Rule {
	return func(v any) error {
		if v == nil {
			return nil
		}
		n, ok := asInt64(v)
		if !ok {
			return fail(field, v, "must be number!")
		}
		if n < min {
			return fail(field, v, "must be greater or equal than %d!", min)
		}
		if n > max {
			return fail(field, v, "must be less or equal than %d!", max)
		}
		return nil
	}
}

// Enum requires v to be one of values.
func Enum(field string, values []string) Rule {
	return func(v any) error {
		if v == nil {
			return nil
		}
		if s, ok := v.(string); ok {
			for _, allowed := range values {
				if s == allowed {
					return nil
				}
			}
		}
		encoded, _ := json.Marshal(values)
		return fail(field, v, "must be one of %s!", encoded)
	}
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		if n != float64(int64(n)) {
			return 0, false
		}
		return int64(n), true
	default:
		return 0, false
	}
}
