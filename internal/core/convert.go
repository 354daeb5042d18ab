package core

// convert.go coerces raw cells into the types the cleaning rules need.
//
// Survey exports are messy: numeric columns can hold stray text, blanks or the
// literal "nan" written back by earlier tooling. None of that is an error here.
// Anything that is not a usable number becomes missing and the record is judged
// later by the validity filter.

import (
	"math"
	"strings"

	"github.com/spf13/cast"
)

// ToNumber converts a cell to float64. The second result is false for missing
// cells, blank or non-numeric text, NaN and infinities.
func ToNumber(v any) (float64, bool) {
	if v == nil {
		return 0, false
	}
	if s, ok := v.(string); ok {
		s = strings.TrimSpace(s)
		if s == "" {
			return 0, false
		}
		v = s
	}

	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// numberCell is ToNumber packed back into a cell: float64 or nil.
func numberCell(v any) any {
	if f, ok := ToNumber(v); ok {
		return f
	}
	return nil
}

// ToText returns the string held by a cell. Non-string cells are formatted with
// cast; missing cells return false.
func ToText(v any) (string, bool) {
	if v == nil {
		return "", false
	}
	if s, ok := v.(string); ok {
		return s, true
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return "", false
	}
	return s, true
}
