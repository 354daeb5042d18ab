package core

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Height conversion factors.
const (
	cmPerFoot  = 30.48
	cmPerInch  = 2.54
	cmPerMetre = 100.0
)

// Magnitude thresholds used to guess the unit of a raw height.
const (
	minCentimetres = 50.0
	minFeet        = 3.0
)

// NormalizeHeight converts a raw height of unknown unit to centimetres.
//
//   - h >= 50: already centimetres
//   - 3 <= h < 50: feet with the decimal digit holding inches (5.8 is 5'8")
//   - h < 3: metres
//
// The inches digit is round(frac*10), half to even, and is never carried into
// feet: 5.95 becomes 5 feet 10 inches, not 6 feet. Missing or non-numeric input
// stays missing.
func NormalizeHeight(v any) (float64, bool) {
	h, ok := ToNumber(v)
	if !ok {
		return 0, false
	}
	return heightToCm(h), true
}

func heightToCm(h float64) float64 {
	switch {
	case h >= minCentimetres:
		return h
	case h >= minFeet:
		feet := math.Trunc(h)
		inches := math.RoundToEven((h - feet) * 10)
		return feet*cmPerFoot + inches*cmPerInch
	default:
		return h * cmPerMetre
	}
}

// CapitalizeFirst upper-cases the first letter and leaves the rest untouched.
func CapitalizeFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || unicode.IsUpper(r) {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// CanonicalMaritalStatus capitalizes a marital status and folds the
// "Divorced/separated" answer into "Divorced".
func CanonicalMaritalStatus(s string) string {
	return strings.ReplaceAll(CapitalizeFirst(s), "Divorced/separated", "Divorced")
}

// LowercaseClean is the companion cleaning policy: trim, lower-case, and turn the
// literal "nan" left behind by text round-trips back into a missing value.
// Non-text cells are returned unchanged.
//
// Not interchangeable with CapitalizeFirst: the two run on different column sets
// at different steps.
func LowercaseClean(v any) any {
	s, ok := v.(string)
	if !ok {
		return v
	}
	s = cases.Lower(language.Und).String(strings.TrimSpace(s))
	if s == "" || s == "nan" {
		return nil
	}
	return s
}
