package dataset

import (
	"strconv"
	"strings"
	"time"
)

// keySep separates cells inside a row key. It cannot appear in a formatted number
// and is vanishingly rare in survey text.
const keySep = "\x1f"

// IsMissing reports whether a cell holds no value.
func IsMissing(v any) bool { return v == nil }

// Format renders a cell as text. Missing cells render as "".
func Format(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(x, 10)
	case int:
		return strconv.Itoa(x)
	case string:
		return x
	case time.Time:
		return x.Format(time.RFC3339)
	default:
		return ""
	}
}

// CellKey returns a type-tagged string identifying a cell's value. Two cells have
// the same key exactly when they compare equal: numbers compare by value whatever
// their Go type, and missing equals missing.
func CellKey(v any) string {
	switch x := v.(type) {
	case nil:
		return "n"
	case float64:
		return "f" + strconv.FormatFloat(x, 'g', -1, 64)
	case int64:
		return "f" + strconv.FormatFloat(float64(x), 'g', -1, 64)
	case int:
		return "f" + strconv.FormatFloat(float64(x), 'g', -1, 64)
	case string:
		return "s" + x
	case time.Time:
		return "t" + x.UTC().Format(time.RFC3339Nano)
	default:
		return "?"
	}
}

// Equal reports whether two cells compare equal under CellKey semantics.
func Equal(a, b any) bool { return CellKey(a) == CellKey(b) }

// RowKey builds the grouping key of row i over cols.
func (d *Dataset) RowKey(i int, cols []string) string {
	var b strings.Builder
	for k, c := range cols {
		if k > 0 {
			b.WriteString(keySep)
		}
		b.WriteString(CellKey(d.Value(i, c)))
	}
	return b.String()
}

// Strings returns row i formatted as text, in column order.
func (d *Dataset) Strings(i int) []string {
	out := make([]string, len(d.columns))
	for j, v := range d.rows[i] {
		out[j] = Format(v)
	}
	return out
}
