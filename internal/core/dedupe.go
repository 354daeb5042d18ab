package core

// dedupe.go finds and removes duplicate records.
//
// Three strategies:
//  1. Exact rows: every column compares equal. Used by the pipeline to drop
//     repeats, keeping the first occurrence.
//  2. Key subset: equality over a chosen set of columns, ignoring the rest.
//     Reported with group sizes; the dataset is not touched.
//  3. Similar rows: pairs matching on most (not all) columns. Quadratic in the
//     number of rows and advisory only, so it is never run implicitly.

import (
	"fmt"
	"strings"

	"github.com/JonMunkholm/surveyclean/internal/dataset"
)

// KeepStrategy selects which member of a duplicate group survives removal.
type KeepStrategy string

const (
	KeepFirst KeepStrategy = "first"
	KeepLast  KeepStrategy = "last"
	KeepNone  KeepStrategy = "none"
)

// ParseKeepStrategy converts a config value to a KeepStrategy.
// Matching ignores case and surrounding spaces.
func ParseKeepStrategy(s string) (KeepStrategy, error) {
	switch k := KeepStrategy(strings.ToLower(strings.TrimSpace(s))); k {
	case KeepFirst, KeepLast, KeepNone:
		return k, nil
	}
	return "", fmt.Errorf("unknown keep strategy %q (want first, last or none)", s)
}

// DuplicateGroup is a set of rows sharing the same values over Columns.
type DuplicateGroup struct {
	Columns []string // Columns compared
	Values  []any    // Shared values, in Columns order
	Rows    []int    // Row positions, ascending
}

// Size is the number of records in the group.
func (g DuplicateGroup) Size() int { return len(g.Rows) }

// SimilarPair is two rows that agree on most columns.
type SimilarPair struct {
	Row1       int
	Row2       int
	Matching   int     // Columns with equal text
	Similarity float64 // Matching / number of columns
}

// ColumnPattern summarises how often values repeat within one column.
type ColumnPattern struct {
	Column     string
	Duplicates int // Rows whose value appears more than once (missing included)
	Unique     int // Distinct non-missing values
	NonMissing int
}

// DuplicateMask marks every row that shares its cols values with another row.
// An empty cols compares all columns.
func DuplicateMask(ds *dataset.Dataset, cols []string) []bool {
	if len(cols) == 0 {
		cols = ds.Columns()
	}
	counts := make(map[string]int, ds.Len())
	keys := make([]string, ds.Len())
	for i := range keys {
		keys[i] = ds.RowKey(i, cols)
		counts[keys[i]]++
	}
	mask := make([]bool, ds.Len())
	for i, k := range keys {
		mask[i] = counts[k] > 1
	}
	return mask
}

// DropDuplicates removes rows that repeat earlier (or later) rows over every
// column. Survivors keep their original relative order. It returns the new
// dataset and how many rows were removed.
func DropDuplicates(ds *dataset.Dataset, keep KeepStrategy) (*dataset.Dataset, int) {
	cols := ds.Columns()
	keys := make([]string, ds.Len())
	first := make(map[string]int, ds.Len())
	last := make(map[string]int, ds.Len())
	count := make(map[string]int, ds.Len())
	for i := range keys {
		k := ds.RowKey(i, cols)
		keys[i] = k
		if _, seen := first[k]; !seen {
			first[k] = i
		}
		last[k] = i
		count[k]++
	}

	out := ds.Filter(func(i int) bool {
		k := keys[i]
		switch keep {
		case KeepLast:
			return last[k] == i
		case KeepNone:
			return count[k] == 1
		default:
			return first[k] == i
		}
	})
	return out, ds.Len() - out.Len()
}

// DropExactDuplicates keeps the first occurrence of every distinct row.
func DropExactDuplicates(ds *dataset.Dataset) (*dataset.Dataset, int) {
	return DropDuplicates(ds, KeepFirst)
}

// KeyDuplicates reports groups of rows sharing the same values over keys, ordered
// by the position of their first member. Groups of one are omitted, as are rows
// with a missing key value, which belong to no group. Every key must be a
// column; no keys means all columns.
func KeyDuplicates(ds *dataset.Dataset, keys []string) ([]DuplicateGroup, error) {
	for _, k := range keys {
		if !ds.Has(k) {
			return nil, fmt.Errorf("unknown key column %q", k)
		}
	}
	if len(keys) == 0 {
		keys = ds.Columns()
	}

	index := make(map[string]int)
	var groups []DuplicateGroup
rows:
	for i := 0; i < ds.Len(); i++ {
		for _, c := range keys {
			if dataset.IsMissing(ds.Value(i, c)) {
				continue rows
			}
		}
		k := ds.RowKey(i, keys)
		g, ok := index[k]
		if !ok {
			values := make([]any, len(keys))
			for j, c := range keys {
				values[j] = ds.Value(i, c)
			}
			groups = append(groups, DuplicateGroup{Columns: keys, Values: values})
			g = len(groups) - 1
			index[k] = g
		}
		groups[g].Rows = append(groups[g].Rows, i)
	}

	out := groups[:0]
	for _, g := range groups {
		if g.Size() > 1 {
			out = append(out, g)
		}
	}
	return out, nil
}

// ExactDuplicates is KeyDuplicates over every column.
func ExactDuplicates(ds *dataset.Dataset) []DuplicateGroup {
	groups, _ := KeyDuplicates(ds, ds.Columns())
	return groups
}

// SimilarPairs compares every pair of rows by text and returns those whose share
// of equal columns is at least threshold but below 1. Missing cells compare equal
// to each other. This is O(n^2) in rows.
func SimilarPairs(ds *dataset.Dataset, threshold float64) []SimilarPair {
	ncol := len(ds.Columns())
	if ncol == 0 {
		return nil
	}
	text := make([][]string, ds.Len())
	for i := range text {
		text[i] = ds.Strings(i)
	}

	var pairs []SimilarPair
	for i := 0; i < len(text); i++ {
		for j := i + 1; j < len(text); j++ {
			matches := 0
			for c := 0; c < ncol; c++ {
				if text[i][c] == text[j][c] {
					matches++
				}
			}
			sim := float64(matches) / float64(ncol)
			if sim >= threshold && sim < 1.0 {
				pairs = append(pairs, SimilarPair{Row1: i, Row2: j, Matching: matches, Similarity: sim})
			}
		}
	}
	return pairs
}

// ColumnPatterns reports per-column value repetition, in column order.
func ColumnPatterns(ds *dataset.Dataset) []ColumnPattern {
	cols := ds.Columns()
	out := make([]ColumnPattern, 0, len(cols))
	for _, c := range cols {
		mask := DuplicateMask(ds, []string{c})
		p := ColumnPattern{Column: c}
		distinct := make(map[string]struct{})
		for i := 0; i < ds.Len(); i++ {
			if mask[i] {
				p.Duplicates++
			}
			v := ds.Value(i, c)
			if v == nil {
				continue
			}
			p.NonMissing++
			distinct[dataset.CellKey(v)] = struct{}{}
		}
		p.Unique = len(distinct)
		out = append(out, p)
	}
	return out
}
