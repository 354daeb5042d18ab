package core

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/JonMunkholm/surveyclean/internal/dataset"
)

// DedupeReport collects the findings of one duplicate detection run.
type DedupeReport struct {
	Generated    time.Time
	RowsIn       int
	RowsOut      int
	Strategy     KeepStrategy
	KeyColumns   []string
	ExactGroups  []DuplicateGroup
	KeyGroups    []DuplicateGroup
	SimilarPairs []SimilarPair // nil when the similarity scan was not requested
	Patterns     []ColumnPattern
}

// Removed is the number of records dropped by deduplication.
func (r DedupeReport) Removed() int { return r.RowsIn - r.RowsOut }

// RemovedPercent is Removed as a share of the input, 0 for an empty input.
func (r DedupeReport) RemovedPercent() float64 {
	if r.RowsIn == 0 {
		return 0
	}
	return float64(r.Removed()) / float64(r.RowsIn) * 100
}

// AnalyzeDuplicates runs exact and key-subset detection plus the column pattern
// analysis over ds. The similarity scan is only run when similarity > 0.
func AnalyzeDuplicates(ds *dataset.Dataset, keys []string, similarity float64) (DedupeReport, error) {
	var present []string
	for _, k := range keys {
		if ds.Has(k) {
			present = append(present, k)
		}
	}

	keyGroups, err := KeyDuplicates(ds, present)
	if err != nil {
		return DedupeReport{}, err
	}

	rep := DedupeReport{
		Generated:   time.Now(),
		RowsIn:      ds.Len(),
		KeyColumns:  present,
		ExactGroups: ExactDuplicates(ds),
		KeyGroups:   keyGroups,
		Patterns:    ColumnPatterns(ds),
	}
	if similarity > 0 {
		rep.SimilarPairs = SimilarPairs(ds, similarity)
	}
	return rep, nil
}

const rule = "================================================================================"

// WriteText writes the report in plain text.
func (r DedupeReport) WriteText(w io.Writer) error {
	var b strings.Builder

	b.WriteString(rule + "\n")
	b.WriteString("DUPLICATE DETECTION AND REMOVAL REPORT\n")
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", r.Generated.Format("2006-01-02 15:04:05"))

	b.WriteString("SUMMARY\n")
	b.WriteString(strings.Repeat("-", 40) + "\n")
	fmt.Fprintf(&b, "Original records: %d\n", r.RowsIn)
	fmt.Fprintf(&b, "Records after deduplication: %d\n", r.RowsOut)
	fmt.Fprintf(&b, "Duplicates removed: %d\n", r.Removed())
	fmt.Fprintf(&b, "Duplicate percentage: %.2f%%\n", r.RemovedPercent())
	if r.Strategy != "" {
		fmt.Fprintf(&b, "Strategy: keep %s\n", r.Strategy)
	}
	b.WriteString("\n")

	writeGroups(&b, "EXACT DUPLICATE GROUPS", r.ExactGroups)
	writeGroups(&b, "KEY COLUMN DUPLICATE GROUPS ("+strings.Join(r.KeyColumns, ", ")+")", r.KeyGroups)

	if r.SimilarPairs != nil {
		b.WriteString("SIMILAR RECORD PAIRS\n")
		b.WriteString(strings.Repeat("-", 40) + "\n")
		if len(r.SimilarPairs) == 0 {
			b.WriteString("none\n")
		}
		for _, p := range r.SimilarPairs {
			fmt.Fprintf(&b, "rows %d and %d: %d matching columns (%.2f)\n", p.Row1, p.Row2, p.Matching, p.Similarity)
		}
		b.WriteString("\n")
	}

	b.WriteString("COLUMN STATISTICS\n")
	b.WriteString(strings.Repeat("-", 40) + "\n")
	for _, p := range r.Patterns {
		fmt.Fprintf(&b, "%s:\n", p.Column)
		fmt.Fprintf(&b, "  - Unique values: %d\n", p.Unique)
		fmt.Fprintf(&b, "  - Duplicate values: %d\n", p.Duplicates)
	}
	b.WriteString("\n" + rule + "\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func writeGroups(b *strings.Builder, title string, groups []DuplicateGroup) {
	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat("-", 40) + "\n")
	if len(groups) == 0 {
		b.WriteString("none\n\n")
		return
	}
	for _, g := range groups {
		vals := make([]string, len(g.Values))
		for i, v := range g.Values {
			vals[i] = dataset.Format(v)
		}
		fmt.Fprintf(b, "size %d, rows %v: %s\n", g.Size(), g.Rows, strings.Join(vals, " | "))
	}
	b.WriteString("\n")
}
