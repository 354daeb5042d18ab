package core

import (
	"strings"
	"testing"
	"time"
)

func TestAnalyzeDuplicates(t *testing.T) {
	ds := buildDataset(t, []string{ColAge, ColSex, "note"},
		[]any{30.0, "male", "a"},
		[]any{30.0, "male", "a"},
		[]any{30.0, "male", "b"},
		[]any{22.0, "female", "c"},
	)

	rep, err := AnalyzeDuplicates(ds, []string{ColAge, ColSex, ColEducation}, 0)
	if err != nil {
		t.Fatalf("AnalyzeDuplicates error = %v", err)
	}
	if rep.RowsIn != 4 {
		t.Errorf("RowsIn = %d, want 4", rep.RowsIn)
	}
	if len(rep.KeyColumns) != 2 {
		t.Errorf("KeyColumns = %v, absent keys should be skipped", rep.KeyColumns)
	}
	if len(rep.ExactGroups) != 1 || rep.ExactGroups[0].Size() != 2 {
		t.Errorf("ExactGroups = %+v", rep.ExactGroups)
	}
	if len(rep.KeyGroups) != 1 || rep.KeyGroups[0].Size() != 3 {
		t.Errorf("KeyGroups = %+v", rep.KeyGroups)
	}
	if rep.SimilarPairs != nil {
		t.Error("similarity scan ran without being requested")
	}

	rep, err = AnalyzeDuplicates(ds, nil, 0.6)
	if err != nil {
		t.Fatal(err)
	}
	if rep.SimilarPairs == nil {
		t.Error("similarity scan skipped")
	}
}

func TestDedupeReport_RemovedPercent(t *testing.T) {
	if got := (DedupeReport{}).RemovedPercent(); got != 0 {
		t.Errorf("empty RemovedPercent = %v, want 0", got)
	}
	rep := DedupeReport{RowsIn: 8, RowsOut: 6}
	if rep.Removed() != 2 || rep.RemovedPercent() != 25 {
		t.Errorf("Removed = %d (%.1f%%), want 2 (25%%)", rep.Removed(), rep.RemovedPercent())
	}
}

func TestDedupeReport_WriteText(t *testing.T) {
	rep := DedupeReport{
		Generated:   time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		RowsIn:      4,
		RowsOut:     3,
		Strategy:    KeepFirst,
		KeyColumns:  []string{ColAge, ColSex},
		ExactGroups: []DuplicateGroup{{Values: []any{30.0, "male"}, Rows: []int{0, 1}}},
		Patterns:    []ColumnPattern{{Column: ColSex, Duplicates: 3, Unique: 2, NonMissing: 4}},
	}

	var b strings.Builder
	if err := rep.WriteText(&b); err != nil {
		t.Fatalf("WriteText error = %v", err)
	}
	out := b.String()

	for _, want := range []string{
		"DUPLICATE DETECTION AND REMOVAL REPORT",
		"Generated: 2024-03-01 12:00:00",
		"Original records: 4",
		"Records after deduplication: 3",
		"Duplicates removed: 1",
		"Duplicate percentage: 25.00%",
		"Strategy: keep first",
		"size 2, rows [0 1]: 30 | male",
		"KEY COLUMN DUPLICATE GROUPS (age, sex)",
		"  - Unique values: 2",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q", want)
		}
	}
	if strings.Contains(out, "SIMILAR RECORD PAIRS") {
		t.Error("similar section printed without a scan")
	}
}
