package core

import (
	"errors"
	"testing"
)

func TestCleanSurvey(t *testing.T) {
	cols := []string{"start", ColSex, ColAge, ColMaritalStatus, ColEducation, ColWeightKg, ColHeightRaw, "comment"}
	ds := buildDataset(t, cols,
		[]any{"2021-01-01", " Male ", 30.0, "MARRIED", "Degree", 70.0, 1.8, "hi"},
		[]any{"2021-01-02", "nan", 41.0, "", "NaN", 80.0, "5.8", "x"},
	)

	out, err := CleanSurvey(ds)
	if err != nil {
		t.Fatalf("CleanSurvey error = %v", err)
	}

	got := out.Columns()
	if len(got) != len(CleanColumns) {
		t.Fatalf("columns = %v, want %v", got, CleanColumns)
	}
	for i := range got {
		if got[i] != CleanColumns[i] {
			t.Errorf("column %d = %q, want %q", i, got[i], CleanColumns[i])
		}
	}

	checks := []struct {
		row  int
		col  string
		want any
	}{
		{0, ColSex, "male"},
		{0, ColMaritalStatus, "married"},
		{0, ColEducation, "degree"},
		{0, ColAge, 30.0},
		{1, ColSex, nil},
		{1, ColMaritalStatus, nil},
		{1, ColEducation, nil},
		{1, ColHeightRaw, "5.8"},
	}
	for _, c := range checks {
		if v := out.Value(c.row, c.col); v != c.want {
			t.Errorf("row %d %s = %v, want %v", c.row, c.col, v, c.want)
		}
	}

	if ds.Value(0, ColSex) != " Male " {
		t.Error("input dataset was modified")
	}
}

func TestCleanSurvey_MissingColumn(t *testing.T) {
	ds := buildDataset(t, []string{ColAge, ColSex})
	_, err := CleanSurvey(ds)
	if !errors.Is(err, ErrMissingColumns) {
		t.Errorf("err = %v, want ErrMissingColumns", err)
	}
}
