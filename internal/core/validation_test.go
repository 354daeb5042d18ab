package core

import (
	"testing"

	"github.com/JonMunkholm/surveyclean/internal/dataset"
)

func validationRow(t *testing.T, age, sex, weight, height, bmi any) *dataset.Dataset {
	t.Helper()
	ds := dataset.MustNew(ColAge, ColSex, ColWeightKg, ColHeightCm, ColBMI)
	if err := ds.Append([]any{age, sex, weight, height, bmi}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	return ds
}

func TestValidateRecord(t *testing.T) {
	tests := []struct {
		name       string
		ds         func(t *testing.T) *dataset.Dataset
		wantValid  bool
		wantReason []string
	}{
		{
			name:      "valid record",
			ds:        func(t *testing.T) *dataset.Dataset { return validationRow(t, 30.0, "Male", 70.0, 175.0, 22.9) },
			wantValid: true,
		},
		{
			name:      "bmi at upper bound retained",
			ds:        func(t *testing.T) *dataset.Dataset { return validationRow(t, 30.0, "Male", 70.0, 175.0, 60.0) },
			wantValid: true,
		},
		{
			name:      "bmi at lower bound retained",
			ds:        func(t *testing.T) *dataset.Dataset { return validationRow(t, 30.0, "Male", 70.0, 175.0, 10.0) },
			wantValid: true,
		},
		{
			name:       "bmi above range dropped",
			ds:         func(t *testing.T) *dataset.Dataset { return validationRow(t, 30.0, "Male", 70.0, 175.0, 61.0) },
			wantReason: []string{ReasonBMIOutOfRange},
		},
		{
			name:       "bmi below range dropped",
			ds:         func(t *testing.T) *dataset.Dataset { return validationRow(t, 30.0, "Male", 70.0, 175.0, 9.99) },
			wantReason: []string{ReasonBMIOutOfRange},
		},
		{
			name:       "missing age dropped regardless of bmi",
			ds:         func(t *testing.T) *dataset.Dataset { return validationRow(t, nil, "Male", 70.0, 175.0, 22.9) },
			wantReason: []string{ReasonMissingAge},
		},
		{
			name:       "empty sex dropped",
			ds:         func(t *testing.T) *dataset.Dataset { return validationRow(t, 30.0, "", 70.0, 175.0, 22.9) },
			wantReason: []string{ReasonMissingSex},
		},
		{
			name:       "missing weight and bmi",
			ds:         func(t *testing.T) *dataset.Dataset { return validationRow(t, 30.0, "Male", nil, 175.0, nil) },
			wantReason: []string{ReasonMissingWeight, ReasonMissingBMI},
		},
		{
			name:       "missing height",
			ds:         func(t *testing.T) *dataset.Dataset { return validationRow(t, 30.0, "Male", 70.0, nil, 22.9) },
			wantReason: []string{ReasonMissingHeight},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ValidateRecord(tt.ds(t), 0)
			if res.Valid != tt.wantValid {
				t.Fatalf("Valid = %v, want %v (errors: %v)", res.Valid, tt.wantValid, res.Errors)
			}
			if len(res.Errors) != len(tt.wantReason) {
				t.Fatalf("got %d errors %v, want %v", len(res.Errors), res.Errors, tt.wantReason)
			}
			for i, e := range res.Errors {
				if e.Reason != tt.wantReason[i] {
					t.Errorf("error[%d].Reason = %q, want %q", i, e.Reason, tt.wantReason[i])
				}
			}
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	e := ValidationError{Field: ColBMI, Value: 61.0, Reason: ReasonBMIOutOfRange}
	if got, want := e.Error(), "bmi: bmi_out_of_range (61)"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	e = ValidationError{Field: ColAge, Reason: ReasonMissingAge}
	if got, want := e.Error(), "age: missing_age"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
