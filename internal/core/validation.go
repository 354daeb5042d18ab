package core

// validation.go decides whether a cleaned record is usable.
//
// A record survives when every required field is present and its BMI sits in the
// plausible range. Failures are not errors: the pipeline drops the record and
// only the reason counts reach the run summary.

import (
	"fmt"

	"github.com/JonMunkholm/surveyclean/internal/dataset"
)

// Plausible BMI range, inclusive at both ends.
const (
	MinPlausibleBMI = 10.0
	MaxPlausibleBMI = 60.0
)

// Reasons a record is rejected. Used as summary and metric labels.
const (
	ReasonMissingAge    = "missing_age"
	ReasonMissingSex    = "missing_sex"
	ReasonMissingWeight = "missing_weight"
	ReasonMissingHeight = "missing_height"
	ReasonMissingBMI    = "missing_bmi"
	ReasonBMIOutOfRange = "bmi_out_of_range"
)

// ValidationError represents a single failed check on a record.
type ValidationError struct {
	Field  string // Column name
	Value  any    // Offending value, nil when missing
	Reason string // One of the Reason* constants
}

func (e ValidationError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("%s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("%s: %s (%v)", e.Field, e.Reason, e.Value)
}

// ValidationResult contains the result of validating a record.
type ValidationResult struct {
	Valid  bool              // True if all checks passed
	Errors []ValidationError // Every failed check (empty if Valid)
}

// requiredFields pairs each field that must be present with its reason label.
var requiredFields = []struct {
	col    string
	reason string
}{
	{ColAge, ReasonMissingAge},
	{ColSex, ReasonMissingSex},
	{ColWeightKg, ReasonMissingWeight},
	{ColHeightCm, ReasonMissingHeight},
}

// ValidateRecord checks row i of ds and returns all failures.
// The BMI column is read as already computed.
func ValidateRecord(ds *dataset.Dataset, i int) ValidationResult {
	result := ValidationResult{Valid: true}

	for _, f := range requiredFields {
		if isBlank(ds.Value(i, f.col)) {
			result.Valid = false
			result.Errors = append(result.Errors, ValidationError{Field: f.col, Reason: f.reason})
		}
	}

	bmi, ok := ToNumber(ds.Value(i, ColBMI))
	switch {
	case !ok:
		result.Valid = false
		result.Errors = append(result.Errors, ValidationError{Field: ColBMI, Reason: ReasonMissingBMI})
	case bmi < MinPlausibleBMI || bmi > MaxPlausibleBMI:
		result.Valid = false
		result.Errors = append(result.Errors, ValidationError{Field: ColBMI, Value: bmi, Reason: ReasonBMIOutOfRange})
	}

	return result
}

// IsValidRecord is the pass/fail form of ValidateRecord.
func IsValidRecord(ds *dataset.Dataset, i int) bool {
	return ValidateRecord(ds, i).Valid
}

// isBlank treats missing cells and empty text as absent.
func isBlank(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}
