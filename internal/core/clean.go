package core

import (
	"fmt"

	"github.com/JonMunkholm/surveyclean/internal/dataset"
)

// CleanSurvey is the companion cleaning stage run ahead of duplicate
// detection. It keeps only CleanColumns (in that order) and applies
// LowercaseClean to every text cell, so case and spacing variants of the same
// answer compare equal.
//
// Columns missing from the input are an error.
func CleanSurvey(ds *dataset.Dataset) (*dataset.Dataset, error) {
	out, err := ds.Select(CleanColumns)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingColumns, err)
	}
	for _, col := range CleanColumns {
		src := out
		out = src.AddColumn(col, func(i int) any { return LowercaseClean(src.Value(i, col)) })
	}
	return out, nil
}
