package dataio

import (
	"fmt"
	"math"
	"time"

	"github.com/kshedden/datareader"

	"github.com/JonMunkholm/surveyclean/internal/dataset"
)

// appendSeries adds the rows held by one chunk of column series to ds. Numeric
// series are upcast to float64; NaN, flagged and empty text cells become
// missing.
func appendSeries(ds *dataset.Dataset, chunk []*datareader.Series) error {
	if len(chunk) == 0 {
		return nil
	}
	if len(chunk) != len(ds.Columns()) {
		return fmt.Errorf("chunk has %d columns, dataset has %d", len(chunk), len(ds.Columns()))
	}

	cols := make([]func(i int) any, len(chunk))
	nrow := chunk[0].Length()
	for j, s := range chunk {
		s = s.UpcastNumeric()
		if s.Length() != nrow {
			return fmt.Errorf("column %q has %d rows, want %d", s.Name, s.Length(), nrow)
		}
		get, err := cellGetter(s)
		if err != nil {
			return err
		}
		cols[j] = get
	}

	row := make([]any, len(cols))
	for i := 0; i < nrow; i++ {
		for j, get := range cols {
			row[j] = get(i)
		}
		if err := ds.Append(row); err != nil {
			return err
		}
	}
	return nil
}

func cellGetter(s *datareader.Series) (func(i int) any, error) {
	miss := s.Missing()
	missing := func(i int) bool { return miss != nil && miss[i] }

	switch data := s.Data().(type) {
	case []float64:
		return func(i int) any {
			if missing(i) || math.IsNaN(data[i]) {
				return nil
			}
			return data[i]
		}, nil
	case []string:
		return func(i int) any {
			if missing(i) || data[i] == "" {
				return nil
			}
			return data[i]
		}, nil
	case []time.Time:
		return func(i int) any {
			if missing(i) {
				return nil
			}
			return data[i]
		}, nil
	default:
		return nil, fmt.Errorf("column %q: unsupported series type %T", s.Name, data)
	}
}
