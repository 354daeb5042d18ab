package dataio

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/kshedden/datareader"

	"github.com/JonMunkholm/surveyclean/internal/core"
	"github.com/JonMunkholm/surveyclean/internal/dataset"
)

// statChunkRows is how many records are decoded per read.
const statChunkRows = 10000

// statReader is the chunked read surface shared by the Stata and SAS readers.
type statReader interface {
	ColumnNames() []string
	Read(rows int) ([]*datareader.Series, error)
}

// LoadStat reads a binary statistics file: Stata (.dta) or SAS (.sas7bdat),
// chosen by extension. Stata value labels replace the coded values, and dated
// columns are converted to time values.
func LoadStat(path string) (*dataset.Dataset, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".dta" && ext != ".sas7bdat" {
		return nil, fmt.Errorf("%w: %q", core.ErrUnsupportedFormat, ext)
	}

	f, err := openSource(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var rdr statReader
	switch ext {
	case ".dta":
		sr, err := datareader.NewStataReader(f)
		if err != nil {
			return nil, fmt.Errorf("read stata header %s: %w", path, err)
		}
		sr.InsertCategoryLabels = true
		sr.InsertStrls = true
		sr.ConvertDates = true
		rdr = sr
	case ".sas7bdat":
		sr, err := datareader.NewSAS7BDATReader(f)
		if err != nil {
			return nil, fmt.Errorf("read sas header %s: %w", path, err)
		}
		sr.TrimStrings = true
		sr.ConvertDates = true
		rdr = sr
	}

	ds, err := readStat(rdr)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return ds, nil
}

// readStat drains rdr chunk by chunk. The readers disagree on how the end is
// signalled: Stata returns a nil chunk, SAS returns io.EOF.
func readStat(rdr statReader) (*dataset.Dataset, error) {
	names := rdr.ColumnNames()
	if len(names) == 0 {
		return nil, core.ErrEmptySource
	}

	ds, err := dataset.New(core.CanonicalColumns(names))
	if err != nil {
		return nil, err
	}

	for {
		chunk, err := rdr.Read(statChunkRows)
		if err != nil && err != io.EOF {
			return nil, err
		}
		if chunk == nil || err == io.EOF {
			break
		}
		if err := appendSeries(ds, chunk); err != nil {
			return nil, err
		}
	}
	return ds, nil
}
