package dataio

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/kshedden/datareader"

	"github.com/JonMunkholm/surveyclean/internal/core"
	"github.com/JonMunkholm/surveyclean/internal/dataset"
)

// LoadCSV reads a survey CSV. Headers are mapped to schema column names and
// column types are inferred from the whole file: a column whose values all
// parse as numbers is read as float64, anything else as text.
func LoadCSV(path string) (*dataset.Dataset, error) {
	f, err := openSource(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ds, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return ds, nil
}

// ReadCSV parses CSV text from r. A missing header is ErrEmptySource; a header
// with no rows yields an empty dataset. NA markers such as "nan", "NA" or
// "null" are read as missing.
func ReadCSV(r io.Reader) (*dataset.Dataset, error) {
	text, err := io.ReadAll(newTextReader(r))
	if err != nil {
		return nil, err
	}

	layout, err := scanCSV(text)
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if layout.header == nil {
		return nil, core.ErrEmptySource
	}
	text, err = layout.encode()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	rdr := datareader.NewCSVReader(bytes.NewReader(text))
	rdr.TypeHintsPos = layout.typeHints()

	series, err := rdr.Read(-1)
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	ds, err := dataset.New(core.CanonicalColumns(rdr.ColumnNames))
	if err != nil {
		return nil, err
	}
	if err := appendSeries(ds, series); err != nil {
		return nil, err
	}
	return ds, nil
}

// naTokens are the cell values read as missing. The set matches the default
// NA markers of common dataframe tools, compared without trimming.
var naTokens = map[string]bool{
	"":         true,
	"#N/A":     true,
	"#N/A N/A": true,
	"#NA":      true,
	"-1.#IND":  true,
	"-1.#QNAN": true,
	"-NaN":     true,
	"-nan":     true,
	"1.#IND":   true,
	"1.#QNAN":  true,
	"<NA>":     true,
	"N/A":      true,
	"NA":       true,
	"NULL":     true,
	"NaN":      true,
	"None":     true,
	"n/a":      true,
	"nan":      true,
	"null":     true,
}

// csvLayout is a syntax pass over a CSV file with its cells normalized.
type csvLayout struct {
	header []string
	rows   [][]string
	// numeric marks columns whose non-missing values all parse as numbers
	numeric []bool
}

// scanCSV validates the CSV syntax and normalizes every data cell: NA markers
// become empty and values in numeric columns lose surrounding spaces, so
// " 30" and "30" compare equal once loaded.
func scanCSV(text []byte) (csvLayout, error) {
	cr := csv.NewReader(bytes.NewReader(text))
	cr.FieldsPerRecord = -1
	recs, err := cr.ReadAll()
	if err != nil {
		return csvLayout{}, err
	}
	if len(recs) == 0 {
		return csvLayout{}, nil
	}

	l := csvLayout{header: recs[0], rows: recs[1:], numeric: make([]bool, len(recs[0]))}
	seen := make([]bool, len(l.header))
	for j := range l.numeric {
		l.numeric[j] = true
	}
	for _, rec := range l.rows {
		for j, v := range rec {
			if naTokens[v] {
				rec[j] = ""
				continue
			}
			if j >= len(l.header) {
				continue
			}
			seen[j] = true
			if _, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err != nil {
				l.numeric[j] = false
			}
		}
	}

	for j := range l.numeric {
		// A column with no values at all is text, as is one no row reaches.
		l.numeric[j] = l.numeric[j] && seen[j]
		if !l.numeric[j] {
			continue
		}
		for _, rec := range l.rows {
			if j < len(rec) {
				rec[j] = strings.TrimSpace(rec[j])
			}
		}
	}
	return l, nil
}

// typeHints fixes the type of every column so the reader never samples.
func (l csvLayout) typeHints() []string {
	hints := make([]string, len(l.header))
	for j := range hints {
		hints[j] = "string"
		if l.numeric[j] {
			hints[j] = "float64"
		}
	}
	return hints
}

// encode writes the normalized layout back as CSV text.
func (l csvLayout) encode() ([]byte, error) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	if err := cw.Write(l.header); err != nil {
		return nil, err
	}
	for _, rec := range l.rows {
		if len(rec) == 1 && rec[0] == "" {
			// A lone empty field encodes as a blank line, which readers skip.
			cw.Flush()
			buf.WriteString("\"\"\n")
			continue
		}
		if err := cw.Write(rec); err != nil {
			return nil, err
		}
	}
	cw.Flush()
	return buf.Bytes(), cw.Error()
}

// SaveCSV writes ds with a header row, creating parent directories as needed.
// Missing cells are written as empty fields.
func SaveCSV(ds *dataset.Dataset, path string) error {
	f, err := Create(path)
	if err != nil {
		return err
	}

	if err := WriteCSV(f, ds); err != nil {
		f.Close()
		return fmt.Errorf("%w: %w", core.ErrNotWritable, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %w", core.ErrNotWritable, err)
	}
	return nil
}

// WriteCSV writes ds to w as CSV.
func WriteCSV(w io.Writer, ds *dataset.Dataset) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ds.Columns()); err != nil {
		return err
	}
	for i := 0; i < ds.Len(); i++ {
		if err := cw.Write(ds.Strings(i)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func openSource(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", core.ErrSourceNotFound, path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, nil
}

// Create creates or truncates the file at path, making parent directories as
// needed. Failures wrap ErrNotWritable.
func Create(path string) (*os.File, error) {
	if err := ensureDir(path); err != nil {
		return nil, err
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrNotWritable, err)
	}
	return f, nil
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: %w", core.ErrNotWritable, err)
	}
	return nil
}
