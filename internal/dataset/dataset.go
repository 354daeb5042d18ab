// Package dataset provides the in-memory table every cleaning stage consumes and
// produces.
//
// A Dataset is an ordered list of rows sharing one set of named columns. A cell
// holds nil when the value is missing, otherwise one of float64, int64, string or
// time.Time. Stages never mutate their input: they Clone, Filter, Select or
// SortStable and hand the new Dataset to the next stage.
package dataset

import (
	"fmt"
	"sort"
	"strings"
)

// Dataset is an ordered, schema-homogeneous collection of rows.
type Dataset struct {
	columns []string
	index   map[string]int
	rows    [][]any
}

// New creates an empty dataset with the given column order.
// Column names are matched exactly; duplicate names are rejected.
func New(columns []string) (*Dataset, error) {
	idx := make(map[string]int, len(columns))
	for i, c := range columns {
		if _, dup := idx[c]; dup {
			return nil, fmt.Errorf("duplicate column %q", c)
		}
		idx[c] = i
	}
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Dataset{columns: cols, index: idx}, nil
}

// MustNew is New for fixed column lists known to be valid.
func MustNew(columns ...string) *Dataset {
	ds, err := New(columns)
	if err != nil {
		panic(err)
	}
	return ds
}

// Append adds a row. The row must have one cell per column.
func (d *Dataset) Append(row []any) error {
	if len(row) != len(d.columns) {
		return fmt.Errorf("row has %d cells, dataset has %d columns", len(row), len(d.columns))
	}
	r := make([]any, len(row))
	copy(r, row)
	d.rows = append(d.rows, r)
	return nil
}

// Len returns the number of rows.
func (d *Dataset) Len() int { return len(d.rows) }

// Columns returns a copy of the column names in order.
func (d *Dataset) Columns() []string {
	cols := make([]string, len(d.columns))
	copy(cols, d.columns)
	return cols
}

// Has reports whether the dataset has the named column.
func (d *Dataset) Has(col string) bool {
	_, ok := d.index[col]
	return ok
}

// Value returns the cell at row i, column col. Unknown columns read as missing.
func (d *Dataset) Value(i int, col string) any {
	j, ok := d.index[col]
	if !ok {
		return nil
	}
	return d.rows[i][j]
}

// Set overwrites the cell at row i, column col.
func (d *Dataset) Set(i int, col string, v any) error {
	j, ok := d.index[col]
	if !ok {
		return fmt.Errorf("unknown column %q", col)
	}
	d.rows[i][j] = v
	return nil
}

// Row returns a copy of row i in column order.
func (d *Dataset) Row(i int) []any {
	r := make([]any, len(d.rows[i]))
	copy(r, d.rows[i])
	return r
}

// Clone returns a deep copy of the row slices. Cell values are immutable scalars
// so they are shared.
func (d *Dataset) Clone() *Dataset {
	out := &Dataset{
		columns: d.Columns(),
		index:   make(map[string]int, len(d.index)),
		rows:    make([][]any, len(d.rows)),
	}
	for k, v := range d.index {
		out.index[k] = v
	}
	for i, r := range d.rows {
		out.rows[i] = make([]any, len(r))
		copy(out.rows[i], r)
	}
	return out
}

// AddColumn returns a copy with a new trailing column filled by fill(i).
// If the column already exists its values are replaced in place.
func (d *Dataset) AddColumn(name string, fill func(i int) any) *Dataset {
	out := d.Clone()
	j, exists := out.index[name]
	if !exists {
		j = len(out.columns)
		out.columns = append(out.columns, name)
		out.index[name] = j
		for i := range out.rows {
			out.rows[i] = append(out.rows[i], nil)
		}
	}
	for i := range out.rows {
		out.rows[i][j] = fill(i)
	}
	return out
}

// RenameColumn returns a copy where column from is called to. The column keeps
// its position.
func (d *Dataset) RenameColumn(from, to string) (*Dataset, error) {
	j, ok := d.index[from]
	if !ok {
		return nil, fmt.Errorf("unknown column %q", from)
	}
	if from == to {
		return d.Clone(), nil
	}
	if _, clash := d.index[to]; clash {
		return nil, fmt.Errorf("column %q already exists", to)
	}
	out := d.Clone()
	out.columns[j] = to
	delete(out.index, from)
	out.index[to] = j
	return out, nil
}

// Filter returns the rows for which keep returns true, in their original order.
func (d *Dataset) Filter(keep func(i int) bool) *Dataset {
	out := &Dataset{columns: d.Columns(), index: make(map[string]int, len(d.index))}
	for k, v := range d.index {
		out.index[k] = v
	}
	for i, r := range d.rows {
		if keep(i) {
			row := make([]any, len(r))
			copy(row, r)
			out.rows = append(out.rows, row)
		}
	}
	return out
}

// Select projects the dataset onto cols, in that order. Columns not listed are
// dropped. Every listed column must exist.
func (d *Dataset) Select(cols []string) (*Dataset, error) {
	var missing []string
	pos := make([]int, len(cols))
	for k, c := range cols {
		j, ok := d.index[c]
		if !ok {
			missing = append(missing, c)
			continue
		}
		pos[k] = j
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing columns: %s", strings.Join(missing, ", "))
	}

	out, err := New(cols)
	if err != nil {
		return nil, err
	}
	out.rows = make([][]any, len(d.rows))
	for i, r := range d.rows {
		row := make([]any, len(cols))
		for k, j := range pos {
			row[k] = r[j]
		}
		out.rows[i] = row
	}
	return out, nil
}

// SortStable returns a copy ordered by less. Rows that compare equal keep their
// relative order.
func (d *Dataset) SortStable(less func(a, b int) bool) *Dataset {
	order := make([]int, len(d.rows))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(x, y int) bool { return less(order[x], order[y]) })

	out := d.Clone()
	for k, i := range order {
		row := make([]any, len(d.rows[i]))
		copy(row, d.rows[i])
		out.rows[k] = row
	}
	return out
}
