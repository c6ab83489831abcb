// Package dataset holds uploaded tables as typed columns: kind inference,
// user-chosen coercion, and row selection for derived views.
package dataset

import (
	"fmt"
)

// Dataset is an ordered set of columns sharing a row count.
type Dataset struct {
	columns []Column
	index   map[string]int
	rows    int
}

// New builds a dataset from a header and row records, inferring the kind of
// every column. Short records are padded with missing values and extra
// fields beyond the header are ignored.
func New(header []string, records [][]string) (*Dataset, error) {
	seen := make(map[string]struct{}, len(header))
	for _, name := range header {
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("duplicate column name %q", name)
		}
		seen[name] = struct{}{}
	}

	cols := make([]Column, len(header))
	for c, name := range header {
		raw := make([]string, len(records))
		for r, rec := range records {
			if c < len(rec) {
				raw[r] = rec[c]
			}
		}
		cols[c] = NewColumn(name, raw)
	}
	return fromColumns(cols, len(records)), nil
}

func fromColumns(cols []Column, rows int) *Dataset {
	ds := &Dataset{columns: cols, rows: rows, index: make(map[string]int, len(cols))}
	for i, c := range cols {
		ds.index[c.Name] = i
	}
	return ds
}

// Len is the number of rows.
func (d *Dataset) Len() int { return d.rows }

// Columns returns the columns in order. The slice must not be modified.
func (d *Dataset) Columns() []Column { return d.columns }

// Names returns the column names in order.
func (d *Dataset) Names() []string {
	names := make([]string, len(d.columns))
	for i, c := range d.columns {
		names[i] = c.Name
	}
	return names
}

// Column looks up a column by name.
func (d *Dataset) Column(name string) (Column, bool) {
	i, ok := d.index[name]
	if !ok {
		return Column{}, false
	}
	return d.columns[i], true
}

// NamesOfKind returns the names of the columns whose kind is one of kinds.
func (d *Dataset) NamesOfKind(kinds ...Kind) []string {
	var names []string
	for _, c := range d.columns {
		for _, k := range kinds {
			if c.Kind == k {
				names = append(names, c.Name)
				break
			}
		}
	}
	return names
}

// SetKind coerces the named column in place.
func (d *Dataset) SetKind(name string, kind Kind) error {
	i, ok := d.index[name]
	if !ok {
		return fmt.Errorf("unknown column %q", name)
	}
	d.columns[i] = Coerce(d.columns[i], kind)
	return nil
}

// Select returns a new dataset holding the given rows, in the given order.
func (d *Dataset) Select(rows []int) *Dataset {
	cols := make([]Column, len(d.columns))
	for i, c := range d.columns {
		cols[i] = c.pick(rows)
	}
	return fromColumns(cols, len(rows))
}

// Where returns a new dataset with the rows for which keep returns true.
func (d *Dataset) Where(keep func(row int) bool) *Dataset {
	var rows []int
	for r := 0; r < d.rows; r++ {
		if keep(r) {
			rows = append(rows, r)
		}
	}
	return d.Select(rows)
}

// Row returns row r keyed by column name, suitable for JSON.
func (d *Dataset) Row(r int) map[string]any {
	out := make(map[string]any, len(d.columns))
	for _, c := range d.columns {
		out[c.Name] = c.Value(r)
	}
	return out
}
