// Package table holds an in-memory, read-only event table and the row-level
// helpers the aggregations are built on.
package table

import (
	"fmt"
	"strconv"
	"strings"
)

// missingTokens are cell values treated as absent, in addition to blanks.
var missingTokens = map[string]struct{}{
	"nan":  {},
	"null": {},
	"none": {},
	"na":   {},
	"n/a":  {},
	"<na>": {},
}

// IsMissing reports whether a raw cell value represents a missing value.
func IsMissing(v string) bool {
	v = strings.TrimSpace(v)
	if v == "" {
		return true
	}
	_, ok := missingTokens[strings.ToLower(v)]
	return ok
}

// Table is a column-named grid of raw cell values. Tables are never mutated
// after construction; Filter and Head return views sharing the same cells.
type Table struct {
	columns []string
	index   map[string]int
	rows    [][]string
}

// New builds a table from a header and rows. Every row must have exactly
// one cell per column.
func New(columns []string, rows [][]string) (*Table, error) {
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		name := strings.TrimSpace(c)
		if name == "" {
			return nil, fmt.Errorf("column %d has an empty name", i)
		}
		if _, dup := index[name]; dup {
			return nil, fmt.Errorf("duplicate column %q", name)
		}
		index[name] = i
	}
	for i, r := range rows {
		if len(r) != len(columns) {
			return nil, fmt.Errorf("row %d has %d cells, want %d", i, len(r), len(columns))
		}
	}

	cols := make([]string, len(columns))
	for i, c := range columns {
		cols[i] = strings.TrimSpace(c)
	}

	return &Table{columns: cols, index: index, rows: rows}, nil
}

// MustNew is New for tests and static fixtures; it panics on error.
func MustNew(columns []string, rows [][]string) *Table {
	t, err := New(columns, rows)
	if err != nil {
		panic(err)
	}
	return t
}

// Columns returns a copy of the column names in file order.
func (t *Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Has reports whether the table carries the named column.
func (t *Table) Has(column string) bool {
	_, ok := t.index[column]
	return ok
}

// Require fails with a MissingColumnError naming every absent column.
func (t *Table) Require(columns ...string) error {
	var missing []string
	seen := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		if !t.Has(c) {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return &MissingColumnError{Columns: missing}
	}
	return nil
}

// Row returns a handle to row i.
func (t *Table) Row(i int) Row {
	return Row{t: t, i: i}
}

// Rows calls fn for every row in order.
func (t *Table) Rows(fn func(Row) error) error {
	for i := range t.rows {
		if err := fn(Row{t: t, i: i}); err != nil {
			return err
		}
	}
	return nil
}

// Filter returns a view over the rows matching pred. A nil predicate keeps
// every row.
func (t *Table) Filter(pred Predicate) *Table {
	if pred == nil {
		return t
	}
	kept := make([][]string, 0, len(t.rows))
	for i := range t.rows {
		if pred(Row{t: t, i: i}) {
			kept = append(kept, t.rows[i])
		}
	}
	return &Table{columns: t.columns, index: t.index, rows: kept}
}

// Head returns a view over at most the first n rows.
func (t *Table) Head(n int) *Table {
	if n < 0 || n >= len(t.rows) {
		return t
	}
	return &Table{columns: t.columns, index: t.index, rows: t.rows[:n]}
}

// Records returns the raw cells of every row, for display.
func (t *Table) Records() [][]string {
	out := make([][]string, len(t.rows))
	for i, r := range t.rows {
		cp := make([]string, len(r))
		copy(cp, r)
		out[i] = cp
	}
	return out
}

// Row is a read-only handle to one table row.
type Row struct {
	t *Table
	i int
}

// Index returns the row position within its table.
func (r Row) Index() int {
	return r.i
}

// Get returns the trimmed cell value and false when the column is absent or
// the value is missing.
func (r Row) Get(column string) (string, bool) {
	idx, ok := r.t.index[column]
	if !ok {
		return "", false
	}
	v := r.t.rows[r.i][idx]
	if IsMissing(v) {
		return "", false
	}
	return strings.TrimSpace(v), true
}

// Float parses the cell as a number. Missing values return ok=false and no
// error; unparsable values return a ValueError.
func (r Row) Float(column string) (float64, bool, error) {
	v, ok := r.Get(column)
	if !ok {
		return 0, false, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false, &ValueError{Column: column, Row: r.i, Value: v, Err: ErrNotNumeric}
	}
	return f, true, nil
}

// Predicate selects rows.
type Predicate func(Row) bool

// Equals matches rows whose column holds exactly value.
func Equals(column, value string) Predicate {
	return func(r Row) bool {
		v, ok := r.Get(column)
		return ok && v == value
	}
}

// NotMissing matches rows where every named column holds a value.
func NotMissing(columns ...string) Predicate {
	return func(r Row) bool {
		for _, c := range columns {
			if _, ok := r.Get(c); !ok {
				return false
			}
		}
		return true
	}
}

// And matches rows accepted by every non-nil predicate.
func And(preds ...Predicate) Predicate {
	return func(r Row) bool {
		for _, p := range preds {
			if p != nil && !p(r) {
				return false
			}
		}
		return true
	}
}
