package table

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotNumeric is wrapped by ValueError when a cell of a numeric column
// cannot be parsed as a number.
var ErrNotNumeric = errors.New("value is not numeric")

// MissingColumnError reports required columns absent from a table.
type MissingColumnError struct {
	Columns []string
}

func (e *MissingColumnError) Error() string {
	if len(e.Columns) == 1 {
		return fmt.Sprintf("missing column %q", e.Columns[0])
	}
	quoted := make([]string, len(e.Columns))
	for i, c := range e.Columns {
		quoted[i] = fmt.Sprintf("%q", c)
	}
	return "missing columns " + strings.Join(quoted, ", ")
}

// IsMissingColumn reports whether err is or wraps a MissingColumnError.
func IsMissingColumn(err error) bool {
	var mc *MissingColumnError
	return errors.As(err, &mc)
}

// ValueError reports a cell that could not be interpreted.
type ValueError struct {
	Column string
	Row    int
	Value  string
	Err    error
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("column %q row %d: %q: %v", e.Column, e.Row, e.Value, e.Err)
}

func (e *ValueError) Unwrap() error {
	return e.Err
}
