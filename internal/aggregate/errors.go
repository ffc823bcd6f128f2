package aggregate

import "errors"

var (
	// ErrEmptyGroup is returned when a filter leaves no rows to aggregate.
	ErrEmptyGroup = errors.New("no rows to aggregate")

	// ErrUndefinedMode is returned when the most frequent value of an empty
	// set is requested.
	ErrUndefinedMode = errors.New("mode of an empty set is undefined")
)

// IsNoData reports whether err describes a well-defined empty result rather
// than a data or logic failure.
func IsNoData(err error) bool {
	return errors.Is(err, ErrEmptyGroup) || errors.Is(err, ErrUndefinedMode)
}
