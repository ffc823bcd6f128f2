package aggregate

import (
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/j-veylop/forge-insights-tui/internal/table"
)

// BoundsQuery describes a per-entity duration taken from the first
// timestamp of a start event and the first timestamp of an end event.
type BoundsQuery struct {
	Key       string
	TypeCol   string
	TimeCol   string
	StartType string
	EndType   string
}

// BoundedDurations computes end-start per key, using the first timestamp of
// each boundary event in table order. Keys lacking either boundary have no
// duration and are left out.
func BoundedDurations(t *table.Table, q BoundsQuery) (Result, error) {
	if err := t.Require(q.Key, q.TypeCol, q.TimeCol); err != nil {
		return Result{}, err
	}

	type bounds struct {
		start, end       float64
		hasStart, hasEnd bool
		rows             int
	}
	byKey := make(map[string]*bounds)
	var order []string

	err := t.Rows(func(r table.Row) error {
		key, ok := r.Get(q.Key)
		if !ok {
			return nil
		}
		typ, _ := r.Get(q.TypeCol)
		if typ != q.StartType && typ != q.EndType {
			return nil
		}
		ts, ok, err := r.Float(q.TimeCol)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		b, exists := byKey[key]
		if !exists {
			b = &bounds{}
			byKey[key] = b
			order = append(order, key)
		}
		b.rows++
		switch {
		case typ == q.StartType && !b.hasStart:
			b.start, b.hasStart = ts, true
		case typ == q.EndType && !b.hasEnd:
			b.end, b.hasEnd = ts, true
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	groups := make([]Group, 0, len(order))
	for _, key := range order {
		b := byKey[key]
		if !b.hasStart || !b.hasEnd {
			continue
		}
		groups = append(groups, Group{Key: []string{key}, Value: b.end - b.start, Rows: b.rows})
	}
	if len(groups) == 0 {
		return Result{}, fmt.Errorf("%w: no %s with both %s and %s", ErrEmptyGroup, q.Key, q.StartType, q.EndType)
	}
	sortGroups(groups)

	return Result{Keys: []string{q.Key}, Metric: Span(q.TimeCol), Groups: groups}, nil
}

// HourOfDay converts epoch seconds to the UTC hour, 0-23.
func HourOfDay(epochSeconds float64) int {
	sec := int64(epochSeconds)
	nsec := int64((epochSeconds - float64(sec)) * 1e9)
	return time.Unix(sec, nsec).UTC().Hour()
}

// HourLabels maps epoch seconds to UTC hour-of-day labels.
func HourLabels(values []float64) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strconv.Itoa(HourOfDay(v))
	}
	return out
}

func sortGroups(groups []Group) {
	slices.SortFunc(groups, func(a, b Group) int {
		return compareKeys(a.Key, b.Key)
	})
}
