package table

import (
	"cmp"
	"reflect"
	"strings"
	"time"

	"github.com/sahilm/fuzzy"
)

// CompareNumbers orders numeric values of any integer or float kind.
// Non-numeric values sort after numbers.
func CompareNumbers(a, b any) int {
	fa, okA := toFloat(a)
	fb, okB := toFloat(b)
	switch {
	case okA && okB:
		return cmp.Compare(fa, fb)
	case okA:
		return -1
	case okB:
		return 1
	default:
		return 0
	}
}

// CompareTimes orders time.Time values chronologically.
// Zero and non-time values sort after real times.
func CompareTimes(a, b any) int {
	ta, okA := toTime(a)
	tb, okB := toTime(b)
	switch {
	case okA && okB:
		return ta.Compare(tb)
	case okA:
		return -1
	case okB:
		return 1
	default:
		return 0
	}
}

func toFloat(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	case reflect.Pointer:
		if rv.IsNil() {
			return 0, false
		}
		return toFloat(rv.Elem().Interface())
	}
	return 0, false
}

func toTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, !t.IsZero()
	case *time.Time:
		if t == nil {
			return time.Time{}, false
		}
		return *t, !t.IsZero()
	}
	return time.Time{}, false
}

func matches(mode FilterMode, cell, needle string) bool {
	switch mode {
	case FilterExact:
		return strings.EqualFold(cell, needle)
	case FilterFuzzy:
		return len(fuzzy.Find(strings.ToLower(needle), []string{strings.ToLower(cell)})) > 0
	default:
		return strings.Contains(strings.ToLower(cell), strings.ToLower(needle))
	}
}
