package table

import (
	"fmt"
	"reflect"
	"strconv"
	"time"
)

// FilterMode selects how a column filter value is matched against a cell.
type FilterMode int

const (
	// FilterContains matches when the cell contains the value, ignoring case.
	FilterContains FilterMode = iota
	// FilterExact matches when the cell equals the value, ignoring case.
	// Use it for enum-like columns such as status or category.
	FilterExact
	// FilterFuzzy matches when the value's characters appear in order in the cell.
	FilterFuzzy
)

// Column describes how to read, sort, filter and render one column of R.
type Column[R any] struct {
	ID       string
	Header   string
	Accessor func(R) any

	// Columns are sortable and filterable unless disabled.
	DisableSort   bool
	DisableFilter bool
	Filter        FilterMode

	// Compare overrides the default locale-aware string comparison.
	Compare func(a, b any) int
	// Cell overrides the default display of the accessor value.
	Cell func(value any, rec R) string

	// Hidden sets the initial visibility of the column.
	Hidden bool
}

// ColumnInfo is the presentational description of a column.
type ColumnInfo struct {
	ID       string `json:"id"`
	Header   string `json:"header"`
	Sortable bool   `json:"sortable"`
	Visible  bool   `json:"visible"`
}

func (c Column[R]) value(rec R) any {
	if c.Accessor == nil {
		return nil
	}
	return c.Accessor(rec)
}

func (c Column[R]) display(rec R) string {
	v := c.value(rec)
	if c.Cell != nil {
		return c.Cell(v, rec)
	}
	return Format(v)
}

// Format renders a cell value as text. It is the text filters match against
// and the default display of a column.
func Format(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case time.Time:
		if val.IsZero() {
			return ""
		}
		return val.Format(time.DateOnly)
	case *time.Time:
		if val == nil {
			return ""
		}
		return Format(*val)
	case *string:
		if val == nil {
			return ""
		}
		return *val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case fmt.Stringer:
		return val.String()
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Pointer:
		if rv.IsNil() {
			return ""
		}
		return Format(rv.Elem().Interface())
	}
	return fmt.Sprint(v)
}
