// Package table implements an in-memory tabular view over a list of records:
// column filters, a global text filter, stable sorting, pagination and column
// visibility. Rows are derived in a fixed order: filter, then sort, then page.
//
// A View is owned by a single goroutine. None of its operations fail; unknown
// columns and out-of-range requests are ignored or clamped.
package table

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// DefaultPageSize is used when no page size option is given.
const DefaultPageSize = 10

// Direction is a column sort direction.
type Direction int

const (
	None Direction = iota
	Asc
	Desc
)

func (d Direction) String() string {
	switch d {
	case Asc:
		return "asc"
	case Desc:
		return "desc"
	default:
		return "none"
	}
}

// ParseDirection parses "asc" or "desc"; anything else is None.
func ParseDirection(s string) Direction {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc", "ascending":
		return Asc
	case "desc", "descending":
		return Desc
	default:
		return None
	}
}

// Option configures a View.
type Option func(*options)

type options struct {
	pageSize int
	locale   language.Tag
}

// WithPageSize sets the initial page size. Values <= 0 are ignored.
func WithPageSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.pageSize = n
		}
	}
}

// WithLocale sets the locale used by the default string comparison.
func WithLocale(tag language.Tag) Option {
	return func(o *options) {
		o.locale = tag
	}
}

type sortKey struct {
	col  int
	desc bool
}

// View is the sorted, filtered and paginated view of a record list.
type View[R any] struct {
	columns []Column[R]
	index   map[string]int
	records []R

	filters map[int]string
	global  string
	sorting []sortKey
	visible []bool

	pageIndex int
	pageSize  int

	collator *collate.Collator

	derived []R
	dirty   bool
}

// New creates a view over records. Columns with an empty or repeated ID are dropped.
func New[R any](columns []Column[R], records []R, opts ...Option) *View[R] {
	o := options{pageSize: DefaultPageSize, locale: language.English}
	for _, opt := range opts {
		opt(&o)
	}

	v := &View[R]{
		index:    make(map[string]int, len(columns)),
		records:  slices.Clone(records),
		filters:  make(map[int]string),
		pageSize: o.pageSize,
		collator: collate.New(o.locale),
		dirty:    true,
	}
	for _, col := range columns {
		if col.ID == "" {
			continue
		}
		if _, dup := v.index[col.ID]; dup {
			continue
		}
		v.index[col.ID] = len(v.columns)
		v.columns = append(v.columns, col)
		v.visible = append(v.visible, !col.Hidden)
	}
	return v
}

// SetRecords replaces the underlying records, keeping view state.
func (v *View[R]) SetRecords(records []R) {
	v.records = slices.Clone(records)
	v.dirty = true
	v.clampPage()
}

// SetFilter sets the filter value for a column. An empty value clears it.
// Changing a filter returns to the first page.
func (v *View[R]) SetFilter(columnID, value string) {
	i, ok := v.index[columnID]
	if !ok || v.columns[i].DisableFilter {
		return
	}
	value = strings.TrimSpace(value)
	if v.filters[i] == value {
		return
	}
	if value == "" {
		delete(v.filters, i)
	} else {
		v.filters[i] = value
	}
	v.dirty = true
	v.pageIndex = 0
}

// ClearFilters removes every column filter and the global filter.
func (v *View[R]) ClearFilters() {
	if len(v.filters) == 0 && v.global == "" {
		return
	}
	clear(v.filters)
	v.global = ""
	v.dirty = true
	v.pageIndex = 0
}

// SetGlobalFilter keeps rows where any filterable column contains value.
func (v *View[R]) SetGlobalFilter(value string) {
	value = strings.TrimSpace(value)
	if v.global == value {
		return
	}
	v.global = value
	v.dirty = true
	v.pageIndex = 0
}

// Filter returns the current filter value of a column.
func (v *View[R]) Filter(columnID string) string {
	i, ok := v.index[columnID]
	if !ok {
		return ""
	}
	return v.filters[i]
}

// SetSort replaces the sort with a single column. None drops that column's
// key and leaves any other keys in place. Unknown and unsortable columns
// are ignored.
func (v *View[R]) SetSort(columnID string, dir Direction) {
	i, ok := v.index[columnID]
	if !ok || v.columns[i].DisableSort {
		return
	}
	if dir == None {
		n := len(v.sorting)
		v.sorting = slices.DeleteFunc(v.sorting, func(k sortKey) bool { return k.col == i })
		if len(v.sorting) != n {
			v.dirty = true
		}
		return
	}
	v.sorting = []sortKey{{col: i, desc: dir == Desc}}
	v.dirty = true
}

// ToggleSort cycles a column through ascending, descending and unsorted.
// Toggling a column that is not the current sort starts at ascending.
func (v *View[R]) ToggleSort(columnID string) {
	switch v.SortDirection(columnID) {
	case Asc:
		v.SetSort(columnID, Desc)
	case Desc:
		v.SetSort(columnID, None)
	default:
		v.SetSort(columnID, Asc)
	}
}

// SetSorting replaces the sort with several keys applied in order.
// Unknown, unsortable and repeated columns are skipped.
func (v *View[R]) SetSorting(keys []SortKey) {
	var sorting []sortKey
	seen := make(map[int]bool, len(keys))
	for _, k := range keys {
		i, ok := v.index[k.Column]
		if !ok || v.columns[i].DisableSort || seen[i] {
			continue
		}
		seen[i] = true
		sorting = append(sorting, sortKey{col: i, desc: k.Desc})
	}
	v.sorting = sorting
	v.dirty = true
}

// SortDirection reports how a column currently sorts.
func (v *View[R]) SortDirection(columnID string) Direction {
	i, ok := v.index[columnID]
	if !ok {
		return None
	}
	for _, k := range v.sorting {
		if k.col == i {
			if k.desc {
				return Desc
			}
			return Asc
		}
	}
	return None
}

// SetColumnVisibility shows or hides a column. It never changes rows.
func (v *View[R]) SetColumnVisibility(columnID string, visible bool) {
	if i, ok := v.index[columnID]; ok {
		v.visible[i] = visible
	}
}

// IsColumnVisible reports whether a known column is shown.
func (v *View[R]) IsColumnVisible(columnID string) bool {
	i, ok := v.index[columnID]
	return ok && v.visible[i]
}

// Columns describes every column in definition order.
func (v *View[R]) Columns() []ColumnInfo {
	out := make([]ColumnInfo, 0, len(v.columns))
	for i, col := range v.columns {
		out = append(out, v.info(i, col))
	}
	return out
}

// VisibleColumns describes the shown columns in definition order.
func (v *View[R]) VisibleColumns() []ColumnInfo {
	out := make([]ColumnInfo, 0, len(v.columns))
	for i, col := range v.columns {
		if v.visible[i] {
			out = append(out, v.info(i, col))
		}
	}
	return out
}

func (v *View[R]) info(i int, col Column[R]) ColumnInfo {
	header := col.Header
	if header == "" {
		header = col.ID
	}
	return ColumnInfo{
		ID:       col.ID,
		Header:   header,
		Sortable: !col.DisableSort,
		Visible:  v.visible[i],
	}
}

// SetPageIndex moves to page n. Out-of-range pages are ignored.
func (v *View[R]) SetPageIndex(n int) {
	if n < 0 || n >= v.PageCount() {
		return
	}
	v.pageIndex = n
}

// NextPage advances one page when there is one.
func (v *View[R]) NextPage() {
	if v.CanNextPage() {
		v.pageIndex++
	}
}

// PreviousPage goes back one page when there is one.
func (v *View[R]) PreviousPage() {
	if v.CanPreviousPage() {
		v.pageIndex--
	}
}

// CanNextPage reports whether a later page exists.
func (v *View[R]) CanNextPage() bool {
	return v.pageIndex < v.PageCount()-1
}

// CanPreviousPage reports whether an earlier page exists.
func (v *View[R]) CanPreviousPage() bool {
	return v.pageIndex > 0
}

// SetPageSize changes the page size, keeping the first row of the current
// page on screen. Values <= 0 are ignored.
func (v *View[R]) SetPageSize(n int) {
	if n <= 0 || n == v.pageSize {
		return
	}
	first := v.pageIndex * v.pageSize
	v.pageSize = n
	v.pageIndex = first / n
	v.clampPage()
}

// PageIndex returns the current 0-based page.
func (v *View[R]) PageIndex() int { return v.pageIndex }

// PageSize returns the number of rows per page.
func (v *View[R]) PageSize() int { return v.pageSize }

// PageCount is ceil(filtered/pageSize), and at least 1.
func (v *View[R]) PageCount() int {
	n := len(v.derive())
	if n == 0 {
		return 1
	}
	return (n + v.pageSize - 1) / v.pageSize
}

// Total is the number of records before filtering.
func (v *View[R]) Total() int { return len(v.records) }

// FilteredCount is the number of records that pass every filter.
func (v *View[R]) FilteredCount() int { return len(v.derive()) }

// FilteredRows returns all filtered rows in sorted order, across pages.
func (v *View[R]) FilteredRows() []R {
	return slices.Clone(v.derive())
}

// Rows returns the records on the current page. It is never nil.
func (v *View[R]) Rows() []R {
	rows := v.derive()
	start := v.pageIndex * v.pageSize
	if start >= len(rows) {
		return []R{}
	}
	end := min(start+v.pageSize, len(rows))
	return slices.Clone(rows[start:end])
}

// Cells renders a record's visible columns keyed by column ID.
func (v *View[R]) Cells(rec R) map[string]string {
	out := make(map[string]string, len(v.columns))
	for i, col := range v.columns {
		if v.visible[i] {
			out[col.ID] = col.display(rec)
		}
	}
	return out
}

// Row renders a record's visible columns in column order.
func (v *View[R]) Row(rec R) []string {
	out := make([]string, 0, len(v.columns))
	for i, col := range v.columns {
		if v.visible[i] {
			out = append(out, col.display(rec))
		}
	}
	return out
}

func (v *View[R]) clampPage() {
	if last := v.PageCount() - 1; v.pageIndex > last {
		v.pageIndex = last
	}
	if v.pageIndex < 0 {
		v.pageIndex = 0
	}
}

func (v *View[R]) derive() []R {
	if !v.dirty {
		return v.derived
	}
	out := make([]R, 0, len(v.records))
	for _, rec := range v.records {
		if v.keep(rec) {
			out = append(out, rec)
		}
	}
	if len(v.sorting) > 0 {
		slices.SortStableFunc(out, v.compareRecords)
	}
	v.derived = out
	v.dirty = false
	return out
}

func (v *View[R]) keep(rec R) bool {
	for i, needle := range v.filters {
		col := v.columns[i]
		if !matches(col.Filter, Format(col.value(rec)), needle) {
			return false
		}
	}
	if v.global == "" {
		return true
	}
	for _, col := range v.columns {
		if col.DisableFilter {
			continue
		}
		if matches(FilterContains, Format(col.value(rec)), v.global) {
			return true
		}
	}
	return false
}

func (v *View[R]) compareRecords(a, b R) int {
	for _, k := range v.sorting {
		col := v.columns[k.col]
		c := v.compareValues(col, col.value(a), col.value(b))
		if k.desc {
			c = -c
		}
		if c != 0 {
			return c
		}
	}
	return 0
}

func (v *View[R]) compareValues(col Column[R], a, b any) int {
	if col.Compare != nil {
		return col.Compare(a, b)
	}
	return v.collator.CompareString(Format(a), Format(b))
}
