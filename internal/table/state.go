package table

import (
	"slices"
	"strings"
)

// SortKey is one entry of a serialized sort.
type SortKey struct {
	Column string `json:"column" yaml:"column"`
	Desc   bool   `json:"desc,omitempty" yaml:"desc,omitempty"`
}

// ParseSortKey parses "column" or "column:desc".
func ParseSortKey(s string) SortKey {
	col, dir, _ := strings.Cut(strings.TrimSpace(s), ":")
	return SortKey{Column: strings.TrimSpace(col), Desc: ParseDirection(dir) == Desc}
}

// State is the serializable view state sent by clients.
// A nil Hidden leaves column visibility untouched.
type State struct {
	Filters   map[string]string `json:"filters,omitempty" yaml:"filters,omitempty"`
	Search    string            `json:"search,omitempty" yaml:"search,omitempty"`
	Sort      []SortKey         `json:"sort,omitempty" yaml:"sort,omitempty"`
	PageIndex int               `json:"page_index,omitempty" yaml:"page_index,omitempty"`
	PageSize  int               `json:"page_size,omitempty" yaml:"page_size,omitempty"`
	Hidden    []string          `json:"hidden,omitempty" yaml:"hidden,omitempty"`
}

// Apply replaces the view state with s. Filters and sorting apply before
// the page size, and the page index last, so it is checked against the
// final page count.
func (v *View[R]) Apply(s State) {
	clear(v.filters)
	v.global = ""
	v.dirty = true
	v.pageIndex = 0
	for col, value := range s.Filters {
		v.SetFilter(col, value)
	}
	v.SetGlobalFilter(s.Search)
	v.SetSorting(s.Sort)

	if s.Hidden != nil {
		for i := range v.visible {
			v.visible[i] = true
		}
		for _, id := range s.Hidden {
			v.SetColumnVisibility(id, false)
		}
	}

	v.SetPageSize(s.PageSize)
	v.SetPageIndex(s.PageIndex)
}

// State captures the current view state.
func (v *View[R]) State() State {
	s := State{
		Search:    v.global,
		PageIndex: v.pageIndex,
		PageSize:  v.pageSize,
	}
	if len(v.filters) > 0 {
		s.Filters = make(map[string]string, len(v.filters))
		for i, value := range v.filters {
			s.Filters[v.columns[i].ID] = value
		}
	}
	for _, k := range v.sorting {
		s.Sort = append(s.Sort, SortKey{Column: v.columns[k.col].ID, Desc: k.desc})
	}
	for i, col := range v.columns {
		if !v.visible[i] {
			s.Hidden = append(s.Hidden, col.ID)
		}
	}
	slices.Sort(s.Hidden)
	return s
}

// Page is a rendered page of a view.
type Page struct {
	Columns   []ColumnInfo        `json:"columns"`
	Rows      []map[string]string `json:"rows"`
	Sort      []SortKey           `json:"sort,omitempty"`
	PageIndex int                 `json:"page_index"`
	PageSize  int                 `json:"page_size"`
	PageCount int                 `json:"page_count"`
	Total     int                 `json:"total"`
	Filtered  int                 `json:"filtered"`
}

// Page renders the current page: visible columns, display cells and counts.
func (v *View[R]) Page() Page {
	rows := v.Rows()
	cells := make([]map[string]string, 0, len(rows))
	for _, rec := range rows {
		cells = append(cells, v.Cells(rec))
	}
	return Page{
		Columns:   v.VisibleColumns(),
		Rows:      cells,
		Sort:      v.State().Sort,
		PageIndex: v.pageIndex,
		PageSize:  v.pageSize,
		PageCount: v.PageCount(),
		Total:     v.Total(),
		Filtered:  v.FilteredCount(),
	}
}
