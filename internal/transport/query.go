package transport

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/rpggio/mlaconnect/internal/table"
)

const filterPrefix = "filter."

// StateFromQuery reads a table view state from URL query parameters:
//
//	filter.<column>=text  column filter
//	q=text                search across columns
//	sort=col[:desc],...   sort keys in priority order
//	page=n                1-based page number
//	page_size=n           rows per page
//	hide=col,...          hidden columns
//
// Malformed numbers are ignored.
func StateFromQuery(q url.Values) table.State {
	var s table.State
	for key, values := range q {
		col, ok := strings.CutPrefix(key, filterPrefix)
		if !ok || col == "" || len(values) == 0 {
			continue
		}
		if s.Filters == nil {
			s.Filters = make(map[string]string)
		}
		s.Filters[col] = values[0]
	}

	s.Search = q.Get("q")

	for _, part := range splitList(q.Get("sort")) {
		s.Sort = append(s.Sort, table.ParseSortKey(part))
	}

	if page, err := strconv.Atoi(q.Get("page")); err == nil {
		s.PageIndex = page - 1
	}
	if size, err := strconv.Atoi(q.Get("page_size")); err == nil {
		s.PageSize = size
	}

	if q.Has("hide") {
		s.Hidden = splitList(q.Get("hide"))
	}
	return s
}

func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
