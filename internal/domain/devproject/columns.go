package devproject

import (
	"fmt"

	"github.com/rpggio/mlaconnect/internal/table"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var rupees = message.NewPrinter(language.English)

// FormatRupees renders a whole-rupee amount with digit grouping.
func FormatRupees(v int64) string {
	return rupees.Sprintf("₹%d", v)
}

func money(v any, _ Project) string {
	n, ok := v.(int64)
	if !ok {
		return table.Format(v)
	}
	return FormatRupees(n)
}

// Columns defines the project table.
func Columns() []table.Column[Project] {
	return []table.Column[Project]{
		{ID: "id", Header: "ID", Accessor: func(p Project) any { return p.ID }, Filter: table.FilterExact, Hidden: true},
		{ID: "constituency_id", Header: "Constituency", Accessor: func(p Project) any { return p.ConstituencyID }, Filter: table.FilterExact, Hidden: true},
		{ID: "name", Header: "Project", Accessor: func(p Project) any { return p.Name }, Filter: table.FilterFuzzy},
		{ID: "category", Header: "Category", Accessor: func(p Project) any { return p.Category }, Filter: table.FilterExact},
		{ID: "budget", Header: "Budget", Accessor: func(p Project) any { return p.Budget }, Compare: table.CompareNumbers, Cell: money, DisableFilter: true},
		{ID: "spent", Header: "Spent", Accessor: func(p Project) any { return p.Spent }, Compare: table.CompareNumbers, Cell: money, DisableFilter: true},
		{
			ID:            "utilization",
			Header:        "Used",
			Accessor:      func(p Project) any { return p.Utilization() },
			Compare:       table.CompareNumbers,
			Cell:          func(v any, p Project) string { return fmt.Sprintf("%.1f%%", p.Utilization()) },
			DisableFilter: true,
		},
		{ID: "status", Header: "Status", Accessor: func(p Project) any { return p.Status }, Filter: table.FilterExact},
		{ID: "start_date", Header: "Start", Accessor: func(p Project) any { return p.StartDate }, Compare: table.CompareTimes, DisableFilter: true},
		{ID: "end_date", Header: "End", Accessor: func(p Project) any { return p.EndDate }, Compare: table.CompareTimes, DisableFilter: true},
	}
}
