package grievance

import (
	"cmp"

	"github.com/rpggio/mlaconnect/internal/table"
)

// Columns defines the grievance table. Phone is hidden by default.
func Columns() []table.Column[Grievance] {
	return []table.Column[Grievance]{
		{ID: "id", Header: "ID", Accessor: func(g Grievance) any { return g.ID }, Filter: table.FilterExact, Hidden: true},
		{ID: "constituency_id", Header: "Constituency", Accessor: func(g Grievance) any { return g.ConstituencyID }, Filter: table.FilterExact, Hidden: true},
		{ID: "citizen_name", Header: "Citizen", Accessor: func(g Grievance) any { return g.CitizenName }},
		{ID: "phone", Header: "Phone", Accessor: func(g Grievance) any { return g.Phone }, Hidden: true},
		{ID: "category", Header: "Category", Accessor: func(g Grievance) any { return g.Category }, Filter: table.FilterExact},
		{ID: "description", Header: "Description", Accessor: func(g Grievance) any { return g.Description }, DisableSort: true},
		{ID: "priority", Header: "Priority", Accessor: func(g Grievance) any { return g.Priority }, Filter: table.FilterExact, Compare: comparePriority},
		{ID: "status", Header: "Status", Accessor: func(g Grievance) any { return g.Status }, Filter: table.FilterExact},
		{ID: "created_at", Header: "Submitted", Accessor: func(g Grievance) any { return g.CreatedAt }, Compare: table.CompareTimes, DisableFilter: true},
		{ID: "updated_at", Header: "Updated", Accessor: func(g Grievance) any { return g.UpdatedAt }, Compare: table.CompareTimes, DisableFilter: true, Hidden: true},
	}
}

func comparePriority(a, b any) int {
	pa, _ := a.(Priority)
	pb, _ := b.(Priority)
	return cmp.Compare(pa.Rank(), pb.Rank())
}
