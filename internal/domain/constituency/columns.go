package constituency

import "github.com/rpggio/mlaconnect/internal/table"

// Columns defines the constituency table.
func Columns() []table.Column[Constituency] {
	return []table.Column[Constituency]{
		{ID: "id", Header: "ID", Accessor: func(c Constituency) any { return c.ID }, Filter: table.FilterExact, Hidden: true},
		{ID: "name", Header: "Name", Accessor: func(c Constituency) any { return c.Name }, Filter: table.FilterFuzzy},
		{ID: "district", Header: "District", Accessor: func(c Constituency) any { return c.District }},
		{ID: "state", Header: "State", Accessor: func(c Constituency) any { return c.State }},
		{ID: "mla_name", Header: "MLA", Accessor: func(c Constituency) any { return c.MLAName }},
		{ID: "population", Header: "Population", Accessor: func(c Constituency) any { return c.Population }, Compare: table.CompareNumbers, DisableFilter: true},
		{ID: "voters", Header: "Voters", Accessor: func(c Constituency) any { return c.Voters }, Compare: table.CompareNumbers, DisableFilter: true},
		{ID: "status", Header: "Status", Accessor: func(c Constituency) any { return c.Status }, Filter: table.FilterExact},
		{ID: "created_at", Header: "Created", Accessor: func(c Constituency) any { return c.CreatedAt }, Compare: table.CompareTimes, DisableFilter: true},
	}
}
