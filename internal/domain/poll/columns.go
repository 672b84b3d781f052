package poll

import (
	"fmt"

	"github.com/rpggio/mlaconnect/internal/table"
)

// Columns defines the poll table.
func Columns() []table.Column[Poll] {
	return []table.Column[Poll]{
		{ID: "id", Header: "ID", Accessor: func(p Poll) any { return p.ID }, Filter: table.FilterExact, Hidden: true},
		{ID: "question", Header: "Question", Accessor: func(p Poll) any { return p.Question }},
		{
			ID:            "options",
			Header:        "Options",
			Accessor:      func(p Poll) any { return len(p.Options) },
			Compare:       table.CompareNumbers,
			DisableFilter: true,
		},
		{ID: "votes", Header: "Votes", Accessor: func(p Poll) any { return p.TotalVotes() }, Compare: table.CompareNumbers, DisableFilter: true},
		{
			ID:     "leading",
			Header: "Leading",
			Cell: func(_ any, p Poll) string {
				best := -1
				for i, o := range p.Options {
					if o.Votes > 0 && (best < 0 || o.Votes > p.Options[best].Votes) {
						best = i
					}
				}
				if best < 0 {
					return ""
				}
				return fmt.Sprintf("%s (%d)", p.Options[best].Text, p.Options[best].Votes)
			},
			DisableSort:   true,
			DisableFilter: true,
		},
		{ID: "starts_at", Header: "Opens", Accessor: func(p Poll) any { return p.StartsAt }, Compare: table.CompareTimes, DisableFilter: true},
		{ID: "ends_at", Header: "Closes", Accessor: func(p Poll) any { return p.EndsAt }, Compare: table.CompareTimes, DisableFilter: true},
	}
}
