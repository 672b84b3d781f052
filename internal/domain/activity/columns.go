package activity

import (
	"time"

	"github.com/rpggio/mlaconnect/internal/table"
)

// Columns defines the activity table. Newest entries sort first when the
// caller sorts by created_at descending.
func Columns() []table.Column[ActivityEntry] {
	return []table.Column[ActivityEntry]{
		{
			ID:       "created_at",
			Header:   "When",
			Accessor: func(e ActivityEntry) any { return e.CreatedAt },
			Compare:  table.CompareTimes,
			Cell: func(_ any, e ActivityEntry) string {
				return e.CreatedAt.Format(time.DateTime)
			},
			DisableFilter: true,
		},
		{ID: "type", Header: "Type", Accessor: func(e ActivityEntry) any { return e.ActivityType }, Filter: table.FilterExact},
		{ID: "entity_type", Header: "Entity", Accessor: func(e ActivityEntry) any { return e.EntityType }, Filter: table.FilterExact},
		{ID: "entity_id", Header: "Entity ID", Accessor: func(e ActivityEntry) any { return e.EntityID }, Filter: table.FilterExact, Hidden: true},
		{ID: "summary", Header: "Summary", Accessor: func(e ActivityEntry) any { return e.Summary }},
	}
}
