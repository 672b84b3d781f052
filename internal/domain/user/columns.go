package user

import "github.com/rpggio/mlaconnect/internal/table"

// Columns defines the user table. Records are expected to be masked.
func Columns() []table.Column[User] {
	return []table.Column[User]{
		{ID: "id", Header: "ID", Accessor: func(u User) any { return u.ID }, Filter: table.FilterExact, Hidden: true},
		{ID: "name", Header: "Name", Accessor: func(u User) any { return u.Name }, Filter: table.FilterFuzzy},
		{ID: "email", Header: "Email", Accessor: func(u User) any { return u.Email }},
		{ID: "phone", Header: "Phone", Accessor: func(u User) any { return u.Phone }},
		{ID: "aadhaar", Header: "Aadhaar", Accessor: func(u User) any { return u.Aadhaar }, DisableSort: true, DisableFilter: true, Hidden: true},
		{ID: "role", Header: "Role", Accessor: func(u User) any { return u.Role }, Filter: table.FilterExact},
		{ID: "constituency_id", Header: "Constituency", Accessor: func(u User) any { return u.ConstituencyID }, Filter: table.FilterExact, Hidden: true},
		{ID: "created_at", Header: "Registered", Accessor: func(u User) any { return u.CreatedAt }, Compare: table.CompareTimes, DisableFilter: true},
	}
}
