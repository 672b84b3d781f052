package transport

import (
	"net/url"
	"testing"

	"github.com/rpggio/mlaconnect/internal/table"
	"github.com/stretchr/testify/require"
)

func TestStateFromQuery(t *testing.T) {
	q, err := url.ParseQuery("filter.status=PENDING&filter.=x&q=water&sort=priority:desc,%20created_at&page=3&page_size=25&hide=phone,,description")
	require.NoError(t, err)

	require.Equal(t, table.State{
		Filters:   map[string]string{"status": "PENDING"},
		Search:    "water",
		Sort:      []table.SortKey{{Column: "priority", Desc: true}, {Column: "created_at"}},
		PageIndex: 2,
		PageSize:  25,
		Hidden:    []string{"phone", "description"},
	}, StateFromQuery(q))
}

func TestStateFromQuery_Defaults(t *testing.T) {
	q, err := url.ParseQuery("page=first&page_size=")
	require.NoError(t, err)
	s := StateFromQuery(q)
	require.Zero(t, s.PageIndex)
	require.Zero(t, s.PageSize)
	require.Nil(t, s.Hidden, "no hide parameter keeps current visibility")
	require.Nil(t, s.Sort)

	q, err = url.ParseQuery("hide=")
	require.NoError(t, err)
	require.Equal(t, []string{}, StateFromQuery(q).Hidden, "empty hide shows every column")
}
