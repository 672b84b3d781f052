package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/rpggio/mlaconnect/internal/dashboard"
	"github.com/rpggio/mlaconnect/internal/domain/activity"
	"github.com/rpggio/mlaconnect/internal/domain/constituency"
	"github.com/rpggio/mlaconnect/internal/domain/devproject"
	"github.com/rpggio/mlaconnect/internal/domain/grievance"
	"github.com/rpggio/mlaconnect/internal/domain/poll"
	"github.com/rpggio/mlaconnect/internal/domain/user"
	"github.com/rpggio/mlaconnect/internal/sqlite"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
)

func newClientSession(t *testing.T) *sdkmcp.ClientSession {
	t.Helper()
	ctx := context.Background()

	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())
	t.Cleanup(func() { _ = db.Close() })

	activityRepo := sqlite.NewActivityRepository(db)
	recorder := activity.NewRecorder(activityRepo, nil)
	constituencies := constituency.NewService(sqlite.NewConstituencyRepository(db), recorder, nil)
	grievances := grievance.NewService(sqlite.NewGrievanceRepository(db), sqlite.NewSearchRepository(db), recorder, nil)
	projects := devproject.NewService(sqlite.NewDevProjectRepository(db), recorder, nil)
	polls := poll.NewService(sqlite.NewPollRepository(db), recorder, nil)
	users := user.NewService(sqlite.NewUserRepository(db), recorder, nil)
	activitySvc := activity.NewService(activityRepo, nil)

	server := NewServer(Config{
		Services: Services{
			Tables: dashboard.NewCatalog(dashboard.Services{
				Constituencies: constituencies,
				Grievances:     grievances,
				Projects:       projects,
				Polls:          polls,
				Users:          users,
				Activity:       activitySvc,
			}),
			Constituencies: constituencies,
			Grievances:     grievances,
			Projects:       projects,
			Polls:          polls,
			Users:          users,
			Activity:       activitySvc,
		},
		TransportMode: "stdio",
	})

	serverTransport, clientTransport := sdkmcp.NewInMemoryTransports()
	ss, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ss.Close() })

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "0.0.1"}, nil)
	cs, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cs.Close() })
	return cs
}

func callTool(t *testing.T, cs *sdkmcp.ClientSession, name string, args map[string]any, out any) bool {
	t.Helper()
	res, err := cs.CallTool(context.Background(), &sdkmcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(*sdkmcp.TextContent)
	require.True(t, ok)
	if out != nil {
		require.NoError(t, json.Unmarshal([]byte(text.Text), out))
	}
	return !res.IsError
}

func TestServer_ListTools(t *testing.T) {
	cs := newClientSession(t)
	res, err := cs.ListTools(context.Background(), &sdkmcp.ListToolsParams{})
	require.NoError(t, err)
	require.Len(t, res.Tools, len(buildToolCatalog()))
}

func TestServer_ReadDocs(t *testing.T) {
	cs := newClientSession(t)
	res, err := cs.ReadResource(context.Background(), &sdkmcp.ReadResourceParams{URI: "mlaconnect://docs/tables"})
	require.NoError(t, err)
	require.Len(t, res.Contents, 1)
	require.Contains(t, res.Contents[0].Text, "stable sort")
}

func TestServer_GrievanceTableFlow(t *testing.T) {
	cs := newClientSession(t)

	var c constituency.Constituency
	require.True(t, callTool(t, cs, "create_constituency", map[string]any{
		"name": "Baramati", "district": "Pune", "state": "Maharashtra", "population": 1000, "voters": 800,
	}, &c))
	require.NotEmpty(t, c.ID)

	var first grievance.Grievance
	for i := 0; i < 12; i++ {
		var g grievance.Grievance
		require.True(t, callTool(t, cs, "submit_grievance", map[string]any{
			"constituency_id": c.ID,
			"citizen_name":    fmt.Sprintf("Citizen %02d", i+1),
			"phone":           fmt.Sprintf("98220%05d", i),
			"category":        "Water",
			"description":     "No supply",
		}, &g))
		if i == 0 {
			first = g
		}
	}

	var page dashboard.Result
	require.True(t, callTool(t, cs, "query_table", map[string]any{
		"table":      "grievances",
		"sort":       []map[string]any{{"column": "citizen_name"}},
		"page_index": 1,
	}, &page))
	require.Equal(t, 12, page.Total)
	require.Equal(t, 2, page.PageCount)
	require.Len(t, page.Rows, 2)
	require.Equal(t, "Citizen 11", page.Rows[0]["citizen_name"])

	var apiErr APIError
	require.False(t, callTool(t, cs, "transition_grievance", map[string]any{
		"id": first.ID, "to_status": "RESOLVED",
	}, &apiErr))
	require.Equal(t, "INVALID_TRANSITION", apiErr.Code)

	var moved grievance.Grievance
	require.True(t, callTool(t, cs, "transition_grievance", map[string]any{
		"id": first.ID, "to_status": "IN_PROGRESS",
	}, &moved))
	require.Equal(t, grievance.StatusInProgress, moved.Status)

	require.True(t, callTool(t, cs, "query_table", map[string]any{
		"table":   "grievances",
		"filters": map[string]any{"status": "IN_PROGRESS"},
	}, &page))
	require.Equal(t, 1, page.Filtered)
	require.Equal(t, 0, page.PageIndex)

	var entries []ActivityEntryResponse
	require.True(t, callTool(t, cs, "get_recent_activity", map[string]any{"entity_id": first.ID}, &entries))
	require.Len(t, entries, 2)
	require.Equal(t, string(activity.TypeGrievanceTransition), entries[0].Type)
}

func TestServer_UnknownTable(t *testing.T) {
	cs := newClientSession(t)
	var apiErr APIError
	require.False(t, callTool(t, cs, "query_table", map[string]any{"table": "wards"}, &apiErr))
	require.Equal(t, "UNKNOWN_TABLE", apiErr.Code)
}
