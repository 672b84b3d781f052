package dashboard_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rpggio/mlaconnect/internal/dashboard"
	"github.com/rpggio/mlaconnect/internal/domain/activity"
	"github.com/rpggio/mlaconnect/internal/domain/constituency"
	"github.com/rpggio/mlaconnect/internal/domain/devproject"
	"github.com/rpggio/mlaconnect/internal/domain/grievance"
	"github.com/rpggio/mlaconnect/internal/domain/poll"
	"github.com/rpggio/mlaconnect/internal/domain/user"
	"github.com/rpggio/mlaconnect/internal/sqlite"
	"github.com/rpggio/mlaconnect/internal/table"
	"github.com/stretchr/testify/require"
)

type env struct {
	catalog  *dashboard.Catalog
	services dashboard.Services
}

func newEnv(t *testing.T, opts ...dashboard.Option) *env {
	t.Helper()
	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())
	t.Cleanup(func() { _ = db.Close() })

	activityRepo := sqlite.NewActivityRepository(db)
	recorder := activity.NewRecorder(activityRepo, nil)
	svc := dashboard.Services{
		Constituencies: constituency.NewService(sqlite.NewConstituencyRepository(db), recorder, nil),
		Grievances:     grievance.NewService(sqlite.NewGrievanceRepository(db), sqlite.NewSearchRepository(db), recorder, nil),
		Projects:       devproject.NewService(sqlite.NewDevProjectRepository(db), recorder, nil),
		Polls:          poll.NewService(sqlite.NewPollRepository(db), recorder, nil),
		Users:          user.NewService(sqlite.NewUserRepository(db), recorder, nil),
		Activity:       activity.NewService(activityRepo, nil),
	}
	return &env{catalog: dashboard.NewCatalog(svc, opts...), services: svc}
}

func (e *env) seedGrievances(t *testing.T, tenantID string, n int) *constituency.Constituency {
	t.Helper()
	ctx := context.Background()
	c, err := e.services.Constituencies.Create(ctx, tenantID, constituency.CreateRequest{
		Name: "Baramati", District: "Pune", State: "Maharashtra", Population: 1000, Voters: 800,
	})
	require.NoError(t, err)

	categories := []string{"Water", "Roads", "Electricity"}
	for i := 0; i < n; i++ {
		_, err := e.services.Grievances.Submit(ctx, tenantID, grievance.SubmitRequest{
			ConstituencyID: c.ID,
			CitizenName:    fmt.Sprintf("Citizen %02d", i+1),
			Phone:          fmt.Sprintf("98220%05d", i),
			Category:       categories[i%len(categories)],
			Description:    "Complaint",
		})
		require.NoError(t, err)
	}
	return c
}

func TestCatalog_Tables(t *testing.T) {
	e := newEnv(t)
	tables := e.catalog.Tables()

	names := make([]string, len(tables))
	for i, tbl := range tables {
		names[i] = tbl.Name
	}
	require.Equal(t, []string{"constituencies", "grievances", "projects", "polls", "users", "activity"}, names)
	require.True(t, e.catalog.Has("grievances"))
	require.False(t, e.catalog.Has("wards"))

	for _, col := range tables[1].Columns {
		if col.ID == "phone" {
			require.False(t, col.Visible)
		}
	}
}

func TestCatalog_UnknownTable(t *testing.T) {
	e := newEnv(t)
	_, err := e.catalog.Query(context.Background(), "tenant1", "wards", table.State{})
	require.ErrorIs(t, err, dashboard.ErrUnknownTable)
}

func TestCatalog_QueryPaginates(t *testing.T) {
	e := newEnv(t)
	e.seedGrievances(t, "tenant1", 12)

	res, err := e.catalog.Query(context.Background(), "tenant1", "grievances", table.State{
		Sort:      []table.SortKey{{Column: "citizen_name"}},
		PageIndex: 1,
	})
	require.NoError(t, err)
	require.Equal(t, "grievances", res.Table)
	require.Equal(t, 12, res.Total)
	require.Equal(t, 2, res.PageCount)
	require.Len(t, res.Rows, 2)
	require.Equal(t, "Citizen 11", res.Rows[0]["citizen_name"])
	require.NotContains(t, res.Rows[0], "phone")
}

func TestCatalog_QueryFiltersAndHides(t *testing.T) {
	e := newEnv(t, dashboard.WithPageSize(3))
	e.seedGrievances(t, "tenant1", 9)

	res, err := e.catalog.Query(context.Background(), "tenant1", "grievances", table.State{
		Filters: map[string]string{"category": "water"},
		Hidden:  []string{"description"},
	})
	require.NoError(t, err)
	require.Equal(t, 3, res.Filtered)
	require.Equal(t, 3, res.PageSize)
	require.Equal(t, 1, res.PageCount)
	for _, row := range res.Rows {
		require.Equal(t, "Water", row["category"])
		require.NotContains(t, row, "description")
	}
}

func TestCatalog_TenantIsolation(t *testing.T) {
	e := newEnv(t)
	e.seedGrievances(t, "tenant1", 4)

	res, err := e.catalog.Query(context.Background(), "tenant2", "grievances", table.State{})
	require.NoError(t, err)
	require.Zero(t, res.Total)
	require.Equal(t, 1, res.PageCount)
	require.NotNil(t, res.Rows)
	require.Empty(t, res.Rows)
}

func TestCatalog_ProjectsAndActivity(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	c := e.seedGrievances(t, "tenant1", 1)

	start := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	p, err := e.services.Projects.Create(ctx, "tenant1", devproject.CreateRequest{
		ConstituencyID: c.ID, Name: "Check dam", Category: "Water", Budget: 2000000,
		StartDate: start, EndDate: start.AddDate(1, 0, 0),
	})
	require.NoError(t, err)
	_, err = e.services.Projects.RecordExpense(ctx, "tenant1", p.ID, 500000, "first installment")
	require.NoError(t, err)

	res, err := e.catalog.Query(ctx, "tenant1", "projects", table.State{})
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)
	require.Equal(t, "₹2,000,000", res.Rows[0]["budget"])
	require.Equal(t, "25.0%", res.Rows[0]["utilization"])

	acts, err := e.catalog.Query(ctx, "tenant1", "activity", table.State{
		Sort:    []table.SortKey{{Column: "created_at", Desc: true}},
		Filters: map[string]string{"entity_type": "project"},
	})
	require.NoError(t, err)
	require.Equal(t, 2, acts.Filtered)
	require.Equal(t, string(activity.TypeExpenseRecorded), acts.Rows[0]["type"])
}
