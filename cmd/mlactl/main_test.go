package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/rpggio/mlaconnect/internal/dashboard"
	"github.com/stretchr/testify/require"
)

const demoFixture = "../../internal/seed/testdata/demo.yaml"

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func seededDB(t *testing.T) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "mlactl.db")
	out, err := run(t, "--db", dbPath, "seed", demoFixture)
	require.NoError(t, err)
	require.Contains(t, out, "seeded tenant demo: 3 constituencies, 3 grievances, 2 projects, 1 polls, 1 users")
	return dbPath
}

func TestTables(t *testing.T) {
	out, err := run(t, "--db", filepath.Join(t.TempDir(), "t.db"), "tables")
	require.NoError(t, err)
	for _, name := range []string{"constituencies", "grievances", "projects", "polls", "users", "activity"} {
		require.Contains(t, out, name)
	}
}

func TestQuery_JSON(t *testing.T) {
	dbPath := seededDB(t)

	out, err := run(t, "--db", dbPath, "--tenant", "demo", "query", "grievances",
		"--filter", "status=PENDING", "--json")
	require.NoError(t, err)

	var res dashboard.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	require.Equal(t, "grievances", res.Table)
	require.Equal(t, 3, res.Total)
	require.Equal(t, 1, res.Filtered)
	require.Equal(t, "Sunita Jadhav", res.Rows[0]["citizen_name"])
}

func TestQuery_SortAndPage(t *testing.T) {
	dbPath := seededDB(t)

	out, err := run(t, "--db", dbPath, "--tenant", "demo", "query", "constituencies",
		"--sort", "voters:desc", "--page-size", "2", "--page", "2", "--json")
	require.NoError(t, err)

	var res dashboard.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	require.Equal(t, 1, res.PageIndex)
	require.Equal(t, 2, res.PageCount)
	require.Len(t, res.Rows, 1)
	require.Equal(t, "Kothrud", res.Rows[0]["name"])
}

func TestQuery_Rendered(t *testing.T) {
	dbPath := seededDB(t)

	out, err := run(t, "--db", dbPath, "--tenant", "demo", "query", "constituencies",
		"--search", "pune", "--hide", "state,mla_name")
	require.NoError(t, err)

	plain := ansi.Strip(out)
	require.Contains(t, plain, "Baramati")
	require.Contains(t, plain, "Kothrud")
	require.NotContains(t, plain, "Nashik West")
	require.NotContains(t, plain, "Maharashtra")
	require.Contains(t, plain, "page 1/1 · 2 of 3 rows")
}

func TestQuery_OtherTenantIsEmpty(t *testing.T) {
	dbPath := seededDB(t)

	out, err := run(t, "--db", dbPath, "query", "grievances", "--json")
	require.NoError(t, err)

	var res dashboard.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	require.Zero(t, res.Total)
	require.Equal(t, 1, res.PageCount)
}

func TestQuery_Errors(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "t.db")

	_, err := run(t, "--db", dbPath, "query", "nope")
	require.ErrorIs(t, err, dashboard.ErrUnknownTable)

	_, err = run(t, "--db", dbPath, "query", "grievances", "--filter", "status")
	require.ErrorContains(t, err, "want column=value")
}

func TestAPIKeyAdd(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "t.db")

	out, err := run(t, "--db", dbPath, "--tenant", "demo", "apikey", "add", "secret-token", "--description", "office laptop")
	require.NoError(t, err)
	require.Contains(t, out, "added API key for tenant demo")

	_, err = run(t, "--db", dbPath, "apikey", "add", "secret-token")
	require.Error(t, err, "tokens are unique")
}
