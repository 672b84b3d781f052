package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// NewTestDB creates a new in-memory SQLite database for testing
func NewTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := New(":memory:")
	require.NoError(t, err, "failed to create test database")

	err = db.RunMigrations()
	require.NoError(t, err, "failed to run migrations")

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func insertConstituency(t *testing.T, db *DB, id, tenantID, name string) {
	t.Helper()
	_, err := db.Exec(
		`INSERT INTO constituencies (id, tenant_id, name, district, state, status, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, tenantID, name, "Pune", "Maharashtra", "ACTIVE", time.Now(),
	)
	require.NoError(t, err)
}

// TestMigrations verifies that migrations run successfully
func TestMigrations(t *testing.T) {
	db := NewTestDB(t)

	tables := []string{
		"constituencies",
		"grievances",
		"dev_projects",
		"polls",
		"poll_options",
		"users",
		"activity_log",
		"grievances_fts",
		"api_keys",
		"schema_migrations",
	}

	for _, table := range tables {
		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&count)
		require.NoError(t, err, "failed to query table %s", table)
		require.Equal(t, 1, count, "table %s not found", table)
	}
}

// TestMigrationsAreIdempotent verifies a second run skips applied versions
func TestMigrationsAreIdempotent(t *testing.T) {
	db := NewTestDB(t)
	require.NoError(t, db.RunMigrations())

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&count))
	require.Equal(t, 1, count)
}

// TestForeignKeys verifies that foreign key constraints are enabled
func TestForeignKeys(t *testing.T) {
	db := NewTestDB(t)

	var enabled int
	err := db.QueryRow("PRAGMA foreign_keys").Scan(&enabled)
	require.NoError(t, err)
	require.Equal(t, 1, enabled, "foreign keys not enabled")
}

// TestGrievancesTable verifies constraints on the grievances table
func TestGrievancesTable(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertConstituency(t, db, "c1", "tenant1", "Baramati")

	insert := `INSERT INTO grievances (id, tenant_id, constituency_id, citizen_name, phone, category, description, priority, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := db.ExecContext(ctx, insert, "g1", "tenant1", "c1", "Ravi", "9822012345", "Water", "Leak", "HIGH", "PENDING")
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, insert, "g2", "tenant1", "missing", "Ravi", "9822012345", "Water", "Leak", "HIGH", "PENDING")
	require.Error(t, err, "should fail with invalid constituency_id")

	_, err = db.ExecContext(ctx, insert, "g3", "tenant1", "c1", "Ravi", "9822012345", "Water", "Leak", "HIGH", "CLOSED")
	require.Error(t, err, "should fail with invalid status")
}

// TestDevProjectsBudgetCheck verifies spent can never exceed budget
func TestDevProjectsBudgetCheck(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertConstituency(t, db, "c1", "tenant1", "Baramati")

	_, err := db.ExecContext(ctx,
		`INSERT INTO dev_projects (id, tenant_id, constituency_id, name, category, budget, spent, status, start_date, end_date)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		"p1", "tenant1", "c1", "Road", "Roads", 100, 150, "ONGOING", time.Now(), time.Now())
	require.Error(t, err)
}

// TestFTSIndex verifies the full-text search index is synchronized
func TestFTSIndex(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertConstituency(t, db, "c1", "tenant1", "Baramati")

	_, err := db.ExecContext(ctx,
		`INSERT INTO grievances (id, tenant_id, constituency_id, citizen_name, phone, category, description, priority, status)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		"g1", "tenant1", "c1", "Ravi", "9822012345", "Water", "Broken pipeline near school", "HIGH", "PENDING")
	require.NoError(t, err)

	var count int
	err = db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM grievances_fts WHERE grievances_fts MATCH ?`,
		"pipeline").Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 1, count)

	_, err = db.ExecContext(ctx, `UPDATE grievances SET description = ? WHERE id = ?`, "Streetlight outage", "g1")
	require.NoError(t, err)

	err = db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM grievances_fts WHERE grievances_fts MATCH ?`,
		"streetlight").Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 1, count, "should match the new description after update")

	err = db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM grievances_fts WHERE grievances_fts MATCH ?`,
		"pipeline").Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 0, count, "old description should be gone after update")
}
