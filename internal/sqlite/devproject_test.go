package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/rpggio/mlaconnect/internal/domain/devproject"
	"github.com/rpggio/mlaconnect/internal/repository"
	"github.com/stretchr/testify/require"
)

func newDevProject(id, constituencyID string, budget int64) *devproject.Project {
	start := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	return &devproject.Project{
		ID:             id,
		ConstituencyID: constituencyID,
		Name:           "Community hall",
		Category:       "Infrastructure",
		Budget:         budget,
		Status:         devproject.StatusOngoing,
		StartDate:      start,
		EndDate:        start.AddDate(1, 0, 0),
		CreatedAt:      time.Now(),
	}
}

func TestDevProjectRepository_CreateGet(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertConstituency(t, db, "c1", "tenant1", "Baramati")
	repo := NewDevProjectRepository(db)

	p := newDevProject("p1", "c1", 2500000)
	require.NoError(t, repo.Create(ctx, "tenant1", p))

	got, err := repo.Get(ctx, "tenant1", "p1")
	require.NoError(t, err)
	require.Equal(t, int64(2500000), got.Budget)
	require.True(t, p.StartDate.Equal(got.StartDate))
	require.True(t, p.EndDate.Equal(got.EndDate))

	_, err = repo.Get(ctx, "tenant2", "p1")
	require.ErrorIs(t, err, repository.ErrNotFound)

	err = repo.Create(ctx, "tenant1", newDevProject("p2", "missing", 10))
	require.ErrorIs(t, err, repository.ErrForeignKeyViolation)
}

func TestDevProjectRepository_AddExpense(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertConstituency(t, db, "c1", "tenant1", "Baramati")
	repo := NewDevProjectRepository(db)
	require.NoError(t, repo.Create(ctx, "tenant1", newDevProject("p1", "c1", 1000)))

	spent, err := repo.AddExpense(ctx, "tenant1", "p1", 600)
	require.NoError(t, err)
	require.Equal(t, int64(600), spent)

	_, err = repo.AddExpense(ctx, "tenant1", "p1", 401)
	require.ErrorIs(t, err, repository.ErrConflict)

	spent, err = repo.AddExpense(ctx, "tenant1", "p1", 400)
	require.NoError(t, err)
	require.Equal(t, int64(1000), spent)

	_, err = repo.AddExpense(ctx, "tenant1", "missing", 1)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDevProjectRepository_GuardsOnStatus(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertConstituency(t, db, "c1", "tenant1", "Baramati")
	repo := NewDevProjectRepository(db)
	require.NoError(t, repo.Create(ctx, "tenant1", newDevProject("p1", "c1", 1000)))

	require.NoError(t, repo.UpdateStatus(ctx, "tenant1", "p1", devproject.StatusOngoing, devproject.StatusCompleted))
	err := repo.UpdateStatus(ctx, "tenant1", "p1", devproject.StatusOngoing, devproject.StatusStalled)
	require.ErrorIs(t, err, repository.ErrConflict)

	_, err = repo.AddExpense(ctx, "tenant1", "p1", 10)
	require.ErrorIs(t, err, repository.ErrConflict)

	got, err := repo.Get(ctx, "tenant1", "p1")
	require.NoError(t, err)
	require.Equal(t, devproject.StatusCompleted, got.Status)
	require.Zero(t, got.Spent)
}

func TestDevProjectRepository_UpdateStatusAndList(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertConstituency(t, db, "c1", "tenant1", "Baramati")
	insertConstituency(t, db, "c2", "tenant1", "Kothrud")
	repo := NewDevProjectRepository(db)

	require.NoError(t, repo.Create(ctx, "tenant1", newDevProject("p1", "c1", 1000)))
	require.NoError(t, repo.Create(ctx, "tenant1", newDevProject("p2", "c2", 2000)))
	require.NoError(t, repo.UpdateStatus(ctx, "tenant1", "p2", devproject.StatusOngoing, devproject.StatusStalled))
	require.ErrorIs(t, repo.UpdateStatus(ctx, "tenant1", "missing", devproject.StatusOngoing, devproject.StatusStalled), repository.ErrNotFound)

	list, err := repo.List(ctx, "tenant1", devproject.ListOptions{})
	require.NoError(t, err)
	require.Len(t, list, 2)

	stalled, err := repo.List(ctx, "tenant1", devproject.ListOptions{Status: devproject.StatusStalled})
	require.NoError(t, err)
	require.Len(t, stalled, 1)
	require.Equal(t, "p2", stalled[0].ID)

	c1, err := repo.List(ctx, "tenant1", devproject.ListOptions{ConstituencyID: "c1"})
	require.NoError(t, err)
	require.Len(t, c1, 1)
}
