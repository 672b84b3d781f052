package activity_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rpggio/mlaconnect/internal/domain/activity"
	"github.com/rpggio/mlaconnect/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestActivityService_LogAndList(t *testing.T) {
	ctx := context.Background()
	tenantID := "tenant1"

	repo := &mocks.ActivityRepository{}
	entry := &activity.ActivityEntry{
		EntityType:   activity.EntityGrievance,
		EntityID:     "g1",
		ActivityType: activity.TypeGrievanceSubmitted,
		Summary:      "submitted",
	}

	repo.On("Log", ctx, tenantID, entry).Return(nil)
	repo.On("List", ctx, tenantID, activity.ListOptions{EntityType: activity.EntityGrievance, EntityID: "g1", Limit: activity.DefaultListLimit}).
		Return([]activity.ActivityEntry{*entry}, nil)

	svc := activity.NewService(repo, nil)
	require.NoError(t, svc.LogActivity(ctx, tenantID, entry))
	require.False(t, entry.CreatedAt.IsZero())

	list, err := svc.GetRecentActivity(ctx, tenantID, activity.ListOptions{EntityType: activity.EntityGrievance, EntityID: "g1"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	repo.AssertExpectations(t)
}

func TestActivityService_ClampsPaging(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ActivityRepository{}
	repo.On("List", ctx, "t", activity.ListOptions{Limit: activity.MaxListLimit}).Return(nil, nil)

	list, err := activity.NewService(repo, nil).GetRecentActivity(ctx, "t", activity.ListOptions{Limit: 10000, Offset: -3})
	require.NoError(t, err)
	require.NotNil(t, list)
	require.Empty(t, list)
	repo.AssertExpectations(t)
}

func TestActivityService_RejectsIncompleteEntry(t *testing.T) {
	svc := activity.NewService(&mocks.ActivityRepository{}, nil)
	ctx := context.Background()

	require.ErrorIs(t, svc.LogActivity(ctx, "t", &activity.ActivityEntry{ActivityType: activity.TypeVoteCast, Summary: "  "}), activity.ErrInvalidInput)
	require.ErrorIs(t, svc.LogActivity(ctx, "t", &activity.ActivityEntry{Summary: "Vote"}), activity.ErrInvalidInput)
	require.ErrorIs(t, svc.LogActivity(ctx, "t", nil), activity.ErrInvalidInput)
}

func TestRecorder_SwallowsErrors(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ActivityRepository{}
	repo.On("Log", ctx, "t", mock.MatchedBy(func(e *activity.ActivityEntry) bool {
		return e.EntityID == "p1" && e.Details == `{"amount":500}`
	})).Return(errors.New("disk full"))

	rec := activity.NewRecorder(repo, nil)
	rec.Record(ctx, "t", activity.EntityProject, "p1", activity.TypeExpenseRecorded, "expense", map[string]int{"amount": 500})
	repo.AssertExpectations(t)

	var nilRecorder *activity.Recorder
	nilRecorder.Record(ctx, "t", activity.EntityProject, "p1", activity.TypeExpenseRecorded, "expense", nil)
	activity.NewRecorder(nil, nil).Record(ctx, "t", activity.EntityProject, "p1", activity.TypeExpenseRecorded, "expense", nil)
}
