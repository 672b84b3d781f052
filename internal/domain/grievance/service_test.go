package grievance_test

import (
	"context"
	"testing"

	"github.com/rpggio/mlaconnect/internal/domain/activity"
	"github.com/rpggio/mlaconnect/internal/domain/grievance"
	"github.com/rpggio/mlaconnect/internal/repository"
	"github.com/rpggio/mlaconnect/internal/repository/mocks"
	"github.com/rpggio/mlaconnect/internal/validate"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func validSubmit() grievance.SubmitRequest {
	return grievance.SubmitRequest{
		ConstituencyID: "c1",
		CitizenName:    "Sunita Patil",
		Phone:          "+91 98220-12345",
		Category:       "Water",
		Description:    "No supply for three days",
	}
}

func TestGrievanceService_Submit(t *testing.T) {
	ctx := context.Background()
	tenantID := "tenant1"

	repo := &mocks.GrievanceRepository{}
	activities := &mocks.ActivityRepository{}
	repo.On("Create", ctx, tenantID, mock.Anything).Return(nil)
	activities.On("Log", ctx, tenantID, mock.MatchedBy(func(e *activity.ActivityEntry) bool {
		return e.ActivityType == activity.TypeGrievanceSubmitted
	})).Return(nil)

	svc := grievance.NewService(repo, nil, activity.NewRecorder(activities, nil), nil)
	g, err := svc.Submit(ctx, tenantID, validSubmit())
	require.NoError(t, err)
	require.Equal(t, grievance.StatusPending, g.Status)
	require.Equal(t, grievance.PriorityMedium, g.Priority)
	require.Equal(t, "9822012345", g.Phone)
	activities.AssertExpectations(t)
}

func TestGrievanceService_SubmitValidation(t *testing.T) {
	svc := grievance.NewService(&mocks.GrievanceRepository{}, nil, nil, nil)

	req := validSubmit()
	req.Phone = "12345"
	req.Description = " "
	req.Priority = "URGENT"
	_, err := svc.Submit(context.Background(), "tenant1", req)
	require.ErrorIs(t, err, grievance.ErrInvalidInput)
	require.Len(t, validate.Fields(err), 3)
}

func TestGrievanceService_SubmitUnknownConstituency(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.GrievanceRepository{}
	repo.On("Create", ctx, "tenant1", mock.Anything).Return(repository.ErrForeignKeyViolation)

	svc := grievance.NewService(repo, nil, nil, nil)
	_, err := svc.Submit(ctx, "tenant1", validSubmit())
	require.ErrorIs(t, err, grievance.ErrConstituencyNotFound)
}

func TestValidateTransition(t *testing.T) {
	allowed := map[grievance.Status][]grievance.Status{
		grievance.StatusPending:    {grievance.StatusInProgress, grievance.StatusRejected},
		grievance.StatusInProgress: {grievance.StatusResolved, grievance.StatusRejected, grievance.StatusPending},
		grievance.StatusResolved:   {grievance.StatusInProgress},
		grievance.StatusRejected:   {grievance.StatusPending},
	}
	all := []grievance.Status{grievance.StatusPending, grievance.StatusInProgress, grievance.StatusResolved, grievance.StatusRejected}

	for from, targets := range allowed {
		for _, to := range all {
			err := grievance.ValidateTransition(from, to, "done")
			want := false
			for _, ok := range targets {
				if ok == to {
					want = true
				}
			}
			if want {
				require.NoError(t, err, "%s -> %s", from, to)
			} else {
				require.ErrorIs(t, err, grievance.ErrInvalidTransition, "%s -> %s", from, to)
			}
		}
	}

	require.ErrorIs(t, grievance.ValidateTransition(grievance.StatusInProgress, grievance.StatusResolved, " "), grievance.ErrMissingResolution)
	require.ErrorIs(t, grievance.ValidateTransition(grievance.StatusPending, grievance.StatusRejected, ""), grievance.ErrMissingResolution)
	require.NoError(t, grievance.ValidateTransition(grievance.StatusPending, grievance.StatusInProgress, ""))
}

func TestGrievanceService_Transition(t *testing.T) {
	ctx := context.Background()
	tenantID := "tenant1"

	repo := &mocks.GrievanceRepository{}
	repo.On("Get", ctx, tenantID, "g1").Return(&grievance.Grievance{ID: "g1", Status: grievance.StatusInProgress}, nil)
	repo.On("UpdateStatus", ctx, tenantID, "g1", grievance.StatusInProgress, grievance.StatusResolved, "Tanker arranged", mock.Anything).Return(nil)

	svc := grievance.NewService(repo, nil, nil, nil)
	g, err := svc.Transition(ctx, tenantID, grievance.TransitionRequest{
		ID:         "g1",
		ToStatus:   grievance.StatusResolved,
		Resolution: " Tanker arranged ",
	})
	require.NoError(t, err)
	require.Equal(t, grievance.StatusResolved, g.Status)
	require.Equal(t, "Tanker arranged", g.Resolution)
	repo.AssertExpectations(t)
}

func TestGrievanceService_TransitionConflict(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.GrievanceRepository{}
	repo.On("Get", ctx, "tenant1", "g1").Return(&grievance.Grievance{ID: "g1", Status: grievance.StatusPending}, nil)
	repo.On("UpdateStatus", ctx, "tenant1", "g1", grievance.StatusPending, grievance.StatusInProgress, "", mock.Anything).Return(repository.ErrConflict)

	svc := grievance.NewService(repo, nil, nil, nil)
	_, err := svc.Transition(ctx, "tenant1", grievance.TransitionRequest{ID: "g1", ToStatus: grievance.StatusInProgress})
	require.ErrorIs(t, err, grievance.ErrConflict)
}

func TestGrievanceService_Reopen(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.GrievanceRepository{}
	repo.On("Get", ctx, "tenant1", "g1").Return(&grievance.Grievance{ID: "g1", Status: grievance.StatusResolved, Resolution: "fixed"}, nil)
	repo.On("UpdateStatus", ctx, "tenant1", "g1", grievance.StatusResolved, grievance.StatusInProgress, "", mock.Anything).Return(nil)

	svc := grievance.NewService(repo, nil, nil, nil)
	g, err := svc.Transition(ctx, "tenant1", grievance.TransitionRequest{ID: "g1", ToStatus: grievance.StatusInProgress, Resolution: "ignored"})
	require.NoError(t, err)
	require.Empty(t, g.Resolution)
}

func TestGrievanceService_SearchRequiresQuery(t *testing.T) {
	svc := grievance.NewService(&mocks.GrievanceRepository{}, &mocks.GrievanceSearchRepository{}, nil, nil)
	_, err := svc.Search(context.Background(), "tenant1", "  ", grievance.SearchOptions{})
	require.ErrorIs(t, err, grievance.ErrInvalidInput)
}

func TestGrievanceService_Stats(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.GrievanceRepository{}
	repo.On("List", ctx, "tenant1", grievance.ListOptions{ConstituencyID: "c1"}).Return([]grievance.Grievance{
		{Category: "Water", Status: grievance.StatusPending},
		{Category: "Water", Status: grievance.StatusResolved},
		{Category: "Roads", Status: grievance.StatusInProgress},
	}, nil)

	svc := grievance.NewService(repo, nil, nil, nil)
	stats, err := svc.Stats(ctx, "tenant1", "c1")
	require.NoError(t, err)
	require.Equal(t, 3, stats.Total)
	require.Equal(t, 2, stats.Open)
	require.Equal(t, 2, stats.ByCategory["Water"])
	require.Equal(t, 1, stats.ByStatus[grievance.StatusResolved])
}

func TestColumns_PrioritySortsByUrgency(t *testing.T) {
	var priority func(a, b any) int
	for _, c := range grievance.Columns() {
		if c.ID == "priority" {
			priority = c.Compare
		}
	}
	require.NotNil(t, priority)
	require.Negative(t, priority(grievance.PriorityLow, grievance.PriorityHigh))
	require.Positive(t, priority(grievance.PriorityMedium, grievance.PriorityLow))
}
