package mocks

import (
	"context"
	"time"

	"github.com/rpggio/mlaconnect/internal/domain/activity"
	"github.com/rpggio/mlaconnect/internal/domain/constituency"
	"github.com/rpggio/mlaconnect/internal/domain/devproject"
	"github.com/rpggio/mlaconnect/internal/domain/grievance"
	"github.com/rpggio/mlaconnect/internal/domain/poll"
	"github.com/rpggio/mlaconnect/internal/domain/user"
	"github.com/stretchr/testify/mock"
)

// ConstituencyRepository is a mock for constituency.Repository.
type ConstituencyRepository struct {
	mock.Mock
}

func (m *ConstituencyRepository) Create(ctx context.Context, tenantID string, c *constituency.Constituency) error {
	args := m.Called(ctx, tenantID, c)
	return args.Error(0)
}

func (m *ConstituencyRepository) Get(ctx context.Context, tenantID, id string) (*constituency.Constituency, error) {
	args := m.Called(ctx, tenantID, id)
	if c, ok := args.Get(0).(*constituency.Constituency); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ConstituencyRepository) GetByName(ctx context.Context, tenantID, name string) (*constituency.Constituency, error) {
	args := m.Called(ctx, tenantID, name)
	if c, ok := args.Get(0).(*constituency.Constituency); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ConstituencyRepository) List(ctx context.Context, tenantID string, opts constituency.ListOptions) ([]constituency.Constituency, error) {
	args := m.Called(ctx, tenantID, opts)
	if list, ok := args.Get(0).([]constituency.Constituency); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// GrievanceRepository is a mock for grievance.Repository.
type GrievanceRepository struct {
	mock.Mock
}

func (m *GrievanceRepository) Create(ctx context.Context, tenantID string, g *grievance.Grievance) error {
	args := m.Called(ctx, tenantID, g)
	return args.Error(0)
}

func (m *GrievanceRepository) Get(ctx context.Context, tenantID, id string) (*grievance.Grievance, error) {
	args := m.Called(ctx, tenantID, id)
	if g, ok := args.Get(0).(*grievance.Grievance); ok {
		return g, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *GrievanceRepository) UpdateStatus(ctx context.Context, tenantID, id string, from, to grievance.Status, resolution string, at time.Time) error {
	args := m.Called(ctx, tenantID, id, from, to, resolution, at)
	return args.Error(0)
}

func (m *GrievanceRepository) List(ctx context.Context, tenantID string, opts grievance.ListOptions) ([]grievance.Grievance, error) {
	args := m.Called(ctx, tenantID, opts)
	if list, ok := args.Get(0).([]grievance.Grievance); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// GrievanceSearchRepository is a mock for grievance.SearchRepository.
type GrievanceSearchRepository struct {
	mock.Mock
}

func (m *GrievanceSearchRepository) Search(ctx context.Context, tenantID, query string, opts grievance.SearchOptions) ([]grievance.SearchResult, error) {
	args := m.Called(ctx, tenantID, query, opts)
	if list, ok := args.Get(0).([]grievance.SearchResult); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// DevProjectRepository is a mock for devproject.Repository.
type DevProjectRepository struct {
	mock.Mock
}

func (m *DevProjectRepository) Create(ctx context.Context, tenantID string, p *devproject.Project) error {
	args := m.Called(ctx, tenantID, p)
	return args.Error(0)
}

func (m *DevProjectRepository) Get(ctx context.Context, tenantID, id string) (*devproject.Project, error) {
	args := m.Called(ctx, tenantID, id)
	if p, ok := args.Get(0).(*devproject.Project); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *DevProjectRepository) List(ctx context.Context, tenantID string, opts devproject.ListOptions) ([]devproject.Project, error) {
	args := m.Called(ctx, tenantID, opts)
	if list, ok := args.Get(0).([]devproject.Project); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *DevProjectRepository) AddExpense(ctx context.Context, tenantID, id string, amount int64) (int64, error) {
	args := m.Called(ctx, tenantID, id, amount)
	return args.Get(0).(int64), args.Error(1)
}

func (m *DevProjectRepository) UpdateStatus(ctx context.Context, tenantID, id string, from, to devproject.Status) error {
	args := m.Called(ctx, tenantID, id, from, to)
	return args.Error(0)
}

// PollRepository is a mock for poll.Repository.
type PollRepository struct {
	mock.Mock
}

func (m *PollRepository) Create(ctx context.Context, tenantID string, p *poll.Poll) error {
	args := m.Called(ctx, tenantID, p)
	return args.Error(0)
}

func (m *PollRepository) Get(ctx context.Context, tenantID, id string) (*poll.Poll, error) {
	args := m.Called(ctx, tenantID, id)
	if p, ok := args.Get(0).(*poll.Poll); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *PollRepository) List(ctx context.Context, tenantID string, opts poll.ListOptions) ([]poll.Poll, error) {
	args := m.Called(ctx, tenantID, opts)
	if list, ok := args.Get(0).([]poll.Poll); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *PollRepository) Vote(ctx context.Context, tenantID, pollID string, option int) error {
	args := m.Called(ctx, tenantID, pollID, option)
	return args.Error(0)
}

// UserRepository is a mock for user.Repository.
type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) Create(ctx context.Context, tenantID string, u *user.User) error {
	args := m.Called(ctx, tenantID, u)
	return args.Error(0)
}

func (m *UserRepository) Get(ctx context.Context, tenantID, id string) (*user.User, error) {
	args := m.Called(ctx, tenantID, id)
	if u, ok := args.Get(0).(*user.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepository) GetByPhone(ctx context.Context, tenantID, phone string) (*user.User, error) {
	args := m.Called(ctx, tenantID, phone)
	if u, ok := args.Get(0).(*user.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepository) List(ctx context.Context, tenantID string, opts user.ListOptions) ([]user.User, error) {
	args := m.Called(ctx, tenantID, opts)
	if list, ok := args.Get(0).([]user.User); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// ActivityRepository is a mock for activity.Repository.
type ActivityRepository struct {
	mock.Mock
}

func (m *ActivityRepository) Log(ctx context.Context, tenantID string, entry *activity.ActivityEntry) error {
	args := m.Called(ctx, tenantID, entry)
	return args.Error(0)
}

func (m *ActivityRepository) List(ctx context.Context, tenantID string, opts activity.ListOptions) ([]activity.ActivityEntry, error) {
	args := m.Called(ctx, tenantID, opts)
	if list, ok := args.Get(0).([]activity.ActivityEntry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}
