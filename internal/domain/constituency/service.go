package constituency

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/mlaconnect/internal/domain/activity"
	"github.com/rpggio/mlaconnect/internal/repository"
	"github.com/rpggio/mlaconnect/internal/validate"
)

// Service handles constituency operations.
type Service struct {
	repo     Repository
	activity *activity.Recorder
	logger   *slog.Logger
}

// NewService creates a new constituency service.
func NewService(repo Repository, recorder *activity.Recorder, logger *slog.Logger) *Service {
	return &Service{repo: repo, activity: recorder, logger: logger}
}

// CreateRequest defines constituency creation inputs.
type CreateRequest struct {
	Name       string `json:"name" yaml:"name"`
	District   string `json:"district" yaml:"district"`
	State      string `json:"state" yaml:"state"`
	MLAName    string `json:"mla_name" yaml:"mla_name"`
	Population int64  `json:"population" yaml:"population"`
	Voters     int64  `json:"voters" yaml:"voters"`
	Status     Status `json:"status" yaml:"status"`
}

// Validate checks the request and returns field errors.
func (r CreateRequest) Validate() validate.Errors {
	var errs validate.Errors
	errs.Check(validate.Required(r.Name), "name", "is required")
	errs.Check(validate.Required(r.District), "district", "is required")
	errs.Check(validate.Required(r.State), "state", "is required")
	errs.Check(r.Population >= 0, "population", "must not be negative")
	errs.Check(r.Voters >= 0, "voters", "must not be negative")
	errs.Check(r.Voters <= r.Population || r.Population == 0, "voters", "must not exceed population")
	errs.Check(r.Status == "" || r.Status.Valid(), "status", "must be ACTIVE or INACTIVE")
	return errs
}

// Create creates a new constituency.
func (s *Service) Create(ctx context.Context, tenantID string, req CreateRequest) (*Constituency, error) {
	if err := req.Validate().Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	status := req.Status
	if status == "" {
		status = StatusActive
	}

	c := &Constituency{
		ID:         uuid.NewString(),
		TenantID:   tenantID,
		Name:       strings.TrimSpace(req.Name),
		District:   strings.TrimSpace(req.District),
		State:      strings.TrimSpace(req.State),
		MLAName:    strings.TrimSpace(req.MLAName),
		Population: req.Population,
		Voters:     req.Voters,
		Status:     status,
		CreatedAt:  time.Now(),
	}

	if err := s.repo.Create(ctx, tenantID, c); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("creating constituency: %w", err)
	}

	s.activity.Record(ctx, tenantID, activity.EntityConstituency, c.ID, activity.TypeConstituencyCreated,
		fmt.Sprintf("Constituency %s (%s) added", c.Name, c.District), nil)
	return c, nil
}

// Get fetches a constituency by ID.
func (s *Service) Get(ctx context.Context, tenantID, id string) (*Constituency, error) {
	c, err := s.repo.Get(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting constituency: %w", err)
	}
	return c, nil
}

// GetByName fetches a constituency by its name.
func (s *Service) GetByName(ctx context.Context, tenantID, name string) (*Constituency, error) {
	c, err := s.repo.GetByName(ctx, tenantID, strings.TrimSpace(name))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting constituency by name: %w", err)
	}
	return c, nil
}

// List returns constituencies matching opts.
func (s *Service) List(ctx context.Context, tenantID string, opts ListOptions) ([]Constituency, error) {
	return s.repo.List(ctx, tenantID, opts)
}

// Stats aggregates counts and totals across all constituencies.
func (s *Service) Stats(ctx context.Context, tenantID string) (*Stats, error) {
	list, err := s.repo.List(ctx, tenantID, ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("listing constituencies: %w", err)
	}

	stats := &Stats{ByDistrict: make(map[string]int)}
	for _, c := range list {
		stats.Count++
		if c.Status == StatusActive {
			stats.Active++
		}
		stats.Population += c.Population
		stats.Voters += c.Voters
		stats.ByDistrict[c.District]++
	}
	stats.Districts = len(stats.ByDistrict)
	return stats, nil
}
