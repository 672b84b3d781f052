package grievance

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

// Service handles grievance business logic.
type Service struct {
	repo     Repository
	search   SearchRepository
	activity *activity.Recorder
	logger   *slog.Logger
}

// NewService creates a new grievance service.
func NewService(repo Repository, search SearchRepository, recorder *activity.Recorder, logger *slog.Logger) *Service {
	return &Service{repo: repo, search: search, activity: recorder, logger: logger}
}

// SubmitRequest describes a new grievance.
type SubmitRequest struct {
	ConstituencyID string   `json:"constituency_id"`
	CitizenName    string   `json:"citizen_name"`
	Phone          string   `json:"phone"`
	Category       string   `json:"category"`
	Description    string   `json:"description"`
	Priority       Priority `json:"priority"`
}

// TransitionRequest describes a status change.
type TransitionRequest struct {
	ID         string `json:"id"`
	ToStatus   Status `json:"to_status"`
	Resolution string `json:"resolution,omitempty"`
}

// Submit records a new grievance in PENDING status.
func (s *Service) Submit(ctx context.Context, tenantID string, req SubmitRequest) (*Grievance, error) {
	if err := ValidateSubmitInput(req).Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	priority := req.Priority
	if priority == "" {
		priority = PriorityMedium
	}

	now := time.Now()
	g := &Grievance{
		ID:             uuid.NewString(),
		TenantID:       tenantID,
		ConstituencyID: req.ConstituencyID,
		CitizenName:    strings.TrimSpace(req.CitizenName),
		Phone:          validate.NormalizePhone(req.Phone),
		Category:       strings.TrimSpace(req.Category),
		Description:    strings.TrimSpace(req.Description),
		Priority:       priority,
		Status:         StatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Create(ctx, tenantID, g); err != nil {
		if errors.Is(err, repository.ErrForeignKeyViolation) {
			return nil, ErrConstituencyNotFound
		}
		return nil, fmt.Errorf("creating grievance: %w", err)
	}

	s.activity.Record(ctx, tenantID, activity.EntityGrievance, g.ID, activity.TypeGrievanceSubmitted,
		fmt.Sprintf("%s grievance from %s", g.Category, g.CitizenName),
		map[string]any{"constituency_id": g.ConstituencyID, "priority": g.Priority})
	return g, nil
}

// Get fetches a grievance by ID.
func (s *Service) Get(ctx context.Context, tenantID, id string) (*Grievance, error) {
	g, err := s.repo.Get(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting grievance: %w", err)
	}
	return g, nil
}

// List returns grievances matching opts, newest first.
func (s *Service) List(ctx context.Context, tenantID string, opts ListOptions) ([]Grievance, error) {
	return s.repo.List(ctx, tenantID, opts)
}

// Transition moves a grievance to a new status.
func (s *Service) Transition(ctx context.Context, tenantID string, req TransitionRequest) (*Grievance, error) {
	g, err := s.Get(ctx, tenantID, req.ID)
	if err != nil {
		return nil, err
	}

	if err := ValidateTransition(g.Status, req.ToStatus, req.Resolution); err != nil {
		return nil, err
	}

	resolution := strings.TrimSpace(req.Resolution)
	if req.ToStatus == StatusPending || req.ToStatus == StatusInProgress {
		resolution = ""
	}

	now := time.Now()
	if err := s.repo.UpdateStatus(ctx, tenantID, g.ID, g.Status, req.ToStatus, resolution, now); err != nil {
		switch {
		case errors.Is(err, repository.ErrConflict):
			return nil, ErrConflict
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("updating grievance status: %w", err)
	}

	from := g.Status
	g.Status = req.ToStatus
	g.Resolution = resolution
	g.UpdatedAt = now

	s.activity.Record(ctx, tenantID, activity.EntityGrievance, g.ID, activity.TypeGrievanceTransition,
		fmt.Sprintf("Grievance %s -> %s", from, g.Status),
		map[string]any{"from": from, "to": g.Status})
	return g, nil
}

// Search performs full-text search over grievances.
func (s *Service) Search(ctx context.Context, tenantID, query string, opts SearchOptions) ([]SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrInvalidInput
	}
	return s.search.Search(ctx, tenantID, query, opts)
}

// Stats counts grievances, optionally for one constituency.
func (s *Service) Stats(ctx context.Context, tenantID, constituencyID string) (*Stats, error) {
	list, err := s.repo.List(ctx, tenantID, ListOptions{ConstituencyID: constituencyID})
	if err != nil {
		return nil, fmt.Errorf("listing grievances: %w", err)
	}

	stats := &Stats{
		ByStatus:   make(map[Status]int),
		ByCategory: make(map[string]int),
	}
	for _, g := range list {
		stats.Total++
		stats.ByStatus[g.Status]++
		stats.ByCategory[g.Category]++
		if g.Status == StatusPending || g.Status == StatusInProgress {
			stats.Open++
		}
	}
	return stats, nil
}
