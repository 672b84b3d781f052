package devproject

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

// Service handles development project operations.
type Service struct {
	repo     Repository
	activity *activity.Recorder
	logger   *slog.Logger
}

// NewService creates a new project service.
func NewService(repo Repository, recorder *activity.Recorder, logger *slog.Logger) *Service {
	return &Service{repo: repo, activity: recorder, logger: logger}
}

// CreateRequest defines project creation inputs.
type CreateRequest struct {
	ConstituencyID string    `json:"constituency_id"`
	Name           string    `json:"name"`
	Category       string    `json:"category"`
	Budget         int64     `json:"budget"`
	Status         Status    `json:"status"`
	StartDate      time.Time `json:"start_date"`
	EndDate        time.Time `json:"end_date"`
}

// Validate checks the request and returns field errors.
func (r CreateRequest) Validate() validate.Errors {
	var errs validate.Errors
	errs.Check(validate.Required(r.ConstituencyID), "constituency_id", "is required")
	errs.Check(validate.Required(r.Name), "name", "is required")
	errs.Check(validate.Required(r.Category), "category", "is required")
	errs.Check(r.Budget > 0, "budget", "must be greater than zero")
	errs.Check(r.Status == "" || r.Status.Valid(), "status", "must be PLANNED, ONGOING, COMPLETED or STALLED")
	if r.StartDate.IsZero() || r.EndDate.IsZero() {
		errs.Add("end_date", "start and end dates are required")
	} else {
		errs.Check(validate.DateRange(r.StartDate, r.EndDate), "end_date", "must be after the start date")
	}
	return errs
}

// Create creates a new project with nothing spent.
func (s *Service) Create(ctx context.Context, tenantID string, req CreateRequest) (*Project, error) {
	if err := req.Validate().Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	status := req.Status
	if status == "" {
		status = StatusPlanned
	}

	p := &Project{
		ID:             uuid.NewString(),
		TenantID:       tenantID,
		ConstituencyID: req.ConstituencyID,
		Name:           strings.TrimSpace(req.Name),
		Category:       strings.TrimSpace(req.Category),
		Budget:         req.Budget,
		Status:         status,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		CreatedAt:      time.Now(),
	}

	if err := s.repo.Create(ctx, tenantID, p); err != nil {
		if errors.Is(err, repository.ErrForeignKeyViolation) {
			return nil, ErrConstituencyNotFound
		}
		return nil, fmt.Errorf("creating project: %w", err)
	}

	s.activity.Record(ctx, tenantID, activity.EntityProject, p.ID, activity.TypeProjectCreated,
		fmt.Sprintf("Project %s sanctioned", p.Name), map[string]any{"budget": p.Budget})
	return p, nil
}

// Get fetches a project by ID.
func (s *Service) Get(ctx context.Context, tenantID, id string) (*Project, error) {
	p, err := s.repo.Get(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting project: %w", err)
	}
	return p, nil
}

// List returns projects matching opts.
func (s *Service) List(ctx context.Context, tenantID string, opts ListOptions) ([]Project, error) {
	return s.repo.List(ctx, tenantID, opts)
}

// RecordExpense adds an expense to a project. Spending may never exceed the
// budget.
func (s *Service) RecordExpense(ctx context.Context, tenantID, id string, amount int64, note string) (*Project, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, validate.FieldError{Field: "amount", Message: "must be greater than zero"})
	}

	p, err := s.Get(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if p.Status == StatusCompleted {
		return nil, ErrProjectClosed
	}
	if amount > p.Remaining() {
		return nil, ErrBudgetExceeded
	}

	spent, err := s.repo.AddExpense(ctx, tenantID, id, amount)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrConflict):
			return nil, s.expenseConflict(ctx, tenantID, id)
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("recording expense: %w", err)
	}
	p.Spent = spent

	s.activity.Record(ctx, tenantID, activity.EntityProject, p.ID, activity.TypeExpenseRecorded,
		fmt.Sprintf("Expense of Rs %d on %s", amount, p.Name),
		map[string]any{"amount": amount, "note": note, "spent": spent})
	return p, nil
}

// expenseConflict tells a completed project apart from a budget overrun
// after a guarded expense update was refused.
func (s *Service) expenseConflict(ctx context.Context, tenantID, id string) error {
	p, err := s.Get(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if p.Status == StatusCompleted {
		return ErrProjectClosed
	}
	return ErrBudgetExceeded
}

// ValidateTransition validates a project status change.
func ValidateTransition(from, to Status) error {
	valid := false
	switch from {
	case StatusPlanned:
		valid = to == StatusOngoing || to == StatusStalled
	case StatusOngoing:
		valid = to == StatusCompleted || to == StatusStalled
	case StatusStalled:
		valid = to == StatusOngoing || to == StatusPlanned
	}
	if !valid {
		return ErrInvalidTransition
	}
	return nil
}

// UpdateStatus moves a project to a new status.
func (s *Service) UpdateStatus(ctx context.Context, tenantID, id string, to Status) (*Project, error) {
	p, err := s.Get(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := ValidateTransition(p.Status, to); err != nil {
		return nil, err
	}
	from := p.Status
	if err := s.repo.UpdateStatus(ctx, tenantID, id, from, to); err != nil {
		switch {
		case errors.Is(err, repository.ErrConflict):
			return nil, ErrConflict
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("updating project status: %w", err)
	}

	p.Status = to
	s.activity.Record(ctx, tenantID, activity.EntityProject, p.ID, activity.TypeProjectStatusChanged,
		fmt.Sprintf("Project %s %s -> %s", p.Name, from, to), nil)
	return p, nil
}

// BudgetSummary totals budgets, optionally for one constituency.
func (s *Service) BudgetSummary(ctx context.Context, tenantID, constituencyID string) (*BudgetSummary, error) {
	list, err := s.repo.List(ctx, tenantID, ListOptions{ConstituencyID: constituencyID})
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}

	sum := &BudgetSummary{ConstituencyID: constituencyID, ByStatus: make(map[Status]int)}
	for _, p := range list {
		sum.Projects++
		sum.Allocated += p.Budget
		sum.Spent += p.Spent
		sum.ByStatus[p.Status]++
	}
	sum.Remaining = sum.Allocated - sum.Spent
	if sum.Allocated > 0 {
		sum.Utilization = float64(sum.Spent) * 100 / float64(sum.Allocated)
	}
	return sum, nil
}
