package poll

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

// Service handles poll operations.
type Service struct {
	repo     Repository
	activity *activity.Recorder
	logger   *slog.Logger
	now      func() time.Time
}

// NewService creates a new poll service.
func NewService(repo Repository, recorder *activity.Recorder, logger *slog.Logger) *Service {
	return &Service{repo: repo, activity: recorder, logger: logger, now: time.Now}
}

// CreateRequest defines poll creation inputs.
type CreateRequest struct {
	ConstituencyID string    `json:"constituency_id,omitempty"`
	Question       string    `json:"question"`
	Options        []string  `json:"options"`
	StartsAt       time.Time `json:"starts_at"`
	EndsAt         time.Time `json:"ends_at"`
}

// Validate checks the request and returns field errors.
func (r CreateRequest) Validate() validate.Errors {
	var errs validate.Errors
	errs.Check(validate.Required(r.Question), "question", "is required")
	if len(r.Options) < 2 {
		errs.Add("options", "at least two options are required")
	} else if msg := validate.UniqueOptions(r.Options); msg != "" {
		errs.Add("options", msg)
	}
	errs.Check(validate.DateRange(r.StartsAt, r.EndsAt), "ends_at", "must be after the start time")
	return errs
}

// Create creates a poll with zero votes on every option.
func (s *Service) Create(ctx context.Context, tenantID string, req CreateRequest) (*Poll, error) {
	if err := req.Validate().Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	options := make([]Option, len(req.Options))
	for i, text := range req.Options {
		options[i] = Option{Text: strings.TrimSpace(text)}
	}

	p := &Poll{
		ID:             uuid.NewString(),
		TenantID:       tenantID,
		ConstituencyID: strings.TrimSpace(req.ConstituencyID),
		Question:       strings.TrimSpace(req.Question),
		Options:        options,
		StartsAt:       req.StartsAt,
		EndsAt:         req.EndsAt,
		CreatedAt:      s.now(),
	}

	if err := s.repo.Create(ctx, tenantID, p); err != nil {
		if errors.Is(err, repository.ErrForeignKeyViolation) {
			return nil, ErrConstituencyNotFound
		}
		return nil, fmt.Errorf("creating poll: %w", err)
	}

	s.activity.Record(ctx, tenantID, activity.EntityPoll, p.ID, activity.TypePollCreated,
		fmt.Sprintf("Poll created: %s", p.Question), map[string]any{"options": len(p.Options)})
	return p, nil
}

// Get fetches a poll by ID.
func (s *Service) Get(ctx context.Context, tenantID, id string) (*Poll, error) {
	p, err := s.repo.Get(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting poll: %w", err)
	}
	return p, nil
}

// List returns polls matching opts.
func (s *Service) List(ctx context.Context, tenantID string, opts ListOptions) ([]Poll, error) {
	return s.repo.List(ctx, tenantID, opts)
}

// Vote casts one vote for the option at index.
func (s *Service) Vote(ctx context.Context, tenantID, pollID string, index int) (*Poll, error) {
	p, err := s.Get(ctx, tenantID, pollID)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(p.Options) {
		return nil, ErrInvalidOption
	}
	if !p.Open(s.now()) {
		return nil, ErrClosed
	}

	if err := s.repo.Vote(ctx, tenantID, pollID, index); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("recording vote: %w", err)
	}
	p.Options[index].Votes++

	s.activity.Record(ctx, tenantID, activity.EntityPoll, p.ID, activity.TypeVoteCast,
		fmt.Sprintf("Vote for %q", p.Options[index].Text), nil)
	return p, nil
}

// Results tallies a poll.
func (s *Service) Results(ctx context.Context, tenantID, pollID string) (*Results, error) {
	p, err := s.Get(ctx, tenantID, pollID)
	if err != nil {
		return nil, err
	}

	res := &Results{
		PollID:   p.ID,
		Question: p.Question,
		Total:    p.TotalVotes(),
		Open:     p.Open(s.now()),
		Options:  make([]OptionResult, len(p.Options)),
	}
	for i, o := range p.Options {
		r := OptionResult{Index: i, Text: o.Text, Votes: o.Votes}
		if res.Total > 0 {
			r.Percent = float64(o.Votes) * 100 / float64(res.Total)
		}
		res.Options[i] = r
	}
	return res, nil
}
