package activity

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Service reads and appends the tenant activity log.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// LogActivity appends entry, stamping CreatedAt when it is unset.
func (s *Service) LogActivity(ctx context.Context, tenantID string, entry *ActivityEntry) error {
	if err := entry.validate(); err != nil {
		return err
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	if err := s.repo.Log(ctx, tenantID, entry); err != nil {
		return fmt.Errorf("logging activity: %w", err)
	}
	return nil
}

// GetRecentActivity lists entries newest first. The limit defaults to
// DefaultListLimit and never exceeds MaxListLimit.
func (s *Service) GetRecentActivity(ctx context.Context, tenantID string, opts ListOptions) ([]ActivityEntry, error) {
	entries, err := s.repo.List(ctx, tenantID, opts.withDefaults())
	if err != nil {
		return nil, fmt.Errorf("listing activity: %w", err)
	}
	if entries == nil {
		entries = []ActivityEntry{}
	}
	return entries, nil
}

func (e *ActivityEntry) validate() error {
	switch {
	case e == nil:
		return fmt.Errorf("%w: nil entry", ErrInvalidInput)
	case e.ActivityType == "":
		return fmt.Errorf("%w: missing type", ErrInvalidInput)
	case strings.TrimSpace(e.Summary) == "":
		return fmt.Errorf("%w: missing summary", ErrInvalidInput)
	}
	return nil
}
