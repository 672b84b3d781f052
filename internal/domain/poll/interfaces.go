package poll

import "context"

// Repository provides persistence for polls.
type Repository interface {
	Create(ctx context.Context, tenantID string, p *Poll) error
	Get(ctx context.Context, tenantID, id string) (*Poll, error)
	List(ctx context.Context, tenantID string, opts ListOptions) ([]Poll, error)
	// Vote increments the vote count of one option.
	Vote(ctx context.Context, tenantID, pollID string, option int) error
}
