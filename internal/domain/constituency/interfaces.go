package constituency

import "context"

// Repository provides persistence for constituencies.
type Repository interface {
	Create(ctx context.Context, tenantID string, c *Constituency) error
	Get(ctx context.Context, tenantID, id string) (*Constituency, error)
	GetByName(ctx context.Context, tenantID, name string) (*Constituency, error)
	List(ctx context.Context, tenantID string, opts ListOptions) ([]Constituency, error)
}
