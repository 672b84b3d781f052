package grievance

import (
	"context"
	"time"
)

// Repository provides persistence for grievances.
type Repository interface {
	Create(ctx context.Context, tenantID string, g *Grievance) error
	Get(ctx context.Context, tenantID, id string) (*Grievance, error)
	// UpdateStatus changes status and resolution only if the stored status
	// still equals from.
	UpdateStatus(ctx context.Context, tenantID, id string, from, to Status, resolution string, at time.Time) error
	List(ctx context.Context, tenantID string, opts ListOptions) ([]Grievance, error)
}

// SearchRepository provides full-text search over grievances.
type SearchRepository interface {
	Search(ctx context.Context, tenantID, query string, opts SearchOptions) ([]SearchResult, error)
}
